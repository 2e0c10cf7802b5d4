// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// The load* commands issue one backend request each. Every command
// captures its fetch key and a fresh sequence number so the handler can
// discard responses that a newer request or a filter change has
// superseded.

func (model Model) loadStats() tea.Cmd {
	backend := model.backend
	sequence := model.beginFetch(keyStats)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		stats, err := backend.DashboardStats(ctx)
		message := statsLoadedMsg{
			fetchResult: fetchResult{key: keyStats, sequence: sequence, err: err},
		}
		if stats != nil {
			message.stats = *stats
		}
		return message
	}
}

func (model Model) approvalsKey() string {
	return keyApprovalsPrefix + model.approvals.domain()
}

func (model Model) loadApprovals() tea.Cmd {
	backend := model.backend
	domain := model.approvals.domain()
	key := model.approvalsKey()
	sequence := model.beginFetch(key)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := backend.Approvals(ctx, domain)
		return approvalsLoadedMsg{
			fetchResult: fetchResult{key: key, sequence: sequence, err: err},
			items:       items,
		}
	}
}

// loadSocialApprovals feeds the social page's pending list. It is a
// separate fetch family from the approvals page so the two never discard
// each other's responses.
func (model Model) loadSocialApprovals() tea.Cmd {
	backend := model.backend
	sequence := model.beginFetch(keySocialApprovals)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := backend.Approvals(ctx, "social_media")
		return approvalsLoadedMsg{
			fetchResult: fetchResult{key: keySocialApprovals, sequence: sequence, err: err},
			items:       items,
		}
	}
}

func (model Model) loadApprovalDetail(id string) tea.Cmd {
	backend := model.backend
	key := keyApprovalDetail + id
	sequence := model.beginFetch(key)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		item, err := backend.Approval(ctx, id)
		message := approvalDetailMsg{
			fetchResult: fetchResult{key: key, sequence: sequence, err: err},
		}
		if item != nil {
			message.item = *item
		}
		return message
	}
}

func (model Model) inboxKey() string {
	return keyInboxPrefix + model.inbox.typeFilter()
}

func (model Model) loadInbox() tea.Cmd {
	backend := model.backend
	typeFilter := model.inbox.typeFilter()
	key := model.inboxKey()
	sequence := model.beginFetch(key)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := backend.Inbox(ctx, typeFilter)
		return inboxLoadedMsg{
			fetchResult: fetchResult{key: key, sequence: sequence, err: err},
			items:       items,
		}
	}
}

func (model Model) loadInboxDetail(id string) tea.Cmd {
	backend := model.backend
	key := keyInboxDetail + id
	sequence := model.beginFetch(key)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		item, err := backend.InboxItem(ctx, id)
		message := inboxDetailMsg{
			fetchResult: fetchResult{key: key, sequence: sequence, err: err},
		}
		if item != nil {
			message.item = *item
		}
		return message
	}
}

func (model Model) auditKey() string {
	query := model.audit.query()
	return keyAuditPrefix + query.Category + "|" + query.Status + "|" + query.Search + "|" + strconv.Itoa(query.Page)
}

func (model Model) loadAudit() tea.Cmd {
	backend := model.backend
	query := model.audit.query()
	key := model.auditKey()
	sequence := model.beginFetch(key)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := backend.AuditEvents(ctx, query)
		message := auditLoadedMsg{
			fetchResult: fetchResult{key: key, sequence: sequence, err: err},
		}
		if page != nil {
			message.page = *page
		}
		return message
	}
}

func (model Model) loadAuditSummary() tea.Cmd {
	backend := model.backend
	sequence := model.beginFetch(keyAuditSummary)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		summary, err := backend.AuditSummary(ctx)
		message := auditSummaryMsg{
			fetchResult: fetchResult{key: keyAuditSummary, sequence: sequence, err: err},
		}
		if summary != nil {
			message.summary = *summary
		}
		return message
	}
}

func (model Model) loadSettings() tea.Cmd {
	backend := model.backend
	sequence := model.beginFetch(keySettings)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		settings, err := backend.GetSettings(ctx)
		message := settingsLoadedMsg{
			fetchResult: fetchResult{key: keySettings, sequence: sequence, err: err},
		}
		if settings != nil {
			message.settings = *settings
		}
		return message
	}
}

// submitLogin exchanges the password for a token and stores it.
func (model Model) submitLogin(password string) tea.Cmd {
	backend := model.backend
	credentials := model.credentials
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		token, err := backend.Login(ctx, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := credentials.SetToken(token); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{}
	}
}

// saveApproval persists edited content without deciding the approval.
func (model Model) saveApproval(id, content string) tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.UpdateApprovalContent(ctx, id, content)
		return decisionResultMsg{kind: decisionSave, approvalID: id, err: err}
	}
}

func (model Model) decideApproval(id string, approve bool, note string) tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		kind := decisionApprove
		var err error
		if approve {
			err = backend.Approve(ctx, id, note)
		} else {
			kind = decisionReject
			err = backend.Reject(ctx, id, note)
		}
		return decisionResultMsg{kind: kind, approvalID: id, err: err}
	}
}

func (model Model) setDryRun(enabled bool) tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.SetDryRun(ctx, enabled)
		return dryRunResultMsg{enabled: enabled, err: err}
	}
}

func (model Model) generateSocialPost(message string) tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		post, err := backend.GenerateSocialPost(ctx, message)
		result := generateResultMsg{err: err}
		if post != nil {
			result.post = *post
		}
		return result
	}
}

// handleStatsLoaded updates the shared stats snapshot behind the
// dashboard and the sidebar badges.
func (model Model) handleStatsLoaded(message statsLoadedMsg) (tea.Model, tea.Cmd) {
	if !model.acceptResult(message.fetchResult, keyStats) {
		return model, nil
	}
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		model.statsErr = message.err
		return model, nil
	}
	model.stats = message.stats
	model.statsLoaded = true
	model.statsErr = nil
	return model, nil
}

