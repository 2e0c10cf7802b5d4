// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"github.com/webxes-tech/console/lib/api"
)

// fetchResult is embedded in every message carrying data loaded from the
// backend. The key identifies which request family produced the result
// (for example "approvals:email") and the sequence number identifies
// which issue of that request it answers. The model discards results
// whose sequence is stale or whose key no longer matches the active
// filters, so a slow response can never overwrite a newer one.
type fetchResult struct {
	key      string
	sequence int
	err      error
}

// authCheckedMsg reports the startup session probe. A nil error means the
// stored token is still valid.
type authCheckedMsg struct {
	err error
}

// loginResultMsg reports a login attempt.
type loginResultMsg struct {
	err error
}

type statsLoadedMsg struct {
	fetchResult
	stats api.DashboardStats
}

type approvalsLoadedMsg struct {
	fetchResult
	items []api.ApprovalItem
}

// approvalDetailMsg carries the full content of one approval, loaded when
// the operator opens the editor.
type approvalDetailMsg struct {
	fetchResult
	item api.ApprovalItem
}

type inboxLoadedMsg struct {
	fetchResult
	items []api.InboxItem
}

// inboxDetailMsg carries the full content of one inbox item, loaded
// lazily when the operator expands it.
type inboxDetailMsg struct {
	fetchResult
	item api.InboxItem
}

type auditLoadedMsg struct {
	fetchResult
	page api.AuditPage
}

type auditSummaryMsg struct {
	fetchResult
	summary api.AuditSummary
}

type settingsLoadedMsg struct {
	fetchResult
	settings api.Settings
}

// decisionKind names which editor mutation a decisionResultMsg reports.
type decisionKind int

const (
	decisionSave decisionKind = iota
	decisionApprove
	decisionReject
)

// decisionResultMsg reports an editor mutation (save, approve, reject)
// against a specific approval.
type decisionResultMsg struct {
	kind       decisionKind
	approvalID string
	err        error
}

// dryRunResultMsg reports a dry-run toggle attempt. The enabled field is
// the value that was requested, applied locally only on success.
type dryRunResultMsg struct {
	enabled bool
	err     error
}

// generateResultMsg reports a social post generation request.
type generateResultMsg struct {
	post api.GeneratedPost
	err  error
}

// pollTickMsg fires when a page's refresh interval elapses. The key names
// which poll loop fired so stale loops die after a page switch.
type pollTickMsg struct {
	key string
}

// storeChangedMsg signals that the notification or toast store changed
// out of band (a push event arrived). The model re-reads the stores and
// schedules expiry for any toast it has not seen yet.
type storeChangedMsg struct{}

// toastExpireMsg removes one toast after its lifetime elapses.
type toastExpireMsg struct {
	id string
}

// editorStatusFadeMsg clears the editor's transient status line (for
// example "Draft saved") after a short delay.
type editorStatusFadeMsg struct {
	generation int
}

// logoutMsg reports that the stored credential was cleared.
type logoutMsg struct {
	err error
}
