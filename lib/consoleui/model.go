// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleui implements the operator console as a bubbletea
// program: a login gate, six pages behind a sidebar, an approval editor
// modal, and overlay chrome for notifications and toasts.
package consoleui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/webxes-tech/console/lib/api"
	"github.com/webxes-tech/console/lib/config"
	"github.com/webxes-tech/console/lib/notify"
)

// requestTimeout bounds every backend call issued from the UI.
const requestTimeout = 20 * time.Second

// Page identifies one of the console's main views.
type Page int

const (
	PageDashboard Page = iota
	PageApprovals
	PageInbox
	PageAudit
	PageSocial
	PageSettings
)

// Title returns the page's sidebar and header label.
func (page Page) Title() string {
	switch page {
	case PageDashboard:
		return "Dashboard"
	case PageApprovals:
		return "Approvals"
	case PageInbox:
		return "Inbox"
	case PageAudit:
		return "Audit Log"
	case PageSocial:
		return "Social Posts"
	case PageSettings:
		return "Settings"
	}
	return "Unknown"
}

// authPhase tracks where the operator is in the login gate.
type authPhase int

const (
	// authChecking covers the startup probe of the stored session token.
	authChecking authPhase = iota
	authLoggedOut
	authLoggedIn
)

// Fetch key families. Filtered families append their filter value, for
// example "approvals:email".
const (
	keyStats           = "stats"
	keyApprovalsPrefix = "approvals:"
	keyInboxPrefix     = "inbox:"
	keyAuditPrefix     = "audit:"
	keyAuditSummary    = "audit-summary"
	keySettings        = "settings"
	keySocialApprovals = "social-approvals"
	keyApprovalDetail  = "approval-detail:"
	keyInboxDetail     = "inbox-detail:"
)

// Poll families name the refresh loops. At most one tick is in flight
// per family; a loop whose page is no longer active dies at its next
// tick instead of rescheduling.
const (
	pollStats     = "stats"
	pollApprovals = "approvals"
	pollInbox     = "inbox"
	pollAudit     = "audit"
	pollSettings  = "settings"
)

// Model is the root bubbletea model for the console. All mutable UI
// state lives here; the background push channel communicates through the
// notification and toast stores plus a change signal channel.
type Model struct {
	backend       Backend
	credentials   CredentialStore
	push          PushController
	notifications *notify.NotificationStore
	toasts        *notify.ToastStore
	intervals     config.Intervals
	theme         Theme
	keys          KeyMap

	width  int
	height int

	phase authPhase
	page  Page

	login     loginState
	dashboard dashboardState
	approvals approvalsState
	editor    *editorState
	inbox     inboxState
	audit     auditState
	social    socialState
	settings  settingsState

	// stats backs both the dashboard page and the sidebar badges, so it
	// is polled for as long as the operator is logged in.
	stats       api.DashboardStats
	statsLoaded bool
	statsErr    error

	notificationsOpen bool

	// sequences holds the issue counter per fetch key; results carrying
	// an older sequence are discarded.
	sequences map[string]int

	// polling marks which refresh loops have a tick in flight.
	polling map[string]bool

	// scheduledToasts marks toast IDs whose expiry tick has been
	// scheduled, so a store change signal never schedules one twice.
	scheduledToasts map[string]bool

	storeEvents <-chan notify.Change
}

// NewModel assembles the console model. The stores must be the same
// instances wired into the push channel.
func NewModel(
	backend Backend,
	credentials CredentialStore,
	push PushController,
	notifications *notify.NotificationStore,
	toasts *notify.ToastStore,
	intervals config.Intervals,
) Model {
	return Model{
		backend:         backend,
		credentials:     credentials,
		push:            push,
		notifications:   notifications,
		toasts:          toasts,
		intervals:       intervals,
		theme:           DefaultTheme,
		keys:            DefaultKeyMap,
		phase:           authChecking,
		page:            PageDashboard,
		login:           newLoginState(),
		approvals:       newApprovalsState(),
		inbox:           newInboxState(),
		audit:           newAuditState(),
		social:          newSocialState(),
		settings:        newSettingsState(),
		sequences:       make(map[string]int),
		polling:         make(map[string]bool),
		scheduledToasts: make(map[string]bool),
		storeEvents:     notifications.Subscribe(),
	}
}

// Init probes the stored session and begins listening for store changes.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.checkAuth(), model.listenForStoreEvent())
}

// checkAuth validates the stored token against the backend. An empty
// token short-circuits straight to the login view.
func (model Model) checkAuth() tea.Cmd {
	backend := model.backend
	token := model.credentials.Token()
	return func() tea.Msg {
		if token == "" {
			return authCheckedMsg{err: api.ErrUnauthorized}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return authCheckedMsg{err: backend.CheckAuth(ctx)}
	}
}

// listenForStoreEvent blocks on the store change channel and converts
// each signal into a message. The returned command re-arms itself from
// Update after every delivery.
func (model Model) listenForStoreEvent() tea.Cmd {
	events := model.storeEvents
	return func() tea.Msg {
		<-events
		return storeChangedMsg{}
	}
}

// beginFetch advances the sequence counter for a fetch key and returns
// the sequence the next request should carry.
func (model Model) beginFetch(key string) int {
	model.sequences[key]++
	return model.sequences[key]
}

// acceptResult reports whether a fetch result is still wanted: its key
// must match the currently active key for its family and its sequence
// must be the latest issued.
func (model Model) acceptResult(result fetchResult, activeKey string) bool {
	return result.key == activeKey && result.sequence == model.sequences[result.key]
}

// handleUnauthorized routes any backend 401 back to the login view. The
// API client has already cleared the stored token by the time this runs;
// the push channel is stopped so no socket lingers behind the login view.
func (model *Model) handleUnauthorized(err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	model.push.Close()
	model.phase = authLoggedOut
	model.login = newLoginState()
	model.editor = nil
	model.notificationsOpen = false
	return true
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		if model.editor != nil {
			model.editor.resize(model.contentWidth(), model.contentHeight())
		}
		return model, nil

	case storeChangedMsg:
		return model.handleStoreChange()

	case toastExpireMsg:
		model.toasts.Remove(message.id)
		delete(model.scheduledToasts, message.id)
		return model, nil

	case pollTickMsg:
		return model.handlePollTick(message.key)

	case authCheckedMsg:
		return model.handleAuthChecked(message)

	case loginResultMsg:
		return model.handleLoginResult(message)

	case logoutMsg:
		model.push.Close()
		model.phase = authLoggedOut
		model.login = newLoginState()
		model.editor = nil
		model.notificationsOpen = false
		return model, nil
	}

	if model.phase != authLoggedIn {
		return model.updateLogin(message)
	}

	switch message := message.(type) {
	case statsLoadedMsg:
		return model.handleStatsLoaded(message)
	case approvalsLoadedMsg:
		return model.handleApprovalsLoaded(message)
	case approvalDetailMsg:
		return model.handleApprovalDetail(message)
	case inboxLoadedMsg:
		return model.handleInboxLoaded(message)
	case inboxDetailMsg:
		return model.handleInboxDetail(message)
	case auditLoadedMsg:
		return model.handleAuditLoaded(message)
	case auditSummaryMsg:
		return model.handleAuditSummary(message)
	case settingsLoadedMsg:
		return model.handleSettingsLoaded(message)
	case decisionResultMsg:
		return model.handleDecisionResult(message)
	case dryRunResultMsg:
		return model.handleDryRunResult(message)
	case generateResultMsg:
		return model.handleGenerateResult(message)
	case editorStatusFadeMsg:
		if model.editor != nil && model.editor.statusGeneration == message.generation {
			model.editor.status = ""
		}
		return model, nil
	}

	// Modal layers take key input before the page underneath.
	if model.editor != nil {
		return model.updateEditor(message)
	}
	if model.settings.confirm != nil && model.page == PageSettings {
		return model.updateSettings(message)
	}
	if model.notificationsOpen {
		return model.updateNotificationPanel(message)
	}

	if keyMessage, ok := message.(tea.KeyMsg); ok {
		if handled, next, command := model.handleGlobalKey(keyMessage); handled {
			return next, command
		}
	}

	return model.updateActivePage(message)
}

// handleGlobalKey processes navigation and chrome keys that apply on
// every page. Pages whose own inputs capture text (audit search, social
// prompt) suppress these while focused; they report that via
// capturesText.
func (model Model) handleGlobalKey(message tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if model.activePageCapturesText() {
		return false, model, nil
	}
	keys := model.keys
	switch {
	case key.Matches(message, keys.Quit):
		model.push.Close()
		return true, model, tea.Quit
	case key.Matches(message, keys.PageDashboard):
		next, command := model.switchPage(PageDashboard)
		return true, next, command
	case key.Matches(message, keys.PageApprovals):
		next, command := model.switchPage(PageApprovals)
		return true, next, command
	case key.Matches(message, keys.PageInbox):
		next, command := model.switchPage(PageInbox)
		return true, next, command
	case key.Matches(message, keys.PageAudit):
		next, command := model.switchPage(PageAudit)
		return true, next, command
	case key.Matches(message, keys.PageSocial):
		next, command := model.switchPage(PageSocial)
		return true, next, command
	case key.Matches(message, keys.PageSettings):
		next, command := model.switchPage(PageSettings)
		return true, next, command
	case key.Matches(message, keys.Notifications):
		model.notificationsOpen = true
		model.notifications.ClearUnread()
		return true, model, nil
	case key.Matches(message, keys.DismissToast):
		if toasts := model.toasts.Toasts(); len(toasts) > 0 {
			model.toasts.Remove(toasts[0].ID)
			delete(model.scheduledToasts, toasts[0].ID)
		}
		return true, model, nil
	case key.Matches(message, keys.Refresh):
		next, command := model.refreshActivePage()
		return true, next, command
	case key.Matches(message, keys.Logout):
		return true, model, model.logout()
	}
	return false, model, nil
}

// switchPage activates a page, fetches its data immediately, and starts
// its refresh loop if one is not already running.
func (model Model) switchPage(page Page) (tea.Model, tea.Cmd) {
	model.page = page
	model.notificationsOpen = false
	fetch, _ := model.pageFetch(page)
	commands := []tea.Cmd{fetch}
	if family, interval := pollFamilyFor(page, model.intervals); family != "" && !model.polling[family] {
		model.polling[family] = true
		commands = append(commands, schedulePoll(family, interval))
	}
	return model, tea.Batch(commands...)
}

// refreshActivePage refetches the current page's data on demand.
func (model Model) refreshActivePage() (tea.Model, tea.Cmd) {
	fetch, _ := model.pageFetch(model.page)
	return model, fetch
}

// pageFetch returns the fetch command and active key for a page's
// primary data. The dashboard shares the always-on stats fetch.
func (model Model) pageFetch(page Page) (tea.Cmd, string) {
	switch page {
	case PageDashboard:
		return model.loadStats(), keyStats
	case PageApprovals:
		return model.loadApprovals(), model.approvalsKey()
	case PageInbox:
		return model.loadInbox(), model.inboxKey()
	case PageAudit:
		return tea.Batch(model.loadAudit(), model.loadAuditSummary()), model.auditKey()
	case PageSocial:
		return model.loadSocialApprovals(), keySocialApprovals
	case PageSettings:
		return model.loadSettings(), keySettings
	}
	return nil, ""
}

// pollFamilyFor maps a page to its refresh loop and interval. The social
// page piggybacks on the approvals interval; the dashboard page needs no
// loop of its own because stats are always polled.
func pollFamilyFor(page Page, intervals config.Intervals) (string, time.Duration) {
	switch page {
	case PageApprovals:
		return pollApprovals, intervals.Approvals
	case PageInbox:
		return pollInbox, intervals.Inbox
	case PageAudit:
		return pollAudit, intervals.Audit
	case PageSettings:
		return pollSettings, intervals.Dashboard
	case PageSocial:
		return pollApprovals, intervals.Approvals
	}
	return "", 0
}

func schedulePoll(family string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollTickMsg{key: family}
	})
}

// handlePollTick refetches and re-arms a refresh loop while its page is
// still active. Stats refresh for as long as the operator is logged in
// because the sidebar badges come from them.
func (model Model) handlePollTick(family string) (tea.Model, tea.Cmd) {
	if model.phase != authLoggedIn {
		model.polling[family] = false
		return model, nil
	}
	if family == pollStats {
		return model, tea.Batch(model.loadStats(), schedulePoll(pollStats, model.intervals.Dashboard))
	}
	activeFamily, interval := pollFamilyFor(model.page, model.intervals)
	if family != activeFamily {
		model.polling[family] = false
		return model, nil
	}
	fetch, _ := model.pageFetch(model.page)
	return model, tea.Batch(fetch, schedulePoll(family, interval))
}

// handleStoreChange re-arms the store listener and schedules expiry for
// any toast that does not have one yet.
func (model Model) handleStoreChange() (tea.Model, tea.Cmd) {
	commands := []tea.Cmd{model.listenForStoreEvent()}
	for _, toast := range model.toasts.Toasts() {
		if model.scheduledToasts[toast.ID] {
			continue
		}
		model.scheduledToasts[toast.ID] = true
		id := toast.ID
		commands = append(commands, tea.Tick(notify.ToastLifetime, func(time.Time) tea.Msg {
			return toastExpireMsg{id: id}
		}))
	}
	return model, tea.Batch(commands...)
}

// handleAuthChecked completes the startup probe: a valid session drops
// straight into the dashboard, anything else lands on the login view.
func (model Model) handleAuthChecked(message authCheckedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.phase = authLoggedOut
		model.login = newLoginState()
		return model, model.login.focus()
	}
	return model.enterConsole()
}

func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	model.login.submitting = false
	if message.err != nil {
		model.login.err = message.err
		return model, nil
	}
	return model.enterConsole()
}

// enterConsole transitions to the logged-in console: the push channel
// starts, stats polling begins, and the dashboard loads.
func (model Model) enterConsole() (tea.Model, tea.Cmd) {
	model.phase = authLoggedIn
	model.page = PageDashboard
	model.push.Start()
	model.polling[pollStats] = true
	return model, tea.Batch(
		model.loadStats(),
		schedulePoll(pollStats, model.intervals.Dashboard),
	)
}

// logout clears the stored credential and returns to the login view.
func (model Model) logout() tea.Cmd {
	credentials := model.credentials
	return func() tea.Msg {
		return logoutMsg{err: credentials.Clear()}
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 || model.height == 0 {
		return ""
	}
	switch model.phase {
	case authChecking:
		return model.viewCentered("Checking session...")
	case authLoggedOut:
		return model.viewLogin()
	}
	return model.viewConsole()
}
