// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/webxes-tech/console/lib/api"
	"github.com/webxes-tech/console/lib/config"
	"github.com/webxes-tech/console/lib/notify"
)

// fakeBackend implements Backend with canned responses and call
// recording. Tests run fetch commands synchronously, so no locking.
type fakeBackend struct {
	loginToken string
	loginErr   error
	checkErr   error

	stats     api.DashboardStats
	statsErr  error
	approvals []api.ApprovalItem
	detail    api.ApprovalItem
	inbox     []api.InboxItem
	inboxItem api.InboxItem
	auditPage api.AuditPage
	summary   api.AuditSummary
	settings  api.Settings
	post      api.GeneratedPost

	loginPasswords []string
	approved       []string
	rejected       []string
	savedContent   map[string]string
	dryRunSet      []bool
	prompts        []string
}

var _ Backend = (*fakeBackend)(nil)

func (backend *fakeBackend) Login(_ context.Context, password string) (string, error) {
	backend.loginPasswords = append(backend.loginPasswords, password)
	return backend.loginToken, backend.loginErr
}

func (backend *fakeBackend) CheckAuth(context.Context) error { return backend.checkErr }

func (backend *fakeBackend) DashboardStats(context.Context) (*api.DashboardStats, error) {
	if backend.statsErr != nil {
		return nil, backend.statsErr
	}
	stats := backend.stats
	return &stats, nil
}

func (backend *fakeBackend) Approvals(context.Context, string) ([]api.ApprovalItem, error) {
	return backend.approvals, nil
}

func (backend *fakeBackend) Approval(context.Context, string) (*api.ApprovalItem, error) {
	detail := backend.detail
	return &detail, nil
}

func (backend *fakeBackend) UpdateApprovalContent(_ context.Context, id, content string) error {
	if backend.savedContent == nil {
		backend.savedContent = make(map[string]string)
	}
	backend.savedContent[id] = content
	return nil
}

func (backend *fakeBackend) Approve(_ context.Context, id, _ string) error {
	backend.approved = append(backend.approved, id)
	return nil
}

func (backend *fakeBackend) Reject(_ context.Context, id, _ string) error {
	backend.rejected = append(backend.rejected, id)
	return nil
}

func (backend *fakeBackend) Inbox(context.Context, string) ([]api.InboxItem, error) {
	return backend.inbox, nil
}

func (backend *fakeBackend) InboxItem(context.Context, string) (*api.InboxItem, error) {
	item := backend.inboxItem
	return &item, nil
}

func (backend *fakeBackend) AuditEvents(context.Context, api.AuditQuery) (*api.AuditPage, error) {
	page := backend.auditPage
	return &page, nil
}

func (backend *fakeBackend) AuditSummary(context.Context) (*api.AuditSummary, error) {
	summary := backend.summary
	return &summary, nil
}

func (backend *fakeBackend) GetSettings(context.Context) (*api.Settings, error) {
	settings := backend.settings
	return &settings, nil
}

func (backend *fakeBackend) SetDryRun(_ context.Context, enabled bool) error {
	backend.dryRunSet = append(backend.dryRunSet, enabled)
	return nil
}

func (backend *fakeBackend) GenerateSocialPost(_ context.Context, message string) (*api.GeneratedPost, error) {
	backend.prompts = append(backend.prompts, message)
	post := backend.post
	return &post, nil
}

type fakeCredentials struct {
	token  string
	set    []string
	clears int
}

func (credentials *fakeCredentials) Token() string { return credentials.token }

func (credentials *fakeCredentials) SetToken(token string) error {
	credentials.token = token
	credentials.set = append(credentials.set, token)
	return nil
}

func (credentials *fakeCredentials) Clear() error {
	credentials.token = ""
	credentials.clears++
	return nil
}

type fakePush struct {
	started int
	closed  int
}

func (push *fakePush) Start() { push.started++ }
func (push *fakePush) Close() { push.closed++ }

type testHarness struct {
	backend       *fakeBackend
	credentials   *fakeCredentials
	push          *fakePush
	notifications *notify.NotificationStore
	toasts        *notify.ToastStore
}

func newHarness() *testHarness {
	return &testHarness{
		backend:       &fakeBackend{},
		credentials:   &fakeCredentials{},
		push:          &fakePush{},
		notifications: notify.NewNotificationStore(),
		toasts:        notify.NewToastStore(),
	}
}

func (harness *testHarness) model() Model {
	return NewModel(harness.backend, harness.credentials, harness.push,
		harness.notifications, harness.toasts, config.Intervals{
			Dashboard: 30 * time.Second,
			Approvals: 15 * time.Second,
			Inbox:     30 * time.Second,
			Audit:     60 * time.Second,
		})
}

// drive runs one Update cycle and re-types the result.
func drive(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, command
}

func keyRunes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestLoginFlow(t *testing.T) {
	harness := newHarness()
	harness.backend.loginToken = "token-123"
	model := harness.model()

	model, _ = drive(t, model, authCheckedMsg{err: api.ErrUnauthorized})
	if model.phase != authLoggedOut {
		t.Fatalf("phase = %d, want logged out", model.phase)
	}

	model, _ = drive(t, model, keyRunes("hunter2"))
	if got := model.login.input.Value(); got != "hunter2" {
		t.Fatalf("input value = %q", got)
	}

	model, command := drive(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if !model.login.submitting {
		t.Fatal("expected submitting state")
	}
	if command == nil {
		t.Fatal("expected a login command")
	}
	result, ok := command().(loginResultMsg)
	if !ok {
		t.Fatal("command did not produce a loginResultMsg")
	}
	if result.err != nil {
		t.Fatalf("login error: %v", result.err)
	}
	if len(harness.backend.loginPasswords) != 1 || harness.backend.loginPasswords[0] != "hunter2" {
		t.Fatalf("backend saw passwords %v", harness.backend.loginPasswords)
	}
	if harness.credentials.token != "token-123" {
		t.Fatalf("stored token = %q", harness.credentials.token)
	}

	model, _ = drive(t, model, result)
	if model.phase != authLoggedIn {
		t.Fatal("expected logged-in phase after successful login")
	}
	if harness.push.started != 1 {
		t.Fatalf("push started %d times, want 1", harness.push.started)
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model, _ = drive(t, model, authCheckedMsg{err: api.ErrUnauthorized})
	model.login.submitting = true

	model, _ = drive(t, model, loginResultMsg{err: errFake("login: invalid password")})
	if model.phase != authLoggedOut {
		t.Fatal("failed login must stay on the login view")
	}
	if model.login.submitting {
		t.Fatal("submitting flag not cleared")
	}
	if model.login.err == nil {
		t.Fatal("expected an inline error")
	}
}

type errFake string

func (err errFake) Error() string { return string(err) }

func TestValidSessionSkipsLogin(t *testing.T) {
	harness := newHarness()
	harness.credentials.token = "existing"
	model := harness.model()

	model, _ = drive(t, model, authCheckedMsg{})
	if model.phase != authLoggedIn {
		t.Fatal("valid session should enter the console directly")
	}
}

func TestUnauthorizedFetchReturnsToLogin(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn

	model, _ = drive(t, model, statsLoadedMsg{
		fetchResult: fetchResult{key: keyStats, err: api.ErrUnauthorized},
	})
	if model.phase != authLoggedOut {
		t.Fatal("a 401 mid-session must return to the login view")
	}
	if harness.push.closed != 1 {
		t.Fatalf("push closed %d times, want 1", harness.push.closed)
	}
}

func TestStaleFetchResultDiscarded(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	model.page = PageApprovals

	// Two requests for the same key; only the second's result counts.
	_ = model.loadApprovals()
	_ = model.loadApprovals()

	stale := approvalsLoadedMsg{
		fetchResult: fetchResult{key: model.approvalsKey(), sequence: 1},
		items:       []api.ApprovalItem{{ID: "stale"}},
	}
	model, _ = drive(t, model, stale)
	if model.approvals.loaded {
		t.Fatal("stale result must be discarded")
	}

	fresh := approvalsLoadedMsg{
		fetchResult: fetchResult{key: model.approvalsKey(), sequence: 2},
		items:       []api.ApprovalItem{{ID: "fresh"}},
	}
	model, _ = drive(t, model, fresh)
	if !model.approvals.loaded || len(model.approvals.items) != 1 || model.approvals.items[0].ID != "fresh" {
		t.Fatal("latest result must be applied")
	}
}

func TestFilterChangeDiscardsOldKey(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	model.page = PageApprovals

	_ = model.loadApprovals()
	previousKey := model.approvalsKey()

	// Domain tab moves on before the first response lands.
	model, _ = drive(t, model, keyRunes("l"))

	late := approvalsLoadedMsg{
		fetchResult: fetchResult{key: previousKey, sequence: 1},
		items:       []api.ApprovalItem{{ID: "late"}},
	}
	model, _ = drive(t, model, late)
	if model.approvals.loaded {
		t.Fatal("result for a replaced filter must be discarded")
	}
}

func TestPageNavigation(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn

	model, command := drive(t, model, keyRunes("5"))
	if model.page != PageAudit {
		t.Fatalf("page = %v, want audit", model.page)
	}
	if command == nil {
		t.Fatal("switching pages must fetch")
	}
	if !model.polling[pollAudit] {
		t.Fatal("switching pages must start the page's refresh loop")
	}
}

func TestOpenApprovalEditorAndReject(t *testing.T) {
	harness := newHarness()
	harness.backend.detail = api.ApprovalItem{
		ID: "appr-1", Filename: "reply.md", Domain: "email", Content: "# Draft\n\nbody",
	}
	model := harness.model()
	model.phase = authLoggedIn
	model.page = PageApprovals

	model, _ = drive(t, model, approvalsLoadedMsg{
		fetchResult: fetchResult{key: model.approvalsKey()},
		items:       []api.ApprovalItem{{ID: "appr-1", Filename: "reply.md", Domain: "email"}},
	})
	model, _ = drive(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.editor == nil {
		t.Fatal("enter on a row must open the editor")
	}
	if !model.editor.loading {
		t.Fatal("editor should be loading until the detail arrives")
	}

	detailKey := keyApprovalDetail + "appr-1"
	model, _ = drive(t, model, approvalDetailMsg{
		fetchResult: fetchResult{key: detailKey, sequence: model.sequences[detailKey]},
		item:        harness.backend.detail,
	})
	if model.editor.loading {
		t.Fatal("editor still loading after detail arrived")
	}
	if got := model.editor.textarea.Value(); !strings.Contains(got, "# Draft") {
		t.Fatalf("editor content = %q", got)
	}

	model, command := drive(t, model, tea.KeyMsg{Type: tea.KeyCtrlX})
	if !model.editor.acting {
		t.Fatal("reject must set the acting flag")
	}
	result, ok := command().(decisionResultMsg)
	if !ok || result.kind != decisionReject {
		t.Fatalf("unexpected command result %v", result)
	}
	if len(harness.backend.rejected) != 1 || harness.backend.rejected[0] != "appr-1" {
		t.Fatalf("backend rejected %v", harness.backend.rejected)
	}

	model, _ = drive(t, model, result)
	if model.editor != nil {
		t.Fatal("a successful decision must close the editor")
	}
	toasts := harness.toasts.Toasts()
	if len(toasts) != 1 || !strings.Contains(toasts[0].Message, "Rejected reply.md") {
		t.Fatalf("toasts = %v", toasts)
	}
}

func TestDoublePressIssuesOneDecision(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	editor := newEditorState(api.ApprovalItem{ID: "a", Content: "x"}, 80, 24)
	model.editor = &editor

	model, first := drive(t, model, tea.KeyMsg{Type: tea.KeyCtrlX})
	if first == nil {
		t.Fatal("first press must issue the decision")
	}
	_, second := drive(t, model, tea.KeyMsg{Type: tea.KeyCtrlX})
	if second != nil {
		t.Fatal("second press while acting must be ignored")
	}
}

func TestEditorSaveKeepsModalOpen(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	editor := newEditorState(api.ApprovalItem{ID: "a", Filename: "a.md", Content: "before"}, 80, 24)
	model.editor = &editor
	model.editor.textarea.SetValue("after")

	model, command := drive(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	result := command().(decisionResultMsg)
	if harness.backend.savedContent["a"] != "after" {
		t.Fatalf("saved content = %q", harness.backend.savedContent["a"])
	}

	model, _ = drive(t, model, result)
	if model.editor == nil {
		t.Fatal("save must not close the editor")
	}
	if model.editor.status != "Draft saved" {
		t.Fatalf("status = %q", model.editor.status)
	}
}

func TestEditorFailureShowsFixedCopy(t *testing.T) {
	cases := []struct {
		kind decisionKind
		want string
	}{
		{decisionSave, "Save failed"},
		{decisionApprove, "Approve failed"},
		{decisionReject, "Reject failed"},
	}
	for _, test := range cases {
		harness := newHarness()
		model := harness.model()
		model.phase = authLoggedIn
		editor := newEditorState(api.ApprovalItem{ID: "a", Filename: "a.md", Content: "x"}, 80, 24)
		editor.acting = true
		model.editor = &editor

		model, _ = drive(t, model, decisionResultMsg{
			kind: test.kind, approvalID: "a",
			err: errors.New("500 internal server error"),
		})
		if model.editor == nil {
			t.Fatalf("%s: a failed decision must keep the modal open", test.want)
		}
		if model.editor.status != test.want {
			t.Fatalf("status = %q, want %q", model.editor.status, test.want)
		}
		if model.editor.acting {
			t.Fatalf("%s: acting flag must clear so the operator can retry", test.want)
		}
	}
}

func TestNotificationPanelClearsUnread(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	harness.notifications.AddEvent(notify.Event{Type: "task_added", Message: "New task added"})
	if harness.notifications.UnreadCount() != 1 {
		t.Fatal("setup: expected one unread")
	}

	model, _ = drive(t, model, keyRunes("n"))
	if !model.notificationsOpen {
		t.Fatal("n must open the notification panel")
	}
	if harness.notifications.UnreadCount() != 0 {
		t.Fatal("opening the panel must clear the unread counter")
	}

	model, _ = drive(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if model.notificationsOpen {
		t.Fatal("esc must close the panel")
	}
}

func TestToastExpiry(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	toast := harness.toasts.Add(notify.ToastInfo, "hello")

	model, command := drive(t, model, storeChangedMsg{})
	if !model.scheduledToasts[toast.ID] {
		t.Fatal("store change must schedule toast expiry")
	}
	if command == nil {
		t.Fatal("expected a re-arm plus expiry batch")
	}

	model, _ = drive(t, model, toastExpireMsg{id: toast.ID})
	if len(harness.toasts.Toasts()) != 0 {
		t.Fatal("expiry must remove the toast")
	}
	if model.scheduledToasts[toast.ID] {
		t.Fatal("expiry must forget the scheduled ID")
	}
}

func TestDryRunToggleConfirm(t *testing.T) {
	t.Setenv("WEBXES_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	model.page = PageSettings

	model, _ = drive(t, model, settingsLoadedMsg{
		fetchResult: fetchResult{key: keySettings},
		settings:    api.Settings{DryRun: false, VaultPath: "/vault"},
	})
	if !model.settings.loaded {
		t.Fatal("settings not loaded")
	}

	model, _ = drive(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.settings.confirm == nil || *model.settings.confirm != true {
		t.Fatal("enter on the mode row must ask to confirm enabling dry-run")
	}

	model, command := drive(t, model, keyRunes("y"))
	if !model.settings.toggling {
		t.Fatal("confirm must start the toggle")
	}
	result := command().(dryRunResultMsg)
	if len(harness.backend.dryRunSet) != 1 || harness.backend.dryRunSet[0] != true {
		t.Fatalf("backend saw %v", harness.backend.dryRunSet)
	}

	model, _ = drive(t, model, result)
	if !model.settings.settings.DryRun {
		t.Fatal("successful toggle must apply locally")
	}
}

func TestDryRunConfirmCancel(t *testing.T) {
	t.Setenv("WEBXES_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	model.page = PageSettings
	model, _ = drive(t, model, settingsLoadedMsg{
		fetchResult: fetchResult{key: keySettings},
		settings:    api.Settings{DryRun: true},
	})

	model, _ = drive(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model, command := drive(t, model, keyRunes("n"))
	if model.settings.confirm != nil {
		t.Fatal("n must dismiss the confirm overlay")
	}
	if command != nil {
		t.Fatal("cancel must not call the backend")
	}
	if len(harness.backend.dryRunSet) != 0 {
		t.Fatal("cancel must not change the mode")
	}
}

func TestLogout(t *testing.T) {
	harness := newHarness()
	harness.credentials.token = "tok"
	model := harness.model()
	model.phase = authLoggedIn

	model, command := drive(t, model, tea.KeyMsg{Type: tea.KeyCtrlL})
	result := command().(logoutMsg)
	if harness.credentials.clears != 1 {
		t.Fatalf("clears = %d, want 1", harness.credentials.clears)
	}
	model, _ = drive(t, model, result)
	if model.phase != authLoggedOut {
		t.Fatal("logout must return to the login view")
	}
	if harness.push.closed != 1 {
		t.Fatalf("push closed %d times, want 1", harness.push.closed)
	}
}

func TestPollTickDiesOnInactivePage(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model.phase = authLoggedIn
	model.page = PageDashboard
	model.polling[pollAudit] = true

	model, command := drive(t, model, pollTickMsg{key: pollAudit})
	if command != nil {
		t.Fatal("an inactive page's poll tick must not refetch")
	}
	if model.polling[pollAudit] {
		t.Fatal("the loop must mark itself stopped")
	}
}

func TestSpliceOverlay(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	overlay := "XX\nYY"
	got := spliceOverlay(base, overlay, 1, 3)
	want := "aaaaaaaaaa\nbbbXXbbbbb\ncccYYccccc"
	if got != want {
		t.Errorf("spliceOverlay:\ngot  %q\nwant %q", got, want)
	}
}

func TestLoginViewRenders(t *testing.T) {
	harness := newHarness()
	model := harness.model()
	model, _ = drive(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})
	model, _ = drive(t, model, authCheckedMsg{err: api.ErrUnauthorized})
	view := model.View()
	if !strings.Contains(view, "WEBXES Operations Console") {
		t.Error("login view missing the product title")
	}
}
