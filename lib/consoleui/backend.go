// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"

	"github.com/webxes-tech/console/lib/api"
)

// Backend abstracts the REST API for the TUI. The api package's Client is
// the production implementation; tests substitute an in-memory fake. The
// method set mirrors the backend's endpoints one to one.
type Backend interface {
	// Login exchanges the operator password for a bearer token.
	Login(ctx context.Context, password string) (string, error)

	// CheckAuth verifies the stored credential. Returns
	// api.ErrUnauthorized when the backend rejects it.
	CheckAuth(ctx context.Context) error

	// DashboardStats fetches headline counters, service health, and the
	// recent-activity timeline.
	DashboardStats(ctx context.Context) (*api.DashboardStats, error)

	// Approvals lists pending artifacts, optionally filtered by domain.
	Approvals(ctx context.Context, domain string) ([]api.ApprovalItem, error)

	// Approval fetches one artifact with full content.
	Approval(ctx context.Context, id string) (*api.ApprovalItem, error)

	// UpdateApprovalContent saves an edited draft without deciding it.
	UpdateApprovalContent(ctx context.Context, id, content string) error

	// Approve releases the artifact; Reject withholds it. The note is
	// optional ("" for none).
	Approve(ctx context.Context, id, note string) error
	Reject(ctx context.Context, id, note string) error

	// Inbox lists inbox items, optionally filtered by type.
	Inbox(ctx context.Context, typeFilter string) ([]api.InboxItem, error)

	// InboxItem fetches one inbox item with full content.
	InboxItem(ctx context.Context, id string) (*api.InboxItem, error)

	// AuditEvents fetches one page of the audit trail.
	AuditEvents(ctx context.Context, query api.AuditQuery) (*api.AuditPage, error)

	// AuditSummary fetches aggregate audit counts.
	AuditSummary(ctx context.Context) (*api.AuditSummary, error)

	// GetSettings fetches system settings; SetDryRun toggles dry-run mode.
	GetSettings(ctx context.Context) (*api.Settings, error)
	SetDryRun(ctx context.Context, enabled bool) error

	// GenerateSocialPost drafts a post from a prompt. The draft lands in
	// the approval queue.
	GenerateSocialPost(ctx context.Context, message string) (*api.GeneratedPost, error)
}

// CredentialStore is the session surface the UI needs: read the token for
// gating, store a fresh one at login, drop it at logout or on a 401.
type CredentialStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

// PushController is the push channel lifecycle as seen by the UI. Start is
// called when the operator is authenticated, Close at logout and quit.
type PushController interface {
	Start()
	Close()
}

var _ Backend = (*api.Client)(nil)
