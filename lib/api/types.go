// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

// ApprovalItem is one artifact awaiting human review. List endpoints return
// it without Content; the detail endpoint fills Content in.
type ApprovalItem struct {
	// ID is the artifact's stable identifier, derived from its filename.
	ID string `json:"id"`

	// Filename is the artifact's name in the vault, e.g. "post1.md".
	Filename string `json:"filename"`

	// Domain is the operational area: "email", "social_media", or
	// "payments". New domains may appear as the system grows; unknown
	// values must still render.
	Domain string `json:"domain"`

	// Preview is the first portion of the artifact's content, for list rows.
	Preview string `json:"preview"`

	// Content is the full artifact body. Populated only by the detail
	// endpoint; empty in list responses.
	Content string `json:"content,omitempty"`

	// Metadata carries the artifact's frontmatter key/values (type,
	// platform, recipient, and so on).
	Metadata map[string]string `json:"metadata,omitempty"`

	// Modified is the artifact's last-modified time as a Unix timestamp.
	// The backend serializes the raw filesystem mtime, which carries a
	// fractional second part.
	Modified float64 `json:"modified"`
}

// ApprovalList is the wire format for GET /api/approvals.
type ApprovalList struct {
	Items []ApprovalItem `json:"items"`
}

// InboxItem is one item in the operator's inbox. Same shape as an approval;
// the metadata "type" value distinguishes email, task, and briefing items.
type InboxItem struct {
	ID       string            `json:"id"`
	Filename string            `json:"filename"`
	Preview  string            `json:"preview"`
	Content  string            `json:"content,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Modified float64           `json:"modified"`
}

// ItemType returns the item's kind from its metadata: "email", "task",
// or "briefing". Items without a type render with an empty badge.
func (item InboxItem) ItemType() string {
	return item.Metadata["type"]
}

// InboxList is the wire format for GET /api/inbox.
type InboxList struct {
	Items []InboxItem `json:"items"`
}

// AuditEvent is one entry in the system's audit trail.
type AuditEvent struct {
	// Category groups events by subsystem (email, social, payment, system).
	Category string `json:"category"`

	// Action names what happened, e.g. "approval_granted".
	Action string `json:"action"`

	// Status is the outcome: success, failure, pending, or blocked.
	// The set is open; unknown values must still render.
	Status string `json:"status"`

	// Timestamp is the event time in RFC 3339 form, as logged.
	Timestamp string `json:"timestamp"`

	// Details is a free-form human-readable description.
	Details string `json:"details,omitempty"`
}

// AuditQuery selects a page of audit events. Zero values mean "no filter";
// Page is 1-based and PerPage defaults server-side to 50.
type AuditQuery struct {
	Category string
	Status   string
	Search   string
	Page     int
	PerPage  int
}

// AuditPage is the wire format for GET /api/audit.
type AuditPage struct {
	Events  []AuditEvent `json:"events"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Pages   int          `json:"pages"`
}

// AuditSummary is the wire format for GET /api/audit/summary.
type AuditSummary struct {
	TotalEvents int            `json:"total_events"`
	ByCategory  map[string]int `json:"by_category"`
	ByStatus    map[string]int `json:"by_status"`
}

// ServiceHealth reports one background service's liveness, judged from the
// age of its most recent log activity.
type ServiceHealth struct {
	Name   string `json:"name"`
	Status string `json:"status"`

	// LastUpdateMinutesAgo is nil when the service has never written a log.
	LastUpdateMinutesAgo *float64 `json:"last_update_minutes_ago"`
}

// DashboardStats is the wire format for GET /api/dashboard/stats.
type DashboardStats struct {
	PendingTasks     int             `json:"pending_tasks"`
	ApprovalsWaiting int             `json:"approvals_waiting"`
	DoneToday        int             `json:"done_today"`
	Services         []ServiceHealth `json:"services"`
	Timeline         []AuditEvent    `json:"timeline"`
}

// Settings is the wire format for GET /api/settings.
type Settings struct {
	// DryRun true means outbound actions are simulated, not executed.
	DryRun bool `json:"dry_run"`

	VaultPath string `json:"vault_path"`
	WorkZone  string `json:"work_zone"`
	IsCloud   bool   `json:"is_cloud"`
}

// GeneratedPost is the wire format for POST /api/social/generate. The post
// lands in the approval queue; Status is always "pending_approval".
type GeneratedPost struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}
