// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console.
type KeyMap struct {
	// List navigation (context-sensitive: list movement or viewport
	// scrolling depending on what is focused).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Page switching.
	PageDashboard key.Binding
	PageApprovals key.Binding
	PageSocial    key.Binding
	PageInbox     key.Binding
	PageAudit     key.Binding
	PageSettings  key.Binding

	// Server-side filter cycling (approval domain tabs, inbox type,
	// audit category/status).
	FilterNext     key.Binding
	FilterPrevious key.Binding

	// Local refinement.
	SearchActivate key.Binding // Enter the local search input.
	SortToggle     key.Binding // Flip newest/oldest ordering.

	// Item interaction.
	Open    key.Binding // Open editor / expand row / submit input.
	Refresh key.Binding

	// Audit paging.
	NextPage     key.Binding
	PreviousPage key.Binding

	// Overlays.
	Notifications key.Binding // Toggle the notification panel.
	DismissToast  key.Binding

	// Editor modal (active only while the editor is open).
	EditorSave    key.Binding
	EditorApprove key.Binding
	EditorReject  key.Binding
	EditorNote    key.Binding // Open the decision-note prompt.
	EditorFocus   key.Binding // Toggle preview/edit focus.

	Back   key.Binding // Close overlay or modal.
	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	PageDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	PageApprovals: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "approvals"),
	),
	PageSocial: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "social"),
	),
	PageInbox: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "inbox"),
	),
	PageAudit: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "audit"),
	),
	PageSettings: key.NewBinding(
		key.WithKeys("6"),
		key.WithHelp("6", "settings"),
	),
	FilterNext: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next filter"),
	),
	FilterPrevious: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev filter"),
	),
	SearchActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SortToggle: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "order"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next page"),
	),
	PreviousPage: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev page"),
	),
	Notifications: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "notifications"),
	),
	DismissToast: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss toast"),
	),
	EditorSave: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	EditorApprove: key.NewBinding(
		key.WithKeys("ctrl+enter", "ctrl+j"),
		key.WithHelp("C-Enter", "approve"),
	),
	EditorReject: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "reject"),
	),
	EditorNote: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "note"),
	),
	EditorFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
