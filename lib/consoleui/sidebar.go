// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// sidebarEntry pairs a page with its shortcut and an optional badge
// count pulled from the stats snapshot.
type sidebarEntry struct {
	page     Page
	shortcut string
	badge    int
}

func (model Model) sidebarEntries() []sidebarEntry {
	badges := map[Page]int{}
	if model.statsLoaded {
		badges[PageApprovals] = model.stats.ApprovalsWaiting
		badges[PageInbox] = model.stats.PendingTasks
	}
	return []sidebarEntry{
		{page: PageDashboard, shortcut: "1"},
		{page: PageApprovals, shortcut: "2", badge: badges[PageApprovals]},
		{page: PageSocial, shortcut: "3"},
		{page: PageInbox, shortcut: "4", badge: badges[PageInbox]},
		{page: PageAudit, shortcut: "5"},
		{page: PageSettings, shortcut: "6"},
	}
}

func (model Model) viewSidebar() string {
	theme := model.theme

	brand := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Padding(0, 1).Render("WEBXES")

	var rows []string
	rows = append(rows, brand, "")
	for _, entry := range model.sidebarEntries() {
		label := fmt.Sprintf("%s %s", entry.shortcut, entry.page.Title())
		if entry.badge > 0 {
			label += lipgloss.NewStyle().Foreground(theme.AccentColor).
				Render(fmt.Sprintf(" (%d)", entry.badge))
		}
		style := lipgloss.NewStyle().Padding(0, 1).Width(sidebarWidth - 2)
		if entry.page == model.page {
			style = style.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Bold(true)
		} else {
			style = style.Foreground(theme.NormalText)
		}
		rows = append(rows, style.Render(label))
	}

	rows = append(rows, "", model.viewBell(), model.viewConnection())
	rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.HelpText).Padding(0, 1).
		Render("n alerts  ctrl+l logout"))

	column := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(model.contentHeight()).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(theme.BorderColor).
		Render(column)
}

// viewBell renders the notification bell with the unread count, capped
// at 9+ like a phone badge.
func (model Model) viewBell() string {
	theme := model.theme
	unread := model.notifications.UnreadCount()
	bell := "○"
	style := lipgloss.NewStyle().Foreground(theme.FaintText)
	if unread > 0 {
		bell = "●"
		style = lipgloss.NewStyle().Foreground(theme.AccentColor)
	}
	count := ""
	switch {
	case unread > 9:
		count = " 9+"
	case unread > 0:
		count = fmt.Sprintf(" %d", unread)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(style.Render(bell+count) + " alerts")
}

func (model Model) viewConnection() string {
	theme := model.theme
	if model.notifications.Connected() {
		return lipgloss.NewStyle().Padding(0, 1).Render(
			lipgloss.NewStyle().Foreground(theme.ConnectionLive).Render("●") + " live")
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.NewStyle().Foreground(theme.ConnectionLost).Render("●") + " offline")
}
