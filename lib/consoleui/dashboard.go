// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardState exists for symmetry with the other pages; the dashboard
// renders straight from the shared stats snapshot.
type dashboardState struct{}

func (model Model) updateDashboard(tea.Msg) (tea.Model, tea.Cmd) {
	return model, nil
}

func (model Model) viewDashboard() string {
	theme := model.theme
	width := model.contentWidth()

	header := pageHeader(theme, "Dashboard", width)

	if model.statsErr != nil && !model.statsLoaded {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			errorPanel(theme, "Failed to load dashboard data", model.statsErr, width))
	}
	if !model.statsLoaded {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render("Loading..."))
	}

	stats := model.stats
	active := 0
	for _, service := range stats.Services {
		if service.Status == "active" {
			active++
		}
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(theme, "Pending Tasks", stats.PendingTasks),
		statCard(theme, "Approvals Waiting", stats.ApprovalsWaiting),
		statCard(theme, "Done Today", stats.DoneToday),
		statCard(theme, "Active Services", active),
	)

	sections := []string{header, cards, "", model.viewServices(width)}
	sections = append(sections, "", model.viewTimeline(width))
	if model.statsErr != nil {
		// A poll failed after an earlier success; keep showing the last
		// good snapshot with a quiet warning.
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.StatusPending).Padding(0, 2).
				Render("Refresh failed, showing cached data"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func statCard(theme Theme, label string, value int) string {
	number := lipgloss.NewStyle().Bold(true).Foreground(theme.AccentColor).
		Render(fmt.Sprintf("%d", value))
	caption := lipgloss.NewStyle().Foreground(theme.FaintText).Render(label)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 2).
		Margin(0, 1, 0, 0).
		Render(lipgloss.JoinVertical(lipgloss.Center, number, caption))
}

func (model Model) viewServices(width int) string {
	theme := model.theme
	title := sectionTitle(theme, "Services")
	if len(model.stats.Services) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2).Render("No services reported"))
	}
	var rows []string
	for _, service := range model.stats.Services {
		dot := lipgloss.NewStyle().Foreground(theme.ServiceColor(service.Status)).Render("●")
		age := "never"
		if service.LastUpdateMinutesAgo != nil {
			age = fmt.Sprintf("%.0fm ago", *service.LastUpdateMinutesAgo)
		}
		row := fmt.Sprintf("  %s %-20s %-10s %s", dot,
			truncate(service.Name, 20), service.Status,
			lipgloss.NewStyle().Foreground(theme.FaintText).Render(age))
		rows = append(rows, truncate(row, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
}

func (model Model) viewTimeline(width int) string {
	theme := model.theme
	title := sectionTitle(theme, "Recent Activity")
	if len(model.stats.Timeline) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2).Render("No recent activity"))
	}
	limit := model.contentHeight() - 14
	if limit < 3 {
		limit = 3
	}
	var rows []string
	for index, event := range model.stats.Timeline {
		if index >= limit {
			break
		}
		dot := lipgloss.NewStyle().Foreground(theme.StatusColor(event.Status)).Render("●")
		when := lipgloss.NewStyle().Foreground(theme.FaintText).Render(auditTimestamp(event.Timestamp))
		row := fmt.Sprintf("  %s %s  %s  %s", dot, when,
			truncate(event.Action, 32),
			lipgloss.NewStyle().Foreground(theme.FaintText).Render(truncate(event.Details, 40)))
		rows = append(rows, truncate(row, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
}

// pageHeader renders the one-line title bar every page starts with.
func pageHeader(theme Theme, title string, width int) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Width(width).
		Padding(0, 2).
		Render(title)
}

func sectionTitle(theme Theme, title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText).Padding(0, 2).Render(title)
}

// errorPanel renders a page-level load failure with its cause.
func errorPanel(theme Theme, headline string, err error, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(theme.StatusFailure).Render(headline),
		lipgloss.NewStyle().Foreground(theme.FaintText).Render(truncate(err.Error(), width-8)),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.StatusFailure).
		Padding(1, 2).
		Margin(1, 2).
		Render(body)
}
