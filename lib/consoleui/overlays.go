// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webxes-tech/console/lib/notify"
)

// notificationPanelLimit caps how many ring entries the panel shows; the
// ring itself holds more.
const notificationPanelLimit = 20

const notificationPanelWidth = 64

// addToast pushes a toast and schedules its expiry in one step, for
// toasts raised by the UI itself rather than by the push channel.
func (model Model) addToast(kind notify.ToastKind, message string) tea.Cmd {
	toast := model.toasts.Add(kind, message)
	model.scheduledToasts[toast.ID] = true
	id := toast.ID
	return tea.Tick(notify.ToastLifetime, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
}

// updateNotificationPanel handles keys while the notification panel is
// open. The panel keeps its own cursor in the model because it is
// chrome, not a page.
func (model Model) updateNotificationPanel(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return model, nil
	}
	keys := model.keys
	switch {
	case key.Matches(keyMessage, keys.Back), key.Matches(keyMessage, keys.Notifications):
		model.notificationsOpen = false
		return model, nil
	case key.Matches(keyMessage, keys.Quit):
		model.push.Close()
		return model, tea.Quit
	}
	switch keyMessage.String() {
	case "c":
		model.notifications.ClearAll()
		return model, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(keyMessage.String()[0] - '1')
		model.notifications.RemoveEvent(index)
		return model, nil
	}
	return model, nil
}

func (model Model) viewNotificationPanel() string {
	theme := model.theme
	events := model.notifications.Events()

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render("Notifications")

	var rows []string
	if len(events) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.FaintText).Render("No notifications"))
	}
	for index, event := range events {
		if index >= notificationPanelLimit {
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.FaintText).
				Render(fmt.Sprintf("... and %d more", len(events)-notificationPanelLimit)))
			break
		}
		ordinal := " "
		if index < 9 {
			ordinal = fmt.Sprintf("%d", index+1)
		}
		when := lipgloss.NewStyle().Foreground(theme.FaintText).
			Render(relativeTime(event.Timestamp, time.Now()))
		rows = append(rows, truncate(fmt.Sprintf("%s %s  %s", ordinal,
			event.Message, when), notificationPanelWidth-4))
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("1-9 dismiss  c clear all  esc close")

	sections := append([]string{title, ""}, rows...)
	sections = append(sections, "", help)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.OverlayBorder).
		Background(theme.OverlayBackground).
		Padding(0, 1).
		Width(notificationPanelWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// viewToasts renders the active toast stack, oldest on top. Returns the
// empty string when there is nothing to show.
func (model Model) viewToasts() string {
	theme := model.theme
	toasts := model.toasts.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	var rows []string
	for _, toast := range toasts {
		rows = append(rows, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ToastColor(toast.Kind)).
			Padding(0, 1).
			Render(truncate(toast.Message, 48)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}
