// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webxes-tech/console/lib/api"
	"github.com/webxes-tech/console/lib/notify"
	"github.com/webxes-tech/console/lib/session"
)

// Settings page rows, in display order.
const (
	settingsRowDryRun = iota
	settingsRowEmailAlerts
	settingsRowWebhook
	settingsRowCount
)

// settingsState backs the settings page. The dry-run flag lives on the
// server and toggles through a confirm overlay; the alert preferences
// are local to this machine.
type settingsState struct {
	settings api.Settings
	loaded   bool
	err      error

	// confirm holds the requested dry-run value while the confirm
	// overlay is open.
	confirm   *bool
	toggling  bool
	toggleErr error

	preferences  session.Preferences
	prefsLoaded  bool
	webhookInput textinput.Model
	prefsErr     error

	cursor int
}

func newSettingsState() settingsState {
	webhookInput := textinput.New()
	webhookInput.Placeholder = "https://hooks.example.com/..."
	webhookInput.CharLimit = 256
	webhookInput.Width = 48
	return settingsState{webhookInput: webhookInput}
}

func (model Model) handleSettingsLoaded(message settingsLoadedMsg) (tea.Model, tea.Cmd) {
	if !model.acceptResult(message.fetchResult, keySettings) {
		return model, nil
	}
	state := &model.settings
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		state.err = message.err
		return model, nil
	}
	state.settings = message.settings
	state.loaded = true
	state.err = nil
	if !state.prefsLoaded {
		preferences, err := session.LoadPreferences()
		if err == nil {
			state.preferences = *preferences
			state.webhookInput.SetValue(preferences.WebhookURL)
		}
		state.prefsErr = err
		state.prefsLoaded = true
	}
	return model, nil
}

func (model Model) handleDryRunResult(message dryRunResultMsg) (tea.Model, tea.Cmd) {
	state := &model.settings
	state.toggling = false
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		state.toggleErr = message.err
		return model, model.addToast(notify.ToastError, "Failed to change dry-run mode")
	}
	state.toggleErr = nil
	state.settings.DryRun = message.enabled
	label := "Dry-run enabled"
	if !message.enabled {
		label = "Live mode enabled"
	}
	return model, model.addToast(notify.ToastSuccess, label)
}

func (model Model) updateSettings(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return model, nil
	}
	state := &model.settings

	if state.confirm != nil {
		switch keyMessage.String() {
		case "y", "enter":
			target := *state.confirm
			state.confirm = nil
			state.toggling = true
			return model, model.setDryRun(target)
		case "n", "esc":
			state.confirm = nil
			return model, nil
		}
		return model, nil
	}

	if state.webhookInput.Focused() {
		switch keyMessage.Type {
		case tea.KeyEscape:
			state.webhookInput.Blur()
			state.webhookInput.SetValue(state.preferences.WebhookURL)
			return model, nil
		case tea.KeyEnter:
			state.webhookInput.Blur()
			state.preferences.WebhookURL = state.webhookInput.Value()
			state.prefsErr = session.SavePreferences(&state.preferences)
			return model, nil
		}
		var command tea.Cmd
		state.webhookInput, command = state.webhookInput.Update(message)
		return model, command
	}

	switch keyMessage.String() {
	case "up", "k":
		if state.cursor > 0 {
			state.cursor--
		}
		return model, nil
	case "down", "j":
		if state.cursor < settingsRowCount-1 {
			state.cursor++
		}
		return model, nil
	case "enter":
		switch state.cursor {
		case settingsRowDryRun:
			if !state.loaded || state.toggling {
				return model, nil
			}
			target := !state.settings.DryRun
			state.confirm = &target
			return model, nil
		case settingsRowEmailAlerts:
			state.preferences.EmailAlerts = !state.preferences.EmailAlerts
			state.prefsErr = session.SavePreferences(&state.preferences)
			return model, nil
		case settingsRowWebhook:
			return model, state.webhookInput.Focus()
		}
	}
	return model, nil
}

func (model Model) viewSettings() string {
	theme := model.theme
	width := model.contentWidth()
	state := model.settings

	header := pageHeader(theme, "Settings", width)

	if state.err != nil && !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			errorPanel(theme, "Failed to load settings", state.err, width))
	}
	if !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render("Loading..."))
	}

	dryRunValue := lipgloss.NewStyle().Foreground(theme.StatusSuccess).Render("dry-run")
	if !state.settings.DryRun {
		dryRunValue = lipgloss.NewStyle().Foreground(theme.StatusPending).Render("live")
	}
	if state.toggling {
		dryRunValue = lipgloss.NewStyle().Foreground(theme.FaintText).Render("changing...")
	}

	emailValue := "off"
	if state.preferences.EmailAlerts {
		emailValue = "on"
	}
	webhookValue := state.preferences.WebhookURL
	if state.webhookInput.Focused() {
		webhookValue = state.webhookInput.View()
	} else if webhookValue == "" {
		webhookValue = lipgloss.NewStyle().Foreground(theme.FaintText).Render("(not set)")
	}

	rows := []string{
		settingsRow(theme, "Execution mode", dryRunValue, state.cursor == settingsRowDryRun, width),
		settingsRow(theme, "Email alerts", emailValue, state.cursor == settingsRowEmailAlerts, width),
		settingsRow(theme, "Alert webhook", webhookValue, state.cursor == settingsRowWebhook, width),
	}

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	cloud := "no"
	if state.settings.IsCloud {
		cloud = "yes"
	}
	info := []string{
		sectionTitle(theme, "System"),
		fmt.Sprintf("  %-16s %s", "Vault path", faint.Render(state.settings.VaultPath)),
		fmt.Sprintf("  %-16s %s", "Work zone", faint.Render(state.settings.WorkZone)),
		fmt.Sprintf("  %-16s %s", "Cloud deploy", faint.Render(cloud)),
	}

	var problems []string
	if state.toggleErr != nil {
		problems = append(problems, lipgloss.NewStyle().Foreground(theme.StatusFailure).Padding(0, 2).
			Render(truncate(state.toggleErr.Error(), width-4)))
	}
	if state.prefsErr != nil {
		problems = append(problems, lipgloss.NewStyle().Foreground(theme.StatusFailure).Padding(0, 2).
			Render(truncate("Preferences: "+state.prefsErr.Error(), width-4)))
	}

	footer := lipgloss.NewStyle().Foreground(theme.HelpText).Padding(0, 2).
		Render("up/down select  enter change  r refresh")

	sections := []string{header}
	sections = append(sections, rows...)
	sections = append(sections, "")
	sections = append(sections, info...)
	sections = append(sections, problems...)
	sections = append(sections, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func settingsRow(theme Theme, label, value string, selected bool, width int) string {
	line := fmt.Sprintf("  %-16s %s", label, value)
	style := lipgloss.NewStyle().Width(width - 2)
	if selected {
		style = style.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
	}
	return style.Render(line)
}

// viewDryRunConfirm renders the confirm overlay for a dry-run change.
// Leaving dry-run means real side effects, so that direction gets the
// stronger wording.
func (model Model) viewDryRunConfirm() string {
	theme := model.theme
	target := *model.settings.confirm

	title := "Enable dry-run mode?"
	body := "Outbound actions will be simulated instead of executed."
	if !target {
		title = "Switch to live mode?"
		body = "Approved actions will actually send emails, post content, and move money."
	}

	frame := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(title),
		"",
		lipgloss.NewStyle().Foreground(theme.NormalText).Width(48).Render(body),
		"",
		lipgloss.NewStyle().Foreground(theme.HelpText).Render("y confirm  n cancel"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.OverlayBorder).
		Background(theme.OverlayBackground).
		Padding(1, 2).
		Render(frame)
}
