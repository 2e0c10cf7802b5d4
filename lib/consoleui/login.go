// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginState backs the password gate shown before the console proper.
type loginState struct {
	input      textinput.Model
	submitting bool
	err        error
}

func newLoginState() loginState {
	input := textinput.New()
	input.Placeholder = "password"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.CharLimit = 256
	input.Width = 32
	return loginState{input: input}
}

func (state *loginState) focus() tea.Cmd {
	return state.input.Focus()
}

// updateLogin handles every message while the operator is logged out.
func (model Model) updateLogin(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		var command tea.Cmd
		model.login.input, command = model.login.input.Update(message)
		return model, command
	}

	switch keyMessage.Type {
	case tea.KeyCtrlC:
		model.push.Close()
		return model, tea.Quit
	case tea.KeyEnter:
		if model.login.submitting {
			return model, nil
		}
		password := model.login.input.Value()
		if password == "" {
			return model, nil
		}
		model.login.submitting = true
		model.login.err = nil
		return model, model.submitLogin(password)
	}

	if model.login.submitting {
		return model, nil
	}
	if !model.login.input.Focused() {
		return model, model.login.focus()
	}
	var command tea.Cmd
	model.login.input, command = model.login.input.Update(message)
	return model, command
}

func (model Model) viewLogin() string {
	theme := model.theme

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Render("WEBXES Operations Console")

	prompt := model.login.input.View()
	status := ""
	switch {
	case model.login.submitting:
		status = lipgloss.NewStyle().Foreground(theme.FaintText).Render("Signing in...")
	case model.login.err != nil:
		status = lipgloss.NewStyle().Foreground(theme.StatusFailure).Render(model.login.err.Error())
	}

	hint := lipgloss.NewStyle().Foreground(theme.HelpText).Render("enter submit  ctrl+c quit")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, "", status, hint))

	return model.viewCentered(box)
}
