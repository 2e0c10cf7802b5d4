// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// noteModal is a small free-text editor for the note that accompanies an
// approve or reject decision. It keeps its own rune buffer rather than a
// textarea because the note is short and the modal needs full control of
// Enter (newline) versus Ctrl+D (submit).
type noteModal struct {
	buffer []rune
	cursor int
}

const noteModalWidth = 56

func newNoteModal(existing string) noteModal {
	buffer := []rune(existing)
	return noteModal{buffer: buffer, cursor: len(buffer)}
}

func (modal *noteModal) insert(runes []rune) {
	modal.buffer = append(modal.buffer[:modal.cursor],
		append(append([]rune{}, runes...), modal.buffer[modal.cursor:]...)...)
	modal.cursor += len(runes)
}

func (modal *noteModal) backspace() {
	if modal.cursor == 0 {
		return
	}
	modal.buffer = append(modal.buffer[:modal.cursor-1], modal.buffer[modal.cursor:]...)
	modal.cursor--
}

func (modal *noteModal) text() string {
	return strings.TrimSpace(string(modal.buffer))
}

// updateNoteModal routes keys while the note overlay is open. Ctrl+D
// stores the note on the editor; Esc discards the edit.
func (model Model) updateNoteModal(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return model, nil
	}
	editor := model.editor
	modal := editor.note

	switch keyMessage.Type {
	case tea.KeyEscape:
		editor.note = nil
		return model, nil
	case tea.KeyCtrlD:
		editor.noteText = modal.text()
		editor.note = nil
		return model, nil
	case tea.KeyEnter:
		modal.insert([]rune{'\n'})
		return model, nil
	case tea.KeyBackspace:
		modal.backspace()
		return model, nil
	case tea.KeyLeft:
		if modal.cursor > 0 {
			modal.cursor--
		}
		return model, nil
	case tea.KeyRight:
		if modal.cursor < len(modal.buffer) {
			modal.cursor++
		}
		return model, nil
	case tea.KeyHome:
		modal.cursor = 0
		return model, nil
	case tea.KeyEnd:
		modal.cursor = len(modal.buffer)
		return model, nil
	case tea.KeySpace:
		modal.insert([]rune{' '})
		return model, nil
	case tea.KeyRunes:
		modal.insert(keyMessage.Runes)
		return model, nil
	}
	return model, nil
}

func (modal *noteModal) view(theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render("Decision note")

	// Render the buffer with a block cursor at the insertion point.
	before := string(modal.buffer[:modal.cursor])
	after := ""
	cursorCell := lipgloss.NewStyle().Reverse(true).Render(" ")
	if modal.cursor < len(modal.buffer) {
		cursorCell = lipgloss.NewStyle().Reverse(true).Render(string(modal.buffer[modal.cursor]))
		after = string(modal.buffer[modal.cursor+1:])
	}
	body := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(noteModalWidth - 4).
		Render(before + cursorCell + after)

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("ctrl+d submit  esc cancel")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.OverlayBorder).
		Background(theme.OverlayBackground).
		Padding(0, 1).
		Width(noteModalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help))
}
