// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webxes-tech/console/lib/api"
)

// inboxType pairs a server-side type filter with its tab label.
type inboxType struct {
	value string
	label string
}

var inboxTypes = []inboxType{
	{value: "", label: "All"},
	{value: "email", label: "Email"},
	{value: "task", label: "Tasks"},
	{value: "briefing", label: "Briefings"},
}

// inboxState backs the inbox page. Item bodies load lazily on expansion
// and are cached per item for the life of the page.
type inboxState struct {
	items  []api.InboxItem
	loaded bool
	err    error

	typeIndex   int
	refinement  Refinement
	searching   bool
	searchInput textinput.Model
	cursor      int

	expandedID    string
	contentCache  map[string]string
	detailLoading bool
	detailErr     error
}

func newInboxState() inboxState {
	searchInput := textinput.New()
	searchInput.Placeholder = "search"
	searchInput.CharLimit = 128
	searchInput.Width = 28
	return inboxState{
		searchInput:  searchInput,
		contentCache: make(map[string]string),
	}
}

func (state inboxState) typeFilter() string {
	return inboxTypes[state.typeIndex].value
}

func (state inboxState) visible() []api.InboxItem {
	return RefineInbox(state.items, state.refinement)
}

func (state *inboxState) clampCursor() {
	visible := state.visible()
	if state.cursor >= len(visible) {
		state.cursor = len(visible) - 1
	}
	if state.cursor < 0 {
		state.cursor = 0
	}
}

func (model Model) handleInboxLoaded(message inboxLoadedMsg) (tea.Model, tea.Cmd) {
	if !model.acceptResult(message.fetchResult, model.inboxKey()) {
		return model, nil
	}
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		model.inbox.err = message.err
		return model, nil
	}
	model.inbox.items = message.items
	model.inbox.loaded = true
	model.inbox.err = nil
	model.inbox.clampCursor()
	return model, nil
}

func (model Model) handleInboxDetail(message inboxDetailMsg) (tea.Model, tea.Cmd) {
	if message.sequence != model.sequences[message.key] {
		return model, nil
	}
	state := &model.inbox
	state.detailLoading = false
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		state.detailErr = message.err
		return model, nil
	}
	state.detailErr = nil
	state.contentCache[message.item.ID] = message.item.Content
	return model, nil
}

func (model Model) updateInbox(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return model, nil
	}
	state := &model.inbox

	if state.searching {
		switch keyMessage.Type {
		case tea.KeyEscape:
			state.searching = false
			state.searchInput.Blur()
			state.searchInput.SetValue("")
			state.refinement.Search = ""
			state.clampCursor()
			return model, nil
		case tea.KeyEnter:
			state.searching = false
			state.searchInput.Blur()
			return model, nil
		}
		var command tea.Cmd
		state.searchInput, command = state.searchInput.Update(message)
		state.refinement.Search = state.searchInput.Value()
		state.clampCursor()
		return model, command
	}

	keys := model.keys
	switch {
	case key.Matches(keyMessage, keys.FilterNext):
		state.typeIndex = (state.typeIndex + 1) % len(inboxTypes)
		state.cursor = 0
		state.expandedID = ""
		return model, model.loadInbox()
	case key.Matches(keyMessage, keys.FilterPrevious):
		state.typeIndex = (state.typeIndex + len(inboxTypes) - 1) % len(inboxTypes)
		state.cursor = 0
		state.expandedID = ""
		return model, model.loadInbox()
	case key.Matches(keyMessage, keys.SearchActivate):
		state.searching = true
		return model, state.searchInput.Focus()
	case key.Matches(keyMessage, keys.SortToggle):
		state.refinement.Order = state.refinement.Order.Toggle()
		return model, nil
	case key.Matches(keyMessage, keys.Up):
		if state.cursor > 0 {
			state.cursor--
		}
		return model, nil
	case key.Matches(keyMessage, keys.Down):
		if state.cursor < len(state.visible())-1 {
			state.cursor++
		}
		return model, nil
	case key.Matches(keyMessage, keys.Open):
		visible := state.visible()
		if state.cursor >= len(visible) {
			return model, nil
		}
		selected := visible[state.cursor]
		if state.expandedID == selected.ID {
			state.expandedID = ""
			return model, nil
		}
		state.expandedID = selected.ID
		state.detailErr = nil
		if _, cached := state.contentCache[selected.ID]; cached || selected.Content != "" {
			if selected.Content != "" {
				state.contentCache[selected.ID] = selected.Content
			}
			return model, nil
		}
		state.detailLoading = true
		return model, model.loadInboxDetail(selected.ID)
	case key.Matches(keyMessage, keys.Back):
		state.expandedID = ""
		return model, nil
	}
	return model, nil
}

func (model Model) viewInbox() string {
	theme := model.theme
	width := model.contentWidth()
	state := model.inbox

	header := pageHeader(theme, "Inbox", width)
	tabs := model.viewInboxTabs()

	if state.err != nil && !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, tabs,
			errorPanel(theme, "Failed to load inbox", state.err, width))
	}
	if !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, tabs,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render("Loading..."))
	}

	visible := state.visible()
	if len(visible) == 0 {
		empty := "No items in inbox"
		if state.refinement.Search != "" {
			empty = "No items match the search"
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, tabs,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render(empty))
	}

	var rows []string
	for index, item := range visible {
		rows = append(rows, model.viewInboxRow(item, index == state.cursor, width))
		if item.ID == state.expandedID {
			rows = append(rows, model.viewInboxContent(item, width))
		}
	}

	footer := lipgloss.NewStyle().Foreground(theme.HelpText).Padding(0, 2).
		Render("enter expand  l/h type  / search  o sort  r refresh")

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs,
		strings.Join(rows, "\n"), footer)
}

func (model Model) viewInboxTabs() string {
	theme := model.theme
	var tabs []string
	for index, entry := range inboxTypes {
		style := lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 1)
		if index == model.inbox.typeIndex {
			style = style.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Bold(true)
		}
		tabs = append(tabs, style.Render(entry.label))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (model Model) viewInboxRow(item api.InboxItem, selected bool, width int) string {
	theme := model.theme
	marker := " "
	if item.ID == model.inbox.expandedID {
		marker = "▸"
	}
	line := fmt.Sprintf("%s %-10s %-36s %8s  %s", marker,
		item.ItemType(), truncate(item.Filename, 36), relativeUnix(item.Modified, time.Now()),
		truncate(firstLine(item.Preview), width-64))
	style := lipgloss.NewStyle().Width(width - 2)
	if selected {
		style = style.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
	}
	return style.Render(truncate(line, width-2))
}

func (model Model) viewInboxContent(item api.InboxItem, width int) string {
	theme := model.theme
	state := model.inbox

	var body string
	switch {
	case state.detailLoading:
		body = lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading...")
	case state.detailErr != nil:
		body = lipgloss.NewStyle().Foreground(theme.StatusFailure).
			Render("Failed to load content: " + state.detailErr.Error())
	default:
		body = renderMarkdownPreview(state.contentCache[item.ID], theme, width-8)
		if body == "" {
			body = lipgloss.NewStyle().Foreground(theme.FaintText).Render("(empty)")
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.BorderColor).
		Padding(0, 2).
		Margin(0, 0, 0, 4).
		Render(body)
}
