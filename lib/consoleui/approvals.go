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

// approvalDomain pairs a server-side filter value with its tab label.
// The empty value means no filter.
type approvalDomain struct {
	value string
	label string
}

var approvalDomains = []approvalDomain{
	{value: "", label: "All"},
	{value: "email", label: "Email"},
	{value: "social_media", label: "Social Media"},
	{value: "payments", label: "Payments"},
}

// approvalsState backs the approval queue page. The domain tab is a
// server-side filter baked into the fetch key; the refinement is applied
// locally on every render.
type approvalsState struct {
	items  []api.ApprovalItem
	loaded bool
	err    error

	domainIndex int
	refinement  Refinement
	searching   bool
	searchInput textinput.Model
	cursor      int
}

func newApprovalsState() approvalsState {
	searchInput := textinput.New()
	searchInput.Placeholder = "search"
	searchInput.CharLimit = 128
	searchInput.Width = 28
	return approvalsState{searchInput: searchInput}
}

func (state approvalsState) domain() string {
	return approvalDomains[state.domainIndex].value
}

// visible returns the refined view of the loaded items.
func (state approvalsState) visible() []api.ApprovalItem {
	return RefineApprovals(state.items, state.refinement)
}

func (state *approvalsState) clampCursor() {
	visible := state.visible()
	if state.cursor >= len(visible) {
		state.cursor = len(visible) - 1
	}
	if state.cursor < 0 {
		state.cursor = 0
	}
}

func (model Model) handleApprovalsLoaded(message approvalsLoadedMsg) (tea.Model, tea.Cmd) {
	if message.key == keySocialApprovals {
		if !model.acceptResult(message.fetchResult, keySocialApprovals) {
			return model, nil
		}
		if message.err != nil {
			if model.handleUnauthorized(message.err) {
				return model, nil
			}
			model.social.pendingErr = message.err
			return model, nil
		}
		model.social.pending = message.items
		model.social.pendingErr = nil
		return model, nil
	}

	if !model.acceptResult(message.fetchResult, model.approvalsKey()) {
		return model, nil
	}
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		model.approvals.err = message.err
		return model, nil
	}
	model.approvals.items = message.items
	model.approvals.loaded = true
	model.approvals.err = nil
	model.approvals.clampCursor()
	return model, nil
}

func (model Model) updateApprovals(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return model, nil
	}
	state := &model.approvals

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
		state.domainIndex = (state.domainIndex + 1) % len(approvalDomains)
		state.cursor = 0
		return model, model.loadApprovals()
	case key.Matches(keyMessage, keys.FilterPrevious):
		state.domainIndex = (state.domainIndex + len(approvalDomains) - 1) % len(approvalDomains)
		state.cursor = 0
		return model, model.loadApprovals()
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
	case key.Matches(keyMessage, keys.Home):
		state.cursor = 0
		return model, nil
	case key.Matches(keyMessage, keys.End):
		state.cursor = len(state.visible()) - 1
		state.clampCursor()
		return model, nil
	case key.Matches(keyMessage, keys.Open):
		visible := state.visible()
		if state.cursor >= len(visible) {
			return model, nil
		}
		selected := visible[state.cursor]
		editor := newEditorState(selected, model.contentWidth(), model.contentHeight())
		model.editor = &editor
		return model, tea.Batch(model.loadApprovalDetail(selected.ID), editor.initCmd())
	}
	return model, nil
}

func (model Model) viewApprovals() string {
	theme := model.theme
	width := model.contentWidth()
	state := model.approvals

	header := pageHeader(theme, "Approvals", width)
	tabs := model.viewDomainTabs()
	controls := model.viewApprovalControls()

	if state.err != nil && !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, tabs,
			errorPanel(theme, "Failed to load approvals", state.err, width))
	}
	if !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, tabs,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render("Loading..."))
	}

	visible := state.visible()
	if len(visible) == 0 {
		empty := "No pending approvals"
		if state.refinement.Search != "" {
			empty = "No approvals match the search"
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, tabs, controls,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render(empty))
	}

	listHeight := model.contentHeight() - 6
	if listHeight < 3 {
		listHeight = 3
	}
	start := 0
	if state.cursor >= listHeight {
		start = state.cursor - listHeight + 1
	}

	var rows []string
	for index := start; index < len(visible) && index < start+listHeight; index++ {
		rows = append(rows, model.viewApprovalRow(visible[index], index == state.cursor, width))
	}

	footer := lipgloss.NewStyle().Foreground(theme.HelpText).Padding(0, 2).
		Render("enter open  l/h domain  / search  o sort  r refresh")

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, controls,
		strings.Join(rows, "\n"), footer)
}

func (model Model) viewDomainTabs() string {
	theme := model.theme
	var tabs []string
	for index, domain := range approvalDomains {
		style := lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 1)
		if index == model.approvals.domainIndex {
			style = style.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Bold(true)
		}
		tabs = append(tabs, style.Render(domain.label))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (model Model) viewApprovalControls() string {
	theme := model.theme
	state := model.approvals
	order := lipgloss.NewStyle().Foreground(theme.FaintText).Render("sort: " + state.refinement.Order.Label())
	search := ""
	if state.searching {
		search = "  " + state.searchInput.View()
	} else if state.refinement.Search != "" {
		search = "  " + lipgloss.NewStyle().Foreground(theme.AccentColor).
			Render("search: "+state.refinement.Search)
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(order + search)
}

func (model Model) viewApprovalRow(item api.ApprovalItem, selected bool, width int) string {
	theme := model.theme

	accent := lipgloss.NewStyle().Foreground(theme.DomainColor(item.Domain)).Render("▌")
	name := truncate(item.Filename, 36)
	age := relativeUnix(item.Modified, time.Now())
	badge := ""
	if len(item.Metadata) > 0 {
		badge = fmt.Sprintf(" [%s]", pluralize(len(item.Metadata), "field"))
	}

	line := fmt.Sprintf("%s %-36s %8s%s", accent, name, age, badge)
	preview := "    " + truncate(firstLine(item.Preview), width-6)

	rowStyle := lipgloss.NewStyle().Width(width - 2)
	previewStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(width - 2)
	if selected {
		rowStyle = rowStyle.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
		previewStyle = previewStyle.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
	}
	return rowStyle.Render(truncate(line, width-2)) + "\n" + previewStyle.Render(preview)
}
