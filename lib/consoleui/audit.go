// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webxes-tech/console/lib/api"
)

// auditPageSize matches the server's page size for the audit endpoint.
const auditPageSize = 50

// auditState backs the audit log page: three filter inputs, the current
// result page, and a totals summary. Filters apply on Enter and reset
// the page number; paging keys refetch with the same filters.
type auditState struct {
	page   api.AuditPage
	loaded bool
	err    error

	summary       api.AuditSummary
	summaryLoaded bool

	searchInput   textinput.Model
	categoryInput textinput.Model
	statusInput   textinput.Model
	focusIndex    int

	pageNumber int
}

func newAuditState() auditState {
	newInput := func(placeholder string, width int) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 64
		input.Width = width
		return input
	}
	return auditState{
		searchInput:   newInput("search", 24),
		categoryInput: newInput("category", 14),
		statusInput:   newInput("status", 12),
		focusIndex:    -1,
		pageNumber:    1,
	}
}

func (state auditState) query() api.AuditQuery {
	return api.AuditQuery{
		Category: strings.TrimSpace(state.categoryInput.Value()),
		Status:   strings.TrimSpace(state.statusInput.Value()),
		Search:   strings.TrimSpace(state.searchInput.Value()),
		Page:     state.pageNumber,
		PerPage:  auditPageSize,
	}
}

func (state auditState) capturesText() bool {
	return state.focusIndex >= 0
}

func (state *auditState) inputs() []*textinput.Model {
	return []*textinput.Model{&state.searchInput, &state.categoryInput, &state.statusInput}
}

func (state *auditState) blurAll() {
	for _, input := range state.inputs() {
		input.Blur()
	}
	state.focusIndex = -1
}

func (state *auditState) focusInput(index int) tea.Cmd {
	inputs := state.inputs()
	for position, input := range inputs {
		if position == index {
			continue
		}
		input.Blur()
	}
	state.focusIndex = index
	return inputs[index].Focus()
}

func (model Model) handleAuditLoaded(message auditLoadedMsg) (tea.Model, tea.Cmd) {
	if !model.acceptResult(message.fetchResult, model.auditKey()) {
		return model, nil
	}
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		model.audit.err = message.err
		return model, nil
	}
	model.audit.page = message.page
	model.audit.loaded = true
	model.audit.err = nil
	return model, nil
}

func (model Model) handleAuditSummary(message auditSummaryMsg) (tea.Model, tea.Cmd) {
	if !model.acceptResult(message.fetchResult, keyAuditSummary) {
		return model, nil
	}
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		return model, nil
	}
	model.audit.summary = message.summary
	model.audit.summaryLoaded = true
	return model, nil
}

func (model Model) updateAudit(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return model, nil
	}
	state := &model.audit

	if state.capturesText() {
		switch keyMessage.Type {
		case tea.KeyEscape:
			state.blurAll()
			return model, nil
		case tea.KeyTab:
			next := (state.focusIndex + 1) % len(state.inputs())
			return model, state.focusInput(next)
		case tea.KeyEnter:
			state.blurAll()
			state.pageNumber = 1
			return model, model.loadAudit()
		}
		input := state.inputs()[state.focusIndex]
		var command tea.Cmd
		*input, command = input.Update(message)
		return model, command
	}

	keys := model.keys
	switch {
	case key.Matches(keyMessage, keys.SearchActivate):
		return model, state.focusInput(0)
	case key.Matches(keyMessage, keys.NextPage):
		if state.loaded && state.pageNumber < state.page.Pages {
			state.pageNumber++
			return model, model.loadAudit()
		}
		return model, nil
	case key.Matches(keyMessage, keys.PreviousPage):
		if state.pageNumber > 1 {
			state.pageNumber--
			return model, model.loadAudit()
		}
		return model, nil
	}
	return model, nil
}

func (model Model) viewAudit() string {
	theme := model.theme
	width := model.contentWidth()
	state := model.audit

	header := pageHeader(theme, "Audit Log", width)
	filters := lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top,
		state.searchInput.View(), "  ", state.categoryInput.View(), "  ", state.statusInput.View()))

	summary := ""
	if state.summaryLoaded {
		summary = lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2).
			Render(fmt.Sprintf("%s total", pluralize(state.summary.TotalEvents, "event")))
	}

	if state.err != nil && !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, filters,
			errorPanel(theme, "Failed to load audit log", state.err, width))
	}
	if !state.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, filters,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render("Loading..."))
	}

	if len(state.page.Events) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, filters, summary,
			lipgloss.NewStyle().Foreground(theme.FaintText).Padding(1, 2).Render("No matching events"))
	}

	listHeight := model.contentHeight() - 7
	if listHeight < 3 {
		listHeight = 3
	}
	var rows []string
	for index, event := range state.page.Events {
		if index >= listHeight {
			break
		}
		dot := lipgloss.NewStyle().Foreground(theme.StatusColor(event.Status)).Render("●")
		when := lipgloss.NewStyle().Foreground(theme.FaintText).Render(auditTimestamp(event.Timestamp))
		row := fmt.Sprintf("  %s %s  %-12s %-28s %s", dot, when,
			truncate(event.Category, 12), truncate(event.Action, 28),
			lipgloss.NewStyle().Foreground(theme.FaintText).Render(truncate(event.Details, width-70)))
		rows = append(rows, truncate(row, width))
	}

	pager := lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2).
		Render(fmt.Sprintf("Page %d of %d (%s)", state.page.Page, state.page.Pages,
			pluralize(state.page.Total, "event")))
	footer := lipgloss.NewStyle().Foreground(theme.HelpText).Padding(0, 2).
		Render("/ filter  tab next field  enter apply  ] next page  [ previous page")

	return lipgloss.JoinVertical(lipgloss.Left, header, filters, summary,
		strings.Join(rows, "\n"), pager, footer)
}
