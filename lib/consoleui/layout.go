// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// sidebarWidth is fixed; the content region absorbs resizes.
const sidebarWidth = 24

func (model Model) contentWidth() int {
	width := model.width - sidebarWidth
	if width < 20 {
		width = 20
	}
	return width
}

func (model Model) contentHeight() int {
	if model.height < 8 {
		return 8
	}
	return model.height
}

// updateActivePage routes a message to the current page's handler.
func (model Model) updateActivePage(message tea.Msg) (tea.Model, tea.Cmd) {
	switch model.page {
	case PageDashboard:
		return model.updateDashboard(message)
	case PageApprovals:
		return model.updateApprovals(message)
	case PageInbox:
		return model.updateInbox(message)
	case PageAudit:
		return model.updateAudit(message)
	case PageSocial:
		return model.updateSocial(message)
	case PageSettings:
		return model.updateSettings(message)
	}
	return model, nil
}

func (model Model) viewActivePage() string {
	switch model.page {
	case PageDashboard:
		return model.viewDashboard()
	case PageApprovals:
		return model.viewApprovals()
	case PageInbox:
		return model.viewInbox()
	case PageAudit:
		return model.viewAudit()
	case PageSocial:
		return model.viewSocial()
	case PageSettings:
		return model.viewSettings()
	}
	return ""
}

// activePageCapturesText reports whether the current page has a focused
// text input, which suppresses single-letter global shortcuts.
func (model Model) activePageCapturesText() bool {
	switch model.page {
	case PageApprovals:
		return model.approvals.searching
	case PageInbox:
		return model.inbox.searching
	case PageAudit:
		return model.audit.capturesText()
	case PageSocial:
		return model.social.input.Focused()
	case PageSettings:
		return model.settings.webhookInput.Focused()
	}
	return false
}

// viewConsole composes the logged-in frame: sidebar plus the active
// page, with modal and toast layers spliced on top.
func (model Model) viewConsole() string {
	base := lipgloss.JoinHorizontal(
		lipgloss.Top,
		model.viewSidebar(),
		model.viewActivePage(),
	)
	base = lipgloss.NewStyle().
		Width(model.width).
		Height(model.contentHeight()).
		MaxHeight(model.contentHeight()).
		Render(base)

	if model.editor != nil {
		base = model.spliceCentered(base, model.editor.view(model.theme))
		if model.editor.note != nil {
			base = model.spliceCentered(base, model.editor.note.view(model.theme))
		}
	} else if model.settings.confirm != nil && model.page == PageSettings {
		base = model.spliceCentered(base, model.viewDryRunConfirm())
	} else if model.notificationsOpen {
		base = model.spliceCentered(base, model.viewNotificationPanel())
	}

	if toastStack := model.viewToasts(); toastStack != "" {
		base = model.spliceBottomRight(base, toastStack)
	}
	return base
}

func (model Model) viewCentered(content string) string {
	return lipgloss.Place(model.width, model.contentHeight(), lipgloss.Center, lipgloss.Center, content)
}

// spliceCentered overlays a block in the middle of the base view.
func (model Model) spliceCentered(base, overlay string) string {
	overlayHeight := lipgloss.Height(overlay)
	overlayWidth := lipgloss.Width(overlay)
	row := (model.contentHeight() - overlayHeight) / 2
	column := (model.width - overlayWidth) / 2
	return spliceOverlay(base, overlay, row, column)
}

// spliceBottomRight anchors a block to the bottom-right corner, inset by
// one cell.
func (model Model) spliceBottomRight(base, overlay string) string {
	row := model.contentHeight() - lipgloss.Height(overlay) - 1
	column := model.width - lipgloss.Width(overlay) - 2
	return spliceOverlay(base, overlay, row, column)
}

// spliceOverlay writes an overlay block into a rendered base view at the
// given cell position, preserving the base's styling outside the
// overlay's rectangle. Rows and columns that fall outside the base are
// clamped.
func spliceOverlay(base, overlay string, row, column int) string {
	if row < 0 {
		row = 0
	}
	if column < 0 {
		column = 0
	}
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for index, overlayLine := range overlayLines {
		target := row + index
		if target >= len(baseLines) {
			break
		}
		baseLines[target] = spliceLine(baseLines[target], overlayLine, column)
	}
	return strings.Join(baseLines, "\n")
}

// spliceLine replaces the cells of one base line starting at a column
// with an overlay line, keeping the base text on either side.
func spliceLine(baseLine, overlayLine string, column int) string {
	overlayWidth := ansi.StringWidth(overlayLine)
	left := ansi.Truncate(baseLine, column, "")
	if gap := column - ansi.StringWidth(left); gap > 0 {
		left += strings.Repeat(" ", gap)
	}
	right := ansi.TruncateLeft(baseLine, column+overlayWidth, "")
	return left + overlayLine + right
}
