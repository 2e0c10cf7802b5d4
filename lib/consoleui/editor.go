// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webxes-tech/console/lib/api"
	"github.com/webxes-tech/console/lib/notify"
)

// editorStatusLifetime is how long a transient status line such as
// "Draft saved" stays visible.
const editorStatusLifetime = 2 * time.Second

// editorState is the approval editor modal: an editable source pane and
// a rendered preview pane side by side, with save, approve, and reject
// actions. A single acting flag serializes mutations so a double press
// can never issue two decisions.
type editorState struct {
	item    api.ApprovalItem
	loading bool
	loadErr error

	textarea     textarea.Model
	preview      viewport.Model
	focusPreview bool

	acting           bool
	actingVerb       string
	status           string
	statusIsErr      bool
	statusGeneration int

	// noteText rides along on the next approve or reject request.
	noteText string
	note     *noteModal

	width  int
	height int
}

func newEditorState(item api.ApprovalItem, contentWidth, contentHeight int) editorState {
	editor := editorState{
		item:    item,
		loading: item.Content == "",
	}
	editor.textarea = textarea.New()
	editor.textarea.CharLimit = 0
	editor.textarea.ShowLineNumbers = false
	if item.Content != "" {
		editor.textarea.SetValue(item.Content)
	}
	editor.preview = viewport.New(10, 10)
	editor.resize(contentWidth, contentHeight)
	return editor
}

func (editor *editorState) initCmd() tea.Cmd {
	return editor.textarea.Focus()
}

// resize fits the modal inside the content region, leaving a margin so
// the page remains visible behind it.
func (editor *editorState) resize(contentWidth, contentHeight int) {
	editor.width = contentWidth + sidebarWidth - 8
	if editor.width < 40 {
		editor.width = 40
	}
	editor.height = contentHeight - 4
	if editor.height < 10 {
		editor.height = 10
	}
	paneWidth := (editor.width - 6) / 2
	paneHeight := editor.height - 6
	editor.textarea.SetWidth(paneWidth)
	editor.textarea.SetHeight(paneHeight)
	editor.preview.Width = paneWidth
	editor.preview.Height = paneHeight
}

// setContent installs the fully loaded approval body.
func (editor *editorState) setContent(item api.ApprovalItem) {
	editor.item = item
	editor.textarea.SetValue(item.Content)
	editor.loading = false
	editor.loadErr = nil
}

// refreshPreview re-renders the preview pane from the current edit
// buffer. Called when focus moves to the preview, not on every
// keystroke.
func (editor *editorState) refreshPreview(theme Theme) {
	rendered := renderMarkdownPreview(editor.textarea.Value(), theme, editor.preview.Width)
	if header := editor.metadataHeader(theme); header != "" {
		rendered = header + "\n" + rendered
	}
	editor.preview.SetContent(rendered)
}

// metadataHeader renders the approval's metadata key/value pairs above
// the rendered content, in a stable key order.
func (editor *editorState) metadataHeader(theme Theme) string {
	if len(editor.item.Metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(editor.item.Metadata))
	for key := range editor.item.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	var lines []string
	for _, key := range keys {
		lines = append(lines, faint.Render(truncate(key+": "+editor.item.Metadata[key], editor.preview.Width)))
	}
	return strings.Join(lines, "\n")
}

func (editor *editorState) setStatus(status string, isError bool) {
	editor.status = status
	editor.statusIsErr = isError
	editor.statusGeneration++
}

func (model Model) handleApprovalDetail(message approvalDetailMsg) (tea.Model, tea.Cmd) {
	if message.sequence != model.sequences[message.key] {
		return model, nil
	}
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		if model.editor != nil {
			model.editor.loading = false
			model.editor.loadErr = message.err
		}
		return model, nil
	}
	if model.editor != nil && model.editor.item.ID == message.item.ID {
		model.editor.setContent(message.item)
		model.editor.refreshPreview(model.theme)
	}
	return model, nil
}

func (model Model) handleDecisionResult(message decisionResultMsg) (tea.Model, tea.Cmd) {
	editor := model.editor
	if editor == nil || editor.item.ID != message.approvalID {
		return model, nil
	}
	editor.acting = false
	editor.actingVerb = ""

	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		// The modal stays open so the operator can retry or copy the
		// edited content out.
		failure := "Save failed"
		switch message.kind {
		case decisionApprove:
			failure = "Approve failed"
		case decisionReject:
			failure = "Reject failed"
		}
		editor.setStatus(failure, true)
		return model, nil
	}

	switch message.kind {
	case decisionSave:
		editor.item.Content = editor.textarea.Value()
		editor.setStatus("Draft saved", false)
		generation := editor.statusGeneration
		return model, tea.Tick(editorStatusLifetime, func(time.Time) tea.Msg {
			return editorStatusFadeMsg{generation: generation}
		})
	case decisionApprove, decisionReject:
		verb := "Approved"
		kind := notify.ToastSuccess
		if message.kind == decisionReject {
			verb = "Rejected"
		}
		toastCommand := model.addToast(kind, fmt.Sprintf("%s %s", verb, editor.item.Filename))
		model.editor = nil
		// The queue and the sidebar badges both change on a decision.
		return model, tea.Batch(toastCommand, model.loadApprovals(), model.loadStats(), model.loadSocialApprovals())
	}
	return model, nil
}

func (model Model) updateEditor(message tea.Msg) (tea.Model, tea.Cmd) {
	editor := model.editor
	if editor.note != nil {
		return model.updateNoteModal(message)
	}

	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		var command tea.Cmd
		if editor.focusPreview {
			editor.preview, command = editor.preview.Update(message)
		} else {
			editor.textarea, command = editor.textarea.Update(message)
		}
		return model, command
	}

	switch keyMessage.Type {
	case tea.KeyEscape:
		if editor.acting {
			return model, nil
		}
		model.editor = nil
		return model, nil
	case tea.KeyCtrlS:
		if editor.acting || editor.loading {
			return model, nil
		}
		editor.acting = true
		editor.actingVerb = "Saving"
		return model, model.saveApproval(editor.item.ID, editor.textarea.Value())
	case tea.KeyCtrlJ, tea.KeyEnter:
		// Ctrl+Enter arrives as one of these depending on the terminal;
		// plain Enter only decides while the preview pane has focus, so
		// typing newlines in the edit pane still works.
		if keyMessage.Type == tea.KeyEnter && !editor.focusPreview {
			break
		}
		if editor.acting || editor.loading {
			return model, nil
		}
		editor.acting = true
		editor.actingVerb = "Approving"
		return model, model.decideApproval(editor.item.ID, true, editor.noteText)
	case tea.KeyCtrlX:
		if editor.acting || editor.loading {
			return model, nil
		}
		editor.acting = true
		editor.actingVerb = "Rejecting"
		return model, model.decideApproval(editor.item.ID, false, editor.noteText)
	case tea.KeyCtrlN:
		if editor.acting {
			return model, nil
		}
		note := newNoteModal(editor.noteText)
		editor.note = &note
		return model, nil
	case tea.KeyTab:
		editor.focusPreview = !editor.focusPreview
		if editor.focusPreview {
			editor.textarea.Blur()
			editor.refreshPreview(model.theme)
			return model, nil
		}
		return model, editor.textarea.Focus()
	}

	var command tea.Cmd
	if editor.focusPreview {
		editor.preview, command = editor.preview.Update(message)
	} else {
		editor.textarea, command = editor.textarea.Update(message)
	}
	return model, command
}

func (editor *editorState) view(theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render(truncate("Review: "+editor.item.Filename, editor.width-4))
	domain := lipgloss.NewStyle().Foreground(theme.DomainColor(editor.item.Domain)).
		Render(editor.item.Domain)

	var body string
	switch {
	case editor.loading:
		body = lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading content...")
	case editor.loadErr != nil:
		body = lipgloss.NewStyle().Foreground(theme.StatusFailure).
			Render("Failed to load content: " + editor.loadErr.Error())
	default:
		editPane := paneFrame(theme, "Edit", editor.textarea.View(), !editor.focusPreview)
		previewPane := paneFrame(theme, "Preview", editor.preview.View(), editor.focusPreview)
		body = lipgloss.JoinHorizontal(lipgloss.Top, editPane, " ", previewPane)
	}

	status := ""
	switch {
	case editor.acting:
		status = lipgloss.NewStyle().Foreground(theme.FaintText).Render(editor.actingVerb + "...")
	case editor.status != "":
		style := lipgloss.NewStyle().Foreground(theme.StatusSuccess)
		if editor.statusIsErr {
			style = style.Foreground(theme.StatusFailure)
		}
		status = style.Render(truncate(editor.status, editor.width-4))
	}
	if editor.noteText != "" && status == "" {
		status = lipgloss.NewStyle().Foreground(theme.FaintText).
			Render(truncate("Note: "+firstLine(editor.noteText), editor.width-4))
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("ctrl+s save  ctrl+enter approve  ctrl+x reject  ctrl+n note  tab focus  esc close")

	frame := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", domain),
		"",
		body,
		"",
		status,
		help,
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.OverlayBorder).
		Background(theme.OverlayBackground).
		Padding(0, 1).
		Render(frame)
}

// paneFrame draws one editor pane with a focus-sensitive border.
func paneFrame(theme Theme, title, content string, focused bool) string {
	borderColor := theme.BorderColor
	if focused {
		borderColor = theme.AccentColor
	}
	header := lipgloss.NewStyle().Foreground(theme.FaintText).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}
