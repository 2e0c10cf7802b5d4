// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webxes-tech/console/lib/api"
	"github.com/webxes-tech/console/lib/notify"
)

// quickPrompts are canned generation requests the operator can cycle
// into the prompt input.
var quickPrompts = []string{
	"Write a LinkedIn post about our latest product update",
	"Write a short Instagram caption for a behind-the-scenes photo",
	"Draft a Twitter thread announcing this week's milestone",
	"Write a Facebook post thanking our customers",
}

// socialState backs the social post page: a free-text prompt, the posts
// generated this session (newest first), and the pending social
// approvals those posts land in.
type socialState struct {
	input       textinput.Model
	promptIndex int

	generating bool
	genErr     error
	generated  []api.GeneratedPost

	pending    []api.ApprovalItem
	pendingErr error
}

func newSocialState() socialState {
	input := textinput.New()
	input.Placeholder = "describe the post to generate"
	input.CharLimit = 512
	input.Width = 64
	return socialState{input: input, promptIndex: -1}
}

// detectPlatform guesses which platform a prompt targets so the page can
// hint where the draft will go. The server makes the real decision; this
// is presentation only.
func detectPlatform(message string) string {
	lowered := strings.ToLower(message)
	aliases := []struct {
		needle   string
		platform string
	}{
		{"linkedin", "linkedin"},
		{"facebook", "facebook"},
		{"fb", "facebook"},
		{"instagram", "instagram"},
		{"insta", "instagram"},
		{"ig", "instagram"},
		{"twitter", "twitter"},
		{"tweet", "twitter"},
	}
	for _, alias := range aliases {
		for _, word := range strings.FieldsFunc(lowered, func(r rune) bool {
			return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?' || r == ':'
		}) {
			if word == alias.needle {
				return alias.platform
			}
		}
	}
	return "linkedin"
}

func (model Model) handleGenerateResult(message generateResultMsg) (tea.Model, tea.Cmd) {
	state := &model.social
	state.generating = false
	if message.err != nil {
		if model.handleUnauthorized(message.err) {
			return model, nil
		}
		state.genErr = message.err
		return model, nil
	}
	state.genErr = nil
	state.generated = append([]api.GeneratedPost{message.post}, state.generated...)
	state.input.SetValue("")
	state.input.Blur()
	toastCommand := model.addToast(notify.ToastSuccess,
		fmt.Sprintf("Post generated for %s", message.post.Platform))
	// The draft lands in the approval queue, so refresh the pending list
	// and the badges.
	return model, tea.Batch(toastCommand, model.loadSocialApprovals(), model.loadStats())
}

func (model Model) updateSocial(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		if model.social.input.Focused() {
			var command tea.Cmd
			model.social.input, command = model.social.input.Update(message)
			return model, command
		}
		return model, nil
	}
	state := &model.social

	if state.input.Focused() {
		switch keyMessage.Type {
		case tea.KeyEscape:
			state.input.Blur()
			return model, nil
		case tea.KeyEnter:
			prompt := strings.TrimSpace(state.input.Value())
			if prompt == "" || state.generating {
				return model, nil
			}
			state.generating = true
			state.genErr = nil
			return model, model.generateSocialPost(prompt)
		}
		var command tea.Cmd
		state.input, command = state.input.Update(message)
		return model, command
	}

	switch keyMessage.String() {
	case "g", "enter":
		return model, state.input.Focus()
	case "p":
		state.promptIndex = (state.promptIndex + 1) % len(quickPrompts)
		state.input.SetValue(quickPrompts[state.promptIndex])
		return model, state.input.Focus()
	}
	return model, nil
}

func (model Model) viewSocial() string {
	theme := model.theme
	width := model.contentWidth()
	state := model.social

	header := pageHeader(theme, "Social Posts", width)

	promptLine := lipgloss.NewStyle().Padding(0, 2).Render(state.input.View())
	hint := ""
	if prompt := strings.TrimSpace(state.input.Value()); prompt != "" {
		hint = lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2).
			Render("target: " + detectPlatform(prompt))
	}

	status := ""
	switch {
	case state.generating:
		status = lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2).Render("Generating...")
	case state.genErr != nil:
		status = lipgloss.NewStyle().Foreground(theme.StatusFailure).Padding(0, 2).
			Render(truncate("Generation failed: "+state.genErr.Error(), width-4))
	}

	sections := []string{header, promptLine}
	if hint != "" {
		sections = append(sections, hint)
	}
	if status != "" {
		sections = append(sections, status)
	}

	if len(state.generated) > 0 {
		sections = append(sections, "", sectionTitle(theme, "Generated this session"))
		for index, post := range state.generated {
			if index >= 5 {
				break
			}
			platform := lipgloss.NewStyle().Foreground(theme.DomainColor("social_media")).
				Render(post.Platform)
			row := fmt.Sprintf("  %s  %s", platform,
				truncate(firstLine(post.Content), width-20))
			sections = append(sections, row)
		}
	}

	sections = append(sections, "", sectionTitle(theme, "Pending social approvals"))
	switch {
	case state.pendingErr != nil:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.StatusFailure).Padding(0, 2).
			Render(truncate("Failed to load approvals: "+state.pendingErr.Error(), width-4)))
	case len(state.pending) == 0:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 2).
			Render("No pending approvals"))
	default:
		for _, item := range state.pending {
			row := fmt.Sprintf("  %-36s %8s  %s", truncate(item.Filename, 36),
				relativeUnix(item.Modified, time.Now()),
				lipgloss.NewStyle().Foreground(theme.FaintText).Render(truncate(firstLine(item.Preview), width-56)))
			sections = append(sections, truncate(row, width))
		}
	}

	footer := lipgloss.NewStyle().Foreground(theme.HelpText).Padding(0, 2).
		Render("g prompt  p quick prompt  enter generate  esc blur")
	sections = append(sections, "", footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
