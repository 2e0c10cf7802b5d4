// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// previewParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to share;
// each Parse call creates its own state.
var (
	previewParserInstance goldmark.Markdown
	previewParserOnce     sync.Once
)

func previewParser() goldmark.Markdown {
	previewParserOnce.Do(func() {
		previewParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return previewParserInstance
}

// renderMarkdownPreview renders an approval artifact's markdown body as
// styled terminal text for the editor's preview pane. Soft line breaks
// become spaces so hard-wrapped vault files reflow at any pane width.
// Fenced code blocks get chroma highlighting.
func renderMarkdownPreview(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := previewParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: this output is always terminal-bound,
	// and auto-detection yields uncolored output where no TTY exists.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &previewRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// previewRenderer walks a goldmark AST and accumulates styled terminal
// text. Inline content collects in a buffer and is word-wrapped as a unit
// when its containing block closes.
type previewRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder
	inline strings.Builder

	// Inline style counters; counters rather than booleans so nested
	// emphasis balances correctly.
	boldCount   int
	italicCount int
	strikeCount int

	// List nesting: one counter per level, zero for unordered lists.
	listCounters []int

	// indent is two spaces per open list or blockquote level.
	indent string

	lipRenderer *lipgloss.Renderer
}

func (renderer *previewRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *previewRenderer) contentWidth() int {
	width := renderer.width - len(renderer.indent)
	if width < 10 {
		width = 10
	}
	return width
}

func (renderer *previewRenderer) styledText(content string) string {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	if renderer.strikeCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// flushBlock wraps the accumulated inline buffer, indents it, and writes
// it as one block followed by a blank line.
func (renderer *previewRenderer) flushBlock(prefix string) {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}
	wrapped := ansi.Wrap(content, renderer.contentWidth(), " ,.;-")
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 && prefix != "" {
			renderer.output.WriteString(renderer.indent[:max(0, len(renderer.indent)-len(prefix))] + prefix + line + "\n")
			continue
		}
		renderer.output.WriteString(renderer.indent + line + "\n")
	}
	renderer.output.WriteString("\n")
}

func (renderer *previewRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			if len(renderer.listCounters) == 0 {
				renderer.inline.Reset()
			}
		} else if len(renderer.listCounters) == 0 {
			// Inside a list the item's own exit flushes, so the bullet
			// prefix lands on the first line.
			renderer.flushBlock("")
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			heading := node.(*ast.Heading)
			content := ansi.Strip(renderer.inline.String())
			renderer.inline.Reset()
			if content != "" {
				style := renderer.newStyle().Bold(true).Foreground(renderer.theme.HeaderForeground)
				if heading.Level > 2 {
					style = style.Foreground(renderer.theme.NormalText)
				}
				renderer.output.WriteString(renderer.indent + style.Render(content) + "\n\n")
			}
		}

	case ast.KindFencedCodeBlock:
		if entering {
			renderer.renderFencedCode(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			renderer.indent += "│ "
		} else {
			renderer.indent = strings.TrimSuffix(renderer.indent, "│ ")
		}

	case ast.KindList:
		if entering {
			start := 0
			if list := node.(*ast.List); list.IsOrdered() {
				start = list.Start
			}
			renderer.listCounters = append(renderer.listCounters, start)
			renderer.indent += "  "
		} else {
			renderer.listCounters = renderer.listCounters[:len(renderer.listCounters)-1]
			renderer.indent = strings.TrimSuffix(renderer.indent, "  ")
		}

	case ast.KindListItem:
		if entering {
			renderer.inline.Reset()
		} else {
			top := len(renderer.listCounters) - 1
			bullet := "- "
			if top >= 0 && renderer.listCounters[top] > 0 {
				bullet = fmt.Sprintf("%d. ", renderer.listCounters[top])
				renderer.listCounters[top]++
			}
			renderer.flushBlock(bullet)
		}

	case ast.KindThematicBreak:
		if entering {
			rule := renderer.newStyle().Foreground(renderer.theme.BorderColor).
				Render(strings.Repeat("─", renderer.contentWidth()))
			renderer.output.WriteString(renderer.indent + rule + "\n\n")
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styledText(string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			renderer.boldCount += delta
		} else {
			renderer.italicCount += delta
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strikeCount++
		} else {
			renderer.strikeCount--
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(renderer.source))
				}
			}
			codeStyle := renderer.newStyle().Foreground(renderer.theme.AccentColor)
			renderer.inline.WriteString(codeStyle.Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if !entering {
			link := node.(*ast.Link)
			if destination := string(link.Destination); destination != "" {
				faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
				renderer.inline.WriteString(" " + faint.Render("(" + destination + ")"))
			}
		}

	case ast.KindAutoLink:
		if entering {
			destination := string(node.(*ast.AutoLink).URL(renderer.source))
			faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
			renderer.inline.WriteString(faint.Render(destination))
		}
	}

	return ast.WalkContinue, nil
}

// renderFencedCode highlights a fenced code block with chroma. Unknown
// languages fall back to faint plain text.
func (renderer *previewRenderer) renderFencedCode(node *ast.FencedCodeBlock) {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(renderer.source))
	}

	language := string(node.Language(renderer.source))
	highlighted := ""
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code.String(), language, "terminal256", "monokai"); err == nil {
			highlighted = buffer.String()
		}
	}
	if highlighted == "" {
		faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
		highlighted = faint.Render(strings.TrimRight(code.String(), "\n"))
	}

	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		renderer.output.WriteString(renderer.indent + "  " + line + "\n")
	}
	renderer.output.WriteString("\n")
}
