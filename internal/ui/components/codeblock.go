// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock is one fenced block from a reply.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int

	// Highlight enables chroma coloring.
	Highlight bool
}

// Render renders the block with line numbers inside a rounded border.
func (c CodeBlock) Render() string {
	code := strings.TrimRight(c.Code, "\n")
	if c.Highlight {
		code = highlightCode(code, c.Language)
	}

	numStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = numStyle.Render(strconv.Itoa(i+1)) + line
	}

	var header string
	if c.Language != "" {
		header = lipgloss.NewStyle().Foreground(styles.TextMuted).Bold(true).Render(c.Language) + "\n"
	}

	maxWidth := c.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(header + strings.Join(lines, "\n"))
}

// RenderPlain renders text, replacing every ``` fenced block with a
// CodeBlock. An unclosed fence runs to the end of the text.
func RenderPlain(text string, maxWidth int, highlight bool) string {
	var out []string
	var code []string
	var language string
	inBlock := false

	flush := func() {
		cb := CodeBlock{Language: language, Code: strings.Join(code, "\n"), MaxWidth: maxWidth, Highlight: highlight}
		out = append(out, cb.Render())
		code = nil
		language = ""
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "```") && inBlock:
			flush()
			inBlock = false
		case strings.HasPrefix(line, "```"):
			language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
			inBlock = true
		case inBlock:
			code = append(code, line)
		default:
			out = append(out, line)
		}
	}
	if inBlock && len(code) > 0 {
		flush()
	}
	return strings.Join(out, "\n")
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlightCode colors code for a 256-color terminal, returning it
// unchanged when chroma cannot tokenise it.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
