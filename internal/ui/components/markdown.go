// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/talentdesk/internal/logging"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// MarkdownRenderer renders bot replies. The glamour renderer is rebuilt
// only when the width changes.
type MarkdownRenderer struct {
	// Enabled selects glamour; when false replies render as plain text.
	Enabled bool
	// Dark selects the dark glamour style.
	Dark bool
	// Highlight colors fenced code in plain mode.
	Highlight bool

	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for the given theme background.
func NewMarkdownRenderer(enabled, dark bool) *MarkdownRenderer {
	return &MarkdownRenderer{Enabled: enabled, Dark: dark, Highlight: true}
}

// Render renders text wrapped to width columns.
func (r *MarkdownRenderer) Render(text string, width int) string {
	if width < 20 {
		width = 20
	}
	if !r.Enabled {
		return RenderPlain(text, width, r.Highlight)
	}
	if r.renderer == nil || r.width != width {
		if err := r.rebuild(width); err != nil {
			logging.For("ui").WithError(err).Debug("glamour unavailable, rendering plain text")
			return RenderPlain(text, width, r.Highlight)
		}
	}
	out, err := r.renderer.Render(text)
	if err != nil {
		return RenderPlain(text, width, r.Highlight)
	}
	return strings.Trim(out, "\n")
}

func (r *MarkdownRenderer) rebuild(width int) error {
	style := "dark"
	if !r.Dark {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	r.renderer = renderer
	r.width = width
	return nil
}
