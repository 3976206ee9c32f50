// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for command output.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// applyColorProfile configures lipgloss for command output.
// USABILITY: TTY detection for proper terminal handling
func applyColorProfile(noColor bool) {
	if noColor {
		DisableColors()
	}
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Width(28)

	// ValueStyle is used for regular values and text
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// promptStyle colors the chat prompt label printed before liner takes over
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// replyStyle frames bot replies in the line chat
	replyStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
)

// RenderLabel renders a label with the shared width.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}
