// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"
)

// Theme holds the styled components shared by the chat and upload views.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND STATUS
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	StatusBar   lipgloss.Style
	Notice      lipgloss.Style
	Muted       lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	ErrorReply lipgloss.Style
	Sender     lipgloss.Style
	Welcome    lipgloss.Style
	Typing     lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style

	// ==========================================================================
	// INPUT
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// RESULTS
	// ==========================================================================

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	TableHead lipgloss.Style
	TableCell lipgloss.Style
}

// NewTheme creates a theme. name is "dark", "light" or "auto"; "auto" and
// unknown names follow the terminal background.
func NewTheme(name string) *Theme {
	isDark := true
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeLight:
		isDark = false
	case ThemeDark:
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.Notice = lipgloss.NewStyle().Foreground(Amber)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(BotBubbleBorder).
		PaddingLeft(1).
		MarginRight(4)

	t.ErrorReply = t.BotBubble.
		Foreground(Rose).
		BorderForeground(Rose)

	t.Sender = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.Welcome = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)

	t.Typing = lipgloss.NewStyle().
		Foreground(Purple).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		PaddingRight(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(1)

	t.SidebarActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Background(Purple).
		PaddingLeft(1)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Results
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.TableHead = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Padding(0, 1)

	t.TableCell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)
}

// SetSize records the terminal size.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// =============================================================================
// LAYOUT
// =============================================================================

// LayoutMode is chosen from the terminal width.
type LayoutMode int

const (
	// LayoutCompact hides the sidebar.
	LayoutCompact LayoutMode = iota
	// LayoutNormal shows the sidebar.
	LayoutNormal
)

// CompactWidth is the widest terminal that still uses LayoutCompact.
const CompactWidth = 72

// GetLayoutMode returns the layout for the recorded width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width <= CompactWidth {
		return LayoutCompact
	}
	return LayoutNormal
}

// SidebarWidth returns the sidebar column width for the recorded size.
func (t *Theme) SidebarWidth() int {
	w := t.Width / 4
	if w < 18 {
		w = 18
	}
	if w > 32 {
		w = 32
	}
	return w
}
