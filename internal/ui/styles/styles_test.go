// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/talentdesk/internal/model"
)

func TestNewTheme_Names(t *testing.T) {
	tests := []struct {
		name   string
		isDark bool
	}{
		{"dark", true},
		{"DARK", true},
		{"light", false},
		{" light ", false},
	}
	for _, tt := range tests {
		theme := NewTheme(tt.name)
		if theme.IsDark != tt.isDark {
			t.Errorf("NewTheme(%q).IsDark = %v, want %v", tt.name, theme.IsDark, tt.isDark)
		}
	}
}

func TestNewTheme_StylesRender(t *testing.T) {
	theme := NewTheme("dark")
	styles := map[string]lipgloss.Style{
		"Header":        theme.Header,
		"UserBubble":    theme.UserBubble,
		"BotBubble":     theme.BotBubble,
		"ErrorReply":    theme.ErrorReply,
		"SidebarActive": theme.SidebarActive,
		"Card":          theme.Card,
	}
	for name, s := range styles {
		if !strings.Contains(s.Render("test"), "test") {
			t.Errorf("%s style lost its content", name)
		}
	}
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme("dark")

	theme.SetSize(CompactWidth, 24)
	if theme.GetLayoutMode() != LayoutCompact {
		t.Error("width at the threshold should be compact")
	}
	theme.SetSize(CompactWidth+1, 24)
	if theme.GetLayoutMode() != LayoutNormal {
		t.Error("width above the threshold should be normal")
	}
}

func TestSidebarWidth_Clamped(t *testing.T) {
	theme := NewTheme("dark")
	for _, tt := range []struct{ width, want int }{
		{40, 18},
		{100, 25},
		{400, 32},
	} {
		theme.SetSize(tt.width, 24)
		if got := theme.SidebarWidth(); got != tt.want {
			t.Errorf("SidebarWidth() at %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestBandColor(t *testing.T) {
	tests := []struct {
		score float64
		want  lipgloss.Color
	}{
		{85, "#22c55e"},
		{80, "#22c55e"},
		{65, "#f59e0b"},
		{45, "#f97316"},
		{10, "#dc2626"},
	}
	for _, tt := range tests {
		if got := BandColor(model.BandFor(tt.score)); got != tt.want {
			t.Errorf("BandColor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestRenderStatus_IncludesIndicators(t *testing.T) {
	if !strings.Contains(RenderSuccess("saved"), "[OK] saved") {
		t.Error("RenderSuccess should include [OK]")
	}
	if !strings.Contains(RenderError("failed"), "[X] failed") {
		t.Error("RenderError should include [X]")
	}
	if !strings.Contains(RenderWarning("careful"), "[!] careful") {
		t.Error("RenderWarning should include [!]")
	}
	if !strings.Contains(RenderInfo("note"), "[i] note") {
		t.Error("RenderInfo should include [i]")
	}
}
