// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jeranaias/talentdesk/internal/model"
)

// recordingCanvas records drawing calls as strings.
type recordingCanvas struct {
	width, height float64
	calls         []string
}

func (r *recordingCanvas) Size() (float64, float64) { return r.width, r.height }

func (r *recordingCanvas) Clear() { r.calls = append(r.calls, "clear") }

func (r *recordingCanvas) FillRect(x, y, w, h float64, g Gradient) {
	r.calls = append(r.calls, fmt.Sprintf("rect %.2f %.2f %.2f %.2f %s->%s %.2f->%.2f",
		x, y, w, h, g.Start, g.End, g.From.Y, g.To.Y))
}

func (r *recordingCanvas) FillText(text string, x, y float64, font Font, color string) {
	r.calls = append(r.calls, fmt.Sprintf("text %q %.2f %.2f %s %s", text, x, y, font, color))
}

var sampleResults = []model.ResumeResult{
	{Filename: "alice.pdf", Score: 85},
	{Filename: "a_very_long_resume_name.docx", Score: 50},
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestLayout_Geometry(t *testing.T) {
	bars := Layout(sampleResults, 600, 300)
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2", len(bars))
	}

	// barWidth = 600/2 - 20 = 280; plot height = 300 - 80 = 220
	first := bars[0]
	if first.Width != 280 || first.X != 40 {
		t.Errorf("first bar x/width = %v/%v, want 40/280", first.X, first.Width)
	}
	if first.Height != 187 || first.Y != 73 {
		t.Errorf("first bar y/height = %v/%v, want 73/187", first.Y, first.Height)
	}
	if first.ScoreAt != (Point{X: 180, Y: 63}) {
		t.Errorf("score label at %+v", first.ScoreAt)
	}
	if first.LabelAt != (Point{X: 180, Y: 290}) {
		t.Errorf("file label at %+v", first.LabelAt)
	}
	if first.GradientTo != 260 {
		t.Errorf("GradientTo = %v, want 260", first.GradientTo)
	}

	second := bars[1]
	if second.X != 340 {
		t.Errorf("second bar x = %v, want 340", second.X)
	}
	if second.Label != "a_very_long_..." {
		t.Errorf("second label = %q", second.Label)
	}
}

func TestLayout_Empty(t *testing.T) {
	if bars := Layout(nil, 600, 300); bars != nil {
		t.Errorf("Layout(nil) = %v, want nil", bars)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"short.pdf", "short.pdf"},
		{"exactly15chars.", "exactly15chars."},
		{"sixteen_chars.pd", "sixteen_char..."},
		{"résumé_de_jean_dupont.pdf", "résumé_de_je..."},
	}

	for _, tt := range tests {
		if got := Label(tt.input); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestScoreRoundsToInteger(t *testing.T) {
	results := []model.ResumeResult{
		{Filename: "a", Score: 72.6},
		{Filename: "b", Score: 72.5},
		{Filename: "c", Score: 0.5},
		{Filename: "d", Score: 84.5},
		{Filename: "e", Score: 84.4},
	}
	want := []string{"73", "73", "1", "85", "84"}

	bars := Layout(results, 1000, 300)
	for i, b := range bars {
		if b.Score != want[i] {
			t.Errorf("bar %d Score = %q, want %q", i, b.Score, want[i])
		}
	}
}

// =============================================================================
// DRAW TESTS
// =============================================================================

func TestDraw_Deterministic(t *testing.T) {
	a := &recordingCanvas{width: 600, height: 300}
	b := &recordingCanvas{width: 600, height: 300}

	Draw(a, sampleResults)
	Draw(b, sampleResults)

	if !reflect.DeepEqual(a.calls, b.calls) {
		t.Errorf("identical input produced different drawings:\n%v\n%v", a.calls, b.calls)
	}
}

func TestDraw_CallSequence(t *testing.T) {
	c := &recordingCanvas{width: 600, height: 300}
	Draw(c, sampleResults[:1])

	want := []string{
		"clear",
		"rect 40.00 73.00 580.00 187.00 #667eea->#764ba2 73.00->260.00",
		`text "85" 330.00 63.00 bold 14px Inter #ececec`,
		`text "alice.pdf" 330.00 290.00 12px Inter #8e8e8e`,
	}
	if !reflect.DeepEqual(c.calls, want) {
		t.Errorf("calls =\n%v\nwant\n%v", strings.Join(c.calls, "\n"), strings.Join(want, "\n"))
	}
}

func TestDraw_EmptyOnlyClears(t *testing.T) {
	c := &recordingCanvas{width: 600, height: 300}
	Draw(c, nil)
	if len(c.calls) != 1 || c.calls[0] != "clear" {
		t.Errorf("calls = %v", c.calls)
	}
}

// =============================================================================
// SVG TESTS
// =============================================================================

func TestSVGCanvas(t *testing.T) {
	svg := NewSVGCanvas(600, 300)
	Draw(svg, []model.ResumeResult{{Filename: "<x>.pdf", Score: 90}})
	out := svg.String()

	checks := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="600" height="300"`,
		`stop-color="#667eea"`,
		`stop-color="#764ba2"`,
		`fill="url(#bar-gradient-0)"`,
		`font-weight="bold"`,
		`&lt;x&gt;.pdf`,
		">90</text>",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q:\n%s", want, out)
		}
	}
}

func TestSVGCanvas_ClearResets(t *testing.T) {
	svg := NewSVGCanvas(600, 300)
	Draw(svg, sampleResults)
	Draw(svg, sampleResults[:1])

	if strings.Count(svg.String(), "<rect") != 1 {
		t.Errorf("Clear did not reset canvas:\n%s", svg.String())
	}
}

func TestSVGCanvas_SkipsDegenerateBars(t *testing.T) {
	many := make([]model.ResumeResult, 50)
	for i := range many {
		many[i] = model.ResumeResult{Filename: "r.pdf", Score: 50}
	}
	svg := NewSVGCanvas(600, 300)
	Draw(svg, many)

	if strings.Contains(svg.String(), "<rect") {
		t.Error("bars narrower than the gap should not be drawn")
	}
}

// =============================================================================
// TERMINAL TESTS
// =============================================================================

func TestRenderTerminal(t *testing.T) {
	out := RenderTerminal(sampleResults, 60, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "1. alice.pdf") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], " 85.0") || !strings.HasSuffix(lines[1], " 50.0") {
		t.Errorf("scores missing:\n%s", out)
	}
	if strings.Count(lines[0], "#") <= strings.Count(lines[1], "#") {
		t.Errorf("higher score should have the longer bar:\n%s", out)
	}
}

func TestRenderTerminal_Empty(t *testing.T) {
	if RenderTerminal(nil, 80, false) != "" {
		t.Error("RenderTerminal(nil) should be empty")
	}
}
