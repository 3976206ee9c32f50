// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"fmt"

	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultHeight is the canvas height used for reports.
	DefaultHeight = 300

	// Padding is the margin around the plot area.
	Padding = 40

	// BarGap is the horizontal space between bars.
	BarGap = 20

	// MaxScore is the score that fills the full plot height.
	MaxScore = 100.0

	// labelMaxRunes is the longest filename shown untruncated.
	labelMaxRunes = 15

	// labelKeepRunes is how much of a long filename is kept.
	labelKeepRunes = 12
)

// Fixed colors.
const (
	GradientTop    = "#667eea"
	GradientBottom = "#764ba2"
	ScoreColor     = "#ececec"
	LabelColor     = "#8e8e8e"
)

// Fixed fonts.
var (
	ScoreFont = Font{Weight: "bold", SizePx: 14, Family: "Inter"}
	LabelFont = Font{SizePx: 12, Family: "Inter"}
)

// =============================================================================
// TYPES
// =============================================================================

// Font describes a text font in CSS shorthand terms.
type Font struct {
	Weight string
	SizePx int
	Family string
}

// String returns the CSS font shorthand, e.g. "bold 14px Inter".
func (f Font) String() string {
	if f.Weight == "" {
		return fmt.Sprintf("%dpx %s", f.SizePx, f.Family)
	}
	return fmt.Sprintf("%s %dpx %s", f.Weight, f.SizePx, f.Family)
}

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Bar is the computed geometry of one result.
type Bar struct {
	X, Y          float64
	Width, Height float64

	// Score is the text drawn above the bar, Label the text below it.
	Score      string
	ScoreAt    Point
	Label      string
	LabelAt    Point
	GradientTo float64
}

// =============================================================================
// LAYOUT
// =============================================================================

// Layout computes one bar per result for a width x height canvas. Bars keep
// the input order. Very narrow canvases can produce non-positive widths;
// canvases decide how to draw those.
func Layout(results []model.ResumeResult, width, height float64) []Bar {
	if len(results) == 0 {
		return nil
	}

	barWidth := width/float64(len(results)) - BarGap
	plot := height - Padding*2

	bars := make([]Bar, len(results))
	for i, r := range results {
		barHeight := r.Score / MaxScore * plot
		x := float64(i)*(barWidth+BarGap) + Padding
		y := height - barHeight - Padding
		center := x + barWidth/2

		bars[i] = Bar{
			X:          x,
			Y:          y,
			Width:      barWidth,
			Height:     barHeight,
			Score:      model.FormatScore(r.Score, 0),
			ScoreAt:    Point{X: center, Y: y - 10},
			Label:      Label(r.Filename),
			LabelAt:    Point{X: center, Y: height - 10},
			GradientTo: height - Padding,
		}
	}
	return bars
}

// Label shortens a filename for display under a bar: names longer than 15
// runes keep their first 12 runes followed by "...".
func Label(name string) string {
	runes := []rune(name)
	if len(runes) > labelMaxRunes {
		return string(runes[:labelKeepRunes]) + "..."
	}
	return name
}
