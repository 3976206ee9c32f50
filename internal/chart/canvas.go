// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// CANVAS INTERFACE
// =============================================================================

// Gradient is a two-stop linear gradient between two points.
type Gradient struct {
	From, To   Point
	Start, End string
}

// Canvas is the drawing surface Draw renders onto.
type Canvas interface {
	// Size returns the canvas dimensions.
	Size() (width, height float64)

	// Clear erases everything drawn so far.
	Clear()

	// FillRect fills a rectangle with a gradient.
	FillRect(x, y, w, h float64, fill Gradient)

	// FillText draws text horizontally centered on (x, y).
	FillText(text string, x, y float64, font Font, color string)
}

// Draw clears the canvas and draws one gradient bar per result with its
// score above and its filename below.
func Draw(c Canvas, results []model.ResumeResult) {
	width, height := c.Size()
	c.Clear()

	for _, bar := range Layout(results, width, height) {
		fill := Gradient{
			From:  Point{X: bar.X, Y: bar.Y},
			To:    Point{X: bar.X, Y: bar.GradientTo},
			Start: GradientTop,
			End:   GradientBottom,
		}
		c.FillRect(bar.X, bar.Y, bar.Width, bar.Height, fill)
		c.FillText(bar.Score, bar.ScoreAt.X, bar.ScoreAt.Y, ScoreFont, ScoreColor)
		c.FillText(bar.Label, bar.LabelAt.X, bar.LabelAt.Y, LabelFont, LabelColor)
	}
}
