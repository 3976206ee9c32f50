// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/util"
)

// =============================================================================
// TERMINAL CHART
// =============================================================================

const (
	barFilled = "#"
	barEmpty  = "-"

	// scoreColumn is the width reserved for " 100.0".
	scoreColumn = 7

	minBarWidth = 10
)

// RenderTerminal draws one horizontal bar per result, in input order, within
// width columns. Bars are colored by score band when color is true.
func RenderTerminal(results []model.ResumeResult, width int, color bool) string {
	if len(results) == 0 {
		return ""
	}

	labelWidth := 0
	labels := make([]string, len(results))
	for i, r := range results {
		labels[i] = Label(r.Filename)
		if w := util.StringWidth(labels[i]); w > labelWidth {
			labelWidth = w
		}
	}

	// "NN. " prefix + label + space + bar + score
	prefixWidth := len(fmt.Sprintf("%d. ", len(results)))
	barWidth := width - prefixWidth - labelWidth - 1 - scoreColumn
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	var sb strings.Builder
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%*d. ", prefixWidth-2, i+1))
		sb.WriteString(util.PadRight(labels[i], labelWidth))
		sb.WriteString(" ")
		sb.WriteString(renderBar(r.Score, barWidth, color))
		sb.WriteString(fmt.Sprintf(" %5.1f", r.Score))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderBar renders one bar of width cells filled in proportion to score.
func renderBar(score float64, width int, color bool) string {
	filled := int(math.Round(score / MaxScore * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	full := strings.Repeat(barFilled, filled)
	empty := strings.Repeat(barEmpty, width-filled)
	if !color {
		return full + empty
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(model.BandFor(score).Color()))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return barStyle.Render(full) + emptyStyle.Render(empty)
}
