// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeranaias/talentdesk/internal/chart"
	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/ui/components"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// =============================================================================
// RESULTS
// =============================================================================

// RenderResults renders a ranking response: the bar chart, one card per
// result in server order, then the errors. renderer may be nil for plain
// analysis text.
func RenderResults(resp *model.RankResponse, theme *styles.Theme, renderer *components.MarkdownRenderer, width int) string {
	if resp == nil || resp.Empty() {
		return theme.Muted.Render("No results.")
	}
	if width < 40 {
		width = 40
	}

	var blocks []string
	if len(resp.Results) > 0 {
		blocks = append(blocks, strings.TrimRight(chart.RenderTerminal(resp.Results, width, true), "\n"))
	}
	for i, r := range resp.Results {
		blocks = append(blocks, renderCard(i, r, theme, renderer, width))
	}
	if len(resp.Errors) > 0 {
		blocks = append(blocks, renderErrors(resp.Errors))
	}
	return strings.Join(blocks, "\n\n")
}

func renderCard(idx int, r model.ResumeResult, theme *styles.Theme, renderer *components.MarkdownRenderer, width int) string {
	score := styles.ScoreStyle(r.Score).Render(markup.FormatScore(r.Score))
	header := fmt.Sprintf("#%d %s  %s %s", idx+1, theme.CardTitle.Render(r.Filename), score, theme.Muted.Render("Match Score"))

	inner := width - 4
	analysis := r.Analysis
	if renderer != nil {
		analysis = renderer.Render(analysis, inner)
	} else {
		analysis = lipgloss.NewStyle().Width(inner).Render(analysis)
	}
	return theme.Card.Width(width - 2).Render(header + "\n\n" + analysis)
}

func renderErrors(errs []model.ResumeError) string {
	lines := []string{styles.RenderError("Errors")}
	for _, e := range errs {
		lines = append(lines, fmt.Sprintf("  - %s: %s", e.Filename, e.Error))
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// HISTORY
// =============================================================================

// RenderHistory renders previous analyses as a table, newest first as the
// server returned them, or the no-history notice.
func RenderHistory(entries []model.HistoryEntry, theme *styles.Theme) string {
	if len(entries) == 0 {
		return theme.Muted.Render(markup.NoHistoryText)
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.OriginalFilename, markup.FormatUploadTime(e.UploadedAt)}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Overlay)).
		Headers("File", "Uploaded").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHead
			}
			return theme.TableCell
		})
	return t.Render()
}
