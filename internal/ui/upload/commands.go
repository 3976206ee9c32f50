// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/upload"
)

// DefaultTimeout bounds every server call made from the view.
const DefaultTimeout = 120 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// rankedMsg carries the server's ranking for upload run id.
type rankedMsg struct {
	id             int
	jobDescription string
	resp           *model.RankResponse
	err            error
}

// progressTickMsg advances the simulated progress of run id.
type progressTickMsg struct{ id int }

// showResultsMsg switches to the results screen after the bar completes.
type showResultsMsg struct{ id int }

// csvSavedMsg reports a CSV export.
type csvSavedMsg struct {
	path string
	err  error
}

// reportSavedMsg reports an HTML report.
type reportSavedMsg struct {
	path string
	err  error
}

// historyMsg carries the analysis history.
type historyMsg struct {
	entries []model.HistoryEntry
	err     error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

func rankCmd(client upload.RankAPI, id int, sub upload.Submission, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := upload.Rank(ctx, client, sub)
		return rankedMsg{id: id, jobDescription: sub.JobDescription, resp: resp, err: err}
	}
}

func progressTickCmd(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return progressTickMsg{id: id}
	})
}

func showResultsCmd(id int) tea.Cmd {
	return tea.Tick(upload.ResultsDelay, func(time.Time) tea.Msg {
		return showResultsMsg{id: id}
	})
}

func exportCSVCmd(client upload.RankAPI, results []model.ResumeResult, dir string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		path, err := upload.ExportCSV(ctx, client, results, dir)
		return csvSavedMsg{path: path, err: err}
	}
}

func historyCmd(client upload.RankAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := client.ResumeHistory(ctx)
		return historyMsg{entries: entries, err: err}
	}
}

// reportCmd writes an HTML report. History is included when it can be
// fetched; a history failure does not fail the report.
func reportCmd(client upload.RankAPI, path string, report export.Report, opts *export.Options, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if entries, err := client.ResumeHistory(ctx); err == nil {
			report.History = entries
		}
		return reportSavedMsg{path: path, err: export.WriteReport(path, report, opts)}
	}
}
