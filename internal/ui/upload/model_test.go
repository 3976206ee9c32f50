// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
	"github.com/jeranaias/talentdesk/internal/upload"
)

// =============================================================================
// HELPERS
// =============================================================================

// fakeRankAPI records uploads and serves canned responses.
type fakeRankAPI struct {
	uploads   [][]api.UploadFile
	jobs      []string
	resp      *model.RankResponse
	uploadErr error
	history   []model.HistoryEntry
}

func (f *fakeRankAPI) UploadResumes(_ context.Context, jd string, files []api.UploadFile) (*model.RankResponse, error) {
	f.uploads = append(f.uploads, files)
	f.jobs = append(f.jobs, jd)
	return f.resp, f.uploadErr
}

func (f *fakeRankAPI) DownloadCSV(_ context.Context, results []model.ResumeResult) (*model.CSVExport, error) {
	return &model.CSVExport{Filename: "resume_analysis_20250304_050607.csv", CSV: "Rank,Resume,Score,AI Feedback Summary\r\n"}, nil
}

func (f *fakeRankAPI) ResumeHistory(context.Context) ([]model.HistoryEntry, error) {
	return f.history, nil
}

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func rankedResponse() *model.RankResponse {
	return &model.RankResponse{
		Results: []model.ResumeResult{
			{Filename: "senior.pdf", Score: 85, Analysis: "**Match Score**: 85/100"},
			{Filename: "junior.pdf", Score: 45, Analysis: "**Match Score**: 45/100"},
		},
		Errors: []model.ResumeError{{Filename: "broken.docx", Error: "Could not extract text from resume"}},
	}
}

func newTestModel(t *testing.T, client *fakeRankAPI, paths ...string) Model {
	t.Helper()
	m := New(client, styles.NewTheme("dark"), Options{
		OutputDir:        t.TempDir(),
		ProgressInterval: time.Millisecond,
		Paths:            paths,
		Now:              func() time.Time { return fixedNow },
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 200})
	return next.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: k})
}

// rankToResults walks an upload through progress to the results screen.
func rankToResults(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	require.Equal(t, screenUploading, m.screen)

	for i := 0; i < 3; i++ {
		m, _ = update(m, progressTickMsg{id: m.run})
	}
	assert.Equal(t, 15, m.progress.Value())

	m, _ = update(m, rankCmd(m.client, m.run, mustPrepare(t, m), time.Second)())
	assert.Equal(t, upload.ProgressDone, m.progress.Value())

	m, _ = update(m, showResultsMsg{id: m.run})
	require.Equal(t, screenResults, m.screen)
	return m
}

func mustPrepare(t *testing.T, m Model) upload.Submission {
	t.Helper()
	sub, err := m.ctrl.Prepare(strings.TrimSpace(m.job.Value()))
	require.NoError(t, err)
	return sub
}

// =============================================================================
// SELECT SCREEN
// =============================================================================

func TestNew_SelectsAcceptedPaths(t *testing.T) {
	m := newTestModel(t, &fakeRankAPI{}, "a.pdf", "notes.txt", "b.docx")

	assert.Equal(t, 2, m.ctrl.Selection().Len())
	assert.Contains(t, m.Status(), "1 skipped")
	assert.Contains(t, m.View(), "a.pdf")
}

func TestAddFiles_NoValidFilesKeepsSelection(t *testing.T) {
	m := newTestModel(t, &fakeRankAPI{}, "a.pdf")

	m.paths.SetValue("notes.txt image.gif")
	m, _ = press(m, tea.KeyEnter)

	assert.Equal(t, upload.ErrNoValidFiles.Error(), m.Status())
	assert.True(t, m.failed)
	assert.Equal(t, 1, m.ctrl.Selection().Len())
	assert.Equal(t, "notes.txt image.gif", m.paths.Value())
}

func TestAddFiles_ReplacesSelection(t *testing.T) {
	m := newTestModel(t, &fakeRankAPI{}, "a.pdf")

	m.paths.SetValue("c.pdf d.doc")
	m, _ = press(m, tea.KeyEnter)

	files := m.ctrl.Selection().Files()
	require.Len(t, files, 2)
	assert.Equal(t, "c.pdf", files[0].Name)
	assert.Empty(t, m.paths.Value())
}

func TestEnterInJobDescriptionIsNewline(t *testing.T) {
	m := newTestModel(t, &fakeRankAPI{}, "a.pdf")
	m, _ = press(m, tea.KeyTab)
	require.Equal(t, focusJob, m.focus)

	m.job.SetValue("golang")
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, "golang\n", m.job.Value())
	assert.Equal(t, 1, m.ctrl.Selection().Len())
}

func TestRemoveAndClear(t *testing.T) {
	m := newTestModel(t, &fakeRankAPI{}, "a.pdf", "b.pdf", "c.pdf")

	m, _ = press(m, tea.KeyCtrlN)
	m, _ = press(m, tea.KeyCtrlX)
	names := []string{}
	for _, f := range m.ctrl.Selection().Files() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.pdf", "c.pdf"}, names)

	m, _ = press(m, tea.KeyCtrlL)
	assert.Zero(t, m.ctrl.Selection().Len())
}

func TestAnalyze_EmptySelectionSendsNothing(t *testing.T) {
	client := &fakeRankAPI{}
	m := newTestModel(t, client)

	m, cmd := press(m, tea.KeyCtrlS)
	assert.Nil(t, cmd)
	assert.Equal(t, screenSelect, m.screen)
	assert.Equal(t, "Please select at least one resume", m.Status())
	assert.Empty(t, client.uploads)
}

// =============================================================================
// UPLOAD AND RESULTS
// =============================================================================

func TestAnalyze_ShowsResultsInServerOrder(t *testing.T) {
	client := &fakeRankAPI{resp: rankedResponse()}
	m := newTestModel(t, client, "junior.pdf", "senior.pdf")
	m.job.SetValue("  golang  ")

	m = rankToResults(t, m)
	require.Len(t, client.jobs, 1)
	assert.Equal(t, "golang", client.jobs[0])

	view := m.View()
	first := strings.Index(view, "#1 ")
	second := strings.Index(view, "#2 ")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Contains(t, view[first:second], "senior.pdf")
	assert.Contains(t, view[second:], "junior.pdf")
	assert.Contains(t, view, "85.0")
	assert.Contains(t, view, "broken.docx: Could not extract text from resume")
}

func TestAnalyze_FailureReturnsToSelect(t *testing.T) {
	client := &fakeRankAPI{uploadErr: &api.APIError{Status: 401, Message: "Not authenticated"}}
	m := newTestModel(t, client, "a.pdf")

	m, _ = press(m, tea.KeyCtrlS)
	m, _ = update(m, rankCmd(m.client, m.run, mustPrepare(t, m), time.Second)())

	assert.Equal(t, screenSelect, m.screen)
	assert.Equal(t, "Error: Not authenticated", m.Status())
	assert.Equal(t, 1, m.ctrl.Selection().Len(), "selection kept for retry")
}

func TestProgress_StaleTicksIgnored(t *testing.T) {
	m := newTestModel(t, &fakeRankAPI{resp: rankedResponse()}, "a.pdf")
	m, _ = press(m, tea.KeyCtrlS)

	m, cmd := update(m, progressTickMsg{id: m.run - 1})
	assert.Nil(t, cmd)
	assert.Zero(t, m.progress.Value())

	m, cmd = update(m, progressTickMsg{id: m.run})
	assert.NotNil(t, cmd)
	assert.Equal(t, upload.DefaultProgressStep, m.progress.Value())
}

func TestExportCSV(t *testing.T) {
	m := rankToResults(t, newTestModel(t, &fakeRankAPI{resp: rankedResponse()}, "a.pdf"))

	m, cmd := press(m, tea.KeyCtrlE)
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())

	require.True(t, strings.HasPrefix(m.Status(), "CSV saved to "), m.Status())
	data, err := os.ReadFile(strings.TrimPrefix(m.Status(), "CSV saved to "))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Rank,Resume,Score"))
}

func TestWriteReport(t *testing.T) {
	client := &fakeRankAPI{resp: rankedResponse(), history: []model.HistoryEntry{{ID: 1, OriginalFilename: "old.pdf", UploadedAt: fixedNow}}}
	m := rankToResults(t, newTestModel(t, client, "a.pdf"))

	m, cmd := press(m, tea.KeyCtrlR)
	m, _ = update(m, cmd())

	require.True(t, strings.HasPrefix(m.Status(), "Report saved to "), m.Status())
	path := strings.TrimPrefix(m.Status(), "Report saved to ")
	assert.True(t, strings.HasSuffix(path, "resume_report_20250304_050607.html"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "senior.pdf")
	assert.Contains(t, string(data), "old.pdf")
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory(t *testing.T) {
	client := &fakeRankAPI{history: []model.HistoryEntry{{ID: 2, OriginalFilename: "recent.pdf", UploadedAt: fixedNow}}}
	m := newTestModel(t, client)

	m, cmd := press(m, tea.KeyCtrlT)
	m, _ = update(m, cmd())
	require.Equal(t, screenHistory, m.screen)
	assert.Contains(t, m.View(), "recent.pdf")

	m, _ = press(m, tea.KeyEsc)
	assert.Equal(t, screenSelect, m.screen)
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, RenderHistory(nil, styles.NewTheme("dark")), markup.NoHistoryText)
}

func TestRenderResults_Nil(t *testing.T) {
	assert.Contains(t, RenderResults(nil, styles.NewTheme("dark"), nil, 80), "No results.")
}
