// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/model"
)

// mockRankAPI is a testify mock of the ranking endpoints.
type mockRankAPI struct {
	mock.Mock
}

func (m *mockRankAPI) UploadResumes(ctx context.Context, jd string, files []api.UploadFile) (*model.RankResponse, error) {
	args := m.Called(ctx, jd, files)
	resp, _ := args.Get(0).(*model.RankResponse)
	return resp, args.Error(1)
}

func (m *mockRankAPI) DownloadCSV(ctx context.Context, results []model.ResumeResult) (*model.CSVExport, error) {
	args := m.Called(ctx, results)
	exp, _ := args.Get(0).(*model.CSVExport)
	return exp, args.Error(1)
}

func (m *mockRankAPI) ResumeHistory(ctx context.Context) ([]model.HistoryEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]model.HistoryEntry)
	return entries, args.Error(1)
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSelect_KeepsOnlyAcceptedTypes(t *testing.T) {
	sel := NewSelection()
	rejected, err := sel.Select([]string{"/tmp/a.pdf", "/tmp/notes.txt", "/tmp/b.DOCX"})
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)

	files := sel.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a.pdf", files[0].Name)
	assert.Equal(t, MIMEPDF, files[0].ContentType)
	assert.Equal(t, MIMEDOCX, files[1].ContentType)
}

func TestSelect_NoMatchesLeavesSelection(t *testing.T) {
	sel := NewSelection()
	_, err := sel.Select([]string{"/tmp/notes.txt"})
	require.ErrorIs(t, err, ErrNoValidFiles)
	assert.Equal(t, 0, sel.Len())

	_, err = sel.Select([]string{"/tmp/a.pdf"})
	require.NoError(t, err)
	_, err = sel.Select([]string{"/tmp/photo.png"})
	require.ErrorIs(t, err, ErrNoValidFiles)
	assert.Equal(t, 1, sel.Len(), "previous selection kept")
}

func TestSelect_ReplacesPreviousSelection(t *testing.T) {
	sel := NewSelection()
	_, err := sel.Select([]string{"/tmp/a.pdf", "/tmp/b.pdf"})
	require.NoError(t, err)
	_, err = sel.Select([]string{"/tmp/c.doc"})
	require.NoError(t, err)

	require.Equal(t, 1, sel.Len())
	assert.Equal(t, MIMEDOC, sel.Files()[0].ContentType)
}

func TestSelection_RemoveAndClear(t *testing.T) {
	sel := NewSelection()
	_, err := sel.Select([]string{"/tmp/a.pdf", "/tmp/b.pdf", "/tmp/c.pdf"})
	require.NoError(t, err)

	sel.Remove(1)
	sel.Remove(9)
	sel.Remove(-1)
	require.Equal(t, 2, sel.Len())
	assert.Equal(t, "c.pdf", sel.Files()[1].Name)

	sel.Clear()
	assert.Equal(t, 0, sel.Len())
}

func TestDetectType_SniffsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"), 0600))
	assert.Equal(t, MIMEPDF, DetectType(path))

	assert.Empty(t, DetectType(filepath.Join(t.TempDir(), "missing")))
}

// =============================================================================
// PROGRESS TESTS
// =============================================================================

func TestProgress_CapsAtNinetyUntilFinished(t *testing.T) {
	p := NewProgress(0, 0)
	assert.Equal(t, DefaultProgressStep, p.Step)
	assert.Equal(t, DefaultProgressInterval, p.Interval)

	var last int
	for i := 0; i < 30; i++ {
		last = p.Tick()
	}
	assert.Equal(t, ProgressCap, last)
	assert.False(t, p.Done())

	p.Finish()
	assert.Equal(t, ProgressDone, p.Value())
	assert.Equal(t, ProgressDone, p.Tick(), "ticks after finish do nothing")
	assert.InDelta(t, 1.0, p.Fraction(), 0.0001)
}

func TestProgress_RunStopsOnCancel(t *testing.T) {
	p := NewProgress(5, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	seen := make(chan int, 100)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, func(v int) {
			select {
			case seen <- v:
			default:
			}
		})
		close(done)
	}()

	first := <-seen
	assert.Equal(t, 5, first)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// =============================================================================
// CONTROLLER TESTS
// =============================================================================

func TestSubmit_EmptySelectionSendsNothing(t *testing.T) {
	client := &mockRankAPI{}
	ctl := NewController(client, t.TempDir())

	_, err := ctl.Submit(context.Background(), "Go developer")
	require.ErrorIs(t, err, api.ErrValidation)
	assert.Equal(t, "Please select at least one resume", SubmitErrorText(err))
	client.AssertNotCalled(t, "UploadResumes", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_KeepsServerOrder(t *testing.T) {
	client := &mockRankAPI{}
	resp := &model.RankResponse{
		Results: []model.ResumeResult{
			{Filename: "b.pdf", Score: 40},
			{Filename: "a.pdf", Score: 90},
		},
		Errors: []model.ResumeError{{Filename: "c.pdf", Error: "Could not extract text from resume"}},
	}
	client.On("UploadResumes", mock.Anything, "Go developer", []api.UploadFile{
		{Path: "/tmp/a.pdf", ContentType: MIMEPDF},
	}).Return(resp, nil).Once()

	ctl := NewController(client, t.TempDir())
	_, err := ctl.Selection().Select([]string{"/tmp/a.pdf"})
	require.NoError(t, err)

	got, err := ctl.Submit(context.Background(), "Go developer")
	require.NoError(t, err)
	assert.Same(t, resp, got)
	assert.Equal(t, "b.pdf", ctl.Results()[0].Filename)
	assert.Equal(t, "Go developer", ctl.JobDescription())
	client.AssertExpectations(t)
}

func TestExportCSV_WritesServerFile(t *testing.T) {
	dir := t.TempDir()
	results := []model.ResumeResult{{Filename: "a.pdf", Score: 90, Analysis: "good"}}

	client := &mockRankAPI{}
	client.On("DownloadCSV", mock.Anything, results).Return(&model.CSVExport{
		Filename: "resume_analysis_20250101_120000.csv",
		CSV:      "Rank,Resume,Score,AI Feedback Summary\n1,a.pdf,90.0,good...\n",
	}, nil)

	ctl := NewController(client, dir)
	ctl.Apply("jd", &model.RankResponse{Results: results})

	path, err := ctl.ExportCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resume_analysis_20250101_120000.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rank,Resume,Score")
}

func TestExportCSV_NoResults(t *testing.T) {
	ctl := NewController(&mockRankAPI{}, t.TempDir())
	_, err := ctl.ExportCSV(context.Background())
	require.ErrorIs(t, err, api.ErrValidation)
	assert.Equal(t, NoResultsText, DownloadErrorText(err))
}

func TestErrorTexts(t *testing.T) {
	appErr := &api.APIError{Status: 500, Message: "bad file"}
	netErr := &api.TransportError{Op: "upload", Err: errors.New("refused")}

	assert.Equal(t, "Error: bad file", SubmitErrorText(appErr))
	assert.Equal(t, UploadFailureText, SubmitErrorText(netErr))
	assert.Equal(t, "Error generating CSV: bad file", DownloadErrorText(appErr))
	assert.Equal(t, DownloadFailureText, DownloadErrorText(netErr))
}

func TestHistory_PassesThrough(t *testing.T) {
	entries := []model.HistoryEntry{{ID: 1, OriginalFilename: "a.pdf"}}
	client := &mockRankAPI{}
	client.On("ResumeHistory", mock.Anything).Return(entries, nil)

	got, err := NewController(client, t.TempDir()).History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
