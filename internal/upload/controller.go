// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/util"
)

// User-facing failure texts.
const (
	UploadFailureText   = "Upload failed. Please try again."
	DownloadFailureText = "Download failed. Please try again."
	NoResultsText       = "No results to download"
)

// RankAPI is the part of the server contract the upload flow uses.
// *api.Client satisfies it.
type RankAPI interface {
	UploadResumes(ctx context.Context, jobDescription string, files []api.UploadFile) (*model.RankResponse, error)
	DownloadCSV(ctx context.Context, results []model.ResumeResult) (*model.CSVExport, error)
	ResumeHistory(ctx context.Context) ([]model.HistoryEntry, error)
}

// Controller holds the selection and the last ranking response.
type Controller struct {
	client    RankAPI
	selection *Selection
	outputDir string

	jobDescription string
	response       *model.RankResponse
}

// NewController creates an upload controller. CSV exports are written to
// outputDir.
func NewController(client RankAPI, outputDir string) *Controller {
	return &Controller{client: client, selection: NewSelection(), outputDir: outputDir}
}

// Selection returns the file selection.
func (c *Controller) Selection() *Selection {
	return c.selection
}

// JobDescription returns the text sent with the last submission.
func (c *Controller) JobDescription() string {
	return c.jobDescription
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submission is a snapshot of one upload request.
type Submission struct {
	JobDescription string
	Files          []api.UploadFile
}

// Prepare snapshots the selection for upload. An empty selection is
// rejected before any request.
func (c *Controller) Prepare(jobDescription string) (Submission, error) {
	files := c.selection.Files()
	if len(files) == 0 {
		return Submission{}, &api.ValidationError{Field: "resumes", Message: "Please select at least one resume"}
	}
	sub := Submission{JobDescription: jobDescription, Files: make([]api.UploadFile, len(files))}
	for i, f := range files {
		sub.Files[i] = api.UploadFile{Path: f.Path, ContentType: f.ContentType}
	}
	return sub, nil
}

// Rank performs the network part of a submission.
func Rank(ctx context.Context, client RankAPI, sub Submission) (*model.RankResponse, error) {
	resp, err := client.UploadResumes(ctx, sub.JobDescription, sub.Files)
	if err != nil {
		logging.For("upload").WithError(err).Warn("upload failed")
		return nil, err
	}
	logging.For("upload").WithField("results", len(resp.Results)).
		WithField("errors", len(resp.Errors)).Info("resumes ranked")
	return resp, nil
}

// Apply records a ranking response. Results keep the server's order.
func (c *Controller) Apply(jobDescription string, resp *model.RankResponse) {
	c.jobDescription = jobDescription
	c.response = resp
}

// Submit prepares, ranks, and applies in one step.
func (c *Controller) Submit(ctx context.Context, jobDescription string) (*model.RankResponse, error) {
	sub, err := c.Prepare(jobDescription)
	if err != nil {
		return nil, err
	}
	resp, err := Rank(ctx, c.client, sub)
	if err != nil {
		return nil, err
	}
	c.Apply(jobDescription, resp)
	return resp, nil
}

// Response returns the last ranking response, or nil.
func (c *Controller) Response() *model.RankResponse {
	return c.response
}

// Results returns the last results in server order.
func (c *Controller) Results() []model.ResumeResult {
	if c.response == nil {
		return nil
	}
	return c.response.Results
}

// =============================================================================
// CSV AND HISTORY
// =============================================================================

// ExportCSV asks the server for a CSV of the current results and writes it
// into the output directory under the server's filename.
func (c *Controller) ExportCSV(ctx context.Context) (string, error) {
	return ExportCSV(ctx, c.client, c.Results(), c.outputDir)
}

// ExportCSV converts results to CSV on the server and saves the file.
func ExportCSV(ctx context.Context, client RankAPI, results []model.ResumeResult, dir string) (string, error) {
	if len(results) == 0 {
		return "", &api.ValidationError{Field: "results", Message: NoResultsText}
	}
	export, err := client.DownloadCSV(ctx, results)
	if err != nil {
		return "", err
	}
	path, err := util.SaveDownload(dir, export.Filename, []byte(export.CSV))
	if err != nil {
		return "", fmt.Errorf("save %s: %w", export.Filename, err)
	}
	logging.For("upload").WithField("path", path).Info("csv saved")
	return path, nil
}

// History fetches the analysis history.
func (c *Controller) History(ctx context.Context) ([]model.HistoryEntry, error) {
	return c.client.ResumeHistory(ctx)
}

// =============================================================================
// ERROR TEXT
// =============================================================================

// SubmitErrorText maps an upload failure to the text shown to the user.
func SubmitErrorText(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if msg := api.ServerMessage(err); msg != "" {
		return "Error: " + msg
	}
	return UploadFailureText
}

// DownloadErrorText maps a CSV export failure to the text shown to the
// user.
func DownloadErrorText(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if msg := api.ServerMessage(err); msg != "" {
		return "Error generating CSV: " + msg
	}
	return DownloadFailureText
}
