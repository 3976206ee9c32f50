// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// RESUME ENDPOINTS
// =============================================================================

// UploadFile is one resume to upload.
type UploadFile struct {
	Path        string
	ContentType string
}

type uploadResponse struct {
	Results []model.ResumeResult `json:"results"`
	Errors  []model.ResumeError  `json:"errors"`
}

type downloadCSVRequest struct {
	Results []model.ResumeResult `json:"results"`
}

type historyItem struct {
	ID               int64      `json:"id"`
	OriginalFilename string     `json:"original_filename"`
	UploadedAt       serverTime `json:"uploaded_at"`
}

type historyResponse struct {
	Resumes []historyItem `json:"resumes"`
}

// UploadResumes sends the job description and resumes for scoring. The
// results come back in the server's order, which the client keeps.
func (c *Client) UploadResumes(ctx context.Context, jobDescription string, files []UploadFile) (*model.RankResponse, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Field: "resumes", Message: "Please select at least one resume"}
	}

	body, contentType, err := buildUpload(jobDescription, files)
	if err != nil {
		return nil, err
	}

	status, data, err := c.do(ctx, http.MethodPost, "/upload-resume", body, contentType)
	if err != nil {
		return nil, err
	}

	var resp uploadResponse
	if err := decodeEnvelope("POST /upload-resume", status, data, &resp); err != nil {
		return nil, err
	}
	return &model.RankResponse{Results: resp.Results, Errors: resp.Errors}, nil
}

// buildUpload encodes the multipart form: one job_description field and one
// resumes part per file.
func buildUpload(jobDescription string, files []UploadFile) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("job_description", jobDescription); err != nil {
		return nil, "", fmt.Errorf("write job description: %w", err)
	}

	for _, f := range files {
		if err := writeFilePart(w, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, f UploadFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer src.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resumes"; filename="%s"`,
		escapeQuotes(filepath.Base(f.Path))))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part for %s: %w", f.Path, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("read %s: %w", f.Path, err)
	}
	return nil
}

// escapeQuotes matches the quoting mime/multipart applies to file names.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		if r == '\\' || r == '"' {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// DownloadCSV asks the server to render results as CSV.
func (c *Client) DownloadCSV(ctx context.Context, results []model.ResumeResult) (*model.CSVExport, error) {
	if len(results) == 0 {
		return nil, &ValidationError{Field: "results", Message: "No results to download"}
	}
	var resp model.CSVExport
	if err := c.doJSON(ctx, http.MethodPost, "/download-csv", downloadCSVRequest{Results: results}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResumeHistory returns the most recent analyses, newest first.
func (c *Client) ResumeHistory(ctx context.Context) ([]model.HistoryEntry, error) {
	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/get-resume-history", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]model.HistoryEntry, len(resp.Resumes))
	for i, r := range resp.Resumes {
		out[i] = model.HistoryEntry{ID: r.ID, OriginalFilename: r.OriginalFilename, UploadedAt: r.UploadedAt.Time}
	}
	return out, nil
}
