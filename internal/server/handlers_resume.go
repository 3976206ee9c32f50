// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/talentdesk/internal/model"
)

// ============================================================================
// RESUME HANDLERS
// ============================================================================

// CSVSummaryRunes is how much of each analysis the CSV summary column keeps.
const CSVSummaryRunes = 200

// handleUploadResume handles POST /upload-resume. Files with unsupported
// extensions are skipped silently; files that cannot be read or analyzed
// are reported in "errors". Results are sorted by score, highest first.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeFailure(w, http.StatusBadRequest, "No files uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, ok := r.MultipartForm.File["resumes"]
	if !ok {
		writeFailure(w, http.StatusBadRequest, "No files uploaded")
		return
	}
	if len(files) == 0 {
		writeFailure(w, http.StatusBadRequest, "No files selected")
		return
	}

	userID := currentUser(r)
	jobDescription := r.FormValue("job_description")
	results := []model.ResumeResult{}
	resumeErrors := []model.ResumeError{}

	for _, fh := range files {
		if fh.Filename == "" || !allowedFile(fh.Filename) {
			continue
		}
		name := secureFilename(fh.Filename)

		text, err := readUpload(fh)
		if err != nil || strings.TrimSpace(text) == "" {
			resumeErrors = append(resumeErrors, model.ResumeError{Filename: name, Error: "Could not extract text from resume"})
			continue
		}

		analysis, err := s.analyzer.Analyze(r.Context(), jobDescription, text)
		if err != nil {
			resumeErrors = append(resumeErrors, model.ResumeError{Filename: name, Error: "Analysis error: " + err.Error()})
			continue
		}

		score := ExtractScore(analysis)
		s.state.recordResume(userID, name, analysis, score, jobDescription)
		results = append(results, model.ResumeResult{Filename: name, Score: score, Analysis: analysis})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	logger().WithField("results", len(results)).WithField("errors", len(resumeErrors)).Info("RESUMES_ANALYZED")
	writeSuccess(w, map[string]any{"results": results, "errors": resumeErrors})
}

func readUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return extractText(secureFilename(fh.Filename), data), nil
}

// secureFilename reduces an uploaded file name to a safe base name: accents
// are decomposed, path separators become spaces, only ASCII letters, digits,
// '_', '.' and '-' survive, whitespace runs become '_' and leading or
// trailing '.' and '_' are dropped.
func secureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			sb.WriteRune(r)
		}
	}
	return strings.Trim(sb.String(), "._")
}

type downloadCSVRequest struct {
	Results []struct {
		Filename *string `json:"filename"`
		Score    float64 `json:"score"`
		Analysis string  `json:"analysis"`
	} `json:"results"`
}

// handleDownloadCSV handles POST /download-csv. Rows keep the order they
// were sent in; rank is the 1-based position.
func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	var req downloadCSVRequest
	if err := decodeJSON(w, r, &req); err != nil || len(req.Results) == 0 {
		writeFailure(w, http.StatusBadRequest, "No results to download")
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.UseCRLF = true
	_ = cw.Write([]string{"Rank", "Resume", "Score", "AI Feedback Summary"})
	for i, res := range req.Results {
		filename := "Unknown"
		if res.Filename != nil {
			filename = *res.Filename
		}
		_ = cw.Write([]string{
			strconv.Itoa(i + 1),
			filename,
			formatCSVScore(res.Score),
			csvSummary(res.Analysis),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeSuccess(w, map[string]any{
		"csv":      buf.String(),
		"filename": fmt.Sprintf("resume_analysis_%s.csv", s.now().Format("20060102_150405")),
	})
}

// csvSummary keeps the first CSVSummaryRunes runes with newlines flattened.
func csvSummary(analysis string) string {
	runes := []rune(analysis)
	if len(runes) > CSVSummaryRunes {
		runes = runes[:CSVSummaryRunes]
	}
	return strings.ReplaceAll(string(runes), "\n", " ") + "..."
}

// formatCSVScore writes whole scores with one decimal ("85.0").
func formatCSVScore(score float64) string {
	if score == math.Trunc(score) {
		return strconv.FormatFloat(score, 'f', 1, 64)
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

type historyJSON struct {
	ID               int64     `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// handleResumeHistory handles GET /get-resume-history.
func (s *Server) handleResumeHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.state.resumeHistory(currentUser(r))
	out := make([]historyJSON, len(entries))
	for i, e := range entries {
		out[i] = historyJSON{ID: e.id, OriginalFilename: e.originalFilename, UploadedAt: e.uploadedAt}
	}
	writeSuccess(w, map[string]any{"resumes": out})
}
