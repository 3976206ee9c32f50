// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// RESUME TYPES
// =============================================================================

// ResumeResult is one scored resume. Rank is implied by position in the
// result list, which the server has already ordered.
type ResumeResult struct {
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
	Analysis string  `json:"analysis"`
}

// ResumeError is a resume the server could not analyze.
type ResumeError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// RankResponse is the outcome of one upload.
type RankResponse struct {
	Results []ResumeResult `json:"results"`
	Errors  []ResumeError  `json:"errors"`
}

// Empty reports whether the response carries neither results nor errors.
func (r RankResponse) Empty() bool {
	return len(r.Results) == 0 && len(r.Errors) == 0
}

// HistoryEntry is a previously analyzed resume.
type HistoryEntry struct {
	ID               int64     `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// CSVExport is a server-generated CSV document and its suggested file name.
type CSVExport struct {
	Filename string `json:"filename"`
	CSV      string `json:"csv"`
}
