// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Accepted resume MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEDOC  = "application/msword"
)

// ErrNoValidFiles is returned by Select when no path is an accepted type.
var ErrNoValidFiles = errors.New("Please select valid PDF or DOCX files")

// acceptedTypes is the allow-list checked against every selected file.
var acceptedTypes = map[string]bool{
	MIMEPDF:  true,
	MIMEDOCX: true,
	MIMEDOC:  true,
}

// extensionTypes maps known extensions without opening the file.
var extensionTypes = map[string]string{
	".pdf":  MIMEPDF,
	".docx": MIMEDOCX,
	".doc":  MIMEDOC,
	".txt":  "text/plain",
	".md":   "text/markdown",
	".rtf":  "application/rtf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// File is one selected resume.
type File struct {
	Path        string
	Name        string
	ContentType string
}

// DetectType returns the MIME type of a file: by extension when known,
// otherwise by sniffing its content.
func DetectType(path string) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	// Sniffed types may carry parameters ("text/plain; charset=utf-8").
	t, _, _ := strings.Cut(m.String(), ";")
	for _, accepted := range []string{MIMEPDF, MIMEDOCX, MIMEDOC} {
		if m.Is(accepted) {
			return accepted
		}
	}
	return t
}

// Accepted reports whether a MIME type is an accepted resume type.
func Accepted(contentType string) bool {
	return acceptedTypes[contentType]
}

// Selection is the ordered list of files chosen for upload.
type Selection struct {
	files  []File
	detect func(string) string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{detect: DetectType}
}

// Select filters paths to accepted types. If at least one matches, the
// matching files replace the current selection and the number of rejected
// paths is returned. If none match, ErrNoValidFiles is returned and the
// selection is left untouched.
func (s *Selection) Select(paths []string) (rejected int, err error) {
	var kept []File
	for _, p := range paths {
		t := s.detect(p)
		if !Accepted(t) {
			rejected++
			continue
		}
		kept = append(kept, File{Path: p, Name: filepath.Base(p), ContentType: t})
	}
	if len(kept) == 0 {
		return rejected, ErrNoValidFiles
	}
	s.files = kept
	return rejected, nil
}

// Remove drops the file at index i. Out-of-range indexes are ignored.
func (s *Selection) Remove(i int) {
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.files = nil
}

// Files returns a copy of the selected files.
func (s *Selection) Files() []File {
	out := make([]File, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of selected files.
func (s *Selection) Len() int {
	return len(s.files)
}
