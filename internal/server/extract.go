// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ============================================================================
// TEXT EXTRACTION
// ============================================================================

// MaxExtractedStream bounds the text read from one uploaded document.
// SECURITY: Prevents decompression bombs.
const MaxExtractedStream = 8 * 1024 * 1024

// allowedExtensions are the upload types the server accepts.
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"docx": true,
	"doc":  true,
}

// allowedFile reports whether name has an accepted extension.
func allowedFile(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && allowedExtensions[ext]
}

// extractText returns the plain text of a resume, chosen by extension. Any
// failure yields an empty string, which the caller reports per file.
func extractText(name string, data []byte) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return extractPDFText(data)
	}
	return extractDOCXText(data)
}

// extractPDFText returns the text shown on every page. Scanned PDFs and
// malformed files yield nothing.
func extractPDFText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger().WithField("panic", r).Warn("PDF_EXTRACT_PANIC")
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	out, err := io.ReadAll(io.LimitReader(plain, MaxExtractedStream))
	if err != nil {
		return ""
	}
	return string(out)
}

// extractDOCXText reads word/document.xml and joins the text runs, one line
// per paragraph. Legacy .doc files are not zip archives and yield nothing.
func extractDOCXText(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		defer rc.Close()
		return documentText(io.LimitReader(rc, MaxExtractedStream))
	}
	return ""
}

func documentText(r io.Reader) string {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inText = t.Name.Local == "t"
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String()
}
