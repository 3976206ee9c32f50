// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"compress/zlib"
	"fmt"
)

// BuildPDF returns a one-page PDF whose page draws content with font /F1.
// When flate is set the content stream is zlib-compressed.
func BuildPDF(content string, flate bool) []byte {
	stream := []byte(content)
	filter := ""
	if flate {
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		_, _ = zw.Write(stream)
		_ = zw.Close()
		stream = z.Bytes()
		filter = " /Filter /FlateDecode"
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d%s >>\nstream\n%s\nendstream", len(stream), filter, stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// TextPDF returns a PDF showing text as a single line.
func TextPDF(text string) []byte {
	return BuildPDF("BT /F1 12 Tf 72 712 Td ("+text+") Tj ET", false)
}
