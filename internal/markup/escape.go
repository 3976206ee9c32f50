// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"regexp"
	"strings"
)

// =============================================================================
// ESCAPING
// =============================================================================

// htmlReplacer maps the five HTML-significant characters to entities.
// html.EscapeString uses &#39; and &#34;; the entity set here is fixed.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces & < > " ' with their entities. It is not idempotent:
// escaping already escaped text escapes the ampersands again.
func EscapeHTML(text string) string {
	return htmlReplacer.Replace(text)
}

// =============================================================================
// MARKDOWN-LITE
// =============================================================================

const (
	listOpen  = "<li>"
	listClose = "</li>"
	lineBreak = "<br>"
	newline   = "\n"
)

var (
	boldRegex = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	h3Regex   = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Regex   = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Regex   = regexp.MustCompile(`(?m)^# (.+)$`)
	listRegex = regexp.MustCompile(`(?m)^- (.+)$`)
)

// FormatMarkdownLite converts the markdown subset to HTML. The rules run in
// a fixed order and each sees the output of the previous one. All list items
// are wrapped in a single <ul>, so separate list runs merge into one list.
// The input is not escaped; see FormatAnalysis.
func FormatMarkdownLite(text string) string {
	out := boldRegex.ReplaceAllString(text, "<strong>${1}</strong>")
	out = h3Regex.ReplaceAllString(out, "<h4>${1}</h4>")
	out = h2Regex.ReplaceAllString(out, "<h3>${1}</h3>")
	out = h1Regex.ReplaceAllString(out, "<h3>${1}</h3>")
	out = listRegex.ReplaceAllString(out, "<li>${1}</li>")
	out = wrapList(out)
	return strings.ReplaceAll(out, newline, lineBreak)
}

// wrapList wraps the span from the first <li> to the last </li> in <ul>.
func wrapList(s string) string {
	start := strings.Index(s, listOpen)
	if start < 0 {
		return s
	}
	end := strings.LastIndex(s, listClose)
	if end < start {
		return s
	}
	end += len(listClose)
	return s[:start] + "<ul>" + s[start:end] + "</ul>" + s[end:]
}

// FormatAnalysis renders untrusted analysis text: it escapes first and then
// applies the markdown subset. None of the markdown markers (* # -) are
// touched by escaping, so formatting survives.
func FormatAnalysis(text string) string {
	return FormatMarkdownLite(EscapeHTML(text))
}

// MessageHTML renders a chat message body: escaped, newlines as <br>.
func MessageHTML(text string) string {
	return strings.ReplaceAll(EscapeHTML(text), newline, lineBreak)
}
