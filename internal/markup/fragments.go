// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// FIXED TEXTS
// =============================================================================

const (
	// WelcomeTitle and WelcomeBody make up the empty-conversation placeholder.
	WelcomeTitle = "Welcome to AI Assistant"
	WelcomeBody  = "Start a conversation by typing a message below."

	// TypingText is shown while a reply is pending.
	TypingText = "Typing..."

	// NoChatsText is shown in an empty sidebar.
	NoChatsText = "No chats yet"

	// NoHistoryText is shown when there are no previous analyses.
	NoHistoryText = "No previous analyses found."

	// HistoryTimeFormat formats upload timestamps in the local zone.
	HistoryTimeFormat = "2006-01-02 15:04:05"
)

// =============================================================================
// CHAT FRAGMENTS
// =============================================================================

// ChatMessage renders one chat message bubble.
func ChatMessage(sender model.Sender, content string) string {
	class := "bot-message"
	if sender == model.SenderUser {
		class = "user-message"
	}
	return fmt.Sprintf("<div class=\"message %s\"><div class=\"message-content\">%s</div></div>\n",
		class, MessageHTML(content))
}

// Welcome renders the empty-conversation placeholder.
func Welcome() string {
	return fmt.Sprintf("<div class=\"welcome-message\"><h2>%s</h2><p>%s</p></div>\n", WelcomeTitle, WelcomeBody)
}

// SidebarItem renders one sidebar entry. Exactly one entry per render should
// be active.
func SidebarItem(summary model.ConversationSummary, active bool) string {
	class := "chat-history-item"
	if active {
		class += " active"
	}
	return fmt.Sprintf("<div class=\"%s\" data-conv-id=\"%s\">%s</div>\n",
		class, EscapeHTML(summary.ID), EscapeHTML(summary.Title))
}

// Sidebar renders the full sidebar with activeID highlighted.
func Sidebar(summaries []model.ConversationSummary, activeID string) string {
	if len(summaries) == 0 {
		return fmt.Sprintf("<p class=\"no-chats\">%s</p>\n", NoChatsText)
	}
	var sb strings.Builder
	for _, s := range summaries {
		sb.WriteString(SidebarItem(s, s.ID == activeID))
	}
	return sb.String()
}

// =============================================================================
// RESUME FRAGMENTS
// =============================================================================

// ResultCard renders a scored resume. idx is the zero-based position in the
// server's ordering; the card shows it as a 1-based rank.
func ResultCard(idx int, result model.ResumeResult) string {
	var sb strings.Builder
	sb.WriteString("<div class=\"result-card\">\n")
	sb.WriteString("  <div class=\"result-header\">\n")
	sb.WriteString(fmt.Sprintf("    <div class=\"result-rank\">#%d</div>\n", idx+1))
	sb.WriteString("    <div class=\"result-info\">\n")
	sb.WriteString(fmt.Sprintf("      <h3>%s</h3>\n", EscapeHTML(result.Filename)))
	sb.WriteString("      <div class=\"result-score\">\n")
	sb.WriteString(fmt.Sprintf("        <div class=\"score-badge\" style=\"background: %s\">%s</div>\n",
		model.BandFor(result.Score).Gradient(), FormatScore(result.Score)))
	sb.WriteString("        <span>Match Score</span>\n")
	sb.WriteString("      </div>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("  </div>\n")
	sb.WriteString(fmt.Sprintf("  <div class=\"result-content\">%s</div>\n", FormatAnalysis(result.Analysis)))
	sb.WriteString("</div>\n")
	return sb.String()
}

// ErrorList renders the failed uploads, or nothing when there are none.
func ErrorList(errs []model.ResumeError) string {
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<div class=\"error-card\">\n  <h4>Errors</h4>\n  <ul>\n")
	for _, e := range errs {
		sb.WriteString(fmt.Sprintf("    <li>%s: %s</li>\n", EscapeHTML(e.Filename), EscapeHTML(e.Error)))
	}
	sb.WriteString("  </ul>\n</div>\n")
	return sb.String()
}

// HistoryTable renders previous analyses, or the no-history notice.
func HistoryTable(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("<p class=\"no-history\">%s</p>\n", NoHistoryText)
	}
	var sb strings.Builder
	sb.WriteString("<table><tr><th>File</th><th>Uploaded</th></tr>")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td></tr>",
			EscapeHTML(e.OriginalFilename), FormatUploadTime(e.UploadedAt)))
	}
	sb.WriteString("</table>\n")
	return sb.String()
}

// FormatScore renders a score with one decimal place.
func FormatScore(score float64) string {
	return model.FormatScore(score, 1)
}

// FormatUploadTime renders an upload timestamp in the local zone.
func FormatUploadTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(HistoryTimeFormat)
}
