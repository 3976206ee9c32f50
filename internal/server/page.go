// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/model"
)

// ============================================================================
// CHAT PAGE
// ============================================================================

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>talentdesk</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; display: flex; min-height: 100vh; }
.sidebar { width: 260px; background: #1f2937; color: #e5e7eb; padding: 16px; }
.chat-history-item { padding: 8px; border-radius: 6px; }
.chat-history-item.active { background: #374151; }
.chat { flex: 1; padding: 24px; }
.message { margin: 8px 0; }
.user-message .message-content { background: #2563eb; color: #fff; }
.bot-message .message-content { background: #f3f4f6; }
.message-content { display: inline-block; padding: 10px 14px; border-radius: 12px; }
</style>
</head>
<body>
`

// handleIndex handles GET /. Signed-in users see their conversations with
// the newest one (or ?conversation=<id>) open; everyone else sees the
// welcome placeholder.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var summaries []model.ConversationSummary
	var active *storedConversation

	if userID, ok := s.sessionFrom(r); ok {
		convs := s.state.listConversations(userID)
		summaries = make([]model.ConversationSummary, len(convs))
		for i, c := range convs {
			summaries[i] = model.ConversationSummary{
				ID:        strconv.FormatInt(c.id, 10),
				Title:     c.title,
				CreatedAt: c.createdAt,
			}
		}

		id, err := strconv.ParseInt(r.URL.Query().Get("conversation"), 10, 64)
		if err != nil && len(convs) > 0 {
			id = convs[0].id
		}
		if conv, err := s.state.conversation(userID, id); err == nil {
			active = &conv
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(renderPage(summaries, active)))
}

func renderPage(summaries []model.ConversationSummary, active *storedConversation) string {
	activeID := ""
	if active != nil {
		activeID = strconv.FormatInt(active.id, 10)
	}

	var sb strings.Builder
	sb.WriteString(pageHead)
	sb.WriteString("<nav class=\"sidebar\">\n")
	sb.WriteString(markup.Sidebar(summaries, activeID))
	sb.WriteString("</nav>\n<main class=\"chat\">\n")
	if active == nil || len(active.messages) == 0 {
		sb.WriteString(markup.Welcome())
	} else {
		for _, m := range active.messages {
			sb.WriteString(markup.ChatMessage(m.sender, m.content))
		}
	}
	sb.WriteString("</main>\n</body>\n</html>\n")
	return sb.String()
}
