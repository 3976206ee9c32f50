// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jeranaias/talentdesk/internal/storage"
)

// ============================================================================
// REPLIES
// ============================================================================

// EchoReplier answers every message by quoting it back.
func EchoReplier() storage.Replier {
	return storage.ReplierFunc(func(ctx context.Context, text string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "You said: " + text, nil
	})
}

// ============================================================================
// CONVERSATION HANDLERS
// ============================================================================

type conversationJSON struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type messageJSON struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// handleListConversations handles GET /get-conversations.
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	convs := s.state.listConversations(currentUser(r))
	out := make([]conversationJSON, len(convs))
	for i, c := range convs {
		out[i] = conversationJSON{ID: c.id, Title: c.title, CreatedAt: c.createdAt}
	}
	writeSuccess(w, map[string]any{"conversations": out})
}

// handleNewConversation handles POST /new-conversation.
func (s *Server) handleNewConversation(w http.ResponseWriter, r *http.Request) {
	id := s.state.createConversation(currentUser(r))
	writeSuccess(w, map[string]any{"conversation_id": id})
}

// handleLoadConversation handles GET /load-conversation/{id}. Ids that are
// not integers are reported the same way as unknown ones.
func (s *Server) handleLoadConversation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusNotFound, errNoConversation.Error())
		return
	}

	conv, err := s.state.conversation(currentUser(r), id)
	if err != nil {
		writeFailure(w, http.StatusNotFound, err.Error())
		return
	}

	msgs := make([]messageJSON, len(conv.messages))
	for i, m := range conv.messages {
		msgs[i] = messageJSON{Sender: string(m.sender), Content: m.content, CreatedAt: m.createdAt}
	}
	writeSuccess(w, map[string]any{"messages": msgs, "title": conv.title})
}

type sendMessageRequest struct {
	ConversationID json.RawMessage `json:"conversation_id"`
	Message        string          `json:"message"`
}

// parseConversationID accepts the id as a JSON number or a numeric string.
func parseConversationID(raw json.RawMessage) (int64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id != 0
}

// handleSendMessage handles POST /send-message: the user message is stored,
// the reply generated and stored, and the reply returned.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing data")
		return
	}
	id, ok := parseConversationID(req.ConversationID)
	if !ok || req.Message == "" {
		writeFailure(w, http.StatusBadRequest, "Missing data")
		return
	}

	userID := currentUser(r)
	if err := s.state.appendUserMessage(userID, id, req.Message); err != nil {
		writeFailure(w, http.StatusNotFound, err.Error())
		return
	}

	reply, err := s.replier.Reply(r.Context(), req.Message)
	if err != nil {
		logger().WithError(err).Warn("reply failed")
		writeFailure(w, http.StatusInternalServerError, "AI Error: "+err.Error())
		return
	}
	s.state.appendBotMessage(id, reply)
	writeSuccess(w, map[string]any{"response": reply})
}

// handleLegacyGet handles POST /get: a stateless reply to the form field
// msg, returned as plain text.
func (s *Server) handleLegacyGet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	reply, err := s.replier.Reply(r.Context(), r.PostForm.Get("msg"))
	if err != nil {
		logger().WithError(err).Warn("legacy reply failed")
		http.Error(w, "reply failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(reply))
}
