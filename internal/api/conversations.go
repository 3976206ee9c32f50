// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// CONVERSATION ENDPOINTS
// =============================================================================

type conversationItem struct {
	ID        flexID     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt serverTime `json:"created_at"`
}

type listConversationsResponse struct {
	Conversations []conversationItem `json:"conversations"`
}

type newConversationResponse struct {
	ConversationID flexID `json:"conversation_id"`
}

type loadedMessage struct {
	Sender    model.Sender `json:"sender"`
	Content   string       `json:"content"`
	CreatedAt serverTime   `json:"created_at"`
}

type loadConversationResponse struct {
	Title    string          `json:"title"`
	Messages []loadedMessage `json:"messages"`
}

type sendMessageRequest struct {
	ConversationID any    `json:"conversation_id"`
	Message        string `json:"message"`
}

type sendMessageResponse struct {
	Response string `json:"response"`
}

// ListConversations returns the user's conversations, newest first.
func (c *Client) ListConversations(ctx context.Context) ([]model.ConversationSummary, error) {
	var resp listConversationsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/get-conversations", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]model.ConversationSummary, len(resp.Conversations))
	for i, item := range resp.Conversations {
		out[i] = model.ConversationSummary{
			ID:        string(item.ID),
			Title:     item.Title,
			CreatedAt: item.CreatedAt.Time,
		}
	}
	return out, nil
}

// NewConversation creates a conversation and returns its id.
func (c *Client) NewConversation(ctx context.Context) (string, error) {
	var resp newConversationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/new-conversation", nil, &resp); err != nil {
		return "", err
	}
	return string(resp.ConversationID), nil
}

// LoadConversation returns the title and messages of a conversation.
func (c *Client) LoadConversation(ctx context.Context, id string) (*model.Conversation, error) {
	var resp loadConversationResponse
	if err := c.doJSON(ctx, http.MethodGet, "/load-conversation/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}

	conv := &model.Conversation{
		ID:       id,
		Title:    resp.Title,
		Messages: make([]model.Message, len(resp.Messages)),
	}
	for i, m := range resp.Messages {
		conv.Messages[i] = model.Message{Sender: m.Sender, Content: m.Content}
		if !m.CreatedAt.IsZero() {
			ts := m.CreatedAt.Time
			conv.Messages[i].CreatedAt = &ts
		}
	}
	if len(conv.Messages) > 0 && conv.Messages[0].CreatedAt != nil {
		conv.CreatedAt = *conv.Messages[0].CreatedAt
	}
	return conv, nil
}

// SendMessage stores the user's message and returns the bot reply. The
// server stores the reply as well.
func (c *Client) SendMessage(ctx context.Context, id, text string) (string, error) {
	req := sendMessageRequest{ConversationID: idValue(id), Message: text}
	var resp sendMessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/send-message", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// LegacyReply asks the stateless endpoint for a reply to msg. The answer is
// plain text, not an envelope.
func (c *Client) LegacyReply(ctx context.Context, msg string) (string, error) {
	form := url.Values{"msg": {msg}}
	status, data, err := c.do(ctx, http.MethodPost, "/get",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", &APIError{Status: status, Message: strings.TrimSpace(string(data))}
	}
	return string(data), nil
}
