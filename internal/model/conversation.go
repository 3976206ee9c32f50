// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultTitle is the title of a conversation with no user message yet.
	DefaultTitle = "New Chat"

	// LocalTitleRunes is how much of the first message a local title keeps.
	LocalTitleRunes = 30

	// ServerTitleRunes is how much of the first message the server keeps.
	ServerTitleRunes = 50

	titleEllipsis = "..."
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// DisplayName returns a human-readable label for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message. Locally persisted messages carry only
// sender and content; server loads may also carry a timestamp.
type Message struct {
	Sender    Sender     `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a chat session. The field names and JSON tags match the
// layout persisted under the local storage key.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewConversation returns an empty conversation whose ID is the creation time
// in unix milliseconds.
func NewConversation(now time.Time) *Conversation {
	return &Conversation{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Title:     DefaultTitle,
		Messages:  make([]Message, 0),
		CreatedAt: now,
	}
}

// Append adds a message. The first user message sets the title; bot
// messages never do.
func (c *Conversation) Append(sender Sender, content string) {
	msg := Message{Sender: sender, Content: content}
	if msg.IsUser() && !c.hasUserMessage() {
		c.Title = DeriveTitle(content, LocalTitleRunes)
	}
	c.Messages = append(c.Messages, msg)
}

func (c *Conversation) hasUserMessage() bool {
	for _, m := range c.Messages {
		if m.IsUser() {
			return true
		}
	}
	return false
}

// Summary returns the sidebar record for the conversation.
func (c *Conversation) Summary() ConversationSummary {
	return ConversationSummary{ID: c.ID, Title: c.DisplayTitle(), CreatedAt: c.CreatedAt}
}

// DisplayTitle returns the title, falling back to DefaultTitle.
func (c *Conversation) DisplayTitle() string {
	if strings.TrimSpace(c.Title) == "" {
		return DefaultTitle
	}
	return c.Title
}

// IsEmpty reports whether the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}


// ConversationSummary is the lightweight record used by the sidebar.
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// TITLE DERIVATION
// =============================================================================

// DeriveTitle builds a conversation title from the first user message: the
// first maxRunes runes with "..." appended when the text is longer.
// UNICODE: text is NFC-normalized first so combining sequences are counted
// and cut as single runes where possible.
func DeriveTitle(text string, maxRunes int) string {
	text = norm.NFC.String(text)
	if maxRunes <= 0 {
		return DefaultTitle
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + titleEllipsis
}
