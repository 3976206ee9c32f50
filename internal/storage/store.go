// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Mode names a Store implementation.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// ParseMode parses a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLocal:
		return ModeLocal, nil
	case ModeRemote:
		return ModeRemote, nil
	default:
		return "", fmt.Errorf("unknown chat mode %q (want local or remote)", s)
	}
}

// Store is the conversation contract the chat view drives.
type Store interface {
	// List returns conversation summaries, newest first.
	List(ctx context.Context) ([]model.ConversationSummary, error)

	// Create starts an empty conversation and returns its id.
	Create(ctx context.Context) (string, error)

	// Load returns a conversation with its title and messages.
	Load(ctx context.Context, id string) (*model.Conversation, error)

	// Append records a message without asking for a reply.
	Append(ctx context.Context, id string, sender model.Sender, content string) error

	// Send records the user's text and returns the bot reply.
	Send(ctx context.Context, id, text string) (string, error)

	// Mode reports which implementation this is.
	Mode() Mode
}

// Replier produces a bot reply for a user message.
type Replier interface {
	Reply(ctx context.Context, text string) (string, error)
}

// ReplierFunc adapts a function to the Replier interface.
type ReplierFunc func(ctx context.Context, text string) (string, error)

// Reply calls f.
func (f ReplierFunc) Reply(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// =============================================================================
// ERRORS
// =============================================================================

// ConversationError represents a conversation-related error.
// It implements the error interface and can be compared using errors.Is.
type ConversationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing conversation errors.
func (e *ConversationError) Is(target error) bool {
	t, ok := target.(*ConversationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

var (
	// ErrConversationNotFound is returned for an unknown id.
	// Use errors.Is(err, ErrConversationNotFound) to check for this error.
	ErrConversationNotFound = &ConversationError{Message: "conversation not found"}

	// ErrServerManaged is returned when a client tries to append a bot
	// message to a remote conversation.
	ErrServerManaged = &ConversationError{Message: "bot messages are managed by the server"}

	// ErrInvalidSender is returned for a sender other than user or bot.
	ErrInvalidSender = &ConversationError{Message: "invalid message sender"}

	// ErrNoReplier is returned by Send on a local store without a Replier.
	ErrNoReplier = errors.New("no reply source configured")
)
