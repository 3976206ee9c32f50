// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"

	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// REMOTE STORE
// =============================================================================

// ConversationAPI is the part of the server client the remote store uses.
type ConversationAPI interface {
	ListConversations(ctx context.Context) ([]model.ConversationSummary, error)
	NewConversation(ctx context.Context) (string, error)
	LoadConversation(ctx context.Context, id string) (*model.Conversation, error)
	SendMessage(ctx context.Context, id, text string) (string, error)
}

// RemoteStore maps every operation onto one server exchange. It caches
// nothing; the server owns titles and bot messages.
type RemoteStore struct {
	api ConversationAPI
}

// NewRemoteStore returns a store backed by api.
func NewRemoteStore(api ConversationAPI) *RemoteStore {
	return &RemoteStore{api: api}
}

// Mode implements Store.
func (s *RemoteStore) Mode() Mode {
	return ModeRemote
}

// List implements Store.
func (s *RemoteStore) List(ctx context.Context) ([]model.ConversationSummary, error) {
	return s.api.ListConversations(ctx)
}

// Create implements Store.
func (s *RemoteStore) Create(ctx context.Context) (string, error) {
	return s.api.NewConversation(ctx)
}

// Load implements Store.
func (s *RemoteStore) Load(ctx context.Context, id string) (*model.Conversation, error) {
	return s.api.LoadConversation(ctx, id)
}

// Append implements Store. A user message is sent and the reply the server
// generates is discarded here; it can be seen by reloading. Bot messages
// cannot be appended.
func (s *RemoteStore) Append(ctx context.Context, id string, sender model.Sender, content string) error {
	switch sender {
	case model.SenderUser:
		_, err := s.api.SendMessage(ctx, id, content)
		return err
	case model.SenderBot:
		return ErrServerManaged
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSender, sender)
	}
}

// Send implements Store.
func (s *RemoteStore) Send(ctx context.Context, id, text string) (string, error) {
	return s.api.SendMessage(ctx, id, text)
}
