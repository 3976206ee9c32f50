// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// LOCAL STORE
// =============================================================================

// HistoryKey is the blob key holding the serialized conversation list.
const HistoryKey = "chatHistory"

// LocalStore keeps all conversations as one list in a Blob. The list is
// ordered newest first; new conversations are prepended.
type LocalStore struct {
	blob    Blob
	replier Replier
	now     func() time.Time

	// mu serializes read-modify-write cycles within this process only.
	mu sync.Mutex
}

// NewLocalStore returns a store over blob. replier may be nil, in which case
// Send fails with ErrNoReplier.
func NewLocalStore(blob Blob, replier Replier) *LocalStore {
	return &LocalStore{blob: blob, replier: replier, now: time.Now}
}

// Mode implements Store.
func (s *LocalStore) Mode() Mode {
	return ModeLocal
}

// Blob returns the underlying blob.
func (s *LocalStore) Blob() Blob {
	return s.blob
}

// load reads the full list. A missing key is an empty list.
func (s *LocalStore) load(ctx context.Context) ([]*model.Conversation, error) {
	data, err := s.blob.Get(ctx, HistoryKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var convs []*model.Conversation
	if err := json.Unmarshal(data, &convs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", HistoryKey, err)
	}
	return convs, nil
}

// save serializes the full list back.
func (s *LocalStore) save(ctx context.Context, convs []*model.Conversation) error {
	if convs == nil {
		convs = []*model.Conversation{}
	}
	data, err := json.Marshal(convs)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", HistoryKey, err)
	}
	return s.blob.Put(ctx, HistoryKey, data)
}

// find returns the conversation with id, or nil.
func find(convs []*model.Conversation, id string) *model.Conversation {
	for _, c := range convs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// List implements Store.
func (s *LocalStore) List(ctx context.Context) ([]model.ConversationSummary, error) {
	convs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.ConversationSummary, len(convs))
	for i, c := range convs {
		out[i] = c.Summary()
	}
	return out, nil
}

// Create implements Store. The id is the creation time in unix
// milliseconds, bumped forward if that id is already taken.
func (s *LocalStore) Create(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	convs, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	conv := model.NewConversation(now)
	for find(convs, conv.ID) != nil {
		ms, _ := strconv.ParseInt(conv.ID, 10, 64)
		conv.ID = strconv.FormatInt(ms+1, 10)
	}

	convs = append([]*model.Conversation{conv}, convs...)
	if err := s.save(ctx, convs); err != nil {
		return "", err
	}
	logging.For("storage").WithField("id", conv.ID).Debug("created local conversation")
	return conv.ID, nil
}

// Load implements Store.
func (s *LocalStore) Load(ctx context.Context, id string) (*model.Conversation, error) {
	convs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	conv := find(convs, id)
	if conv == nil {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	return conv, nil
}

// Append implements Store. The first message of a conversation sets its
// title.
func (s *LocalStore) Append(ctx context.Context, id string, sender model.Sender, content string) error {
	if !sender.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSender, sender)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	convs, err := s.load(ctx)
	if err != nil {
		return err
	}
	conv := find(convs, id)
	if conv == nil {
		return fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	conv.Append(sender, content)
	return s.save(ctx, convs)
}

// Send implements Store. The user message is stored before the reply is
// requested; the reply is stored only when it arrives.
func (s *LocalStore) Send(ctx context.Context, id, text string) (string, error) {
	if err := s.Append(ctx, id, model.SenderUser, text); err != nil {
		return "", err
	}
	if s.replier == nil {
		return "", ErrNoReplier
	}

	reply, err := s.replier.Reply(ctx, text)
	if err != nil {
		return "", err
	}

	if err := s.Append(ctx, id, model.SenderBot, reply); err != nil {
		return reply, fmt.Errorf("store reply: %w", err)
	}
	return reply, nil
}

// Watch reports changes made to the history by other processes, when the
// blob supports it. It returns false when watching is unavailable.
func (s *LocalStore) Watch(ctx context.Context, onChange func()) (bool, error) {
	w, ok := s.blob.(Watcher)
	if !ok {
		return false, nil
	}
	if err := w.Watch(ctx, HistoryKey, onChange); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the blob.
func (s *LocalStore) Close() error {
	return s.blob.Close()
}
