// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/talentdesk/internal/model"
)

// fakeAPI records calls and answers from canned data.
type fakeAPI struct {
	sent  []string
	calls int
}

func (f *fakeAPI) ListConversations(context.Context) ([]model.ConversationSummary, error) {
	f.calls++
	return []model.ConversationSummary{{ID: "2", Title: "b"}, {ID: "1", Title: "a"}}, nil
}

func (f *fakeAPI) NewConversation(context.Context) (string, error) {
	f.calls++
	return "3", nil
}

func (f *fakeAPI) LoadConversation(_ context.Context, id string) (*model.Conversation, error) {
	f.calls++
	return &model.Conversation{ID: id, Title: "t"}, nil
}

func (f *fakeAPI) SendMessage(_ context.Context, id, text string) (string, error) {
	f.calls++
	f.sent = append(f.sent, id+":"+text)
	return "reply to " + text, nil
}

func TestRemoteStore_OneExchangePerOperation(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	store := NewRemoteStore(api)

	_, err := store.List(ctx)
	require.NoError(t, err)
	_, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, api.calls, "no caching between calls")

	id, err := store.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", id)

	reply, err := store.Send(ctx, id, "hello")
	require.NoError(t, err)
	assert.Equal(t, "reply to hello", reply)
	assert.Equal(t, ModeRemote, store.Mode())
}

func TestRemoteStore_AppendUserSends(t *testing.T) {
	api := &fakeAPI{}
	store := NewRemoteStore(api)

	require.NoError(t, store.Append(context.Background(), "7", model.SenderUser, "hi"))
	assert.Equal(t, []string{"7:hi"}, api.sent)
}

func TestRemoteStore_AppendBotRejected(t *testing.T) {
	api := &fakeAPI{}
	store := NewRemoteStore(api)

	err := store.Append(context.Background(), "7", model.SenderBot, "hi")
	assert.ErrorIs(t, err, ErrServerManaged)
	assert.Zero(t, api.calls, "no request for a rejected append")
}
