// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/storage"
)

func newLocal(t *testing.T, reply func(string) (string, error)) *storage.LocalStore {
	t.Helper()
	return storage.NewLocalStore(storage.NewMemoryBlob(), storage.ReplierFunc(
		func(_ context.Context, text string) (string, error) { return reply(text) },
	))
}

func echo(text string) (string, error) { return "echo: " + text, nil }

// remoteStub is a remote-mode store whose Send fails with a canned error.
type remoteStub struct {
	storage.Store
	sendErr error
}

func (r *remoteStub) Mode() storage.Mode { return storage.ModeRemote }

func (r *remoteStub) Send(context.Context, string, string) (string, error) {
	return "", r.sendErr
}

func messages(s *State) []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if e.Kind == EntryMessage {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// OPENING
// =============================================================================

func TestStart_CreatesFirstConversation(t *testing.T) {
	ctl := NewController(newLocal(t, echo))
	require.NoError(t, ctl.Start(context.Background()))

	s := ctl.State()
	require.NotEmpty(t, s.ActiveID)
	assert.Equal(t, model.DefaultTitle, s.Title)
	assert.True(t, s.HasWelcome())
	require.Len(t, s.Items(), 1)
	assert.True(t, s.Items()[0].Active)
}

func TestStart_OpensMostRecent(t *testing.T) {
	ctx := context.Background()
	store := newLocal(t, echo)
	_, err := store.Create(ctx)
	require.NoError(t, err)
	newest, err := store.Create(ctx)
	require.NoError(t, err)

	ctl := NewController(store)
	require.NoError(t, ctl.Start(ctx))
	assert.Equal(t, newest, ctl.State().ActiveID)
	assert.Len(t, ctl.State().Summaries, 2)
}

func TestItems_ExactlyOneActive(t *testing.T) {
	ctx := context.Background()
	ctl := NewController(newLocal(t, echo))
	require.NoError(t, ctl.Start(ctx))
	first := ctl.State().ActiveID
	require.NoError(t, ctl.New(ctx))
	require.NoError(t, ctl.Select(ctx, first))

	active := 0
	for _, it := range ctl.State().Items() {
		if it.Active {
			active++
			assert.Equal(t, first, it.ID)
		}
	}
	assert.Equal(t, 1, active)
}

func TestSelect_UnknownKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	ctl := NewController(newLocal(t, echo))
	require.NoError(t, ctl.Start(ctx))
	before := ctl.State().ActiveID

	err := ctl.Select(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrConversationNotFound)
	assert.Equal(t, before, ctl.State().ActiveID)
	assert.Equal(t, "Conversation not found.", ctl.State().Notice)
}

// =============================================================================
// SENDING
// =============================================================================

func TestBeginSend_RejectsBlankInput(t *testing.T) {
	ctl := NewController(newLocal(t, echo))
	require.NoError(t, ctl.Start(context.Background()))
	before := len(ctl.State().Entries)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, ok := ctl.BeginSend(in)
		assert.False(t, ok, "input %q", in)
	}
	assert.Len(t, ctl.State().Entries, before)
}

func TestBeginSend_RequiresActiveConversation(t *testing.T) {
	ctl := NewController(newLocal(t, echo))
	_, ok := ctl.BeginSend("hello")
	assert.False(t, ok)
	assert.Empty(t, ctl.State().Entries)
}

func TestSend_Success(t *testing.T) {
	ctx := context.Background()
	ctl := NewController(newLocal(t, echo))
	require.NoError(t, ctl.Start(ctx))

	p, ok := ctl.BeginSend("  hello  ")
	require.True(t, ok)
	assert.Equal(t, "hello", p.Text)
	assert.True(t, strings.HasPrefix(p.TypingID, TypingIDPrefix))
	assert.False(t, ctl.State().HasWelcome())
	assert.Equal(t, 1, ctl.State().Pending())

	refresh := ctl.CompleteSend(Exchange(ctx, ctl.Store(), p))
	assert.True(t, refresh)
	assert.Equal(t, 0, ctl.State().Pending())

	msgs := messages(ctl.State())
	require.Len(t, msgs, 2)
	assert.Equal(t, model.SenderUser, msgs[0].Sender)
	assert.Equal(t, "echo: hello", msgs[1].Content)

	reply, ok := ctl.State().LastReply()
	require.True(t, ok)
	assert.Equal(t, "echo: hello", reply)
}

func TestSend_RefreshesTitle(t *testing.T) {
	ctx := context.Background()
	ctl := NewController(newLocal(t, echo))
	require.NoError(t, ctl.Start(ctx))

	sent, err := ctl.Send(ctx, "What does a good resume look like?")
	require.NoError(t, err)
	require.True(t, sent)
	assert.Equal(t, "What does a good resume look l...", ctl.State().Summaries[0].Title)
}

func TestSend_LocalFailureText(t *testing.T) {
	ctx := context.Background()
	ctl := NewController(newLocal(t, func(string) (string, error) {
		return "", errors.New("boom")
	}))
	require.NoError(t, ctl.Start(ctx))

	_, err := ctl.Send(ctx, "hi")
	require.Error(t, err)

	msgs := messages(ctl.State())
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Failed)
	assert.Equal(t, LocalFailureText, msgs[1].Content)
	assert.Equal(t, 0, ctl.State().Pending())
	_, ok := ctl.State().LastReply()
	assert.False(t, ok)
}

func TestCompleteSend_RemoteFailureTexts(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server", &api.APIError{Status: 500, Message: "model offline"}, "Sorry, something went wrong: model offline"},
		{"transport", &api.TransportError{Op: "send", Err: errors.New("refused")}, NetworkFailureText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &remoteStub{sendErr: tt.err}
			ctl := NewController(stub)
			ctl.State().ActiveID = "7"

			p, ok := ctl.BeginSend("hi")
			require.True(t, ok)
			assert.False(t, ctl.CompleteSend(Exchange(context.Background(), stub, p)))

			msgs := messages(ctl.State())
			require.Len(t, msgs, 2)
			assert.Equal(t, tt.want, msgs[1].Content)
		})
	}
}

func TestCompleteSend_DropsReplyForInactiveConversation(t *testing.T) {
	ctx := context.Background()
	ctl := NewController(newLocal(t, echo))
	require.NoError(t, ctl.Start(ctx))
	first := ctl.State().ActiveID

	p, ok := ctl.BeginSend("hello")
	require.True(t, ok)
	require.NoError(t, ctl.New(ctx))

	ctl.CompleteSend(Exchange(ctx, ctl.Store(), p))
	assert.True(t, ctl.State().HasWelcome(), "new conversation untouched")
	assert.Empty(t, messages(ctl.State()))

	require.NoError(t, ctl.Select(ctx, first))
	assert.Len(t, messages(ctl.State()), 2, "reply persisted in its own conversation")
}

func TestOverlappingSends_CompleteIndependently(t *testing.T) {
	ctx := context.Background()
	ctl := NewController(newLocal(t, echo))
	ctl.now = func() time.Time { return time.UnixMilli(42) }
	require.NoError(t, ctl.Start(ctx))

	a, ok := ctl.BeginSend("one")
	require.True(t, ok)
	b, ok := ctl.BeginSend("two")
	require.True(t, ok)
	assert.NotEqual(t, a.TypingID, b.TypingID)
	assert.Equal(t, 2, ctl.State().Pending())

	ctl.CompleteSend(Exchange(ctx, ctl.Store(), b))
	assert.Equal(t, 1, ctl.State().Pending())
	ctl.CompleteSend(Exchange(ctx, ctl.Store(), a))
	assert.Equal(t, 0, ctl.State().Pending())
	assert.Len(t, messages(ctl.State()), 4)
}
