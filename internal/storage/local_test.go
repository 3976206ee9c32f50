// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/talentdesk/internal/model"
)

// echoReplier answers every message with "echo: <text>".
func echoReplier(calls *atomic.Int32) Replier {
	return ReplierFunc(func(_ context.Context, text string) (string, error) {
		if calls != nil {
			calls.Add(1)
		}
		return "echo: " + text, nil
	})
}

// fixedClock returns a clock that advances by one second per call.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(time.Second)
		return now
	}
}

// blobFactories lets every local store test run against each backend.
func blobFactories(t *testing.T) map[string]func() Blob {
	return map[string]func() Blob{
		"memory": func() Blob { return NewMemoryBlob() },
		"sqlite": func() Blob {
			b, err := OpenSQLiteBlob(filepath.Join(t.TempDir(), "history.db"))
			require.NoError(t, err)
			t.Cleanup(func() { b.Close() })
			return b
		},
		"file": func() Blob {
			b, err := OpenFileBlob(t.TempDir())
			require.NoError(t, err)
			return b
		},
	}
}

// =============================================================================
// LOCAL STORE TESTS
// =============================================================================

func TestLocalStore_CreatePrependsNewest(t *testing.T) {
	for name, newBlob := range blobFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewLocalStore(newBlob(), nil)
			store.now = fixedClock(time.UnixMilli(1_700_000_000_000))

			first, err := store.Create(ctx)
			require.NoError(t, err)
			second, err := store.Create(ctx)
			require.NoError(t, err)

			assert.Equal(t, "1700000000000", first)
			list, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, second, list[0].ID, "newest conversation first")
			assert.Equal(t, first, list[1].ID)
			assert.Equal(t, model.DefaultTitle, list[0].Title)
		})
	}
}

func TestLocalStore_CreateSameMillisecond(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(NewMemoryBlob(), nil)
	at := time.UnixMilli(1_700_000_000_000)
	store.now = func() time.Time { return at }

	a, err := store.Create(ctx)
	require.NoError(t, err)
	b, err := store.Create(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestLocalStore_SendStoresExchange(t *testing.T) {
	for name, newBlob := range blobFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var calls atomic.Int32
			store := NewLocalStore(newBlob(), echoReplier(&calls))

			id, err := store.Create(ctx)
			require.NoError(t, err)

			reply, err := store.Send(ctx, id, "hello")
			require.NoError(t, err)
			assert.Equal(t, "echo: hello", reply)
			assert.EqualValues(t, 1, calls.Load())

			conv, err := store.Load(ctx, id)
			require.NoError(t, err)
			require.Len(t, conv.Messages, 2)
			assert.Equal(t, model.Message{Sender: model.SenderUser, Content: "hello"}, conv.Messages[0])
			assert.Equal(t, model.Message{Sender: model.SenderBot, Content: "echo: hello"}, conv.Messages[1])
			assert.Equal(t, "hello", conv.Title)
		})
	}
}

func TestLocalStore_SendFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend down")
	store := NewLocalStore(NewMemoryBlob(), ReplierFunc(func(context.Context, string) (string, error) {
		return "", boom
	}))

	id, err := store.Create(ctx)
	require.NoError(t, err)

	_, err = store.Send(ctx, id, "hello")
	require.ErrorIs(t, err, boom)

	conv, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)
	assert.True(t, conv.Messages[0].IsUser())
}

func TestLocalStore_SendWithoutReplier(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(NewMemoryBlob(), nil)
	id, _ := store.Create(ctx)

	_, err := store.Send(ctx, id, "hi")
	assert.ErrorIs(t, err, ErrNoReplier)
}

func TestLocalStore_TitleFromFirstUserMessageOnly(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(NewMemoryBlob(), nil)
	id, _ := store.Create(ctx)

	long := strings.Repeat("x", 40)
	require.NoError(t, store.Append(ctx, id, model.SenderUser, long))
	require.NoError(t, store.Append(ctx, id, model.SenderUser, "second"))

	conv, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 30)+"...", conv.Title)
}

func TestLocalStore_BotMessageDoesNotSetTitle(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(NewMemoryBlob(), nil)
	id, _ := store.Create(ctx)

	require.NoError(t, store.Append(ctx, id, model.SenderBot, "Hello! How can I help you today?"))
	conv, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTitle, conv.Title)

	require.NoError(t, store.Append(ctx, id, model.SenderUser, "rank my resumes"))
	require.NoError(t, store.Append(ctx, id, model.SenderUser, "and sort them"))

	conv, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "rank my resumes", conv.Title)
	require.Len(t, conv.Messages, 3)
}

func TestLocalStore_UnknownConversation(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(NewMemoryBlob(), echoReplier(nil))

	_, err := store.Load(ctx, "nope")
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.ErrorIs(t, store.Append(ctx, "nope", model.SenderUser, "x"), ErrConversationNotFound)
	_, err = store.Send(ctx, "nope", "x")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestLocalStore_InvalidSender(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(NewMemoryBlob(), nil)
	id, _ := store.Create(ctx)

	assert.ErrorIs(t, store.Append(ctx, id, model.Sender("system"), "x"), ErrInvalidSender)
}

func TestLocalStore_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlob()
	store := NewLocalStore(blob, nil)
	id, _ := store.Create(ctx)
	require.NoError(t, store.Append(ctx, id, model.SenderUser, "hi"))

	data, err := blob.Get(ctx, HistoryKey)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, id, raw[0]["id"])
	assert.Equal(t, "hi", raw[0]["title"])
	assert.Contains(t, raw[0], "createdAt")
	msgs := raw[0]["messages"].([]any)
	assert.Equal(t, map[string]any{"sender": "user", "content": "hi"}, msgs[0])
}

func TestLocalStore_ReadsForeignWrites(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlob()
	a := NewLocalStore(blob, nil)
	b := NewLocalStore(blob, nil)

	id, err := a.Create(ctx)
	require.NoError(t, err)

	list, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestLocalStore_CorruptHistory(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlob()
	require.NoError(t, blob.Put(ctx, HistoryKey, []byte("{not json")))

	_, err := NewLocalStore(blob, nil).List(ctx)
	assert.Error(t, err)
}

func TestLocalStore_EmptyBlobIsEmptyList(t *testing.T) {
	list, err := NewLocalStore(NewMemoryBlob(), nil).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

// =============================================================================
// WATCH TESTS
// =============================================================================

func TestLocalStore_WatchFileBlob(t *testing.T) {
	dir := t.TempDir()
	blob, err := OpenFileBlob(dir)
	require.NoError(t, err)
	blob.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watching := NewLocalStore(blob, nil)
	changed := make(chan struct{}, 4)
	ok, err := watching.Watch(ctx, func() { changed <- struct{}{} })
	require.NoError(t, err)
	require.True(t, ok)

	other, err := OpenFileBlob(dir)
	require.NoError(t, err)
	_, err = NewLocalStore(other, nil).Create(context.Background())
	require.NoError(t, err)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification after a foreign write")
	}
}

func TestLocalStore_WatchUnsupported(t *testing.T) {
	ok, err := NewLocalStore(NewMemoryBlob(), nil).Watch(context.Background(), func() {})
	require.NoError(t, err)
	assert.False(t, ok)
}

// =============================================================================
// BLOB TESTS
// =============================================================================

func TestBlobs_GetMissing(t *testing.T) {
	for name, newBlob := range blobFactories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := newBlob().Get(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestBlobs_PutOverwrites(t *testing.T) {
	for name, newBlob := range blobFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := newBlob()
			require.NoError(t, b.Put(ctx, "k", []byte("one")))
			require.NoError(t, b.Put(ctx, "k", []byte("two")))

			got, err := b.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "two", string(got))
		})
	}
}

func TestFileBlob_RejectsPathKeys(t *testing.T) {
	b, err := OpenFileBlob(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, b.Put(context.Background(), key, []byte("x")), "key %q", key)
	}
}

func TestSQLiteBlob_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	b, err := OpenSQLiteBlob(path)
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, HistoryKey, []byte("[]")))
	require.NoError(t, b.Close())

	b, err = OpenSQLiteBlob(path)
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Get(ctx, HistoryKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Remote ")
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, m)

	_, err = ParseMode("cloud")
	assert.Error(t, err)
}
