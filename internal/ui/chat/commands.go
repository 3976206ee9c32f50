// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/talentdesk/internal/conversation"
	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/storage"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// DefaultTimeout bounds every store call made from the view.
const DefaultTimeout = 60 * time.Second

func fetchStartCmd(store storage.Store, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return openedMsg{conversation.FetchStart(ctx, store)}
	}
}

func fetchNewCmd(store storage.Store, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return openedMsg{conversation.FetchNew(ctx, store)}
	}
}

func fetchSelectCmd(store storage.Store, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return openedMsg{conversation.FetchSelect(ctx, store, id)}
	}
}

func fetchListCmd(store storage.Store, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return openedMsg{conversation.FetchList(ctx, store)}
	}
}

func exchangeCmd(store storage.Store, p conversation.Pending, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return sendResultMsg{conversation.Exchange(ctx, store, p)}
	}
}

// exportCmd loads the conversation from the store and writes it in the
// configured format.
func exportCmd(store storage.Store, id, format string, opts *export.Options, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		conv, err := store.Load(ctx, id)
		if err != nil {
			return exportedMsg{err: err}
		}
		path, err := export.Export(conv, format, opts)
		return exportedMsg{path: path, err: err}
	}
}

// copyCmd writes text to the system clipboard.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{chars: len([]rune(text)), err: write(text)}
	}
}

// =============================================================================
// STORE WATCHING
// =============================================================================

// watcher is implemented by stores that can report foreign writes.
type watcher interface {
	Watch(ctx context.Context, onChange func()) (bool, error)
}

// watchCmd starts watching the store. Change notifications are coalesced
// into changes, which has a buffer of one.
func watchCmd(ctx context.Context, w watcher, changes chan<- struct{}) tea.Cmd {
	return func() tea.Msg {
		ok, err := w.Watch(ctx, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		return watchStartedMsg{ok: ok, err: err}
	}
}

// waitForChangeCmd blocks until the next change notification.
func waitForChangeCmd(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return storeChangedMsg{}
		}
	}
}

// clipboardWrite is the default clipboard writer.
func clipboardWrite(text string) error {
	return clipboard.WriteAll(text)
}
