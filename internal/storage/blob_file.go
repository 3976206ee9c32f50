// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/util"
)

// =============================================================================
// FILE BLOB
// =============================================================================

// DefaultDebounce coalesces bursts of file events into one notification.
const DefaultDebounce = 150 * time.Millisecond

// FileBlob stores each key as <dir>/<key>.json.
type FileBlob struct {
	dir      string
	debounce time.Duration
}

// OpenFileBlob returns a file blob rooted at dir, creating it if needed.
func OpenFileBlob(dir string) (*FileBlob, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileBlob{dir: dir, debounce: DefaultDebounce}, nil
}

// path returns the file for key. Keys may not name other directories.
func (f *FileBlob) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Get implements Blob.
func (f *FileBlob) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put implements Blob.
func (f *FileBlob) Put(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	// RELIABILITY: Atomic write with fsync prevents a torn history on crash
	if err := util.AtomicWriteFile(p, value, 0600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Close implements Blob.
func (f *FileBlob) Close() error {
	return nil
}

// Watch implements Watcher. The directory is watched rather than the file
// because atomic writes replace the file on every Put.
func (f *FileBlob) Watch(ctx context.Context, key string, onChange func()) error {
	target, err := f.path(key)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(f.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", f.dir, err)
	}

	go f.processEvents(ctx, watcher, target, onChange)
	return nil
}

// processEvents forwards debounced changes of target until ctx is done.
func (f *FileBlob) processEvents(ctx context.Context, watcher *fsnotify.Watcher, target string, onChange func()) {
	defer watcher.Close()

	log := logging.For("storage")
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(target) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(f.debounce)
			} else {
				timer.Reset(f.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("file watcher error")
		}
	}
}
