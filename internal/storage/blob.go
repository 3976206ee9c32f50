// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"sync"
)

// =============================================================================
// BLOB INTERFACE
// =============================================================================

// ErrKeyNotFound is returned by Blob.Get for a key that was never written.
var ErrKeyNotFound = errors.New("key not found")

// Blob is a persistent key/value store of opaque byte values.
type Blob interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases resources.
	Close() error
}

// Watcher is implemented by blobs that can report writes made by other
// processes.
type Watcher interface {
	// Watch calls onChange after key changes on disk, until ctx is done.
	Watch(ctx context.Context, key string, onChange func()) error
}

// =============================================================================
// MEMORY BLOB
// =============================================================================

// MemoryBlob keeps values in process memory.
type MemoryBlob struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBlob returns an empty in-memory blob.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{values: make(map[string][]byte)}
}

// Get implements Blob.
func (m *MemoryBlob) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put implements Blob.
func (m *MemoryBlob) Put(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.values[key] = v
	m.mu.Unlock()
	return nil
}

// Close implements Blob.
func (m *MemoryBlob) Close() error {
	return nil
}
