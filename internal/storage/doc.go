// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the conversation store behind the chat view.
//
// Two implementations satisfy Store:
//
//   - LocalStore keeps every conversation in one serialized list under the
//     "chatHistory" key of a Blob. Replies come from a Replier.
//   - RemoteStore performs one HTTP exchange per operation and keeps no
//     cache.
//
// # Blob Backends
//
//   - SQLiteBlob: a key/value table in a SQLite database
//   - FileBlob: one JSON file per key, written atomically and watchable
//   - MemoryBlob: process memory, for tests and throwaway sessions
//
// # Usage
//
//	blob, err := storage.OpenSQLiteBlob(path)
//	store := storage.NewLocalStore(blob, storage.ReplierFunc(client.LegacyReply))
//	id, err := store.Create(ctx)
//	reply, err := store.Send(ctx, id, "Hello!")
//
// # Consistency
//
// Every LocalStore mutation re-reads and rewrites the whole list. Two
// processes sharing a blob are not coordinated: the last write wins.
package storage
