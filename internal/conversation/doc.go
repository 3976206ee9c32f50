// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds the chat view state and the transitions that
// drive it against a storage.Store.
//
// The controller never blocks the UI: every network step is a separate
// function that returns a result, and a matching Apply/Complete method
// folds the result into State. Bubble Tea runs the network steps inside
// commands and calls the Apply methods from Update.
//
// # Sending
//
//	pending, ok := ctl.BeginSend(input) // sync: user entry + typing placeholder
//	result := conversation.Exchange(ctx, store, pending) // network only
//	refresh := ctl.CompleteSend(result) // sync: reply or error entry
//
// Empty input, or no active conversation, makes BeginSend return false with
// no state change. Overlapping sends are independent.
package conversation
