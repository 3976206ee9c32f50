// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the chat and resume
// components.
//
// # Key Types
//
//   - Conversation: a chat session with its title and ordered messages
//   - Message: a single user or bot message
//   - ConversationSummary: the lightweight record shown in the sidebar
//   - ResumeResult / ResumeError: one scored resume or one failed upload
//   - HistoryEntry: a previously analyzed resume
//
// # Usage
//
//	conv := model.NewConversation(time.Now())
//	conv.Append(model.SenderUser, "Hello!")
//	fmt.Println(conv.Title) // "Hello!"
package model
