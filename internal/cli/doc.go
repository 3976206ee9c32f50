// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the command handlers for
// talentdesk.
//
// # Commands
//
//   - tui: full-screen chat or resume upload (default)
//   - chat: line-oriented chat with input history
//   - conversations: list and export conversations
//   - rank, history: rank resumes and show previous analyses
//   - login, register, logout: manage the server session
//   - devserver: run the development server
//   - config: view and modify configuration
//
// Handlers return errors; main maps them to exit codes with ExitCodeFor.
package cli
