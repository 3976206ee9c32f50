// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components renders bot replies for the terminal.
//
// MarkdownRenderer wraps a glamour renderer sized to the message column.
// When markdown rendering is off, or glamour fails, replies fall back to
// plain text with fenced code blocks highlighted by chroma.
package components
