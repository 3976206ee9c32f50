// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across talentdesk.
//
// # Key Functions
//
// Text:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - StringWidth, PadRight, TruncateWidth: terminal display width helpers
//
// Files:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - SaveDownload: writes a server-provided file into a directory
//
// # Usage
//
//	title := util.TruncateRunes(text, 30)
//	path, err := util.SaveDownload(dir, "report.csv", data)
package util
