// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversations and resume rankings to files.
//
// # Key Types
//
//   - Exporter: conversation export interface (Markdown, JSON, HTML)
//   - Report: a ranking run rendered as a standalone HTML page
//   - Options: export configuration options
//
// # Usage
//
// Export a conversation:
//
//	path, err := export.Export(conv, "md", export.DefaultOptions())
//
// Write a ranking report:
//
//	report := export.Report{JobDescription: jd, Response: resp}
//	err := export.WriteReport("ranking.html", report, nil)
package export
