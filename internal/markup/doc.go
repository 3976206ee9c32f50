// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup renders chat and resume content as HTML fragments.
//
// It provides the exact HTML escaping used for every untrusted string, a
// small markdown subset for resume analyses, and the fragments that the
// report exporter assembles into a page.
//
// # Markdown Subset
//
// FormatMarkdownLite applies, in order: **bold**, ### / ## / # headings
// (# and ## both become <h3>), "- " list items, a single <ul> wrapper from
// the first <li> to the last </li>, and newline to <br>.
//
// # Usage
//
//	safe := markup.FormatAnalysis(result.Analysis)
//	card := markup.ResultCard(0, result)
package markup
