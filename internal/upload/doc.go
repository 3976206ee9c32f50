// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload manages the resume selection, the ranking request, the
// simulated progress indicator, CSV export, and the analysis history.
//
// Like the chat controller it is UI-agnostic: Submit, DownloadCSV and
// History do the network work and the caller applies the outcome.
package upload
