// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package upload provides the resume ranking view of the talentdesk TUI.

The view moves through four screens:

	screenSelect    - choose files and enter the job description
	screenUploading - simulated progress while the server ranks
	screenResults   - chart, result cards in server order, errors
	screenHistory   - previous analyses

RenderResults and RenderHistory are also used by the rank and history
commands for non-interactive output.
*/
package upload
