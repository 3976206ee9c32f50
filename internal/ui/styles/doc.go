// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the talentdesk TUI.

All colors use Lip Gloss AdaptiveColor. NewTheme fixes the background
choice from the configured theme ("dark", "light" or "auto") so adaptive
colors resolve the same way in every view.

Score bands (green, amber, orange, red) come from the model package; use
BandColor or ScoreStyle so the terminal matches the HTML report.

# Usage

	theme := styles.NewTheme(cfg.UI.Theme)
	theme.SetSize(msg.Width, msg.Height)
	fmt.Println(styles.ScoreStyle(85).Render("85"))
*/
package styles
