// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenUploading:
		body = m.viewUploading()
	case screenResults, screenHistory:
		body = m.viewport.View()
	default:
		body = m.viewSelect()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatusBar())
}

func (m Model) renderHeader() string {
	titles := map[screen]string{
		screenSelect:    "Upload resumes",
		screenUploading: "Analyzing",
		screenResults:   "Results",
		screenHistory:   "Previous analyses",
	}
	return m.theme.Header.Width(m.width).Render("talentdesk " + m.theme.HeaderTitle.Render(titles[m.screen]))
}

func (m Model) viewSelect() string {
	var sb strings.Builder
	sb.WriteString(m.paths.View())
	sb.WriteString("\n\n")

	files := m.ctrl.Selection().Files()
	if len(files) == 0 {
		sb.WriteString(m.theme.Muted.Render("No files selected. Accepted: PDF, DOCX, DOC."))
	}
	for i, f := range files {
		line := fmt.Sprintf("%d. %s  %s", i+1, f.Name, m.theme.Muted.Render(f.ContentType))
		if i == m.cursor {
			line = m.theme.SidebarActive.Render(line)
		} else {
			line = m.theme.SidebarItem.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + m.theme.Sender.Render("Job description") + "\n")
	sb.WriteString(m.job.View())
	return sb.String()
}

func (m Model) viewUploading() string {
	value := 0
	fraction := 0.0
	if m.progress != nil {
		value = m.progress.Value()
		fraction = m.progress.Fraction()
	}
	n := m.ctrl.Selection().Len()
	return fmt.Sprintf("\n  Analyzing %d resume(s)...\n\n  %s\n\n  %d%%\n", n, m.bar.ViewAs(fraction), value)
}

func (m Model) renderStatusBar() string {
	text := m.help.ShortHelpView(m.screenHelp())
	if m.status != "" {
		if m.failed {
			text = styles.RenderError(m.status)
		} else {
			text = styles.RenderInfo(m.status)
		}
	}
	return m.theme.StatusBar.Width(m.width).Render(text)
}

// screenHelp returns the bindings active on the current screen.
func (m Model) screenHelp() []key.Binding {
	var out []key.Binding
	for _, h := range m.keys.handlers() {
		if h.activeOn(m.screen) {
			out = append(out, h.binding)
		}
	}
	return out
}
