// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/talentdesk/internal/conversation"
	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
	"github.com/jeranaias/talentdesk/internal/util"
)

// =============================================================================
// LAYOUT
// =============================================================================

// sidebarVisible reports whether the sidebar is drawn at the current size.
func (m Model) sidebarVisible() bool {
	return m.showSidebar && m.theme.GetLayoutMode() == styles.LayoutNormal
}

// messagesWidth is the width left for the message list.
func (m Model) messagesWidth() int {
	w := m.width
	if m.sidebarVisible() {
		w -= m.theme.SidebarWidth() + 2
	}
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat view.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	body := m.viewport.View()
	if m.sidebarVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	}

	parts := []string{m.renderHeader(), body, m.theme.InputContainer.Render(m.input.View())}
	if m.showHelp {
		m.help.ShowAll = true
		parts = append(parts, m.help.View(m.keys))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	st := m.ctrl.State()
	title := st.Title
	if title == "" {
		title = model.DefaultTitle
	}
	mode := string(m.ctrl.Store().Mode())
	left := "talentdesk " + m.theme.HeaderTitle.Render(util.TruncateWidth(title, m.width/2))
	right := m.theme.Muted.Render(mode)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderSidebar lists conversation titles; exactly the active one is
// highlighted.
func (m Model) renderSidebar() string {
	width := m.theme.SidebarWidth()
	items := m.ctrl.State().Items()

	var lines []string
	if len(items) == 0 {
		lines = append(lines, m.theme.Muted.Render(markup.NoChatsText))
	}
	for _, it := range items {
		title := util.TruncateWidth(it.Title, width-2)
		if it.Active {
			lines = append(lines, m.theme.SidebarActive.Width(width).Render(title))
		} else {
			lines = append(lines, m.theme.SidebarItem.Width(width).Render(title))
		}
	}
	return m.theme.Sidebar.Height(m.viewport.Height).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	text := m.status
	if text == "" {
		text = m.help.ShortHelpView(m.keys.ShortHelp())
	} else if notice := m.ctrl.State().Notice; notice != "" && notice == text {
		text = m.theme.Notice.Render(text)
	}
	return m.theme.StatusBar.Width(m.width).Render(text)
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders every entry of the message list.
func (m Model) renderMessages(width int) string {
	entries := m.ctrl.State().Entries
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, m.renderEntry(e, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderEntry(e conversation.Entry, width int) string {
	bubbleWidth := width - 6
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	switch e.Kind {
	case conversation.EntryWelcome:
		return m.theme.Welcome.Render(markup.WelcomeTitle + "\n" + markup.WelcomeBody)

	case conversation.EntryTyping:
		return m.theme.BotBubble.Render(m.spinner.View() + " " + m.theme.Typing.Render(markup.TypingText))
	}

	name := m.theme.Sender.Render(e.Sender.DisplayName())
	switch {
	case e.Sender == model.SenderUser:
		text := e.Content
		if lipgloss.Width(text) > bubbleWidth {
			text = lipgloss.NewStyle().Width(bubbleWidth).Render(text)
		}
		return name + "\n" + m.theme.UserBubble.Render(text)
	case e.Failed:
		return name + "\n" + m.theme.ErrorReply.Render(styles.StatusIndicators.Error+" "+e.Content)
	default:
		return name + "\n" + m.theme.BotBubble.Render(m.renderer.Render(e.Content, bubbleWidth))
	}
}
