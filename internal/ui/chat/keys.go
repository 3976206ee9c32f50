// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat view.
type KeyMap struct {
	Send          key.Binding
	New           key.Binding
	Next          key.Binding
	Prev          key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Copy          key.Binding
	Export        key.Binding
	ToggleSidebar key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings. Letter keys are avoided
// because the input always has focus.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+down", "alt+j"),
			key.WithHelp("C-down", "next chat"),
		),
		Prev: key.NewBinding(
			key.WithKeys("ctrl+up", "alt+k"),
			key.WithHelp("C-up", "previous chat"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last reply"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export chat"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "toggle sidebar"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("Esc/C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.New, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help panel, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.New, k.Next, k.Prev},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Copy, k.Export, k.ToggleSidebar, k.Help, k.Quit},
	}
}

// =============================================================================
// BINDING TABLE
// =============================================================================

// keyHandler pairs a binding with the method that handles it.
type keyHandler struct {
	binding key.Binding
	handle  func(Model) (Model, tea.Cmd)
}

// handlers is the declarative binding table walked by handleKey. The first
// matching binding wins.
func (k KeyMap) handlers() []keyHandler {
	return []keyHandler{
		{k.Quit, Model.quit},
		{k.Send, Model.send},
		{k.New, Model.newConversation},
		{k.Next, Model.nextConversation},
		{k.Prev, Model.prevConversation},
		{k.ScrollUp, Model.scrollUp},
		{k.ScrollDown, Model.scrollDown},
		{k.PageUp, Model.pageUp},
		{k.PageDown, Model.pageDown},
		{k.Copy, Model.copyLastReply},
		{k.Export, Model.exportConversation},
		{k.ToggleSidebar, Model.toggleSidebar},
		{k.Help, Model.toggleHelp},
	}
}
