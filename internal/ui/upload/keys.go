// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the upload view.
type KeyMap struct {
	Focus      key.Binding
	AddFiles   key.Binding
	CursorUp   key.Binding
	CursorDown key.Binding
	Remove     key.Binding
	Clear      key.Binding
	Analyze    key.Binding
	ExportCSV  key.Binding
	Report     key.Binding
	History    key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch field"),
		),
		AddFiles: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select files"),
		),
		CursorUp: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "previous file"),
		),
		CursorDown: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "next file"),
		),
		Remove: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "remove file"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear files"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "analyze"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "download CSV"),
		),
		Report: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "HTML report"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// BINDING TABLE
// =============================================================================

// keyHandler pairs a binding with its handler. screens limits the binding
// to some screens; nil means every screen.
type keyHandler struct {
	binding key.Binding
	screens []screen
	handle  func(Model) (Model, tea.Cmd)
}

func (h keyHandler) activeOn(s screen) bool {
	if h.screens == nil {
		return true
	}
	for _, on := range h.screens {
		if on == s {
			return true
		}
	}
	return false
}

// handlers is the declarative binding table walked by handleKey.
func (k KeyMap) handlers() []keyHandler {
	selecting := []screen{screenSelect}
	results := []screen{screenResults}
	return []keyHandler{
		{k.Quit, nil, Model.quit},
		{k.Back, []screen{screenResults, screenHistory}, Model.back},
		{k.Focus, selecting, Model.switchFocus},
		{k.AddFiles, selecting, Model.addFiles},
		{k.CursorUp, selecting, Model.cursorUp},
		{k.CursorDown, selecting, Model.cursorDown},
		{k.Remove, selecting, Model.removeFile},
		{k.Clear, selecting, Model.clearFiles},
		{k.Analyze, selecting, Model.analyze},
		{k.ExportCSV, results, Model.exportCSV},
		{k.Report, results, Model.writeReport},
		{k.History, []screen{screenSelect, screenResults}, Model.showHistory},
	}
}
