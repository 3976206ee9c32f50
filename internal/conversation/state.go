// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// ENTRIES
// =============================================================================

// EntryKind distinguishes the rows of the message list.
type EntryKind int

const (
	// EntryWelcome is the placeholder shown for an empty conversation.
	EntryWelcome EntryKind = iota
	// EntryMessage is a user or bot message.
	EntryMessage
	// EntryTyping is the placeholder shown while a reply is pending.
	EntryTyping
)

// Entry is one row of the message list.
type Entry struct {
	Kind    EntryKind
	ID      string
	Sender  model.Sender
	Content string

	// Failed marks a bot entry that reports an error instead of a reply.
	Failed bool
}

// =============================================================================
// STATE
// =============================================================================

// State is everything the chat view renders. At most one conversation is
// active; it decides which messages are listed and which sidebar entry is
// highlighted.
type State struct {
	ActiveID  string
	Title     string
	Summaries []model.ConversationSummary
	Entries   []Entry

	// Notice is the last non-message failure (listing, loading, creating).
	Notice string
}

// SidebarItem is one sidebar row.
type SidebarItem struct {
	ID     string
	Title  string
	Active bool
}

// Items returns the sidebar rows. Exactly the row whose id equals ActiveID
// is marked active.
func (s *State) Items() []SidebarItem {
	items := make([]SidebarItem, len(s.Summaries))
	for i, sum := range s.Summaries {
		items[i] = SidebarItem{ID: sum.ID, Title: sum.Title, Active: sum.ID == s.ActiveID}
	}
	return items
}

// HasWelcome reports whether the welcome placeholder is shown.
func (s *State) HasWelcome() bool {
	for _, e := range s.Entries {
		if e.Kind == EntryWelcome {
			return true
		}
	}
	return false
}

// Pending returns the number of typing placeholders shown.
func (s *State) Pending() int {
	n := 0
	for _, e := range s.Entries {
		if e.Kind == EntryTyping {
			n++
		}
	}
	return n
}

// LastReply returns the content of the most recent successful bot message.
func (s *State) LastReply() (string, bool) {
	for i := len(s.Entries) - 1; i >= 0; i-- {
		e := s.Entries[i]
		if e.Kind == EntryMessage && e.Sender == model.SenderBot && !e.Failed {
			return e.Content, true
		}
	}
	return "", false
}

// removeEntry drops the entry with the given id.
func (s *State) removeEntry(id string) bool {
	for i, e := range s.Entries {
		if e.ID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// removeWelcome drops the welcome placeholder.
func (s *State) removeWelcome() {
	out := s.Entries[:0]
	for _, e := range s.Entries {
		if e.Kind != EntryWelcome {
			out = append(out, e)
		}
	}
	s.Entries = out
}

// entriesFor builds the message list for a loaded conversation.
func entriesFor(conv *model.Conversation) []Entry {
	if conv.IsEmpty() {
		return []Entry{{Kind: EntryWelcome}}
	}
	entries := make([]Entry, len(conv.Messages))
	for i, m := range conv.Messages {
		entries[i] = Entry{Kind: EntryMessage, Sender: m.Sender, Content: m.Content}
	}
	return entries
}
