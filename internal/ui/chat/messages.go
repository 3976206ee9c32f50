// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/talentdesk/internal/conversation"
)

// =============================================================================
// MESSAGES
// =============================================================================

// openedMsg carries the result of a start, create, select or list step.
type openedMsg struct {
	conversation.Opened
}

// sendResultMsg carries the result of one send exchange.
type sendResultMsg struct {
	conversation.Result
}

// watchStartedMsg reports whether the store is being watched.
type watchStartedMsg struct {
	ok  bool
	err error
}

// storeChangedMsg is sent when another process changed the local history.
type storeChangedMsg struct{}

// exportedMsg reports an export of the active conversation.
type exportedMsg struct {
	path string
	err  error
}

// copiedMsg reports a clipboard copy.
type copiedMsg struct {
	chars int
	err   error
}
