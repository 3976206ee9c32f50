// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat view of the talentdesk TUI.

The view wraps a conversation.Controller. State changes happen only in
Update; every store call runs inside a tea.Cmd and reports back as a
message:

	openedMsg      - a conversation was started, created, selected or listed
	sendResultMsg  - one send exchange finished
	storeChangedMsg - another process changed the local history
	exportedMsg    - the active conversation was exported
	copiedMsg      - the last reply was copied to the clipboard

Sends are not serialized. Each Enter starts its own exchange with its own
typing placeholder, and results apply in arrival order.

# Key Bindings

Key handling is table driven: keyMap.handlers pairs every binding with the
method that handles it, and handleKey walks that table. See DefaultKeyMap
for the default keys.
*/
package chat
