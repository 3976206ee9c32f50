// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/talentdesk/internal/conversation"
	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/ui/components"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the chat view.
type Options struct {
	// Timeout bounds every store call (default DefaultTimeout).
	Timeout time.Duration

	// Markdown renders bot replies with glamour.
	Markdown bool

	// ShowSidebar shows the conversation list on wide terminals.
	ShowSidebar bool

	// Watch refreshes the sidebar when another process writes the history.
	Watch bool

	// ExportFormat is "markdown", "html" or "json" (default "markdown").
	ExportFormat string

	// Export configures conversation export.
	Export *export.Options

	// Clipboard writes copied text; nil uses the system clipboard.
	Clipboard func(string) error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat view.
type Model struct {
	ctrl     *conversation.Controller
	theme    *styles.Theme
	keys     KeyMap
	opts     Options
	renderer *components.MarkdownRenderer

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model

	width       int
	height      int
	ready       bool
	showSidebar bool
	showHelp    bool
	status      string

	// watchCtx lives until Close; changes carries watch notifications.
	watchCtx  context.Context
	stopWatch context.CancelFunc
	changes   chan struct{}
}

// New creates a chat view over ctrl.
func New(ctrl *conversation.Controller, theme *styles.Theme, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = "markdown"
	}
	if opts.Export == nil {
		opts.Export = export.DefaultOptions()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboardWrite
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	// ASCII frames render on every terminal
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Typing

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		ctrl:        ctrl,
		theme:       theme,
		keys:        DefaultKeyMap(),
		opts:        opts,
		renderer:    components.NewMarkdownRenderer(opts.Markdown, theme.IsDark),
		viewport:    vp,
		input:       ti,
		spinner:     sp,
		help:        help.New(),
		showSidebar: opts.ShowSidebar,
		watchCtx:    ctx,
		stopWatch:   cancel,
		changes:     make(chan struct{}, 1),
	}
}

// Close stops the store watcher.
func (m Model) Close() {
	m.stopWatch()
}

// Controller returns the controller behind the view.
func (m Model) Controller() *conversation.Controller {
	return m.ctrl
}

// Status returns the last status line text.
func (m Model) Status() string {
	return m.status
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init opens the most recent conversation and starts watching the store.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		fetchStartCmd(m.ctrl.Store(), m.opts.Timeout),
	}
	if w, ok := m.ctrl.Store().(watcher); ok && m.opts.Watch {
		cmds = append(cmds, watchCmd(m.watchCtx, w, m.changes))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.ctrl.State().Pending() == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd

	case openedMsg:
		m.ctrl.ApplyOpened(msg.Opened)
		m.status = m.ctrl.State().Notice
		m.updateViewport()
		return m, nil

	case sendResultMsg:
		refresh := m.ctrl.CompleteSend(msg.Result)
		m.updateViewport()
		if refresh {
			return m, fetchListCmd(m.ctrl.Store(), m.opts.Timeout)
		}
		return m, nil

	case watchStartedMsg:
		if msg.err != nil {
			logging.For("chat").WithError(msg.err).Warn("history watch unavailable")
			return m, nil
		}
		if !msg.ok {
			return m, nil
		}
		return m, waitForChangeCmd(m.watchCtx, m.changes)

	case storeChangedMsg:
		return m.handleStoreChanged()

	case exportedMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Exported to " + msg.path
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Failed to copy: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Copied reply to clipboard (%d chars)", msg.chars)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize lays out the viewport below the header and above the input
// and status bar.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	// Conservative: header(2) + input(2) + status(1)
	const reserved = 5

	h := m.height - reserved
	if m.showHelp {
		h -= helpHeight
	}
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.messagesWidth()
	m.viewport.Height = h
	m.input.Width = m.width - 4
	m.help.Width = m.width
	m.ready = true
	m.updateViewport()
	return m, nil
}

// helpHeight is the height of the full help panel.
const helpHeight = 5

// handleKey walks the binding table; unmatched keys go to the input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, h := range m.keys.handlers() {
		if key.Matches(msg, h.binding) {
			return h.handle(m)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleStoreChanged refreshes the sidebar after a foreign write. The
// active conversation is reloaded too unless a reply is pending, so typing
// placeholders are never dropped.
func (m Model) handleStoreChanged() (tea.Model, tea.Cmd) {
	store := m.ctrl.Store()
	cmds := []tea.Cmd{
		fetchListCmd(store, m.opts.Timeout),
		waitForChangeCmd(m.watchCtx, m.changes),
	}
	st := m.ctrl.State()
	if st.ActiveID != "" && st.Pending() == 0 {
		cmds = append(cmds, fetchSelectCmd(store, st.ActiveID, m.opts.Timeout))
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLERS
// =============================================================================

func (m Model) quit() (Model, tea.Cmd) {
	m.stopWatch()
	return m, tea.Quit
}

// send starts one exchange. Blank input or no active conversation changes
// nothing.
func (m Model) send() (Model, tea.Cmd) {
	wasIdle := m.ctrl.State().Pending() == 0
	p, ok := m.ctrl.BeginSend(m.input.Value())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.updateViewport()

	cmds := []tea.Cmd{exchangeCmd(m.ctrl.Store(), p, m.opts.Timeout)}
	if wasIdle {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) newConversation() (Model, tea.Cmd) {
	return m, fetchNewCmd(m.ctrl.Store(), m.opts.Timeout)
}

func (m Model) nextConversation() (Model, tea.Cmd) {
	return m.stepConversation(1)
}

func (m Model) prevConversation() (Model, tea.Cmd) {
	return m.stepConversation(-1)
}

// stepConversation selects the sidebar entry delta rows from the active
// one, wrapping around.
func (m Model) stepConversation(delta int) (Model, tea.Cmd) {
	items := m.ctrl.State().Items()
	if len(items) < 2 {
		return m, nil
	}
	current := 0
	for i, it := range items {
		if it.Active {
			current = i
			break
		}
	}
	next := (current + delta + len(items)) % len(items)
	return m, fetchSelectCmd(m.ctrl.Store(), items[next].ID, m.opts.Timeout)
}

func (m Model) scrollUp() (Model, tea.Cmd) {
	m.viewport.LineUp(1)
	return m, nil
}

func (m Model) scrollDown() (Model, tea.Cmd) {
	m.viewport.LineDown(1)
	return m, nil
}

func (m Model) pageUp() (Model, tea.Cmd) {
	m.viewport.HalfViewUp()
	return m, nil
}

func (m Model) pageDown() (Model, tea.Cmd) {
	m.viewport.HalfViewDown()
	return m, nil
}

func (m Model) copyLastReply() (Model, tea.Cmd) {
	reply, ok := m.ctrl.State().LastReply()
	if !ok {
		m.status = "No reply to copy"
		return m, nil
	}
	return m, copyCmd(m.opts.Clipboard, reply)
}

func (m Model) exportConversation() (Model, tea.Cmd) {
	id := m.ctrl.State().ActiveID
	if id == "" {
		m.status = "No conversation to export"
		return m, nil
	}
	return m, exportCmd(m.ctrl.Store(), id, m.opts.ExportFormat, m.opts.Export, m.opts.Timeout)
}

func (m Model) toggleSidebar() (Model, tea.Cmd) {
	m.showSidebar = !m.showSidebar
	m.viewport.Width = m.messagesWidth()
	m.updateViewport()
	return m, nil
}

func (m Model) toggleHelp() (Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	model, cmd := m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return model.(Model), cmd
}

// updateViewport re-renders the message list and keeps it scrolled to the
// newest entry.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages(m.viewport.Width))
	m.viewport.GotoBottom()
}
