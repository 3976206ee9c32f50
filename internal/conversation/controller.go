// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/storage"
)

// Failure texts shown in place of a bot reply.
const (
	// LocalFailureText is used for any failure against the local store.
	LocalFailureText = "Sorry, something went wrong. Please try again."

	// NetworkFailureText is used when the server could not be reached.
	NetworkFailureText = "Network error. Please try again."

	// ServerFailurePrefix precedes the server's own failure message.
	ServerFailurePrefix = "Sorry, something went wrong: "
)

// TypingIDPrefix prefixes the id of every typing placeholder.
const TypingIDPrefix = "loading-"

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the chat State. Its methods are not safe for concurrent
// use; Exchange and the Fetch functions may run on any goroutine.
type Controller struct {
	store storage.Store
	state State
	now   func() time.Time

	// lastTyping keeps placeholder ids unique within one millisecond.
	lastTyping int64
}

// NewController creates a controller for the given store.
func NewController(store storage.Store) *Controller {
	return &Controller{store: store, now: time.Now}
}

// Store returns the backing store.
func (c *Controller) Store() storage.Store {
	return c.store
}

// State returns the current view state.
func (c *Controller) State() *State {
	return &c.state
}

// =============================================================================
// OPENING CONVERSATIONS
// =============================================================================

// Opened is the result of a startup, create, or select step.
type Opened struct {
	Summaries []model.ConversationSummary
	// RefreshList is false when Summaries was not fetched.
	RefreshList  bool
	Conversation *model.Conversation
	Err          error
}

// FetchStart lists conversations and opens the most recent one, creating a
// first conversation when none exist.
func FetchStart(ctx context.Context, store storage.Store) Opened {
	summaries, err := store.List(ctx)
	if err != nil {
		return Opened{Err: err}
	}
	if len(summaries) == 0 {
		return FetchNew(ctx, store)
	}
	conv, err := store.Load(ctx, summaries[0].ID)
	return Opened{Summaries: summaries, RefreshList: true, Conversation: conv, Err: err}
}

// FetchNew creates a conversation, refreshes the list, and opens it.
func FetchNew(ctx context.Context, store storage.Store) Opened {
	id, err := store.Create(ctx)
	if err != nil {
		return Opened{Err: err}
	}
	summaries, err := store.List(ctx)
	if err != nil {
		return Opened{Err: err}
	}
	conv, err := store.Load(ctx, id)
	return Opened{Summaries: summaries, RefreshList: true, Conversation: conv, Err: err}
}

// FetchSelect opens an existing conversation.
func FetchSelect(ctx context.Context, store storage.Store, id string) Opened {
	conv, err := store.Load(ctx, id)
	return Opened{Conversation: conv, Err: err}
}

// FetchList refreshes the sidebar only.
func FetchList(ctx context.Context, store storage.Store) Opened {
	summaries, err := store.List(ctx)
	return Opened{Summaries: summaries, RefreshList: err == nil, Err: err}
}

// ApplyOpened folds an Opened result into the state. A failed load keeps
// the current conversation on screen and records a notice.
func (c *Controller) ApplyOpened(o Opened) {
	if o.RefreshList {
		c.state.Summaries = o.Summaries
	}
	if o.Err != nil {
		c.state.Notice = c.noticeFor(o.Err)
		logging.For("chat").WithError(o.Err).Warn("conversation update failed")
		return
	}
	c.state.Notice = ""
	if o.Conversation == nil {
		return
	}
	c.state.ActiveID = o.Conversation.ID
	c.state.Title = o.Conversation.DisplayTitle()
	c.state.Entries = entriesFor(o.Conversation)
}

// Start opens the initial conversation synchronously.
func (c *Controller) Start(ctx context.Context) error {
	o := FetchStart(ctx, c.store)
	c.ApplyOpened(o)
	return o.Err
}

// New creates and opens a conversation synchronously.
func (c *Controller) New(ctx context.Context) error {
	o := FetchNew(ctx, c.store)
	c.ApplyOpened(o)
	return o.Err
}

// Select opens a conversation synchronously.
func (c *Controller) Select(ctx context.Context, id string) error {
	o := FetchSelect(ctx, c.store, id)
	c.ApplyOpened(o)
	return o.Err
}

// Refresh reloads the sidebar synchronously.
func (c *Controller) Refresh(ctx context.Context) error {
	o := FetchList(ctx, c.store)
	c.ApplyOpened(o)
	return o.Err
}

// =============================================================================
// SENDING
// =============================================================================

// Pending identifies one in-flight send.
type Pending struct {
	ConversationID string
	TypingID       string
	Text           string
}

// Result is the outcome of one exchange.
type Result struct {
	Pending
	Reply string
	Err   error
}

// BeginSend trims the input and, when it is non-empty and a conversation
// is active, appends the user entry and a typing placeholder. It returns
// false with no state change otherwise.
func (c *Controller) BeginSend(input string) (Pending, bool) {
	text := strings.TrimSpace(input)
	if text == "" || c.state.ActiveID == "" {
		return Pending{}, false
	}

	c.state.removeWelcome()
	c.state.Entries = append(c.state.Entries, Entry{
		Kind:    EntryMessage,
		Sender:  model.SenderUser,
		Content: text,
	})

	p := Pending{
		ConversationID: c.state.ActiveID,
		TypingID:       c.nextTypingID(),
		Text:           text,
	}
	c.state.Entries = append(c.state.Entries, Entry{Kind: EntryTyping, ID: p.TypingID})
	return p, true
}

// nextTypingID returns "loading-<millis>", bumped past the previous id.
func (c *Controller) nextTypingID() string {
	ms := c.now().UnixMilli()
	if ms <= c.lastTyping {
		ms = c.lastTyping + 1
	}
	c.lastTyping = ms
	return fmt.Sprintf("%s%d", TypingIDPrefix, ms)
}

// Exchange performs the network part of a send.
func Exchange(ctx context.Context, store storage.Store, p Pending) Result {
	reply, err := store.Send(ctx, p.ConversationID, p.Text)
	return Result{Pending: p, Reply: reply, Err: err}
}

// CompleteSend removes the typing placeholder and appends the reply, or an
// error entry on failure. A result for a conversation that is no longer
// active is dropped from the view. It reports whether the sidebar should
// be refreshed.
func (c *Controller) CompleteSend(r Result) bool {
	log := logging.For("chat")
	if r.ConversationID != c.state.ActiveID {
		log.WithField("conversation", r.ConversationID).Debug("reply for inactive conversation dropped")
		return r.Err == nil
	}
	c.state.removeEntry(r.TypingID)

	if r.Err != nil {
		log.WithError(r.Err).Warn("send failed")
		c.state.Entries = append(c.state.Entries, Entry{
			Kind:    EntryMessage,
			Sender:  model.SenderBot,
			Content: c.failureText(r.Err),
			Failed:  true,
		})
		return false
	}

	c.state.Entries = append(c.state.Entries, Entry{
		Kind:    EntryMessage,
		Sender:  model.SenderBot,
		Content: r.Reply,
	})
	return true
}

// Send runs BeginSend, Exchange, and CompleteSend in sequence, refreshing
// the sidebar on success. It returns false when the input was rejected.
func (c *Controller) Send(ctx context.Context, input string) (bool, error) {
	p, ok := c.BeginSend(input)
	if !ok {
		return false, nil
	}
	r := Exchange(ctx, c.store, p)
	if c.CompleteSend(r) {
		_ = c.Refresh(ctx)
	}
	return true, r.Err
}

// =============================================================================
// ERROR TEXT
// =============================================================================

// failureText maps a send failure to the text shown in the message list.
func (c *Controller) failureText(err error) string {
	if c.store.Mode() == storage.ModeLocal {
		return LocalFailureText
	}
	if api.IsTransport(err) {
		return NetworkFailureText
	}
	if msg := api.ServerMessage(err); msg != "" {
		return ServerFailurePrefix + msg
	}
	return ServerFailurePrefix + err.Error()
}

// noticeFor maps a list/load failure to a short notice.
func (c *Controller) noticeFor(err error) string {
	switch {
	case errors.Is(err, api.ErrNotAuthenticated):
		return "Not signed in. Run 'talentdesk login' first."
	case errors.Is(err, storage.ErrConversationNotFound), errors.Is(err, api.ErrNotFound):
		return "Conversation not found."
	case api.IsTransport(err):
		return NetworkFailureText
	default:
		return err.Error()
	}
}
