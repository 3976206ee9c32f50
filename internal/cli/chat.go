// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-oriented chat.
//
// Command: chat [MESSAGE]
//
// With MESSAGE the reply is printed and the command exits. Otherwise an
// interactive loop starts with input history (arrow keys) kept in the
// config directory.
//
// Slash commands:
//   /new          Start a new conversation
//   /list         List conversations
//   /open N       Open conversation N from /list
//   /export [FMT] Export the active conversation (markdown, html, json)
//   /help         Show slash commands
//   /quit         Leave

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/talentdesk/internal/config"
	"github.com/jeranaias/talentdesk/internal/conversation"
	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/ui/components"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history loaded from the config
// directory.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history (0600) and restores the terminal.
func (c *ChatCLI) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession is one line chat over a conversation controller.
type chatSession struct {
	ctrl     *conversation.Controller
	renderer *components.MarkdownRenderer
	out      io.Writer
	width    int
	export   *export.Options
}

// HandleChat handles the "chat" command.
func HandleChat(args Args) error {
	app, err := NewApp(args)
	if err != nil {
		return err
	}
	defer app.Close()

	store, closeStore, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer closeStore()

	exportOpts := export.DefaultOptions()
	exportOpts.OutputDir = app.Config.Upload.OutputDir

	s := &chatSession{
		ctrl:     conversation.NewController(store),
		renderer: components.NewMarkdownRenderer(app.Config.UI.Markdown && ColorsEnabled(), app.Theme.IsDark),
		out:      os.Stdout,
		width:    GetTerminalWidth(),
		export:   exportOpts,
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.RequestTimeout())
	err = s.ctrl.Start(ctx)
	cancel()
	if err != nil {
		return withText(s.ctrl.State().Notice, err)
	}

	// One-shot: talentdesk chat "hello"
	if message := JoinPositionalArgs(args.Parser(), 0); message != "" {
		return s.send(app.Config, message)
	}

	if !IsTTY() {
		return &TTYRequiredError{Operation: "chat"}
	}
	return s.loop(app.Config, args.Quiet)
}

// loop reads lines until /quit, EOF or Ctrl+C.
func (s *chatSession) loop(cfg *config.Config, quiet bool) error {
	in := NewChatCLI()
	defer in.Close()

	if !quiet {
		s.printWelcome(cfg)
	}

	for {
		input, err := in.ReadInput("> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if strings.HasPrefix(input, "/") {
			done, err := s.slash(cfg, input)
			if err != nil {
				fmt.Fprintln(s.out, styles.RenderError(err.Error()))
			}
			if done {
				return nil
			}
			continue
		}

		// Send errors are already shown as the failed reply.
		_ = s.send(cfg, input)
	}
}

// send sends one message and prints the reply. Blank input does nothing.
func (s *chatSession) send(cfg *config.Config, input string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	ok, err := s.ctrl.Send(ctx, input)
	if !ok {
		return nil
	}
	entries := s.ctrl.State().Entries
	if len(entries) > 0 {
		s.printEntry(entries[len(entries)-1])
	}
	if err != nil {
		logging.For("cli").WithError(err).Debug("send failed")
	}
	return err
}

func (s *chatSession) printEntry(e conversation.Entry) {
	label := replyStyle.Render(e.Sender.DisplayName() + ":")
	if e.Failed {
		fmt.Fprintf(s.out, "%s %s\n\n", label, styles.RenderError(e.Content))
		return
	}
	fmt.Fprintf(s.out, "%s\n%s\n\n", label, strings.TrimRight(s.renderer.Render(e.Content, s.width-2), "\n"))
}

func (s *chatSession) printWelcome(cfg *config.Config) {
	st := s.ctrl.State()
	fmt.Fprintln(s.out, TitleStyle.Render(markup.WelcomeTitle))
	fmt.Fprintln(s.out, DimStyle.Render(markup.WelcomeBody))
	fmt.Fprintf(s.out, "%s %s  %s %s\n", RenderLabel("Conversation:"), ValueStyle.Render(st.Title),
		DimStyle.Render("mode"), ValueStyle.Render(cfg.Chat.Mode))
	fmt.Fprintln(s.out, DimStyle.Render("Type /help for commands, Ctrl+C to leave."))
	fmt.Fprintln(s.out)

	// Replay an existing conversation so context is visible.
	for _, e := range st.Entries {
		if e.Kind == conversation.EntryMessage {
			s.printEntry(e)
		}
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// slash runs one slash command. It returns true when the loop should end.
func (s *chatSession) slash(cfg *config.Config, input string) (bool, error) {
	fields := strings.Fields(input)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/help", "/?":
		fmt.Fprintln(s.out, chatHelpText)

	case "/new":
		if err := s.ctrl.New(ctx); err != nil {
			return false, withText(s.ctrl.State().Notice, err)
		}
		fmt.Fprintln(s.out, styles.RenderSuccess("Started a new conversation"))

	case "/list":
		s.printList()

	case "/open":
		if len(fields) < 2 {
			return false, usageErrorf("/open 2", "missing conversation number")
		}
		items := s.ctrl.State().Items()
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(items) {
			return false, fmt.Errorf("no conversation %s (see /list)", fields[1])
		}
		if err := s.ctrl.Select(ctx, items[n-1].ID); err != nil {
			return false, withText(s.ctrl.State().Notice, err)
		}
		s.printWelcome(cfg)

	case "/export":
		format := "markdown"
		if len(fields) > 1 {
			format = fields[1]
		}
		conv, err := s.ctrl.Store().Load(ctx, s.ctrl.State().ActiveID)
		if err != nil {
			return false, err
		}
		path, err := export.Export(conv, format, s.export)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, styles.RenderSuccess("Exported to "+path))

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", fields[0])
	}
	return false, nil
}

func (s *chatSession) printList() {
	items := s.ctrl.State().Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, DimStyle.Render(markup.NoChatsText))
		return
	}
	for i, it := range items {
		marker := "  "
		if it.Active {
			marker = "* "
		}
		fmt.Fprintf(s.out, "%s%2d. %s\n", marker, i+1, it.Title)
	}
}

const chatHelpText = `Commands:
  /new          Start a new conversation
  /list         List conversations
  /open N       Open conversation N from /list
  /export [FMT] Export the active conversation (markdown, html, json)
  /help         Show this help
  /quit         Leave`
