// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen chat and upload views.
//
// Command: tui [chat|upload] [FILES...]
// Aliases: upload FILES... (same as "tui upload FILES...")

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/talentdesk/internal/conversation"
	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/ui/chat"
	uploadview "github.com/jeranaias/talentdesk/internal/ui/upload"
)

// HandleTUI handles the "tui" command.
func HandleTUI(args Args) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &TTYRequiredError{Operation: "run the full-screen interface"}
	}

	app, err := NewApp(args)
	if err != nil {
		return err
	}
	defer app.Close()

	p := args.Parser()
	switch view := p.Subcommand(); view {
	case "", "chat":
		return runChatTUI(app)
	case "upload":
		return runUploadTUI(app, expandGlobs(p.PositionalFrom(1)), p.Flag("jd"))
	default:
		return usageErrorf("talentdesk tui upload ~/cvs/*.pdf", "unknown view %q (want chat or upload)", view)
	}
}

func runChatTUI(app *App) error {
	store, closeStore, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := app.Config
	exportOpts := export.DefaultOptions()
	exportOpts.OutputDir = cfg.Upload.OutputDir
	if !app.Theme.IsDark {
		exportOpts.Theme = "light"
	}

	m := chat.New(conversation.NewController(store), app.Theme, chat.Options{
		Timeout:     cfg.RequestTimeout(),
		Markdown:    cfg.UI.Markdown,
		ShowSidebar: cfg.UI.ShowSidebar,
		Watch:       cfg.Chat.Watch,
		Export:      exportOpts,
	})
	defer m.Close()

	logging.For("cli").WithField("mode", cfg.Chat.Mode).Info("chat view started")
	return runProgram(m)
}

func runUploadTUI(app *App, paths []string, jobDescription string) error {
	cfg := app.Config
	m := uploadview.New(app.Client, app.Theme, uploadview.Options{
		Timeout:          cfg.RequestTimeout(),
		OutputDir:        cfg.Upload.OutputDir,
		ProgressStep:     cfg.Upload.ProgressStep,
		ProgressInterval: cfg.ProgressInterval(),
		Markdown:         cfg.UI.Markdown,
		Paths:            paths,
		JobDescription:   jobDescription,
	})

	logging.For("cli").WithField("files", len(paths)).Info("upload view started")
	return runProgram(m)
}

// runProgram runs a Bubble Tea model on the alternate screen.
func runProgram(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
