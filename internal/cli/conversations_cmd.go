// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// conversations_cmd.go - List and export conversations.
//
// Command: conversations [subcommand]
// Aliases: conversation, convs
//
// Subcommands:
//   list (default)      List conversations, newest first
//   export <N|ID>       Export one conversation
//
// Flags:
//   --format FMT        markdown, html or json (default: markdown)
//   --out DIR           Output directory (default: upload.output_dir)
//   --json              List as JSON
//   --open              Open the exported file

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/storage"
	"github.com/jeranaias/talentdesk/internal/util"
)

// HandleConversations handles the "conversations" command.
func HandleConversations(args Args) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.RequestTimeout())
	defer cancel()

	p := args.Parser("json", "open")
	switch sub := p.Subcommand(); sub {
	case "", "list", "ls":
		return listConversations(ctx, os.Stdout, store, p.BoolFlag("json"))
	case "export":
		if p.Positional(1) == "" {
			return usageErrorf("talentdesk conversations export 1 --format html", "missing conversation number or id")
		}
		opts := export.DefaultOptions()
		opts.OutputDir = p.FlagOrDefault("out", app.Config.Upload.OutputDir)
		opts.OpenAfterExport = p.BoolFlag("open")
		if !app.Theme.IsDark {
			opts.Theme = "light"
		}
		path, err := exportConversation(ctx, store, p.Positional(1), p.FlagOrDefault("format", "markdown"), opts)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return usageErrorf("talentdesk conversations list", "unknown subcommand %q", sub)
	}
}

// listConversations prints one line per conversation, numbered from 1.
func listConversations(ctx context.Context, w io.Writer, store storage.Store, asJSON bool) error {
	summaries, err := store.List(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		if summaries == nil {
			summaries = []model.ConversationSummary{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, DimStyle.Render(markup.NoChatsText))
		return nil
	}
	for i, s := range summaries {
		created := "-"
		if !s.CreatedAt.IsZero() {
			created = s.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%3d. %s  %s\n", i+1, util.PadRight(util.TruncateWidth(s.Title, 48), 48), DimStyle.Render(created))
	}
	return nil
}

// exportConversation resolves ref (a list number or an id) and writes the
// export file, returning its path.
func exportConversation(ctx context.Context, store storage.Store, ref, format string, opts *export.Options) (string, error) {
	id, err := resolveConversation(ctx, store, ref)
	if err != nil {
		return "", err
	}
	conv, err := store.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return export.Export(conv, format, opts)
}

// resolveConversation maps a 1-based list number to an id. Anything that
// is not a valid list number is taken as an id.
func resolveConversation(ctx context.Context, store storage.Store, ref string) (string, error) {
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 {
		return ref, nil
	}
	summaries, err := store.List(ctx)
	if err != nil {
		return "", err
	}
	if n > len(summaries) {
		// Local ids are unix millis, far above any list length.
		return ref, nil
	}
	return summaries[n-1].ID, nil
}
