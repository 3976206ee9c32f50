// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// rank_cmd.go - Rank resumes and show analysis history.
//
// Command: rank FILES... [flags]
//
// Flags:
//   --jd TEXT           Job description
//   --jd-file PATH      Read the job description from a file ("-" for stdin)
//   --csv               Download the ranking as CSV into upload.output_dir
//   --html PATH         Write a standalone HTML report
//   --json              Print the ranking as JSON
//   --open              Open the HTML report when written
//
// Command: history [--json]

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/jeranaias/talentdesk/internal/chart"
	"github.com/jeranaias/talentdesk/internal/export"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/ui/components"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
	uploadview "github.com/jeranaias/talentdesk/internal/ui/upload"
	"github.com/jeranaias/talentdesk/internal/upload"
)

// HandleRank handles the "rank" command.
func HandleRank(args Args) error {
	p := args.Parser("csv", "json", "open")
	paths := expandGlobs(p.PositionalFrom(0))
	if len(paths) == 0 {
		return usageErrorf(`talentdesk rank ~/cvs/*.pdf --jd "golang kubernetes"`, "no resume files given")
	}

	jobDescription, err := readJobDescription(p)
	if err != nil {
		return err
	}

	app, err := NewApp(args)
	if err != nil {
		return err
	}
	defer app.Close()
	cfg := app.Config

	ctrl := upload.NewController(app.Client, cfg.Upload.OutputDir)
	rejected, err := ctrl.Selection().Select(paths)
	if err != nil {
		return err
	}
	if rejected > 0 && !args.Quiet {
		fmt.Fprintln(os.Stderr, styles.RenderWarning(fmt.Sprintf("%d file(s) skipped (not PDF or Word)", rejected)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	bar := !args.Quiet && IsStdoutTTY() && ColorsEnabled()
	resp, err := submitWithProgress(ctx, app.Client, ctrl, jobDescription, upload.NewProgress(cfg.Upload.ProgressStep, cfg.ProgressInterval()), bar)
	if err != nil {
		return withText(upload.SubmitErrorText(err), err)
	}

	if p.BoolFlag("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else {
		renderer := components.NewMarkdownRenderer(cfg.UI.Markdown && ColorsEnabled(), app.Theme.IsDark)
		fmt.Println(uploadview.RenderResults(resp, app.Theme, renderer, GetTerminalWidth()))
	}

	if p.BoolFlag("csv") {
		path, err := ctrl.ExportCSV(ctx)
		if err != nil {
			return withText(upload.DownloadErrorText(err), err)
		}
		fmt.Fprintln(os.Stderr, styles.RenderSuccess("CSV saved to "+path))
	}

	if out := p.Flag("html"); out != "" {
		report := export.Report{JobDescription: ctrl.JobDescription(), Response: resp}
		if history, err := ctrl.History(ctx); err == nil {
			report.History = history
		}
		opts := export.DefaultOptions()
		opts.OpenAfterExport = p.BoolFlag("open")
		if !app.Theme.IsDark {
			opts.Theme = "light"
		}
		if err := export.WriteReport(out, report, opts); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, styles.RenderSuccess("Report saved to "+out))
	}
	return nil
}

// HandleHistory handles the "history" command.
func HandleHistory(args Args) error {
	app, err := NewApp(args)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.RequestTimeout())
	defer cancel()

	entries, err := app.Client.ResumeHistory(ctx)
	if err != nil {
		return err
	}
	if args.Parser("json").BoolFlag("json") {
		if entries == nil {
			entries = []model.HistoryEntry{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	fmt.Println(uploadview.RenderHistory(entries, app.Theme))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// readJobDescription returns --jd, or the contents of --jd-file.
func readJobDescription(p *ArgParser) (string, error) {
	if jd := p.Flag("jd"); jd != "" {
		return strings.TrimSpace(jd), nil
	}
	path := p.Flag("jd-file")
	if path == "" {
		return "", nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// expandGlobs expands patterns the shell left alone (Windows, quoted
// arguments). Patterns matching nothing are kept so they are reported.
func expandGlobs(args []string) []string {
	var out []string
	for _, a := range args {
		matches, err := filepath.Glob(a)
		if err != nil || len(matches) == 0 {
			out = append(out, a)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

// submitWithProgress submits the selection, drawing the simulated
// progress bar on stderr when show is set.
func submitWithProgress(ctx context.Context, client upload.RankAPI, ctrl *upload.Controller, jobDescription string, prog *upload.Progress, show bool) (*model.RankResponse, error) {
	sub, err := ctrl.Prepare(jobDescription)
	if err != nil {
		return nil, err
	}
	if !show {
		resp, err := upload.Rank(ctx, client, sub)
		if err != nil {
			return nil, err
		}
		ctrl.Apply(sub.JobDescription, resp)
		return resp, nil
	}

	bar := progress.New(progress.WithGradient(chart.GradientTop, chart.GradientBottom), progress.WithWidth(40))
	draw := func(v int) {
		fmt.Fprintf(os.Stderr, "\r%s %3d%%", bar.ViewAs(float64(v)/upload.ProgressDone), v)
	}

	tickCtx, stop := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		prog.Run(tickCtx, draw)
	}()

	resp, err := upload.Rank(ctx, client, sub)
	stop()
	wg.Wait()

	if err != nil {
		fmt.Fprintln(os.Stderr)
		return nil, err
	}
	prog.Finish()
	draw(prog.Value())
	fmt.Fprintln(os.Stderr)
	ctrl.Apply(sub.JobDescription, resp)
	return resp, nil
}
