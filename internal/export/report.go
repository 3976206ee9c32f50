// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/talentdesk/internal/chart"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/util"
)

// Report chart size in SVG user units.
const (
	ReportChartWidth  = 800
	ReportChartHeight = chart.DefaultHeight
)

// =============================================================================
// RANKING REPORT
// =============================================================================

// Report is one ranking run.
type Report struct {
	Title          string
	JobDescription string
	Response       *model.RankResponse

	// History is optional; nil omits the section.
	History []model.HistoryEntry
}

// RenderReport renders a standalone HTML page: chart, result cards in the
// server's order, errors, and history.
func RenderReport(r Report, opts *Options) []byte {
	if opts == nil {
		opts = DefaultOptions()
	}
	title := r.Title
	if title == "" {
		title = "Resume Analysis"
	}

	var sb strings.Builder
	writeHead(&sb, title, opts)

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", markup.EscapeHTML(title)))
	if opts.IncludeMetadata {
		sb.WriteString("            <div class=\"metadata\">\n")
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Generated:</strong> %s</span>\n", formatTimestamp(opts.now())))
		if r.Response != nil {
			sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Ranked:</strong> %d</span>\n", len(r.Response.Results)))
			sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Failed:</strong> %d</span>\n", len(r.Response.Errors)))
		}
		sb.WriteString("            </div>\n")
	}
	sb.WriteString("        </header>\n")

	if r.JobDescription != "" {
		sb.WriteString(fmt.Sprintf("        <p class=\"job-description\">%s</p>\n", markup.EscapeHTML(r.JobDescription)))
	}

	if r.Response != nil {
		sb.WriteString("        <main class=\"results\">\n")
		if len(r.Response.Results) > 0 {
			canvas := chart.NewSVGCanvas(ReportChartWidth, ReportChartHeight)
			chart.Draw(canvas, r.Response.Results)
			sb.WriteString("        <div class=\"chart\">\n")
			sb.WriteString(canvas.String())
			sb.WriteString("        </div>\n")
		}
		for i, res := range r.Response.Results {
			sb.WriteString(markup.ResultCard(i, res))
		}
		sb.WriteString(markup.ErrorList(r.Response.Errors))
		sb.WriteString("        </main>\n")
	}

	if r.History != nil {
		sb.WriteString("        <section class=\"history\">\n")
		sb.WriteString("            <h2>Previous analyses</h2>\n")
		sb.WriteString(markup.HistoryTable(r.History))
		sb.WriteString("        </section>\n")
	}

	writeFoot(&sb, opts.now())
	return []byte(sb.String())
}

// WriteReport renders a report and writes it atomically to path.
func WriteReport(path string, r Report, opts *Options) error {
	if err := util.AtomicWriteFile(path, RenderReport(r, opts), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logging.For("export").WithField("path", path).Info("report written")
	if opts != nil && opts.OpenAfterExport {
		if err := openFile(path); err != nil {
			logging.For("export").WithError(err).Warn("could not open report")
		}
	}
	return nil
}
