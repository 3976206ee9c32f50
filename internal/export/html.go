// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/talentdesk/internal/markup"
	"github.com/jeranaias/talentdesk/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports conversations to HTML format with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a conversation to HTML format.
func (e *HTMLExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if conv.IsEmpty() {
		return nil, ErrEmptyConversation
	}

	title := conv.DisplayTitle()
	var sb strings.Builder
	writeHead(&sb, title, e.options)

	if e.options.IncludeMetadata {
		sb.WriteString("        <header class=\"header\">\n")
		sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", markup.EscapeHTML(title)))
		sb.WriteString("            <div class=\"metadata\">\n")
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Created:</strong> %s</span>\n", formatTimestamp(conv.CreatedAt)))
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Messages:</strong> %d</span>\n", len(conv.Messages)))
		sb.WriteString("            </div>\n")
		sb.WriteString("        </header>\n")
	}

	sb.WriteString("        <main class=\"chat-messages\">\n")
	for _, msg := range conv.Messages {
		sb.WriteString(markup.ChatMessage(msg.Sender, msg.Content))
	}
	sb.WriteString("        </main>\n")

	writeFoot(&sb, e.options.now())
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// =============================================================================
// PAGE FRAME
// =============================================================================

// writeHead opens the document and the container.
func writeHead(sb *strings.Builder, title string, opts *Options) {
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", markup.EscapeHTML(title)))
	sb.WriteString("    <meta name=\"generator\" content=\"talentdesk\">\n")
	sb.WriteString(stylesheet)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", opts.theme()))
	sb.WriteString("    <div class=\"container\">\n")
}

// writeFoot closes the container and the document.
func writeFoot(sb *strings.Builder, now time.Time) {
	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>talentdesk</strong> on %s</p>\n",
		now.Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

// stylesheet covers both conversation exports and ranking reports.
const stylesheet = `    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        :root {
            --font-sans: Inter, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
        }

        .dark-theme {
            --bg-primary: #212121;
            --bg-secondary: #2f2f2f;
            --bg-tertiary: #3a3a3a;
            --text-primary: #ececec;
            --text-secondary: #b4b4b4;
            --text-muted: #8e8e8e;
            --border-color: #424242;
            --user-bg: #2f2f2f;
            --bot-bg: transparent;
            --accent: #667eea;
            --error: #dc2626;
        }

        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f7f8;
            --bg-tertiary: #ececf1;
            --text-primary: #202123;
            --text-secondary: #565869;
            --text-muted: #8e8ea0;
            --border-color: #e5e5e5;
            --user-bg: #f4f4f4;
            --bot-bg: transparent;
            --accent: #5a67d8;
            --error: #b91c1c;
        }

        body {
            font-family: var(--font-sans);
            font-size: 16px;
            line-height: 1.6;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container { max-width: 900px; margin: 0 auto; }

        .header { padding: 24px 0; border-bottom: 1px solid var(--border-color); margin-bottom: 24px; }
        .header h1 { font-size: 26px; margin-bottom: 12px; }
        .metadata { display: flex; flex-wrap: wrap; gap: 16px; font-size: 14px; color: var(--text-secondary); }

        .chat-messages { display: flex; flex-direction: column; gap: 16px; }
        .message { display: flex; }
        .user-message { justify-content: flex-end; }
        .message-content { max-width: 80%; padding: 12px 16px; border-radius: 18px; }
        .user-message .message-content { background: var(--user-bg); }
        .bot-message .message-content { background: var(--bot-bg); }

        .job-description { white-space: pre-wrap; color: var(--text-secondary); margin-bottom: 24px; }
        .chart { margin: 24px 0; background: var(--bg-secondary); border-radius: 12px; padding: 12px; }
        .chart svg { width: 100%; height: auto; }

        .result-card { background: var(--bg-secondary); border: 1px solid var(--border-color); border-radius: 12px; padding: 20px; margin-bottom: 16px; }
        .result-header { display: flex; gap: 16px; align-items: center; margin-bottom: 12px; }
        .result-rank { font-size: 24px; font-weight: 700; color: var(--accent); }
        .result-score { display: flex; gap: 8px; align-items: center; color: var(--text-muted); font-size: 14px; }
        .score-badge { color: #fff; font-weight: 700; padding: 4px 12px; border-radius: 999px; }
        .result-content h3, .result-content h4 { margin: 12px 0 4px; }
        .result-content ul { margin-left: 20px; }

        .error-card { border: 1px solid var(--error); border-radius: 12px; padding: 16px; margin-bottom: 16px; }
        .error-card h4 { color: var(--error); margin-bottom: 8px; }
        .error-card ul { margin-left: 20px; }

        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 8px; border-bottom: 1px solid var(--border-color); }
        th { color: var(--text-secondary); }
        .no-history { color: var(--text-muted); }

        .footer { margin-top: 32px; font-size: 13px; color: var(--text-muted); text-align: center; }

        @media print {
            body { background: #fff; color: #000; }
        }
    </style>
`
