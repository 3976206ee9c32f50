// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/talentdesk/internal/model"
)

// MarkdownExporter writes a conversation as a Markdown transcript: optional
// YAML front matter, the title as a heading, then one section per message.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export implements Exporter.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, errors.New("no conversation to export")
	}
	if conv.IsEmpty() {
		return nil, ErrEmptyConversation
	}

	var buf bytes.Buffer
	title := conv.DisplayTitle()
	if e.options.IncludeMetadata {
		e.writeFrontMatter(&buf, conv, title)
	}
	fmt.Fprintf(&buf, "# %s\n\n", markdownEscaper.Replace(title))

	for i, msg := range conv.Messages {
		if i > 0 {
			buf.WriteString("---\n\n")
		}
		heading := "### " + msg.Sender.DisplayName()
		if msg.CreatedAt != nil {
			heading += " <sub>" + formatTimestamp(*msg.CreatedAt) + "</sub>"
		}
		fmt.Fprintf(&buf, "%s\n\n%s\n\n", heading, strings.TrimSpace(msg.Content))
	}
	return buf.Bytes(), nil
}

func (e *MarkdownExporter) writeFrontMatter(buf *bytes.Buffer, conv *model.Conversation, title string) {
	buf.WriteString("---\n")
	fmt.Fprintf(buf, "title: %s\n", escapeYAML(title))
	if !conv.CreatedAt.IsZero() {
		fmt.Fprintf(buf, "date: %s\n", conv.CreatedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(buf, "messages: %d\n", len(conv.Messages))
	fmt.Fprintf(buf, "exported: %s\n", e.options.now().Format(time.RFC3339))
	buf.WriteString("generator: talentdesk\n---\n\n")
}

// FileExtension implements Exporter.
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// markdownEscaper neutralizes characters that change heading formatting.
var markdownEscaper = strings.NewReplacer(
	`#`, `\#`,
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
)

// yamlSpecial lists characters that force a quoted YAML scalar.
const yamlSpecial = ":#|>@`\"'[]{}!%&*\n\r\\"

// escapeYAML returns s as a YAML scalar, double-quoted when needed.
func escapeYAML(s string) string {
	if s == strings.TrimSpace(s) && !strings.ContainsAny(s, yamlSpecial) {
		return s
	}
	return strconv.Quote(s)
}
