// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/util"
)

// =============================================================================
// EXPORTERS
// =============================================================================

// Exporter renders one conversation into a file format.
type Exporter interface {
	Export(conv *model.Conversation) ([]byte, error)
	FileExtension() string
}

// ErrEmptyConversation is returned for a conversation with no messages.
var ErrEmptyConversation = errors.New("conversation has no messages")

// formats maps every accepted format name to its exporter.
var formats = map[string]func(*Options) Exporter{
	"markdown": func(o *Options) Exporter { return NewMarkdownExporter(o) },
	"md":       func(o *Options) Exporter { return NewMarkdownExporter(o) },
	"html":     func(o *Options) Exporter { return NewHTMLExporter(o) },
	"htm":      func(o *Options) Exporter { return NewHTMLExporter(o) },
	"json":     func(o *Options) Exporter { return NewJSONExporter(o) },
}

// Formats returns the accepted format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExporterFor returns the exporter for a format name (case-insensitive).
func ExporterFor(format string, opts *Options) (Exporter, error) {
	newExporter, ok := formats[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q (use one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return newExporter(opts), nil
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures where and how exports are written.
type Options struct {
	// OutputDir receives exported files; created when missing.
	OutputDir string

	// OpenAfterExport opens the written file with the desktop handler.
	OpenAfterExport bool

	// IncludeMetadata adds a header (created time, message count).
	IncludeMetadata bool

	// Theme selects the HTML palette: "light" or "dark".
	Theme string

	// Now stamps exported files; nil uses time.Now.
	Now func() time.Time
}

// DefaultOptions writes to the working directory with metadata and the
// dark palette.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		IncludeMetadata: true,
		Theme:           "dark",
	}
}

func (o *Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *Options) theme() string {
	if o.Theme == "light" {
		return "light"
	}
	return "dark"
}

// =============================================================================
// WRITING
// =============================================================================

// Export writes conv in the named format ("markdown", "md", "html", "htm"
// or "json") and returns the file path.
func Export(conv *model.Conversation, format string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	exporter, err := ExporterFor(format, opts)
	if err != nil {
		return "", err
	}
	return ExportToFile(conv, exporter, opts)
}

// ExportToFile writes conv with exporter into opts.OutputDir. The file is
// named conversation_<title>_<timestamp><ext>.
func ExportToFile(conv *model.Conversation, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if conv == nil {
		return "", errors.New("no conversation to export")
	}
	if conv.IsEmpty() {
		return "", ErrEmptyConversation
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export %q: %w", conv.DisplayTitle(), err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	name := "conversation_" + sanitizeFilename(conv.DisplayTitle()) + "_" +
		opts.now().Format("20060102_150405") + exporter.FileExtension()
	path := filepath.Join(opts.OutputDir, name)
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	log := logging.For("export").WithField("path", path)
	log.WithField("messages", len(conv.Messages)).Info("conversation exported")
	if opts.OpenAfterExport {
		if err := openFile(path); err != nil {
			log.WithError(err).Warn("could not open exported file")
		}
	}
	return path, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// maxNameRunes caps the title part of generated file names.
const maxNameRunes = 50

// sanitizeFilename makes a title safe as a file name on every platform.
// Whitespace becomes '_'; separators, dots and control characters become '-'.
func sanitizeFilename(s string) string {
	if runes := []rune(s); len(runes) > maxNameRunes {
		s = string(runes[:maxNameRunes])
	}
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case r < 32 || r == 127, strings.ContainsRune(`/\:*?"<>|.`, r):
			return '-'
		}
		return r
	}, s)
	if name == "" {
		return "conversation"
	}
	return name
}

// openers holds the desktop "open" command per OS; the path is appended.
var openers = map[string][]string{
	"darwin": {"open"},
	"linux":  {"xdg-open"},
	// Empty quoted window title, path last.
	"windows": {"cmd", "/c", "start", `""`},
}

// openFile opens path with the desktop handler without waiting for it.
func openFile(path string) error {
	argv, ok := openers[runtime.GOOS]
	if !ok {
		return fmt.Errorf("opening files is not supported on %s", runtime.GOOS)
	}
	args := append(append([]string{}, argv[1:]...), path)
	return exec.Command(argv[0], args...).Start()
}

// formatTimestamp renders t in local time, "-" when unset.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
