// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/jeranaias/talentdesk/internal/model"
)

// JSONExporter writes a conversation in the local history layout, so the
// file reads back as one history entry.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter. JSON output has no options.
func NewJSONExporter(_ *Options) *JSONExporter {
	return &JSONExporter{}
}

// Export implements Exporter. Markup in messages is kept as typed.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, errors.New("no conversation to export")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(conv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileExtension implements Exporter.
func (e *JSONExporter) FileExtension() string { return ".json" }
