// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// WIRE HELPERS
// =============================================================================

// serverTimeLayouts are the timestamp shapes the server emits. Naive
// ISO-8601 timestamps without a zone are read as UTC.
var serverTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// serverTime decodes the server's timestamp formats.
type serverTime struct {
	time.Time
}

// UnmarshalJSON accepts RFC 3339 and naive ISO-8601 strings; null or an
// unparseable value yields the zero time.
func (t *serverTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t.Time = parseServerTime(s)
	return nil
}

// parseServerTime returns the zero time when no layout matches.
func parseServerTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range serverTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// flexID accepts ids sent as JSON numbers or strings.
type flexID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

// idValue encodes a conversation id the way the server issued it: numeric
// ids go back as JSON numbers.
func idValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
