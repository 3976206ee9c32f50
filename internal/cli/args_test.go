// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		boolNames []string
		wantSub   string
		validate  func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"list"},
			wantSub: "list",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"export", "--format", "html"},
			wantSub: "export",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("format") != "html" {
					t.Errorf("Flag(format) = %q, want %q", p.Flag("format"), "html")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"export", "--out=/tmp/reports"},
			wantSub: "export",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("out") != "/tmp/reports" {
					t.Errorf("Flag(out) = %q, want %q", p.Flag("out"), "/tmp/reports")
				}
			},
		},
		{
			name:    "boolean flag at end",
			args:    []string{"list", "--json"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
			},
		},
		{
			name:      "declared boolean does not swallow a file",
			args:      []string{"--csv", "a.pdf", "--jd", "golang"},
			boolNames: []string{"csv"},
			wantSub:   "a.pdf",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("csv") {
					t.Error("BoolFlag(csv) should be true")
				}
				if p.Flag("jd") != "golang" {
					t.Errorf("Flag(jd) = %q, want %q", p.Flag("jd"), "golang")
				}
			},
		},
		{
			name:    "multiple positional args",
			args:    []string{"hello", "there", "recruiter"},
			wantSub: "hello",
			validate: func(t *testing.T, p *ArgParser) {
				if p.PositionalCount() != 3 {
					t.Errorf("PositionalCount() = %d, want 3", p.PositionalCount())
				}
				joined := strings.Join(p.PositionalFrom(1), " ")
				if joined != "there recruiter" {
					t.Errorf("PositionalFrom(1) joined = %q, want %q", joined, "there recruiter")
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"--", "--not-a-flag", "x"},
			wantSub: "--not-a-flag",
			validate: func(t *testing.T, p *ArgParser) {
				if p.HasFlag("not-a-flag") {
					t.Error("arguments after -- must be positional")
				}
			},
		},
		{
			name:    "dash is a flag value",
			args:    []string{"--jd-file", "-", "a.pdf"},
			wantSub: "a.pdf",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("jd-file") != "-" {
					t.Errorf("Flag(jd-file) = %q, want %q", p.Flag("jd-file"), "-")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewArgParser(tt.args, tt.boolNames...)
			if parser.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", parser.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, parser)
			}
		})
	}
}

func TestArgParser_RepeatedFlag(t *testing.T) {
	parser := NewArgParser([]string{"--format", "json", "--format", "html"})
	if got := parser.Flag("format"); got != "html" {
		t.Errorf("Flag(format) = %q, want last value %q", got, "html")
	}
	if got := parser.Flags("format"); len(got) != 2 {
		t.Errorf("Flags(format) = %v, want 2 values", got)
	}
}

func TestArgParser_FlagIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		flagName   string
		defaultVal int
		want       int
	}{
		{
			name:       "flag present",
			args:       []string{"cmd", "--limit", "10"},
			flagName:   "limit",
			defaultVal: 5,
			want:       10,
		},
		{
			name:       "flag missing uses default",
			args:       []string{"cmd"},
			flagName:   "limit",
			defaultVal: 5,
			want:       5,
		},
		{
			name:       "invalid int uses default",
			args:       []string{"cmd", "--limit", "abc"},
			flagName:   "limit",
			defaultVal: 5,
			want:       5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewArgParser(tt.args)
			got := parser.FlagIntOrDefault(tt.flagName, tt.defaultVal)
			if got != tt.want {
				t.Errorf("FlagIntOrDefault(%q, %d) = %d, want %d", tt.flagName, tt.defaultVal, got, tt.want)
			}
		})
	}
}

func TestArgParser_HasFlag(t *testing.T) {
	parser := NewArgParser([]string{"cmd", "--json", "--format", "html"})

	if !parser.HasFlag("json") {
		t.Error("HasFlag(json) should be true")
	}
	if !parser.HasFlag("--format") {
		t.Error("HasFlag(--format) should be true")
	}
	if parser.HasFlag("nonexistent") {
		t.Error("HasFlag(nonexistent) should be false")
	}
}

func TestParseBoolString(t *testing.T) {
	trueValues := []string{"true", "TRUE", "True", "yes", "YES", "y", "Y", "1", "on", "ON"}
	falseValues := []string{"false", "FALSE", "False", "no", "NO", "n", "N", "0", "off", "OFF"}

	for _, v := range trueValues {
		t.Run("true_"+v, func(t *testing.T) {
			got, err := ParseBoolString(v)
			if err != nil {
				t.Errorf("ParseBoolString(%q) error = %v", v, err)
			}
			if !got {
				t.Errorf("ParseBoolString(%q) = false, want true", v)
			}
		})
	}

	for _, v := range falseValues {
		t.Run("false_"+v, func(t *testing.T) {
			got, err := ParseBoolString(v)
			if err != nil {
				t.Errorf("ParseBoolString(%q) error = %v", v, err)
			}
			if got {
				t.Errorf("ParseBoolString(%q) = true, want false", v)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseBoolString("maybe"); err == nil {
			t.Error("ParseBoolString(maybe) should error")
		}
	})
}

func TestParseIntWithValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"valid positive", "42", 42, false},
		{"valid one", "1", 1, false},
		{"zero is invalid", "0", 0, true},
		{"negative is invalid", "-5", 0, true},
		{"empty is invalid", "", 0, true},
		{"non-numeric is invalid", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIntWithValidation(tt.input, "count")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseIntWithValidation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseIntWithValidation(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestArgParser_EmptyArgs(t *testing.T) {
	parser := NewArgParser([]string{})
	if parser.Subcommand() != "" {
		t.Errorf("Subcommand() = %q, want empty", parser.Subcommand())
	}
	if parser.PositionalCount() != 0 {
		t.Errorf("PositionalCount() = %d, want 0", parser.PositionalCount())
	}
	if got := parser.PositionalFrom(3); len(got) != 0 {
		t.Errorf("PositionalFrom(3) = %v, want empty", got)
	}
	if JoinPositionalArgs(parser, 0) != "" {
		t.Error("JoinPositionalArgs on empty args should be empty")
	}
}

func TestArgParser_FlagOrDefault(t *testing.T) {
	parser := NewArgParser([]string{"cmd", "--format", "json"})

	if parser.FlagOrDefault("format", "markdown") != "json" {
		t.Error("FlagOrDefault should return actual value when present")
	}
	if parser.FlagOrDefault("out", ".") != "." {
		t.Error("FlagOrDefault should return default when missing")
	}
}

// =============================================================================
// BENCHMARKS
// =============================================================================

func BenchmarkArgParser_Rank(b *testing.B) {
	args := []string{"a.pdf", "b.docx", "--jd", "golang kubernetes", "--csv", "--html", "report.html"}
	for i := 0; i < b.N; i++ {
		NewArgParser(args, "csv", "json")
	}
}
