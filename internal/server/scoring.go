// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================================
// SCORE EXTRACTION
// ============================================================================

// DefaultScore is used when an analysis carries no recognizable score.
const DefaultScore = 50.0

// scorePattern finds "85/100", "85%" or "85 out of 100".
var scorePattern = regexp.MustCompile(`(?i)(\d{1,3})(?:/100|%|\s*out of 100)`)

// ExtractScore returns the first score found in analysis, or DefaultScore.
func ExtractScore(analysis string) float64 {
	m := scorePattern.FindStringSubmatch(analysis)
	if m == nil {
		return DefaultScore
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DefaultScore
	}
	return n
}

// ============================================================================
// ANALYZERS
// ============================================================================

// Analyzer produces a markdown analysis of a resume. When jobDescription is
// empty the analysis is general rather than a match.
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, resumeText string) (string, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, jobDescription, resumeText string) (string, error)

// Analyze implements Analyzer.
func (f AnalyzerFunc) Analyze(ctx context.Context, jobDescription, resumeText string) (string, error) {
	return f(ctx, jobDescription, resumeText)
}

// KeywordAnalyzer scores a resume by how many job description keywords it
// mentions. The same inputs always produce the same analysis.
type KeywordAnalyzer struct {
	// MinKeywordLen is the shortest word counted as a keyword.
	MinKeywordLen int
}

// stopWords are common words that never count as keywords.
var stopWords = map[string]bool{
	"about": true, "also": true, "and": true, "are": true, "been": true,
	"candidate": true, "experience": true, "from": true, "have": true,
	"looking": true, "must": true, "should": true, "that": true, "their": true,
	"them": true, "they": true, "this": true, "will": true, "with": true,
	"work": true, "years": true, "your": true, "able": true, "team": true,
	"strong": true, "knowledge": true, "plus": true, "role": true,
	"for": true, "the": true, "you": true, "our": true, "who": true,
	"any": true, "all": true, "has": true, "can": true, "into": true,
}

// Analyze implements Analyzer.
func (k KeywordAnalyzer) Analyze(ctx context.Context, jobDescription, resumeText string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resumeWords := wordSet(resumeText, 1)

	if strings.TrimSpace(jobDescription) == "" {
		return generalAnalysis(resumeText, resumeWords), nil
	}

	keywords := k.keywords(jobDescription)
	if len(keywords) == 0 {
		return generalAnalysis(resumeText, resumeWords), nil
	}

	var matched, missing []string
	for _, kw := range keywords {
		if resumeWords[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	score := int(math.Round(100 * float64(len(matched)) / float64(len(keywords))))

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Match Score**: %d/100\n\n", score)
	writeList(&sb, "Key Matching Skills", matched)
	writeList(&sb, "Missing Skills", missing)
	fmt.Fprintf(&sb, "**Recommendation**: %s\n", recommendation(score))
	return sb.String(), nil
}

func (k KeywordAnalyzer) keywords(jobDescription string) []string {
	minLen := k.MinKeywordLen
	if minLen <= 0 {
		minLen = 3
	}
	set := wordSet(jobDescription, minLen)
	out := make([]string, 0, len(set))
	for w := range set {
		if !stopWords[w] {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// generalAnalysis rates a resume without a job description by its breadth.
func generalAnalysis(resumeText string, words map[string]bool) string {
	score := len(words)
	if score > 100 {
		score = 100
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Overall Score**: %d out of 100\n\n", score)
	fmt.Fprintf(&sb, "**Experience Summary**: %d words, %d distinct terms.\n\n",
		len(strings.Fields(resumeText)), len(words))
	fmt.Fprintf(&sb, "**Recommendation**: %s\n", recommendation(score))
	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string) {
	fmt.Fprintf(sb, "**%s**\n", heading)
	if len(items) == 0 {
		sb.WriteString("- None\n\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
	sb.WriteString("\n")
}

func recommendation(score int) string {
	switch {
	case score >= 75:
		return "Hire"
	case score >= 50:
		return "Interview"
	default:
		return "Reject"
	}
}

// wordSet lowercases text and returns its words of at least minLen runes.
// Symbols inside words are kept so "c++" and "node.js" survive.
func wordSet(text string, minLen int) map[string]bool {
	set := make(map[string]bool)
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == ':' || r == '(' || r == ')' || r == '/'
	})
	for _, f := range fields {
		f = strings.Trim(f, ".!?\"'")
		if len([]rune(f)) >= minLen {
			set[f] = true
		}
	}
	return set
}
