// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderPlain_ReplacesFences(t *testing.T) {
	text := "Here you go:\n```go\nfmt.Println(1)\n```\nDone."
	out := RenderPlain(text, 60, false)

	assert.Contains(t, out, "Here you go:")
	assert.Contains(t, out, "Done.")
	assert.Contains(t, out, "fmt.Println(1)")
	assert.Contains(t, out, "go")
	assert.NotContains(t, out, "```")
}

func TestRenderPlain_UnclosedFence(t *testing.T) {
	out := RenderPlain("```\nline one\nline two", 60, false)
	assert.Contains(t, out, "line one")
	assert.Contains(t, out, "line two")
	assert.NotContains(t, out, "```")
}

func TestRenderPlain_NoFences(t *testing.T) {
	assert.Equal(t, "a\nb", RenderPlain("a\nb", 60, false))
}

func TestCodeBlock_LineNumbers(t *testing.T) {
	out := CodeBlock{Code: "a\nb\nc", MaxWidth: 40}.Render()
	for _, n := range []string{"1", "2", "3"} {
		assert.Contains(t, out, n)
	}
	assert.Equal(t, 3+2, len(strings.Split(out, "\n")))
}

func TestHighlightCode_KeepsText(t *testing.T) {
	out := highlightCode("package main", "go")
	assert.Contains(t, out, "package")
	assert.Contains(t, out, "main")
}

func TestMarkdownRenderer_Disabled(t *testing.T) {
	r := NewMarkdownRenderer(false, true)
	assert.Equal(t, "**bold**", r.Render("**bold**", 80))
}

func TestMarkdownRenderer_Glamour(t *testing.T) {
	r := NewMarkdownRenderer(true, true)
	out := ansiPattern.ReplaceAllString(r.Render("**Match Score**: 85/100", 60), "")
	assert.Contains(t, out, "Match Score")
	assert.NotContains(t, out, "**")

	// Same width reuses the renderer.
	first := r.renderer
	r.Render("again", 60)
	assert.Same(t, first, r.renderer)
	r.Render("again", 70)
	assert.NotSame(t, first, r.renderer)
}
