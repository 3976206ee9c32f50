// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jeranaias/talentdesk/internal/markup"
)

// =============================================================================
// SVG CANVAS
// =============================================================================

// SVGCanvas records drawing calls as SVG elements.
type SVGCanvas struct {
	width, height float64
	gradients     []Gradient
	elements      []string
}

// NewSVGCanvas returns an empty canvas of the given size.
func NewSVGCanvas(width, height float64) *SVGCanvas {
	return &SVGCanvas{width: width, height: height}
}

// Size implements Canvas.
func (s *SVGCanvas) Size() (float64, float64) {
	return s.width, s.height
}

// Clear implements Canvas.
func (s *SVGCanvas) Clear() {
	s.gradients = nil
	s.elements = nil
}

// FillRect implements Canvas. Rectangles with no area are skipped because
// SVG rejects negative sizes.
func (s *SVGCanvas) FillRect(x, y, w, h float64, fill Gradient) {
	if w <= 0 || h <= 0 {
		return
	}
	id := fmt.Sprintf("bar-gradient-%d", len(s.gradients))
	s.gradients = append(s.gradients, fill)
	s.elements = append(s.elements, fmt.Sprintf(
		`<rect x="%s" y="%s" width="%s" height="%s" fill="url(#%s)"/>`,
		num(x), num(y), num(w), num(h), id))
}

// FillText implements Canvas.
func (s *SVGCanvas) FillText(text string, x, y float64, font Font, color string) {
	weight := ""
	if font.Weight != "" {
		weight = fmt.Sprintf(` font-weight="%s"`, font.Weight)
	}
	s.elements = append(s.elements, fmt.Sprintf(
		`<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%dpx"%s fill="%s">%s</text>`,
		num(x), num(y), font.Family, font.SizePx, weight, color, markup.EscapeHTML(text)))
}

// String returns the complete SVG document.
func (s *SVGCanvas) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(s.width), num(s.height), num(s.width), num(s.height)))
	sb.WriteString("\n")

	if len(s.gradients) > 0 {
		sb.WriteString("<defs>\n")
		for i, g := range s.gradients {
			sb.WriteString(fmt.Sprintf(
				`<linearGradient id="bar-gradient-%d" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+
					`<stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient>`,
				i, num(g.From.X), num(g.From.Y), num(g.To.X), num(g.To.Y), g.Start, g.End))
			sb.WriteString("\n")
		}
		sb.WriteString("</defs>\n")
	}

	for _, el := range s.elements {
		sb.WriteString(el)
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
