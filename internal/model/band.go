// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"math"
	"strconv"
)

// =============================================================================
// SCORE BANDS
// =============================================================================

// ScoreBand classifies a resume score for display. Lower bounds are
// inclusive: 80 is green, 60 is amber, 40 is orange.
type ScoreBand int

const (
	BandRed ScoreBand = iota
	BandOrange
	BandAmber
	BandGreen
)

// BandFor returns the band for score.
func BandFor(score float64) ScoreBand {
	switch {
	case score >= 80:
		return BandGreen
	case score >= 60:
		return BandAmber
	case score >= 40:
		return BandOrange
	default:
		return BandRed
	}
}

// FormatScore renders score with the given number of decimals, rounding
// halves up (72.5 -> "73", 72.25 -> "72.3").
func FormatScore(score float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	rounded := math.Floor(score*scale+0.5) / scale
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}

// String returns the band name.
func (b ScoreBand) String() string {
	switch b {
	case BandGreen:
		return "green"
	case BandAmber:
		return "amber"
	case BandOrange:
		return "orange"
	default:
		return "red"
	}
}

// Gradient returns the CSS background used for the score badge.
func (b ScoreBand) Gradient() string {
	switch b {
	case BandGreen:
		return "linear-gradient(135deg, #4ade80 0%, #22c55e 100%)"
	case BandAmber:
		return "linear-gradient(135deg, #fbbf24 0%, #f59e0b 100%)"
	case BandOrange:
		return "linear-gradient(135deg, #fb923c 0%, #f97316 100%)"
	default:
		return "linear-gradient(135deg, #ef4444 0%, #dc2626 100%)"
	}
}

// Color returns the solid end color of the band's gradient.
func (b ScoreBand) Color() string {
	switch b {
	case BandGreen:
		return "#22c55e"
	case BandAmber:
		return "#f59e0b"
	case BandOrange:
		return "#f97316"
	default:
		return "#dc2626"
	}
}
