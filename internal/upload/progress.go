// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"time"
)

// Simulated progress defaults.
const (
	DefaultProgressStep     = 5
	DefaultProgressInterval = 300 * time.Millisecond
	ProgressCap             = 90
	ProgressDone            = 100

	// ResultsDelay is how long the finished bar stays before results show.
	ResultsDelay = 500 * time.Millisecond
)

// Progress is a simulated upload indicator. It advances by Step on every
// tick but never displays more than ProgressCap until Finish is called.
type Progress struct {
	Step     int
	Interval time.Duration

	value    int
	shown    int
	finished bool
}

// NewProgress returns a progress indicator with the given step and
// interval; zero values select the defaults.
func NewProgress(step int, interval time.Duration) *Progress {
	if step <= 0 {
		step = DefaultProgressStep
	}
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &Progress{Step: step, Interval: interval}
}

// Tick advances the counter and returns the value to display.
func (p *Progress) Tick() int {
	if p.finished {
		return p.shown
	}
	p.value += p.Step
	if p.value <= ProgressCap {
		p.shown = p.value
	}
	return p.shown
}

// Finish jumps the display to 100.
func (p *Progress) Finish() {
	p.finished = true
	p.shown = ProgressDone
}

// Value returns the displayed percentage.
func (p *Progress) Value() int {
	return p.shown
}

// Fraction returns the displayed value in [0, 1].
func (p *Progress) Fraction() float64 {
	return float64(p.shown) / ProgressDone
}

// Done reports whether Finish has been called.
func (p *Progress) Done() bool {
	return p.finished
}

// Run ticks until ctx is done, calling onTick with each displayed value.
func (p *Progress) Run(ctx context.Context, onTick func(int)) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			onTick(p.Tick())
		}
	}
}
