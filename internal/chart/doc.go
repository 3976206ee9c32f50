// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chart draws the resume score bar chart.
//
// Layout computes bar geometry from the results and the canvas size; Draw
// replays that geometry onto any Canvas. SVGCanvas produces markup for HTML
// reports, and RenderTerminal draws horizontal bars for the terminal.
//
// Output is deterministic: identical results on an identically sized canvas
// produce identical drawing calls. There is no axis or legend.
package chart
