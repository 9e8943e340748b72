// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package nnue

import (
	. "github.com/dstrand/corvid/internal/types"
)

// Accumulator is the feature-transformer's hidden layer, one row per
// perspective (White's view, Black's view). It is a flat field owned
// by and updated in lockstep with a position - never a separately
// allocated object the position merely points at.
type Accumulator struct {
	row [ColorLength][]int16
}

// NewAccumulator allocates an accumulator of hidden width h.
func NewAccumulator(h int) Accumulator {
	return Accumulator{row: [ColorLength][]int16{make([]int16, h), make([]int16, h)}}
}

// Clone deep-copies the accumulator, used by Position.DoMove/UndoMove
// to snapshot the pre-move state into PlyInfo for trivial, always-
// correct unmake: UndoMove restores the copy instead of reversing the
// feature diffs.
func (a Accumulator) Clone() Accumulator {
	out := Accumulator{row: [ColorLength][]int16{
		make([]int16, len(a.row[White])),
		make([]int16, len(a.row[Black])),
	}}
	copy(out.row[White], a.row[White])
	copy(out.row[Black], a.row[Black])
	return out
}

// Row returns the accumulator row for the given perspective.
func (a *Accumulator) Row(perspective Color) []int16 {
	return a.row[perspective]
}

// AddFeature adds the feature-transformer column for idx into the
// perspective row (a piece appeared on the board for that
// perspective).
func (a *Accumulator) AddFeature(net *Network, perspective Color, idx int) {
	col := net.featureWeights[idx]
	row := a.row[perspective]
	for i := range row {
		row[i] += col[i]
	}
}

// RemoveFeature subtracts the feature-transformer column for idx from
// the perspective row (a piece left the board, or moved away, for
// that perspective).
func (a *Accumulator) RemoveFeature(net *Network, perspective Color, idx int) {
	col := net.featureWeights[idx]
	row := a.row[perspective]
	for i := range row {
		row[i] -= col[i]
	}
}

// Refresh fully recomputes one perspective's row from scratch: bias
// plus every active feature's column. Used on load, on a king move
// (whose own-king-square shifts every feature index for that
// perspective) and to validate incremental updates in debug builds.
func (a *Accumulator) Refresh(net *Network, perspective Color, activeFeatures []int) {
	row := a.row[perspective]
	copy(row, net.featureBias)
	for _, idx := range activeFeatures {
		col := net.featureWeights[idx]
		for i := range row {
			row[i] += col[i]
		}
	}
}
