// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"time"

	"github.com/dstrand/corvid/internal/movegen"
)

// Limits bundles everything the UCI "go" command can restrict a
// search by. A Limits with every field zero searches to the configured
// maximum depth (config.Settings.Search.MaxDepth) - it is the caller's
// job to set at least one bound.
type Limits struct {
	Infinite bool
	Ponder   bool
	Mate     int

	Depth int
	Nodes uint64
	Moves movegen.MoveList

	TimeControl bool
	WhiteTime   time.Duration
	BlackTime   time.Duration
	WhiteInc    time.Duration
	BlackInc    time.Duration
	MoveTime    time.Duration
	MovesToGo   int
}

// NewSearchLimits returns an empty Limits ready for the caller to
// populate from a parsed "go" command.
func NewSearchLimits() *Limits {
	return &Limits{}
}
