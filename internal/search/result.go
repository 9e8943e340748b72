// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"fmt"
	"time"

	"github.com/dstrand/corvid/internal/movegen"
	. "github.com/dstrand/corvid/internal/types"
)

// Result is what a finished (or stopped) search hands back to its
// caller: the move to play, the move to ponder on, and enough
// bookkeeping to build the UCI "bestmove"/"info" lines.
type Result struct {
	BestMove    Move
	BestValue   Value
	PonderMove  Move
	SearchTime  time.Duration
	SearchDepth int
	ExtraDepth  int
	Pv          movegen.MoveList
}

func (r *Result) String() string {
	return fmt.Sprintf("bestmove %s ponder %s value %d depth %d/%d time %s",
		r.BestMove.StringUci(), r.PonderMove.StringUci(), r.BestValue, r.SearchDepth, r.ExtraDepth, r.SearchTime)
}
