// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"fmt"

	"github.com/dstrand/corvid/internal/movegen"
	. "github.com/dstrand/corvid/internal/types"
)

// Statistics accumulates counters over one search run, used for UCI
// "info string" reporting and for judging whether a pruning technique
// is pulling its weight during tuning.
type Statistics struct {
	NullMoveCuts    uint64
	NMPMateAlpha    uint64
	NMPMateBeta     uint64
	CheckExtension  uint64
	LmrReductions   uint64
	LmrResearches   uint64
	PvsResearches   uint64
	RootPvsResearches uint64

	TTHit     uint64
	TTMiss    uint64
	TTMoveUsed uint64
	NoTTMove  uint64
	TTCuts    uint64
	TTNoCuts  uint64

	BetaCuts    uint64
	BetaCuts1st uint64
	StandpatCuts uint64
	Mdp         uint64

	Checkmates uint64
	Stalemates uint64

	Evaluations       uint64
	EvaluationsFromTT uint64
	LeafPositionsEvaluated uint64
	CheckInQS uint64

	CurrentIterationDepth    int
	CurrentSearchDepth       int
	CurrentExtraSearchDepth  int
	CurrentVariation         movegen.MoveList
	CurrentRootMoveIndex     int
	CurrentRootMove          Move
	CurrentBestRootMove      Move
	CurrentBestRootMoveValue Value
}

func (s *Statistics) String() string {
	return fmt.Sprintf("tthit=%d ttmiss=%d ttcuts=%d betacuts=%d(%d 1st) nullcuts=%d "+
		"lmrreductions=%d pvsresearches=%d standpatcuts=%d checkmates=%d stalemates=%d evals=%d(%d from tt)",
		s.TTHit, s.TTMiss, s.TTCuts, s.BetaCuts, s.BetaCuts1st, s.NullMoveCuts,
		s.LmrReductions, s.PvsResearches, s.StandpatCuts, s.Checkmates, s.Stalemates,
		s.Evaluations, s.EvaluationsFromTT)
}
