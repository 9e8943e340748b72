// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstrand/corvid/internal/movegen"
	"github.com/dstrand/corvid/internal/position"
	. "github.com/dstrand/corvid/internal/types"
)

func TestSavePV(t *testing.T) {
	src := *movegen.NewMoveList(10)
	dest := movegen.NewMoveList(10)

	src.PushBack(Move(1234))
	src.PushBack(Move(2345))
	src.PushBack(Move(3456))
	src.PushBack(Move(4567))

	savePV(Move(9999), src, dest)

	assert.EqualValues(t, 5, dest.Len())
	assert.EqualValues(t, 9999, dest.At(0))
	assert.EqualValues(t, 4567, dest.At(4))
}

func TestValueToFromTTRoundTripsNonMateScores(t *testing.T) {
	assert.EqualValues(t, Value(37), valueFromTT(valueToTT(Value(37), 5), 5))
	assert.EqualValues(t, Value(0), valueFromTT(valueToTT(Value(0), 12), 12))
}

func TestValueToTTAdjustsMateDistance(t *testing.T) {
	// A mate found 3 plies below ply 5 is stored as "mate at the root",
	// i.e. further from the root than it is from this node.
	stored := valueToTT(ValueMate-3, 5)
	assert.EqualValues(t, ValueMate-3+5, stored)
	assert.EqualValues(t, ValueMate-3, valueFromTT(stored, 5))
}

func TestForcedMateIsFound(t *testing.T) {
	s := NewSearch()
	p, err := position.NewPositionFen(testNet(), "8/8/8/8/8/3K4/R7/5k2 w - - 0 1")
	require.NoError(t, err)
	sl := NewSearchLimits()
	sl.Depth = 8
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	assert.GreaterOrEqual(t, result.BestValue, ValueMateIn)
}

func TestStalematePositionIsDraw(t *testing.T) {
	s := NewSearch()
	p, err := position.NewPositionFen(testNet(), "7k/8/6Q1/8/8/8/8/3K4 b - - 0 1")
	require.NoError(t, err)
	sl := NewSearchLimits()
	sl.Depth = 1
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	assert.EqualValues(t, ValueDraw, result.BestValue)
}

func TestTacticalRookLiftFindsBestMove(t *testing.T) {
	s := NewSearch()
	p, err := position.NewPositionFen(testNet(), "kbK5/pp6/1P6/8/8/8/8/R7 w - - 0 1")
	require.NoError(t, err)
	sl := NewSearchLimits()
	sl.Depth = 6
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	assert.Equal(t, "a1a6", result.BestMove.StringUci())
}

func TestTacticalBackRankFindsBestMove(t *testing.T) {
	s := NewSearch()
	p, err := position.NewPositionFen(testNet(), "4k3/Q6n/8/8/8/8/PR5P/4K1NR w K - 0 1")
	require.NoError(t, err)
	sl := NewSearchLimits()
	sl.Depth = 6
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	assert.Equal(t, "b2b8", result.BestMove.StringUci())
}
