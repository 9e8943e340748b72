// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstrand/corvid/internal/position"
	. "github.com/dstrand/corvid/internal/types"
)

func startPosition(t *testing.T) *position.Position {
	t.Helper()
	p, err := position.NewPositionFen(testNet(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	return p
}

func TestIsReadyInitializesTT(t *testing.T) {
	s := NewSearch()
	s.IsReady()
	assert.NotNil(t, s.tt)
}

func TestSetupTimeControlSuddenDeath(t *testing.T) {
	s := NewSearch()
	p := startPosition(t)
	sl := &Limits{
		TimeControl: true,
		WhiteTime:   60 * time.Second,
		BlackTime:   60 * time.Second,
		WhiteInc:    2 * time.Second,
		BlackInc:    2 * time.Second,
	}
	limit := s.setupTimeControl(p, sl)
	assert.Greater(t, limit, time.Duration(0))
	assert.Less(t, limit, sl.WhiteTime)
}

func TestSetupTimeControlMovesToGo(t *testing.T) {
	s := NewSearch()
	p := startPosition(t)
	sl := &Limits{
		TimeControl: true,
		WhiteTime:   60 * time.Second,
		BlackTime:   60 * time.Second,
		MovesToGo:   20,
	}
	limit := s.setupTimeControl(p, sl)
	assert.Greater(t, limit, time.Duration(0))
}

func TestSetupTimeControlMoveTime(t *testing.T) {
	s := NewSearch()
	p := startPosition(t)
	sl := &Limits{
		TimeControl: true,
		MoveTime:    5 * time.Second,
	}
	limit := s.setupTimeControl(p, sl)
	assert.Less(t, limit, sl.MoveTime)
	assert.Greater(t, limit, time.Duration(0))
}

func TestWaitWhileSearchingBlocksUntilStopped(t *testing.T) {
	s := NewSearch()
	p := startPosition(t)
	sl := NewSearchLimits()
	sl.Infinite = true

	go func() {
		time.Sleep(200 * time.Millisecond)
		s.StopSearch()
	}()

	start := time.Now()
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()
	assert.GreaterOrEqual(t, time.Since(start).Milliseconds(), int64(150))
	assert.False(t, s.IsSearching())
}

func TestNewGameClearsTT(t *testing.T) {
	s := NewSearch()
	s.IsReady()
	p := startPosition(t)
	sl := NewSearchLimits()
	sl.Depth = 2
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()

	s.NewGame()
	assert.EqualValues(t, 0, s.tt.Len())
}

func TestClearHashRefusedWhileSearching(t *testing.T) {
	s := NewSearch()
	p := startPosition(t)
	sl := NewSearchLimits()
	sl.Infinite = true
	s.StartSearch(p, *sl)

	s.ClearHash()

	s.StopSearch()
}

func TestNodesVisitedIncreasesAfterSearch(t *testing.T) {
	s := NewSearch()
	p := startPosition(t)
	sl := NewSearchLimits()
	sl.Depth = 3
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()
	assert.Greater(t, s.NodesVisited(), uint64(0))
}

func TestResultStringHasBestMove(t *testing.T) {
	s := NewSearch()
	p := startPosition(t)
	sl := NewSearchLimits()
	sl.Depth = 2
	s.StartSearch(p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	assert.NotEqual(t, MoveNone, result.BestMove)
	assert.Contains(t, result.String(), "bestmove")
}
