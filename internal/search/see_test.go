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

	"github.com/dstrand/corvid/internal/nnue"
	"github.com/dstrand/corvid/internal/position"
	. "github.com/dstrand/corvid/internal/types"
)

func testNet() *nnue.Network {
	return nnue.NewZeroNetwork(16)
}

func TestSeePawnTakesUndefendedPawn(t *testing.T) {
	p, err := position.NewPositionFen(testNet(), "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	move := NewMove(SqE4, SqD5, MfCapture)
	assert.EqualValues(t, PieceValue[Pawn], see(p, move))
}

func TestSeeQueenTakesPawnDefendedByPawnLoses(t *testing.T) {
	p, err := position.NewPositionFen(testNet(), "4k3/8/2p5/3p4/4Q3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	move := NewMove(SqE4, SqD5, MfCapture)
	assert.Less(t, see(p, move), Value(0))
}

func TestSeeEnPassantReturnsPawnValue(t *testing.T) {
	p, err := position.NewPositionFen(testNet(), "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)

	move := NewMove(SqE5, SqD6, MfEnPassant)
	assert.EqualValues(t, Value(100), see(p, move))
}

func TestLeastValuableAttackerPrefersPawnOverKnight(t *testing.T) {
	p, err := position.NewPositionFen(testNet(), "4k3/8/1n2p3/8/8/8/8/4KR2 b - - 0 1")
	require.NoError(t, err)

	occ := p.OccupiedAll()
	bb := attacksTo(p, SqD5, occ, Black)
	assert.Equal(t, SqE6, leastValuableAttacker(p, bb, Black))
}

func TestLeastValuableAttackerNoneLeft(t *testing.T) {
	p, err := position.NewPositionFen(testNet(), "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	bb := attacksTo(p, SqE4, p.OccupiedAll(), White)
	assert.Equal(t, SqNone, leastValuableAttacker(p, bb, White))
}
