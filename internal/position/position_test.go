// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dstrand/corvid/internal/nnue"
	. "github.com/dstrand/corvid/internal/types"
)

func testNet() *nnue.Network {
	return nnue.NewZeroNetwork(16)
}

func TestPositionCreationStartpos(t *testing.T) {
	p := NewPosition(testNet())

	assert.Equal(t, SqA1.Bb()|SqH1.Bb()|SqA8.Bb()|SqH8.Bb(), p.PiecesBb(White, Rook)|p.PiecesBb(Black, Rook))
	assert.Equal(t, SqB1.Bb()|SqG1.Bb()|SqB8.Bb()|SqG8.Bb(), p.PiecesBb(White, Knight)|p.PiecesBb(Black, Knight))
	assert.Equal(t, SqD1.Bb()|SqD8.Bb(), p.PiecesBb(White, Queen)|p.PiecesBb(Black, Queen))
	assert.Equal(t, SqE1.Bb()|SqE8.Bb(), p.PiecesBb(White, King)|p.PiecesBb(Black, King))
	assert.Equal(t, Rank2.Bb()|Rank7.Bb(), p.PiecesBb(White, Pawn)|p.PiecesBb(Black, Pawn))
	assert.Equal(t, White, p.SideToMove())
	assert.Equal(t, CastleAll, p.CastlingRights())
	assert.Equal(t, SqNone, p.EnPassantSquare())
	assert.Equal(t, 0, p.HalfmoveClock())
	assert.Equal(t, StartFen, p.Fen())
	assert.False(t, p.InCheck())
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(testNet(), fen)
		assert.NoError(t, err)
		assert.Equal(t, fen, p.Fen())
		assert.Equal(t, p.zobristOf(), p.ZobristKey())
	}
}

func TestFenRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1", // short rank
		"8/8/8/8/8/8/8/8 w - - 0 1",                                // no kings
		"kkkkkkkk/8/8/8/8/8/8/KKKKKKKK w - - 0 1",                 // eight kings per side
		"PPPPPPPP/rnbqkbnr/8/8/8/8/RNBQKBNR/pppppppp w - - 0 1",    // pawns on back ranks
	}
	for _, fen := range cases {
		_, err := NewPositionFen(testNet(), fen)
		assert.Error(t, err, fen)
		var fenErr *FenError
		assert.ErrorAs(t, err, &fenErr)
	}
}

func TestDoUndoMoveRestoresPosition(t *testing.T) {
	p := NewPosition(testNet())
	before := *p
	beforeBoard := p.board

	m := NewMove(SqE2, SqE4, MfDoublePawnPush)
	p.DoMove(m)
	assert.Equal(t, Black, p.SideToMove())
	assert.Equal(t, SqE3, p.EnPassantSquare())

	p.UndoMove()
	assert.Equal(t, before.sideToMove, p.sideToMove)
	assert.Equal(t, before.castlingRights, p.castlingRights)
	assert.Equal(t, before.enPassantSquare, p.enPassantSquare)
	assert.Equal(t, before.halfmoveClock, p.halfmoveClock)
	assert.Equal(t, before.zobristKey, p.zobristKey)
	assert.Equal(t, beforeBoard, p.board)
}

func TestDoUndoPromotion(t *testing.T) {
	p, err := NewPositionFen(testNet(), "4k3/P7/8/8/8/8/p7/4K3 w - - 0 1")
	assert.NoError(t, err)
	beforeKey := p.zobristKey

	m := NewMove(SqA7, SqA8, MfPromoQueen)
	p.DoMove(m)
	assert.Equal(t, WhiteQueen, p.PieceAt(SqA8))
	p.UndoMove()
	assert.Equal(t, beforeKey, p.zobristKey)
	assert.Equal(t, WhitePawn, p.PieceAt(SqA7))
	assert.Equal(t, PieceNone, p.PieceAt(SqA8))
}

func TestDoUndoEnPassant(t *testing.T) {
	p, err := NewPositionFen(testNet(), "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	assert.NoError(t, err)
	beforeKey := p.zobristKey

	m := NewMove(SqE5, SqD6, MfEnPassant)
	p.DoMove(m)
	assert.Equal(t, WhitePawn, p.PieceAt(SqD6))
	assert.Equal(t, PieceNone, p.PieceAt(SqD5))
	assert.Equal(t, PieceNone, p.PieceAt(SqE5))

	p.UndoMove()
	assert.Equal(t, beforeKey, p.zobristKey)
	assert.Equal(t, BlackPawn, p.PieceAt(SqD5))
	assert.Equal(t, WhitePawn, p.PieceAt(SqE5))
}

func TestDoUndoCastling(t *testing.T) {
	p, err := NewPositionFen(testNet(), "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	beforeKey := p.zobristKey
	beforeRights := p.castlingRights

	p.DoMove(NewMove(SqE1, SqG1, MfKingCastle))
	assert.Equal(t, WhiteKing, p.PieceAt(SqG1))
	assert.Equal(t, WhiteRook, p.PieceAt(SqF1))
	assert.False(t, p.castlingRights.Has(CastleWK))
	assert.False(t, p.castlingRights.Has(CastleWQ))

	p.UndoMove()
	assert.Equal(t, beforeKey, p.zobristKey)
	assert.Equal(t, beforeRights, p.castlingRights)
	assert.Equal(t, WhiteKing, p.PieceAt(SqE1))
	assert.Equal(t, WhiteRook, p.PieceAt(SqH1))
}

func TestInCheckAndPinDetection(t *testing.T) {
	// White king on e1 pinned queen on e2 to a black rook on e8.
	p, err := NewPositionFen(testNet(), "4r2k/8/8/8/8/8/4Q3/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.False(t, p.InCheck())
	pinned, ray := p.IsPinned(SqE2)
	assert.True(t, pinned)
	assert.True(t, ray.Has(SqE8))
}

func TestHasInsufficientMaterial(t *testing.T) {
	p, err := NewPositionFen(testNet(), "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p.HasInsufficientMaterial())

	p2, err := NewPositionFen(testNet(), "4k3/8/8/8/8/8/8/3NK3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p2.HasInsufficientMaterial())

	p3, err := NewPositionFen(testNet(), "4k3/8/8/8/8/8/8/2RNK3 w - - 0 1")
	assert.NoError(t, err)
	assert.False(t, p3.HasInsufficientMaterial())
}

func TestCheckRepetitions(t *testing.T) {
	p := NewPosition(testNet())
	knightDance := []Move{
		NewMove(SqG1, SqF3, MfQuiet),
		NewMove(SqG8, SqF6, MfQuiet),
		NewMove(SqF3, SqG1, MfQuiet),
		NewMove(SqF6, SqG8, MfQuiet),
	}
	for rep := 0; rep < 2; rep++ {
		for _, m := range knightDance {
			p.DoMove(m)
		}
	}
	assert.True(t, p.CheckRepetitions(3)) // start position recurs after move 4 and again after move 8
}
