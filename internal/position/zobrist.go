// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package position

import (
	. "github.com/dstrand/corvid/internal/types"
)

// zobristSeed is fixed so that every run of the engine (and every run
// of the test suite) agrees on the same keys - required by spec.md §5's
// determinism guarantee and by the incremental/from-scratch Zobrist
// equality invariant in spec.md §8.
const zobristSeed uint64 = 5489146897323

// zobrist table layout: 16 pieces * 64 squares, then 16 castling-
// rights masks, then 9 en-passant numbers (one per file, the ninth
// unused), then 1 side-to-move number.
// The piece numbers are indexed directly by Piece (0..15), so
// WhitePawn..WhiteKing and BlackPawn..BlackKing each get a contiguous
// run of 64 random numbers; the values the Piece encoding never uses
// (0, 7, 8 and 15) simply waste four rows, which is harmless.
var (
	zobristPiece   [PieceLength][SqLength]Key
	zobristCastle  [16]Key
	zobristEnPassant [FileLength + 1]Key
	zobristSideToMove Key
)

func init() {
	rng := newSplitMix64(zobristSeed)
	for pc := Piece(0); pc < PieceLength; pc++ {
		for sq := SqA1; sq < SqNone; sq++ {
			zobristPiece[pc][sq] = Key(rng.next())
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = Key(rng.next())
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = Key(rng.next())
	}
	zobristSideToMove = Key(rng.next())
}

// splitMix64 is a minimal, seedable, reproducible PRNG - any such
// generator will do for Zobrist numbers, the only requirement is that
// a fixed seed always reproduces the same sequence.
type splitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) *splitMix64 { return &splitMix64{state: seed} }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// zobristOf computes a position's key entirely from scratch, used
// only to validate the incremental key in debug builds (spec.md §8's
// "incremental_zobrist == recompute_zobrist_from_scratch" property).
func (p *Position) zobristOf() Key {
	var k Key
	for sq := SqA1; sq < SqNone; sq++ {
		if pc := p.board[sq]; pc != PieceNone {
			k ^= zobristPiece[pc][sq]
		}
	}
	k ^= zobristCastle[p.castlingRights]
	if p.enPassantSquare != SqNone {
		k ^= zobristEnPassant[p.enPassantSquare.FileOf()]
	}
	if p.sideToMove == Black {
		k ^= zobristSideToMove
	}
	return k
}
