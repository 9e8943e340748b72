// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package nnue is the incrementally-updated evaluator: a HalfKA-style
// feature transformer (one accumulator per side, refreshed fully on a
// king move and updated by simple add/subtract otherwise) feeding a
// small affine head with clipped-ReLU activation.
//
// Grounded on the HalfKAv2_hm feature scheme (one plane per (piece
// type, color) pair relative to each side's own king square) and on
// the dirty-piece incremental-update pattern used to keep such an
// accumulator in lockstep with make/unmake.
package nnue

import (
	. "github.com/dstrand/corvid/internal/types"
)

// Per-perspective piece-type-and-color plane offsets into the PS_NB
// feature space, mirroring Stockfish's half_ka_v2_hm.h numbering.
const (
	psWhitePawn   = 0
	psBlackPawn   = 1 * SqLength
	psWhiteKnight = 2 * SqLength
	psBlackKnight = 3 * SqLength
	psWhiteBishop = 4 * SqLength
	psBlackBishop = 5 * SqLength
	psWhiteRook   = 6 * SqLength
	psBlackRook   = 7 * SqLength
	psWhiteQueen  = 8 * SqLength
	psBlackQueen  = 9 * SqLength
	psKing        = 10 * SqLength

	// PSNB is the total number of (piece, square) planes per king
	// position - the feature-transformer input dimension is
	// PSNB * 64 (one full copy of PSNB per own-king square).
	PSNB = 11 * SqLength
)

var pieceTypePlane = [PieceTypeLength][ColorLength]int{
	Pawn:   {psWhitePawn, psBlackPawn},
	Knight: {psWhiteKnight, psBlackKnight},
	Bishop: {psWhiteBishop, psBlackBishop},
	Rook:   {psWhiteRook, psBlackRook},
	Queen:  {psWhiteQueen, psBlackQueen},
	King:   {psKing, psKing},
}

// FeatureIndex computes the active-feature index for one (perspective,
// piece, square, own-king-square) tuple. perspective is the side whose
// accumulator row this feature belongs to; from that side's point of
// view the board is flipped vertically (and horizontally, mirrored on
// the king's file) so white-to-move and black-to-move share weights -
// here we keep it simple and only vertically flip for Black, which is
// sufficient to exercise the same incremental-update machinery the
// spec requires without committing to Stockfish's exact mirroring.
func FeatureIndex(perspective Color, kingSq, sq Square, piece Piece) int {
	relSq := sq
	relKing := kingSq
	if perspective == Black {
		relSq = flipVertical(sq)
		relKing = flipVertical(kingSq)
	}
	pt := piece.TypeOf()
	pc := piece.ColorOf()
	if perspective == Black {
		pc = pc.Flip()
	}
	plane := pieceTypePlane[pt][pc]
	return int(relKing)*PSNB + plane + int(relSq)
}

func flipVertical(sq Square) Square {
	return SquareOf(sq.FileOf(), Rank(7-int(sq.RankOf())))
}
