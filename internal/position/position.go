// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package position represents a chess position as bitboards plus a
// denormalised 8x8 piece array for O(1) lookup, with a stack-based
// make/unmake protocol, an incrementally maintained Zobrist key and an
// incrementally maintained NNUE accumulator. Create one with
// NewPosition() (startpos) or NewPositionFen(fen).
package position

import (
	"github.com/dstrand/corvid/internal/assert"
	"github.com/dstrand/corvid/internal/attacks"
	"github.com/dstrand/corvid/internal/nnue"
	. "github.com/dstrand/corvid/internal/types"
)

// StartFen is the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// maxPlyHistory bounds the pre-reserved history stack: deepest
// iterative-deepening ply the search is configured to reach, plus the
// moves already played to reach the current position.
const maxPlyHistory = 1024

// PlyInfo is one history-stack entry, pushed by DoMove and popped by
// UndoMove. It carries everything DoMove destructively overwrote, so
// UndoMove can restore it exactly without recomputing from scratch.
type PlyInfo struct {
	move             Move
	capturedPiece    Piece
	priorCastling    CastlingRights
	priorEnPassant   Square
	priorHalfmove    int
	priorZobrist     Key
	priorAccumulator nnue.Accumulator
}

// Position is the complete mutable state of a chess game in progress.
// Zero value is not usable - build one with NewPosition/NewPositionFen.
type Position struct {
	net *nnue.Network

	pieceBb  [PieceLength]Bitboard
	occupied [ColorLength]Bitboard
	occupiedAll Bitboard
	board    [SqLength]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	kingSquare      [ColorLength]Square

	checkers Bitboard
	pinned   Bitboard
	pinRay   [SqLength]Bitboard

	zobristKey Key
	accum      nnue.Accumulator

	history []PlyInfo
}

// NewPosition returns the standard starting position.
func NewPosition(net *nnue.Network) *Position {
	p, err := NewPositionFen(net, StartFen)
	if err != nil {
		panic("corvid: built-in start FEN failed to parse: " + err.Error())
	}
	return p
}

// NewPositionFen parses fen into a fresh Position using net for its
// NNUE accumulator. Returns a FenError on malformed input; the caller
// (the UCI driver) is expected to leave any existing position
// unchanged on error, per spec.md §7.
func NewPositionFen(net *nnue.Network, fen string) (*Position, error) {
	p := &Position{
		net:     net,
		accum:   nnue.NewAccumulator(net.HiddenDim()),
		history: make([]PlyInfo, 0, maxPlyHistory),
	}
	if err := p.setupFromFen(fen); err != nil {
		return nil, err
	}
	return p, nil
}

// ZobristKey returns the position's incrementally maintained Zobrist
// hash.
func (p *Position) ZobristKey() Key { return p.zobristKey }

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// PieceAt returns the piece on sq, or PieceNone.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.pieceBb[MakePiece(c, pt)]
}

// OccupiedBy returns the aggregate bitboard of all pieces of color c.
func (p *Position) OccupiedBy(c Color) Bitboard { return p.occupied[c] }

// OccupiedAll returns the aggregate bitboard of every piece on the
// board.
func (p *Position) OccupiedAll() Bitboard { return p.occupiedAll }

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square { return p.kingSquare[c] }

// CastlingRights returns the current castling rights mask.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en-passant target square, or
// SqNone.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// HalfmoveClock returns the number of plies since the last pawn move
// or capture.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// Checkers returns the bitboard of pieces currently attacking the
// side-to-move's king (computed on demand by ComputeChecksAndPins).
func (p *Position) Checkers() Bitboard { return p.checkers }

// InCheck reports whether the side to move's king is currently
// attacked.
func (p *Position) InCheck() bool { return p.checkers != BbZero }

// IsPinned reports whether the piece on sq is absolutely pinned to
// its own king, and if so returns the ray of squares it may legally
// move along (including the pinning piece's square).
func (p *Position) IsPinned(sq Square) (pinned bool, ray Bitboard) {
	if !p.pinned.Has(sq) {
		return false, BbZero
	}
	return true, p.pinRay[sq]
}

// Accumulator exposes the NNUE accumulator for the evaluator; callers
// must not mutate it directly.
func (p *Position) Accumulator() *nnue.Accumulator { return &p.accum }

// Evaluate runs the NNUE forward pass on the position's current
// accumulator from the side-to-move's perspective.
func (p *Position) Evaluate() Value {
	return p.net.Evaluate(&p.accum, p.sideToMove)
}

// NonPawnMaterial sums the static piece values of every non-pawn,
// non-king piece color c controls - used by the search's null-move
// zugzwang guard (a side with only king and pawns left is the classic
// case where passing the move is actually better than any move).
func (p *Position) NonPawnMaterial(c Color) Value {
	var total Value
	for pt := Knight; pt <= Queen; pt++ {
		total += PieceValue[pt] * Value(p.PiecesBb(c, pt).PopCount())
	}
	return total
}

// LastMove returns the most recently made move, or MoveNone if no
// moves have been made since construction or RestorePlyInfo.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return MoveNone
	}
	return p.history[len(p.history)-1].move
}

// RestorePlyInfo clears the history stack, making the current position
// the root for threefold-repetition detection. The UCI driver does not
// call it: a position set up with "position ... moves" keeps every
// applied move in its history.
func (p *Position) RestorePlyInfo() {
	p.history = p.history[:0]
}

func init() {
	attacks.Init()
}

func (p *Position) assertInvariants() {
	if !assert.DEBUG {
		return
	}
	var all Bitboard
	for pc := WhitePawn; pc <= WhiteKing; pc++ {
		all |= p.pieceBb[pc]
	}
	for pc := BlackPawn; pc <= BlackKing; pc++ {
		all |= p.pieceBb[pc]
	}
	assert.Assert(all == p.occupiedAll, "aggregate bitboard out of sync with piece bitboards")
	assert.Assert(p.pieceBb[MakePiece(White, King)].PopCount() == 1, "white must have exactly one king")
	assert.Assert(p.pieceBb[MakePiece(Black, King)].PopCount() == 1, "black must have exactly one king")
}
