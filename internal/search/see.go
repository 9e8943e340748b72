// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"github.com/dstrand/corvid/internal/attacks"
	"github.com/dstrand/corvid/internal/position"
	. "github.com/dstrand/corvid/internal/types"
)

// see runs a static exchange evaluation of move on p: it replays the
// full capture sequence on the target square, attacker least-valuable-
// first on each side, and returns the net material gain for the side
// making move. Used by quiescence search to filter losing captures
// out of the move loop before they are ever played.
func see(p *position.Position, move Move) Value {
	if move.IsEnPassant() {
		return 100
	}

	var gain [32]Value
	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.PieceAt(fromSquare)
	nextPlayer := p.SideToMove()

	occupied := p.OccupiedAll()
	remaining := attacksTo(p, toSquare, occupied, White) | attacksTo(p, toSquare, occupied, Black)

	gain[ply] = PieceValue[p.PieceAt(toSquare).TypeOf()]

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		if move.IsPromotion() && ply == 1 {
			gain[ply] = PieceValue[move.PromotionType()] - PieceValue[Pawn] - gain[ply-1]
		} else {
			gain[ply] = PieceValue[movedPiece.TypeOf()] - gain[ply-1]
		}

		if maxValue(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remaining = remaining.Clear(fromSquare)
		occupied = occupied.Clear(fromSquare)

		remaining |= revealedAttacks(p, toSquare, occupied, White) | revealedAttacks(p, toSquare, occupied, Black)

		fromSquare = leastValuableAttacker(p, remaining, nextPlayer)
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.PieceAt(fromSquare)
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -maxValue(-gain[ply-1], gain[ply])
		ply--
	}
	return gain[0]
}

// attacksTo returns every square occupied by a piece of color c that
// attacks square, given occupied as the board's current occupancy.
func attacksTo(p *position.Position, square Square, occupied Bitboard, c Color) Bitboard {
	return (attacks.PawnAttacks(c.Flip(), square) & p.PiecesBb(c, Pawn)) |
		(attacks.KnightAttacks(square) & p.PiecesBb(c, Knight)) |
		(attacks.KingAttacks(square) & p.PiecesBb(c, King)) |
		(attacks.RookAttacks(square, occupied) & (p.PiecesBb(c, Rook) | p.PiecesBb(c, Queen))) |
		(attacks.BishopAttacks(square, occupied) & (p.PiecesBb(c, Bishop) | p.PiecesBb(c, Queen)))
}

// revealedAttacks returns just the sliding attacks on square given the
// reduced occupancy - called after an attacker is removed from the
// exchange to surface any x-ray attacker behind it.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, c Color) Bitboard {
	return (attacks.RookAttacks(square, occupied) & (p.PiecesBb(c, Rook) | p.PiecesBb(c, Queen)) & occupied) |
		(attacks.BishopAttacks(square, occupied) & (p.PiecesBb(c, Bishop) | p.PiecesBb(c, Queen)) & occupied)
}

// leastValuableAttacker returns the square of c's cheapest remaining
// attacker in bb, or SqNone if c has none left.
func leastValuableAttacker(p *position.Position, bb Bitboard, c Color) Square {
	for pt := Pawn; pt <= King; pt++ {
		if hits := bb & p.PiecesBb(c, pt); hits != BbZero {
			return hits.Lsb()
		}
	}
	return SqNone
}

func maxValue(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
