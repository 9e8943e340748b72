// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package position

import (
	"github.com/dstrand/corvid/internal/attacks"
	. "github.com/dstrand/corvid/internal/types"
)

// IsAttacked reports whether sq is attacked by any piece of color by,
// using the current board occupancy.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, p.occupiedAll)&p.occupied[by] != BbZero
}

// IsAttackedWithOccupancy reports whether sq would be attacked by color
// by given a hypothetical occupancy occ, rather than the board's
// actual occupancy. Used by the move generator for king moves (the
// king's own square must be removed from occ so a slider x-rays
// through it) and for en-passant's rare horizontal-discovered-check
// check (both the capturing and captured pawn vacate the rank at
// once, which the per-square pin mask does not model).
func (p *Position) IsAttackedWithOccupancy(sq Square, by Color, occ Bitboard) bool {
	return p.attackersTo(sq, occ)&p.occupied[by]&occ != BbZero
}

// attackersTo returns every piece (of either color) attacking sq given
// occupancy occ. occ is passed explicitly so callers can probe a
// hypothetical board (e.g. the king's own square removed, so a slider
// attack x-rays through it when testing king moves).
func (p *Position) attackersTo(sq Square, occ Bitboard) Bitboard {
	var att Bitboard
	att |= attacks.KnightAttacks(sq) & (p.PiecesBb(White, Knight) | p.PiecesBb(Black, Knight))
	att |= attacks.KingAttacks(sq) & (p.PiecesBb(White, King) | p.PiecesBb(Black, King))
	att |= attacks.PawnAttacks(White, sq) & p.PiecesBb(Black, Pawn)
	att |= attacks.PawnAttacks(Black, sq) & p.PiecesBb(White, Pawn)
	rookLike := p.PiecesBb(White, Rook) | p.PiecesBb(White, Queen) | p.PiecesBb(Black, Rook) | p.PiecesBb(Black, Queen)
	bishopLike := p.PiecesBb(White, Bishop) | p.PiecesBb(White, Queen) | p.PiecesBb(Black, Bishop) | p.PiecesBb(Black, Queen)
	att |= attacks.RookAttacks(sq, occ) & rookLike
	att |= attacks.BishopAttacks(sq, occ) & bishopLike
	return att
}

// ComputeChecksAndPins (re)populates p.checkers and the per-square pin
// rays for the side to move, per spec.md §4.D. Must be called after
// every DoMove/UndoMove before the move generator or IsPinned/Checkers
// are consulted; DoMove/UndoMove call it automatically.
func (p *Position) ComputeChecksAndPins() {
	us := p.sideToMove
	them := us.Flip()
	kingSq := p.kingSquare[us]

	p.checkers = p.attackersTo(kingSq, p.occupiedAll) & p.occupied[them]

	p.pinned = BbZero
	for sq := SqA1; sq < SqNone; sq++ {
		p.pinRay[sq] = BbZero
	}

	rookLike := p.PiecesBb(them, Rook) | p.PiecesBb(them, Queen)
	bishopLike := p.PiecesBb(them, Bishop) | p.PiecesBb(them, Queen)

	candidates := (attacks.RookAttacks(kingSq, BbZero) & rookLike) |
		(attacks.BishopAttacks(kingSq, BbZero) & bishopLike)

	for candidates != BbZero {
		var pinnerSq Square
		pinnerSq, candidates = candidates.PopLsb()
		between := attacks.Between(kingSq, pinnerSq)
		blockers := between & p.occupiedAll
		if blockers.PopCount() != 1 {
			continue
		}
		blockerSq := blockers.Lsb()
		if !p.occupied[us].Has(blockerSq) {
			continue
		}
		p.pinned = p.pinned.Set(blockerSq)
		p.pinRay[blockerSq] = between.Set(pinnerSq)
	}
}

// GivesCheck reports whether making m (from the current position)
// would leave the opponent's king in check. Used by the main search to
// extend checking moves by one ply and to keep them out of late move
// reductions.
func (p *Position) GivesCheck(m Move) bool {
	them := p.sideToMove.Flip()
	theirKing := p.kingSquare[them]
	to := m.To()
	moved := p.board[m.From()]
	if m.PromotionType() != PtNone {
		moved = MakePiece(p.sideToMove, m.PromotionType())
	}

	// Direct check: does the moved piece, from its destination, attack
	// the enemy king?
	switch moved.TypeOf() {
	case Pawn:
		if attacks.PawnAttacks(p.sideToMove, to).Has(theirKing) {
			return true
		}
	case Knight:
		if attacks.KnightAttacks(to).Has(theirKing) {
			return true
		}
	case Bishop:
		if attacks.BishopAttacks(to, p.occupiedAll).Has(theirKing) {
			return true
		}
	case Rook:
		if attacks.RookAttacks(to, p.occupiedAll).Has(theirKing) {
			return true
		}
	case Queen:
		if attacks.QueenAttacks(to, p.occupiedAll).Has(theirKing) {
			return true
		}
	}

	// Discovered check: moving the piece away from its origin square
	// uncovers a friendly slider's attack on the king.
	from := m.From()
	rookLike := p.PiecesBb(p.sideToMove, Rook) | p.PiecesBb(p.sideToMove, Queen)
	bishopLike := p.PiecesBb(p.sideToMove, Bishop) | p.PiecesBb(p.sideToMove, Queen)
	occAfter := (p.occupiedAll &^ from.Bb()).Set(to)
	if attacks.RookAttacks(theirKing, occAfter)&rookLike != BbZero {
		return true
	}
	if attacks.BishopAttacks(theirKing, occAfter)&bishopLike != BbZero {
		return true
	}
	return false
}

// HasInsufficientMaterial reports whether neither side has enough
// material to deliver checkmate: K v K, K+N v K, K+B v K, or K+B v K+B
// with same-colored bishops. Supplements the repetition/fifty-move
// draw checks spec.md §4.D names explicitly.
func (p *Position) HasInsufficientMaterial() bool {
	if p.PiecesBb(White, Pawn)|p.PiecesBb(Black, Pawn) != BbZero {
		return false
	}
	if p.PiecesBb(White, Rook)|p.PiecesBb(Black, Rook) != BbZero {
		return false
	}
	if p.PiecesBb(White, Queen)|p.PiecesBb(Black, Queen) != BbZero {
		return false
	}
	wn, bn := p.PiecesBb(White, Knight).PopCount(), p.PiecesBb(Black, Knight).PopCount()
	wb, bb := p.PiecesBb(White, Bishop).PopCount(), p.PiecesBb(Black, Bishop).PopCount()

	whiteMinor, blackMinor := wn+wb, bn+bb
	if whiteMinor == 0 && blackMinor == 0 {
		return true
	}
	if whiteMinor == 1 && blackMinor == 0 && wn+wb == 1 {
		return true
	}
	if blackMinor == 1 && whiteMinor == 0 && bn+bb == 1 {
		return true
	}
	if wn == 0 && bn == 0 && wb == 1 && bb == 1 {
		wSq := p.PiecesBb(White, Bishop).Lsb()
		bSq := p.PiecesBb(Black, Bishop).Lsb()
		return squareColor(wSq) == squareColor(bSq)
	}
	return false
}

func squareColor(sq Square) int {
	return (int(sq.FileOf()) + int(sq.RankOf())) & 1
}

// CheckRepetitions reports whether the current position's Zobrist key
// has occurred at least reps-1 times earlier in the history stack
// since the last irreversible ply, i.e. whether this occurrence makes
// the reps-th repetition.
func (p *Position) CheckRepetitions(reps int) bool {
	count := 1
	key := p.zobristKey
	// Only even steps back can repeat the same side-to-move position,
	// and an irreversible move (capture or pawn move, recorded via
	// halfmoveClock reset) truncates how far back we may look.
	limit := len(p.history) - p.halfmoveClock
	if limit < 0 {
		limit = 0
	}
	// Walk pairs of plies (own moves) looking for a repeated key.
	for i := len(p.history) - 2; i >= limit; i -= 2 {
		if p.history[i].priorZobrist == key {
			count++
			if count >= reps {
				return true
			}
		}
	}
	return count >= reps
}
