// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package position

import (
	"github.com/dstrand/corvid/internal/nnue"
	. "github.com/dstrand/corvid/internal/types"
)

// dirtyChange records a single square whose occupant changed during a
// move, recorded by DoMove as it changes the board and applied to the
// NNUE accumulator once the move is complete. Grounded on the
// hailam-chessplay nnue_bridge.go DirtyPiece/computeDirtyPieces
// pattern: up to 4 dirty squares per move (castling is the worst case:
// the king's origin and destination plus the rook's origin and
// destination).
type dirtyChange struct {
	sq      Square
	removed Piece
	added   Piece
}

// DoMove applies m unconditionally, trusting that m came from the
// legal move generator (spec.md §4.D). Pushes one PlyInfo so UndoMove
// can reverse every field it touches exactly.
func (p *Position) DoMove(m Move) {
	var info PlyInfo
	info.move = m
	info.priorCastling = p.castlingRights
	info.priorEnPassant = p.enPassantSquare
	info.priorHalfmove = p.halfmoveClock
	info.priorZobrist = p.zobristKey
	info.priorAccumulator = p.accum.Clone()

	us := p.sideToMove
	them := us.Flip()
	from, to := m.From(), m.To()
	moved := p.board[from]

	kingMoved := moved.TypeOf() == King

	var dirty [4]dirtyChange
	n := 0

	p.zobristKey ^= zobristCastle[p.castlingRights]
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristEnPassant[p.enPassantSquare.FileOf()]
	}

	switch m.Flag() {
	case MfEnPassant:
		capSq := SquareOf(to.FileOf(), from.RankOf())
		info.capturedPiece = p.removePieceRaw(capSq)
		dirty[n] = dirtyChange{capSq, info.capturedPiece, PieceNone}
		n++
		p.removePieceRaw(from)
		p.putPieceRaw(moved, to)
		dirty[n] = dirtyChange{from, moved, PieceNone}
		n++
		dirty[n] = dirtyChange{to, PieceNone, moved}
		n++
		p.enPassantSquare = SqNone
		p.halfmoveClock = 0

	case MfKingCastle, MfQueenCastle:
		p.removePieceRaw(from)
		p.putPieceRaw(moved, to)
		dirty[n] = dirtyChange{from, moved, PieceNone}
		n++
		dirty[n] = dirtyChange{to, PieceNone, moved}
		n++
		rookFrom, rookTo := castleRookSquares(m.Flag(), us)
		rook := p.removePieceRaw(rookFrom)
		p.putPieceRaw(rook, rookTo)
		dirty[n] = dirtyChange{rookFrom, rook, PieceNone}
		n++
		dirty[n] = dirtyChange{rookTo, PieceNone, rook}
		n++
		p.enPassantSquare = SqNone
		p.halfmoveClock++

	case MfPromoKnight, MfPromoBishop, MfPromoRook, MfPromoQueen:
		p.removePieceRaw(from)
		promoted := MakePiece(us, m.PromotionType())
		p.putPieceRaw(promoted, to)
		dirty[n] = dirtyChange{from, moved, PieceNone}
		n++
		dirty[n] = dirtyChange{to, PieceNone, promoted}
		n++
		p.enPassantSquare = SqNone
		p.halfmoveClock = 0

	case MfPromoCaptureKnight, MfPromoCaptureBishop, MfPromoCaptureRook, MfPromoCaptureQueen:
		info.capturedPiece = p.removePieceRaw(to)
		dirty[n] = dirtyChange{to, info.capturedPiece, PieceNone}
		n++
		p.removePieceRaw(from)
		promoted := MakePiece(us, m.PromotionType())
		p.putPieceRaw(promoted, to)
		dirty[n] = dirtyChange{from, moved, PieceNone}
		n++
		dirty[n] = dirtyChange{to, PieceNone, promoted}
		n++
		p.enPassantSquare = SqNone
		p.halfmoveClock = 0

	case MfCapture:
		info.capturedPiece = p.removePieceRaw(to)
		dirty[n] = dirtyChange{to, info.capturedPiece, PieceNone}
		n++
		p.removePieceRaw(from)
		p.putPieceRaw(moved, to)
		dirty[n] = dirtyChange{from, moved, PieceNone}
		n++
		dirty[n] = dirtyChange{to, PieceNone, moved}
		n++
		p.enPassantSquare = SqNone
		p.halfmoveClock = 0

	case MfDoublePawnPush:
		p.removePieceRaw(from)
		p.putPieceRaw(moved, to)
		dirty[n] = dirtyChange{from, moved, PieceNone}
		n++
		dirty[n] = dirtyChange{to, PieceNone, moved}
		n++
		p.enPassantSquare = SquareOf(from.FileOf(), (from.RankOf()+to.RankOf())/2)
		p.halfmoveClock = 0

	default: // MfQuiet
		p.removePieceRaw(from)
		p.putPieceRaw(moved, to)
		dirty[n] = dirtyChange{from, moved, PieceNone}
		n++
		dirty[n] = dirtyChange{to, PieceNone, moved}
		n++
		p.enPassantSquare = SqNone
		if moved.TypeOf() == Pawn {
			p.halfmoveClock = 0
		} else {
			p.halfmoveClock++
		}
	}

	if kingMoved {
		p.kingSquare[us] = to
	}

	p.castlingRights = p.castlingRights.Clear(CastlingRightsLostAt(from)).Clear(CastlingRightsLostAt(to))

	p.zobristKey ^= zobristCastle[p.castlingRights]
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristEnPassant[p.enPassantSquare.FileOf()]
	}
	p.zobristKey ^= zobristSideToMove

	p.sideToMove = them

	p.updateAccumulator(dirty[:n], us, kingMoved)

	p.ComputeChecksAndPins()
	p.assertInvariants()

	p.history = append(p.history, info)
}

// UndoMove pops the most recent PlyInfo and reverses every change
// DoMove made, restoring the Position to byte-for-byte equality with
// its pre-move state (spec.md §3/§8).
func (p *Position) UndoMove() {
	n := len(p.history) - 1
	info := p.history[n]
	p.history = p.history[:n]

	m := info.move
	them := p.sideToMove
	us := them.Flip()
	from, to := m.From(), m.To()

	switch m.Flag() {
	case MfEnPassant:
		pawn := p.removePieceRaw(to)
		p.putPieceRaw(pawn, from)
		capSq := SquareOf(to.FileOf(), from.RankOf())
		p.putPieceRaw(info.capturedPiece, capSq)

	case MfKingCastle, MfQueenCastle:
		king := p.removePieceRaw(to)
		p.putPieceRaw(king, from)
		rookFrom, rookTo := castleRookSquares(m.Flag(), us)
		rook := p.removePieceRaw(rookTo)
		p.putPieceRaw(rook, rookFrom)

	case MfPromoKnight, MfPromoBishop, MfPromoRook, MfPromoQueen:
		p.removePieceRaw(to)
		p.putPieceRaw(MakePiece(us, Pawn), from)

	case MfPromoCaptureKnight, MfPromoCaptureBishop, MfPromoCaptureRook, MfPromoCaptureQueen:
		p.removePieceRaw(to)
		p.putPieceRaw(MakePiece(us, Pawn), from)
		p.putPieceRaw(info.capturedPiece, to)

	case MfCapture:
		moved := p.removePieceRaw(to)
		p.putPieceRaw(moved, from)
		p.putPieceRaw(info.capturedPiece, to)

	default: // quiet or double push
		moved := p.removePieceRaw(to)
		p.putPieceRaw(moved, from)
	}

	if p.board[from].TypeOf() == King {
		p.kingSquare[us] = from
	}

	p.castlingRights = info.priorCastling
	p.enPassantSquare = info.priorEnPassant
	p.halfmoveClock = info.priorHalfmove
	p.zobristKey = info.priorZobrist
	p.accum = info.priorAccumulator
	p.sideToMove = us

	p.ComputeChecksAndPins()
	p.assertInvariants()
}

// nullMoveInfo is the minimal snapshot DoNullMove needs to undo itself:
// a null move touches no piece and no king square, so it never dirties
// the NNUE accumulator or Zobrist piece keys, only the side-to-move and
// en-passant state.
type nullMoveInfo struct {
	priorEnPassant Square
	priorZobrist   Key
}

// DoNullMove passes the turn without making a move, used by the search
// for null-move pruning (spec.md's search is free to skip a ply under
// the null-move heuristic provided the position is not in check).
// Returns the state it changed for UndoNullMove instead of pushing onto
// the regular history, since a null move must never appear in the
// repetition history.
func (p *Position) DoNullMove() nullMoveInfo {
	info := nullMoveInfo{priorEnPassant: p.enPassantSquare, priorZobrist: p.zobristKey}
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobristEnPassant[p.enPassantSquare.FileOf()]
		p.enPassantSquare = SqNone
	}
	p.zobristKey ^= zobristSideToMove
	p.sideToMove = p.sideToMove.Flip()
	p.ComputeChecksAndPins()
	return info
}

// UndoNullMove reverses DoNullMove using the snapshot it returned.
func (p *Position) UndoNullMove(info nullMoveInfo) {
	p.sideToMove = p.sideToMove.Flip()
	p.enPassantSquare = info.priorEnPassant
	p.zobristKey = info.priorZobrist
	p.ComputeChecksAndPins()
}

// removePieceRaw clears the piece on sq from every bitboard/board/
// Zobrist tracking structure and returns it. Does not touch the NNUE
// accumulator - callers apply NNUE diffs themselves once the full
// dirty list and any king move are known.
func (p *Position) removePieceRaw(sq Square) Piece {
	pc := p.board[sq]
	p.board[sq] = PieceNone
	p.pieceBb[pc] = p.pieceBb[pc].Clear(sq)
	p.occupied[pc.ColorOf()] = p.occupied[pc.ColorOf()].Clear(sq)
	p.occupiedAll = p.occupiedAll.Clear(sq)
	p.zobristKey ^= zobristPiece[pc][sq]
	return pc
}

// putPieceRaw places pc on sq, updating every bitboard/board/Zobrist
// tracking structure.
func (p *Position) putPieceRaw(pc Piece, sq Square) {
	p.board[sq] = pc
	p.pieceBb[pc] = p.pieceBb[pc].Set(sq)
	p.occupied[pc.ColorOf()] = p.occupied[pc.ColorOf()].Set(sq)
	p.occupiedAll = p.occupiedAll.Set(sq)
	p.zobristKey ^= zobristPiece[pc][sq]
}

func castleRookSquares(flag MoveFlag, us Color) (from, to Square) {
	if us == White {
		if flag == MfKingCastle {
			return SqH1, SqF1
		}
		return SqA1, SqD1
	}
	if flag == MfKingCastle {
		return SqH8, SqF8
	}
	return SqA8, SqD8
}

// updateAccumulator applies the NNUE feature diffs implied by dirty to
// both perspectives' accumulator rows. The moving side's perspective
// gets a full Refresh if its own king moved (every feature index for
// that perspective depends on the own-king square); the other
// perspective, and the non-king-move case for the moving side, are
// updated incrementally by add/remove, per spec.md §4.F.
func (p *Position) updateAccumulator(dirty []dirtyChange, mover Color, moverKingMoved bool) {
	for _, persp := range [ColorLength]Color{White, Black} {
		if persp == mover && moverKingMoved {
			p.refreshAccumulator(persp)
			continue
		}
		kingSq := p.kingSquare[persp]
		for _, d := range dirty {
			if d.removed != PieceNone && d.removed.TypeOf() != King {
				idx := nnueFeatureIndex(persp, kingSq, d.sq, d.removed)
				p.accum.RemoveFeature(p.net, persp, idx)
			}
			if d.added != PieceNone && d.added.TypeOf() != King {
				idx := nnueFeatureIndex(persp, kingSq, d.sq, d.added)
				p.accum.AddFeature(p.net, persp, idx)
			}
		}
	}
}

// refreshAccumulator fully recomputes one perspective's accumulator
// row from the current board - used after a king move and available
// for debug-build validation of the incremental path.
func (p *Position) refreshAccumulator(persp Color) {
	kingSq := p.kingSquare[persp]
	active := make([]int, 0, 32)
	for sq := SqA1; sq < SqNone; sq++ {
		pc := p.board[sq]
		if pc == PieceNone || pc.TypeOf() == King {
			continue
		}
		active = append(active, nnueFeatureIndex(persp, kingSq, sq, pc))
	}
	p.accum.Refresh(p.net, persp, active)
}

func nnueFeatureIndex(persp Color, kingSq, sq Square, pc Piece) int {
	return nnueIndex(persp, kingSq, sq, pc)
}

// nnueIndex is a tiny indirection so this file only needs the nnue
// package's exported FeatureIndex function name in one place.
var nnueIndex = nnue.FeatureIndex
