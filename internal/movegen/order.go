// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package movegen

import (
	"github.com/dstrand/corvid/internal/position"
	. "github.com/dstrand/corvid/internal/types"
)

// MaxKillerPly bounds the per-ply killer-move table; deeper than any
// realistic iterative-deepening search reaches.
const MaxKillerPly = 128

// mvvLva[victim][attacker] ranks a capture by most-valuable-victim,
// least-valuable-attacker: a bigger victim always outranks a smaller
// one regardless of attacker, and among equal victims the cheaper
// attacker ranks first.
var mvvLva [PieceTypeLength][PieceTypeLength]int32

func init() {
	for v := Pawn; v <= King; v++ {
		for a := Pawn; a <= King; a++ {
			mvvLva[v][a] = int32(v)*16 - int32(a)
		}
	}
}

// OrderTable accumulates the move-ordering heuristics a single search
// keeps across the whole tree: killer moves per ply, history scores
// per (color, from, to), and a counter-move table indexed by the
// opponent's last move.
type OrderTable struct {
	killers [MaxKillerPly][2]Move
	history [ColorLength][SqLength][SqLength]int32
	counter [PieceLength][SqLength]Move
}

// NewOrderTable returns a zeroed OrderTable.
func NewOrderTable() *OrderTable {
	return &OrderTable{}
}

// Clear resets every heuristic, called at the start of a new search.
func (o *OrderTable) Clear() {
	*o = OrderTable{}
}

// StoreKiller records m as a killer at ply, keeping the two most
// recent distinct killers with the newest in slot 0.
func (o *OrderTable) StoreKiller(ply int, m Move) {
	if ply < 0 || ply >= MaxKillerPly || m == o.killers[ply][0] {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// IsKiller reports whether m is a stored killer at ply.
func (o *OrderTable) IsKiller(ply int, m Move) bool {
	if ply < 0 || ply >= MaxKillerPly {
		return false
	}
	return m == o.killers[ply][0] || m == o.killers[ply][1]
}

// AddHistory rewards a quiet move that caused a beta cutoff, scaled by
// depth squared (deeper cutoffs are stronger signals), per the
// standard history-heuristic formulation.
func (o *OrderTable) AddHistory(us Color, m Move, depth int) {
	bonus := int32(depth * depth)
	o.history[us][m.From()][m.To()] += bonus
	if o.history[us][m.From()][m.To()] >= 1<<18 {
		o.ageHistory()
	}
}

func (o *OrderTable) ageHistory() {
	for c := White; c <= Black; c++ {
		for f := SqA1; f < SqNone; f++ {
			for t := SqA1; t < SqNone; t++ {
				o.history[c][f][t] /= 2
			}
		}
	}
}

// StoreCounterMove records m as the reply that refuted prevMove.
func (o *OrderTable) StoreCounterMove(prevPiece Piece, prevTo Square, m Move) {
	if prevPiece == PieceNone {
		return
	}
	o.counter[prevPiece][prevTo] = m
}

// CounterMove returns the stored reply to (prevPiece, prevTo), or
// MoveNone if none has been recorded.
func (o *OrderTable) CounterMove(prevPiece Piece, prevTo Square) Move {
	if prevPiece == PieceNone {
		return MoveNone
	}
	return o.counter[prevPiece][prevTo]
}

// Score ranks m for move ordering at the given ply: hash/PV move
// first, then MVV-LVA captures, then killers, then counter-moves, then
// history score, per spec.md §4.E's "captures-first, quiets-second"
// staging refined with the usual search heuristics.
func (o *OrderTable) Score(pos *position.Position, m, hashMove Move, ply int, prevPiece Piece, prevTo Square) int32 {
	switch {
	case m == hashMove:
		return 1 << 30
	case m.IsCapture():
		victim := pos.PieceAt(m.To())
		vt := victim.TypeOf()
		if m.IsEnPassant() {
			vt = Pawn
		}
		attacker := pos.PieceAt(m.From()).TypeOf()
		return 1<<20 + mvvLva[vt][attacker]
	case o.IsKiller(ply, m):
		return 1 << 19
	case m == o.CounterMove(prevPiece, prevTo):
		return 1 << 18
	default:
		return o.history[pos.SideToMove()][m.From()][m.To()]
	}
}

// Sort reorders ml from highest score to lowest using a stable
// insertion sort - moves lists are short and mostly pre-ordered by
// generation stage, so insertion sort beats a general-purpose sort.
func Sort(ml *MoveList, scores []int32) {
	for i := 1; i < len(scores); i++ {
		m, s := (*ml)[i], scores[i]
		j := i
		for j > 0 && scores[j-1] < s {
			(*ml)[j] = (*ml)[j-1]
			scores[j] = scores[j-1]
			j--
		}
		(*ml)[j] = m
		scores[j] = s
	}
}
