// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package movegen enumerates legal moves directly (never generate-
// then-filter): each staged helper intersects a piece's pseudo-legal
// destinations with the current pin ray or check-evasion mask before
// a Move is ever appended to the output list.
package movegen

import (
	"strings"

	. "github.com/dstrand/corvid/internal/types"
)

// MaxMoves upper-bounds the legal moves reachable from any reachable
// chess position (the true maximum is 218); sized with headroom.
const MaxMoves = 256

// MoveList is a reusable, pre-sized slice of moves. Generators clear
// and refill one per call instead of allocating a fresh slice, since
// the search calls into move generation at every node.
type MoveList []Move

// NewMoveList allocates a MoveList with the given capacity and 0
// elements.
func NewMoveList(cap int) *MoveList {
	moves := make([]Move, 0, cap)
	return (*MoveList)(&moves)
}

// Len returns the number of moves currently stored.
func (ms *MoveList) Len() int { return len(*ms) }

// PushBack appends a move to the end of the list.
func (ms *MoveList) PushBack(m Move) { *ms = append(*ms, m) }

// At returns the move at index i.
func (ms *MoveList) At(i int) Move { return (*ms)[i] }

// Set overwrites the move at index i.
func (ms *MoveList) Set(i int, m Move) { (*ms)[i] = m }

// Clear empties the list while retaining its underlying capacity, so
// repeated generation at high search frequency avoids reallocating.
func (ms *MoveList) Clear() { *ms = (*ms)[:0] }

// Clone deep-copies the list into a newly allocated MoveList.
func (ms *MoveList) Clone() *MoveList {
	dest := make([]Move, ms.Len())
	copy(dest, *ms)
	return (*MoveList)(&dest)
}

// Equals reports whether ms and other hold the same moves in the same
// order.
func (ms *MoveList) Equals(other *MoveList) bool {
	if ms.Len() != other.Len() {
		return false
	}
	for i, m := range *ms {
		if m != (*other)[i] {
			return false
		}
	}
	return true
}

// ForEach calls f with each index in stored order.
func (ms *MoveList) ForEach(f func(index int)) {
	for index := range *ms {
		f(index)
	}
}

// Contains reports whether m appears anywhere in the list.
func (ms *MoveList) Contains(m Move) bool {
	for _, x := range *ms {
		if x == m {
			return true
		}
	}
	return false
}

func (ms *MoveList) String() string {
	var b strings.Builder
	b.WriteString("MoveList: [")
	for i, m := range *ms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteString("]")
	return b.String()
}

// StringUci renders the list as a space-separated UCI long-algebraic
// move sequence, the form the "go searchmoves" and PV-printing UCI
// commands use.
func (ms *MoveList) StringUci() string {
	var b strings.Builder
	for i, m := range *ms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(m.StringUci())
	}
	return b.String()
}
