// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package transpositiontable

import (
	. "github.com/dstrand/corvid/internal/types"
)

// TtEntry is one transposition table slot, packed into 16 bytes: the
// full 64-bit Zobrist key plus a 16-bit move, two 16-bit values and a
// bit-packed depth/type/age word.
type TtEntry struct {
	key   Key
	move  uint16
	eval  int16
	value int16
	vmeta uint16 // depth:7 vtype:2 age:7
}

const (
	// TtEntrySize is the size in bytes of one TtEntry.
	TtEntrySize = 16

	ageMask    = uint16(0b0000_0000_0111_1111)
	vtypeMask  = uint16(0b0000_0001_1000_0000)
	vtypeShift = uint16(7)
	depthMask  = uint16(0b1111_1110_0000_0000)
	depthShift = uint16(9)
)

func (e *TtEntry) decreaseAge() {
	if e.Age() > 0 {
		e.vmeta--
	}
}

func (e *TtEntry) increaseAge() {
	if e.Age() < 127 {
		e.vmeta++
	}
}

// Key returns the full Zobrist key stored in this slot, used to detect
// a hash collision against the table's own index-derived key.
func (e *TtEntry) Key() Key { return e.key }

// Move returns the best move found for this position, or MoveNone.
func (e *TtEntry) Move() Move { return Move(e.move) }

// Value returns the stored search value.
func (e *TtEntry) Value() Value { return Value(e.value) }

// Eval returns the stored static evaluation, independent of search
// value.
func (e *TtEntry) Eval() Value { return Value(e.eval) }

// Depth returns the depth this entry was stored at.
func (e *TtEntry) Depth() int8 { return int8((e.vmeta & depthMask) >> depthShift) }

// Age returns how many searches have passed since this entry was
// written or refreshed; AgeEntries increments it, Probe decreases it
// by one.
func (e *TtEntry) Age() int8 { return int8(e.vmeta & ageMask) }

// Vtype returns whether Value is exact or a bound from a cutoff.
func (e *TtEntry) Vtype() ValueType { return ValueType((e.vmeta & vtypeMask) >> vtypeShift) }
