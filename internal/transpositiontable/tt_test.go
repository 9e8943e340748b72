// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package transpositiontable

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	. "github.com/dstrand/corvid/internal/types"
)

func TestEntrySize(t *testing.T) {
	assert.EqualValues(t, TtEntrySize, unsafe.Sizeof(TtEntry{}))
}

func TestNewSizesToPowerOfTwo(t *testing.T) {
	tt := NewTtTable(2)
	assert.Equal(t, uint64(131_072), tt.maxNumberOfEntries)

	tt = NewTtTable(64)
	assert.Equal(t, uint64(4_194_304), tt.maxNumberOfEntries)

	tt = NewTtTable(100)
	assert.Equal(t, uint64(4_194_304), tt.maxNumberOfEntries)

	tt = NewTtTable(0)
	assert.Equal(t, uint64(0), tt.maxNumberOfEntries)
}

func TestGetEntryAndProbe(t *testing.T) {
	tt := NewTtTable(4)
	key := Key(0x1234)
	move := NewMove(SqE2, SqE4, MfDoublePawnPush)
	tt.Put(key, move, 5, Value(100), VtExact, Value(90))

	e := tt.GetEntry(key)
	assert.Equal(t, key, e.Key())
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 5, e.Depth())
	assert.EqualValues(t, 0, e.Age())
	assert.Equal(t, VtExact, e.Vtype())

	// Probe decreases age (it starts at 0 so it clamps there).
	e = tt.Probe(key)
	assert.EqualValues(t, 0, e.Age())

	// A different key hashing to the same slot misses.
	assert.Nil(t, tt.Probe(key+Key(tt.maxNumberOfEntries)))
}

func TestClearEmptiesTable(t *testing.T) {
	tt := NewTtTable(1)
	key := Key(42)
	move := NewMove(SqE2, SqE4, MfDoublePawnPush)
	tt.Put(key, move, 3, Value(10), VtExact, Value(10))
	assert.EqualValues(t, 1, tt.Len())

	tt.Clear()
	assert.EqualValues(t, 0, tt.Len())
	assert.Nil(t, tt.Probe(key))
}

func TestPutReplacesOnDeeperOrAgedCollision(t *testing.T) {
	tt := NewTtTable(4)
	move := NewMove(SqE2, SqE4, MfDoublePawnPush)
	key := Key(111)

	tt.Put(key, move, 4, Value(111), VtUpper, ValueNone)
	assert.EqualValues(t, 1, tt.Len())
	e := tt.Probe(key)
	assert.EqualValues(t, 111, e.Value())
	assert.Equal(t, VtUpper, e.Vtype())

	// Same key, deeper: always overwritten via the update branch.
	tt.Put(key, move, 5, Value(112), VtLower, ValueNone)
	e = tt.Probe(key)
	assert.EqualValues(t, 112, e.Value())
	assert.Equal(t, VtLower, e.Vtype())
	assert.EqualValues(t, 1, tt.Stats.numberOfUpdates)

	// Colliding key at a greater depth displaces the slot.
	collision := Key(111 + tt.maxNumberOfEntries)
	tt.Put(collision, move, 6, Value(113), VtExact, ValueNone)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
	e = tt.Probe(collision)
	assert.EqualValues(t, 113, e.Value())

	// A shallower colliding key does not displace the deeper entry.
	collision2 := Key(111 + 2*tt.maxNumberOfEntries)
	tt.Put(collision2, move, 4, Value(114), VtLower, ValueNone)
	assert.Nil(t, tt.Probe(collision2))
	e = tt.Probe(collision)
	assert.EqualValues(t, 113, e.Value())
}

func TestAgeEntries(t *testing.T) {
	tt := NewTtTable(2)
	move := NewMove(SqE2, SqE4, MfDoublePawnPush)
	for i := uint64(1); i < tt.maxNumberOfEntries; i++ {
		tt.data[i].key = Key(i)
	}
	tt.numberOfEntries = tt.maxNumberOfEntries - 1
	tt.Put(Key(1), move, 1, Value(1), VtExact, ValueNone)
	assert.EqualValues(t, 0, tt.GetEntry(Key(1)).Age())

	tt.AgeEntries()
	assert.EqualValues(t, 1, tt.GetEntry(Key(1)).Age())
	assert.EqualValues(t, 1, tt.GetEntry(Key(2)).Age())
}

func TestHashfull(t *testing.T) {
	tt := NewTtTable(1)
	assert.Equal(t, 0, tt.Hashfull())
	move := NewMove(SqE2, SqE4, MfDoublePawnPush)
	for i := 0; i < 100; i++ {
		tt.Put(Key(i+1), move, 1, Value(1), VtExact, ValueNone)
	}
	assert.Greater(t, tt.Hashfull(), 0)
}
