// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package transpositiontable implements the search's position cache: a
// fixed-capacity, power-of-two-sized, Zobrist-keyed hash table. It is
// not thread safe; Resize and Clear must not run concurrently with a
// search probing or storing into the same table.
package transpositiontable

import (
	"math"
	"sync"
	"time"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/dstrand/corvid/internal/logging"
	. "github.com/dstrand/corvid/internal/types"
	"github.com/dstrand/corvid/internal/util"
)

var out = message.NewPrinter(language.English)

const (
	// MaxSizeInMB bounds how large a table a user can request.
	MaxSizeInMB = 65_536
	mb          = 1024 * 1024
)

// TtTable is a fixed-size transposition table. Create with NewTtTable.
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	Stats              TtStats
}

// TtStats tracks table usage for UCI info lines and tuning.
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a table sized to the largest power-of-two entry
// count that fits in sizeInMByte megabytes.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{log: myLogging.GetLog()}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize rebuilds the table for a new size, discarding all entries.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * mb
	tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
	tt.hashKeyMask = tt.maxNumberOfEntries - 1

	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
	}
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)

	tt.log.Info(out.Sprintf("TT size %d MB, capacity %d entries (%d bytes each), requested %d MB",
		tt.sizeInByte/mb, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// GetEntry returns the entry stored for key, or nil if the slot holds a
// different key. Unlike Probe, it does not touch the hit/miss stats or
// the entry's age - used for read-only inspection that does not count
// as a real search probe.
func (tt *TtTable) GetEntry(key Key) *TtEntry {
	e := &tt.data[tt.hash(key)]
	if e.key == key {
		return e
	}
	return nil
}

// Probe looks up key, refreshing its age on a hit.
func (tt *TtTable) Probe(key Key) *TtEntry {
	tt.Stats.numberOfProbes++
	e := &tt.data[tt.hash(key)]
	if e.key == key {
		e.decreaseAge()
		tt.Stats.numberOfHits++
		return e
	}
	tt.Stats.numberOfMisses++
	return nil
}

// Put stores a search result, replacing an existing different-key
// entry only when the new depth is greater, or equal with the old
// entry aged, and otherwise updating the same-key slot in place
// (preserving a prior move/eval when the caller passes MoveNone /
// ValueNone for them).
func (tt *TtTable) Put(key Key, move Move, depth int8, value Value, valueType ValueType, eval Value) {
	if tt.maxNumberOfEntries == 0 {
		return
	}

	e := &tt.data[tt.hash(key)]
	tt.Stats.numberOfPuts++

	switch {
	case e.key == 0:
		tt.numberOfEntries++
		tt.write(e, key, move, depth, value, valueType, eval)

	case e.key != key:
		tt.Stats.numberOfCollisions++
		if depth > e.Depth() || (depth == e.Depth() && e.Age() > 0) {
			tt.Stats.numberOfOverwrites++
			tt.write(e, key, move, depth, value, valueType, eval)
		}

	default:
		tt.Stats.numberOfUpdates++
		if move != MoveNone {
			e.move = uint16(move)
		}
		if eval != ValueNone {
			e.eval = int16(eval)
		}
		if value != ValueNone {
			e.value = int16(value)
			e.vmeta = uint16(depth)<<depthShift + uint16(valueType)<<vtypeShift
		}
	}
}

func (tt *TtTable) write(e *TtEntry, key Key, move Move, depth int8, value Value, valueType ValueType, eval Value) {
	e.key = key
	e.move = uint16(move)
	e.eval = int16(eval)
	e.value = int16(value)
	e.vmeta = uint16(depth)<<depthShift + uint16(valueType)<<vtypeShift
}

// Clear empties the table without resizing it.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}
}

// Hashfull reports table occupancy in permille, per the UCI "hashfull" field.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d bytes entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/mb, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites,
		tt.Stats.numberOfProbes, tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of occupied slots.
func (tt *TtTable) Len() uint64 { return tt.numberOfEntries }

// AgeEntries increments every occupied entry's age by one, run once
// per new search so stale entries lose replacement priority over
// fresh ones at equal depth. Parallelized across a fixed worker count
// since a full-size table has millions of slots to walk.
func (tt *TtTable) AgeEntries() {
	start := time.Now()
	if tt.numberOfEntries > 0 {
		const workers = 32
		var wg sync.WaitGroup
		wg.Add(workers)
		slice := tt.maxNumberOfEntries / workers
		for i := uint64(0); i < workers; i++ {
			go func(i uint64) {
				defer wg.Done()
				begin := i * slice
				end := begin + slice
				if i == workers-1 {
					end = tt.maxNumberOfEntries
				}
				for n := begin; n < end; n++ {
					if tt.data[n].key != 0 {
						tt.data[n].increaseAge()
					}
				}
			}(i)
		}
		wg.Wait()
	}
	tt.log.Debug(out.Sprintf("aged %d of %d entries in %d ms", tt.numberOfEntries, len(tt.data), time.Since(start).Milliseconds()))
}

func (tt *TtTable) hash(key Key) uint64 {
	return uint64(key) & tt.hashKeyMask
}
