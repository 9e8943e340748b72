// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package util holds small standalone helpers with no chess
// knowledge: integer min/max, nodes-per-second arithmetic and a
// memory-stats formatter used in log lines.
package util

import (
	"runtime"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.English)

// Min returns the smaller of x and y.
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger of x and y.
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Abs returns the absolute value of n.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Nps computes nodes per second from a node count and an elapsed
// duration, treating a zero duration as one nanosecond so the
// division never panics.
func Nps(nodes uint64, elapsedNanos int64) uint64 {
	if elapsedNanos <= 0 {
		elapsedNanos = 1
	}
	return uint64(int64(nodes) * 1_000_000_000 / elapsedNanos)
}

// MemStat returns a thousands-separated summary of current heap usage,
// suitable for a debug log line.
func MemStat() string {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return out.Sprintf("alloc=%d totalAlloc=%d heapObjects=%d numGC=%d",
		mem.Alloc, mem.TotalAlloc, mem.HeapObjects, mem.NumGC)
}
