//go:build debug

// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package assert

import "fmt"

func init() { fmt.Println("DEBUG MODE") }

// DEBUG is true in builds tagged "debug", enabling the invariant
// checks spec.md §3 calls for (Zobrist-from-scratch comparison,
// aggregate-bitboard consistency, single-king checks).
const DEBUG = true

// Assert panics with msg (fmt-formatted with a) if test is false.
func Assert(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
