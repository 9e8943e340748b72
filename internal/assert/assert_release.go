//go:build !debug

// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package assert lets internal packages sprinkle invariant checks
// through their code without paying for them in release builds: the
// debug-tagged build panics on a failed test, the release build's
// Assert is a no-op the compiler eliminates entirely since DEBUG is a
// false constant.
package assert

import "fmt"

func init() { fmt.Println("RELEASE MODE") }

// DEBUG is false in release builds.
const DEBUG = false

// Assert is a no-op in release builds. Callers still gate expensive
// argument expressions behind "if assert.DEBUG { ... }" since Go
// evaluates Assert's arguments even when the call itself does nothing.
func Assert(test bool, msg string, a ...interface{}) {}
