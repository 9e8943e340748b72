// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package attacks

import (
	"testing"

	. "github.com/dstrand/corvid/internal/types"
)

func TestMain_Init(t *testing.T) {
	Init()
}

func TestKnightAttacksCorner(t *testing.T) {
	Init()
	a1 := KnightAttacks(SqA1)
	if a1.PopCount() != 2 {
		t.Fatalf("expected 2 knight attacks from a1, got %d", a1.PopCount())
	}
	if !a1.Has(SqB3) || !a1.Has(SqC2) {
		t.Fatalf("expected a1 knight attacks to include b3,c2: %s", a1)
	}
}

func TestRookAttacksOnEmptyBoard(t *testing.T) {
	Init()
	att := RookAttacks(SqA1, BbZero)
	if att.PopCount() != 14 {
		t.Fatalf("expected 14 squares for a rook on a1 on an empty board, got %d", att.PopCount())
	}
}

func TestRookAttacksBlocked(t *testing.T) {
	Init()
	occ := SqA1.Bb() | SqA4.Bb() | SqD1.Bb()
	att := RookAttacks(SqA1, occ)
	if !att.Has(SqA4) || att.Has(SqA5) {
		t.Fatalf("rook attack should stop at the first blocker on each ray: %s", att)
	}
	if !att.Has(SqD1) || att.Has(SqE1) {
		t.Fatalf("rook attack should stop at the first blocker on each ray: %s", att)
	}
}

func TestBetweenAlignedSquares(t *testing.T) {
	Init()
	b := Between(SqA1, SqA4)
	if b.PopCount() != 2 || !b.Has(SqA2) || !b.Has(SqA3) {
		t.Fatalf("expected a2,a3 between a1 and a4: %s", b)
	}
}

func TestBetweenUnalignedSquares(t *testing.T) {
	Init()
	if Between(SqA1, SqB3) != BbZero {
		t.Fatalf("a1 and b3 are not aligned, expected empty between set")
	}
}
