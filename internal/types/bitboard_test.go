// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package types

import "testing"

func TestSquareBb(t *testing.T) {
	if SqA1.Bb() != 1 {
		t.Fatalf("expected a1 bitboard to be bit 0, got %x", SqA1.Bb())
	}
	if SqH8.Bb() != 1<<63 {
		t.Fatalf("expected h8 bitboard to be bit 63, got %x", SqH8.Bb())
	}
}

func TestFileRankOf(t *testing.T) {
	if SqE4.FileOf() != FileE || SqE4.RankOf() != Rank4 {
		t.Fatalf("e4 decoded as file=%s rank=%s", SqE4.FileOf(), SqE4.RankOf())
	}
}

func TestPopCountAndLsb(t *testing.T) {
	b := SqA1.Bb() | SqH8.Bb() | SqD4.Bb()
	if b.PopCount() != 3 {
		t.Fatalf("expected popcount 3, got %d", b.PopCount())
	}
	sq, rest := b.PopLsb()
	if sq != SqA1 {
		t.Fatalf("expected lsb a1, got %s", sq)
	}
	if rest.PopCount() != 2 {
		t.Fatalf("expected 2 remaining bits, got %d", rest.PopCount())
	}
}

func TestShiftEastWestDoNotWrap(t *testing.T) {
	fileHPawn := SqH4.Bb()
	if fileHPawn.ShiftEast() != 0 {
		t.Fatalf("shifting a h-file square east must not wrap to the a-file")
	}
	fileAPawn := SqA4.Bb()
	if fileAPawn.ShiftWest() != 0 {
		t.Fatalf("shifting an a-file square west must not wrap to the h-file")
	}
}

func TestMoveRoundTrip(t *testing.T) {
	m := NewMove(SqE2, SqE4, MfDoublePawnPush)
	if m.From() != SqE2 || m.To() != SqE4 || m.Flag() != MfDoublePawnPush {
		t.Fatalf("move round trip failed: %+v", m)
	}
	if m.StringUci() != "e2e4" {
		t.Fatalf("expected e2e4, got %s", m.StringUci())
	}
}

func TestMoveNoneIsZero(t *testing.T) {
	var m Move
	if m != MoveNone {
		t.Fatalf("zero value of Move must equal MoveNone")
	}
}

func TestPromotionRoundTrip(t *testing.T) {
	m := NewMove(SqA7, SqA8, MfPromoQueen)
	if m.PromotionType() != Queen || !m.IsPromotion() {
		t.Fatalf("expected queen promotion, got %+v", m)
	}
	if m.StringUci() != "a7a8q" {
		t.Fatalf("expected a7a8q, got %s", m.StringUci())
	}
}
