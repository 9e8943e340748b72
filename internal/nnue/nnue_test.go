// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package nnue

import (
	"testing"

	. "github.com/dstrand/corvid/internal/types"
)

func TestZeroNetworkEvaluatesToZero(t *testing.T) {
	net := NewZeroNetwork(32)
	acc := NewAccumulator(32)
	acc.Refresh(net, White, []int{FeatureIndex(White, SqE1, SqE2, WhitePawn)})
	acc.Refresh(net, Black, nil)
	if v := net.Evaluate(&acc, White); v != 0 {
		t.Fatalf("expected zero-weight network to evaluate to 0, got %d", v)
	}
}

func TestAddRemoveFeatureRoundTrip(t *testing.T) {
	net := NewZeroNetwork(8)
	for i := range net.featureWeights[100] {
		net.featureWeights[100][i] = int16(i + 1)
	}
	acc := NewAccumulator(8)
	before := acc.Clone()
	acc.AddFeature(net, White, 100)
	acc.RemoveFeature(net, White, 100)
	for i := range acc.row[White] {
		if acc.row[White][i] != before.row[White][i] {
			t.Fatalf("add then remove should restore original row, index %d: got %d want %d",
				i, acc.row[White][i], before.row[White][i])
		}
	}
}

func TestFeatureIndexDiffersByPerspective(t *testing.T) {
	white := FeatureIndex(White, SqE1, SqD2, WhitePawn)
	black := FeatureIndex(Black, SqE8, SqD2, WhitePawn)
	if white == black {
		t.Fatalf("expected different feature indices for different perspectives/kings")
	}
}
