// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package nnue

import (
	. "github.com/dstrand/corvid/internal/types"
)

// Network holds the loaded weights: a feature transformer of hidden
// width H (PSNB*64 -> H per perspective) and a single affine output
// layer over concat(accum[stm], accum[!stm]) -> one centipawn score.
type Network struct {
	hiddenDim int

	featureWeights [][]int16 // [PSNB*64][hiddenDim]
	featureBias    []int16   // [hiddenDim]

	outputWeights []int16 // [2*hiddenDim]
	outputBias    int32
	scale         int32
}

// HiddenDim returns the feature transformer's hidden width.
func (n *Network) HiddenDim() int { return n.hiddenDim }

// clippedRelu clamps v to [0,127], the activation spec.md §4.F
// requires between the feature transformer and the output layer.
func clippedRelu(v int16) int32 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return int32(v)
}

// Evaluate runs the output head over the accumulator from stm's
// perspective, returning a centipawn Value already oriented for
// negamax (positive is good for stm).
func (n *Network) Evaluate(acc *Accumulator, stm Color) Value {
	us := acc.Row(stm)
	them := acc.Row(stm.Flip())

	var sum int64
	for i, w := range n.outputWeights[:n.hiddenDim] {
		sum += int64(clippedRelu(us[i])) * int64(w)
	}
	for i, w := range n.outputWeights[n.hiddenDim:] {
		sum += int64(clippedRelu(them[i])) * int64(w)
	}
	sum += int64(n.outputBias)

	if n.scale == 0 {
		n.scale = 1
	}
	return Value(sum / int64(n.scale))
}
