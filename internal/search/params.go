// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"math"

	. "github.com/dstrand/corvid/internal/types"
)

// lmr is a lookup table for late move reductions indexed by
// [depth][movesSearched].
var lmr [32][64]int

// LmrReduction returns the depth reduction late move reduction should
// apply, given the remaining depth and how many moves have already
// been searched at this node.
func LmrReduction(depth, movesSearched int) int {
	if depth >= 32 || movesSearched >= 64 {
		return lmr[31][63]
	}
	return lmr[depth][movesSearched]
}

func init() {
	for i := 0; i < 32; i++ {
		for j := 0; j < 64; j++ {
			switch {
			case i <= 3, j <= 3:
				lmr[i][j] = 1
			default:
				lmr[i][j] = int(math.Round((float64(i)*0.7)*(float64(j)*0.005) + 1.0))
			}
		}
	}
}

// aspirationSteps are the successive window widenings tried after an
// aspiration search fails high or low, the last one falling back to
// the unbounded window.
var aspirationSteps = []Value{50, 200, ValueInf}
