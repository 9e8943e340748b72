// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package movegen

import (
	"time"

	"github.com/dstrand/corvid/internal/nnue"
	"github.com/dstrand/corvid/internal/position"
	. "github.com/dstrand/corvid/internal/types"
)

// Perft counts leaf nodes (and a few move-kind breakdowns) over every
// legal move sequence to a fixed depth - the canonical move-generator
// correctness test (spec.md §8's perft scenarios).
type Perft struct {
	Nodes            uint64
	CaptureCounter   uint64
	EnPassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	Elapsed          time.Duration

	stop bool
}

// NewPerft returns a zeroed Perft counter.
func NewPerft() *Perft { return &Perft{} }

// Stop requests that a running Run call on another goroutine abort as
// soon as possible.
func (pf *Perft) Stop() { pf.stop = true }

// Run counts every leaf at depth from the position described by fen.
// Each recursion depth gets its own Generator (mirroring the depth-
// indexed generator array the teacher's on-demand perft uses) since a
// single reused output buffer would be overwritten by a deeper call
// before the shallower call finished iterating its own move list.
func (pf *Perft) Run(net *nnue.Network, fen string, depth int) (uint64, error) {
	if depth < 1 {
		depth = 1
	}
	p, err := position.NewPositionFen(net, fen)
	if err != nil {
		return 0, err
	}
	pf.reset()
	gens := make([]*Generator, depth+1)
	for i := range gens {
		gens[i] = NewGenerator()
	}
	start := time.Now()
	pf.Nodes = pf.count(depth, p, gens)
	pf.Elapsed = time.Since(start)
	return pf.Nodes, nil
}

func (pf *Perft) count(depth int, p *position.Position, gens []*Generator) uint64 {
	if pf.stop {
		return 0
	}
	moves := gens[depth].GenerateAll(p)

	if depth == 1 {
		var total uint64
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			pf.tally(m)
			p.DoMove(m)
			total++
			if p.InCheck() {
				pf.CheckCounter++
				if gens[0].GenerateAll(p).Len() == 0 {
					pf.CheckMateCounter++
				}
			}
			p.UndoMove()
		}
		return total
	}

	var total uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		p.DoMove(m)
		total += pf.count(depth-1, p, gens)
		p.UndoMove()
	}
	return total
}

func (pf *Perft) tally(m Move) {
	if m.IsCapture() {
		pf.CaptureCounter++
	}
	if m.IsEnPassant() {
		pf.EnPassantCounter++
	}
	if m.IsCastle() {
		pf.CastleCounter++
	}
	if m.IsPromotion() {
		pf.PromotionCounter++
	}
}

func (pf *Perft) reset() {
	pf.Nodes = 0
	pf.CaptureCounter = 0
	pf.EnPassantCounter = 0
	pf.CastleCounter = 0
	pf.PromotionCounter = 0
	pf.CheckCounter = 0
	pf.CheckMateCounter = 0
	pf.stop = false
}
