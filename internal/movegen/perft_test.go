// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dstrand/corvid/internal/nnue"
	"github.com/dstrand/corvid/internal/position"
)

// Perft results from https://www.chessprogramming.org/Perft_Results,
// broken down by move kind, for the standard starting position.
func TestStandardPerftBreakdown(t *testing.T) {
	var results = [6][5]uint64{
		// depth       nodes      captures         ep         checks
		{0, 1, 0, 0, 0},
		{1, 20, 0, 0, 0},
		{2, 400, 0, 0, 0},
		{3, 8_902, 34, 0, 12},
		{4, 197_281, 1_576, 0, 469},
		{5, 4_865_609, 82_719, 258, 27_351},
	}

	net := nnue.NewZeroNetwork(4)
	for depth := 1; depth <= 5; depth++ {
		perft := NewPerft()
		nodes, err := perft.Run(net, position.StartFen, depth)
		assert.NoError(t, err)
		assert.Equal(t, results[depth][1], nodes, "depth %d nodes", depth)
		assert.Equal(t, results[depth][2], perft.CaptureCounter, "depth %d captures", depth)
		assert.Equal(t, results[depth][3], perft.EnPassantCounter, "depth %d en passant", depth)
		assert.Equal(t, results[depth][4], perft.CheckCounter, "depth %d checks", depth)
	}
}

func TestStandardPerftScenarios(t *testing.T) {
	scenarios := []struct {
		fen   string
		depth int
		nodes uint64
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 5, 4_865_609},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4_085_603},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, 674_624},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422_333},
		{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4, 2_103_487},
		{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 4, 3_894_594},
	}

	net := nnue.NewZeroNetwork(4)
	for _, s := range scenarios {
		perft := NewPerft()
		nodes, err := perft.Run(net, s.fen, s.depth)
		assert.NoError(t, err, s.fen)
		assert.Equal(t, s.nodes, nodes, s.fen)
	}
}

func TestPerftDepthZeroClampsToOne(t *testing.T) {
	net := nnue.NewZeroNetwork(4)
	perft := NewPerft()
	nodes, err := perft.Run(net, position.StartFen, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(20), nodes) // depth clamps to 1
}
