// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package nnue

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// File format (little-endian throughout):
//
//	uint32  magic       (0x43564e4e; bytes 'N','N','V','C' on disk)
//	uint32  hiddenDim
//	uint32  outputDim    (must be 1 - multi-output heads are not used)
//	int32   scale
//	int16[hiddenDim * PSNB*64]  feature transformer weights, column-major
//	                            per feature index (one column of
//	                            hiddenDim values per feature)
//	int16[hiddenDim]            feature transformer bias
//	int16[outputDim * 2*hiddenDim]  output layer weights
//	int32[outputDim]                output layer bias
const magicValue uint32 = 0x43564e4e // "CVNN" read as a big-endian number

// LoadNetwork loads a weight file from disk. A malformed file (bad
// magic, truncated data, unsupported outputDim) is reported as an
// error - the caller (cmd/corvid's startup path) treats that as the
// fatal "NNUE load failure" spec.md §7 requires. A path that cannot be
// opened (including an empty one) is an error in the same way;
// cmd/corvid only calls LoadNetwork when a path is configured and uses
// NewZeroNetwork when none is.
func LoadNetwork(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nnue: open %q: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic, hiddenDim, outputDim uint32
	var scale int32
	for _, v := range []interface{}{&magic, &hiddenDim, &outputDim, &scale} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("nnue: read header: %w", err)
		}
	}
	if magic != magicValue {
		return nil, fmt.Errorf("nnue: bad magic %#x", magic)
	}
	if outputDim != 1 {
		return nil, fmt.Errorf("nnue: unsupported outputDim %d (only 1 is implemented)", outputDim)
	}

	n := &Network{hiddenDim: int(hiddenDim), scale: scale}

	n.featureWeights = make([][]int16, PSNB*64)
	for i := range n.featureWeights {
		col := make([]int16, hiddenDim)
		if err := binary.Read(r, binary.LittleEndian, col); err != nil {
			return nil, fmt.Errorf("nnue: read feature column %d: %w", i, err)
		}
		n.featureWeights[i] = col
	}

	n.featureBias = make([]int16, hiddenDim)
	if err := binary.Read(r, binary.LittleEndian, n.featureBias); err != nil {
		return nil, fmt.Errorf("nnue: read feature bias: %w", err)
	}

	n.outputWeights = make([]int16, 2*hiddenDim)
	if err := binary.Read(r, binary.LittleEndian, n.outputWeights); err != nil {
		return nil, fmt.Errorf("nnue: read output weights: %w", err)
	}

	if err := binary.Read(r, binary.LittleEndian, &n.outputBias); err != nil {
		return nil, fmt.Errorf("nnue: read output bias: %w", err)
	}

	return n, nil
}

// NewZeroNetwork returns a tiny all-zero-weight network with hidden
// width h. It is used when no NNUE file is configured, so the engine
// remains runnable (perft, UCI smoke tests) without a shipped weight
// file; the resulting evaluation is always 0 (a material-blind null
// evaluator), which is adequate for move-generation and search-
// plumbing tests but not for real play.
func NewZeroNetwork(h int) *Network {
	n := &Network{hiddenDim: h, scale: 1}
	n.featureWeights = make([][]int16, PSNB*64)
	for i := range n.featureWeights {
		n.featureWeights[i] = make([]int16, h)
	}
	n.featureBias = make([]int16, h)
	n.outputWeights = make([]int16, 2*h)
	return n
}
