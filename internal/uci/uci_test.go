// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package uci

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dstrand/corvid/internal/nnue"
	"github.com/dstrand/corvid/internal/position"
	. "github.com/dstrand/corvid/internal/types"
)

func testHandler() *Handler {
	return NewHandler(nnue.NewZeroNetwork(16))
}

func TestNewHandlerWiresSearchCallback(t *testing.T) {
	h := testHandler()
	result := h.Command("isready")
	assert.Contains(t, result, "readyok")
}

func TestLoopStopsOnQuit(t *testing.T) {
	h := testHandler()
	h.InIo = bufio.NewScanner(strings.NewReader("uci\nquit\n"))
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.Loop()
	assert.Contains(t, buf.String(), "uciok")
}

func TestUciCommandAnnouncesIdentityAndOptions(t *testing.T) {
	h := testHandler()
	result := h.Command("uci")
	assert.Contains(t, result, "id name corvid")
	assert.Contains(t, result, "Clear Hash")
	assert.Contains(t, result, "uciok")
}

func TestIsReadyCommand(t *testing.T) {
	h := testHandler()
	assert.Contains(t, h.Command("isready"), "readyok")
}

func TestClearHashOption(t *testing.T) {
	h := testHandler()
	result := h.Command("setoption name Clear Hash")
	assert.Contains(t, result, "Hash cleared")
}

func TestResizeHashOption(t *testing.T) {
	h := testHandler()
	result := h.Command("setoption name Hash value 16")
	assert.Contains(t, result, "Hash resized")
}

func TestUnknownOptionReportsError(t *testing.T) {
	h := testHandler()
	result := h.Command("setoption name Nonexistent value 1")
	assert.Contains(t, result, "no such option")
}

func TestPositionStartpos(t *testing.T) {
	h := testHandler()
	h.Command("position startpos")
	assert.Equal(t, position.StartFen, h.myPosition.Fen())
}

func TestPositionFenWithMoves(t *testing.T) {
	h := testHandler()
	h.Command("position fen " + position.StartFen + " moves e2e4 e7e5 g1f3 b8c6")
	assert.Equal(t,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		h.myPosition.Fen())
}

func TestPositionStartposWithMoves(t *testing.T) {
	h := testHandler()
	h.Command("position startpos moves e2e4 e7e5 g1f3 b8c6")
	assert.Equal(t,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		h.myPosition.Fen())
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	h := testHandler()
	result := h.Command("position startpos moves e7e5")
	assert.Contains(t, result, "invalid move")
}

func TestGoDepthProducesBestMove(t *testing.T) {
	h := testHandler()
	h.Command("position startpos")
	h.Command("go depth 2")
	h.mySearch.WaitWhileSearching()
	assert.False(t, h.mySearch.IsSearching())
	assert.NotEqual(t, MoveNone, h.mySearch.LastSearchResult().BestMove)
}

func TestGoWithNoLimitsIsRejected(t *testing.T) {
	h := testHandler()
	h.Command("position startpos")
	result := h.Command("go")
	assert.Contains(t, result, "no effective limit")
}

func TestReadSearchLimitsInfinite(t *testing.T) {
	h := testHandler()
	sl, ok := h.readSearchLimits([]string{"go", "infinite"})
	assert.True(t, ok)
	assert.True(t, sl.Infinite)
	assert.False(t, sl.TimeControl)
}

func TestReadSearchLimitsDepth(t *testing.T) {
	h := testHandler()
	sl, ok := h.readSearchLimits([]string{"go", "depth", "12"})
	assert.True(t, ok)
	assert.Equal(t, 12, sl.Depth)
}

func TestReadSearchLimitsTimeControl(t *testing.T) {
	h := testHandler()
	sl, ok := h.readSearchLimits([]string{"go", "wtime", "60000", "btime", "60000", "winc", "1000", "binc", "1000"})
	assert.True(t, ok)
	assert.True(t, sl.TimeControl)
}

func TestMoveFromUciMatchesLegalMove(t *testing.T) {
	h := testHandler()
	p, _ := position.NewPositionFen(h.net, position.StartFen)
	move := moveFromUci(h.gen, p, "e2e4")
	assert.Equal(t, "e2e4", move.StringUci())
}

func TestMoveFromUciRejectsGarbage(t *testing.T) {
	h := testHandler()
	p, _ := position.NewPositionFen(h.net, position.StartFen)
	move := moveFromUci(h.gen, p, "z9z9")
	assert.Equal(t, MoveNone, move)
}
