// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package uci implements the UCI protocol handshake and command
// dispatch between a chess GUI and the engine's search.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/dstrand/corvid/internal/logging"
	"github.com/dstrand/corvid/internal/movegen"
	"github.com/dstrand/corvid/internal/nnue"
	"github.com/dstrand/corvid/internal/position"
	"github.com/dstrand/corvid/internal/search"
	. "github.com/dstrand/corvid/internal/types"
)

var out = message.NewPrinter(language.English)
var log *logging.Logger

// EngineName and EngineAuthor answer the UCI "uci" handshake.
const (
	EngineName   = "corvid"
	EngineAuthor = "The corvid authors"
)

// Handler owns the engine's side of one UCI session: the position
// under discussion, the search driving it, and the io streams talking
// to the GUI. Create with NewHandler.
type Handler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	net        *nnue.Network
	gen        *movegen.Generator
	mySearch   *search.Search
	myPosition *position.Position
	uciLog     *logging.Logger
}

// NewHandler builds a Handler over a freshly loaded (or zero) NNUE
// network and wires it to a fresh Search as that search's UciHandler.
func NewHandler(net *nnue.Network) *Handler {
	if log == nil {
		log = myLogging.GetLog()
	}
	h := &Handler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		net:        net,
		gen:        movegen.NewGenerator(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(net),
		uciLog:     myLogging.GetUciLog(),
	}
	h.mySearch.SetUciHandler(h)
	return h
}

// Loop reads commands from InIo until "quit" is received or the input
// stream closes.
func (h *Handler) Loop() {
	for h.InIo.Scan() {
		if h.handle(h.InIo.Text()) {
			return
		}
	}
}

// Command runs a single UCI command line and returns whatever the
// engine would have written to the GUI for it. Used by tests and by
// anything driving the engine programmatically instead of over stdio.
func (h *Handler) Command(cmd string) string {
	saved := h.OutIo
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.handle(cmd)
	_ = h.OutIo.Flush()
	h.OutIo = saved
	return buf.String()
}

// search.UciHandler implementation
// ////////////////////////////////////////////////////////////////

// SendReadyOk implements search.UciHandler.
func (h *Handler) SendReadyOk() { h.send("readyok") }

// SendInfoString implements search.UciHandler.
func (h *Handler) SendInfoString(msg string) { h.send(out.Sprintf("info string %s", msg)) }

// SendSearchUpdate implements search.UciHandler.
func (h *Handler) SendSearchUpdate(depth, seldepth int, nodes, nps uint64, elapsed time.Duration, hashfull int) {
	h.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, elapsed.Milliseconds(), hashfull))
}

// SendIterationEndInfo implements search.UciHandler.
func (h *Handler) SendIterationEndInfo(depth, seldepth int, value Value, nodes, nps uint64, elapsed time.Duration, pv movegen.MoveList) {
	h.send(fmt.Sprintf("info depth %d seldepth %d multipv 1 score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, scoreString(value), nodes, nps, elapsed.Milliseconds(), pv.StringUci()))
}

// SendResult implements search.UciHandler.
func (h *Handler) SendResult(best, ponder Move) {
	var b strings.Builder
	b.WriteString("bestmove ")
	b.WriteString(best.StringUci())
	if ponder != MoveNone {
		b.WriteString(" ponder ")
		b.WriteString(ponder.StringUci())
	}
	h.send(b.String())
}

// scoreString renders value the way UCI "info score" expects: an
// exact centipawn score, or a "mate N" count of full moves to mate
// once the value is within mate-distance-pruning range of a forced
// mate.
func scoreString(value Value) string {
	switch {
	case value >= ValueMateIn:
		plies := ValueMate - value
		return fmt.Sprintf("mate %d", (int(plies)+1)/2)
	case value <= -ValueMateIn:
		plies := ValueMate + value
		return fmt.Sprintf("mate -%d", (int(plies)+1)/2)
	default:
		return fmt.Sprintf("cp %d", value)
	}
}

// command dispatch
// ////////////////////////////////////////////////////////////////

var regexWhitespace = regexp.MustCompile(`\s+`)

func (h *Handler) handle(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if len(cmd) == 0 {
		return false
	}
	h.uciLog.Infof("<< %s", cmd)
	tokens := regexWhitespace.Split(cmd, -1)

	switch tokens[0] {
	case "quit":
		h.mySearch.StopSearch()
		return true
	case "uci":
		h.uciCommand()
	case "setoption":
		h.setOptionCommand(tokens)
	case "isready":
		h.mySearch.IsReady()
	case "ucinewgame":
		h.myPosition = position.NewPosition(h.net)
		h.mySearch.NewGame()
	case "position":
		h.positionCommand(tokens)
	case "go":
		h.goCommand(tokens)
	case "stop":
		h.mySearch.StopSearch()
	case "debug", "register":
		h.SendInfoString(out.Sprintf("command %q not implemented", tokens[0]))
	default:
		log.Warningf("unknown UCI command: %s", cmd)
	}
	return false
}

func (h *Handler) uciCommand() {
	h.send("id name " + EngineName)
	h.send("id author " + EngineAuthor)
	for _, o := range optionStrings() {
		h.send(o)
	}
	h.send("uciok")
}

func (h *Handler) setOptionCommand(tokens []string) {
	if len(tokens) < 2 || tokens[1] != "name" {
		h.SendInfoString("command 'setoption' is malformed")
		return
	}
	i := 2
	var name strings.Builder
	for i < len(tokens) && tokens[i] != "value" {
		name.WriteString(tokens[i])
		name.WriteString(" ")
		i++
	}
	value := ""
	if i < len(tokens) && tokens[i] == "value" && i+1 < len(tokens) {
		value = strings.Join(tokens[i+1:], " ")
	}
	opt, ok := uciOptions[strings.TrimSpace(name.String())]
	if !ok {
		h.SendInfoString(out.Sprintf("no such option %q", strings.TrimSpace(name.String())))
		return
	}
	opt.CurrentValue = value
	opt.HandlerFunc(h, opt)
}

func (h *Handler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		h.SendInfoString("command 'position' is malformed")
		return
	}
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var b strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			b.WriteString(tokens[i])
			b.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(b.String())
	default:
		h.SendInfoString(out.Sprintf("command 'position' malformed: %v", tokens))
		return
	}

	p, err := position.NewPositionFen(h.net, fen)
	if err != nil {
		h.SendInfoString(out.Sprintf("invalid fen %q: %v", fen, err))
		fmt.Fprintln(os.Stderr, err)
		return
	}
	h.myPosition = p

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			move := moveFromUci(h.gen, h.myPosition, tokens[i])
			if move == MoveNone {
				h.SendInfoString(out.Sprintf("invalid move %q in %v", tokens[i], tokens))
				return
			}
			h.myPosition.DoMove(move)
		}
	}
}

func (h *Handler) goCommand(tokens []string) {
	limits, ok := h.readSearchLimits(tokens)
	if !ok {
		return
	}
	h.mySearch.StartSearch(h.myPosition, *limits)
}

var regexUciMove = regexp.MustCompile(`^([a-h][1-8][a-h][1-8])([nbrqNBRQ])?$`)

// moveFromUci matches a UCI long-algebraic move string against every
// legal move in pos, returning MoveNone if there is no match.
func moveFromUci(gen *movegen.Generator, pos *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}
	want := matches[1] + strings.ToLower(matches[2])
	ml := gen.GenerateAll(pos)
	for i := 0; i < ml.Len(); i++ {
		if m := ml.At(i); m.StringUci() == want {
			return m
		}
	}
	return MoveNone
}

func (h *Handler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	sl := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		var err error
		switch tokens[i] {
		case "infinite":
			sl.Infinite = true
			i++
		case "ponder":
			sl.Ponder = true
			i++
		case "depth":
			i++
			if sl.Depth, err = requireInt(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			i++
		case "nodes":
			i++
			var n int64
			if n, err = requireInt64(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			sl.Nodes = uint64(n)
			i++
		case "mate":
			i++
			if sl.Mate, err = requireInt(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			i++
		case "movetime":
			i++
			var ms int64
			if ms, err = requireInt64(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			sl.MoveTime = time.Duration(ms) * time.Millisecond
			sl.TimeControl = true
			i++
		case "wtime":
			i++
			var ms int64
			if ms, err = requireInt64(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			sl.WhiteTime = time.Duration(ms) * time.Millisecond
			sl.TimeControl = true
			i++
		case "btime":
			i++
			var ms int64
			if ms, err = requireInt64(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			sl.BlackTime = time.Duration(ms) * time.Millisecond
			sl.TimeControl = true
			i++
		case "winc":
			i++
			var ms int64
			if ms, err = requireInt64(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			sl.WhiteInc = time.Duration(ms) * time.Millisecond
			i++
		case "binc":
			i++
			var ms int64
			if ms, err = requireInt64(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			sl.BlackInc = time.Duration(ms) * time.Millisecond
			i++
		case "movestogo":
			i++
			if sl.MovesToGo, err = requireInt(tokens, i); err != nil {
				h.SendInfoString(err.Error())
				return nil, false
			}
			i++
		case "searchmoves":
			i++
			for i < len(tokens) {
				m := moveFromUci(h.gen, h.myPosition, tokens[i])
				if m == MoveNone {
					break
				}
				sl.Moves.PushBack(m)
				i++
			}
		default:
			h.SendInfoString(out.Sprintf("command 'go' malformed: unknown subcommand %q", tokens[i]))
			return nil, false
		}
	}

	if !(sl.Infinite || sl.Ponder || sl.Depth > 0 || sl.Nodes > 0 || sl.Mate > 0 || sl.TimeControl) {
		h.SendInfoString(out.Sprintf("command 'go' malformed: no effective limit set in %v", tokens))
		return nil, false
	}
	return sl, true
}

func requireInt(tokens []string, i int) (int, error) {
	if i >= len(tokens) {
		return 0, fmt.Errorf("command 'go' malformed: missing value")
	}
	v, err := strconv.Atoi(tokens[i])
	if err != nil {
		return 0, fmt.Errorf("command 'go' malformed: %q is not a number", tokens[i])
	}
	return v, nil
}

func requireInt64(tokens []string, i int) (int64, error) {
	if i >= len(tokens) {
		return 0, fmt.Errorf("command 'go' malformed: missing value")
	}
	v, err := strconv.ParseInt(tokens[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("command 'go' malformed: %q is not a number", tokens[i])
	}
	return v, nil
}

func (h *Handler) send(s string) {
	h.uciLog.Infof(">> %s", s)
	_, _ = h.OutIo.WriteString(s + "\n")
	_ = h.OutIo.Flush()
}
