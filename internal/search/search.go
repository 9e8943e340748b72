// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package search implements iterative-deepening negamax with
// principal variation search, a transposition table, null-move
// pruning, late move reductions and quiescence search. Drive it
// through NewSearch/StartSearch/StopSearch from the UCI command
// dispatcher.
package search

import (
	"context"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dstrand/corvid/internal/config"
	myLogging "github.com/dstrand/corvid/internal/logging"
	"github.com/dstrand/corvid/internal/movegen"
	"github.com/dstrand/corvid/internal/position"
	"github.com/dstrand/corvid/internal/transpositiontable"
	. "github.com/dstrand/corvid/internal/types"
	"github.com/dstrand/corvid/internal/util"
)

var out = message.NewPrinter(language.English)

// MaxPly bounds the per-ply scratch arrays (move generators, PV
// lines); deeper than any iterative-deepening search configured
// through config.Settings.Search.MaxDepth will reach.
const MaxPly = 128

// UciHandler is the subset of UCI output the search drives; the uci
// package's command dispatcher implements it. With a nil handler the
// search logs info strings and iteration results to the standard
// logger instead; periodic progress updates and the best move are then
// not reported.
type UciHandler interface {
	SendReadyOk()
	SendInfoString(msg string)
	SendSearchUpdate(depth, seldepth int, nodes, nps uint64, elapsed time.Duration, hashfull int)
	SendIterationEndInfo(depth, seldepth int, value Value, nodes, nps uint64, elapsed time.Duration, pv movegen.MoveList)
	SendResult(best, ponder Move)
}

// Search holds all state for one engine's worth of search activity:
// the transposition table and move-ordering heuristics persist across
// searches within a game, everything else is reset by run().
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	uciHandler    UciHandler
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt    *transpositiontable.TtTable
	order *movegen.OrderTable

	lastSearchResult *Result

	stopFlag          bool
	startTime         time.Time
	hasResult         bool
	searchLimits      *Limits
	timeLimit         time.Duration
	extraTime         time.Duration
	nodesVisited      uint64
	gen               []*movegen.Generator
	pv                []movegen.MoveList
	rootMoves         movegen.MoveList
	rootValues        []Value
	lastUciUpdateTime time.Time
	statistics        Statistics
}

// NewSearch returns a Search with no UCI handler attached (output
// goes to the standard logger until SetUciHandler is called).
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		slog:          myLogging.GetSearchLog(),
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
		order:         movegen.NewOrderTable(),
	}
}

// NewGame stops any running search and clears every cache so the next
// search starts with no memory of the previous game.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.order.Clear()
}

// StartSearch begins searching p under sl in a new goroutine. Returns
// once the search has finished initializing (so a concurrent StopSearch
// is guaranteed to see it as running); call WaitWhileSearching or rely
// on the UciHandler callback to learn when it actually finishes.
func (s *Search) StartSearch(p *position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.Background(), 1)
	go s.run(p, &sl)
	_ = s.initSemaphore.Acquire(context.Background(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch requests the running search stop as soon as possible and
// blocks until it has.
func (s *Search) StopSearch() {
	s.stopFlag = true
	s.WaitWhileSearching()
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until any running search has finished.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.Background(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler attaches the UCI output sink.
func (s *Search) SetUciHandler(h UciHandler) { s.uciHandler = h }

// IsReady lazily initializes the search (building the transposition
// table) and reports back through the UciHandler, the handshake a
// UCI GUI uses to confirm the engine is alive before sending "go".
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandler != nil {
		s.uciHandler.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// ClearHash empties the transposition table. Refused while a search is
// running.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		s.sendInfoStringToUci("cannot clear hash while searching")
		return
	}
	if s.tt != nil {
		s.tt.Clear()
	}
}

// ResizeCache rebuilds the transposition table at the size currently
// configured. Refused while a search is running.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		s.sendInfoStringToUci("cannot resize hash while searching")
		return
	}
	s.tt = nil
	s.initialize()
}

// LastSearchResult returns a copy of the most recently finished search
// result.
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// NodesVisited returns the node count of the most recent search.
func (s *Search) NodesVisited() uint64 { return s.nodesVisited }

// Statistics returns the most recent search's counters.
func (s *Search) Statistics() *Statistics { return &s.statistics }

// run is the goroutine StartSearch launches. It owns the whole
// lifecycle of one search: resetting per-search state, running
// iterative deepening, and reporting the result.
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("search already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.stopFlag = false
	s.hasResult = false
	s.timeLimit = 0
	s.extraTime = 0
	s.nodesVisited = 0
	s.statistics = Statistics{}
	s.lastUciUpdateTime = s.startTime
	s.searchLimits = sl
	s.initialize()
	s.setupSearchLimits(p, sl)

	if sl.TimeControl && !sl.Ponder {
		s.startTimer()
	}

	if s.tt != nil {
		s.tt.AgeEntries()
	}

	maxDepth := config.Settings.Search.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}
	s.gen = make([]*movegen.Generator, MaxPly+1)
	s.pv = make([]movegen.MoveList, MaxPly+1)
	for i := range s.gen {
		s.gen[i] = movegen.NewGenerator()
		s.pv[i] = *movegen.NewMoveList(MaxPly + 1)
	}

	s.initSemaphore.Release(1)

	result := s.iterativeDeepening(p, maxDepth)

	if (sl.Ponder || sl.Infinite) && !s.stopFlag {
		for !s.stopFlag && (sl.Ponder || sl.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	result.SearchTime = time.Since(s.startTime)
	result.Pv = s.pv[0]
	s.log.Info(out.Sprintf("search finished after %s: %s", result.SearchTime, result.String()))
	s.log.Debugf("search stats: %s", s.statistics.String())

	s.lastSearchResult = result
	s.hasResult = true
	s.stopFlag = true
	s.sendResult(result)
}

// initialize lazily builds the transposition table; idempotent.
func (s *Search) initialize() {
	if s.tt == nil {
		size := config.Settings.Search.TTSizeMB
		if size <= 0 {
			size = 64
		}
		s.tt = transpositiontable.NewTtTable(size)
	}
}

// stopConditions reports whether the search must return immediately:
// an explicit stop, or a configured node budget reached.
func (s *Search) stopConditions() bool {
	if s.stopFlag {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag = true
	}
	return s.stopFlag
}

func (s *Search) setupSearchLimits(p *position.Position, sl *Limits) {
	if sl.TimeControl {
		s.timeLimit = s.setupTimeControl(p, sl)
		s.extraTime = 0
	}
}

// setupTimeControl derives a per-move time budget from the remaining
// clock, increment and moves-to-go, the same way a sudden-death or
// moves-to-go time control is conventionally split across the rest of
// the game.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		d := sl.MoveTime - 20*time.Millisecond
		if d < 0 {
			return sl.MoveTime
		}
		return d
	}

	movesLeft := int64(sl.MovesToGo)
	if movesLeft == 0 {
		movesLeft = 30
	}

	var timeLeft time.Duration
	if p.SideToMove() == White {
		timeLeft = sl.WhiteTime + time.Duration(movesLeft)*sl.WhiteInc
	} else {
		timeLeft = sl.BlackTime + time.Duration(movesLeft)*sl.BlackInc
	}

	limit := timeLeft / time.Duration(movesLeft)
	if limit.Milliseconds() < 100 {
		limit = time.Duration(float64(limit) * 0.8)
	} else {
		limit = time.Duration(float64(limit) * 0.9)
	}
	return limit
}

// startTimer runs a relaxed busy-wait that sets stopFlag once the time
// budget (plus any extra time granted mid-search) elapses.
func (s *Search) startTimer() {
	go func() {
		start := time.Now()
		for time.Since(start) < s.timeLimit+s.extraTime && !s.stopFlag {
			time.Sleep(5 * time.Millisecond)
		}
		s.stopFlag = true
	}()
}

// checkDrawRepAnd50 reports whether p is a draw by repetition or the
// fifty-move rule, the two draw conditions the search itself must
// recognize mid-tree (checkmate/stalemate fall out of the move loop
// finding zero legal moves instead).
func (s *Search) checkDrawRepAnd50(p *position.Position, reps int) bool {
	return p.CheckRepetitions(reps) || p.HalfmoveClock() >= 100
}

func (s *Search) sendResult(r *Result) {
	if s.uciHandler != nil {
		s.uciHandler.SendResult(r.BestMove, r.PonderMove)
	}
}

func (s *Search) sendInfoStringToUci(msg string) {
	if s.uciHandler != nil {
		s.uciHandler.SendInfoString(msg)
	} else {
		s.log.Info(msg)
	}
}

// sendSearchUpdateToUci throttles progress reporting to once a second,
// the cadence a UCI GUI expects for "info depth ... nodes ..." lines.
func (s *Search) sendSearchUpdateToUci() {
	if time.Since(s.lastUciUpdateTime) < time.Second {
		return
	}
	s.lastUciUpdateTime = time.Now()
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	if s.uciHandler != nil {
		s.uciHandler.SendSearchUpdate(s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.nodesVisited, s.getNps(), time.Since(s.startTime), hashfull)
	}
}

func (s *Search) sendIterationEndInfoToUci() {
	if s.uciHandler != nil {
		s.uciHandler.SendIterationEndInfo(s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue, s.nodesVisited, s.getNps(), time.Since(s.startTime), s.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %d nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue, s.nodesVisited, s.getNps(),
			time.Since(s.startTime).Milliseconds(), s.pv[0].StringUci()))
	}
}

// getNps computes the current nodes-per-second rate, discarding
// implausibly high values from very short elapsed times.
func (s *Search) getNps() uint64 {
	nps := util.Nps(s.nodesVisited, int64(time.Since(s.startTime))+1)
	if nps > 15_000_000 {
		return 0
	}
	return nps
}

func init() {
	config.Setup()
}
