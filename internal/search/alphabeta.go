// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package search

import (
	"sort"

	"github.com/dstrand/corvid/internal/config"
	"github.com/dstrand/corvid/internal/movegen"
	"github.com/dstrand/corvid/internal/position"
	"github.com/dstrand/corvid/internal/transpositiontable"
	. "github.com/dstrand/corvid/internal/types"
)

// iterativeDeepening drives the search one ply deeper each iteration
// until stopConditions() fires or maxDepth is reached. Re-sorting the
// root moves by the previous iteration's values before starting the
// next one means the current best move is always searched first, so
// a stopped iteration's partial work is never worse than the last
// completed one.
func (s *Search) iterativeDeepening(p *position.Position, maxDepth int) *Result {
	if s.checkDrawRepAnd50(p, 2) {
		s.sendInfoStringToUci("search called on a drawn position")
		return &Result{BestValue: ValueDraw}
	}

	s.rootMoves = *s.gen[0].GenerateAll(p)
	if s.rootMoves.Len() == 0 {
		if p.InCheck() {
			s.statistics.Checkmates++
			return &Result{BestValue: -ValueMate}
		}
		s.statistics.Stalemates++
		return &Result{BestValue: ValueDraw}
	}
	s.rootValues = make([]Value, s.rootMoves.Len())

	if s.searchLimits.Depth > 0 && s.searchLimits.Depth < maxDepth {
		maxDepth = s.searchLimits.Depth
	}

	alpha, beta := -ValueInf, ValueInf
	bestValue := ValueNone

	for depth := 1; depth <= maxDepth; depth++ {
		s.nodesVisited++
		s.statistics.CurrentIterationDepth = depth
		s.statistics.CurrentSearchDepth = depth
		if s.statistics.CurrentExtraSearchDepth < depth {
			s.statistics.CurrentExtraSearchDepth = depth
		}

		if config.Settings.Search.AspirationDelta > 0 && depth > 3 {
			bestValue = s.aspirationSearch(p, depth, bestValue)
		} else {
			bestValue = s.rootSearch(p, depth, alpha, beta)
		}

		if s.stopConditions() && depth > 1 {
			break
		}
		if s.rootMoves.Len() > 1 {
			s.sortRootMoves()
		}
		s.statistics.CurrentBestRootMove = s.rootMoves.At(0)
		s.statistics.CurrentBestRootMoveValue = s.rootValues[0]
		s.sendIterationEndInfoToUci()

		if s.rootMoves.Len() == 1 {
			break
		}
	}

	result := &Result{
		BestMove:    s.rootMoves.At(0),
		BestValue:   s.rootValues[0],
		PonderMove:  MoveNone,
		SearchDepth: s.statistics.CurrentIterationDepth,
		ExtraDepth:  s.statistics.CurrentExtraSearchDepth,
	}
	if s.pv[0].Len() > 1 {
		result.PonderMove = s.pv[0].At(1)
	} else if s.tt != nil {
		p.DoMove(result.BestMove)
		if e := s.tt.Probe(p.ZobristKey()); e != nil {
			result.PonderMove = e.Move()
		}
		p.UndoMove()
	}
	return result
}

// aspirationSearch re-runs rootSearch with a narrow window centered
// on the previous iteration's value, widening through
// aspirationSteps whenever the result falls outside the window - a
// cheap way to get most of a full-window search's accuracy with far
// fewer nodes on well-behaved (non-tactical) positions.
func (s *Search) aspirationSearch(p *position.Position, depth int, previousValue Value) Value {
	if previousValue == ValueNone {
		return s.rootSearch(p, depth, -ValueInf, ValueInf)
	}
	delta := Value(config.Settings.Search.AspirationDelta)
	for _, step := range aspirationSteps {
		alpha := previousValue - delta
		beta := previousValue + delta
		value := s.rootSearch(p, depth, alpha, beta)
		if s.stopConditions() {
			return value
		}
		if value <= alpha || value >= beta {
			delta = step
			continue
		}
		return value
	}
	return s.rootSearch(p, depth, -ValueInf, ValueInf)
}

// rootSearch searches every root move at the given depth, storing
// each move's value for the next iteration's move ordering and
// recording the best line found into s.pv[0].
func (s *Search) rootSearch(p *position.Position, depth int, alpha, beta Value) Value {
	bestNodeValue := -ValueInf

	for i := 0; i < s.rootMoves.Len(); i++ {
		m := s.rootMoves.At(i)

		p.DoMove(m)
		s.nodesVisited++
		s.statistics.CurrentVariation = append(s.statistics.CurrentVariation, m)
		s.statistics.CurrentRootMoveIndex = i
		s.statistics.CurrentRootMove = m

		var value Value
		if s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else if i == 0 {
			value = -s.search(p, depth-1, 1, -beta, -alpha, true, true)
		} else {
			value = -s.search(p, depth-1, 1, -alpha-1, -alpha, false, true)
			if value > alpha && value < beta && !s.stopConditions() {
				s.statistics.RootPvsResearches++
				value = -s.search(p, depth-1, 1, -beta, -alpha, true, true)
			}
		}

		s.statistics.CurrentVariation = s.statistics.CurrentVariation[:len(s.statistics.CurrentVariation)-1]
		p.UndoMove()

		if s.stopConditions() && depth > 1 {
			return bestNodeValue
		}

		s.rootValues[i] = value
		if value > bestNodeValue {
			bestNodeValue = value
			savePV(m, s.pv[1], &s.pv[0])
			if value > alpha {
				alpha = value
			}
		}
	}
	return bestNodeValue
}

// sortRootMoves reorders s.rootMoves/s.rootValues by descending value,
// so the strongest move from the finished iteration is searched first
// (and therefore establishes the tightest alpha) in the next one.
func (s *Search) sortRootMoves() {
	type scored struct {
		move  Move
		value Value
	}
	tmp := make([]scored, s.rootMoves.Len())
	for i := 0; i < s.rootMoves.Len(); i++ {
		tmp[i] = scored{s.rootMoves.At(i), s.rootValues[i]}
	}
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].value > tmp[j].value })
	for i, r := range tmp {
		s.rootMoves.Set(i, r.move)
		s.rootValues[i] = r.value
	}
}

// search is the recursive negamax core for ply > 0. depth is the
// remaining search depth; once it reaches zero, control passes to
// qsearch. isPV marks a principal-variation node (searched with a
// full window); doNull guards against doing two null moves in a row.
func (s *Search) search(p *position.Position, depth, ply int, alpha, beta Value, isPV, doNull bool) Value {
	if s.stopConditions() {
		return ValueNone
	}
	if depth <= 0 || ply >= MaxPly {
		return s.qsearch(p, ply, alpha, beta, isPV)
	}

	// Mate distance pruning: a mate already found closer to the root
	// makes a deeper one irrelevant.
	if alpha < -ValueMate+Value(ply) {
		alpha = -ValueMate + Value(ply)
	}
	if beta > ValueMate-Value(ply) {
		beta = ValueMate - Value(ply)
	}
	if alpha >= beta {
		s.statistics.Mdp++
		return alpha
	}

	us := p.SideToMove()
	hasCheck := p.InCheck()
	bestNodeValue := -ValueInf
	bestNodeMove := MoveNone
	ttMove := MoveNone
	ttType := VtUpper

	var ttEntry *transpositiontable.TtEntry
	if s.tt != nil {
		ttEntry = s.tt.Probe(p.ZobristKey())
		if ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move()
			if int(ttEntry.Depth()) >= depth {
				ttValue := valueFromTT(ttEntry.Value(), ply)
				cut := false
				switch ttEntry.Vtype() {
				case VtExact:
					cut = true
				case VtUpper:
					cut = ttValue <= alpha
				case VtLower:
					cut = ttValue >= beta
				}
				if cut {
					s.statistics.TTCuts++
					return ttValue
				}
				s.statistics.TTNoCuts++
			}
		} else {
			s.statistics.TTMiss++
		}
	}

	matethreat := false
	if config.Settings.Search.UseNullMove && doNull && !isPV && depth >= 3 && !hasCheck &&
		p.NonPawnMaterial(us) > 0 {
		const reduction = 2
		newDepth := depth - reduction - 1
		if newDepth < 0 {
			newDepth = 0
		}
		info := p.DoNullMove()
		s.nodesVisited++
		nValue := -s.search(p, newDepth, ply+1, -beta, -beta+1, false, false)
		p.UndoNullMove(info)

		if s.stopConditions() {
			return ValueNone
		}
		switch {
		case nValue >= ValueMateIn:
			s.statistics.NMPMateBeta++
			nValue = ValueMateIn
		case nValue <= -ValueMateIn:
			s.statistics.NMPMateAlpha++
			matethreat = true
		}
		if nValue >= beta {
			s.statistics.NullMoveCuts++
			if s.tt != nil {
				s.storeTT(p, depth, ply, ttMove, nValue, VtLower)
			}
			return nValue
		}
	}

	ml := s.gen[ply].GenerateAll(p)
	if ml.Len() == 0 {
		if hasCheck {
			s.statistics.Checkmates++
			return -ValueMate + Value(ply)
		}
		s.statistics.Stalemates++
		return ValueDraw
	}

	prevMove := p.LastMove()
	prevPiece, prevTo := PieceNone, SqNone
	if prevMove != MoveNone {
		prevTo = prevMove.To()
		prevPiece = p.PieceAt(prevTo)
	}
	scores := make([]int32, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		scores[i] = s.order.Score(p, ml.At(i), ttMove, ply, prevPiece, prevTo)
	}
	movegen.Sort(ml, scores)

	var value Value
	movesSearched := 0
	for i := 0; i < ml.Len(); i++ {
		move := ml.At(i)

		newDepth := depth - 1
		lmrDepth := newDepth
		givesCheck := p.GivesCheck(move)

		// Check extension: follow up a checking move with the
		// normal search's prunings rather than dropping straight
		// into quiescence.
		extended := false
		if givesCheck {
			s.statistics.CheckExtension++
			newDepth++
			extended = true
		}
		lmrDepth = newDepth

		if config.Settings.Search.UseLMR && !isPV && !extended &&
			move != ttMove && !s.order.IsKiller(ply, move) &&
			!move.IsCapture() && !move.IsPromotion() &&
			!hasCheck && !givesCheck && !matethreat &&
			depth >= 3 && movesSearched >= 3 {
			lmrDepth -= LmrReduction(depth, movesSearched)
			if lmrDepth < 0 {
				lmrDepth = 0
			}
			s.statistics.LmrReductions++
		}

		p.DoMove(move)
		s.nodesVisited++
		s.statistics.CurrentVariation = append(s.statistics.CurrentVariation, move)
		s.sendSearchUpdateToUci()

		if s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else if movesSearched == 0 {
			value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
		} else {
			value = -s.search(p, lmrDepth, ply+1, -alpha-1, -alpha, false, true)
			if value > alpha && !s.stopConditions() {
				if lmrDepth < newDepth {
					s.statistics.LmrResearches++
					value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
				} else if value < beta {
					s.statistics.PvsResearches++
					value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
				}
			}
		}

		movesSearched++
		s.statistics.CurrentVariation = s.statistics.CurrentVariation[:len(s.statistics.CurrentVariation)-1]
		p.UndoMove()

		if s.stopConditions() {
			return ValueNone
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], &s.pv[ply])
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					if !move.IsCapture() {
						s.order.StoreKiller(ply, move)
						s.order.AddHistory(us, move, depth)
						if prevMove != MoveNone {
							s.order.StoreCounterMove(prevPiece, prevTo, move)
						}
					}
					if s.tt != nil {
						s.storeTT(p, depth, ply, bestNodeMove, bestNodeValue, VtLower)
					}
					return bestNodeValue
				}
				alpha = value
				ttType = VtExact
			}
		}
	}

	if s.tt != nil {
		s.storeTT(p, depth, ply, bestNodeMove, bestNodeValue, ttType)
	}
	return bestNodeValue
}

// qsearch extends the search past depth zero along capturing lines
// (and every line while in check) so the static evaluation is never
// taken in the middle of an unresolved exchange.
func (s *Search) qsearch(p *position.Position, ply int, alpha, beta Value, isPV bool) Value {
	if s.statistics.CurrentExtraSearchDepth < ply {
		s.statistics.CurrentExtraSearchDepth = ply
	}
	if ply >= MaxPly {
		return s.evaluate(p, ply)
	}

	if alpha < -ValueMate+Value(ply) {
		alpha = -ValueMate + Value(ply)
	}
	if beta > ValueMate-Value(ply) {
		beta = ValueMate - Value(ply)
	}
	if alpha >= beta {
		s.statistics.Mdp++
		return alpha
	}

	hasCheck := p.InCheck()
	bestNodeValue := -ValueInf
	ttType := VtUpper
	ttMove := MoveNone

	if !hasCheck {
		staticEval := s.evaluate(p, ply)
		if staticEval > alpha {
			if staticEval >= beta {
				s.statistics.StandpatCuts++
				return staticEval
			}
			alpha = staticEval
		}
		bestNodeValue = staticEval
	}

	if s.tt != nil {
		if ttEntry := s.tt.Probe(p.ZobristKey()); ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move()
			ttValue := valueFromTT(ttEntry.Value(), ply)
			cut := false
			switch ttEntry.Vtype() {
			case VtExact:
				cut = true
			case VtUpper:
				cut = ttValue <= alpha
			case VtLower:
				cut = ttValue >= beta
			}
			if cut {
				s.statistics.TTCuts++
				return ttValue
			}
			s.statistics.TTNoCuts++
		} else {
			s.statistics.TTMiss++
		}
	}

	if hasCheck {
		s.statistics.CheckInQS++
	}

	ml := s.gen[ply].GenerateAll(p)
	scores := make([]int32, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		scores[i] = s.order.Score(p, ml.At(i), ttMove, ply, PieceNone, SqNone)
	}
	movegen.Sort(ml, scores)

	bestNodeMove := MoveNone
	movesSearched := 0
	var value Value

	for i := 0; i < ml.Len(); i++ {
		move := ml.At(i)
		if !hasCheck {
			if !move.IsCapture() && !move.IsPromotion() {
				continue
			}
			if !s.goodCapture(p, move) {
				continue
			}
		}

		p.DoMove(move)
		s.nodesVisited++
		s.statistics.CurrentVariation = append(s.statistics.CurrentVariation, move)

		if hasCheck && s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else {
			value = -s.qsearch(p, ply+1, -beta, -alpha, isPV)
		}

		movesSearched++
		s.statistics.CurrentVariation = s.statistics.CurrentVariation[:len(s.statistics.CurrentVariation)-1]
		p.UndoMove()

		if s.stopConditions() {
			return ValueNone
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], &s.pv[ply])
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					ttType = VtLower
					if s.tt != nil {
						s.storeTT(p, 0, ply, bestNodeMove, bestNodeValue, ttType)
					}
					return bestNodeValue
				}
				alpha = value
				ttType = VtExact
			}
		}
	}

	if movesSearched == 0 && hasCheck {
		s.statistics.Checkmates++
		bestNodeValue = -ValueMate + Value(ply)
		ttType = VtExact
	}

	if s.tt != nil {
		s.storeTT(p, 0, ply, bestNodeMove, bestNodeValue, ttType)
	}
	return bestNodeValue
}

// evaluate runs the position's NNUE forward pass, caching the result
// in the transposition table at depth zero so a transposition into
// the same quiet position in a sibling line skips the forward pass.
func (s *Search) evaluate(p *position.Position, ply int) Value {
	if s.tt != nil {
		if e := s.tt.Probe(p.ZobristKey()); e != nil && e.Vtype() == VtExact {
			s.statistics.TTHit++
			s.statistics.EvaluationsFromTT++
			return valueFromTT(e.Value(), ply)
		}
	}
	s.statistics.Evaluations++
	s.statistics.LeafPositionsEvaluated++
	value := p.Evaluate()
	if s.tt != nil {
		s.storeTT(p, 0, ply, MoveNone, value, VtExact)
	}
	return value
}

// goodCapture filters quiescence's capture list down to exchanges
// worth resolving: SEE gives the exact net material gain, so any
// non-negative result is worth playing out.
func (s *Search) goodCapture(p *position.Position, move Move) bool {
	if !move.IsCapture() {
		return true
	}
	return see(p, move) >= 0
}

// savePV makes move the first entry of dest, followed by every move
// in src - the standard "prepend to child's PV" step that builds the
// whole principal variation back up to the root as the recursion
// unwinds.
func savePV(move Move, src movegen.MoveList, dest *movegen.MoveList) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, src...)
}

// storeTT records depth/value/type into the transposition table,
// adjusting a mate score for the distance from the root first so a
// shallower transposition into the same mate doesn't misreport how
// far away it is.
func (s *Search) storeTT(p *position.Position, depth, ply int, move Move, value Value, vtype ValueType) {
	s.tt.Put(p.ZobristKey(), move, int8(depth), valueToTT(value, ply), vtype, ValueNone)
}

// valueToTT adjusts a mate-distance score from "plies from here" to
// "plies from the position being stored" before writing it to the
// table.
func valueToTT(value Value, ply int) Value {
	switch {
	case value >= ValueMateIn:
		return value + Value(ply)
	case value <= -ValueMateIn:
		return value - Value(ply)
	default:
		return value
	}
}

// valueFromTT reverses valueToTT when reading a stored value back out
// at the current ply.
func valueFromTT(value Value, ply int) Value {
	switch {
	case value >= ValueMateIn:
		return value - Value(ply)
	case value <= -ValueMateIn:
		return value + Value(ply)
	default:
		return value
	}
}
