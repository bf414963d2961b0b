package engine

import (
	"github.com/anellie/chevii/internal/board"
	"github.com/anellie/chevii/internal/nnue"
)

// Minimax is the negamax alpha-beta search kernel with principal-variation
// search (PVS/NegaScout) and transposition-table probing/storing. depth is
// the remaining depth at this node; totalDepth is the iterative-deepening
// depth of the enclosing search, stored alongside every TT entry so mate
// scores from a shallower search are never mistaken for ones from a deeper
// one. The returned score is always from pos's side-to-move perspective.
func Minimax(pos *board.Position, tt *Table, nn *nnue.Evaluator, depth, totalDepth, alpha, beta int) int {
	if depth <= 0 {
		return ExploreCaptures(pos, tt, nn, alpha, beta)
	}
	globalStats.Inc(NodesEvaluated)

	hash := pos.ZobristHash()
	if entry, ok := tt.ProbeSearch(hash); ok && int(entry.DepthOfScore) >= depth &&
		!(isMateScore(int(entry.Score)) && int(entry.DepthOfSearch) < totalDepth) {
		globalStats.Inc(TableHits)
		return int(entry.Score)
	}
	globalStats.Inc(TableMisses)

	moves := SortedMoves(pos, tt)
	if len(moves) == 0 {
		if pos.InCheck() {
			globalStats.Inc(CheckmatesFound)
			return mateScore(depth)
		}
		return StalemateScore
	}

	child := pos.Make(moves[0].Move)
	best := -Minimax(child, tt, nn, depth-1, totalDepth, -beta, -alpha)
	if best >= beta {
		tt.StoreSearch(hash, int32(best), int16(depth), int16(totalDepth))
		globalStats.Inc(BranchesCut)
		return beta
	}
	if best > alpha {
		alpha = best
	}

	for i := 1; i < len(moves); i++ {
		child := pos.Make(moves[i].Move)

		score := -ScoutSearch(child, tt, nn, depth-1, totalDepth, -alpha)
		if score > alpha && score < beta {
			globalStats.Inc(PVMisses)
			score = -Minimax(child, tt, nn, depth-1, totalDepth, -beta, -score)
		}

		if score >= beta {
			tt.StoreSearch(hash, int32(score), int16(depth), int16(totalDepth))
			globalStats.Inc(BranchesCut)
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	tt.StoreSearch(hash, int32(alpha), int16(depth), int16(totalDepth))
	return alpha
}

// ScoutSearch is the cheap null-window refutation probe used by Minimax for
// every move after the first: it searches the single-point window
// [beta-1, beta], never stores to the TT, and never re-searches with a wide
// window itself (the caller does that on fail-high-inside-window).
func ScoutSearch(pos *board.Position, tt *Table, nn *nnue.Evaluator, depth, totalDepth, beta int) int {
	alpha := beta - 1

	if depth <= 0 {
		return ExploreCaptures(pos, tt, nn, alpha, beta)
	}
	globalStats.Inc(NodesEvaluated)

	hash := pos.ZobristHash()
	if entry, ok := tt.ProbeSearch(hash); ok && int(entry.DepthOfScore) >= depth &&
		!(isMateScore(int(entry.Score)) && int(entry.DepthOfSearch) < totalDepth) {
		globalStats.Inc(TableHits)
		return int(entry.Score)
	}
	globalStats.Inc(TableMisses)

	moves := SortedMoves(pos, tt)
	if len(moves) == 0 {
		if pos.InCheck() {
			globalStats.Inc(CheckmatesFound)
			return mateScore(depth)
		}
		return StalemateScore
	}

	for _, rm := range moves {
		child := pos.Make(rm.Move)
		score := -ScoutSearch(child, tt, nn, depth-1, totalDepth, -alpha)
		if score >= beta {
			globalStats.Inc(BranchesCut)
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// ExploreCaptures is the quiescence extension: past the nominal horizon it
// keeps searching captures and promotions only, treating the static
// evaluation as a lower bound the side to move could "stand pat" on. It is
// not depth-bounded; termination is guaranteed because every such move
// removes a piece or turns a pawn into a piece.
func ExploreCaptures(pos *board.Position, tt *Table, nn *nnue.Evaluator, alpha, beta int) int {
	globalStats.Inc(NodesEvaluated)

	standPat := Evaluate(pos, tt, nn)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	caps := CapturingMoves(pos, tt)
	if len(caps) == 0 {
		return alpha
	}

	child := pos.Make(caps[0].Move)
	best := -ExploreCaptures(child, tt, nn, -beta, -alpha)
	if best >= beta {
		return beta
	}
	if best > alpha {
		alpha = best
	}

	for i := 1; i < len(caps); i++ {
		child := pos.Make(caps[i].Move)

		score := -quiescenceScout(child, tt, nn, -alpha)
		if score > alpha && score < beta {
			score = -ExploreCaptures(child, tt, nn, -beta, -score)
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// quiescenceScout is ExploreCaptures' own null-window scout, mirroring the
// relationship between Minimax and ScoutSearch one level down.
func quiescenceScout(pos *board.Position, tt *Table, nn *nnue.Evaluator, beta int) int {
	alpha := beta - 1
	globalStats.Inc(NodesEvaluated)

	standPat := Evaluate(pos, tt, nn)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	caps := CapturingMoves(pos, tt)
	for _, rm := range caps {
		child := pos.Make(rm.Move)
		score := -quiescenceScout(child, tt, nn, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
