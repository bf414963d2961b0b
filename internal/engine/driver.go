package engine

import (
	"context"
	"errors"
	"log"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anellie/chevii/internal/board"
	"github.com/anellie/chevii/internal/nnue"
)

// ErrNoLegalMoves is returned when CalculateMove is asked to move from a
// position with no legal moves (checkmate or stalemate).
var ErrNoLegalMoves = errors.New("engine: no legal moves from this position")

// rootTruncateDepth and rootTruncateFloor govern the root-move-list pruning
// iterative deepening applies at deeper iterations: once a move has scored
// worse than its peers at a shallow depth it is increasingly unlikely to
// become best at a deeper one, so later iterations only re-verify the
// strongest half of the previous iteration's ordering.
const (
	rootTruncateDepth = 4
	rootTruncateFloor = 5

	// rootStartDepth is the first depth the deepening worker searches. Depth
	// 1 is skipped: a full-width one-ply search adds negligible move-ordering
	// information over the static eval_move scores already used to seed L.
	rootStartDepth = 2
)

// Driver runs the iterative-deepening search loop described in the package
// doc: a deepening worker goroutine that searches one depth at a time and
// publishes its best root move, and a controller that enforces a wall-clock
// time budget by polling at a short, fixed interval.
type Driver struct {
	Threads int
	nn      *nnue.Evaluator
}

// NewDriver returns a driver that searches with threads parallel root-move
// workers per depth (at least 1) using nn for leaf evaluation.
func NewDriver(nn *nnue.Evaluator, threads int) *Driver {
	if threads < 1 {
		threads = 1
	}
	return &Driver{Threads: threads, nn: nn}
}

// CalculateMove runs iterative deepening from root until timeBudget elapses,
// returning the best move found by the deepest iteration that completed in
// time. It allocates a fresh transposition table for the search, per the
// package's no-aging replacement policy.
func (d *Driver) CalculateMove(root *board.Position, timeBudget time.Duration) (board.Move, error) {
	root.UpdateCheckers()
	legal := root.LegalMoves()
	if legal.Len() == 0 {
		return 0, ErrNoLegalMoves
	}

	tt := NewTable(DefaultCapacity)
	defer globalStats.Clear()

	results := make(chan []RatedMove, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go d.deepen(ctx, root, tt, results)

	var best []RatedMove
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	deadline := time.Now().Add(timeBudget)

	for {
		select {
		case r, ok := <-results:
			if !ok {
				globalStats.Log()
				return bestMove(best, legal)
			}
			best = r
		case <-ticker.C:
			if time.Now().After(deadline) {
				cancel()
				// Drain once more in case a result landed as we cancelled.
				select {
				case r, ok := <-results:
					if ok {
						best = r
					}
				case <-time.After(time.Millisecond):
				}
				globalStats.Log()
				return bestMove(best, legal)
			}
		}
	}
}

// CalculateMoveUntilDepth runs iterative deepening synchronously up to and
// including depth, with no time budget. It exists for deterministic tests:
// given the same position and depth it always returns the same move.
func (d *Driver) CalculateMoveUntilDepth(root *board.Position, depth int) (board.Move, error) {
	root.UpdateCheckers()
	legal := root.LegalMoves()
	if legal.Len() == 0 {
		return 0, ErrNoLegalMoves
	}

	tt := NewTable(DefaultCapacity)
	defer globalStats.Clear()

	start := rootStartDepth
	if depth < start {
		start = depth
	}

	var L []RatedMove
	for dep := start; dep <= depth; dep++ {
		L = d.calcDepth(root, tt, dep, L)
		globalStats.NextDepth()
	}
	return bestMove(L, legal)
}

// deepen is the worker goroutine: it searches depth 2, 3, 4, ... in sequence,
// publishing the freshly sorted root-move list after each completed depth,
// until ctx is cancelled by the controller.
func (d *Driver) deepen(ctx context.Context, root *board.Position, tt *Table, results chan<- []RatedMove) {
	defer close(results)

	var L []RatedMove
	for dep := rootStartDepth; dep <= MaxDepth; dep++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		L = d.calcDepth(root, tt, dep, L)
		globalStats.NextDepth()

		select {
		case results <- L:
		case <-ctx.Done():
			return
		}

		if len(L) > 0 && isMateScore(L[0].Score) {
			return
		}
	}
}

// calcDepth scores every move in the (possibly already-ordered) root move
// list L at the given depth, in parallel across d.Threads workers, and
// returns the list re-sorted descending by score. At rootTruncateDepth and
// beyond it first truncates L to its strongest half (never fewer than
// rootTruncateFloor moves): moves that already scored poorly at a shallower
// depth are searched less as depth grows, concentrating effort on
// candidates still plausibly best.
func (d *Driver) calcDepth(root *board.Position, tt *Table, depth int, L []RatedMove) []RatedMove {
	if L == nil {
		L = SortedMoves(root, tt)
	} else if depth >= rootTruncateDepth {
		keep := len(L) / 2
		if keep < rootTruncateFloor {
			keep = rootTruncateFloor
		}
		if keep < len(L) {
			L = append([]RatedMove(nil), L[:keep]...)
		}
	}

	workers := d.Threads
	if workers > runtime.GOMAXPROCS(0) {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	scored := make([]RatedMove, len(L))

	for i, rm := range L {
		i, m := i, rm.Move
		g.Go(func() error {
			child := root.Make(m)
			score := -Minimax(child, tt, d.nn, depth-1, depth, -Infinity, Infinity)
			scored[i] = RatedMove{Move: m, Score: score}
			return nil
		})
	}
	g.Wait() // every task returns nil; no error to inspect

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// bestMove resolves the driver's internal root-score list into the move it
// names, falling back to the first legal move if no iteration ever
// completed (an exceptionally tight time budget).
func bestMove(L []RatedMove, legal *board.MoveList) (board.Move, error) {
	if len(L) > 0 {
		return L[0].Move, nil
	}
	if legal.Len() == 0 {
		return 0, ErrNoLegalMoves
	}
	log.Printf("[driver] time budget exhausted before first depth completed, falling back to first legal move")
	return legal.Get(0), nil
}

// isMateScore reports whether score encodes a forced mate, used to stop
// deepening early once one has been found (searching deeper cannot find a
// better result than delivering mate).
func isMateScore(score int) bool {
	s := score
	if s < 0 {
		s = -s
	}
	return s >= Win
}
