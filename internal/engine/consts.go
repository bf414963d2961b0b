// Package engine implements the search core: a shared transposition table,
// move ordering, a negamax/PVS/quiescence search kernel, and the iterative
// deepening driver that ties them together under a wall-clock time budget.
package engine

// Score bounds. Infinity is kept well clear of any real evaluation so that
// alpha-beta windows never clip a legitimate score, and Win anchors the mate
// scale: a mate found with k plies of search still remaining is reported as
// Win + k*1000, so mates nearer the root always outscore deeper ones.
const (
	Infinity = 1 << 30
	Win      = 99000
	MateUnit = 1000

	// MaxDepth caps the iterative-deepening loop in Driver.deepen; in
	// practice the time budget or a found mate stops deepening first.
	MaxDepth = 128
)

// mateScore returns the negamax score for being checkmated with depth plies
// of search remaining below the current node.
func mateScore(depth int) int {
	return -(Win + depth*MateUnit)
}

// StalemateScore is deliberately less severe than any loss so the search
// prefers a drawn stalemate over a forced mate, but still avoids it when a
// winning alternative exists (see the stalemate-avoidance test scenario).
const StalemateScore = -Win / 2
