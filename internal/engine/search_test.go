package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anellie/chevii/internal/board"
	"github.com/anellie/chevii/internal/nnue"
)

func startingPosition(t *testing.T) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	pos.UpdateCheckers()
	return pos
}

func TestMinimaxScoreSymmetry(t *testing.T) {
	pos := startingPosition(t)
	nn := nnue.New() // unready: Evaluate always returns 0, which still exercises the kernel

	tt1 := NewTable(1 << 10)
	moves := pos.LegalMoves()
	child := pos.Make(moves.Get(0))

	a, b := -500, 500
	s1 := Minimax(child, tt1, nn, 2, 2, a, b)

	tt2 := NewTable(1 << 10)
	s2 := Minimax(child, tt2, nn, 2, 2, -b, -a)

	assert.Equal(t, s1, -s2, "minimax(child, -beta, -alpha) must equal -minimax(child, alpha, beta)")
}

func TestExploreCapturesTerminatesAndRespectsWindow(t *testing.T) {
	// White queen on the long diagonal from the black queen, out of reach of
	// either king: a genuinely free capture, with no possible recapture.
	pos, err := board.ParseFEN("7k/8/8/8/3q4/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)
	pos.UpdateCheckers()

	tt := NewTable(1 << 10)
	nn := materialEvaluator(t)

	score := ExploreCaptures(pos, tt, nn, -Infinity, Infinity)
	assert.Equal(t, 900, score, "free, unrecapturable queen capture should net exactly a queen's value")

	narrow := ExploreCaptures(pos, tt, nn, -100, 100)
	assert.Equal(t, 100, narrow, "a score above beta must be cut off at beta (fail-hard)")
}

func TestMinimaxFindsCheckmateInOne(t *testing.T) {
	// White to move: the black king on g8 is boxed in by the white king on
	// g6 (covering f7/g7/h7), and Qd8 delivers mate along the back rank.
	pos, err := board.ParseFEN("6k1/8/6K1/6Q1/8/8/8/8 w - - 0 1")
	require.NoError(t, err)
	pos.UpdateCheckers()

	tt := NewTable(1 << 10)
	nn := nnue.New()

	best := -Infinity
	var bestMoveFound board.Move
	for _, rm := range SortedMoves(pos, tt) {
		child := pos.Make(rm.Move)
		score := -Minimax(child, tt, nn, 1, 1, -Infinity, Infinity)
		if score > best {
			best = score
			bestMoveFound = rm.Move
		}
	}

	require.NotZero(t, bestMoveFound)
	assert.True(t, isMateScore(best), "expected a mate score, got %d", best)
}

func TestMinimaxReturnsStalemateScoreWhenNoMovesAndNotInCheck(t *testing.T) {
	pos, err := board.ParseFEN("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)
	pos.UpdateCheckers()

	tt := NewTable(1 << 10)
	nn := nnue.New()

	score := Minimax(pos, tt, nn, 3, 3, -Infinity, Infinity)
	assert.Equal(t, StalemateScore, score)
}
