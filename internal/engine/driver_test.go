package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anellie/chevii/internal/board"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	return NewDriver(materialEvaluator(t), 4)
}

func TestCalculateMoveUntilDepthReturnsLegalMove(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	d := newTestDriver(t)
	move, err := d.CalculateMoveUntilDepth(pos, 2)
	require.NoError(t, err)

	legal := pos.LegalMoves()
	found := false
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == move {
			found = true
			break
		}
	}
	assert.True(t, found, "move %v is not legal in the root position", move)
}

func TestCalculateMoveUntilDepthIsDeterministic(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	d := newTestDriver(t)

	var first board.Move
	for i := 0; i < 5; i++ {
		pos, err := board.ParseFEN(fen)
		require.NoError(t, err)
		move, err := d.CalculateMoveUntilDepth(pos, 2)
		require.NoError(t, err)
		if i == 0 {
			first = move
		} else {
			assert.Equal(t, first, move, "calculate_move_until_depth must be deterministic across runs")
		}
	}
}

func TestCalculateMovePlaysFreeQueenCapture(t *testing.T) {
	// Same free, unrecapturable queen capture as search_test.go: with a real
	// material evaluator the 900-point swing dominates every other root
	// move, so picking it is evidence of the search actually comparing
	// scores rather than an artifact of move-generation order.
	pos, err := board.ParseFEN("7k/8/8/8/3q4/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)

	d := newTestDriver(t)
	move, err := d.CalculateMoveUntilDepth(pos, 2)
	require.NoError(t, err)
	assert.Equal(t, "d4", move.To().String())
}

func TestCalculateMoveAvoidsStalemate(t *testing.T) {
	// White to move, a queen and rook up, against a black king with no legal
	// moves: most quiet moves stalemate Black, while some (Ra8, Qg7) mate
	// and a few keep the position going; the driver must not pick a
	// stalemating move.
	pos, err := board.ParseFEN("7k/8/6QK/8/8/8/8/R7 w - - 0 1")
	require.NoError(t, err)

	d := newTestDriver(t)
	move, err := d.CalculateMoveUntilDepth(pos, 3)
	require.NoError(t, err)

	child := pos.Make(move)
	child.UpdateCheckers()
	assert.NotEqual(t, board.Stalemate, child.Status(), "driver chose a stalemating move despite a winning alternative")
}

func TestCalculateMoveRespectsTimeBudget(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	d := newTestDriver(t)
	start := time.Now()
	_, err = d.CalculateMove(pos, 200*time.Millisecond)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 1500*time.Millisecond)
}

func TestCalculateMoveNoLegalMoves(t *testing.T) {
	pos, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)

	d := newTestDriver(t)
	_, err = d.CalculateMove(pos, 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}
