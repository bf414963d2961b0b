package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anellie/chevii/internal/board"
)

func TestSortedMovesIsAPermutationOfLegalMoves(t *testing.T) {
	pos, err := board.ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	require.NoError(t, err)
	pos.UpdateCheckers()

	legal := pos.LegalMoves()
	rated := SortedMoves(pos, nil)
	require.Equal(t, legal.Len(), len(rated))

	seen := make(map[board.Move]bool, legal.Len())
	for i := 0; i < legal.Len(); i++ {
		seen[legal.Get(i)] = true
	}
	for _, rm := range rated {
		assert.True(t, seen[rm.Move], "sorted move %v not present in legal moves", rm.Move)
		delete(seen, rm.Move)
	}
	assert.Empty(t, seen, "sorted_moves dropped a legal move")
}

func TestSortedMovesIsDescending(t *testing.T) {
	pos, err := board.ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	require.NoError(t, err)
	pos.UpdateCheckers()

	rated := SortedMoves(pos, nil)
	for i := 1; i < len(rated); i++ {
		assert.GreaterOrEqual(t, rated[i-1].Score, rated[i].Score)
	}
}

func TestCapturingMovesIsSubsetOfSortedMoves(t *testing.T) {
	// White knight on e5 can take a black pawn on d7 or f7 or the black
	// knight on c6; construct a position rich in captures.
	pos, err := board.ParseFEN("r1bqk2r/pppp1ppp/2n5/4N3/1b2P3/8/PPPP1PPP/RNBQKB1R w KQkq - 4 5")
	require.NoError(t, err)
	pos.UpdateCheckers()

	sorted := SortedMoves(pos, nil)
	sortedSet := make(map[board.Move]bool, len(sorted))
	for _, rm := range sorted {
		sortedSet[rm.Move] = true
	}

	opponent := pos.ColorCombined(pos.SideToMove.Other())
	caps := CapturingMoves(pos, nil)
	require.NotEmpty(t, caps)
	for _, rm := range caps {
		assert.True(t, sortedSet[rm.Move], "capture %v missing from sorted_moves", rm.Move)
		assert.NotZero(t, board.SquareBB(rm.Move.To())&opponent, "capture %v does not land on an opponent piece", rm.Move)
	}
}

func TestEvalMovePrefersGoodCaptureOverQuietMove(t *testing.T) {
	// White queen can capture the black queen on d8 in one move (the king on
	// e8 defends it, but MVV/LVA still ranks queen-takes-queen first).
	pos, err := board.ParseFEN("3qk3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	pos.UpdateCheckers()

	rated := SortedMoves(pos, nil)
	require.NotEmpty(t, rated)
	best := rated[0].Move
	assert.Equal(t, "d8", best.To().String())
}
