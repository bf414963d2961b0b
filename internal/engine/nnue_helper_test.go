package engine

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anellie/chevii/internal/nnue"
)

// nnueMagic and nnueVersion mirror the unexported constants in
// internal/nnue/nnue.go: that package's file format isn't importable from
// here, so the test double has to reproduce the header bytes by hand.
const (
	nnueMagic   uint32 = 0x4E4E5545
	nnueVersion uint32 = 1
)

// materialEvaluator writes a synthetic PSQT weights file that scores purely
// on material (one uniform weight per piece code, squares ignored) and
// returns a ready Evaluator built from it. Piece values follow the original
// chevii's evaluation.rs PIECE_VALUE table (pawn 100, knight/bishop 300,
// rook 500, queen 900); king is weighted 0 since exactly one is always on
// the board per side and so never contributes to a material difference.
// Engine tests that need a real (non-zero) evaluation to exercise move
// ordering or quiescence use this instead of an un-Init'd nnue.Evaluator,
// which always scores every position 0.
func materialEvaluator(t *testing.T) *nnue.Evaluator {
	t.Helper()

	// White codes 1..6, Black codes 7..12 (see nnue.pieceCodeFromFEN):
	// King, Queen, Rook, Bishop, Knight, Pawn in that order per color.
	values := [15]int32{
		0,               // 0: unused
		0, 900, 500, 300, 300, 100, // 1..6: White K Q R B N P
		0, -900, -500, -300, -300, -100, // 7..12: Black K Q R B N P
		0, 0, // 13, 14: unused
	}

	path := filepath.Join(t.TempDir(), "material.nnue")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, binary.Write(f, binary.LittleEndian, nnueMagic))
	require.NoError(t, binary.Write(f, binary.LittleEndian, nnueVersion))
	for code := 0; code < 15; code++ {
		var row [64]int32
		for sq := range row {
			row[sq] = values[code]
		}
		require.NoError(t, binary.Write(f, binary.LittleEndian, row))
	}
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(0))) // bias

	nn := nnue.New()
	require.True(t, nn.Init(path), "failed to load synthetic material network")
	return nn
}
