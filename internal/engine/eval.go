package engine

import (
	"github.com/anellie/chevii/internal/board"
	"github.com/anellie/chevii/internal/nnue"
)

// Evaluate scores pos from the side-to-move's perspective, checking the
// shared NNUE cache before falling back to the evaluator itself.
func Evaluate(pos *board.Position, tt *Table, nn *nnue.Evaluator) int {
	hash := pos.ZobristHash()
	if entry, ok := tt.ProbeEval(hash); ok {
		globalStats.Inc(NNUECacheHits)
		return int(entry.Score)
	}
	globalStats.Inc(NNUECacheMisses)

	sideToMove, pieces, squares := nnueArrays(pos)
	score := int(nn.Evaluate(sideToMove, pieces[:], squares[:]))
	tt.StoreEval(hash, int32(score))
	return score
}

// nnueArrays builds the array-form NNUE input for pos: slots 0 and 1 hold
// the White and Black kings respectively, remaining pieces fill slots 2..N
// in board-enumeration order, and unused trailing slots stay zero so the
// evaluator can find the terminator.
func nnueArrays(pos *board.Position) (sideToMove int32, pieces, squares [33]int32) {
	next := 2
	bb := pos.Occupied[board.White] | pos.Occupied[board.Black]
	for bb != 0 {
		sq := bb.PopLSB()
		piece := pos.PieceAt(sq)
		color := piece.Color()
		pt := piece.Type()
		code := int32(6-int(pt)) + int32(color)*6

		if pt == board.King {
			pieces[color] = code
			squares[color] = int32(sq)
		} else if next < len(pieces) {
			pieces[next] = code
			squares[next] = int32(sq)
			next++
		}
	}

	if pos.SideToMove == board.Black {
		sideToMove = 1
	}
	return sideToMove, pieces, squares
}
