package engine

import (
	"sort"

	"github.com/anellie/chevii/internal/board"
)

// RatedMove pairs a move with its move-ordering rank. The score here is not
// a search score: it is only used to order candidates before searching them.
type RatedMove struct {
	Move  board.Move
	Score int
}

// considerValue prices each piece type for move-ordering purposes only. It
// is deliberately coarse: ordering only needs to rank candidates, not
// evaluate them, so it doesn't need the NNUE evaluator's precision.
var considerValue = [6]int{
	board.Pawn:   20,
	board.Knight: 60,
	board.Bishop: 60,
	board.Rook:   100,
	board.Queen:  250,
	board.King:   9990,
}

// SortedMoves enumerates every legal move in pos and orders it descending by
// EvalMove's heuristic score. Ties keep the board package's enumeration
// order (sort.SliceStable), which is deterministic for identical positions.
func SortedMoves(pos *board.Position, tt *Table) []RatedMove {
	moves := pos.LegalMoves()
	return rateAndSort(pos, tt, moves)
}

// CapturingMoves enumerates capture moves (including en passant) plus
// non-capturing pawn promotions, ordered the same way as SortedMoves.
// Quiescence search must see en
// passant captures too: a destination-occupancy mask alone would miss them,
// since the en passant target square is empty.
func CapturingMoves(pos *board.Position, tt *Table) []RatedMove {
	moves := pos.GenerateCaptures()
	return rateAndSort(pos, tt, moves)
}

func rateAndSort(pos *board.Position, tt *Table, moves *board.MoveList) []RatedMove {
	rated := make([]RatedMove, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		rated[i] = RatedMove{Move: m, Score: EvalMove(pos, tt, m)}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Score > rated[j].Score
	})
	return rated
}

// EvalMove rates a single candidate move with cheap heuristics: promotion
// and MVV/LVA capture bonuses, opening-phase development guidance, king
// safety, a TT-history bonus for moves known to lead to deeply searched
// positions, and a check bonus.
func EvalMove(pos *board.Position, tt *Table, m board.Move) int {
	value := 0

	movingPiece := pos.PieceAt(m.From())
	movingType := movingPiece.Type()

	if m.IsPromotion() {
		value += 5 * considerValue[m.Promotion()]
	}

	if m.IsCapture(pos) {
		attacker := considerValue[movingType]
		var victim int
		if m.IsEnPassant() {
			victim = considerValue[board.Pawn]
		} else {
			victim = considerValue[pos.PieceAt(m.To()).Type()]
		}
		value += maxInt(10, 2*victim-attacker)
	}

	us := pos.SideToMove
	ownPawns := pos.Pieces[us][board.Pawn]
	undev := (ownPawns & pawnStartRank(us)).PopCount()
	earlyGame := undev >= 6

	if earlyGame && movingType == board.Pawn {
		file := m.From().File()
		value += (8 - abs(file-4)) * 10
	}
	if earlyGame && m.To().Rank() == backRank(us) {
		value -= 35
	}
	if undev > 6 && movingType == board.Queen {
		value -= 25
	}

	if movingType == board.King && pos.CastleRights(us) != board.NoCastling {
		value -= 25
	}

	var scratch board.Position
	pos.MakeInto(m, &scratch)

	if tt != nil {
		if entry, ok := tt.ProbeSearch(scratch.ZobristHash()); ok {
			globalStats.Inc(TableEvalHits)
			value += 1024 * int(entry.DepthOfSearch) * int(entry.DepthOfScore)
		}
	}

	if scratch.Checkers != 0 {
		value += 50
	}

	return value
}

// pawnStartRank returns the rank each side's pawns begin on, used to count
// undeveloped pawns for the opening-phase heuristics.
func pawnStartRank(c board.Color) board.Bitboard {
	if c == board.White {
		return board.Rank2
	}
	return board.Rank7
}

// backRank returns the rank a side's pieces start on (their "home" rank),
// retreating to which is discouraged during the opening.
func backRank(c board.Color) int {
	if c == board.White {
		return 0
	}
	return 7
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
