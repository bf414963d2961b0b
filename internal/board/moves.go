package board

import "fmt"

// Move packs a chess move into 16 bits:
//
//	bits 0-5:   from square (0-63)
//	bits 6-11:  to square (0-63)
//	bits 12-13: promotion piece type, offset from Knight (0=N, 1=B, 2=R, 3=Q)
//	bits 14-15: flag (0=normal, 1=promotion, 2=en passant, 3=castling)
type Move uint16

const (
	FlagNormal    uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastling  uint16 = 3 << 14
)

// NoMove is the zero value, used as a sentinel for "no move available".
const NoMove Move = 0

func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

func NewPromotion(from, to Square, promo PieceType) Move {
	promoIdx := promo - Knight
	return Move(from) | Move(to)<<6 | Move(promoIdx)<<12 | Move(FlagPromotion)
}

func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastling builds the king's half of a castling move; the rook's jump is
// applied separately by MakeMove.
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagCastling)
}

func (m Move) From() Square {
	return Square(m & 0x3F)
}

func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

func (m Move) Flag() uint16 {
	return uint16(m) & 0xC000
}

// Promotion is only meaningful when IsPromotion is true.
func (m Move) Promotion() PieceType {
	return PieceType((m>>12)&3) + Knight
}

func (m Move) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCapture reports whether m captures a piece in pos. pos must be the
// position the move is about to be played from, not the one after.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !pos.IsEmpty(m.To())
}

// String renders m in UCI form ("e2e4", "e7e8q"); NoMove renders as "0000".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion()-Knight])
	}

	return s
}

// ParseMove parses a UCI move string against pos, which supplies the piece
// identity needed to detect castling and en passant (UCI itself doesn't flag
// those).
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	pt := piece.Type()

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}

	if pt == Pawn && to == pos.EnPassant {
		return NewEnPassant(from, to), nil
	}

	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity move buffer; move generation never needs more
// than a few dozen entries, so a stack array avoids per-node allocation.
type MoveList struct {
	moves [256]Move
	count int
}

func NewMoveList() *MoveList {
	return &MoveList{}
}

func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

func (ml *MoveList) Len() int {
	return ml.count
}

func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the occupied prefix of the underlying array; callers must
// not retain it past the next Add/Clear on ml.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo captures what UnmakeMove needs to reverse a MakeMove: the captured
// piece and the scalar state (castling rights, en passant square, clocks,
// hash, checkers). UnmakeMove moves the pieces back itself, handling
// promotion, castling and en passant separately. MakeMove leaves the
// PawnKey, KingSquare, Pieces, Occupied and AllOccupied fields unset.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
	KingSquare     [2]Square
	Pieces         [2][6]Bitboard
	Occupied       [2]Bitboard
	AllOccupied    Bitboard
	Valid          bool
}
