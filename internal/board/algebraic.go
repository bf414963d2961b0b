package board

import (
	"strings"
)

// ToSAN renders m in Standard Algebraic Notation relative to pos (the
// position m is about to be played from). Move itself only knows square
// indices, so piece identity, disambiguation, and check/mate markers all
// require consulting pos.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)

	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		if to > from {
			return "O-O"
		}
		return "O-O-O"
	}

	pt := piece.Type()

	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(disambiguate(pos, m, pt))
	}

	if isCapture := m.IsCapture(pos); isCapture {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promotion()])
	}

	newPos := pos.Copy()
	newPos.MakeMove(m)
	if newPos.IsCheckmate() {
		sb.WriteByte('#')
	} else if newPos.InCheck() {
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguate returns the minimal file/rank/square prefix needed so m's SAN
// is unambiguous among same-type pieces that could also reach m.To().
func disambiguate(pos *Position, m Move, pt PieceType) string {
	from := m.From()
	to := m.To()
	us := pos.SideToMove
	sameType := pos.Pieces[us][pt]

	var candidates []Square
	allMoves := pos.GenerateLegalMoves()
	for i := 0; i < allMoves.Len(); i++ {
		move := allMoves.Get(i)
		if move.To() != to || move.From() == from {
			continue
		}
		if sameType.IsSet(move.From()) {
			candidates = append(candidates, move.From())
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string('a' + byte(from.File()))
	}
	if !sameRank {
		return string('1' + byte(from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a Standard Algebraic Notation string into the matching
// legal move in pos. Returns NoMove, nil if nothing in pos's legal moves
// matches (callers should treat that as "illegal/unrecognized move").
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)

	if s == "O-O" || s == "0-0" {
		if pos.SideToMove == White {
			return NewCastling(E1, G1), nil
		}
		return NewCastling(E8, G8), nil
	}
	if s == "O-O-O" || s == "0-0-0" {
		if pos.SideToMove == White {
			return NewCastling(E1, C1), nil
		}
		return NewCastling(E8, C8), nil
	}

	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")

	promoPiece := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 {
		switch s[idx+1] {
		case 'N':
			promoPiece = Knight
		case 'B':
			promoPiece = Bishop
		case 'R':
			promoPiece = Rook
		case 'Q':
			promoPiece = Queen
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.Replace(s, "x", "", -1)

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, nil
	}
	destStr := s[len(s)-2:]
	dest, err := ParseSquare(destStr)
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To() != dest {
			continue
		}

		from := m.From()
		piece := pos.PieceAt(from)
		if piece.Type() != pt {
			continue
		}

		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}

		if isCapture && !m.IsCapture(pos) {
			continue
		}

		if promoPiece != NoPieceType {
			if !m.IsPromotion() || m.Promotion() != promoPiece {
				continue
			}
		}

		return m, nil
	}

	return NoMove, nil
}

// MovesToSAN renders a sequence of moves played one after another from pos
// (e.g. a principal variation) as SAN strings.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}
