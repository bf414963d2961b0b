package board

import "testing"

func TestToSANBasicMove(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	m := NewMove(E2, E4)
	if got := m.ToSAN(pos); got != "e4" {
		t.Errorf("ToSAN(e2e4) = %q, want %q", got, "e4")
	}
}

func TestToSANDisambiguatesByFile(t *testing.T) {
	// Knights on a1 and c1 can both jump to b3.
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/N1N1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	m := NewMove(A1, B3)
	if got := m.ToSAN(pos); got != "Nab3" {
		t.Errorf("ToSAN(a1b3) = %q, want %q", got, "Nab3")
	}
}

func TestToSANMarksCheckAndMate(t *testing.T) {
	// Textbook king+rook corner mate: Rh8# with the rook covering b8 and the
	// white king on b6 covering a7/b7. Ra1 is only check: b8 stays free.
	pos, err := ParseFEN("k7/8/1K6/8/8/8/8/7R w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	m := NewMove(H1, H8)
	if got := m.ToSAN(pos); got != "Rh8#" {
		t.Errorf("ToSAN(h1h8) = %q, want %q", got, "Rh8#")
	}

	check := NewMove(H1, A1)
	if got := check.ToSAN(pos); got != "Ra1+" {
		t.Errorf("ToSAN(h1a1) = %q, want %q", got, "Ra1+")
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	pos, err := ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		want := legal.Get(i)
		san := want.ToSAN(pos)
		got, err := ParseSAN(san, pos)
		if err != nil {
			t.Fatalf("ParseSAN(%q): %v", san, err)
		}
		if got != want {
			t.Errorf("ParseSAN(%q) = %v, want %v", san, got, want)
		}
	}
}

func TestParseSANCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	m, err := ParseSAN("O-O", pos)
	if err != nil {
		t.Fatalf("ParseSAN: %v", err)
	}
	if !m.IsCastling() || m.To() != G1 {
		t.Errorf("ParseSAN(O-O) = %v, want kingside castle to g1", m)
	}
}

func TestMovesToSAN(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	moves := []Move{NewMove(E2, E4), NewMove(E7, E5)}
	sans := MovesToSAN(pos, moves)
	if len(sans) != 2 || sans[0] != "e4" || sans[1] != "e5" {
		t.Errorf("MovesToSAN = %v, want [e4 e5]", sans)
	}
}
