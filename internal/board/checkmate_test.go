package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: Ra8 against Kh8 boxed in by its own pawns.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(pos)
	t.Log("Checkers bitboard:", pos.Checkers())

	if !pos.InCheck() {
		t.Error("Expected black to be in check")
	}
	if n := pos.LegalMoves().Len(); n != 0 {
		t.Errorf("Expected no legal moves, got %d", n)
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("Checkmate reported as stalemate")
	}
	if got := pos.Result().String(); got != "1-0" {
		t.Errorf("Result = %s, want 1-0", got)
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can take the rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	for m := range pos.LegalMoves().All() {
		t.Log("  Move:", m)
	}

	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
	if !pos.IsLegal(NewMove(H8, G8)) {
		t.Error("Kxg8 should be legal")
	}
}

func TestScholarsMate(t *testing.T) {
	pos := NewPosition()
	for _, m := range []Move{
		NewMove(E2, E4), NewMove(E7, E5),
		NewMove(D1, H5), NewMove(B8, C6),
		NewMove(F1, C4), NewMove(G8, F6),
		NewMove(H5, F7),
	} {
		if !pos.IsLegal(m) {
			t.Fatalf("%s is not legal in %s", m, pos.ToFEN())
		}
		pos.Apply(m)
	}

	if n := pos.LegalMoves().Len(); n != 0 {
		t.Errorf("legal moves after Qxf7 = %d, want 0", n)
	}
	if !pos.InCheck() {
		t.Error("black king should be in check")
	}
	if pos.Status() != Checkmate {
		t.Errorf("Status() = %s, want checkmate", pos.Status())
	}
	if pos.IsStalemate() {
		t.Error("Scholar's mate reported as stalemate")
	}
}

func TestStalemate(t *testing.T) {
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if !pos.IsStalemate() {
		t.Error("Expected stalemate")
	}
	if pos.Status() != Stalemate {
		t.Errorf("Status() = %s, want stalemate", pos.Status())
	}
	r := pos.Result()
	if r.Kind != Draw || r.Draw != DrawStalemate || r.String() != "1/2-1/2" {
		t.Errorf("Result() = %+v, want stalemate draw", r)
	}
}
