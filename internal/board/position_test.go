package board

import (
	"errors"
	"testing"
)

func TestStartPositionAccessors(t *testing.T) {
	pos := NewPosition()
	if pos.KingSquare(White) != E1 || pos.KingSquare(Black) != E8 {
		t.Error("kings are not on e1/e8")
	}
	if pos.PieceAt(D1) != WhiteQueen || pos.PieceAt(G8) != BlackKnight || pos.PieceAt(E4) != NoPiece {
		t.Error("PieceAt is wrong")
	}
	if pos.Occupied().PopCount() != 32 || pos.ByColor(White) != Rank1|Rank2 {
		t.Error("occupancy is wrong")
	}
	if pos.ByType(Pawn) != Rank2|Rank7 || pos.Pieces(Black, Rook) != BitboardOf(A8, H8) {
		t.Error("piece sets are wrong")
	}
	if pos.CastlingRights() != AllCastling || pos.EnPassant() != NoSquare || pos.InCheck() {
		t.Error("start state is wrong")
	}
	if !pos.HasCastlingRight(Black, QueenSide) {
		t.Error("black should be able to castle long")
	}
}

func TestAttackQueries(t *testing.T) {
	pos := NewPosition()
	if got := pos.AttackersTo(F3, White); got != BitboardOf(E2, G2, G1) {
		t.Errorf("attackers of f3 = %v", got.Squares())
	}
	if pos.IsAttacked(E4, White) || pos.IsAttacked(E5, Black) {
		t.Error("nothing attacks the centre at the start")
	}
	if got := pos.AttacksFrom(B1); got != BitboardOf(A3, C3) {
		t.Errorf("attacks from b1 = %v", got.Squares())
	}
	if pos.AttacksFrom(E4) != Empty {
		t.Error("an empty square attacks nothing")
	}

	pos = MustParseFEN("4k3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	if pos.Checkers() != SquareBB(D3) {
		t.Errorf("knight check not detected: %v", pos.Checkers().Squares())
	}
}

func TestBuilder(t *testing.T) {
	pos, err := NewBuilder().
		Piece(WhiteKing, E1).
		Piece(BlackKing, E8).
		Piece(WhiteRook, H1).
		CastlingRight(White, KingSide).
		HalfMoveClock(3).
		FullMoveNumber(20).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := pos.ToFEN(), "4k3/8/8/8/8/8/8/4K2R w K - 3 20"; got != want {
		t.Errorf("built %s, want %s", got, want)
	}

	moved, err := BuilderFrom(pos).Clear(H1).Piece(WhiteRook, A1).CastlingRights(NoCastling).SideToMove(Black).Build()
	if err != nil {
		t.Fatal(err)
	}
	if moved.PieceAt(A1) != WhiteRook || !moved.IsEmpty(H1) || moved.SideToMove() != Black {
		t.Errorf("BuilderFrom result:%s", moved)
	}
	if pos.PieceAt(H1) != WhiteRook {
		t.Error("BuilderFrom modified its source")
	}
	if moved.Hash() != moved.ComputeHash() {
		t.Error("builder left a stale hash")
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
	}{
		{"no black king", NewBuilder().Piece(WhiteKing, E1)},
		{"adjacent kings", NewBuilder().Piece(WhiteKing, E1).Piece(BlackKing, E2)},
		{"bad piece", NewBuilder().Piece(NoPiece, E1)},
		{"negative clock", NewBuilder().Piece(WhiteKing, E1).Piece(BlackKing, E8).HalfMoveClock(-1)},
		{"full-move zero", NewBuilder().Piece(WhiteKing, E1).Piece(BlackKing, E8).FullMoveNumber(0)},
		{"castling without rook", NewBuilder().Piece(WhiteKing, E1).Piece(BlackKing, E8).CastlingRight(White, QueenSide)},
		{"third rook with eight pawns", NewBuilder().Piece(WhiteKing, E1).Piece(BlackKing, E8).
			Piece(WhiteRook, A1).Piece(WhiteRook, B1).Piece(WhiteRook, C1).
			Piece(WhitePawn, A2).Piece(WhitePawn, B2).Piece(WhitePawn, C2).Piece(WhitePawn, D2).
			Piece(WhitePawn, E2).Piece(WhitePawn, F2).Piece(WhitePawn, G2).Piece(WhitePawn, H2)},
	}
	for _, tc := range tests {
		if _, err := tc.b.Build(); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("%s: Build error = %v", tc.name, err)
		}
	}
}

func TestPieceCountLimits(t *testing.T) {
	for _, fen := range []string{
		"7k/8/8/2N5/NNNNNNNN/8/PPPPPPPP/4K3 w - - 0 1",
		"7k/6pp/8/8/8/8/QQQQQQ2/QQQQK3 w - - 0 1",
	} {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidPosition", fen, err)
		}
	}

	// Seven pawns and a third knight: one promotion, still legal.
	pos, err := ParseFEN("4k3/8/8/8/8/8/1PPPPPPP/NNN1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if n := pos.LegalMoves().Len(); n == 0 {
		t.Error("no legal moves")
	}

	// Nine queens is the ceiling once every pawn has promoted.
	if _, err := ParseFEN("7k/6pp/8/8/8/8/QQQQQQ2/QQQ1K3 w - - 0 1"); err != nil {
		t.Errorf("nine queens rejected: %v", err)
	}
}

func TestCopyAndEqual(t *testing.T) {
	pos := MustParseFEN(kiwipeteFEN)
	cp := pos.Copy()
	if !cp.Equal(pos) {
		t.Fatal("copy differs")
	}
	cp.Apply(NewMove(E2, A6))
	if cp.Equal(pos) || pos.PieceAt(E2) != WhiteBishop {
		t.Error("copy shares state with the original")
	}
}
