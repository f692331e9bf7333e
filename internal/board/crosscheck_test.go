package board

import (
	"slices"
	"testing"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

var crossCheckFENs = []string{
	StartFEN,
	kiwipeteFEN,
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
}

func uciStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	slices.Sort(out)
	return out
}

func TestMovesAgreeWithDragontooth(t *testing.T) {
	for _, fen := range crossCheckFENs {
		b := dragontoothmg.ParseFen(fen)
		var want []string
		for _, m := range b.GenerateLegalMoves() {
			want = append(want, m.String())
		}
		slices.Sort(want)

		got := uciStrings(MustParseFEN(fen).LegalMoves().Moves())
		if !slices.Equal(got, want) {
			t.Errorf("%s:\n got %v\nwant %v", fen, got, want)
		}
	}
}

func TestPerftAgreesWithGoose(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, fen := range crossCheckFENs {
		b, err := goosemg.ParseFEN(fen)
		if err != nil {
			t.Fatalf("goosemg.ParseFEN(%q): %v", fen, err)
		}
		want := goosemg.Perft(b, depth)
		if got := perft(MustParseFEN(fen), depth); uint64(got) != want {
			t.Errorf("%s depth %d: got %d, want %d", fen, depth, got, want)
		}
	}
}

func TestSANAgreesWithNotnil(t *testing.T) {
	for _, fen := range crossCheckFENs[:2] {
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		game := chess.NewGame(opt)
		var want []string
		for _, m := range game.ValidMoves() {
			want = append(want, chess.AlgebraicNotation{}.Encode(game.Position(), m))
		}
		slices.Sort(want)

		pos := MustParseFEN(fen)
		var got []string
		for m := range pos.LegalMoves().All() {
			got = append(got, m.ToSAN(pos))
		}
		slices.Sort(got)
		if !slices.Equal(got, want) {
			t.Errorf("%s:\n got %v\nwant %v", fen, got, want)
		}
	}
}
