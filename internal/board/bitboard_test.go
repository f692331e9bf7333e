package board

import (
	"slices"
	"testing"
)

func TestShiftDoesNotWrap(t *testing.T) {
	tests := []struct {
		name string
		in   Bitboard
		dir  Direction
		want Bitboard
	}{
		{"h-file east", FileH, East, Empty},
		{"a-file west", FileA, West, Empty},
		{"rank 8 north", Rank8, North, Empty},
		{"rank 1 south", Rank1, South, Empty},
		{"h4 north-east", SquareBB(H4), NorthEast, Empty},
		{"a4 north-west", SquareBB(A4), NorthWest, Empty},
		{"h4 south-east", SquareBB(H4), SouthEast, Empty},
		{"a4 south-west", SquareBB(A4), SouthWest, Empty},
		{"e4 east", SquareBB(E4), East, SquareBB(F4)},
		{"e4 south-west", SquareBB(E4), SouthWest, SquareBB(D3)},
		{"g-file east", FileG, East, FileH},
		{"no direction", SquareBB(E4), NoDirection, SquareBB(E4)},
	}
	for _, tc := range tests {
		if got := tc.in.Shift(tc.dir); got != tc.want {
			t.Errorf("%s: Shift = %#x, want %#x", tc.name, uint64(got), uint64(tc.want))
		}
	}
}

func TestScanSentinel(t *testing.T) {
	if Empty.LSB() != NoSquare || Empty.MSB() != NoSquare {
		t.Error("scanning an empty set must return NoSquare")
	}
	bb := BitboardOf(C3, F6, H8)
	if bb.LSB() != C3 || bb.MSB() != H8 {
		t.Errorf("LSB/MSB = %s/%s, want c3/h8", bb.LSB(), bb.MSB())
	}
	if bb.PopCount() != 3 {
		t.Errorf("PopCount = %d, want 3", bb.PopCount())
	}
}

func TestIterationIsAscending(t *testing.T) {
	bb := BitboardOf(H8, A1, E4, B2)
	want := []Square{A1, B2, E4, H8}

	if got := bb.Squares(); !slices.Equal(got, want) {
		t.Errorf("Squares() = %v, want %v", got, want)
	}
	if got := slices.Collect(bb.All()); !slices.Equal(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
	var visited []Square
	bb.ForEach(func(sq Square) { visited = append(visited, sq) })
	if !slices.Equal(visited, want) {
		t.Errorf("ForEach visited %v, want %v", visited, want)
	}
}

func TestFlipAndMirror(t *testing.T) {
	if got := SquareBB(A1).FlipVertical(); got != SquareBB(A8) {
		t.Errorf("a1 flipped = %v", got.Squares())
	}
	if got := SquareBB(C2).MirrorHorizontal(); got != SquareBB(F2) {
		t.Errorf("c2 mirrored = %v", got.Squares())
	}
	if got := Rank2.FlipVertical(); got != Rank7 {
		t.Error("rank 2 should flip onto rank 7")
	}
	if got := FileB.MirrorHorizontal(); got != FileG {
		t.Error("file b should mirror onto file g")
	}
	if got := SquareBB(B1).Rotate180(); got != SquareBB(G8) {
		t.Errorf("b1 rotated = %v", got.Squares())
	}
	for sq := A1; sq <= H8; sq++ {
		if SquareBB(sq).FlipVertical() != SquareBB(sq.Mirror()) {
			t.Fatalf("FlipVertical disagrees with Mirror on %s", sq)
		}
		if SquareBB(sq).MirrorHorizontal() != SquareBB(sq.MirrorFile()) {
			t.Fatalf("MirrorHorizontal disagrees with MirrorFile on %s", sq)
		}
	}
}

func TestSetOperations(t *testing.T) {
	bb := Empty.Set(E4).Set(D5)
	if !bb.IsSet(E4) || !bb.IsSet(D5) || bb.IsSet(E5) {
		t.Error("Set/IsSet mismatch")
	}
	bb = bb.Clear(E4)
	if bb != SquareBB(D5) {
		t.Errorf("Clear left %v", bb.Squares())
	}
	if SquareBB(NoSquare) != Empty {
		t.Error("NoSquare must map to the empty set")
	}
	if !BitboardOf(A1, B1).Several() || SquareBB(A1).Several() {
		t.Error("Several miscounts")
	}
	if DarkSquares.PopCount() != 32 || !DarkSquares.IsSet(A1) || DarkSquares.IsSet(H1) {
		t.Error("DarkSquares mask is wrong")
	}
}

func TestSquareParsing(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		got, err := ParseSquare(sq.String())
		if err != nil || got != sq {
			t.Fatalf("ParseSquare(%q) = %v, %v", sq.String(), got, err)
		}
	}
	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}
	if NoSquare.String() != "-" {
		t.Error("NoSquare should print as -")
	}
}
