package board

import (
	"iter"
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = 0x0202020202020202
	FileC Bitboard = 0x0404040404040404
	FileD Bitboard = 0x0808080808080808
	FileE Bitboard = 0x1010101010101010
	FileF Bitboard = 0x2020202020202020
	FileG Bitboard = 0x4040404040404040
	FileH Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank3 Bitboard = 0x0000000000FF0000
	Rank4 Bitboard = 0x00000000FF000000
	Rank5 Bitboard = 0x000000FF00000000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)

	DarkSquares  Bitboard = 0xAA55AA55AA55AA55
	LightSquares Bitboard = ^DarkSquares
)

// FileMask returns the file mask for a given file (0-7).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask returns the rank mask for a given rank (0-7).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// SquareBB returns a bitboard with only the given square set.
// NoSquare yields the empty set.
func SquareBB(sq Square) Bitboard {
	if sq >= NoSquare {
		return Empty
	}
	return 1 << sq
}

// BitboardOf builds a set from the given squares.
func BitboardOf(squares ...Square) Bitboard {
	var b Bitboard
	for _, sq := range squares {
		b |= SquareBB(sq)
	}
	return b
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ SquareBB(sq)
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the most significant bit (highest square index).
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// More returns true if there are any bits set.
func (b Bitboard) More() bool {
	return b != 0
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// Several reports whether more than one bit is set.
func (b Bitboard) Several() bool {
	return b&(b-1) != 0
}

// North shifts the bitboard one rank up (toward rank 8).
func (b Bitboard) North() Bitboard {
	return b << 8
}

// South shifts the bitboard one rank down (toward rank 1).
func (b Bitboard) South() Bitboard {
	return b >> 8
}

// East shifts the bitboard one file right (toward file h).
func (b Bitboard) East() Bitboard {
	return (b &^ FileH) << 1
}

// West shifts the bitboard one file left (toward file a).
func (b Bitboard) West() Bitboard {
	return (b &^ FileA) >> 1
}

func (b Bitboard) NorthEast() Bitboard {
	return (b &^ FileH) << 9
}

func (b Bitboard) NorthWest() Bitboard {
	return (b &^ FileA) << 7
}

func (b Bitboard) SouthEast() Bitboard {
	return (b &^ FileH) >> 7
}

func (b Bitboard) SouthWest() Bitboard {
	return (b &^ FileA) >> 9
}

// Shift moves every member one step in direction d. Squares that would
// leave the board (or wrap onto the next rank) are dropped.
func (b Bitboard) Shift(d Direction) Bitboard {
	switch d {
	case North:
		return b.North()
	case South:
		return b.South()
	case East:
		return b.East()
	case West:
		return b.West()
	case NorthEast:
		return b.NorthEast()
	case NorthWest:
		return b.NorthWest()
	case SouthEast:
		return b.SouthEast()
	case SouthWest:
		return b.SouthWest()
	}
	return b
}

// FlipVertical mirrors the board top to bottom (rank 1 <-> rank 8).
func (b Bitboard) FlipVertical() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// MirrorHorizontal mirrors the board left to right (file a <-> file h).
func (b Bitboard) MirrorHorizontal() Bitboard {
	const (
		k1 = 0x5555555555555555
		k2 = 0x3333333333333333
		k4 = 0x0f0f0f0f0f0f0f0f
	)
	x := uint64(b)
	x = ((x >> 1) & k1) | ((x & k1) << 1)
	x = ((x >> 2) & k2) | ((x & k2) << 2)
	x = ((x >> 4) & k4) | ((x & k4) << 4)
	return Bitboard(x)
}

// Rotate180 rotates the board by half a turn.
func (b Bitboard) Rotate180() Bitboard {
	return Bitboard(bits.Reverse64(uint64(b)))
}

// NorthFill fills all squares north of the set bits.
func (b Bitboard) NorthFill() Bitboard {
	b |= b << 8
	b |= b << 16
	b |= b << 32
	return b
}

// SouthFill fills all squares south of the set bits.
func (b Bitboard) SouthFill() Bitboard {
	b |= b >> 8
	b |= b >> 16
	b |= b >> 32
	return b
}

// FileFill fills the entire file(s) containing any set bit.
func (b Bitboard) FileFill() Bitboard {
	return b.NorthFill() | b.SouthFill()
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(rankChars[rank])
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// ForEach calls the function for each set square, lowest first.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// All yields the set squares in ascending order.
func (b Bitboard) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for b != 0 {
			if !yield(b.PopLSB()) {
				return
			}
		}
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}
