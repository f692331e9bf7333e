// Package board implements the chess rules core: bitboards, precomputed attack
// tables, positions, legal move generation and move application.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{fileChars[sq.File()], rankChars[sq.Rank()]})
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, err := ParseFile(s[0])
	if err != nil {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	rank, err := ParseRank(s[1])
	if err != nil {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return NewSquare(file, rank), nil
}

const (
	fileChars = "abcdefgh"
	rankChars = "12345678"
)

// ParseFile converts a file letter ('a'-'h') to its index.
func ParseFile(c byte) (int, error) {
	if c < 'a' || c > 'h' {
		return -1, fmt.Errorf("%w: file %q", ErrInvalidSquare, c)
	}
	return int(c - 'a'), nil
}

// ParseRank converts a rank digit ('1'-'8') to its index.
func ParseRank(c byte) (int, error) {
	if c < '1' || c > '8' {
		return -1, fmt.Errorf("%w: rank %q", ErrInvalidSquare, c)
	}
	return int(c - '1'), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square mirrored vertically (for black's perspective).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// MirrorFile returns the square reflected across the d/e file boundary.
func (sq Square) MirrorFile() Square {
	return sq ^ 7
}

// Relative returns the square as seen from c's side of the board.
func (sq Square) Relative(c Color) Square {
	if c == White {
		return sq
	}
	return sq.Mirror()
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// IsDark reports whether the square is a dark square (a1 is dark).
func (sq Square) IsDark() bool {
	return (sq.File()+sq.Rank())%2 == 0
}

// Distance returns the Chebyshev (king-step) distance between two squares.
func Distance(a, b Square) int {
	return max(abs(a.File()-b.File()), abs(a.Rank()-b.Rank()))
}

// Step returns the square one step away in direction d, or NoSquare when the
// step would leave the board.
func (sq Square) Step(d Direction) Square {
	if sq >= NoSquare || d == NoDirection {
		return NoSquare
	}
	return SquareBB(sq).Shift(d).LSB()
}

// Direction is a ray direction expressed as the square-index delta of one step.
type Direction int8

const (
	NorthWest   Direction = 7
	North       Direction = 8
	NorthEast   Direction = 9
	West        Direction = -1
	NoDirection Direction = 0
	East        Direction = 1
	SouthWest   Direction = -9
	South       Direction = -8
	SouthEast   Direction = -7
)

// Directions lists the eight ray directions in table order.
var Directions = [8]Direction{North, South, East, West, NorthWest, NorthEast, SouthWest, SouthEast}

var (
	rookDirections   = [4]Direction{North, South, East, West}
	bishopDirections = [4]Direction{NorthWest, NorthEast, SouthWest, SouthEast}
)

// index maps a direction to its slot in the ray tables.
func (d Direction) index() int {
	switch d {
	case North:
		return 0
	case South:
		return 1
	case East:
		return 2
	case West:
		return 3
	case NorthWest:
		return 4
	case NorthEast:
		return 5
	case SouthWest:
		return 6
	case SouthEast:
		return 7
	}
	return 8
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return -d
}

// IsPositive reports whether stepping in d increases the square index.
func (d Direction) IsPositive() bool {
	return d > 0
}

// IsDiagonal reports whether d is one of the four bishop directions.
func (d Direction) IsDiagonal() bool {
	switch d {
	case NorthWest, NorthEast, SouthWest, SouthEast:
		return true
	}
	return false
}

// IsStraight reports whether d is one of the four rook directions.
func (d Direction) IsStraight() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

var directionNames = map[Direction]string{
	North: "N", South: "S", East: "E", West: "W",
	NorthWest: "NW", NorthEast: "NE", SouthWest: "SW", SouthEast: "SE",
	NoDirection: "-",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}

// PawnDirection returns the direction pawns of color c advance in.
func PawnDirection(c Color) Direction {
	if c == White {
		return North
	}
	return South
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
