package board

import "fmt"

// CastlingRights represents the available castling options as a bit set
// indexed by color*2 + side.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// CastlingSide selects the king side (short) or queen side (long) castle.
type CastlingSide uint8

const (
	KingSide CastlingSide = iota
	QueenSide
)

func (s CastlingSide) String() string {
	switch s {
	case KingSide:
		return "O-O"
	case QueenSide:
		return "O-O-O"
	}
	return fmt.Sprintf("CastlingSide(%d)", uint8(s))
}

// CastlingRight returns the single right for color c on the given side.
func CastlingRight(c Color, side CastlingSide) CastlingRights {
	mustCastlingSide(c, side)
	return 1 << (uint(c)*2 + uint(side))
}

var castlingRightChars = [4]byte{'K', 'Q', 'k', 'q'}

var charToCastlingRight = map[byte]CastlingRights{
	'K': WhiteKingSideCastle,
	'Q': WhiteQueenSideCastle,
	'k': BlackKingSideCastle,
	'q': BlackQueenSideCastle,
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	buf := make([]byte, 0, 4)
	for i, ch := range castlingRightChars {
		if cr&(1<<i) != 0 {
			buf = append(buf, ch)
		}
	}
	return string(buf)
}

// ParseCastlingRights parses the FEN castling field ("KQkq" subset or "-").
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	if s == "" {
		return NoCastling, fmt.Errorf("%w: empty castling field", ErrInvalidFEN)
	}
	var cr CastlingRights
	for i := 0; i < len(s); i++ {
		r, ok := charToCastlingRight[s[i]]
		if !ok {
			return NoCastling, fmt.Errorf("%w: invalid castling character %q", ErrInvalidFEN, s[i])
		}
		cr |= r
	}
	return cr, nil
}

// Has reports whether color c may still castle on the given side.
func (cr CastlingRights) Has(c Color, side CastlingSide) bool {
	return cr&CastlingRight(c, side) != 0
}

// castlingPath describes the squares touched by one castle.
type castlingPath struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	empty            Bitboard // must be unoccupied
	transit          Square   // square the king crosses
}

var castlingPaths = [2][2]castlingPath{
	White: {
		KingSide:  {kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1, empty: BitboardOf(F1, G1), transit: F1},
		QueenSide: {kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1, empty: BitboardOf(B1, C1, D1), transit: D1},
	},
	Black: {
		KingSide:  {kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8, empty: BitboardOf(F8, G8), transit: F8},
		QueenSide: {kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8, empty: BitboardOf(B8, C8, D8), transit: D8},
	},
}

// castlingRevoke maps each square to the rights lost when a move starts or
// ends there.
var castlingRevoke = func() [64]CastlingRights {
	var t [64]CastlingRights
	t[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	t[H1] = WhiteKingSideCastle
	t[A1] = WhiteQueenSideCastle
	t[E8] = BlackKingSideCastle | BlackQueenSideCastle
	t[H8] = BlackKingSideCastle
	t[A8] = BlackQueenSideCastle
	return t
}()

func mustCastlingSide(c Color, side CastlingSide) {
	if c > Black || side > QueenSide {
		panic(fmt.Sprintf("board: malformed castling lookup color=%d side=%d", c, side))
	}
}

func pathFor(c Color, side CastlingSide) castlingPath {
	mustCastlingSide(c, side)
	return castlingPaths[c][side]
}

// CastlingSquares returns the king and rook origin and destination squares
// for color c castling on the given side.
func CastlingSquares(c Color, side CastlingSide) (kingFrom, kingTo, rookFrom, rookTo Square) {
	p := pathFor(c, side)
	return p.kingFrom, p.kingTo, p.rookFrom, p.rookTo
}
