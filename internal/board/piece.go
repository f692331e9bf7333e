package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

var (
	colorToChar = [2]byte{'w', 'b'}
	charToColor = map[byte]Color{'w': White, 'b': Black}
)

// Char returns the FEN side-to-move letter.
func (c Color) Char() byte {
	if c >= NoColor {
		return '-'
	}
	return colorToChar[c]
}

// ParseColor converts a FEN side-to-move letter into a Color.
func ParseColor(ch byte) (Color, error) {
	c, ok := charToColor[ch]
	if !ok {
		return NoColor, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, ch)
	}
	return c, nil
}

// PieceType represents the type of a chess piece, ordered by material value.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// PieceTypes lists the six real piece types.
var PieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// PromotionTypes lists the promotion choices in generation order.
var PromotionTypes = [4]PieceType{Knight, Bishop, Rook, Queen}

var pieceTypeNames = [7]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

// String returns the piece type name.
func (pt PieceType) String() string {
	if pt > NoPieceType {
		return "None"
	}
	return pieceTypeNames[pt]
}

var (
	pieceTypeToChar = [7]byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	charToPieceType = map[byte]PieceType{'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King}
)

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt > NoPieceType {
		return ' '
	}
	return pieceTypeToChar[pt]
}

// ParsePieceType converts a lowercase piece letter into a PieceType.
func ParsePieceType(ch byte) (PieceType, error) {
	pt, ok := charToPieceType[ch]
	if !ok {
		return NoPieceType, fmt.Errorf("unknown piece type %q", ch)
	}
	return pt, nil
}

// pieceValue holds relative material values; the king is priceless.
var pieceValue = [7]int{1, 3, 3, 5, 9, 255, 0}

// Value returns the relative material value of the piece type.
func (pt PieceType) Value() int {
	if pt > NoPieceType {
		return 0
	}
	return pieceValue[pt]
}

// CanPromoteTo reports whether a pawn may promote into pt.
func (pt PieceType) CanPromoteTo() bool {
	return pt >= Knight && pt <= Queen
}

// IsSlider reports whether the piece type moves along rays.
func (pt PieceType) IsSlider() bool {
	return pt >= Bishop && pt <= Queen
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

const pieceChars = "PNBRQKpnbrqk"

var charToPiece = func() map[byte]Piece {
	m := make(map[byte]Piece, len(pieceChars))
	for i := 0; i < len(pieceChars); i++ {
		m[pieceChars[i]] = Piece(i)
	}
	return m
}()

// Char returns the FEN character for the piece, uppercase for white.
func (p Piece) Char() byte {
	if p >= NoPiece {
		return ' '
	}
	return pieceChars[p]
}

// String returns the FEN character for the piece.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar converts a FEN character to a Piece, or NoPiece if the
// character names no piece.
func PieceFromChar(c byte) Piece {
	if p, ok := charToPiece[c]; ok {
		return p
	}
	return NoPiece
}
