package board

import (
	"fmt"
	"strings"
)

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 14-15: flag (0=quiet, 1=promotion, 2=en passant, 3=castling)
//
// A move carries no piece or capture information; both are read from the
// position it is played in.
type Move uint16

// MoveFlag distinguishes the four move kinds.
type MoveFlag uint16

const (
	FlagQuiet     MoveFlag = 0 << 14
	FlagPromotion MoveFlag = 1 << 14
	FlagEnPassant MoveFlag = 2 << 14
	FlagCastling  MoveFlag = 3 << 14
)

func (f MoveFlag) String() string {
	switch f {
	case FlagQuiet:
		return "quiet"
	case FlagPromotion:
		return "promotion"
	case FlagEnPassant:
		return "en passant"
	case FlagCastling:
		return "castling"
	}
	return fmt.Sprintf("MoveFlag(%#x)", uint16(f))
}

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a quiet (non-special) move. Captures are quiet moves too.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move. It panics if promo cannot be
// promoted into.
func NewPromotion(from, to Square, promo PieceType) Move {
	if !promo.CanPromoteTo() {
		panic(fmt.Sprintf("board: invalid promotion piece %s", promo))
	}
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | Move(FlagPromotion)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastling creates the castling move (the king's movement) for color c.
func NewCastling(c Color, side CastlingSide) Move {
	p := pathFor(c, side)
	return Move(p.kingFrom) | Move(p.kingTo)<<6 | Move(FlagCastling)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move flag.
func (m Move) Flag() MoveFlag {
	return MoveFlag(m) & 0xC000
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return PieceType((m>>12)&3) + Knight
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// CastlingSide returns the side of a castling move.
func (m Move) CastlingSide() CastlingSide {
	if m.To() > m.From() {
		return KingSide
	}
	return QueenSide
}

// CapturedSquare returns the square of the pawn removed by an en passant
// capture: same rank as the origin, same file as the destination.
func (m Move) CapturedSquare() Square {
	if !m.IsEnPassant() {
		return m.To()
	}
	return NewSquare(m.To().File(), m.From().Rank())
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !m.IsCastling() && pos.colors[pos.sideToMove.Other()].IsSet(m.To())
}

// IsQuiet returns true if this is not a capture or promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses a UCI move ("e2e4", "e7e8q") and resolves it against the
// legal moves of pos, so castling and en passant get their flags.
func ParseMove(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	promo := NoPieceType
	if len(s) == 5 {
		pt, err := ParsePieceType(s[4])
		if err != nil || !pt.CanPromoteTo() {
			return NoMove, fmt.Errorf("%w: %q: bad promotion piece", ErrInvalidMove, s)
		}
		promo = pt
	}

	gen := pos.LegalMoves().WithOrigins(SquareBB(from)).WithDestinations(SquareBB(to))
	for m := range gen.All() {
		if m.Promotion() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, pos.ToFEN())
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
