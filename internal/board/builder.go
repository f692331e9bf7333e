package board

import "fmt"

// Builder assembles a position square by square. The zero value is not
// usable; start from NewBuilder or BuilderFrom.
type Builder struct {
	pos Position
	err error
}

// NewBuilder starts from an empty board with White to move and no rights.
func NewBuilder() *Builder {
	return &Builder{pos: *EmptyPosition()}
}

// BuilderFrom starts from a copy of an existing position.
func BuilderFrom(p *Position) *Builder {
	return &Builder{pos: *p}
}

// Piece puts pc on sq, replacing whatever stood there.
func (b *Builder) Piece(pc Piece, sq Square) *Builder {
	if !sq.IsValid() || pc >= NoPiece {
		b.fail("cannot place %q on %s", pc.Char(), sq)
		return b
	}
	b.pos.removePiece(sq)
	b.pos.addPiece(pc, sq)
	return b
}

// Clear empties sq.
func (b *Builder) Clear(sq Square) *Builder {
	if sq.IsValid() {
		b.pos.removePiece(sq)
	}
	return b
}

// SideToMove sets whose turn it is.
func (b *Builder) SideToMove(c Color) *Builder {
	if c > Black {
		b.fail("bad side to move %d", c)
		return b
	}
	b.pos.sideToMove = c
	return b
}

// CastlingRight grants color c the right to castle on side.
func (b *Builder) CastlingRight(c Color, side CastlingSide) *Builder {
	if c > Black || side > QueenSide {
		b.fail("bad castling right color=%d side=%d", c, side)
		return b
	}
	b.pos.castling |= CastlingRight(c, side)
	return b
}

// CastlingRights replaces all castling rights at once.
func (b *Builder) CastlingRights(cr CastlingRights) *Builder {
	b.pos.castling = cr & AllCastling
	return b
}

// EnPassant sets the en passant target square (NoSquare clears it).
func (b *Builder) EnPassant(sq Square) *Builder {
	b.pos.enPassant = sq
	return b
}

// HalfMoveClock sets the plies since the last capture or pawn move.
func (b *Builder) HalfMoveClock(n int) *Builder {
	if n < 0 {
		b.fail("negative half-move clock %d", n)
		return b
	}
	b.pos.halfMoveClock = n
	return b
}

// FullMoveNumber sets the full-move counter.
func (b *Builder) FullMoveNumber(n int) *Builder {
	if n < 1 {
		b.fail("full-move number %d below 1", n)
		return b
	}
	b.pos.fullMoveNumber = n
	return b
}

func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s", ErrInvalidPosition, fmt.Sprintf(format, args...))
	}
}

// Build validates the assembled position and returns an independent copy.
func (b *Builder) Build() (*Position, error) {
	if b.err != nil {
		return nil, b.err
	}
	pos := b.pos
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	pos.updateAttacks()
	return &pos, nil
}
