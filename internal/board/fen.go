package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a validated Position. The
// half-move clock and full-move number may be omitted.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fmt.Errorf("%w: need 4 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	b := NewBuilder()

	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	if len(parts[1]) != 1 {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}
	side, err := ParseColor(parts[1][0])
	if err != nil {
		return nil, err
	}
	b.SideToMove(side)

	cr, err := ParseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}
	b.CastlingRights(cr)

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant square: %w", ErrInvalidFEN, err)
		}
		b.EnPassant(sq)
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, fmt.Errorf("%w: half-move clock %q", ErrInvalidFEN, parts[4])
		}
		b.HalfMoveClock(hmc)
	}
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, fmt.Errorf("%w: full-move number %q", ErrInvalidFEN, parts[5])
		}
		b.FullMoveNumber(fmn)
	}

	pos, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFEN, fen, err)
	}
	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on error. Intended for constants
// and tests.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Builder, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fmt.Errorf("%w: unknown piece letter %q", ErrInvalidFEN, c)
			}
			b.Piece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(p.sideToMove.Char())
	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}
