package board

import (
	"fmt"
	"strings"
)

// Position represents a complete chess position.
//
// Piece sets are indexed by type with both colors merged; the color sets
// split them by owner. checkers and pinned are caches recomputed after every
// change and take no part in equality or hashing.
type Position struct {
	pieces [6]Bitboard
	colors [2]Bitboard

	sideToMove     Color
	castling       CastlingRights
	enPassant      Square // Target square for en passant, NoSquare if none
	halfMoveClock  int    // Plies since last pawn move or capture
	fullMoveNumber int    // Starts at 1, incremented after Black moves

	pieceHash uint64 // XOR of piece/square keys only

	checkers Bitboard // enemy pieces giving check to the side to move
	pinned   Bitboard // own pieces pinned to the side to move's king
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// EmptyPosition returns a board with no pieces, White to move. It is not a
// valid position; use a Builder to populate one.
func EmptyPosition() *Position {
	return &Position{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Equal compares the primary state of two positions, ignoring caches.
func (p *Position) Equal(o *Position) bool {
	return p.pieces == o.pieces &&
		p.colors == o.colors &&
		p.sideToMove == o.sideToMove &&
		p.castling == o.castling &&
		p.enPassant == o.enPassant &&
		p.halfMoveClock == o.halfMoveClock &&
		p.fullMoveNumber == o.fullMoveNumber
}

// SideToMove returns the color whose turn it is.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the castling rights still held.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// HasCastlingRight reports whether c still holds the right on side.
func (p *Position) HasCastlingRight(c Color, side CastlingSide) bool {
	return p.castling.Has(c, side)
}

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() Square { return p.enPassant }

// HalfMoveClock returns the number of plies since the last capture or pawn move.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the FEN full-move counter.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// Checkers returns the enemy pieces currently giving check.
func (p *Position) Checkers() Bitboard { return p.checkers }

// Pinned returns the side to move's pieces pinned to its king.
func (p *Position) Pinned() Bitboard { return p.pinned }

// IsPinned reports whether the piece on sq is pinned to its king.
func (p *Position) IsPinned(sq Square) bool { return p.pinned.IsSet(sq) }

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool { return p.checkers != 0 }

// Occupied returns all occupied squares.
func (p *Position) Occupied() Bitboard { return p.colors[White] | p.colors[Black] }

// ByColor returns the squares occupied by c.
func (p *Position) ByColor(c Color) Bitboard { return p.colors[c] }

// ByType returns the squares occupied by pieces of type pt of either color.
func (p *Position) ByType(pt PieceType) Bitboard { return p.pieces[pt] }

// Pieces returns the squares holding pieces of type pt and color c.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[pt] & p.colors[c]
}

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces(c, King).LSB()
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	var c Color
	switch {
	case p.colors[White]&bb != 0:
		c = White
	case p.colors[Black]&bb != 0:
		c = Black
	default:
		return NoPiece
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.pieces[pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Occupied()&SquareBB(sq) == 0
}

// AttacksFrom returns the squares attacked by the piece on sq, or the empty
// set for an empty square.
func (p *Position) AttacksFrom(sq Square) Bitboard {
	pc := p.PieceAt(sq)
	if pc == NoPiece {
		return Empty
	}
	c := pc.Color()
	return Attacks(pc.Type(), c, sq, p.colors[c], p.colors[c.Other()])
}

// AttackersTo returns the pieces of color by that attack sq.
func (p *Position) AttackersTo(sq Square, by Color) Bitboard {
	return p.attackers(sq, by, p.Occupied(), p.colors[by])
}

// IsAttacked reports whether any piece of color by attacks sq.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.AttackersTo(sq, by) != 0
}

// attackers returns the members of theirs (pieces of color by) attacking sq
// when the board holds occ. The sliding fill runs backwards from sq, so
// roles are swapped.
func (p *Position) attackers(sq Square, by Color, occ, theirs Bitboard) Bitboard {
	att := pawnAttacks[by.Other()][sq] & p.pieces[Pawn]
	att |= pseudoMoves[Knight][sq] & p.pieces[Knight]
	att |= pseudoMoves[King][sq] & p.pieces[King]
	att |= BishopAttacks(sq, Empty, occ) & (p.pieces[Bishop] | p.pieces[Queen])
	att |= RookAttacks(sq, Empty, occ) & (p.pieces[Rook] | p.pieces[Queen])
	return att & theirs
}

// IsSafeToMove reports whether the side to move's piece on from could stand
// on to without being attacked, with from vacated and any enemy on to
// captured. It is meant for king moves.
func (p *Position) IsSafeToMove(from, to Square) bool {
	them := p.sideToMove.Other()
	occ := (p.Occupied() &^ SquareBB(from)) | SquareBB(to)
	theirs := p.colors[them] &^ SquareBB(to)
	return p.attackers(to, them, occ, theirs) == 0
}

// updateAttacks recomputes checkers and pinned for the side to move.
func (p *Position) updateAttacks() {
	p.checkers, p.pinned = Empty, Empty
	us := p.sideToMove
	them := us.Other()
	ksq := p.KingSquare(us)
	if ksq == NoSquare {
		return
	}
	occ := p.Occupied()
	enemy := p.colors[them]

	pinners := (pseudoMoves[Bishop][ksq]&(p.pieces[Bishop]|p.pieces[Queen]) |
		pseudoMoves[Rook][ksq]&(p.pieces[Rook]|p.pieces[Queen])) & enemy
	for pinners != 0 {
		sq := pinners.PopLSB()
		blockers := betweenBB[ksq][sq] & occ
		switch {
		case blockers == 0:
			p.checkers |= SquareBB(sq)
		case !blockers.Several():
			p.pinned |= blockers & p.colors[us]
		}
	}

	p.checkers |= pseudoMoves[Knight][ksq] & p.pieces[Knight] & enemy
	p.checkers |= pawnAttacks[us][ksq] & p.pieces[Pawn] & enemy
}

// addPiece places a piece on an empty square and updates the piece hash.
func (p *Position) addPiece(pc Piece, sq Square) {
	bb := SquareBB(sq)
	p.pieces[pc.Type()] |= bb
	p.colors[pc.Color()] |= bb
	p.pieceHash ^= zobristPiece[pc.Color()][pc.Type()][sq]
}

// removePiece clears sq and returns what stood there.
func (p *Position) removePiece(sq Square) Piece {
	pc := p.PieceAt(sq)
	if pc == NoPiece {
		return NoPiece
	}
	bb := SquareBB(sq)
	p.pieces[pc.Type()] &^= bb
	p.colors[pc.Color()] &^= bb
	p.pieceHash ^= zobristPiece[pc.Color()][pc.Type()][sq]
	return pc
}

// movePiece moves pc from one empty-destination square to another.
func (p *Position) movePiece(pc Piece, from, to Square) {
	moveBB := SquareBB(from) | SquareBB(to)
	c, pt := pc.Color(), pc.Type()
	p.pieces[pt] ^= moveBB
	p.colors[c] ^= moveBB
	p.pieceHash ^= zobristPiece[c][pt][from] ^ zobristPiece[c][pt][to]
}

// Hash returns the full Zobrist hash: piece keys plus side to move,
// castling rights and en passant file. Clocks are not hashed.
func (p *Position) Hash() uint64 {
	h := p.pieceHash ^ zobristCastling[p.castling]
	if p.sideToMove == Black {
		h ^= zobristSideToMove
	}
	if p.enPassant != NoSquare {
		h ^= zobristEnPassant[p.enPassant.File()]
	}
	return h
}

// RepetitionHash is Hash with the en passant file left out unless an en
// passant capture is legal, so positions that repeat under the rules of
// play hash alike.
func (p *Position) RepetitionHash() uint64 {
	h := p.Hash()
	if p.enPassant != NoSquare && !p.hasEnPassantCapture() {
		h ^= zobristEnPassant[p.enPassant.File()]
	}
	return h
}

// PieceHash returns the incrementally maintained piece/square hash.
func (p *Position) PieceHash() uint64 { return p.pieceHash }

// ComputeHash computes the Zobrist hash for the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces(c, pt)
			for bb != 0 {
				h ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	h ^= zobristCastling[p.castling]
	if p.sideToMove == Black {
		h ^= zobristSideToMove
	}
	if p.enPassant != NoSquare {
		h ^= zobristEnPassant[p.enPassant.File()]
	}
	return h
}

// piece count ceilings per color
var maxPieces = [6]int{8, 10, 10, 10, 9, 1}

// Validate checks the structural and rule invariants of the position and
// returns the first violation found, wrapped in ErrInvalidPosition.
func (p *Position) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, fmt.Sprintf(format, args...))
	}

	if p.colors[White]&p.colors[Black] != 0 {
		return invalid("color sets overlap on %v", (p.colors[White] & p.colors[Black]).Squares())
	}
	var union Bitboard
	for i, bb := range p.pieces {
		for _, other := range p.pieces[i+1:] {
			if bb&other != 0 {
				return invalid("%s set overlaps another piece set", PieceType(i))
			}
		}
		union |= bb
	}
	if union != p.Occupied() {
		return invalid("piece sets do not match occupancy")
	}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			n := p.Pieces(c, pt).PopCount()
			if n > maxPieces[pt] {
				return invalid("%s has %d %ss", c, n, strings.ToLower(pt.String()))
			}
		}
		if p.Pieces(c, King).PopCount() != 1 {
			return invalid("%s must have exactly one king", c)
		}
		if n := p.colors[c].PopCount(); n > 16 {
			return invalid("%s has %d pieces", c, n)
		}
		// every piece beyond the initial set is a promoted pawn
		promoted := 0
		for pt := Knight; pt <= Queen; pt++ {
			initial := 2
			if pt == Queen {
				initial = 1
			}
			promoted += max(p.Pieces(c, pt).PopCount()-initial, 0)
		}
		if pawns := p.Pieces(c, Pawn).PopCount(); pawns+promoted > 8 {
			return invalid("%s has %d pawns and %d promoted pieces", c, pawns, promoted)
		}
	}
	if p.pieces[Pawn]&(Rank1|Rank8) != 0 {
		return invalid("pawns cannot be on rank 1 or 8")
	}

	wk, bk := p.KingSquare(White), p.KingSquare(Black)
	if Distance(wk, bk) <= 1 {
		return invalid("kings on %s and %s are adjacent", wk, bk)
	}
	them := p.sideToMove.Other()
	if p.IsAttacked(p.KingSquare(them), p.sideToMove) {
		return invalid("%s is in check but not to move", them)
	}

	if ep := p.enPassant; ep != NoSquare {
		if ep.RelativeRank(p.sideToMove) != 5 {
			return invalid("en passant target %s on wrong rank", ep)
		}
		pushed := ep.Step(PawnDirection(them))
		if !p.Pieces(them, Pawn).IsSet(pushed) {
			return invalid("no %s pawn behind en passant target %s", them, ep)
		}
		if !p.IsEmpty(ep) {
			return invalid("en passant target %s is occupied", ep)
		}
	}

	for c := White; c <= Black; c++ {
		for _, side := range [2]CastlingSide{KingSide, QueenSide} {
			if !p.castling.Has(c, side) {
				continue
			}
			path := castlingPaths[c][side]
			if !p.Pieces(c, King).IsSet(path.kingFrom) || !p.Pieces(c, Rook).IsSet(path.rookFrom) {
				return invalid("%s castling right %s without king and rook at home", c, side)
			}
		}
	}
	return nil
}

// IsValid reports whether Validate finds no violation.
func (p *Position) IsValid() bool {
	return p.Validate() == nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(rankChars[rank])
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteByte(pc.Char())
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.fullMoveNumber)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash())
	return sb.String()
}
