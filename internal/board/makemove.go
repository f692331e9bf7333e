package board

import (
	"fmt"

	"github.com/apex/log"
)

// DebugMoveValidation makes Apply verify every move against the legal move
// generator first. Illegal moves are logged with the position before the
// panic. Slow; meant for tracking down caller bugs.
var DebugMoveValidation = false

// Apply plays m in place. m must be legal in p (taken from LegalMoves or
// checked with IsLegal); moves that break the position's invariants panic.
func (p *Position) Apply(m Move) {
	if DebugMoveValidation && !p.IsLegal(m) {
		p.violation(m, "illegal move %s", m)
	}

	us, them := p.sideToMove, p.sideToMove.Other()
	from, to := m.From(), m.To()
	pc := p.PieceAt(from)
	switch {
	case pc == NoPiece:
		p.violation(m, "no piece on %s", from)
	case pc.Color() != us:
		p.violation(m, "%s piece on %s but %s to move", pc.Color(), from, us)
	}

	captured := NoPiece
	switch m.Flag() {
	case FlagEnPassant:
		capSq := m.CapturedSquare()
		if pc.Type() != Pawn || to != p.enPassant || p.PieceAt(capSq) != NewPiece(Pawn, them) {
			p.violation(m, "en passant %s does not match target %s", m, p.enPassant)
		}
		captured = p.removePiece(capSq)
		p.movePiece(pc, from, to)

	case FlagCastling:
		kingFrom, kingTo, rookFrom, rookTo := CastlingSquares(us, m.CastlingSide())
		rook := NewPiece(Rook, us)
		if pc.Type() != King || from != kingFrom || to != kingTo || p.PieceAt(rookFrom) != rook {
			p.violation(m, "malformed castling move %s", m)
		}
		p.movePiece(pc, from, to)
		p.movePiece(rook, rookFrom, rookTo)

	default:
		target := p.PieceAt(to)
		switch {
		case target == NoPiece:
		case target.Color() == us:
			p.violation(m, "%s captures own piece on %s", m, to)
		case target.Type() == King:
			p.violation(m, "%s captures the king", m)
		}
		lastRank := pc.Type() == Pawn && to.RelativeRank(us) == 7
		if m.IsPromotion() != lastRank {
			p.violation(m, "promotion mismatch for %s", m)
		}
		if target != NoPiece {
			captured = p.removePiece(to)
		}
		if m.IsPromotion() {
			p.removePiece(from)
			p.addPiece(NewPiece(m.Promotion(), us), to)
		} else {
			p.movePiece(pc, from, to)
		}
	}

	p.castling &^= castlingRevoke[from] | castlingRevoke[to]

	p.enPassant = NoSquare
	if pc.Type() == Pawn && abs(int(to)-int(from)) == 16 {
		p.enPassant = from.Step(PawnDirection(us))
	}

	if pc.Type() == Pawn || captured != NoPiece {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}
	if us == Black {
		p.fullMoveNumber++
	}

	p.sideToMove = them
	p.updateAttacks()
}

// Play returns the position after m, leaving p untouched.
func (p *Position) Play(m Move) *Position {
	next := *p
	next.Apply(m)
	return &next
}

// PlayMoves applies a sequence of UCI moves, resolving each against the
// legal moves of the position it is played in.
func (p *Position) PlayMoves(moves ...string) (*Position, error) {
	pos := p.Copy()
	for _, s := range moves {
		m, err := ParseMove(s, pos)
		if err != nil {
			return nil, err
		}
		pos.Apply(m)
	}
	return pos, nil
}

// violation reports a broken move contract. It never returns.
func (p *Position) violation(m Move, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if DebugMoveValidation {
		log.WithFields(log.Fields{
			"fen":  p.ToFEN(),
			"move": m.String(),
			"flag": m.Flag().String(),
		}).Error(msg)
	}
	panic("board: " + msg)
}
