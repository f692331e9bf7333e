package board

import "strings"

// checkSuffix returns "+" or "#" for the position reached by m.
func checkSuffix(pos *Position, m Move) string {
	next := pos.Play(m)
	switch {
	case !next.InCheck():
		return ""
	case next.HasLegalMoves():
		return "+"
	default:
		return "#"
	}
}

// upper returns the uppercase letter of a piece type.
func upper(pt PieceType) byte {
	return pt.Char() - 'a' + 'A'
}

// LongSAN renders m in long algebraic form: "Ng1f3", "e4xd5", "e5xd6e.p.",
// "e7e8=Q", "O-O", with a trailing "+" or "#". m must be legal in pos.
func (m Move) LongSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}
	var sb strings.Builder
	from, to := m.From(), m.To()
	pt := pos.PieceAt(from).Type()
	capture := m.IsCapture(pos)

	switch m.Flag() {
	case FlagCastling:
		sb.WriteString(m.CastlingSide().String())
	case FlagEnPassant:
		sb.WriteString(from.String())
		sb.WriteByte('x')
		sb.WriteString(to.String())
		sb.WriteString("e.p.")
	case FlagPromotion:
		sb.WriteString(from.String())
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		sb.WriteByte('=')
		sb.WriteByte(upper(m.Promotion()))
	default:
		if pt != Pawn {
			sb.WriteByte(upper(pt))
		}
		sb.WriteString(from.String())
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
	}

	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// ToSAN converts a move to Standard Algebraic Notation. m must be legal in pos.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}
	if m.IsCastling() {
		return m.CastlingSide().String() + checkSuffix(pos, m)
	}

	from, to := m.From(), m.To()
	pt := pos.PieceAt(from).Type()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte(upper(pt))
		sb.WriteString(disambiguation(pos, m, pt))
	}

	if m.IsCapture(pos) {
		if pt == Pawn {
			// Pawn captures include the file of origin
			sb.WriteByte(fileChars[from.File()])
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(upper(m.Promotion()))
	}

	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other moves of the same piece type to the same square.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From()
	rivals := pos.LegalMovesTo(pt, m.To()).Origins() &^ SquareBB(from)
	if rivals == 0 {
		return ""
	}
	if rivals&FileMask[from.File()] == 0 {
		return string(fileChars[from.File()])
	}
	if rivals&RankMask[from.Rank()] == 0 {
		return string(rankChars[from.Rank()])
	}
	return from.String()
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()
	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.Apply(m)
	}
	return result
}
