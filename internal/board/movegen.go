package board

import "iter"

// movesFrom holds every legal destination of one origin square.
type movesFrom struct {
	from Square
	to   Bitboard
}

// MoveGen holds the legal moves of one position in compact form: one
// destination set per origin plus a short list of en passant and castling
// moves. A side has at most 16 pieces and at most 4 special moves.
//
// The origin and destination masks filter what Len, Contains and All
// report; the zero-cost way to ask for "moves from e2" or "moves onto d5"
// without regenerating.
type MoveGen struct {
	entries   [16]movesFrom
	nEntries  int
	specials  [4]Move
	nSpecials int
	promoting Bitboard // origins whose moves all promote
	enemy     Bitboard // enemy occupancy at generation time

	origins      Bitboard
	destinations Bitboard
	capturesOnly bool
}

// LegalMoves generates all legal moves for the side to move.
func (p *Position) LegalMoves() MoveGen {
	g := MoveGen{origins: Universe, destinations: Universe}
	g.generate(p)
	return g
}

// LegalMovesFrom returns the legal moves of the piece on sq.
func (p *Position) LegalMovesFrom(sq Square) MoveGen {
	return p.LegalMoves().WithOrigins(SquareBB(sq))
}

// LegalMovesOf returns the legal moves of the side to move's pieces of type pt.
func (p *Position) LegalMovesOf(pt PieceType) MoveGen {
	return p.LegalMoves().WithOrigins(p.Pieces(p.sideToMove, pt))
}

// LegalMovesTo returns the legal moves of pieces of type pt landing on sq,
// the query SAN resolution is built on. Further disambiguation by origin
// file or rank is another WithOrigins call with FileMask or RankMask.
func (p *Position) LegalMovesTo(pt PieceType, sq Square) MoveGen {
	return p.LegalMovesOf(pt).WithDestinations(SquareBB(sq))
}

// LegalCaptures returns the legal capturing moves, en passant included.
func (p *Position) LegalCaptures() MoveGen {
	return p.LegalMoves().CapturesOnly()
}

// IsLegal reports whether m is legal in this position.
func (p *Position) IsLegal(m Move) bool {
	g := p.LegalMoves()
	return g.Contains(m)
}

// HasLegalMoves reports whether the side to move can move at all.
func (p *Position) HasLegalMoves() bool {
	g := p.LegalMoves()
	return g.Len() > 0
}

// hasEnPassantCapture reports whether an en passant capture is legal.
func (p *Position) hasEnPassantCapture() bool {
	if p.enPassant == NoSquare {
		return false
	}
	g := p.LegalMoves()
	for i := 0; i < g.nSpecials; i++ {
		if g.specials[i].IsEnPassant() {
			return true
		}
	}
	return false
}

// WithOrigins restricts the generator to moves starting in mask.
func (g MoveGen) WithOrigins(mask Bitboard) MoveGen {
	g.origins &= mask
	return g
}

// WithDestinations restricts the generator to moves ending in mask.
func (g MoveGen) WithDestinations(mask Bitboard) MoveGen {
	g.destinations &= mask
	return g
}

// CapturesOnly restricts the generator to captures.
func (g MoveGen) CapturesOnly() MoveGen {
	g.capturesOnly = true
	return g
}

func (g *MoveGen) generate(p *Position) {
	us, them := p.sideToMove, p.sideToMove.Other()
	own, enemy := p.colors[us], p.colors[them]
	occ := own | enemy
	g.enemy = enemy

	ksq := p.KingSquare(us)
	if ksq == NoSquare {
		return
	}

	// King moves are checked one by one and never depend on check status.
	var kingTo Bitboard
	targets := KingAttacks(ksq, own)
	for targets != 0 {
		to := targets.PopLSB()
		if p.IsSafeToMove(ksq, to) {
			kingTo |= SquareBB(to)
		}
	}
	g.add(ksq, kingTo)

	if p.checkers.Several() {
		return
	}

	dests := Universe
	if p.checkers != 0 {
		checker := p.checkers.LSB()
		dests = p.checkers
		if p.PieceAt(checker).Type().IsSlider() {
			dests |= betweenBB[ksq][checker]
		}
	}

	pawns := p.Pieces(us, Pawn)
	for pawns != 0 {
		from := pawns.PopLSB()
		to := (PawnAttacks(us, from, enemy) | PawnPushes(us, from, occ)) & dests
		to = p.pinRestrict(from, ksq, to)
		if to != 0 && from.RelativeRank(us) == 6 {
			g.promoting |= SquareBB(from)
		}
		g.add(from, to)
	}
	g.addEnPassant(p, ksq, dests)

	knights := p.Pieces(us, Knight)
	for knights != 0 {
		from := knights.PopLSB()
		g.add(from, p.pinRestrict(from, ksq, KnightAttacks(from, own)&dests))
	}
	bishops := p.Pieces(us, Bishop)
	for bishops != 0 {
		from := bishops.PopLSB()
		g.add(from, p.pinRestrict(from, ksq, BishopAttacks(from, own, enemy)&dests))
	}
	rooks := p.Pieces(us, Rook)
	for rooks != 0 {
		from := rooks.PopLSB()
		g.add(from, p.pinRestrict(from, ksq, RookAttacks(from, own, enemy)&dests))
	}
	queens := p.Pieces(us, Queen)
	for queens != 0 {
		from := queens.PopLSB()
		g.add(from, p.pinRestrict(from, ksq, QueenAttacks(from, own, enemy)&dests))
	}

	g.addCastling(p)
}

// pinRestrict keeps a pinned piece on the line through it and its king.
func (p *Position) pinRestrict(from, ksq Square, to Bitboard) Bitboard {
	if p.pinned.IsSet(from) {
		return to & lineBB[from][ksq]
	}
	return to
}

// addEnPassant adds the en passant captures that do not expose the king.
// The captured pawn is not on the destination square, so the check mask
// is consulted for both squares, and the king's safety is tested with both
// pawns lifted off the board at once (this covers the rank where the
// capturer and the captured pawn shield the king together).
func (g *MoveGen) addEnPassant(p *Position, ksq Square, dests Bitboard) {
	ep := p.enPassant
	if ep == NoSquare {
		return
	}
	us, them := p.sideToMove, p.sideToMove.Other()
	passed := ep.Step(PawnDirection(them))
	if dests&(SquareBB(ep)|SquareBB(passed)) == 0 {
		return
	}

	bishops := (p.pieces[Bishop] | p.pieces[Queen]) & p.colors[them]
	rooks := (p.pieces[Rook] | p.pieces[Queen]) & p.colors[them]
	capturers := pawnAttacks[them][ep] & p.Pieces(us, Pawn)
	for capturers != 0 {
		from := capturers.PopLSB()
		if p.pinned.IsSet(from) && !lineBB[from][ksq].IsSet(ep) {
			continue
		}
		occ := (p.Occupied() &^ SquareBB(from) &^ SquareBB(passed)) | SquareBB(ep)
		if BishopAttacks(ksq, Empty, occ)&bishops != 0 || RookAttacks(ksq, Empty, occ)&rooks != 0 {
			continue
		}
		g.addSpecial(NewEnPassant(from, ep))
	}
}

// addCastling adds the castles whose path is empty and unattacked.
func (g *MoveGen) addCastling(p *Position) {
	if p.checkers != 0 {
		return
	}
	us, them := p.sideToMove, p.sideToMove.Other()
	occ := p.Occupied()
	for _, side := range [2]CastlingSide{KingSide, QueenSide} {
		if !p.castling.Has(us, side) {
			continue
		}
		path := castlingPaths[us][side]
		if occ&path.empty != 0 {
			continue
		}
		if p.IsAttacked(path.transit, them) || p.IsAttacked(path.kingTo, them) {
			continue
		}
		g.addSpecial(NewCastling(us, side))
	}
}

func (g *MoveGen) add(from Square, to Bitboard) {
	if to == 0 {
		return
	}
	g.entries[g.nEntries] = movesFrom{from: from, to: to}
	g.nEntries++
}

func (g *MoveGen) addSpecial(m Move) {
	g.specials[g.nSpecials] = m
	g.nSpecials++
}

// targets returns the visible destinations of an entry.
func (g MoveGen) targets(e movesFrom) Bitboard {
	if !g.origins.IsSet(e.from) {
		return Empty
	}
	to := e.to & g.destinations
	if g.capturesOnly {
		to &= g.enemy
	}
	return to
}

func (g MoveGen) specialVisible(m Move) bool {
	if !g.origins.IsSet(m.From()) || !g.destinations.IsSet(m.To()) {
		return false
	}
	return !g.capturesOnly || m.IsEnPassant()
}

// Len counts the visible moves without materializing them.
func (g MoveGen) Len() int {
	n := 0
	for i := 0; i < g.nEntries; i++ {
		e := g.entries[i]
		c := g.targets(e).PopCount()
		if g.promoting.IsSet(e.from) {
			c *= 4
		}
		n += c
	}
	for i := 0; i < g.nSpecials; i++ {
		if g.specialVisible(g.specials[i]) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no move is visible.
func (g MoveGen) IsEmpty() bool {
	return g.Len() == 0
}

// Contains reports whether m is one of the visible moves.
func (g MoveGen) Contains(m Move) bool {
	switch m.Flag() {
	case FlagEnPassant, FlagCastling:
		for i := 0; i < g.nSpecials; i++ {
			if g.specials[i] == m {
				return g.specialVisible(m)
			}
		}
		return false
	}
	for i := 0; i < g.nEntries; i++ {
		e := g.entries[i]
		if e.from != m.From() {
			continue
		}
		if !g.targets(e).IsSet(m.To()) {
			return false
		}
		return g.promoting.IsSet(e.from) == m.IsPromotion()
	}
	return false
}

// All yields the visible moves: origins in generation order (king, pawns,
// knights, bishops, rooks, queens; ascending squares within a type),
// destinations ascending, promotions as knight, bishop, rook, queen; then
// en passant and castling moves.
func (g MoveGen) All() iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for i := 0; i < g.nEntries; i++ {
			e := g.entries[i]
			to := g.targets(e)
			promo := g.promoting.IsSet(e.from)
			for to != 0 {
				sq := to.PopLSB()
				if !promo {
					if !yield(NewMove(e.from, sq)) {
						return
					}
					continue
				}
				for _, pt := range PromotionTypes {
					if !yield(NewPromotion(e.from, sq, pt)) {
						return
					}
				}
			}
		}
		for i := 0; i < g.nSpecials; i++ {
			m := g.specials[i]
			if g.specialVisible(m) && !yield(m) {
				return
			}
		}
	}
}

// AppendTo appends the visible moves to dst.
func (g MoveGen) AppendTo(dst []Move) []Move {
	for m := range g.All() {
		dst = append(dst, m)
	}
	return dst
}

// Moves returns the visible moves as a new slice.
func (g MoveGen) Moves() []Move {
	return g.AppendTo(make([]Move, 0, g.Len()))
}

// Fill resets ml and copies the visible moves into it.
func (g MoveGen) Fill(ml *MoveList) {
	ml.Clear()
	for m := range g.All() {
		ml.Add(m)
	}
}

// Origins returns the squares that have at least one visible move.
func (g MoveGen) Origins() Bitboard {
	var bb Bitboard
	for i := 0; i < g.nEntries; i++ {
		if g.targets(g.entries[i]) != 0 {
			bb |= SquareBB(g.entries[i].from)
		}
	}
	for i := 0; i < g.nSpecials; i++ {
		if g.specialVisible(g.specials[i]) {
			bb |= SquareBB(g.specials[i].From())
		}
	}
	return bb
}

// Destinations returns the union of the visible destination squares.
func (g MoveGen) Destinations() Bitboard {
	var bb Bitboard
	for i := 0; i < g.nEntries; i++ {
		bb |= g.targets(g.entries[i])
	}
	for i := 0; i < g.nSpecials; i++ {
		if g.specialVisible(g.specials[i]) {
			bb |= SquareBB(g.specials[i].To())
		}
	}
	return bb
}
