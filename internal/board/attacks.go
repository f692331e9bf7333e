package board

// Pre-computed geometry tables. Filled once in init and read-only afterwards.
var (
	rays        [8][64]Bitboard // [direction index][square], origin excluded
	pseudoMoves [6][64]Bitboard // [PieceType][square]; the pawn row holds white captures
	pawnAttacks [2][64]Bitboard // [Color][Square]
	pawnPushes  [2][64]Bitboard // [Color][Square] - single and double push targets, no blockers

	directionBetween [64][64]Direction
	betweenBB        [64][64]Bitboard // Squares strictly between two squares
	lineBB           [64][64]Bitboard // Full line through two squares (including endpoints)
)

var dirPositive = [8]bool{true, false, true, false, true, true, false, false}

func init() {
	initRays()
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initSliderPseudoMoves()
	initBetweenAndLines()
	initZobrist()
}

func initRays() {
	for i, d := range Directions {
		for sq := A1; sq <= H8; sq++ {
			var ray Bitboard
			bb := SquareBB(sq).Shift(d)
			for bb != 0 {
				ray |= bb
				bb = bb.Shift(d)
			}
			rays[i][sq] = ray
		}
	}
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		attacks := Empty

		// Up 2, left/right 1
		attacks |= (bb << 17) & NotFileA
		attacks |= (bb << 15) & NotFileH
		attacks |= (bb >> 17) & NotFileH
		attacks |= (bb >> 15) & NotFileA

		// Up 1, left/right 2
		attacks |= (bb << 10) & NotFileAB
		attacks |= (bb << 6) & NotFileGH
		attacks |= (bb >> 10) & NotFileGH
		attacks |= (bb >> 6) & NotFileAB

		pseudoMoves[Knight][sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		var attacks Bitboard
		for _, d := range Directions {
			attacks |= bb.Shift(d)
		}
		pseudoMoves[King][sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
		pseudoMoves[Pawn][sq] = pawnAttacks[White][sq]

		for _, c := range [2]Color{White, Black} {
			dir := PawnDirection(c)
			single := bb.Shift(dir)
			pushes := single
			if sq.RelativeRank(c) == 1 {
				pushes |= single.Shift(dir)
			}
			pawnPushes[c][sq] = pushes
		}
	}
}

func initSliderPseudoMoves() {
	for sq := A1; sq <= H8; sq++ {
		for _, d := range bishopDirections {
			pseudoMoves[Bishop][sq] |= rays[d.index()][sq]
		}
		for _, d := range rookDirections {
			pseudoMoves[Rook][sq] |= rays[d.index()][sq]
		}
		pseudoMoves[Queen][sq] = pseudoMoves[Bishop][sq] | pseudoMoves[Rook][sq]
	}
}

func initBetweenAndLines() {
	for from := A1; from <= H8; from++ {
		for _, d := range Directions {
			ray := rays[d.index()][from]
			back := rays[d.Opposite().index()][from]
			for to := range ray.All() {
				directionBetween[from][to] = d
				betweenBB[from][to] = ray ^ rays[d.index()][to] ^ SquareBB(to)
				lineBB[from][to] = ray | back | SquareBB(from)
			}
		}
	}
}

// Ray returns the squares beyond sq in direction d up to the board edge.
func Ray(d Direction, sq Square) Bitboard {
	i := d.index()
	if i > 7 || sq >= NoSquare {
		return Empty
	}
	return rays[i][sq]
}

// PseudoMoves returns the squares a piece of type pt and color c on sq reaches
// on an empty board. For pawns these are the two capture squares only.
func PseudoMoves(pt PieceType, c Color, sq Square) Bitboard {
	if pt == Pawn {
		return pawnAttacks[c][sq]
	}
	return pseudoMoves[pt][sq]
}

// DirectionBetween returns the direction from a to b, or NoDirection when the
// squares share no rank, file or diagonal.
func DirectionBetween(a, b Square) Direction {
	return directionBetween[a][b]
}

// Between returns the squares strictly between two co-linear squares.
func Between(a, b Square) Bitboard {
	return betweenBB[a][b]
}

// Line returns the full edge-to-edge line through two co-linear squares, or
// the empty set when they are not aligned.
func Line(a, b Square) Bitboard {
	return lineBB[a][b]
}

// Aligned reports whether three squares lie on one line.
func Aligned(a, b, c Square) bool {
	return lineBB[a][b]&SquareBB(c) != 0
}

// Fill returns the sliding attack from sq in direction d. The ray stops at
// the nearest occupied square; that square is kept only if it holds an enemy.
func Fill(d Direction, sq Square, own, enemy Bitboard) Bitboard {
	i := d.index()
	if i > 7 {
		return Empty
	}
	return fill(i, sq, own, enemy)
}

func fill(i int, sq Square, own, enemy Bitboard) Bitboard {
	ray := rays[i][sq]
	if blockers := ray & (own | enemy); blockers != 0 {
		nearest := blockers.MSB()
		if dirPositive[i] {
			nearest = blockers.LSB()
		}
		ray ^= rays[i][nearest]
	}
	return ray &^ own
}

// KnightAttacks returns knight targets from sq that are not occupied by own pieces.
func KnightAttacks(sq Square, own Bitboard) Bitboard {
	return pseudoMoves[Knight][sq] &^ own
}

// KingAttacks returns king targets from sq that are not occupied by own pieces.
func KingAttacks(sq Square, own Bitboard) Bitboard {
	return pseudoMoves[King][sq] &^ own
}

// PawnAttacks returns the enemy squares a pawn of color c on sq can capture.
func PawnAttacks(c Color, sq Square, enemy Bitboard) Bitboard {
	return pawnAttacks[c][sq] & enemy
}

// PawnPushes returns the push targets of a pawn of color c on sq. A blocked
// first step also cancels the double step.
func PawnPushes(c Color, sq Square, blockers Bitboard) Bitboard {
	dir := PawnDirection(c)
	noReach := (SquareBB(sq).Shift(dir) & blockers).Shift(dir)
	return pawnPushes[c][sq] &^ noReach &^ blockers
}

// BishopAttacks ORs the four diagonal fills from sq.
func BishopAttacks(sq Square, own, enemy Bitboard) Bitboard {
	return fill(4, sq, own, enemy) | fill(5, sq, own, enemy) |
		fill(6, sq, own, enemy) | fill(7, sq, own, enemy)
}

// RookAttacks ORs the four orthogonal fills from sq.
func RookAttacks(sq Square, own, enemy Bitboard) Bitboard {
	return fill(0, sq, own, enemy) | fill(1, sq, own, enemy) |
		fill(2, sq, own, enemy) | fill(3, sq, own, enemy)
}

// QueenAttacks combines bishop and rook attacks.
func QueenAttacks(sq Square, own, enemy Bitboard) Bitboard {
	return BishopAttacks(sq, own, enemy) | RookAttacks(sq, own, enemy)
}

// Attacks returns the attack set of a piece of type pt and color c on sq
// given own and enemy occupancy. Pawn pushes are not attacks.
func Attacks(pt PieceType, c Color, sq Square, own, enemy Bitboard) Bitboard {
	switch pt {
	case Pawn:
		return pawnAttacks[c][sq] &^ own
	case Knight:
		return KnightAttacks(sq, own)
	case Bishop:
		return BishopAttacks(sq, own, enemy)
	case Rook:
		return RookAttacks(sq, own, enemy)
	case Queen:
		return QueenAttacks(sq, own, enemy)
	case King:
		return KingAttacks(sq, own)
	}
	return Empty
}
