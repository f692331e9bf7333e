package board

// Zobrist keys. The piece keys feed the incremental hash kept in Position;
// the others are folded in on demand by Position.Hash.
var (
	zobristPiece      [2][6][64]uint64
	zobristEnPassant  [8]uint64  // by file
	zobristCastling   [16]uint64 // by rights mask
	zobristSideToMove uint64     // black to move
)

// splitMix64 yields a fixed key sequence so hashes are stable across runs
// and can be stored.
type splitMix64 uint64

func (s *splitMix64) next() uint64 {
	*s += 0x9E3779B97F4A7C15
	z := uint64(*s)
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}

func initZobrist() {
	rng := splitMix64(0x5EED_C0DE_2024_0001)

	for c := range zobristPiece {
		for pt := range zobristPiece[c] {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}
