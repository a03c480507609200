package chess

import "math/rand"

// Zobrist tables, filled once from a fixed seed (0xC0DE, the same constant
// goosemg's zobrist.go seeds with) so two processes hash the same position
// to the same value — useful for opening-book and transposition-table
// callers built on top of this package.
var (
	zobristPiece      [2][7][64]uint64 // [color][piece][square]
	zobristCastleBits [16]uint64
	zobristEnPassant  [8]uint64
	zobristSide       uint64
)

func init() {
	rng := rand.New(rand.NewSource(0xC0DE))
	for c := 0; c < 2; c++ {
		for p := Pawn; p <= King; p++ {
			for s := 0; s < 64; s++ {
				zobristPiece[c][p][s] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastleBits {
		zobristCastleBits[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// computeHash recomputes the Zobrist hash from scratch. The en passant
// term is only included when some pawn of the side to move could actually
// execute the capture — an en passant file surviving on the board with no
// legal capturing pawn does not change the hash, so SamePosition treats it
// the same as no en passant file at all. This resolves the spec's
// otherwise-open question about en-passant relevance the way cozy-chess's
// own hash construction does.
func (b *Board) computeHash() uint64 {
	var h uint64
	for s := Square(0); s < 64; s++ {
		p := b.pieces[s]
		if p == NoPiece {
			continue
		}
		c, _ := b.ColorAt(s)
		h ^= zobristPiece[c][p][s]
	}
	h ^= zobristCastleBits[presenceBits(b.castle[White], b.castle[Black])]
	if b.epFile >= 0 && b.enPassantCaptureExists() {
		h ^= zobristEnPassant[b.epFile]
	}
	if b.sideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// enPassantCaptureExists reports whether the side to move has a pawn
// positioned to capture en passant right now.
func (b *Board) enPassantCaptureExists() bool {
	target, ok := b.enPassantSquare()
	if !ok {
		return false
	}
	ensureTables()
	us := b.sideToMove
	attackers := pawnAttacks[us.Other()][target] & b.ColorPieces(us, Pawn)
	return attackers != Empty
}
