package chess

import "sync"

// Leaper attack tables: one entry per origin square, built once. Unlike
// goosemg's unconditional init(), these are built lazily behind a
// sync.Once so importing the package never pays for table construction
// unless a query actually needs it.
var (
	knightAttacks [64]BitBoard
	kingAttacksTb [64]BitBoard
	pawnAttacks   [2][64]BitBoard

	rookMask   [64]BitBoard
	bishopMask [64]BitBoard
)

var tablesOnce sync.Once

func ensureTables() {
	tablesOnce.Do(func() {
		initLeaperTables()
		initSliderMasks()
		initSliderTables()
		initLineTable()
	})
}

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

func initLeaperTables() {
	for sq := 0; sq < 64; sq++ {
		f, r := int(Square(sq).File()), int(Square(sq).Rank())
		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				knightAttacks[sq] = knightAttacks[sq].WithSquare(MakeSquare(File(nf), Rank(nr)))
			}
		}
		for _, d := range kingDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				kingAttacksTb[sq] = kingAttacksTb[sq].WithSquare(MakeSquare(File(nf), Rank(nr)))
			}
		}
		if r < 7 {
			if f > 0 {
				pawnAttacks[White][sq] = pawnAttacks[White][sq].WithSquare(MakeSquare(File(f-1), Rank(r+1)))
			}
			if f < 7 {
				pawnAttacks[White][sq] = pawnAttacks[White][sq].WithSquare(MakeSquare(File(f+1), Rank(r+1)))
			}
		}
		if r > 0 {
			if f > 0 {
				pawnAttacks[Black][sq] = pawnAttacks[Black][sq].WithSquare(MakeSquare(File(f-1), Rank(r-1)))
			}
			if f < 7 {
				pawnAttacks[Black][sq] = pawnAttacks[Black][sq].WithSquare(MakeSquare(File(f+1), Rank(r-1)))
			}
		}
	}
}

var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// slideRay casts a ray from sq in direction d across occ, stopping at (and
// including) the first occupied square.
func slideRay(sq Square, d [2]int, occ BitBoard) BitBoard {
	var att BitBoard
	f, r := int(sq.File()), int(sq.Rank())
	for {
		f += d[0]
		r += d[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			break
		}
		s := MakeSquare(File(f), Rank(r))
		att = att.WithSquare(s)
		if occ.Has(s) {
			break
		}
	}
	return att
}

func rookAttacksSlow(sq Square, occ BitBoard) BitBoard {
	var att BitBoard
	for _, d := range rookDirs {
		att |= slideRay(sq, d, occ)
	}
	return att
}

func bishopAttacksSlow(sq Square, occ BitBoard) BitBoard {
	var att BitBoard
	for _, d := range bishopDirs {
		att |= slideRay(sq, d, occ)
	}
	return att
}

// initSliderMasks builds the relevant-occupancy masks (the ray excluding
// the board edge) shared by both slider attack backends.
func initSliderMasks() {
	for sq := 0; sq < 64; sq++ {
		rookMask[sq] = edgeTrimmedRookRay(Square(sq))
		bishopMask[sq] = edgeTrimmedBishopRay(Square(sq))
	}
}

func edgeTrimmedRookRay(sq Square) BitBoard {
	full := rookAttacksSlow(sq, Empty)
	return full &^ boardEdgeFor(sq, rookDirs)
}

func edgeTrimmedBishopRay(sq Square) BitBoard {
	full := bishopAttacksSlow(sq, Empty)
	return full &^ boardEdgeFor(sq, bishopDirs)
}

// boardEdgeFor returns the squares at the far edge of each of sq's rays
// (where a blocker there can never hide a further square, so it is excluded
// from the occupancy mask).
func boardEdgeFor(sq Square, dirs [4][2]int) BitBoard {
	var edge BitBoard
	f0, r0 := int(sq.File()), int(sq.Rank())
	for _, d := range dirs {
		f, r := f0, r0
		var last Square
		found := false
		for {
			f += d[0]
			r += d[1]
			if f < 0 || f > 7 || r < 0 || r > 7 {
				break
			}
			last = MakeSquare(File(f), Rank(r))
			found = true
		}
		if found {
			edge = edge.WithSquare(last)
		}
	}
	return edge
}

func queenAttacks(sq Square, occ BitBoard) BitBoard {
	return rookAttacks(sq, occ) | bishopAttacks(sq, occ)
}

// attackersTo returns every by-colored piece attacking s.
func (b *Board) attackersTo(s Square, by Color) BitBoard {
	ensureTables()
	occ := b.Occupied()
	var att BitBoard
	att |= knightAttacks[s] & b.ColorPieces(by, Knight)
	att |= kingAttacksTb[s] & b.ColorPieces(by, King)
	att |= pawnAttacks[by.Other()][s] & b.ColorPieces(by, Pawn)
	att |= rookAttacks(s, occ) & (b.ColorPieces(by, Rook) | b.ColorPieces(by, Queen))
	att |= bishopAttacks(s, occ) & (b.ColorPieces(by, Bishop) | b.ColorPieces(by, Queen))
	return att
}

func (b *Board) isAttacked(s Square, by Color) bool {
	return b.attackersTo(s, by) != Empty
}

// squareAttackedWithOcc checks an attack against an explicit occupancy
// bitboard rather than the board's own, for callers (castling legality,
// the king danger set) that need to reason about squares with some pieces
// hypothetically removed.
func (b *Board) squareAttackedWithOcc(s Square, by Color, occ BitBoard) bool {
	ensureTables()
	if knightAttacks[s]&b.ColorPieces(by, Knight) != 0 {
		return true
	}
	if kingAttacksTb[s]&b.ColorPieces(by, King) != 0 {
		return true
	}
	if pawnAttacks[by.Other()][s]&b.ColorPieces(by, Pawn) != 0 {
		return true
	}
	if rookAttacks(s, occ)&(b.ColorPieces(by, Rook)|b.ColorPieces(by, Queen)) != 0 {
		return true
	}
	if bishopAttacks(s, occ)&(b.ColorPieces(by, Bishop)|b.ColorPieces(by, Queen)) != 0 {
		return true
	}
	return false
}

// Checkers returns the set of enemy pieces currently giving check to the
// side to move's king.
func (b *Board) Checkers() BitBoard {
	return b.attackersTo(b.King(b.sideToMove), b.sideToMove.Other())
}

// Pinned returns the set of the side to move's own pieces that are pinned
// to their king: pieces that, if moved off their current ray, would expose
// the king to a rook, bishop or queen attack.
func (b *Board) Pinned() BitBoard {
	ensureTables()
	us := b.sideToMove
	them := us.Other()
	king := b.King(us)
	occ := b.Occupied()
	own := b.colorBB[us]

	var pinned BitBoard
	pinned |= pinnedAlong(king, occ, own, b.ColorPieces(them, Rook)|b.ColorPieces(them, Queen), rookAttacks)
	pinned |= pinnedAlong(king, occ, own, b.ColorPieces(them, Bishop)|b.ColorPieces(them, Queen), bishopAttacks)
	return pinned
}

// kingDangerSet returns, among the squares the king could step to, those
// that are attacked by the opponent once the king itself is removed from
// the occupancy — a slider whose ray currently stops at the king must not
// let the king "hide behind itself" when computing where it may flee to.
// It is computed once per generator call rather than re-derived per
// candidate destination.
func (b *Board) kingDangerSet(us Color) BitBoard {
	ensureTables()
	them := us.Other()
	kingSq := b.King(us)
	occWithoutKing := b.Occupied().WithoutSquare(kingSq)
	candidates := kingAttacksTb[kingSq] &^ b.colorBB[us]

	var danger BitBoard
	candidates.ForEach(func(s Square) bool {
		if b.squareAttackedWithOcc(s, them, occWithoutKing) {
			danger = danger.WithSquare(s)
		}
		return true
	})
	return danger
}

func pinnedAlong(king Square, occ, own, enemySliders BitBoard, attacksFn func(Square, BitBoard) BitBoard) BitBoard {
	var pinned BitBoard
	baseline := attacksFn(king, occ)
	nearest := baseline & own
	nearest.ForEach(func(sq Square) bool {
		// sq only pins if removing it newly exposes an enemy slider the king
		// could not already see — if that slider was visible with sq still
		// on the board (an open-ray check from a different direction
		// entirely), sq merely happens to sit on some other ray and is not
		// actually pinned.
		revealed := attacksFn(king, occ.WithoutSquare(sq)) &^ baseline
		if revealed&enemySliders != 0 {
			pinned = pinned.WithSquare(sq)
		}
		return true
	})
	return pinned
}
