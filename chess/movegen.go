package chess

// MoveConsumer receives one group of moves that share a piece, an origin
// square and a promotion piece (NoPiece for non-promotions): every square
// set in toSet is a legal destination for that piece moving from that
// square with that promotion. A promoting pawn is reported as four
// separate groups, one per promotion piece, each carrying the same
// destination set, so that expanding a group into individual Move values
// is always just "one call to NewMove per set bit". Consume returns true
// to stop generation early (used by HasLegalMoves to bail after the first
// destination found).
type MoveConsumer func(piece Piece, from Square, toSet BitBoard, promotion Piece) (stop bool)

var lineThroughTable [64][64]BitBoard

func initLineTable() {
	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			lineThroughTable[a][b] = computeLine(Square(a), Square(b))
		}
	}
}

func computeLine(a, b Square) BitBoard {
	if a == b {
		return square(a)
	}
	ra := rookAttacksSlow(a, Empty)
	if ra.Has(b) {
		rb := rookAttacksSlow(b, Empty)
		return (ra & rb) | square(a) | square(b)
	}
	ba := bishopAttacksSlow(a, Empty)
	if ba.Has(b) {
		bb := bishopAttacksSlow(b, Empty)
		return (ba & bb) | square(a) | square(b)
	}
	return Empty
}

func lineThrough(a, b Square) BitBoard { return lineThroughTable[a][b] }

// computeBetween returns the squares strictly between a and b along a
// shared rank, file or diagonal (empty if they are not aligned), using the
// classic "attack from a with b as the only blocker, intersected with the
// mirror image from b" trick rather than a precomputed table.
func computeBetween(a, b Square) BitBoard {
	ra := rookAttacksSlow(a, square(b))
	if ra.Has(b) {
		rb := rookAttacksSlow(b, square(a))
		return ra & rb
	}
	ba := bishopAttacksSlow(a, square(b))
	if ba.Has(b) {
		bb := bishopAttacksSlow(b, square(a))
		return ba & bb
	}
	return Empty
}

func isSlider(p Piece) bool { return p == Bishop || p == Rook || p == Queen }

// GenerateLegalMoves enumerates every legal move available to the side to
// move, grouped by (piece, origin square, promotion piece). This is the
// primary generator API; LegalMoves below is a thin convenience wrapper
// that expands every group into a flat slice for callers that do not need
// the grouping.
//
// The algorithm: find the checkers and, if there are two or more, only
// king moves are possible. Otherwise compute a check mask (every square
// that blocks or captures the sole checker, or every square on the board
// if not in check) and the set of pinned pieces, then walk each piece type
// restricting destinations to the check mask and, for pinned pieces, to
// the line between the king and that piece. King moves are filtered
// against a king danger set — the squares the opponent attacks with the
// king itself removed from the occupancy, so a slider whose ray currently
// ends at the king does not let the king "escape" along that same ray.
func (b *Board) GenerateLegalMoves(consume MoveConsumer) {
	ensureTables()
	us := b.sideToMove
	them := us.Other()
	kingSq := b.King(us)
	occ := b.Occupied()
	ownOcc := b.colorBB[us]
	enemyOcc := b.colorBB[them]

	stopped := false
	emit := func(piece Piece, from Square, toSet BitBoard, promo Piece) {
		if stopped || toSet == Empty {
			return
		}
		if consume(piece, from, toSet, promo) {
			stopped = true
		}
	}

	danger := b.kingDangerSet(us)
	kingTargets := kingAttacksTb[kingSq] &^ ownOcc &^ danger
	emit(King, kingSq, kingTargets, NoPiece)
	if stopped {
		return
	}

	checkers := b.attackersTo(kingSq, them)
	numCheckers := checkers.Count()
	if numCheckers >= 2 {
		return
	}

	mask := BitBoard(^uint64(0))
	var checkerSq Square
	inCheck := numCheckers == 1
	if inCheck {
		checkerSq, _ = checkers.Next()
		if isSlider(b.pieces[checkerSq]) {
			mask = computeBetween(kingSq, checkerSq) | square(checkerSq)
		} else {
			mask = square(checkerSq)
		}
	}

	pinned := b.Pinned()

	knights := b.ColorPieces(us, Knight) &^ pinned
	knights.ForEach(func(from Square) bool {
		emit(Knight, from, knightAttacks[from]&^ownOcc&mask, NoPiece)
		return !stopped
	})
	if stopped {
		return
	}

	b.generateSliderMoves(emit, us, Bishop, bishopAttacks, pinned, kingSq, occ, ownOcc, mask)
	if stopped {
		return
	}
	b.generateSliderMoves(emit, us, Rook, rookAttacks, pinned, kingSq, occ, ownOcc, mask)
	if stopped {
		return
	}
	b.generateSliderMoves(emit, us, Queen, queenAttacks, pinned, kingSq, occ, ownOcc, mask)
	if stopped {
		return
	}

	b.generatePawnMoves(emit, us, enemyOcc, occ, pinned, kingSq, mask, inCheck, checkerSq)
	if stopped {
		return
	}

	if !inCheck {
		b.generateCastleMoves(emit, us, kingSq)
	}
}

func (b *Board) generateSliderMoves(emit func(Piece, Square, BitBoard, Piece), us Color, piece Piece, attacksFn func(Square, BitBoard) BitBoard, pinned BitBoard, kingSq Square, occ, ownOcc, mask BitBoard) {
	pieces := b.ColorPieces(us, piece)
	pieces.ForEach(func(from Square) bool {
		targets := attacksFn(from, occ) &^ ownOcc & mask
		if pinned.Has(from) {
			targets &= lineThrough(kingSq, from)
		}
		emit(piece, from, targets, NoPiece)
		return true
	})
}

func (b *Board) generatePawnMoves(emit func(Piece, Square, BitBoard, Piece), us Color, enemyOcc, occ, pinned BitBoard, kingSq Square, mask BitBoard, inCheck bool, checkerSq Square) {
	pawns := b.ColorPieces(us, Pawn)

	var forward int
	var startRank, promoRank Rank
	if us == White {
		forward, startRank, promoRank = 8, 1, 7
	} else {
		forward, startRank, promoRank = -8, 6, 0
	}

	pawns.ForEach(func(from Square) bool {
		allowedLine := BitBoard(^uint64(0))
		if pinned.Has(from) {
			allowedLine = lineThrough(kingSq, from)
		}

		var quiet, promo BitBoard
		consider := func(to Square) {
			if !mask.Has(to) || !allowedLine.Has(to) {
				return
			}
			if to.Rank() == promoRank {
				promo = promo.WithSquare(to)
			} else {
				quiet = quiet.WithSquare(to)
			}
		}

		oneIdx := int(from) + forward
		if oneIdx >= 0 && oneIdx < 64 {
			oneSq := Square(oneIdx)
			if !occ.Has(oneSq) {
				consider(oneSq)
				if from.Rank() == startRank {
					twoSq := Square(int(from) + 2*forward)
					if !occ.Has(twoSq) {
						consider(twoSq)
					}
				}
			}
		}

		caps := pawnAttacks[us][from] & enemyOcc
		caps.ForEach(func(to Square) bool {
			consider(to)
			return true
		})

		emit(Pawn, from, quiet, NoPiece)
		if promo != Empty {
			emit(Pawn, from, promo, Knight)
			emit(Pawn, from, promo, Bishop)
			emit(Pawn, from, promo, Rook)
			emit(Pawn, from, promo, Queen)
		}

		if epSq, ok := b.enPassantSquare(); ok && pawnAttacks[us][from].Has(epSq) {
			capturedSq := MakeSquare(epSq.File(), from.Rank())
			if mask.Has(epSq) || mask.Has(capturedSq) {
				if b.enPassantSafe(us, from, epSq, capturedSq) {
					emit(Pawn, from, square(epSq), NoPiece)
				}
			}
		}
		return true
	})
}

// enPassantSafe simulates removing both the moving pawn and the captured
// pawn (and adding the moving pawn at its destination) and checks whether
// an enemy rook, bishop or queen then attacks the king — the only way to
// correctly reject the horizontal discovered-check case, where the two pawns
// being removed simultaneously (rather than the capturing pawn alone)
// unmasks a rook or queen along the rank. Non-slider checks are already
// handled by the caller's check mask.
func (b *Board) enPassantSafe(us Color, from, to, capturedSq Square) bool {
	them := us.Other()
	kingSq := b.King(us)
	occ := b.Occupied().WithoutSquare(from).WithoutSquare(capturedSq).WithSquare(to)
	rooks := b.ColorPieces(them, Rook) | b.ColorPieces(them, Queen)
	bishops := b.ColorPieces(them, Bishop) | b.ColorPieces(them, Queen)
	return rookAttacks(kingSq, occ)&rooks == 0 && bishopAttacks(kingSq, occ)&bishops == 0
}

func (b *Board) generateCastleMoves(emit func(Piece, Square, BitBoard, Piece), us Color, kingSq Square) {
	cr := b.castle[us]
	if cr.hasShort() {
		rookFrom := MakeSquare(*cr.Short, kingSq.Rank())
		if b.castleLegal(us, kingSq, rookFrom) {
			emit(King, kingSq, square(rookFrom), NoPiece)
		}
	}
	if cr.hasLong() {
		rookFrom := MakeSquare(*cr.Long, kingSq.Rank())
		if b.castleLegal(us, kingSq, rookFrom) {
			emit(King, kingSq, square(rookFrom), NoPiece)
		}
	}
}

// LegalMoves expands GenerateLegalMoves into a flat slice, the same
// "...Into" buffer-reuse convention goosemg's generator uses to avoid an
// allocation per call when the caller already owns a backing array.
func (b *Board) LegalMoves() []Move {
	return b.LegalMovesInto(nil)
}

func (b *Board) LegalMovesInto(dst []Move) []Move {
	dst = dst[:0]
	b.GenerateLegalMoves(func(piece Piece, from Square, toSet BitBoard, promo Piece) bool {
		toSet.ForEach(func(to Square) bool {
			dst = append(dst, NewMove(from, to, promo))
			return true
		})
		return false
	})
	return dst
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, without materializing any of them.
func (b *Board) HasLegalMoves() bool {
	found := false
	b.GenerateLegalMoves(func(piece Piece, from Square, toSet BitBoard, promo Piece) bool {
		found = true
		return true
	})
	return found
}

// InCheckmate reports whether the side to move is in check with no legal
// moves.
func (b *Board) InCheckmate() bool {
	return b.inCheck() && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is not in check but has no
// legal moves.
func (b *Board) InStalemate() bool {
	return !b.inCheck() && !b.HasLegalMoves()
}

// IsDrawBy50 reports whether the halfmove clock has reached the
// fifty-move rule threshold.
func (b *Board) IsDrawBy50() bool {
	return b.halfmove >= 100
}

// IsInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate by any sequence of legal moves (bare kings, a single
// knight or bishop on the whole board, or one bishop each on squares of the
// same color).
func (b *Board) IsInsufficientMaterial() bool {
	if b.Pieces(Pawn)|b.Pieces(Rook)|b.Pieces(Queen) != Empty {
		return false
	}
	whiteMinors := b.ColorPieces(White, Knight).Count() + b.ColorPieces(White, Bishop).Count()
	blackMinors := b.ColorPieces(Black, Knight).Count() + b.ColorPieces(Black, Bishop).Count()
	if whiteMinors == 0 && blackMinors == 0 {
		return true
	}
	if whiteMinors+blackMinors == 1 {
		return true
	}
	if whiteMinors == 1 && blackMinors == 1 &&
		b.ColorPieces(White, Bishop) != Empty && b.ColorPieces(Black, Bishop) != Empty {
		wSq, _ := b.ColorPieces(White, Bishop).Next()
		bSq, _ := b.ColorPieces(Black, Bishop).Next()
		return squareColor(wSq) == squareColor(bSq)
	}
	return false
}

func squareColor(s Square) int { return (int(s.File()) + int(s.Rank())) % 2 }

// Perft counts the number of leaf positions reachable in exactly depth
// plies, the standard move generator conformance check.
func Perft(b Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	b.GenerateLegalMoves(func(piece Piece, from Square, toSet BitBoard, promo Piece) bool {
		toSet.ForEach(func(to Square) bool {
			m := NewMove(from, to, promo)
			nb := b.PlayUnchecked(m)
			nodes += Perft(nb, depth-1)
			return true
		})
		return false
	})
	return nodes
}

// PerftDivide returns, for each legal root move, the perft count of the
// subtree below it — useful for bisecting a move generator bug against a
// reference implementation.
func PerftDivide(b Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	b.GenerateLegalMoves(func(piece Piece, from Square, toSet BitBoard, promo Piece) bool {
		toSet.ForEach(func(to Square) bool {
			m := NewMove(from, to, promo)
			nb := b.PlayUnchecked(m)
			if depth <= 1 {
				out[m] = 1
			} else {
				out[m] = Perft(nb, depth-1)
			}
			return true
		})
		return false
	})
	return out
}
