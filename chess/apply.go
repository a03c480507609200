package chess

// Play returns the board after m is made, or an IllegalMoveError if m is
// not legal in b. Unlike goosemg's Apply (which mutates the board in
// place and hands back an undo closure), Play copies b — a Board has no
// pointers, so the copy is just the struct fields — and mutates the copy,
// leaving b untouched. There is no unmake because there is nothing left to
// unmake: the caller simply discards the copy on error.
func (b Board) Play(m Move) (Board, error) {
	nb := b
	if m.IsNull() {
		if nb.inCheck() {
			return Board{}, &IllegalMoveError{Move: m}
		}
		nb.applyNullMoveUnchecked()
		return nb, nil
	}

	legal := false
	b.GenerateLegalMoves(func(piece Piece, from Square, toSet BitBoard, promo Piece) bool {
		legal = from == m.From() && promo == m.Promotion() && toSet.Has(m.To())
		return legal
	})
	if !legal {
		return Board{}, &IllegalMoveError{Move: m}
	}

	mover := nb.sideToMove
	isCastle, rookFrom := nb.moveIsCastle(m)
	if isCastle {
		if !nb.castleLegal(mover, m.From(), rookFrom) {
			return Board{}, &IllegalMoveError{Move: m}
		}
	}
	nb.applyMoveUnchecked(m)
	if nb.isAttacked(nb.King(mover), nb.sideToMove) {
		return Board{}, &IllegalMoveError{Move: m}
	}
	return nb, nil
}

// PlayUnchecked applies m without any legality verification. It exists for
// callers (chiefly the move generator) that already proved m legal and do
// not want to pay for re-verifying it.
func (b Board) PlayUnchecked(m Move) Board {
	nb := b
	if m.IsNull() {
		nb.applyNullMoveUnchecked()
		return nb
	}
	nb.applyMoveUnchecked(m)
	return nb
}

// PlayNullMove returns the board with the side to move passed, as used by
// null-move search pruning. It is illegal (and PlayUnchecked will produce a
// nonsensical board) while in check.
func (b Board) PlayNullMove() Board { return b.PlayUnchecked(NullMove) }

func (b *Board) inCheck() bool {
	return b.isAttacked(b.King(b.sideToMove), b.sideToMove.Other())
}

// moveIsCastle reports whether m is a castling move under the king-takes-
// rook encoding, and if so returns the rook's origin square (m.To()).
func (b *Board) moveIsCastle(m Move) (bool, Square) {
	from, to := m.From(), m.To()
	if b.pieces[from] != King {
		return false, 0
	}
	us, ok := b.ColorAt(from)
	if !ok || !b.colorBB[us].Has(to) {
		return false, 0
	}
	return true, to
}

func absRankDiff(a, b Square) int {
	ra, rb := int(a.Rank()), int(b.Rank())
	if ra < rb {
		return rb - ra
	}
	return ra - rb
}

// applyMoveUnchecked mutates the receiver to reflect m without checking
// legality (castling legality included) — callers must already know m is
// at least pseudo-legal.
func (b *Board) applyMoveUnchecked(m Move) {
	us := b.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	moved := b.pieces[from]

	isCastle, rookFrom := b.moveIsCastle(m)
	isCapture := !isCastle && b.Occupied().Has(to)
	isEP := !isCastle && moved == Pawn && to.File() != from.File() && !b.Occupied().Has(to)
	resetClock := moved == Pawn || isCapture || isEP

	switch {
	case isCastle:
		b.doCastle(us, from, rookFrom)
	case isEP:
		capturedSq := MakeSquare(to.File(), from.Rank())
		b.removePiece(them, Pawn, capturedSq)
		b.movePiece(us, Pawn, from, to)
	default:
		if isCapture {
			captured := b.pieces[to]
			b.removePiece(them, captured, to)
			b.clearCastleRightIfRookOrigin(them, to)
		}
		if m.IsPromotion() {
			b.removePiece(us, Pawn, from)
			b.addPiece(us, m.Promotion(), to)
		} else {
			b.movePiece(us, moved, from, to)
		}
	}

	if !isCastle {
		if moved == King {
			b.castle[us] = CastleRights{}
		} else if moved == Rook {
			b.clearCastleRightIfRookOrigin(us, from)
		}
	}

	if moved == Pawn && absRankDiff(to, from) == 2 {
		b.epFile = int8(from.File())
	} else {
		b.epFile = -1
	}

	if resetClock {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if us == Black {
		b.fullmove++
	}
	b.sideToMove = them
	b.hash = b.computeHash()
}

func (b *Board) applyNullMoveUnchecked() {
	us := b.sideToMove
	b.epFile = -1
	if us == Black {
		b.fullmove++
	}
	b.sideToMove = us.Other()
	b.hash = b.computeHash()
}

// doCastle performs the king/rook relocation for a castling move. Both
// pieces are removed before either is re-added so that a Chess960 board
// where the king's destination coincides with the rook's origin square
// (or vice versa) never passes through an inconsistent intermediate state.
func (b *Board) doCastle(us Color, kingFrom, rookFrom Square) {
	rank := kingFrom.Rank()
	short := rookFrom.File() > kingFrom.File()
	var kingToF, rookToF File
	if short {
		kingToF, rookToF = 6, 5
	} else {
		kingToF, rookToF = 2, 3
	}
	kingTo := MakeSquare(kingToF, rank)
	rookTo := MakeSquare(rookToF, rank)

	b.removePiece(us, King, kingFrom)
	b.removePiece(us, Rook, rookFrom)
	b.addPiece(us, King, kingTo)
	b.addPiece(us, Rook, rookTo)
	b.castle[us] = CastleRights{}
}

func (b *Board) clearCastleRightIfRookOrigin(c Color, sq Square) {
	homeRank := Rank(0)
	if c == Black {
		homeRank = Rank(7)
	}
	if sq.Rank() != homeRank {
		return
	}
	cr := &b.castle[c]
	if cr.Short != nil && *cr.Short == sq.File() {
		cr.Short = nil
	}
	if cr.Long != nil && *cr.Long == sq.File() {
		cr.Long = nil
	}
}

// castleLegal checks the part of castling legality that Play must verify
// even for a hand-built Move that never passed through the generator: the
// right is still held, the king and rook paths are clear of any third
// piece, and no square the king crosses (including its origin and
// destination) is attacked.
func (b *Board) castleLegal(us Color, kingFrom, rookFrom Square) bool {
	them := us.Other()
	cr := b.castle[us]
	short := rookFrom.File() > kingFrom.File()
	if short {
		if !cr.hasShort() || *cr.Short != rookFrom.File() {
			return false
		}
	} else {
		if !cr.hasLong() || *cr.Long != rookFrom.File() {
			return false
		}
	}

	rank := kingFrom.Rank()
	var kingToF, rookToF File
	if short {
		kingToF, rookToF = 6, 5
	} else {
		kingToF, rookToF = 2, 3
	}
	kingTo := MakeSquare(kingToF, rank)
	rookTo := MakeSquare(rookToF, rank)

	kingPath := squaresBetweenInclusive(kingFrom, kingTo)
	rookPath := squaresBetweenInclusive(rookFrom, rookTo)
	occWithoutMovers := b.Occupied().WithoutSquare(kingFrom).WithoutSquare(rookFrom)
	if occWithoutMovers&(kingPath|rookPath) != 0 {
		return false
	}

	safe := true
	kingPath.ForEach(func(s Square) bool {
		if b.squareAttackedWithOcc(s, them, occWithoutMovers) {
			safe = false
			return false
		}
		return true
	})
	return safe
}

func squaresBetweenInclusive(a, b Square) BitBoard {
	r := a.Rank()
	lo, hi := a.File(), b.File()
	if lo > hi {
		lo, hi = hi, lo
	}
	var m BitBoard
	for f := lo; f <= hi; f++ {
		m = m.WithSquare(MakeSquare(f, r))
	}
	return m
}
