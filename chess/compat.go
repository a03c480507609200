package chess

// PlayUCI parses s as a UCI long-algebraic move and plays it, the common
// path for a driver reading a move list off stdin or a UCI "position"
// command.
func (b Board) PlayUCI(s string) (Board, error) {
	m, err := ParseMove(s)
	if err != nil {
		return Board{}, err
	}
	return b.Play(m)
}

func (b *Board) String() string { return b.ToFEN() }

// UCI renders m as a UCI long-algebraic string, with standard selecting
// between the two conventions a GUI might expect: false (Chess960 mode)
// renders castling as king-to-rook, the same as Move.String(); true
// (standard mode) renders it as king-to-g/c-file, the classical notation a
// pure-standard-chess consumer expects instead of the rook's square.
// Non-castling moves render identically either way.
func (b *Board) UCI(m Move, standard bool) string {
	if !standard {
		return m.String()
	}
	isCastle, rookFrom := b.moveIsCastle(m)
	if !isCastle {
		return m.String()
	}
	kingFrom := m.From()
	kingToF := File(2)
	if rookFrom.File() > kingFrom.File() {
		kingToF = File(6)
	}
	kingTo := MakeSquare(kingToF, kingFrom.Rank())
	return kingFrom.String() + kingTo.String()
}

// IsCapture reports whether m, played against b, removes an enemy piece —
// true for ordinary captures and en passant, false for castling (moving
// onto one's own rook is never a capture).
func (b *Board) IsCapture(m Move) bool {
	if m.IsNull() {
		return false
	}
	isCastle, _ := b.moveIsCastle(m)
	if isCastle {
		return false
	}
	if b.Occupied().Has(m.To()) {
		return true
	}
	return b.pieces[m.From()] == Pawn && m.To().File() != m.From().File()
}
