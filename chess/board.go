package chess

// Board is a complete, self-contained chess position: piece placement,
// side to move, castling rights, en passant file, and the two clocks
// needed to judge draws. It has no pointers and no slices, so copying a
// Board (as Play does on every move) is just copying a few fixed-size
// arrays — the same "cheap by value" shape goosemg's Board has, just
// without the make/unmake bookkeeping that only in-place mutation needs.
type Board struct {
	pieces  [64]Piece
	pieceBB [7]BitBoard // indexed by Piece; pieceBB[NoPiece] unused
	colorBB [2]BitBoard

	sideToMove Color
	castle     [2]CastleRights
	epFile     int8 // -1 if no en passant square
	halfmove   uint16
	fullmove   uint16

	hash uint64
}

// NewStandard returns the conventional chess starting position.
func NewStandard() Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic("chess: StartFEN failed to parse: " + err.Error())
	}
	return b
}

func (b *Board) SideToMove() Color { return b.sideToMove }

// Pieces returns the combined-color set of squares holding p.
func (b *Board) Pieces(p Piece) BitBoard { return b.pieceBB[p] }

// Colors returns the set of squares holding a piece of color c.
func (b *Board) Colors(c Color) BitBoard { return b.colorBB[c] }

// ColorPieces returns the squares holding a piece of color c and type p.
func (b *Board) ColorPieces(c Color, p Piece) BitBoard { return b.pieceBB[p] & b.colorBB[c] }

// Occupied returns every occupied square.
func (b *Board) Occupied() BitBoard { return b.colorBB[White] | b.colorBB[Black] }

// PieceAt returns the piece type on s, or NoPiece if empty.
func (b *Board) PieceAt(s Square) Piece { return b.pieces[s] }

// ColorAt returns the color of the piece on s. The second return is false
// if s is empty.
func (b *Board) ColorAt(s Square) (Color, bool) {
	switch {
	case b.colorBB[White].Has(s):
		return White, true
	case b.colorBB[Black].Has(s):
		return Black, true
	default:
		return White, false
	}
}

// King returns the square holding c's king.
func (b *Board) King(c Color) Square {
	sq, _ := b.ColorPieces(c, King).Next()
	return sq
}

// CastleRights returns c's current castling rights. The returned value is
// a copy; mutating it does not affect the board.
func (b *Board) CastleRights(c Color) CastleRights { return b.castle[c].clone() }

// EnPassantFile returns the file a pawn double-pushed to last move, and
// whether one exists at all.
func (b *Board) EnPassantFile() (File, bool) {
	if b.epFile < 0 {
		return 0, false
	}
	return File(b.epFile), true
}

// enPassantSquare returns the square a capturing pawn would land on, given
// the file returned by EnPassantFile and whose turn it is.
func (b *Board) enPassantSquare() (Square, bool) {
	if b.epFile < 0 {
		return NoSquare, false
	}
	// sideToMove is whoever moves next, i.e. the potential capturer. If
	// White double-pushed, Black captures en passant on rank index 2; if
	// Black double-pushed, White captures on rank index 5.
	r := Rank(5)
	if b.sideToMove == Black {
		r = Rank(2)
	}
	return MakeSquare(File(b.epFile), r), true
}

func (b *Board) HalfmoveClock() int   { return int(b.halfmove) }
func (b *Board) FullmoveNumber() int { return int(b.fullmove) }

// Hash returns the Zobrist hash of the position. The en passant file
// contributes only when the side to move has a pawn placed to capture en
// passant.
func (b *Board) Hash() uint64 { return b.hash }

// HashWithoutEP returns the Zobrist hash with the en passant term removed,
// for callers that want to treat "same placement, different stale en
// passant file" positions as equal (e.g. repetition detection across a
// position where the en passant right was never actually capturable).
func (b *Board) HashWithoutEP() uint64 {
	if b.epFile < 0 || !b.enPassantCaptureExists() {
		return b.hash
	}
	return b.hash ^ zobristEnPassant[b.epFile]
}

// SamePosition reports whether b and other are the same position for the
// purpose of repetition counting: same piece placement, same side to move,
// same castling rights, and the same currently-capturable en passant
// square (a stale en passant file that no pseudo-legal capture can use does
// not distinguish positions — see computeHash).
func (b *Board) SamePosition(other *Board) bool {
	return b.hash == other.hash
}

func (b *Board) addPiece(c Color, p Piece, s Square) {
	b.pieces[s] = p
	b.pieceBB[p] = b.pieceBB[p].WithSquare(s)
	b.colorBB[c] = b.colorBB[c].WithSquare(s)
}

func (b *Board) removePiece(c Color, p Piece, s Square) {
	b.pieces[s] = NoPiece
	b.pieceBB[p] = b.pieceBB[p].WithoutSquare(s)
	b.colorBB[c] = b.colorBB[c].WithoutSquare(s)
}

func (b *Board) movePiece(c Color, p Piece, from, to Square) {
	b.removePiece(c, p, from)
	b.addPiece(c, p, to)
}

// Validate checks the structural invariants a Board must hold regardless of
// how it was constructed: exactly one king per side, pawns never on the
// back ranks, no more than sixteen pieces of either color, the side not to
// move not in check, and every recorded castling right pointing at an
// actual rook of that color on that color's home rank with the king also on
// that rank.
func (b *Board) Validate() error {
	for _, c := range [2]Color{White, Black} {
		kings := b.ColorPieces(c, King)
		if kings.Count() != 1 {
			return &IllegalPositionError{Reason: c.String() + " must have exactly one king"}
		}
		if b.colorBB[c].Count() > 16 {
			return &IllegalPositionError{Reason: c.String() + " has more than sixteen pieces"}
		}
	}
	pawns := b.Pieces(Pawn)
	backRanks := rankMask(0) | rankMask(7)
	if pawns&backRanks != 0 {
		return &IllegalPositionError{Reason: "pawn on the first or eighth rank"}
	}
	opponent := b.sideToMove.Other()
	if b.isAttacked(b.King(opponent), b.sideToMove) {
		return &IllegalPositionError{Reason: "side not to move is in check"}
	}
	for _, c := range [2]Color{White, Black} {
		if err := b.validateCastleRights(c); err != nil {
			return err
		}
	}
	return nil
}

// validateCastleRights checks that every castling right c holds actually
// points at a rook of color c on c's home rank, with c's king also on that
// rank — a right surviving without one would let castleLegal approve a
// castle that fabricates a rook out of an empty square (see apply.go's
// doCastle).
func (b *Board) validateCastleRights(c Color) error {
	cr := b.castle[c]
	if !cr.hasShort() && !cr.hasLong() {
		return nil
	}
	home := Rank(0)
	if c == Black {
		home = Rank(7)
	}
	if b.King(c).Rank() != home {
		return &IllegalPositionError{Reason: c.String() + " holds a castling right with its king off the home rank"}
	}
	check := func(f *File) error {
		if f == nil {
			return nil
		}
		sq := MakeSquare(*f, home)
		if b.pieces[sq] != Rook || !b.colorBB[c].Has(sq) {
			return &IllegalPositionError{Reason: c.String() + " holds a castling right with no rook of its own on the recorded file"}
		}
		return nil
	}
	if err := check(cr.Short); err != nil {
		return err
	}
	return check(cr.Long)
}

func rankMask(r Rank) BitBoard {
	var m BitBoard
	for f := File(0); f < 8; f++ {
		m = m.WithSquare(MakeSquare(f, r))
	}
	return m
}

func fileMask(f File) BitBoard {
	var m BitBoard
	for r := Rank(0); r < 8; r++ {
		m = m.WithSquare(MakeSquare(f, r))
	}
	return m
}
