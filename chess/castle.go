package chess

// CastleRights records, for one side, which files (if any) hold a rook that
// side may still castle with. Standard chess fixes these at the a-file and
// h-file; Chess960 and Double Chess960 may start the rooks on any file, so
// the right is tracked by rook origin file rather than by a fixed corner
// flag. A nil file means that side has permanently lost that castling
// right (rook moved, rook was captured, or the king moved).
type CastleRights struct {
	Short *File // kingside rook origin file
	Long  *File // queenside rook origin file
}

func fileptr(f File) *File { return &f }

// clone returns an independent copy so mutating one Board's rights never
// aliases another's.
func (c CastleRights) clone() CastleRights {
	nc := CastleRights{}
	if c.Short != nil {
		nc.Short = fileptr(*c.Short)
	}
	if c.Long != nil {
		nc.Long = fileptr(*c.Long)
	}
	return nc
}

func (c CastleRights) hasShort() bool { return c.Short != nil }
func (c CastleRights) hasLong() bool  { return c.Long != nil }

// presenceBits packs the (short, long) availability of both colors into the
// 4-bit pattern goosemg's castling zobrist table is indexed by. Only
// presence is hashed: the rook file itself never changes over the life of a
// board and is already reflected in the piece-placement terms of the hash.
func presenceBits(w, b CastleRights) uint8 {
	var bits uint8
	if w.hasShort() {
		bits |= 1 << 0
	}
	if w.hasLong() {
		bits |= 1 << 1
	}
	if b.hasShort() {
		bits |= 1 << 2
	}
	if b.hasLong() {
		bits |= 1 << 3
	}
	return bits
}

// standardCastleRights returns the conventional a-file/h-file rights used
// by the classical chess starting position.
func standardCastleRights() (white, black CastleRights) {
	a, h := File(0), File(7)
	white = CastleRights{Short: fileptr(h), Long: fileptr(a)}
	black = CastleRights{Short: fileptr(h), Long: fileptr(a)}
	return
}
