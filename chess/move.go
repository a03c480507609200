package chess

// Move is a packed from-square/to-square/promotion-piece triple. It carries
// no other state: unlike goosemg's Move, it does not remember which piece
// moved or was captured, because Board.Play never needs to unmake a move —
// it copies the board and returns the copy, so there is nothing to reverse.
// Castling is encoded as the king moving onto its own rook's square (the
// "king takes rook" convention used by Chess960 engines), and an en passant
// capture is simply a pawn move onto the board's en passant square; both
// are recovered from board context at apply time rather than flagged here.
type Move uint16

const (
	moveFromShift = 0
	moveToShift   = 6
	movePromoShift = 12
	moveSquareMask = 0x3f
	movePromoMask  = 0x7
)

// NewMove builds a Move. promotion must be NoPiece, Knight, Bishop, Rook or
// Queen.
func NewMove(from, to Square, promotion Piece) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift | uint16(promotion)<<movePromoShift)
}

func (m Move) From() Square      { return Square(uint16(m) >> moveFromShift & moveSquareMask) }
func (m Move) To() Square        { return Square(uint16(m) >> moveToShift & moveSquareMask) }
func (m Move) Promotion() Piece  { return Piece(uint16(m) >> movePromoShift & movePromoMask) }
func (m Move) IsPromotion() bool { return m.Promotion() != NoPiece }

// NullMove is the move that passes the turn without changing the board,
// represented with identical from/to squares (an otherwise impossible
// move).
var NullMove = NewMove(0, 0, NoPiece)

func (m Move) IsNull() bool { return m.From() == m.To() && !m.IsPromotion() }

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		switch m.Promotion() {
		case Knight:
			s += "n"
		case Bishop:
			s += "b"
		case Rook:
			s += "r"
		case Queen:
			s += "q"
		}
	}
	return s
}

// ParseMove parses UCI-style long algebraic notation, e.g. "e2e4", "e7e8q",
// or the null move "0000".
func ParseMove(s string) (Move, error) {
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) != 4 && len(s) != 5 {
		return 0, &ParseError{Kind: "move", Value: s, Reason: "expected 4 or 5 characters"}
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return 0, &ParseError{Kind: "move", Value: s, Reason: "bad origin square"}
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return 0, &ParseError{Kind: "move", Value: s, Reason: "bad destination square"}
	}
	promo := NoPiece
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return 0, &ParseError{Kind: "move", Value: s, Reason: "unknown promotion piece"}
		}
	}
	return NewMove(from, to, promo), nil
}
