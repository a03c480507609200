package chess

import "math/bits"

// BitBoard is a set of squares, one bit per square (bit i = square i).
// It is a set, not an integer: callers should reach for the set operations
// below rather than raw bitwise arithmetic, the same way goosemg's internal
// uint64 boards are used, but exported as a named type so the zero value and
// the operations read the same regardless of which piece or color they hold.
type BitBoard uint64

// Empty is the bitboard with no squares set.
const Empty BitBoard = 0

// square converts a Square into a single-bit BitBoard.
func square(s Square) BitBoard { return BitBoard(1) << uint(s) }

func (b BitBoard) Union(o BitBoard) BitBoard        { return b | o }
func (b BitBoard) Intersect(o BitBoard) BitBoard    { return b & o }
func (b BitBoard) Diff(o BitBoard) BitBoard         { return b &^ o }
func (b BitBoard) SymmetricDiff(o BitBoard) BitBoard { return b ^ o }
func (b BitBoard) Complement() BitBoard             { return ^b }

func (b BitBoard) Has(s Square) bool      { return b&square(s) != 0 }
func (b BitBoard) IsEmpty() bool          { return b == 0 }
func (b BitBoard) Count() int             { return bits.OnesCount64(uint64(b)) }
func (b BitBoard) IsSubsetOf(o BitBoard) bool   { return b&o == b }
func (b BitBoard) IsSupersetOf(o BitBoard) bool { return o.IsSubsetOf(b) }
func (b BitBoard) Disjoint(o BitBoard) bool     { return b&o == 0 }

// WithSquare returns b with s added.
func (b BitBoard) WithSquare(s Square) BitBoard { return b | square(s) }

// WithoutSquare returns b with s removed.
func (b BitBoard) WithoutSquare(s Square) BitBoard { return b &^ square(s) }

// Next returns the lowest-indexed square in b and b with that square
// cleared. Calling Next on an empty board is a programming error; callers
// drive the loop with !b.IsEmpty().
func (b BitBoard) Next() (Square, BitBoard) {
	s := Square(bits.TrailingZeros64(uint64(b)))
	return s, b&(b-1)
}

// ForEach calls fn once per set square, lowest square first. It stops early
// if fn returns false.
func (b BitBoard) ForEach(fn func(Square) bool) {
	for !b.IsEmpty() {
		var s Square
		s, b = b.Next()
		if !fn(s) {
			return
		}
	}
}

func (b BitBoard) String() string {
	out := make([]byte, 0, 73)
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			if b.Has(MakeSquare(File(f), Rank(r))) {
				out = append(out, 'X')
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
