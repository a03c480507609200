package chess

import "github.com/go-playground/validator/v10"

// Builder constructs a Board field by field, for callers assembling a
// position from something other than FEN text (a board editor, a puzzle
// generator, a Chess960 start-position picker). Finalize validates the
// clocks with go-playground/validator before handing the result to
// Board.Validate for the structural invariants (exactly one king per
// side, no back-rank pawns, side not to move not in check).
type Builder struct {
	pieces   [64]Piece
	colors   [64]Color
	occupied [64]bool

	sideToMove Color
	castle     [2]CastleRights
	epFile     int8
	halfmove   int
	fullmove   int
}

// NewBuilder returns a Builder for an empty board, White to move, no
// castling rights, move one.
func NewBuilder() *Builder {
	return &Builder{epFile: -1, fullmove: 1}
}

func (bd *Builder) SetPiece(s Square, c Color, p Piece) *Builder {
	bd.pieces[s] = p
	bd.colors[s] = c
	bd.occupied[s] = true
	return bd
}

func (bd *Builder) ClearSquare(s Square) *Builder {
	bd.occupied[s] = false
	return bd
}

func (bd *Builder) SetSideToMove(c Color) *Builder {
	bd.sideToMove = c
	return bd
}

func (bd *Builder) SetCastleRights(c Color, rights CastleRights) *Builder {
	bd.castle[c] = rights.clone()
	return bd
}

func (bd *Builder) SetEnPassantFile(f File) *Builder {
	bd.epFile = int8(f)
	return bd
}

func (bd *Builder) ClearEnPassant() *Builder {
	bd.epFile = -1
	return bd
}

func (bd *Builder) SetHalfmoveClock(n int) *Builder {
	bd.halfmove = n
	return bd
}

func (bd *Builder) SetFullmoveNumber(n int) *Builder {
	bd.fullmove = n
	return bd
}

// clockFields is validated independently of the board-shaped invariants,
// which Board.Validate already enforces once the pieces are in place.
type clockFields struct {
	Halfmove int `validate:"gte=0"`
	Fullmove int `validate:"gte=1"`
}

var builderValidator = validator.New()

// Finalize builds the Board, computes its hash, and validates it. An error
// from the clock-field validator or from Board.Validate leaves the
// receiver untouched — the caller may fix the offending setter and call
// Finalize again.
func (bd *Builder) Finalize() (Board, error) {
	fields := clockFields{Halfmove: bd.halfmove, Fullmove: bd.fullmove}
	if err := builderValidator.Struct(fields); err != nil {
		return Board{}, &ParseError{Kind: "builder", Value: err.Error(), Reason: "halfmove/fullmove out of range"}
	}

	var b Board
	b.epFile = -1
	for s := 0; s < 64; s++ {
		if bd.occupied[s] {
			b.addPiece(bd.colors[s], bd.pieces[s], Square(s))
		}
	}
	b.sideToMove = bd.sideToMove
	b.castle[White] = bd.castle[White].clone()
	b.castle[Black] = bd.castle[Black].clone()
	b.epFile = bd.epFile
	b.halfmove = uint16(bd.halfmove)
	b.fullmove = uint16(bd.fullmove)
	b.hash = b.computeHash()

	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}
