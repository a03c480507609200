package chess_test

import (
	"testing"

	"bitchess/chess"
)

func countMoves(t *testing.T, b chess.Board) []chess.Move {
	t.Helper()
	return b.LegalMoves()
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king on e1 is checked by both a rook on e8 (file pin... no,
	// straight check down the e-file) and a knight on d3 simultaneously.
	b, err := chess.ParseFEN("4r2k/8/8/8/8/3n4/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := countMoves(t, b)
	for _, m := range moves {
		if b.PieceAt(m.From()) != chess.King {
			t.Errorf("expected only king moves while in double check, got %s moving a %v", m, b.PieceAt(m.From()))
		}
	}
}

func TestPinnedPieceMayOnlyMoveAlongPinLine(t *testing.T) {
	// White king e1, white rook e4 pinned by black rook e8 along the
	// e-file. The rook may shuffle up and down the file or capture the
	// pinning rook, nothing else.
	b, err := chess.ParseFEN("4r2k/8/8/8/4R3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := countMoves(t, b)
	for _, m := range moves {
		if b.PieceAt(m.From()) == chess.Rook && m.From().File() != 4 {
			t.Fatalf("unexpected rook origin %s", m.From())
		}
		if b.PieceAt(m.From()) == chess.Rook && m.To().File() != 4 {
			t.Errorf("pinned rook escaped the e-file with move %s", m)
		}
	}
}

func TestEnPassantDiscoveredCheckRejected(t *testing.T) {
	// White king a5, white pawn c5, black pawn just double-pushed to d5
	// next to the white pawn, with a black rook on h5: capturing en
	// passant (c5xd6) would remove both the c5 and d5 pawns, exposing the
	// king to the rook along the fifth rank.
	b, err := chess.ParseFEN("7k/2p5/8/K1Pp3r/8/8/8/8 w - d6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range countMoves(t, b) {
		if b.PieceAt(m.From()) == chess.Pawn && m.From().String() == "c5" && m.To().String() == "d6" {
			t.Errorf("en passant capture %s should be illegal: it exposes the king along the fifth rank", m)
		}
	}
}

func TestPromotionEmitsFourPieceChoices(t *testing.T) {
	b, err := chess.ParseFEN("8/P7/8/8/8/8/8/4K2k w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	promos := map[chess.Piece]bool{}
	for _, m := range countMoves(t, b) {
		if b.PieceAt(m.From()) == chess.Pawn && m.IsPromotion() {
			promos[m.Promotion()] = true
		}
	}
	for _, p := range []chess.Piece{chess.Knight, chess.Bishop, chess.Rook, chess.Queen} {
		if !promos[p] {
			t.Errorf("missing promotion choice %v", p)
		}
	}
	if len(promos) != 4 {
		t.Errorf("expected exactly 4 promotion choices, got %d", len(promos))
	}
}

func TestCastleBlockedByThirdPartyPieceIsIllegal(t *testing.T) {
	b, err := chess.ParseFEN("4k3/8/8/8/8/8/8/R1B1K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	nb, err := b.Play(chess.NewMove(mustSquare(t, "e1"), mustSquare(t, "a1"), chess.NoPiece))
	if err == nil {
		t.Errorf("expected castling queenside to be illegal when the b/c/d squares are not all clear, got %s", nb.ToFEN())
	}
}

func TestCastleThroughAttackedSquareIsIllegal(t *testing.T) {
	// Black rook on f7 attacks f1, which the white king would have to
	// cross to castle kingside.
	b, err := chess.ParseFEN("4k3/5r2/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	_, err = b.Play(chess.NewMove(mustSquare(t, "e1"), mustSquare(t, "h1"), chess.NoPiece))
	if err == nil {
		t.Errorf("expected kingside castle to be illegal: king would cross an attacked square")
	}
}

func mustSquare(t *testing.T, s string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}
