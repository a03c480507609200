package chess_test

import (
	"testing"

	"bitchess/chess"
)

func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	if !testing.Short() {
		cases = append(cases, struct {
			depth int
			nodes uint64
		}{5, 4865609})
	}

	b := chess.NewStandard()
	for _, c := range cases {
		if got := chess.Perft(b, c.depth); got != c.nodes {
			t.Errorf("perft(start, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got, want := chess.Perft(b, 4), uint64(4085603); got != want {
		t.Errorf("perft(kiwipete, 4) = %d, want %d", got, want)
	}
}

func TestPerftPosition3(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	b, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got, want := chess.Perft(b, 5), uint64(674624); got != want {
		t.Errorf("perft(position3, 5) = %d, want %d", got, want)
	}
}

func TestPerftPosition4(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	const fen = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	b, err := chess.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got, want := chess.Perft(b, 4), uint64(422333); got != want {
		t.Errorf("perft(position4, 4) = %d, want %d", got, want)
	}
}

func TestPerftAfterOpeningMoves(t *testing.T) {
	b := chess.NewStandard()
	for _, uci := range []string{"e2e4", "e7e5", "g1f3"} {
		var err error
		b, err = b.PlayUCI(uci)
		if err != nil {
			t.Fatalf("PlayUCI(%s): %v", uci, err)
		}
	}
	if got, want := chess.Perft(b, 1), uint64(29); got != want {
		t.Errorf("perft(after e2e4 e7e5 g1f3, 1) = %d, want %d", got, want)
	}
}

func TestPerftChess960StartingPositions(t *testing.T) {
	// A handful of legal Chess960 backrank permutations (bishops on
	// opposite colors, king between the rooks), written as Shredder-FEN
	// with explicit rook files. Each of the 16 pawns has two pushes; a
	// knight has two moves, or only one from a corner square, so perft(1)
	// is 20 minus the number of knights starting in a corner.
	cases := []struct {
		fen   string
		nodes uint64
	}{
		{"nrkbqrbn/pppppppp/8/8/8/8/PPPPPPPP/NRKBQRBN w FBfb - 0 1", 18},
		{"bnrbkrqn/pppppppp/8/8/8/8/PPPPPPPP/BNRBKRQN w CFcf - 0 1", 19},
		{"rkrnbbnq/pppppppp/8/8/8/8/PPPPPPPP/RKRNBBNQ w ACac - 0 1", 20},
	}
	for _, c := range cases {
		b, err := chess.ParseFEN(c.fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", c.fen, err)
		}
		if got := chess.Perft(b, 1); got != c.nodes {
			t.Errorf("perft(%q, 1) = %d, want %d", c.fen, got, c.nodes)
		}
	}
}
