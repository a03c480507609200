// Command boardsvg renders a position to an SVG board diagram, mainly
// useful for visually inspecting a perft-divide mismatch or a Chess960
// start position without reconstructing the board in your head from FEN.
package main

import (
	"flag"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"bitchess/chess"
)

const squareSize = 64

func main() {
	fen := flag.String("fen", chess.StartFEN, "FEN string to render")
	out := flag.String("out", "", "Output SVG path (defaults to stdout)")
	flag.Parse()

	board, err := chess.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating %s: %v\n", *out, err)
			os.Exit(2)
		}
		defer f.Close()
		w = f
	}

	size := squareSize * 8
	canvas := svg.New(w)
	canvas.Start(size, size)
	drawBoard(canvas, &board)
	canvas.End()
}

func drawBoard(canvas *svg.SVG, b *chess.Board) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			// SVG rows run top to bottom; rank 7 (the 8th rank) is drawn
			// first, matching FEN's own top-down rank order.
			boardRank := 7 - rank
			x, y := file*squareSize, rank*squareSize
			color := "#eeeed2"
			if (file+boardRank)%2 == 0 {
				color = "#769656"
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+color)

			sq := chess.MakeSquare(chess.File(file), chess.Rank(boardRank))
			p := b.PieceAt(sq)
			if p == chess.NoPiece {
				continue
			}
			letter := pieceGlyph(p)
			c, _ := b.ColorAt(sq)
			fill := "#000000"
			if c == chess.White {
				fill = "#ffffff"
			}
			canvas.Text(x+squareSize/2, y+squareSize/2+10, letter,
				"text-anchor:middle;font-size:32px;fill:"+fill+";stroke:#000000;stroke-width:0.5")
		}
	}
}

func pieceGlyph(p chess.Piece) string {
	switch p {
	case chess.Pawn:
		return "P"
	case chess.Knight:
		return "N"
	case chess.Bishop:
		return "B"
	case chess.Rook:
		return "R"
	case chess.Queen:
		return "Q"
	case chess.King:
		return "K"
	default:
		return "?"
	}
}
