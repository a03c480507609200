package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceFromLetter = map[byte]Piece{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

var letterFromPiece = [...]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}

// ParseFEN parses a FEN string in either standard (KQkq) or Shredder-FEN
// (rook file letters) castling-field dialect, telling the two apart by the
// character set of the castling field itself: K, Q, k, q and '-' parse as
// standard chess; any other letter is read as a file and the position is
// treated as Chess960 (or Double Chess960 — nothing about the dialect
// detection changes between them, since the castling field shape is
// identical). The halfmove and fullmove clock fields may be omitted, as
// they commonly are in perft test corpora; when present they must be
// valid non-negative integers.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Board{}, &ParseError{Kind: "fen", Value: fen, Reason: "expected at least 4 space-separated fields"}
	}

	var b Board
	b.epFile = -1

	if err := parsePlacement(&b, fields[0]); err != nil {
		return Board{}, err
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return Board{}, &ParseError{Kind: "fen", Value: fen, Reason: "side to move must be 'w' or 'b'"}
	}

	white, black, err := parseCastlingField(fields[2], b.King(White).File(), b.King(Black).File())
	if err != nil {
		return Board{}, err
	}
	b.castle[White] = white
	b.castle[Black] = black

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Board{}, &ParseError{Kind: "fen", Value: fen, Reason: "bad en passant square"}
		}
		wantRank := Rank(5)
		if b.sideToMove == Black {
			wantRank = Rank(2)
		}
		if sq.Rank() != wantRank {
			return Board{}, &ParseError{Kind: "fen", Value: fen, Reason: "en passant square on the wrong rank for the side to move"}
		}
		b.epFile = int8(sq.File())
	}

	b.halfmove = 0
	b.fullmove = 1
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return Board{}, &ParseError{Kind: "fen", Value: fen, Reason: "halfmove clock must be a non-negative integer"}
		}
		b.halfmove = uint16(n)
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Board{}, &ParseError{Kind: "fen", Value: fen, Reason: "fullmove number must be a positive integer"}
		}
		b.fullmove = uint16(n)
	}

	b.hash = b.computeHash()
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func parsePlacement(b *Board, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return &ParseError{Kind: "fen", Value: field, Reason: "expected 8 ranks separated by '/'"}
	}
	for i, rankStr := range ranks {
		r := Rank(7 - i)
		f := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			if f >= 8 {
				return &ParseError{Kind: "fen", Value: field, Reason: "rank has more than 8 files"}
			}
			p, ok := pieceFromLetter[lower(ch)]
			if !ok {
				return &ParseError{Kind: "fen", Value: field, Reason: fmt.Sprintf("unknown piece letter %q", string(ch))}
			}
			c := White
			if ch >= 'a' && ch <= 'z' {
				c = Black
			}
			b.addPiece(c, p, MakeSquare(File(f), r))
			f++
		}
		if f != 8 {
			return &ParseError{Kind: "fen", Value: field, Reason: "rank does not cover all 8 files"}
		}
	}
	return nil
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}

func parseCastlingField(field string, whiteKingFile, blackKingFile File) (white, black CastleRights, err error) {
	if field == "-" {
		return white, black, nil
	}
	for i := 0; i < len(field); i++ {
		ch := field[i]
		switch {
		case ch == 'K':
			white.Short = fileptr(7)
		case ch == 'Q':
			white.Long = fileptr(0)
		case ch == 'k':
			black.Short = fileptr(7)
		case ch == 'q':
			black.Long = fileptr(0)
		case ch >= 'A' && ch <= 'H':
			f := File(ch - 'A')
			if f > whiteKingFile {
				white.Short = fileptr(f)
			} else {
				white.Long = fileptr(f)
			}
		case ch >= 'a' && ch <= 'h':
			f := File(ch - 'a')
			if f > blackKingFile {
				black.Short = fileptr(f)
			} else {
				black.Long = fileptr(f)
			}
		default:
			return white, black, &ParseError{Kind: "fen", Value: field, Reason: fmt.Sprintf("unknown castling character %q", string(ch))}
		}
	}
	return white, black, nil
}

// ToFEN serializes the board back to standard FEN, using K/Q/k/q whenever
// the castling rights line up with the conventional a-file/h-file rooks,
// and falling back to Shredder-FEN rook-file letters otherwise (which a
// Chess960 or Double Chess960 position generally requires).
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := MakeSquare(File(f), Rank(r))
			p := b.pieces[sq]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := letterFromPiece[p]
			if c, _ := b.ColorAt(sq); c == White {
				letter = upper(letter)
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castlingFieldString())

	sb.WriteByte(' ')
	if epSq, ok := b.enPassantSquare(); ok {
		sb.WriteString(epSq.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteString(fmt.Sprintf(" %d %d", b.halfmove, b.fullmove))
	return sb.String()
}

func (b *Board) castlingFieldString() string {
	isStandard := func(c Color) bool {
		cr := b.castle[c]
		std := true
		if cr.hasShort() && *cr.Short != 7 {
			std = false
		}
		if cr.hasLong() && *cr.Long != 0 {
			std = false
		}
		return std
	}
	standard := isStandard(White) && isStandard(Black)

	var sb strings.Builder
	if standard {
		if b.castle[White].hasShort() {
			sb.WriteByte('K')
		}
		if b.castle[White].hasLong() {
			sb.WriteByte('Q')
		}
		if b.castle[Black].hasShort() {
			sb.WriteByte('k')
		}
		if b.castle[Black].hasLong() {
			sb.WriteByte('q')
		}
	} else {
		for _, f := range sortedFiles(b.castle[White]) {
			sb.WriteByte(upper(byte('a' + f)))
		}
		for _, f := range sortedFiles(b.castle[Black]) {
			sb.WriteByte(byte('a' + f))
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func sortedFiles(cr CastleRights) []File {
	var fs []File
	if cr.hasShort() {
		fs = append(fs, *cr.Short)
	}
	if cr.hasLong() {
		fs = append(fs, *cr.Long)
	}
	if len(fs) == 2 && fs[0] > fs[1] {
		fs[0], fs[1] = fs[1], fs[0]
	}
	return fs
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - ('a' - 'A')
	}
	return ch
}
