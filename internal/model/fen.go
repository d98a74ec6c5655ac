package model

import (
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castling rights in FEN order: right letter, king home, rook home
var castlingHomes = []struct {
	right string
	color Color
	king  string
	rook  string
}{
	{"K", White, "e1", "h1"},
	{"Q", White, "e1", "a1"},
	{"k", Black, "e8", "h8"},
	{"q", Black, "e8", "a8"},
}

// FromFEN builds a board from a FEN record, oriented for playingColor.
// Piece ids are handed out in grid order per colour and type, so the same
// record and orientation always yield the same ids.
func FromFEN(fen string, playingColor Color) (*Board, error) {
	if !playingColor.Valid() {
		return nil, fmt.Errorf("playing color %q: %w", playingColor, ErrInvalidFEN)
	}
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%q needs at least 4 fields: %w", fen, ErrInvalidFEN)
	}

	b := newEmptyBoard(playingColor)
	if err := b.placeFromFEN(fields[0]); err != nil {
		return nil, err
	}

	turn, ok := ParseColor(fields[1])
	if !ok {
		return nil, fmt.Errorf("side to move %q: %w", fields[1], ErrInvalidFEN)
	}
	b.Turn = turn
	b.startTurn = turn

	b.halfmoveBase, b.fullmoveBase = 0, 1
	if len(fields) >= 6 {
		half, err1 := strconv.Atoi(fields[4])
		full, err2 := strconv.Atoi(fields[5])
		if err1 != nil || err2 != nil || half < 0 || full < 1 {
			return nil, fmt.Errorf("move counters %q %q: %w", fields[4], fields[5], ErrInvalidFEN)
		}
		b.halfmoveBase, b.fullmoveBase = half, full
	}

	b.markMovedPieces(fields[2])
	if err := b.setupEnPassant(fields[3]); err != nil {
		return nil, err
	}

	b.assignIDs()
	for _, color := range []Color{White, Black} {
		if len(b.squaresWith(King, color)) != 1 {
			return nil, fmt.Errorf("%s: %w", color, ErrMissingKing)
		}
	}

	b.start = fen
	b.refresh()
	return b, nil
}

func (b *Board) placeFromFEN(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Rows {
		return fmt.Errorf("placement %q: %w", placement, ErrInvalidFEN)
	}
	for i, rankText := range ranks {
		rank := Rows - i
		file := 0
		for _, r := range rankText {
			if r >= '1' && r <= '8' {
				file += int(r - '0')
				continue
			}
			pieceType, color, ok := pieceTypeFromSymbol(r)
			if !ok || file >= Cols {
				return fmt.Errorf("placement %q: %w", placement, ErrInvalidFEN)
			}
			if pieceType == Pawn && (rank == 1 || rank == Rows) {
				return fmt.Errorf("pawn on rank %d: %w", rank, ErrInvalidFEN)
			}
			b.at(b.positionFor(file, rank)).Piece = NewPiece(0, pieceType, color, b.directionOf(color))
			file++
		}
		if file != Cols {
			return fmt.Errorf("rank %d of %q: %w", rank, placement, ErrInvalidFEN)
		}
	}
	return nil
}

func (b *Board) directionOf(color Color) int {
	if color == b.orientation {
		return Up
	}
	return Down
}

// markMovedPieces flags kings and rooks that lost their castling rights and
// pawns off their starting rank as having moved.
func (b *Board) markMovedPieces(rights string) {
	for _, color := range []Color{White, Black} {
		for _, sq := range b.squaresOf(color) {
			switch sq.Piece.Type {
			case King, Rook:
				sq.Piece.moved = true
			case Pawn:
				startRank := "2"
				if color == Black {
					startRank = "7"
				}
				sq.Piece.moved = !strings.HasSuffix(sq.Label, startRank)
			}
		}
	}
	for _, home := range castlingHomes {
		if !strings.Contains(rights, home.right) {
			continue
		}
		king, _ := b.SquareByLabel(home.king)
		rook, _ := b.SquareByLabel(home.rook)
		if king.HasAlly(home.color) && king.Piece.Type == King && rook.HasAlly(home.color) && rook.Piece.Type == Rook {
			king.Piece.moved = false
			rook.Piece.moved = false
		}
	}
}

// setupEnPassant turns a FEN en-passant target into the double step that
// produced it, so the capture is offered on the first move.
func (b *Board) setupEnPassant(target string) error {
	if target == "-" {
		return nil
	}
	sq, err := b.SquareByLabel(target)
	if err != nil || (sq.Label[1] != '3' && sq.Label[1] != '6') {
		return fmt.Errorf("en passant target %q: %w", target, ErrInvalidFEN)
	}
	file := int(sq.Label[0] - 'a')
	landed, origin, color := 4, 2, White
	if sq.Label[1] == '6' {
		landed, origin, color = 5, 7, Black
	}
	pawnSquare := b.at(b.positionFor(file, landed))
	if !sq.IsEmpty() || !pawnSquare.HasAlly(color) || pawnSquare.Piece.Type != Pawn {
		return fmt.Errorf("en passant target %q: %w", target, ErrInvalidFEN)
	}
	b.setupLastMove = &Move{
		From:  b.positionFor(file, origin),
		To:    pawnSquare.Position(),
		Piece: pawnSquare.Piece,
	}
	return nil
}

func (b *Board) assignIDs() {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			p := b.squares[row][col].Piece
			if p == nil {
				continue
			}
			key := pieceKey{p.Color, p.Type}
			b.issued[key]++
			p.ID = b.issued[key]
		}
	}
}

// FEN returns the position in Forsyth-Edwards notation. It is rebuilt after
// every applied move and never edited elsewhere.
func (b *Board) FEN() string {
	return b.fen
}

func (b *Board) buildFEN() string {
	var sb strings.Builder
	for rank := Rows; rank >= 1; rank-- {
		empty := 0
		for file := 0; file < Cols; file++ {
			p := b.at(b.positionFor(file, rank)).Piece
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.Type.fenSymbol(p.Color))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.Turn.fenLetter())
	sb.WriteByte(' ')
	sb.WriteString(b.castlingRights())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassantTarget())
	fmt.Fprintf(&sb, " %d %d", b.halfmoveClock(), b.fullmoveNumber())
	return sb.String()
}

func (c Color) fenLetter() string {
	if c == Black {
		return "b"
	}
	return "w"
}

func (b *Board) castlingRights() string {
	rights := ""
	for _, home := range castlingHomes {
		king, _ := b.SquareByLabel(home.king)
		rook, _ := b.SquareByLabel(home.rook)
		if king.HasAlly(home.color) && king.Piece.Type == King && !king.Piece.HasMoved() &&
			rook.HasAlly(home.color) && rook.Piece.Type == Rook && !rook.Piece.HasMoved() {
			rights += home.right
		}
	}
	if rights == "" {
		return "-"
	}
	return rights
}

func (b *Board) enPassantTarget() string {
	last, ok := b.lastMove()
	if !ok || last.Piece.Type != Pawn || abs(last.From.Row-last.To.Row) != 2 {
		return "-"
	}
	return b.Label(Position{Row: (last.From.Row + last.To.Row) / 2, Col: last.To.Col})
}

// halfmoveClock counts plies since the last capture or pawn move.
func (b *Board) halfmoveClock() int {
	for i := len(b.History) - 1; i >= 0; i-- {
		m := b.History[i]
		if m.Piece.Type == Pawn || m.Captured != nil {
			return len(b.History) - 1 - i
		}
	}
	return b.halfmoveBase + len(b.History)
}

func (b *Board) fullmoveNumber() int {
	plies := len(b.History)
	if b.startTurn == Black {
		plies++
	}
	return b.fullmoveBase + plies/2
}

// MoveFromLabels translates a pair of square labels, as returned by a move
// suggestion source, into the matching legal move of the side to move.
func (b *Board) MoveFromLabels(from, to string) (Move, error) {
	fromSquare, err := b.SquareByLabel(from)
	if err != nil {
		return Move{}, err
	}
	toSquare, err := b.SquareByLabel(to)
	if err != nil {
		return Move{}, err
	}
	if fromSquare.IsEmpty() {
		return Move{}, fmt.Errorf("%s: %w", from, ErrNoPiece)
	}
	for _, m := range b.legal[b.Turn] {
		if m.From == fromSquare.Position() && m.To == toSquare.Position() {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%s%s: %w", from, to, ErrInvalidMove)
}

// MoveFromUCI accepts coordinate notation such as "e2e4" or "e7e8q".
// Promotions always produce a queen.
func (b *Board) MoveFromUCI(uci string) (Move, error) {
	uci = strings.TrimSpace(uci)
	if len(uci) != 4 && len(uci) != 5 {
		return Move{}, fmt.Errorf("%q: %w", uci, ErrInvalidMove)
	}
	return b.MoveFromLabels(uci[:2], uci[2:4])
}

// UCI renders a move as a pair of labels.
func (b *Board) UCI(m Move) string {
	s := b.Label(m.From) + b.Label(m.To)
	if m.Promotion != nil {
		s += "q"
	}
	return s
}
