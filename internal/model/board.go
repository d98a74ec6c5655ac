package model

import (
	"fmt"
	"strings"
)

type pieceKey struct {
	color     Color
	pieceType PieceType
}

// Board is the authoritative game state. It is the only owner of piece
// placement: squares hold pieces, pieces never know where they stand.
type Board struct {
	squares     [Rows][Cols]*Square
	orientation Color
	Turn        Color
	History     []Move
	Captured    []*Piece

	legal  map[Color][]Move
	fen    string
	issued map[pieceKey]int

	// starting position, needed to replay History
	start         string
	startTurn     Color
	halfmoveBase  int
	fullmoveBase  int
	setupLastMove *Move
}

// NewBoard sets up the standard starting position. playingColor is the side
// drawn at the bottom of the grid: its labels read a1..h8 from its own
// point of view and its pawns move up.
func NewBoard(playingColor Color) *Board {
	b, err := FromFEN(StartFEN, playingColor)
	if err != nil {
		panic(fmt.Sprintf("start position: %v", err))
	}
	return b
}

func newEmptyBoard(orientation Color) *Board {
	b := &Board{
		orientation: orientation,
		Turn:        White,
		issued:      make(map[pieceKey]int),
		legal:       make(map[Color][]Move),
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			b.squares[row][col] = &Square{
				Row:   row,
				Col:   col,
				Label: labelAt(orientation, row, col),
			}
		}
	}
	return b
}

func labelAt(orientation Color, row, col int) string {
	if orientation == White {
		return fmt.Sprintf("%c%d", 'a'+col, Rows-row)
	}
	return fmt.Sprintf("%c%d", 'h'-col, row+1)
}

// positionFor maps a file (0 = a) and rank (1..8) to grid coordinates.
func (b *Board) positionFor(file, rank int) Position {
	if b.orientation == White {
		return Position{Row: Rows - rank, Col: file}
	}
	return Position{Row: rank - 1, Col: Cols - 1 - file}
}

func (b *Board) Orientation() Color {
	return b.orientation
}

// Square returns the cell at (row, col), or an unlabelled empty sentinel when
// the coordinates fall outside the grid.
func (b *Board) Square(row, col int) *Square {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return &Square{Row: row, Col: col}
	}
	return b.squares[row][col]
}

func (b *Board) at(p Position) *Square {
	return b.Square(p.Row, p.Col)
}

func (b *Board) SquareByLabel(label string) (*Square, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) != 2 || label[0] < 'a' || label[0] > 'h' || label[1] < '1' || label[1] > '8' {
		return nil, fmt.Errorf("%q: %w", label, ErrLabelNotFound)
	}
	return b.at(b.positionFor(int(label[0]-'a'), int(label[1]-'0'))), nil
}

func (b *Board) Label(p Position) string {
	return b.at(p).Label
}

// Pieces returns the grid as rows of occupants, nil for empty squares.
func (b *Board) Pieces() [][]*Piece {
	grid := make([][]*Piece, Rows)
	for row := range grid {
		grid[row] = make([]*Piece, Cols)
		for col := range grid[row] {
			grid[row][col] = b.squares[row][col].Piece
		}
	}
	return grid
}

func (b *Board) squaresOf(color Color) []*Square {
	var squares []*Square
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.squares[row][col].HasAlly(color) {
				squares = append(squares, b.squares[row][col])
			}
		}
	}
	return squares
}

func (b *Board) squaresWith(pieceType PieceType, color Color) []*Square {
	var squares []*Square
	for _, sq := range b.squaresOf(color) {
		if sq.Piece.Type == pieceType {
			squares = append(squares, sq)
		}
	}
	return squares
}

func (b *Board) kingSquare(color Color) *Square {
	kings := b.squaresWith(King, color)
	if len(kings) == 0 {
		return nil
	}
	return kings[0]
}

// nextID is the id the next created piece of this colour and type receives.
func (b *Board) nextID(color Color, pieceType PieceType) int {
	return b.issued[pieceKey{color, pieceType}] + 1
}

func (b *Board) lastMove() (Move, bool) {
	if len(b.History) > 0 {
		return b.History[len(b.History)-1], true
	}
	if b.setupLastMove != nil {
		return *b.setupLastMove, true
	}
	return Move{}, false
}

// LastMove is the most recently applied move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.History) == 0 {
		return Move{}, false
	}
	return b.History[len(b.History)-1], true
}

// undoRecord is everything make needs to hand back to unmake.
type undoRecord struct {
	move       Move
	mover      *Piece
	captured   *Piece
	capturedAt Position
	rook       *Piece
}

// make updates occupancy for the move and nothing else: no history, no turn,
// no caches. unmake(make(m)) restores the grid exactly.
func (b *Board) make(m Move) undoRecord {
	from, to := b.at(m.From), b.at(m.To)
	u := undoRecord{move: m, mover: from.Piece}

	switch {
	case m.EnPassant:
		u.capturedAt = Position{Row: m.From.Row, Col: m.To.Col}
		victim := b.at(u.capturedAt)
		u.captured = victim.Piece
		victim.Piece = nil
	case m.IsCastling():
		rookSquare := b.at(*m.CastlingRook)
		u.rook = rookSquare.Piece
		rookSquare.Piece = nil
		b.at(m.rookDestination()).Piece = u.rook
	default:
		u.captured = to.Piece
		u.capturedAt = m.To
	}

	from.Piece = nil
	if m.Promotion != nil {
		to.Piece = m.Promotion
	} else {
		to.Piece = u.mover
	}
	return u
}

func (b *Board) unmake(u undoRecord) {
	m := u.move
	b.at(m.To).Piece = nil
	b.at(m.From).Piece = u.mover
	if m.IsCastling() {
		b.at(m.rookDestination()).Piece = nil
		b.at(*m.CastlingRook).Piece = u.rook
	}
	if u.captured != nil {
		b.at(u.capturedAt).Piece = u.captured
	}
}

// Apply plays m if it matches one of the cached legal moves for the side to
// move. The cached version is the one applied, so callers only need to get
// the source, destination and piece right. It reports whether the move was
// accepted; a rejected move leaves the board untouched.
func (b *Board) Apply(m Move) bool {
	legal, ok := b.Resolve(m)
	if !ok {
		return false
	}
	b.commit(legal)
	return true
}

// Resolve finds the cached legal move of the side to move equal to m.
func (b *Board) Resolve(m Move) (Move, bool) {
	for _, legal := range b.legal[b.Turn] {
		if legal.Equal(m) {
			return legal, true
		}
	}
	return Move{}, false
}

// AttemptMove plays the first legal move of piece that lands on (row, col).
func (b *Board) AttemptMove(row, col int, piece *Piece) bool {
	dest := Position{Row: row, Col: col}
	for _, legal := range b.legal[b.Turn] {
		if legal.To == dest && legal.Piece.Is(piece) {
			b.commit(legal)
			return true
		}
	}
	return false
}

func (b *Board) commit(m Move) {
	u := b.make(m)
	if u.captured != nil {
		b.Captured = append(b.Captured, u.captured)
	}
	u.mover.Moves = append(u.mover.Moves, m)
	if u.rook != nil {
		u.rook.Moves = append(u.rook.Moves, m)
	}
	if m.Promotion != nil {
		b.issued[pieceKey{m.Promotion.Color, m.Promotion.Type}] = m.Promotion.ID
	}
	b.History = append(b.History, m)
	b.Turn = b.Turn.Opponent()
	b.refresh()
}

// refresh recomputes every derived field after the grid changed.
func (b *Board) refresh() {
	b.legal = map[Color][]Move{
		White: b.LegalMoves(White),
		Black: b.LegalMoves(Black),
	}
	b.fen = b.buildFEN()
}

// CachedMoves returns the legal moves computed after the last applied move.
func (b *Board) CachedMoves(color Color) []Move {
	return b.legal[color]
}

func (b *Board) LegalMovesFor(piece *Piece) []Move {
	var moves []Move
	if piece == nil {
		return moves
	}
	for _, m := range b.legal[piece.Color] {
		if m.Piece.Is(piece) {
			moves = append(moves, m)
		}
	}
	return moves
}

// Clone deep copies the grid and its pieces. History entries are shared
// records and keep pointing at the original pieces.
func (b *Board) Clone() *Board {
	c := &Board{
		orientation:   b.orientation,
		Turn:          b.Turn,
		History:       append([]Move(nil), b.History...),
		fen:           b.fen,
		issued:        make(map[pieceKey]int, len(b.issued)),
		start:         b.start,
		startTurn:     b.startTurn,
		halfmoveBase:  b.halfmoveBase,
		fullmoveBase:  b.fullmoveBase,
		setupLastMove: b.setupLastMove,
	}
	for k, v := range b.issued {
		c.issued[k] = v
	}

	copies := make(map[*Piece]*Piece)
	remap := func(p *Piece) *Piece {
		if p == nil {
			return nil
		}
		if q, ok := copies[p]; ok {
			return q
		}
		q := p.clone()
		copies[p] = q
		return q
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			sq := *b.squares[row][col]
			sq.Piece = remap(sq.Piece)
			c.squares[row][col] = &sq
		}
	}
	for _, p := range b.Captured {
		c.Captured = append(c.Captured, remap(p))
	}

	c.legal = make(map[Color][]Move, len(b.legal))
	for color, moves := range b.legal {
		remapped := make([]Move, len(moves))
		for i, m := range moves {
			m.Piece = remap(m.Piece)
			m.Captured = remap(m.Captured)
			if m.Promotion != nil {
				m.Promotion = m.Promotion.clone()
			}
			remapped[i] = m
		}
		c.legal[color] = remapped
	}
	return c
}

// Replay rebuilds the position from the starting setup and History.
func (b *Board) Replay() (*Board, error) {
	r, err := FromFEN(b.start, b.orientation)
	if err != nil {
		return nil, err
	}
	for i, m := range b.History {
		if !r.Apply(m) {
			return nil, fmt.Errorf("replay ply %d %s-%s: %w", i+1, b.Label(m.From), b.Label(m.To), ErrInvalidMove)
		}
	}
	return r, nil
}

// Key is a canonical description of the position: one symbol per square in
// grid order ('.' when empty) followed by the side to move. It depends only
// on occupancy, never on object identity.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows*Cols + 1)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			p := b.squares[row][col].Piece
			if p == nil {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(p.Type.fenSymbol(p.Color))
		}
	}
	if b.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	return sb.String()
}

// Material sums piece values, white positive and black negative.
func (b *Board) Material() int {
	score := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			p := b.squares[row][col].Piece
			if p == nil {
				continue
			}
			if p.Color == White {
				score += p.Value
			} else {
				score -= p.Value
			}
		}
	}
	return score
}

// String draws the grid as rows of FEN symbols, top row first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			p := b.squares[row][col].Piece
			if p == nil {
				sb.WriteByte('.')
			} else {
				sb.WriteString(p.Type.fenSymbol(p.Color))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
