package model

var (
	rookDirs   = []Position{{Row: 0, Col: -1}, {Row: 0, Col: 1}, {Row: -1, Col: 0}, {Row: 1, Col: 0}}
	bishopDirs = []Position{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	queenDirs  = append(append([]Position{}, bishopDirs...), rookDirs...)
	knightDirs = []Position{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
		{Row: -1, Col: -2}, {Row: -1, Col: 2}, {Row: 1, Col: -2}, {Row: 1, Col: 2},
	}
	kingDirs = queenDirs
)

// rays maps a piece type to its movement pattern. Moves are grouped by
// direction so a blocker only truncates its own ray.
func (b *Board) rays(sq *Square) [][]Move {
	switch sq.Piece.Type {
	case Pawn:
		return b.pawnRays(sq)
	case Knight:
		return b.stepRays(sq, knightDirs)
	case Bishop:
		return b.slideRays(sq, bishopDirs)
	case Rook:
		return b.slideRays(sq, rookDirs)
	case Queen:
		return b.slideRays(sq, queenDirs)
	case King:
		return append(b.stepRays(sq, kingDirs), b.castlingRays(sq)...)
	}
	return nil
}

// candidatesFrom applies the occupancy rule to every ray of the piece on sq:
// off the grid or onto an ally ends the ray, onto an enemy captures and ends
// it, onto an empty square continues it.
func (b *Board) candidatesFrom(sq *Square) []Move {
	var moves []Move
	color := sq.Piece.Color
	for _, ray := range b.rays(sq) {
		for _, m := range ray {
			target := b.at(m.To)
			if !target.IsInsideGrid() || target.HasAlly(color) {
				break
			}
			if target.HasEnemy(color) {
				m.Captured = target.Piece
				moves = append(moves, m)
				break
			}
			moves = append(moves, m)
		}
	}
	return moves
}

// CandidateMoves lists every move of color before check filtering.
func (b *Board) CandidateMoves(color Color) []Move {
	var moves []Move
	for _, sq := range b.squaresOf(color) {
		moves = append(moves, b.candidatesFrom(sq)...)
	}
	return moves
}

func (b *Board) slideRays(sq *Square, dirs []Position) [][]Move {
	rays := make([][]Move, 0, len(dirs))
	for _, dir := range dirs {
		ray := make([]Move, 0, Rows-1)
		for i := 1; i < Rows; i++ {
			to := Position{Row: sq.Row + i*dir.Row, Col: sq.Col + i*dir.Col}
			ray = append(ray, Move{From: sq.Position(), To: to, Piece: sq.Piece})
		}
		rays = append(rays, ray)
	}
	return rays
}

func (b *Board) stepRays(sq *Square, dirs []Position) [][]Move {
	rays := make([][]Move, 0, len(dirs))
	for _, dir := range dirs {
		to := Position{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
		rays = append(rays, []Move{{From: sq.Position(), To: to, Piece: sq.Piece}})
	}
	return rays
}

// pawnRays only yields moves whose occupancy preconditions already hold, so
// the shared rule never turns a forward step into a capture.
func (b *Board) pawnRays(sq *Square) [][]Move {
	pawn := sq.Piece
	dir := pawn.Direction
	var rays [][]Move

	forward := []Move{}
	one := Position{Row: sq.Row + dir, Col: sq.Col}
	if one.inside() && b.at(one).IsEmpty() {
		forward = append(forward, b.pawnMove(sq, one))
		two := Position{Row: sq.Row + 2*dir, Col: sq.Col}
		if !pawn.HasMoved() && two.inside() && b.at(two).IsEmpty() {
			forward = append(forward, b.pawnMove(sq, two))
		}
	}
	rays = append(rays, forward)

	for _, dc := range []int{-1, 1} {
		diag := Position{Row: sq.Row + dir, Col: sq.Col + dc}
		if b.at(diag).HasEnemy(pawn.Color) {
			rays = append(rays, []Move{b.pawnMove(sq, diag)})
		}
	}

	if m, ok := b.enPassant(sq); ok {
		rays = append(rays, []Move{m})
	}
	return rays
}

// pawnMove builds a pawn move, attaching a fresh queen when it reaches the
// far edge.
func (b *Board) pawnMove(sq *Square, to Position) Move {
	pawn := sq.Piece
	m := Move{From: sq.Position(), To: to, Piece: pawn}
	if (pawn.Direction == Up && to.Row == 0) || (pawn.Direction == Down && to.Row == Rows-1) {
		m.Promotion = NewPiece(b.nextID(pawn.Color, Queen), Queen, pawn.Color, pawn.Direction)
	}
	return m
}

// enPassant is only available straight after an enemy pawn's double step
// that ended beside this pawn.
func (b *Board) enPassant(sq *Square) (Move, bool) {
	pawn := sq.Piece
	last, ok := b.lastMove()
	if !ok || last.Piece.Type != Pawn || last.Piece.Color == pawn.Color {
		return Move{}, false
	}
	if abs(last.From.Row-last.To.Row) != 2 || last.To.Row != sq.Row || abs(last.To.Col-sq.Col) != 1 {
		return Move{}, false
	}
	victim := b.at(last.To).Piece
	if victim == nil || victim.Type != Pawn || victim.Color == pawn.Color {
		return Move{}, false
	}
	return Move{
		From:      sq.Position(),
		To:        Position{Row: sq.Row + pawn.Direction, Col: last.To.Col},
		Piece:     pawn,
		Captured:  victim,
		EnPassant: true,
	}, true
}

// castlingRays offers a two square king move towards every unmoved rook of
// the same colour on the king's row with nothing standing between them.
// Whether the king passes through an attacked square is decided by the
// legality filter, not here.
func (b *Board) castlingRays(sq *Square) [][]Move {
	king := sq.Piece
	if king.HasMoved() {
		return nil
	}
	var rays [][]Move
	for col := 0; col < Cols; col++ {
		rookSquare := b.squares[sq.Row][col]
		rook := rookSquare.Piece
		if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved() {
			continue
		}
		if abs(col-sq.Col) < 3 || !b.rowClear(sq.Row, sq.Col, col) {
			continue
		}
		step := 1
		if col < sq.Col {
			step = -1
		}
		partner := rookSquare.Position()
		rays = append(rays, []Move{{
			From:         sq.Position(),
			To:           Position{Row: sq.Row, Col: sq.Col + 2*step},
			Piece:        king,
			CastlingRook: &partner,
		}})
	}
	return rays
}

// rowClear reports whether every square strictly between two columns of a
// row is empty.
func (b *Board) rowClear(row, fromCol, toCol int) bool {
	lo, hi := fromCol, toCol
	if lo > hi {
		lo, hi = hi, lo
	}
	for col := lo + 1; col < hi; col++ {
		if b.squares[row][col].HasPiece() {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
