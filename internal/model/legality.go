package model

type Status string

const (
	NotInCheck Status = "none"
	InCheck    Status = "check"
	Checkmate  Status = "checkmate"
	Stalemate  Status = "stalemate"
)

// LegalMoves filters the candidate moves of color down to those that do not
// leave its own king attacked. When color is in check these are exactly the
// moves that resolve the check. Every candidate is simulated on the grid and
// reverted, which makes this the expensive call of the engine.
func (b *Board) LegalMoves(color Color) []Move {
	inCheck := b.IsInCheck(color)
	legalMoves := []Move{}
	for _, m := range b.CandidateMoves(color) {
		if m.IsCastling() && (inCheck || !b.castlingPathSafe(m)) {
			continue
		}
		if b.keepsKingSafe(m) {
			legalMoves = append(legalMoves, m)
		}
	}
	return legalMoves
}

func (b *Board) keepsKingSafe(m Move) bool {
	u := b.make(m)
	safe := !b.IsInCheck(m.Piece.Color)
	b.unmake(u)
	return safe
}

// castlingPathSafe checks the square the king crosses. The landing square
// is covered by the ordinary king safety check.
func (b *Board) castlingPathSafe(m Move) bool {
	step := 1
	if m.To.Col < m.From.Col {
		step = -1
	}
	transit := Position{Row: m.From.Row, Col: m.From.Col + step}
	return b.keepsKingSafe(Move{From: m.From, To: transit, Piece: m.Piece})
}

// IsInCheck reports whether any enemy candidate move lands on color's king.
func (b *Board) IsInCheck(color Color) bool {
	king := b.kingSquare(color)
	if king == nil {
		return false
	}
	for _, m := range b.CandidateMoves(color.Opponent()) {
		if m.To == king.Position() {
			return true
		}
	}
	return false
}

// Checks returns the enemy moves currently attacking color's king.
func (b *Board) Checks(color Color) []Move {
	checks := []Move{}
	king := b.kingSquare(color)
	if king == nil {
		return checks
	}
	for _, m := range b.CandidateMoves(color.Opponent()) {
		if m.To == king.Position() {
			checks = append(checks, m)
		}
	}
	return checks
}

// SquaresBetween lists the labels a move travels over, both ends included.
// Knights jump, so only their ends are listed.
func (b *Board) SquaresBetween(m Move) []string {
	labels := []string{b.Label(m.From), b.Label(m.To)}
	if m.Piece == nil || m.Piece.Type == Knight {
		return labels
	}
	dr, dc := m.To.Row-m.From.Row, m.To.Col-m.From.Col
	steps := max(abs(dr), abs(dc))
	if steps == 0 {
		return labels
	}
	dr, dc = dr/steps, dc/steps
	for i := 1; i < steps; i++ {
		labels = append(labels, b.Label(Position{Row: m.From.Row + i*dr, Col: m.From.Col + i*dc}))
	}
	return labels
}

func (b *Board) HasLegalMoves(color Color) bool {
	return len(b.legal[color]) > 0
}

func (b *Board) Status(color Color) Status {
	inCheck := b.IsInCheck(color)
	hasMoves := b.HasLegalMoves(color)
	switch {
	case inCheck && !hasMoves:
		return Checkmate
	case inCheck:
		return InCheck
	case !hasMoves:
		return Stalemate
	}
	return NotInCheck
}

// IsGameOver is true once the side to move has no legal move left.
func (b *Board) IsGameOver() bool {
	return !b.HasLegalMoves(b.Turn)
}

// Mated returns the checkmated side, if there is one.
func (b *Board) Mated() (Color, bool) {
	for _, color := range []Color{White, Black} {
		if b.Status(color) == Checkmate {
			return color, true
		}
	}
	return "", false
}
