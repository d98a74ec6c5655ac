package model

// Move describes one transition. It references the pieces involved but owns
// none of them.
type Move struct {
	From         Position  `json:"from"`
	To           Position  `json:"to"`
	Piece        *Piece    `json:"piece"`
	Captured     *Piece    `json:"capturedPiece"`
	Promotion    *Piece    `json:"promotion"`
	CastlingRook *Position `json:"castlingRook"`
	EnPassant    bool      `json:"enPassant"`
}

func (m Move) IsCastling() bool {
	return m.CastlingRook != nil
}

// Equal compares source, destination and mover identity. Capture and
// promotion payloads are ignored so a bare (from, to, piece) request matches
// the fully described move the engine generated.
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Piece.Is(other.Piece)
}

// rookDestination is the square the castling rook lands on: next to the
// king's new square, on the side it came from.
func (m Move) rookDestination() Position {
	step := 1
	if m.To.Col < m.From.Col {
		step = -1
	}
	return Position{Row: m.To.Row, Col: m.To.Col - step}
}

// SimpleMove is the label form of a move used on the wire.
type SimpleMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type CastleRookMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Ply is the client facing record of a move that was played.
type Ply struct {
	Piece          *Piece          `json:"piece"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion"`
	Notation       string          `json:"notation"`
}
