package model

import "fmt"

const (
	Rows = 8
	Cols = 8
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func (p Position) inside() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

// Square is a single board cell. Squares outside the grid are handed out as
// unlabelled empty sentinels so move generation can probe past the edge.
type Square struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Piece *Piece `json:"piece"`
	Label string `json:"label"`
}

func (s *Square) Position() Position {
	return Position{Row: s.Row, Col: s.Col}
}

func (s *Square) HasPiece() bool {
	return s.Piece != nil
}

func (s *Square) IsEmpty() bool {
	return s.Piece == nil
}

func (s *Square) HasAlly(color Color) bool {
	return s.Piece != nil && s.Piece.Color == color
}

func (s *Square) HasEnemy(color Color) bool {
	return s.Piece != nil && s.Piece.Color != color
}

func (s *Square) IsInsideGrid() bool {
	return s.Position().inside()
}
