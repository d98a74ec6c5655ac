package model

import (
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Forward directions in row units. Row 0 is the top edge of the grid.
const (
	Up   = -1
	Down = 1
)

var pieceValues = map[PieceType]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   1000,
}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// fenSymbol is upper case for white and lower case for black.
func (p PieceType) fenSymbol(color Color) string {
	s := "P"
	if p != Pawn {
		s = p.getPieceNotation()
	}
	if color == Black {
		return strings.ToLower(s)
	}
	return s
}

func pieceTypeFromSymbol(r rune) (PieceType, Color, bool) {
	color := White
	if r >= 'a' && r <= 'z' {
		color = Black
		r -= 'a' - 'A'
	}
	switch r {
	case 'K':
		return King, color, true
	case 'Q':
		return Queen, color, true
	case 'R':
		return Rook, color, true
	case 'B':
		return Bishop, color, true
	case 'N':
		return Knight, color, true
	case 'P':
		return Pawn, color, true
	}
	return "", "", false
}

// Piece is plain data. Where a piece stands is owned by the Board; the piece
// only remembers the moves it has made.
type Piece struct {
	ID        int       `json:"id"`
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	Direction int       `json:"direction"`
	Value     int       `json:"value"`
	Moves     []Move    `json:"-"`

	// set for pieces loaded from a position that implies they already moved
	moved bool
}

func NewPiece(id int, pieceType PieceType, color Color, direction int) *Piece {
	return &Piece{
		ID:        id,
		Type:      pieceType,
		Color:     color,
		Direction: direction,
		Value:     pieceValues[pieceType],
	}
}

func (p *Piece) HasMoved() bool {
	return p.moved || len(p.Moves) > 0
}

// Is reports whether two pieces are the same piece, compared by identity
// rather than by pointer so that it holds across cloned boards.
func (p *Piece) Is(other *Piece) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID && p.Type == other.Type && p.Color == other.Color
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s (%d)", p.Color, p.Type, p.ID)
}

func (p *Piece) clone() *Piece {
	c := *p
	c.Moves = append([]Move(nil), p.Moves...)
	return &c
}
