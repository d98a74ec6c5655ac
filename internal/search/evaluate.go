package search

import (
	"cmp"
	"slices"

	"github.com/benbeisheim/minimax-chess/internal/model"
)

// Evaluate scores a position by material alone: white piece values minus
// black piece values. Positive favours white.
func Evaluate(b *model.Board) int {
	return b.Material()
}

// orderMoves returns a sorted copy of moves, strongest mover first for the
// side to move. The sort is stable so equal movers keep generation order.
func orderMoves(moves []model.Move, maximizing bool) []model.Move {
	ordered := append([]model.Move(nil), moves...)
	slices.SortStableFunc(ordered, func(a, b model.Move) int {
		if maximizing {
			return cmp.Compare(signedValue(b), signedValue(a))
		}
		return cmp.Compare(signedValue(a), signedValue(b))
	})
	return ordered
}

func signedValue(m model.Move) int {
	if m.Piece.Color == model.White {
		return m.Piece.Value
	}
	return -m.Piece.Value
}
