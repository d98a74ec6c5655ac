package search

import (
	"github.com/benbeisheim/minimax-chess/internal/model"
)

const inf = 1 << 30

// Searcher runs depth bounded minimax with alpha-beta pruning over a board.
// White maximises the evaluation and black minimises it. Every node is a
// clone of its parent with one move applied, so the board handed to New is
// never modified.
type Searcher struct {
	board *model.Board
	table *Table
	nodes int
}

func New(board *model.Board) *Searcher {
	return &Searcher{board: board, table: NewTable()}
}

// Nodes is the number of positions visited by the last search.
func (s *Searcher) Nodes() int {
	return s.nodes
}

// FindBestMove searches depth plies ahead for color, which must be the side
// to move. Ties keep the earliest move in search order, so the same position
// and depth always give the same answer.
func (s *Searcher) FindBestMove(color model.Color, depth int) (model.Move, bool) {
	if s.board.Turn != color {
		return model.Move{}, false
	}
	if depth < 1 {
		depth = 1
	}
	maximizing := color == model.White
	moves := orderMoves(s.board.CachedMoves(color), maximizing)
	if len(moves) == 0 {
		return model.Move{}, false
	}

	// a fresh table per call keeps results independent of earlier searches
	s.table.Clear()
	s.nodes = 0

	alpha, beta := -inf, inf
	var best model.Move
	bestScore := inf
	if maximizing {
		bestScore = -inf
	}
	found := false
	for _, m := range moves {
		child := s.board.Clone()
		if !child.Apply(m) {
			continue
		}
		score := s.minimax(child, depth-1, alpha, beta)
		if !found || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			best, bestScore, found = m, score, true
		}
		if maximizing {
			alpha = max(alpha, bestScore)
		} else {
			beta = min(beta, bestScore)
		}
	}
	return best, found
}

func (s *Searcher) minimax(b *model.Board, depth, alpha, beta int) int {
	s.nodes++
	key := b.Key()
	if score, ok := s.table.Probe(key, depth, alpha, beta); ok {
		return score
	}

	if depth == 0 || !b.HasLegalMoves(model.White) || !b.HasLegalMoves(model.Black) {
		score := Evaluate(b)
		s.table.Store(key, depth, score, Exact)
		return score
	}

	maximizing := b.Turn == model.White
	alphaIn, betaIn := alpha, beta
	value := inf
	if maximizing {
		value = -inf
	}
	for _, m := range orderMoves(b.CachedMoves(b.Turn), maximizing) {
		child := b.Clone()
		if !child.Apply(m) {
			continue
		}
		score := s.minimax(child, depth-1, alpha, beta)
		if maximizing {
			value = max(value, score)
			alpha = max(alpha, value)
		} else {
			value = min(value, score)
			beta = min(beta, value)
		}
		if beta <= alpha {
			break
		}
	}

	bound := Exact
	switch {
	case value <= alphaIn:
		bound = Upper
	case value >= betaIn:
		bound = Lower
	}
	s.table.Store(key, depth, value, bound)
	return value
}
