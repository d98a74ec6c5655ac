package service

import (
	"log"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/search"
)

// Suggester proposes a move for color on a board it may freely mutate.
type Suggester interface {
	Suggest(board *model.Board, color model.Color, depth int) (model.Move, bool)
}

// MinimaxSuggester is the in-process engine.
type MinimaxSuggester struct{}

func (MinimaxSuggester) Suggest(board *model.Board, color model.Color, depth int) (model.Move, bool) {
	start := time.Now()
	searcher := search.New(board)
	move, ok := searcher.FindBestMove(color, depth)
	log.Printf("search: color=%s depth=%d nodes=%d took=%v found=%v", color, depth, searcher.Nodes(), time.Since(start), ok)
	return move, ok
}
