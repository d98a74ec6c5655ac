package search

import (
	"testing"

	"github.com/benbeisheim/minimax-chess/internal/model"
)

func mustFEN(t *testing.T, fen string) *model.Board {
	t.Helper()
	b, err := model.FromFEN(fen, model.White)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

func uci(b *model.Board, m model.Move) string {
	return b.UCI(m)
}

func TestFindBestMoveCapturesHangingQueen(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")

	m, ok := New(b).FindBestMove(model.White, 1)
	if !ok {
		t.Fatalf("expected a move")
	}
	if got := uci(b, m); got != "d1d5" {
		t.Fatalf("expected d1d5, got %s", got)
	}
}

func TestFindBestMoveAvoidsDefendedPawn(t *testing.T) {
	fen := "4k3/8/2p5/3p4/8/8/8/3QK3 w - - 0 1"

	b := mustFEN(t, fen)
	shallow, ok := New(b).FindBestMove(model.White, 1)
	if !ok {
		t.Fatalf("expected a move at depth 1")
	}
	if got := uci(b, shallow); got != "d1d5" {
		t.Fatalf("depth 1 should grab the pawn, got %s", got)
	}

	deep, ok := New(b).FindBestMove(model.White, 2)
	if !ok {
		t.Fatalf("expected a move at depth 2")
	}
	if got := uci(b, deep); got == "d1d5" {
		t.Fatalf("depth 2 should see the recapture, got %s", got)
	}
}

func TestFindBestMoveBlackMinimises(t *testing.T) {
	b := mustFEN(t, "3rk3/8/8/8/3Q4/8/8/4K3 b - - 0 1")

	m, ok := New(b).FindBestMove(model.Black, 1)
	if !ok {
		t.Fatalf("expected a move")
	}
	if got := uci(b, m); got != "d8d4" {
		t.Fatalf("expected d8d4, got %s", got)
	}
}

func TestFindBestMoveIsDeterministic(t *testing.T) {
	b := model.NewBoard(model.White)
	s := New(b)

	first, ok := s.FindBestMove(model.White, 2)
	if !ok {
		t.Fatalf("expected a move")
	}
	for i := 0; i < 3; i++ {
		again, _ := s.FindBestMove(model.White, 2)
		if !again.Equal(first) {
			t.Fatalf("run %d: %s differs from %s", i, uci(b, again), uci(b, first))
		}
		fresh, _ := New(b.Clone()).FindBestMove(model.White, 2)
		if uci(b, fresh) != uci(b, first) {
			t.Fatalf("fresh searcher chose %s, expected %s", uci(b, fresh), uci(b, first))
		}
	}
}

func TestFindBestMoveLeavesBoardUntouched(t *testing.T) {
	b := model.NewBoard(model.White)
	m, _ := b.MoveFromLabels("e2", "e4")
	if !b.Apply(m) {
		t.Fatalf("e2e4 rejected")
	}
	fen, key, plies := b.FEN(), b.Key(), len(b.History)
	moves := len(b.CachedMoves(model.Black))

	if _, ok := New(b).FindBestMove(model.Black, 2); !ok {
		t.Fatalf("expected a move")
	}

	if b.FEN() != fen || b.Key() != key {
		t.Fatalf("board changed by search: %s", b.FEN())
	}
	if len(b.History) != plies || len(b.CachedMoves(model.Black)) != moves {
		t.Fatalf("history or legal moves changed by search")
	}
}

func TestFindBestMoveWithoutMove(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		color model.Color
	}{
		{"not to move", model.StartFEN, model.Black},
		{"stalemated", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", model.Black},
		{"mated", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", model.Black},
	}
	for _, tc := range cases {
		b := mustFEN(t, tc.fen)
		if m, ok := New(b).FindBestMove(tc.color, 2); ok {
			t.Fatalf("%s: expected no move, got %s", tc.name, uci(b, m))
		}
	}
}

func TestFindBestMoveClampsDepth(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	s := New(b)

	m, ok := s.FindBestMove(model.White, 0)
	if !ok || uci(b, m) != "d1d5" {
		t.Fatalf("depth 0 should search one ply, got %v %s", ok, uci(b, m))
	}
	if s.Nodes() == 0 {
		t.Fatalf("expected visited nodes to be counted")
	}
}

func TestOrderMovesIsStable(t *testing.T) {
	b := model.NewBoard(model.White)
	moves := b.CachedMoves(model.White)

	ordered := orderMoves(moves, true)
	if len(ordered) != len(moves) {
		t.Fatalf("ordering lost moves: %d vs %d", len(ordered), len(moves))
	}
	for i := 1; i < len(ordered); i++ {
		if signedValue(ordered[i-1]) < signedValue(ordered[i]) {
			t.Fatalf("move %d out of order", i)
		}
	}
	// knights first, then pawns in generation order
	var pawns []string
	for _, m := range moves {
		if m.Piece.Type == model.Pawn {
			pawns = append(pawns, uci(b, m))
		}
	}
	var orderedPawns []string
	for _, m := range ordered {
		if m.Piece.Type == model.Pawn {
			orderedPawns = append(orderedPawns, uci(b, m))
		}
	}
	for i := range pawns {
		if pawns[i] != orderedPawns[i] {
			t.Fatalf("pawn %d moved: %s vs %s", i, pawns[i], orderedPawns[i])
		}
	}
	if &ordered[0] == &moves[0] {
		t.Fatalf("orderMoves must not sort in place")
	}
}

// exhaustive is plain minimax without pruning or a table.
func exhaustive(b *model.Board, depth int) int {
	if depth == 0 || !b.HasLegalMoves(model.White) || !b.HasLegalMoves(model.Black) {
		return Evaluate(b)
	}
	maximizing := b.Turn == model.White
	value := inf
	if maximizing {
		value = -inf
	}
	for _, m := range b.LegalMoves(b.Turn) {
		child := b.Clone()
		if !child.Apply(m) {
			continue
		}
		score := exhaustive(child, depth-1)
		if maximizing {
			value = max(value, score)
		} else {
			value = min(value, score)
		}
	}
	return value
}

// scoreAfter is the exhaustive value of playing m and searching depth-1 more.
func scoreAfter(t *testing.T, b *model.Board, m model.Move, depth int) int {
	t.Helper()
	child := b.Clone()
	if !child.Apply(m) {
		t.Fatalf("chosen move %s does not apply", uci(b, m))
	}
	return exhaustive(child, depth-1)
}

func TestFindBestMoveMatchesExhaustiveSearch(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"defended pawn", "4k3/8/2p5/3p4/8/8/8/3QK3 w - - 0 1"},
		{"hanging queen", "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1"},
		{"black to move", "3rk3/8/8/8/3Q4/8/8/4K3 b - - 0 1"},
		{"knight fork", "r3k3/8/8/1N6/8/8/8/4K3 w - - 0 1"},
		{"pawn race", "4k3/p7/8/8/8/8/7P/4K3 b - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			color := b.Turn
			better := func(a, c int) bool {
				if color == model.White {
					return a >= c
				}
				return a <= c
			}

			for depth := 1; depth <= 2; depth++ {
				shallow, ok := New(b).FindBestMove(color, depth)
				if !ok {
					t.Fatalf("no move at depth %d", depth)
				}
				if got, want := scoreAfter(t, b, shallow, depth), exhaustive(b, depth); got != want {
					t.Fatalf("depth %d: %s scores %d, optimum is %d", depth, uci(b, shallow), got, want)
				}

				deep, ok := New(b).FindBestMove(color, depth+1)
				if !ok {
					t.Fatalf("no move at depth %d", depth+1)
				}
				deepScore := scoreAfter(t, b, deep, depth+1)
				shallowScore := scoreAfter(t, b, shallow, depth+1)
				if !better(deepScore, shallowScore) {
					t.Fatalf("at depth %d, %s (%d) is worse than the depth %d choice %s (%d)",
						depth+1, uci(b, deep), deepScore, depth, uci(b, shallow), shallowScore)
				}
			}
		})
	}
}
