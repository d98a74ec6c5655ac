package model

import "testing"

func TestNotation(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		setup []string
		move  string
		want  string
	}{
		{"pawn push", StartFEN, nil, "e2e4", "e4"},
		{"knight", StartFEN, nil, "g1f3", "Nf3"},
		{"pawn capture", StartFEN, []string{"e2e4", "d7d5"}, "e4d5", "exd5"},
		{"piece capture", "4k3/8/8/3p4/8/8/8/3QK3 w - - 0 1", nil, "d1d5", "Qxd5"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", nil, "b1d2", "Nbd2"},
		{"rank disambiguation", "4k3/8/8/R7/8/8/8/R3K3 w - - 0 1", nil, "a1a3", "R1a3"},
		{"short castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", nil, "e1g1", "O-O"},
		{"long castle", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", nil, "e8c8", "O-O-O"},
		{"promotion", "7k/P7/8/8/8/8/8/4K3 w - - 0 1", nil, "a7a8", "a8=Q"},
		{"en passant", "4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1", nil, "e4d3", "exd3"},
	}
	for _, tc := range tests {
		for _, orientation := range []Color{White, Black} {
			b := mustFEN(t, tc.fen, orientation)
			play(t, b, tc.setup...)
			m, err := b.MoveFromUCI(tc.move)
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if got := b.Notation(m); got != tc.want {
				t.Fatalf("%s (%s): got %q, want %q", tc.name, orientation, got, tc.want)
			}
		}
	}
}

func TestCheckSuffix(t *testing.T) {
	b := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", White)
	play(t, b, "a1a8")
	if got := b.checkSuffix(); got != "#" {
		t.Fatalf("expected mate suffix, got %q", got)
	}

	b = mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", White)
	play(t, b, "a1a8")
	if got := b.checkSuffix(); got != "+" {
		t.Fatalf("expected check suffix, got %q", got)
	}
}

func TestPlyDescribesCastling(t *testing.T) {
	b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", White)
	m, _ := b.MoveFromUCI("e1c1")
	p := b.ply(m)
	if p.CastleRookMove == nil || p.CastleRookMove.From != "a1" || p.CastleRookMove.To != "d1" {
		t.Fatalf("unexpected rook move %+v", p.CastleRookMove)
	}
	if p.From != "e1" || p.To != "c1" || p.Notation != "O-O-O" {
		t.Fatalf("unexpected ply %+v", p)
	}
}
