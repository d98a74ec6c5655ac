package model

import (
	"reflect"
	"sort"
	"testing"
)

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
	}
	for _, fen := range positions {
		b := mustFEN(t, fen, White)
		for _, m := range b.CachedMoves(b.Turn) {
			c := b.Clone()
			if !c.Apply(m) {
				t.Fatalf("%s: cached move %s rejected", fen, b.UCI(m))
			}
			if c.IsInCheck(b.Turn) {
				t.Fatalf("%s: %s leaves the king in check", fen, b.UCI(m))
			}
		}
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", White)
	if got := destinations(b, "e2"); len(got) != 0 {
		t.Fatalf("pinned bishop should have no moves, got %v", got)
	}
}

func TestCheckMustBeResolved(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/r3K2R w K - 0 1", White)
	if b.Status(White) != InCheck {
		t.Fatalf("expected check, got %s", b.Status(White))
	}

	var got []string
	for m := range uciSet(b, White) {
		got = append(got, m)
	}
	sort.Strings(got)
	want := []string{"e1d2", "e1e2", "e1f2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestInterpositionIsTheOnlyEscape(t *testing.T) {
	b := mustFEN(t, "1k6/8/8/8/8/N7/PP6/K6r w - - 0 1", White)
	if !b.IsInCheck(White) {
		t.Fatalf("expected white to be in check")
	}
	moves := b.CachedMoves(White)
	if len(moves) != 1 || b.UCI(moves[0]) != "a3b1" {
		var got []string
		for _, m := range moves {
			got = append(got, b.UCI(m))
		}
		t.Fatalf("expected only a3b1, got %v", got)
	}
}

func TestCheckmateAndStalemate(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		moves  []string
		status Status
	}{
		{"back rank mate", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", []string{"a1a8"}, Checkmate},
		{"fool's mate", StartFEN, []string{"f2f3", "e7e5", "g2g4", "d8h4"}, Checkmate},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", nil, Stalemate},
		{"check only", "4k3/8/8/8/8/8/8/r3K2R w K - 0 1", nil, InCheck},
		{"quiet", StartFEN, []string{"e2e4"}, NotInCheck},
	}
	for _, tc := range tests {
		b := mustFEN(t, tc.fen, White)
		play(t, b, tc.moves...)
		if got := b.Status(b.Turn); got != tc.status {
			t.Fatalf("%s: status %s, want %s", tc.name, got, tc.status)
		}
		over := tc.status == Checkmate || tc.status == Stalemate
		if b.IsGameOver() != over {
			t.Fatalf("%s: IsGameOver=%v", tc.name, b.IsGameOver())
		}
		mated, ok := b.Mated()
		if ok != (tc.status == Checkmate) || (ok && mated != b.Turn) {
			t.Fatalf("%s: Mated()=%s,%v", tc.name, mated, ok)
		}
	}
}

func TestSquaresBetween(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/r3K2R w K - 0 1", White)
	checks := b.Checks(White)
	if len(checks) != 1 {
		t.Fatalf("expected one checking move, got %d", len(checks))
	}
	got := b.SquaresBetween(checks[0])
	sort.Strings(got)
	want := []string{"a1", "b1", "c1", "d1", "e1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	k := mustFEN(t, "4k3/8/8/8/8/3n4/8/4K3 w - - 0 1", White)
	checks = k.Checks(White)
	if len(checks) != 1 {
		t.Fatalf("expected a knight check, got %d", len(checks))
	}
	if got := k.SquaresBetween(checks[0]); len(got) != 2 {
		t.Fatalf("knight checks list only their ends, got %v", got)
	}
}
