package search

import "testing"

func TestTableProbeRespectsBounds(t *testing.T) {
	tests := []struct {
		name        string
		bound       Bound
		score       int
		alpha, beta int
		usable      bool
	}{
		{"exact inside window", Exact, 3, -10, 10, true},
		{"exact outside window", Exact, 30, -10, 10, true},
		{"lower bound fails high", Lower, 12, -10, 10, true},
		{"lower bound inside window", Lower, 5, -10, 10, false},
		{"upper bound fails low", Upper, -12, -10, 10, true},
		{"upper bound inside window", Upper, 5, -10, 10, false},
	}
	for _, tc := range tests {
		table := NewTable()
		table.Store("k", 2, tc.score, tc.bound)
		score, ok := table.Probe("k", 2, tc.alpha, tc.beta)
		if ok != tc.usable {
			t.Fatalf("%s: usable=%v, want %v", tc.name, ok, tc.usable)
		}
		if ok && score != tc.score {
			t.Fatalf("%s: score=%d, want %d", tc.name, score, tc.score)
		}
	}
}

func TestTableIgnoresShallowEntries(t *testing.T) {
	table := NewTable()
	table.Store("k", 1, 7, Exact)

	if _, ok := table.Probe("k", 2, -100, 100); ok {
		t.Fatalf("depth 1 entry must not answer a depth 2 probe")
	}
	if score, ok := table.Probe("k", 0, -100, 100); !ok || score != 7 {
		t.Fatalf("depth 1 entry should answer a depth 0 probe, got %d %v", score, ok)
	}
}

func TestTableKeepsDeeperEntry(t *testing.T) {
	table := NewTable()
	table.Store("k", 3, 4, Exact)
	table.Store("k", 1, 9, Exact)

	if score, _ := table.Probe("k", 3, -100, 100); score != 4 {
		t.Fatalf("shallow store replaced deeper entry: %d", score)
	}

	table.Store("k", 3, 6, Exact)
	if score, _ := table.Probe("k", 3, -100, 100); score != 6 {
		t.Fatalf("equal depth store should replace: %d", score)
	}

	table.Clear()
	if table.Len() != 0 {
		t.Fatalf("expected empty table after Clear, got %d", table.Len())
	}
}
