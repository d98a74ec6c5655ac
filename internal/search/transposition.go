package search

// Bound says how a stored score relates to the true minimax value.
type Bound uint8

const (
	Exact Bound = iota // the value itself
	Lower              // search failed high, value >= score
	Upper              // search failed low, value <= score
)

type Entry struct {
	Depth int
	Score int
	Bound Bound
}

// Table caches evaluations by canonical position key. It is owned by one
// search at a time and takes no locks.
type Table struct {
	entries map[string]Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Probe returns a usable score for key when an entry searched at least
// depth plies deep settles the (alpha, beta) window.
func (t *Table) Probe(key string, depth, alpha, beta int) (int, bool) {
	e, ok := t.entries[key]
	if !ok || e.Depth < depth {
		return 0, false
	}
	switch e.Bound {
	case Exact:
		return e.Score, true
	case Lower:
		if e.Score >= beta {
			return e.Score, true
		}
	case Upper:
		if e.Score <= alpha {
			return e.Score, true
		}
	}
	return 0, false
}

// Store keeps the deeper of the existing and the new entry.
func (t *Table) Store(key string, depth, score int, bound Bound) {
	if e, ok := t.entries[key]; ok && e.Depth > depth {
		return
	}
	t.entries[key] = Entry{Depth: depth, Score: score, Bound: bound}
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Clear() {
	t.entries = make(map[string]Entry)
}
