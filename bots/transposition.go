package bots

type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "exact"
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	default:
		return "unknown"
	}
}

// Entry is a stored search result. Depth is the remaining depth the value was
// searched to.
type Entry struct {
	Depth int
	Value Score
	Bound Bound
}

// Classify tells what a node value means given the window the node was entered with.
func Classify(value, alpha, beta Score) Bound {
	switch {
	case value <= alpha:
		return BoundUpper
	case value >= beta:
		return BoundLower
	default:
		return BoundExact
	}
}

// TranspositionTable caches search results by position key for one search.
// It is not safe for concurrent use.
type TranspositionTable struct {
	entries map[uint64]Entry
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{entries: make(map[uint64]Entry)}
}

// Lookup returns a stored value when it was searched at least depth deep and
// is decisive for the (alpha, beta) window.
func (tt *TranspositionTable) Lookup(key uint64, depth int, alpha, beta Score) (Score, bool) {
	e, ok := tt.entries[key]
	if !ok || e.Depth < depth {
		return 0, false
	}
	switch {
	case e.Bound == BoundExact,
		e.Bound == BoundLower && e.Value >= beta,
		e.Bound == BoundUpper && e.Value <= alpha:
		return e.Value, true
	}
	return 0, false
}

// Store replaces any entry for key. alpha and beta are the window at node entry.
func (tt *TranspositionTable) Store(key uint64, depth int, value, alpha, beta Score) {
	tt.entries[key] = Entry{Depth: depth, Value: value, Bound: Classify(value, alpha, beta)}
}

func (tt *TranspositionTable) Probe(key uint64) (Entry, bool) {
	e, ok := tt.entries[key]
	return e, ok
}

func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
}

func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}
