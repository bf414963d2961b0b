package engine

// DefaultCapacity is the table size named by the spec: a power of two so
// that hash & mask replaces a modulo on the hot path.
const DefaultCapacity = 1 << 18

// SearchEntry is a cached search result: the score computed at a node, the
// remaining depth that score is valid for, and the total iterative-deepening
// depth of the search that produced it (mate scores from a shallower total
// depth are not comparable to ones from a deeper search, so Minimax and
// ScoutSearch do not trust a stored mate score whose DepthOfSearch is below
// the current search's total depth).
type SearchEntry struct {
	Zobrist       uint64
	Score         int32
	DepthOfScore  int16
	DepthOfSearch int16
}

// EvalEntry caches a static NNUE score for a position, independent of depth.
type EvalEntry struct {
	Zobrist uint64
	Score   int32
}

// Table is the shared transposition table: two fixed-size, always-replace
// arrays addressed by the low bits of the Zobrist hash. It is intentionally
// unsynchronized: concurrent workers may observe a torn entry whose fields
// come from two different writes. Every probe re-checks Zobrist against the
// queried hash, which rejects entries written for another position; a torn
// entry whose Zobrist matches but whose other fields came from a different
// write is not detected and is returned as a hit.
type Table struct {
	mask   uint64
	search []SearchEntry
	eval   []EvalEntry
}

// NewTable allocates a table with capacity entries, rounded up to the next
// power of two.
func NewTable(capacity int) *Table {
	n := roundUpPow2(capacity)
	return &Table{
		mask:   uint64(n - 1),
		search: make([]SearchEntry, n),
		eval:   make([]EvalEntry, n),
	}
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// ProbeSearch returns the search entry at hash and whether it is a genuine
// hit (Zobrist matches and the slot was ever written).
func (t *Table) ProbeSearch(hash uint64) (SearchEntry, bool) {
	e := t.search[hash&t.mask]
	if e.Zobrist == hash && e.DepthOfSearch != 0 {
		return e, true
	}
	return SearchEntry{}, false
}

// StoreSearch always replaces whatever occupied the slot. No aging, no
// depth-preferred replacement: a fresh table is allocated per calculate_move
// call, so stale entries self-expire between searches (see DESIGN.md).
func (t *Table) StoreSearch(hash uint64, score int32, depthOfScore, depthOfSearch int16) {
	t.search[hash&t.mask] = SearchEntry{
		Zobrist:       hash,
		Score:         score,
		DepthOfScore:  depthOfScore,
		DepthOfSearch: depthOfSearch,
	}
}

// ProbeEval returns the cached NNUE score at hash, if any.
func (t *Table) ProbeEval(hash uint64) (EvalEntry, bool) {
	e := t.eval[hash&t.mask]
	if e.Zobrist == hash && (e.Zobrist != 0 || e.Score != 0) {
		return e, true
	}
	return EvalEntry{}, false
}

// StoreEval always-replaces the NNUE cache slot.
func (t *Table) StoreEval(hash uint64, score int32) {
	t.eval[hash&t.mask] = EvalEntry{Zobrist: hash, Score: score}
}
