package engine

import (
	"log"
	"sync/atomic"
)

// Stat identifies one process-wide counter. The set mirrors the reference
// engine's statistics module: search-path counters plus NNUE/TT cache
// counters recorded during move ordering and evaluation.
type Stat int

const (
	NodesEvaluated Stat = iota
	TableHits
	TableEvalHits
	TableMisses
	CheckmatesFound
	BranchesCut
	PVMisses
	NNUECacheHits
	NNUECacheMisses
	numStats
)

var statNames = [numStats]string{
	NodesEvaluated:   "nodes evaluated",
	TableHits:        "TT hits during search",
	TableEvalHits:    "TT hits during move ordering",
	TableMisses:      "TT misses during search",
	CheckmatesFound:  "checkmates found",
	BranchesCut:      "branches cut",
	PVMisses:         "PV misses",
	NNUECacheHits:    "NNUE cache hits",
	NNUECacheMisses:  "NNUE cache misses",
}

// Statistics holds relaxed atomic counters, partitioned into a running total
// since the last Clear and a snapshot of just the currently deepening
// iteration. Ordering between counters is irrelevant: these feed a log line,
// not a correctness decision, so plain atomic.Uint32 with no further
// coordination is sufficient.
type Statistics struct {
	all  [numStats]atomic.Uint32
	this [numStats]atomic.Uint32
	last [numStats]atomic.Uint32
}

// NewStatistics returns a zeroed counter set.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// Inc bumps both the all-depths and current-depth counters for stat.
func (s *Statistics) Inc(stat Stat) {
	s.all[stat].Add(1)
	s.this[stat].Add(1)
}

// NextDepth rolls the current-depth snapshot into last-depth and resets it,
// called once per completed iterative-deepening iteration.
func (s *Statistics) NextDepth() {
	for i := range s.this {
		s.last[i].Store(s.this[i].Load())
		s.this[i].Store(0)
	}
}

// Log prints the all-depths and last-depth snapshots, matching the
// reference engine's end-of-search debug log.
func (s *Statistics) Log() {
	log.Printf("[stats] search finished, totals for all depths:")
	s.logSnapshot(&s.all)
	log.Printf("[stats] totals for the final completed depth:")
	s.logSnapshot(&s.last)
}

func (s *Statistics) logSnapshot(snap *[numStats]atomic.Uint32) {
	for i := Stat(0); i < numStats; i++ {
		log.Printf("[stats]   %s: %d", statNames[i], snap[i].Load())
	}
}

// Clear zeros every counter. Called at the end of each calculate_move.
func (s *Statistics) Clear() {
	for i := range s.all {
		s.all[i].Store(0)
		s.this[i].Store(0)
		s.last[i].Store(0)
	}
}

// globalStats is the process-wide counter set every search component reports
// into, matching the spec's "statistics counters are process-global" rule.
// calculate_move logs and clears it once the search completes.
var globalStats = NewStatistics()
