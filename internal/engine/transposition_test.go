package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRoundTripsExactHash(t *testing.T) {
	tt := NewTable(1 << 10)
	tt.StoreSearch(0xABCD, 42, 3, 6)

	entry, ok := tt.ProbeSearch(0xABCD)
	assert.True(t, ok)
	assert.Equal(t, int32(42), entry.Score)
	assert.Equal(t, int16(3), entry.DepthOfScore)
	assert.Equal(t, int16(6), entry.DepthOfSearch)
}

func TestTableRejectsHashCollisionInSlot(t *testing.T) {
	tt := NewTable(1 << 4) // tiny table to force a same-slot collision
	tt.StoreSearch(0x10, 7, 1, 1)
	// 0x10 and 0x10+16 share a slot in a 16-entry table.
	_, ok := tt.ProbeSearch(0x10 + 16)
	assert.False(t, ok, "a differing zobrist must never be reported as a hit")
}

func TestTableAlwaysReplaces(t *testing.T) {
	tt := NewTable(1 << 10)
	tt.StoreSearch(0x1, 10, 5, 5)
	tt.StoreSearch(0x1, 20, 2, 2)

	entry, ok := tt.ProbeSearch(0x1)
	assert.True(t, ok)
	assert.Equal(t, int32(20), entry.Score)
}

func TestEvalCacheRoundTrip(t *testing.T) {
	tt := NewTable(1 << 10)
	tt.StoreEval(0x55, -130)

	entry, ok := tt.ProbeEval(0x55)
	assert.True(t, ok)
	assert.Equal(t, int32(-130), entry.Score)

	_, ok = tt.ProbeEval(0x56)
	assert.False(t, ok)
}

func TestNewTableRoundsCapacityUpToPowerOfTwo(t *testing.T) {
	tt := NewTable(100)
	assert.Equal(t, uint64(127), tt.mask) // 128 - 1
}
