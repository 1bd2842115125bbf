package generator

import (
	"sync/atomic"

	"github.com/joshuafuller/dnsgen/internal/packetsocket"
	"github.com/joshuafuller/dnsgen/internal/query"
)

// sharedState holds the fields every worker goroutine reads, per spec.md
// §3's SharedState. Fields set once at startup are read-only thereafter;
// rate/txCount/rxCount/stop are updated concurrently via atomics.
type sharedState struct {
	threadCount    int
	batchSize      int
	ifindex        int
	destPort       uint16
	srcIP          [4]byte
	destIP         [4]byte
	destMAC        [6]byte
	queryFile      *query.File
	queryCount     int
	runtimeSeconds int
	increment      uint32
	rampMode       bool

	rxCount atomic.Uint32
	txCount atomic.Uint32
	rate    atomic.Uint32
	stop    atomic.Bool
}

// threadState is owned exclusively by one sender/receiver pair, per
// spec.md §3. The sender writes ipIDCount, portOffset, queryCur and
// txCount; the receiver writes only rxCount; neither is shared with other
// threads.
type threadState struct {
	index      int
	socket     packetsocket.Sender
	ring       packetsocket.RXRing
	portBase   uint16
	portCount  uint16
	portOffset uint16
	ipIDCount  uint16
	queryCur   int
	txCount    uint64
	rxCount    uint64
}

// nextQueryCursor advances the per-thread query cursor by threadCount,
// wrapping with >= rather than the strict > the original source uses
// (spec.md §9's open question; >= is safe regardless of whether
// threadCount evenly divides queryCount).
func nextQueryCursor(cursor, threadCount, queryCount int) int {
	cursor += threadCount
	if cursor >= queryCount {
		cursor -= queryCount
	}
	return cursor
}
