package alphabeta

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 16

const (
	minSizePowerOf2 = 16
	maxSizePowerOf2 = 20
)

// noMove marks an entry without a best move. Real moves are square
// indexes 0..63.
const noMove = 64

// 16 bytes (entrySize)
type TableEntry struct {
	fullHash uint64
	score    int32
	depth    uint8
	flag     uint8
	play     uint8
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

// TranspositionTable caches search results by position key. It belongs to
// a single Solver and is not safe for concurrent use.
type TranspositionTable struct {
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// "type 2" collisions: two positions sharing a bucket.
	t2collisions atomic.Uint64
}

func (t *TranspositionTable) lookup(zval uint64) TableEntry {
	t.lookups.Add(1)
	idx := zval & t.sizeMask
	entry := t.table[idx]
	if !entry.valid() {
		return TableEntry{}
	}
	if entry.fullHash != zval {
		t.t2collisions.Add(1)
		return TableEntry{}
	}
	t.hits.Add(1)
	return entry
}

func (t *TranspositionTable) store(zval uint64, tentry TableEntry) {
	idx := zval & t.sizeMask
	tentry.fullHash = zval
	// just overwrite whatever is there for now.
	t.table[idx] = tentry
	t.created.Add(1)
}

// Reset empties the table, sizing it to roughly fractionOfMemory of the
// machine's memory the first time (or whenever the size changes).
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	sizePowerOf2 := minSizePowerOf2
	if desiredNElems >= 1 {
		sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	sizePowerOf2 = min(max(sizePowerOf2, minSizePowerOf2), maxSizePowerOf2)

	numElems := 1 << sizePowerOf2
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
		log.Debug().Int("num-elems", numElems).
			Float64("desired-num-elems", desiredNElems).
			Int("estimated-total-memory-bytes", numElems*entrySize).
			Uint64("total-system-memory-bytes", totalMem).
			Msg("transposition-table-size")
	}
	t.sizePowerOf2 = sizePowerOf2
	t.sizeMask = uint64(numElems - 1)

	log.Trace().Bool("reset", reset).Msg("transposition-table-reset")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}

// Size is the number of buckets.
func (t *TranspositionTable) Size() int {
	return len(t.table)
}
