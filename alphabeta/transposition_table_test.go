package alphabeta

import (
	"testing"

	"github.com/matryer/is"
)

func TestTableStoreLookup(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(0.0)
	is.Equal(tt.Size(), 1<<minSizePowerOf2)

	key := uint64(0xdeadbeef12345678)
	tt.store(key, TableEntry{score: -42, depth: 3, flag: TTLower, play: 19})
	e := tt.lookup(key)
	is.True(e.valid())
	is.Equal(e.score, int32(-42))
	is.Equal(e.depth, uint8(3))
	is.Equal(e.flag, uint8(TTLower))
	is.Equal(e.play, uint8(19))

	// same bucket, different key
	other := key ^ (1 << 40)
	is.True(!tt.lookup(other).valid())
	is.Equal(tt.t2collisions.Load(), uint64(1))

	tt.Reset(0.0)
	is.True(!tt.lookup(key).valid())
	is.Equal(tt.created.Load(), uint64(0))
}

func TestTableSizeCapped(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(1.0)
	is.Equal(tt.Size(), 1<<maxSizePowerOf2)
}
