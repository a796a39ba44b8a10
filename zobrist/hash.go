package zobrist

import (
	"crypto/sha256"
	"errors"
	"strings"

	"lukechampine.com/frand"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/config"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for an Othello position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	lightToMove uint64

	// posTable[sq][0] is a dark disc on sq, posTable[sq][1] a light one.
	posTable [board.NumSquares][2]uint64
}

// Initialize fills the tables from the global frand generator.
func (z *Zobrist) Initialize() {
	z.fill(frand.Uint64n)
}

// InitializeWithRNG fills the tables from rng, so that two tables built
// from the same seed are identical.
func (z *Zobrist) InitializeWithRNG(rng *frand.RNG) {
	z.fill(rng.Uint64n)
}

func (z *Zobrist) fill(gen func(uint64) uint64) {
	for i := 0; i < board.NumSquares; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = gen(bignum) + 1
		}
	}
	z.lightToMove = gen(bignum) + 1
}

func colorIdx(c board.Color) int {
	if c == board.Light {
		return 1
	}
	return 0
}

// Hash computes the key of b with toMove on turn from scratch.
func (z *Zobrist) Hash(b *board.Board, toMove board.Color) uint64 {
	key := uint64(0)
	for r := 0; r < board.Dim; r++ {
		for c := 0; c < board.Dim; c++ {
			if b[r][c] == board.Empty {
				continue
			}
			key ^= z.posTable[r*board.Dim+c][colorIdx(b[r][c])]
		}
	}
	if toMove == board.Light {
		key ^= z.lightToMove
	}
	return key
}

// AddMove updates key for side placing a disc on sq and flipping flips.
// The turn passes to the other side.
func (z *Zobrist) AddMove(key uint64, sq board.Square, flips board.FlipSet, side board.Color) uint64 {
	own := colorIdx(side)
	opp := colorIdx(side.Opponent())
	key ^= z.posTable[sq.Index()][own]
	for _, f := range flips {
		idx := f.Index()
		key ^= z.posTable[idx][opp]
		key ^= z.posTable[idx][own]
	}
	return key ^ z.lightToMove
}

// Pass updates key for a side with no move handing the turn over.
func (z *Zobrist) Pass(key uint64) uint64 {
	return key ^ z.lightToMove
}

// CacheKey names the shared table for cfg. Configs with the same random
// seed share one table; an empty seed gets a single random table.
func CacheKey(cfg *config.Config) string {
	return "zobrist:" + cfg.GetString(config.ConfigRandomSeed)
}

// CacheLoadFunc builds a table for the object cache. A non-empty
// random-seed setting makes the table reproducible across runs.
func CacheLoadFunc(cfg *config.Config, key string) (*Zobrist, error) {
	if !strings.HasPrefix(key, "zobrist:") {
		return nil, errors.New("zobrist cache load func - bad cache key: " + key)
	}
	z := &Zobrist{}
	seed := strings.TrimPrefix(key, "zobrist:")
	if seed == "" {
		z.Initialize()
		return z, nil
	}
	sum := sha256.Sum256([]byte(seed))
	z.InitializeWithRNG(frand.NewCustom(sum[:], 1024, 12))
	return z, nil
}
