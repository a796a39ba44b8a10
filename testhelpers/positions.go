// Package testhelpers holds fixtures shared by the package tests.
package testhelpers

import (
	"lukechampine.com/frand"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/config"
)

// RNG returns a deterministic generator for the given seed.
func RNG(seed byte) *frand.RNG {
	s := make([]byte, 32)
	s[0] = seed
	s[1] = 't'
	return frand.NewCustom(s, 1024, 12)
}

// Config is the default config with a shallow search, a small endgame
// threshold and a fixed random seed, so tests run fast and repeat.
func Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDefaultPlies, 2)
	cfg.Set(config.ConfigEndgameThreshold, 4)
	cfg.Set(config.ConfigRandomSeed, "testhelpers")
	return &cfg
}

func legalSquares(b *board.Board, side board.Color) []board.Square {
	var sqs []board.Square
	for r := 0; r < board.Dim; r++ {
		for c := 0; c < board.Dim; c++ {
			if b.IsLegal(r, c, side) {
				sqs = append(sqs, board.Square{Row: r, Col: c})
			}
		}
	}
	return sqs
}

// RandomPositions plays random games and keeps the positions (and the
// side on turn) for which keep returns true, at most one per game. The
// side on turn always has a legal move.
func RandomPositions(rng *frand.RNG, n int, keep func(b *board.Board) bool) ([]*board.Board, []board.Color) {
	var boards []*board.Board
	var sides []board.Color
	for tries := 0; len(boards) < n && tries < 1000; tries++ {
		b := board.NewBoard()
		side := board.Dark
		for !b.IsTerminal() {
			sqs := legalSquares(b, side)
			if len(sqs) == 0 {
				side = side.Opponent()
				continue
			}
			if keep(b) {
				boards = append(boards, b.Copy())
				sides = append(sides, side)
				break
			}
			sq := sqs[rng.Intn(len(sqs))]
			b.ApplyMove(sq.Row, sq.Col, side)
			side = side.Opponent()
		}
	}
	return boards, sides
}
