package heuristic

import (
	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/movegen"
)

// Weights is the positional table. Corners are worth the most; the squares
// diagonally inside a corner (X-squares) are the worst, since taking one
// while the corner is open usually gives the corner away.
var Weights = [board.Dim][board.Dim]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// CoinParityScore is side's disc count minus the opponent's.
func CoinParityScore(b *board.Board, side board.Color) int {
	return b.DiscDifferential(side)
}

// WeightedScore sums the weight table over side's discs and subtracts it
// over the opponent's.
func WeightedScore(b *board.Board, side board.Color) int {
	opp := side.Opponent()
	score := 0
	for r := 0; r < board.Dim; r++ {
		for c := 0; c < board.Dim; c++ {
			switch b[r][c] {
			case side:
				score += Weights[r][c]
			case opp:
				score -= Weights[r][c]
			}
		}
	}
	return score
}

// MobilityScore is side's legal move count minus the opponent's.
func MobilityScore(b *board.Board, side board.Color) int {
	return movegen.Mobility(b, side) - movegen.Mobility(b, side.Opponent())
}
