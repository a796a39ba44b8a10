package alphabeta

import (
	"sort"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/move"
)

const (
	CornerEstimate  = 10000
	XSquareEstimate = -10000
	EdgeEstimate    = 1000
	// HashMoveOffset puts the transposition table's best move ahead of
	// everything else, corners included.
	HashMoveOffset = 30000
)

// squareEstimate is a rough prior on how good it is to play on sq.
func squareEstimate(sq board.Square) int {
	w := heuristic.Weights[sq.Row][sq.Col]
	switch {
	case sq.IsCorner():
		return CornerEstimate
	case sq.IsXSquare():
		return XSquareEstimate
	case sq.IsEdge():
		return EdgeEstimate + w
	}
	return w
}

// orderMoves sorts moves by descending estimate. hashMove is the square
// index of the table's best move, or noMove. Ties keep generation order.
func orderMoves(moves []*move.Move, hashMove int) {
	for _, m := range moves {
		sq := m.Square()
		m.SetEstimatedValue(squareEstimate(sq))
		if sq.Index() == hashMove {
			m.AddEstimatedValue(HashMoveOffset)
		}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].EstimatedValue() > moves[j].EstimatedValue()
	})
}
