package heuristic

import (
	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/movegen"
)

const (
	// TerminalMultiplier scales the final disc differential so that a
	// decided game outweighs any heuristic score.
	TerminalMultiplier = 10000
	// PhaseThreshold is the disc count at which the composite switches
	// from its early weights to its late weights.
	PhaseThreshold = 40

	EarlyPositionWeight = 1
	EarlyCornerWeight   = 300
	EarlyMobilityWeight = 10

	LatePositionWeight = 3
	LateCornerWeight   = 500
	LateMobilityWeight = 2
)

// CornerDifferential counts corners owned by side minus corners owned by
// the opponent.
func CornerDifferential(b *board.Board, side board.Color) int {
	opp := side.Opponent()
	diff := 0
	for _, sq := range board.Corners {
		switch b[sq.Row][sq.Col] {
		case side:
			diff++
		case opp:
			diff--
		}
	}
	return diff
}

// NormalizedMobility is 100*(own-opp)/(own+opp), or 0 if neither side can
// move.
func NormalizedMobility(b *board.Board, side board.Color) int {
	own := movegen.Mobility(b, side)
	opp := movegen.Mobility(b, side.Opponent())
	if own+opp == 0 {
		return 0
	}
	return 100 * (own - opp) / (own + opp)
}

// CompositeScore blends position, corners and mobility with weights that
// depend on the game phase. A finished game scores its disc differential
// times TerminalMultiplier.
func CompositeScore(b *board.Board, side board.Color) int {
	own := movegen.Mobility(b, side)
	opp := movegen.Mobility(b, side.Opponent())
	if own == 0 && opp == 0 {
		return b.DiscDifferential(side) * TerminalMultiplier
	}
	mobility := 100 * (own - opp) / (own + opp)
	position := WeightedScore(b, side)
	corners := CornerDifferential(b, side)

	if b.Discs() < PhaseThreshold {
		return position*EarlyPositionWeight +
			corners*EarlyCornerWeight +
			mobility*EarlyMobilityWeight
	}
	return position*LatePositionWeight +
		corners*LateCornerWeight +
		mobility*LateMobilityWeight
}
