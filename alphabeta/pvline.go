package alphabeta

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/othellolab/othello/move"
)

// PVLine is the principal variation: the line of best play from the root
// as far as the last search saw it. Passes appear as moves.
type PVLine struct {
	Moves []*move.Move
	score int
}

func (pv *PVLine) Clear() {
	pv.Moves = nil
}

// Update makes the line m followed by the child's line.
func (pv *PVLine) Update(m *move.Move, child PVLine, score int) {
	moves := make([]*move.Move, 0, len(child.Moves)+1)
	pv.Moves = append(append(moves, m), child.Moves...)
	pv.score = score
}

// GetPVMove returns the first move of the line, or nil if it is empty.
func (pv *PVLine) GetPVMove() *move.Move {
	if len(pv.Moves) == 0 {
		return nil
	}
	return pv.Moves[0]
}

func (pv PVLine) Score() int {
	return pv.score
}

// String gives the line on one row, e.g. "c4 e3 (Pass) f6 [score 12]".
func (pv PVLine) String() string {
	coords := lo.Map(pv.Moves, func(m *move.Move, _ int) string {
		return m.ShortDescription()
	})
	return fmt.Sprintf("%s [score %d]", strings.Join(coords, " "), pv.score)
}
