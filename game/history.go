package game

import (
	"fmt"
	"strings"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/move"
)

// Event is one entry in the game history: a placement or a forced pass,
// with the disc counts right after it.
type Event struct {
	Turn  int
	Side  board.Color
	Move  *move.Move
	Flips int
	Dark  int
	Light int
}

func (e Event) String() string {
	if e.Move.IsPass() {
		return fmt.Sprintf("%v passes", e.Side)
	}
	return fmt.Sprintf("%d. %v %v (+%d) %d-%d", e.Turn, e.Side,
		e.Move.BoardCoords(), e.Flips, e.Dark, e.Light)
}

// Transcript is the move list in compact form, e.g. "d3 c5 pass f6".
func (g *Game) Transcript() string {
	parts := make([]string, 0, len(g.history))
	for _, e := range g.history {
		if e.Move.IsPass() {
			parts = append(parts, "pass")
			continue
		}
		parts = append(parts, e.Move.BoardCoords())
	}
	return strings.Join(parts, " ")
}
