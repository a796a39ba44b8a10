package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/othellolab/othello/move"
)

var (
	ErrNoMoveAvailable = errors.New("no legal move available")
)

// Choice is the move a Player picked along with the search details shown
// to the user.
type Choice struct {
	Move    *move.Move
	Score   int
	Depth   int
	Endgame bool
	Nodes   uint64
	Elapsed time.Duration
	// Random is set when the search gave no move and one was picked at
	// random among the legal ones.
	Random bool
}

func (c *Choice) String() string {
	mode := fmt.Sprintf("depth %d", c.Depth)
	if c.Endgame {
		mode = fmt.Sprintf("endgame, %d empties", c.Depth)
	}
	if c.Random {
		mode += ", random"
	}
	return fmt.Sprintf("%v (Score: %d, Time: %.4f seconds, %s, %d nodes)",
		c.Move.BoardCoords(), c.Score, c.Elapsed.Seconds(), mode, c.Nodes)
}
