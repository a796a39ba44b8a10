package game

import "github.com/othellolab/othello/board"

// stateBackup is a subset of Game, meant only for backup purposes. The
// board is a value, so each backup owns its own copy.
type stateBackup struct {
	board      board.Board
	onturn     board.Color
	playing    PlayState
	turnnum    int
	historyLen int
}

func (g *Game) backupState() {
	g.stateStack = append(g.stateStack, stateBackup{
		board:      *g.board,
		onturn:     g.onturn,
		playing:    g.playing,
		turnnum:    g.turnnum,
		historyLen: len(g.history),
	})
}

// UnplayLastMove takes back the last placement, along with any pass that
// it forced.
func (g *Game) UnplayLastMove() error {
	if len(g.stateStack) == 0 {
		return ErrNothingToUndo
	}
	st := g.stateStack[len(g.stateStack)-1]
	g.stateStack = g.stateStack[:len(g.stateStack)-1]
	*g.board = st.board
	g.onturn = st.onturn
	g.playing = st.playing
	g.turnnum = st.turnnum
	g.history = g.history[:st.historyLen]
	return nil
}

// CanUndo reports whether there is a placement to take back.
func (g *Game) CanUndo() bool {
	return len(g.stateStack) > 0
}
