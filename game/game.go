// Package game holds the live state of an Othello game: the board, the
// side on turn, and the history of moves. It enforces the rules; who
// chooses the moves (human or AI) is up to the caller.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/move"
	"github.com/othellolab/othello/movegen"
)

// PlayState is the state of the game as a whole.
type PlayState uint8

const (
	StatePlaying PlayState = iota
	StateGameOver
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrWrongSide     = errors.New("it is not that side's turn")
)

// Game is the actual internal game structure. It doesn't care how it is
// played; AI players, human players, etc. choose moves outside of it.
type Game struct {
	uid     string
	board   *board.Board
	onturn  board.Color
	playing PlayState
	turnnum int

	history    []Event
	stateStack []stateBackup
}

// NewGame starts a game from the standard opening with Dark to move.
func NewGame() *Game {
	g, _ := NewGameFromPosition(board.NewBoard(), board.Dark)
	return g
}

// NewGameFromPosition starts a game from any position. If onturn has no
// move the turn passes immediately, as it would in play.
func NewGameFromPosition(b *board.Board, onturn board.Color) (*Game, error) {
	if !onturn.IsSide() {
		return nil, fmt.Errorf("%v: %w", onturn, ErrWrongSide)
	}
	g := &Game{
		uid:    uuid.NewString(),
		board:  b.Copy(),
		onturn: onturn,
	}
	g.settle()
	log.Debug().Str("uid", g.uid).Str("onturn", g.onturn.String()).Msg("new-game")
	return g, nil
}

// settle records forced passes and detects the end of the game.
func (g *Game) settle() {
	if g.board.IsTerminal() {
		g.playing = StateGameOver
		return
	}
	g.playing = StatePlaying
	if !g.board.HasLegalMove(g.onturn) {
		log.Debug().Str("side", g.onturn.String()).Msg("forced-pass")
		g.history = append(g.history, g.newEvent(move.NewPassMove(g.onturn), 0))
		g.onturn = g.onturn.Opponent()
	}
}

func (g *Game) newEvent(m *move.Move, flips int) Event {
	dark, light := g.board.Score()
	return Event{
		Turn:  g.turnnum,
		Side:  m.Side(),
		Move:  m,
		Flips: flips,
		Dark:  dark,
		Light: light,
	}
}

// PlayMove plays a placement for the side on turn. An illegal placement
// leaves the game untouched and returns an error wrapping ErrIllegalMove.
// If the next side then has no move, a pass is recorded for it.
func (g *Game) PlayMove(m *move.Move) error {
	if g.playing == StateGameOver {
		return ErrGameOver
	}
	if m.IsPass() {
		return fmt.Errorf("pass: %w", ErrIllegalMove)
	}
	if m.Side() != g.onturn {
		return fmt.Errorf("%v for %v: %w", m.BoardCoords(), m.Side(), ErrWrongSide)
	}
	if !g.board.IsLegal(m.Row(), m.Col(), g.onturn) {
		return fmt.Errorf("%v: %w", m.BoardCoords(), ErrIllegalMove)
	}
	g.backupState()
	flips := g.board.Flip(m.Row(), m.Col(), g.onturn)
	g.turnnum++
	g.history = append(g.history, g.newEvent(m, len(flips)))
	g.onturn = g.onturn.Opponent()
	g.settle()
	log.Debug().Str("move", m.ShortDescription()).Int("flips", len(flips)).
		Int("turn", g.turnnum).Msg("played-move")
	return nil
}

// PlayCoords parses a coordinate like "c4" and plays it for the side on
// turn.
func (g *Game) PlayCoords(coords string) (*move.Move, error) {
	row, col, err := move.FromBoardGameCoords(coords)
	if err != nil {
		return nil, err
	}
	m := move.NewPlacementMove(row, col, g.onturn)
	if err := g.PlayMove(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LegalMoves lists the placements available to the side on turn.
func (g *Game) LegalMoves() []*move.Move {
	if g.playing == StateGameOver {
		return nil
	}
	return movegen.GenAll(g.board, g.onturn)
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	return g.board.Copy()
}

func (g *Game) PlayerOnTurn() board.Color {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) Uid() string {
	return g.uid
}

// Score returns the disc counts of both sides.
func (g *Game) Score() (dark, light int) {
	return g.board.Score()
}

// Winner returns the side with more discs, or Empty for a tie. It is only
// meaningful once the game is over.
func (g *Game) Winner() board.Color {
	dark, light := g.board.Score()
	switch {
	case dark > light:
		return board.Dark
	case light > dark:
		return board.Light
	}
	return board.Empty
}

// History returns the events of the game so far, passes included.
func (g *Game) History() []Event {
	return g.history
}

// LastMove returns the most recent event, or nil at the start.
func (g *Game) LastMove() *Event {
	if len(g.history) == 0 {
		return nil
	}
	return &g.history[len(g.history)-1]
}
