package alphabeta

import (
	"testing"

	"github.com/matryer/is"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/move"
	"github.com/othellolab/othello/movegen"
)

func TestOrderMoves(t *testing.T) {
	is := is.New(t)
	moves := []*move.Move{
		move.NewPlacementMove(3, 2, board.Dark), // c4, interior
		move.NewPlacementMove(1, 1, board.Dark), // b2, X-square
		move.NewPlacementMove(0, 3, board.Dark), // d1, edge
		move.NewPlacementMove(7, 7, board.Dark), // h8, corner
		move.NewPlacementMove(2, 2, board.Dark), // c3, interior
	}
	orderMoves(moves, noMove)
	is.Equal(movegen.Squares(moves), []board.Square{{Row: 7, Col: 7}, {Row: 0, Col: 3}, {Row: 3, Col: 2}, {Row: 2, Col: 2}, {Row: 1, Col: 1}})

	// the hash move jumps ahead of the corner
	orderMoves(moves, board.Square{Row: 1, Col: 1}.Index())
	is.Equal(moves[0].Square(), board.Square{Row: 1, Col: 1})
	is.Equal(moves[1].Square(), board.Square{Row: 7, Col: 7})
}

func TestOrderMovesStable(t *testing.T) {
	is := is.New(t)
	moves := movegen.GenAll(board.NewBoard(), board.Dark)
	// all four opening moves are interior squares with weight -1
	orderMoves(moves, noMove)
	is.Equal(movegen.Squares(moves), []board.Square{{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4}})
}
