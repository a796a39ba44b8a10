// Package movegen enumerates the legal placements for a side.
package movegen

import (
	"github.com/samber/lo"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/move"
)

// allSquares holds every square in row-major order.
var allSquares = func() []board.Square {
	sqs := make([]board.Square, 0, board.NumSquares)
	for r := 0; r < board.Dim; r++ {
		for c := 0; c < board.Dim; c++ {
			sqs = append(sqs, board.Square{Row: r, Col: c})
		}
	}
	return sqs
}()

// GenAll returns every legal placement for side in row-major order (row 0
// first, column 0 first within a row). It never returns a pass; an empty
// result means side must pass.
func GenAll(b *board.Board, side board.Color) []*move.Move {
	if !side.IsSide() {
		return nil
	}
	return lo.FilterMap(allSquares, func(sq board.Square, _ int) (*move.Move, bool) {
		if !b.IsLegal(sq.Row, sq.Col, side) {
			return nil, false
		}
		return move.NewPlacementMove(sq.Row, sq.Col, side), true
	})
}

// HasMove reports whether side has at least one legal placement.
func HasMove(b *board.Board, side board.Color) bool {
	return b.HasLegalMove(side)
}

// Mobility is the number of legal placements for side.
func Mobility(b *board.Board, side board.Color) int {
	if !side.IsSide() {
		return 0
	}
	return lo.CountBy(allSquares, func(sq board.Square) bool {
		return b.IsLegal(sq.Row, sq.Col, side)
	})
}

// Squares lists the squares of the given moves, in order.
func Squares(moves []*move.Move) []board.Square {
	return lo.Map(moves, func(m *move.Move, _ int) board.Square {
		return m.Square()
	})
}

// FindMove returns the generated move matching (row, col), or nil if that
// placement is not legal.
func FindMove(moves []*move.Move, row, col int) *move.Move {
	m, ok := lo.Find(moves, func(m *move.Move) bool {
		return m.Row() == row && m.Col() == col
	})
	if !ok {
		return nil
	}
	return m
}
