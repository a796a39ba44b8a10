// Package heuristic holds the static evaluators used at the leaves of the
// search. Every evaluator scores a position from one side's point of view:
// positive favors that side.
package heuristic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/othellolab/othello/board"
)

// Evaluator is a static evaluator of a board position.
type Evaluator interface {
	Evaluate(b *board.Board, side board.Color) int
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(b *board.Board, side board.Color) int

func (f EvaluatorFunc) Evaluate(b *board.Board, side board.Color) int {
	return f(b, side)
}

// Heuristic selects one of the built-in evaluators.
type Heuristic uint8

const (
	CoinParity Heuristic = iota + 1
	Weighted
	Mobility
	Composite
)

var (
	ErrUnknownHeuristic = errors.New("unknown heuristic")
)

var heuristicNames = map[Heuristic]string{
	CoinParity: "coin",
	Weighted:   "weighted",
	Mobility:   "mobility",
	Composite:  "composite",
}

func (h Heuristic) String() string {
	if n, ok := heuristicNames[h]; ok {
		return n
	}
	return fmt.Sprintf("heuristic(%d)", uint8(h))
}

// Parse reads a heuristic by name or by its number (1-4). A few longer
// names are accepted as well.
func Parse(s string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "h1", "coin", "coin-parity", "parity":
		return CoinParity, nil
	case "2", "h2", "weighted", "weights", "positional":
		return Weighted, nil
	case "3", "h3", "mobility":
		return Mobility, nil
	case "4", "h4", "composite", "strong":
		return Composite, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownHeuristic)
}

// Evaluator returns the evaluator for h. Unknown values fall back to
// coin parity.
func (h Heuristic) Evaluator() Evaluator {
	switch h {
	case Weighted:
		return EvaluatorFunc(WeightedScore)
	case Mobility:
		return EvaluatorFunc(MobilityScore)
	case Composite:
		return EvaluatorFunc(CompositeScore)
	}
	return EvaluatorFunc(CoinParityScore)
}

// All lists the built-in heuristics in selector order.
func All() []Heuristic {
	return []Heuristic{CoinParity, Weighted, Mobility, Composite}
}
