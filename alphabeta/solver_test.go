package alphabeta

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/movegen"
	"github.com/othellolab/othello/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func randomPositions(seed byte, n int, keep func(b *board.Board) bool) ([]*board.Board, []board.Color) {
	return testhelpers.RandomPositions(testhelpers.RNG(seed), n, keep)
}

func midgamePositions(seed byte, n int) ([]*board.Board, []board.Color) {
	rng := testhelpers.RNG(seed + 100)
	return randomPositions(seed, n, func(b *board.Board) bool {
		return b.Discs() >= 8 && b.Discs() <= 50 && rng.Intn(12) == 0
	})
}

func referenceSolver(h heuristic.Heuristic) *Solver {
	s := NewSolver(h.Evaluator())
	s.SetPruningDisabled(true)
	s.SetTranspositionTableOptim(false)
	s.SetMoveOrderingOptim(false)
	return s
}

func TestPrunedMatchesMinimax(t *testing.T) {
	is := is.New(t)
	boards, sides := midgamePositions(1, 12)
	is.Equal(len(boards), 12)
	for _, h := range heuristic.All() {
		fast := NewSolver(h.Evaluator())
		slow := referenceSolver(h)
		for i, b := range boards {
			for depth := 1; depth <= 3; depth++ {
				r1 := fast.Search(b, depth, -Infinity, Infinity, true, sides[i])
				r2 := slow.Search(b, depth, -Infinity, Infinity, true, sides[i])
				if r1.Score != r2.Score {
					t.Fatalf("%v depth %d on %s: pruned %d, minimax %d",
						h, depth, b.ToPositionString(), r1.Score, r2.Score)
				}
			}
		}
	}
}

func TestOptimizationsDoNotChangeScore(t *testing.T) {
	is := is.New(t)
	boards, sides := midgamePositions(2, 10)
	is.True(len(boards) > 0)
	type combo struct{ tt, ordering bool }
	combos := []combo{{true, true}, {true, false}, {false, true}, {false, false}}
	for i, b := range boards {
		var scores []int
		for _, c := range combos {
			s := NewSolver(heuristic.Composite.Evaluator())
			s.SetTranspositionTableOptim(c.tt)
			s.SetMoveOrderingOptim(c.ordering)
			scores = append(scores, s.Search(b, 4, -Infinity, Infinity, true, sides[i]).Score)
		}
		for _, sc := range scores[1:] {
			is.Equal(sc, scores[0])
		}
	}
}

// bruteForce is a plain minimax to the end of the game.
func bruteForce(b *board.Board, stm, rootSide board.Color) int {
	moves := movegen.GenAll(b, stm)
	if len(moves) == 0 {
		if !b.HasLegalMove(stm.Opponent()) {
			return b.DiscDifferential(rootSide)
		}
		return bruteForce(b, stm.Opponent(), rootSide)
	}
	best := 0
	for i, m := range moves {
		nb := *b
		nb.ApplyMove(m.Row(), m.Col(), stm)
		v := bruteForce(&nb, stm.Opponent(), rootSide)
		if i == 0 || (stm == rootSide && v > best) || (stm != rootSide && v < best) {
			best = v
		}
	}
	return best
}

func TestEndgameIsExact(t *testing.T) {
	is := is.New(t)
	boards, sides := randomPositions(3, 15, func(b *board.Board) bool {
		return b.Empties() <= 8
	})
	is.Equal(len(boards), 15)
	s := NewSolver(heuristic.Weighted.Evaluator())
	for i, b := range boards {
		res, err := s.Solve(context.Background(), b, sides[i], 2)
		is.NoErr(err)
		is.True(s.LastWasEndgame())
		is.Equal(s.LastDepth(), b.Empties())
		is.Equal(res.Score, bruteForce(b, sides[i], sides[i]))
		is.True(res.Move != nil)
		is.True(b.IsLegal(res.Move.Row(), res.Move.Col(), sides[i]))
	}
	// the configured evaluator is back after the endgame search
	is.Equal(s.Evaluator().Evaluate(boards[0], sides[0]),
		heuristic.WeightedScore(boards[0], sides[0]))
}

func TestEndgameThresholdRespected(t *testing.T) {
	is := is.New(t)
	boards, sides := randomPositions(4, 1, func(b *board.Board) bool {
		return b.Empties() == 12
	})
	is.Equal(len(boards), 1)
	s := NewSolver(heuristic.Composite.Evaluator())
	_, err := s.Solve(context.Background(), boards[0], sides[0], 3)
	is.NoErr(err)
	is.True(!s.LastWasEndgame())
	is.Equal(s.LastDepth(), 3)

	s.SetEndgameThreshold(12)
	_, err = s.Solve(context.Background(), boards[0], sides[0], 3)
	is.NoErr(err)
	is.True(s.LastWasEndgame())
	is.Equal(s.LastDepth(), 12)
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	boards, sides := midgamePositions(5, 5)
	s := NewSolver(heuristic.Composite.Evaluator())
	for i, b := range boards {
		r1 := s.Search(b, 4, -Infinity, Infinity, true, sides[i])
		r2 := s.Search(b, 4, -Infinity, Infinity, true, sides[i])
		is.Equal(r1.Score, r2.Score)
		is.True(r1.Move.Equals(r2.Move))
	}
}

func TestDepthZero(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	is.True(b.ApplyMove(2, 3, board.Dark))
	s := NewSolver(heuristic.CoinParity.Evaluator())
	res := s.Search(b, 0, -Infinity, Infinity, true, board.Light)
	is.True(res.Move == nil)
	is.Equal(res.Score, -3)
}

func TestOpeningSearchReturnsLegalMove(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	before := *b
	for _, h := range heuristic.All() {
		s := NewSolver(h.Evaluator())
		for depth := 1; depth <= 4; depth++ {
			res := s.Search(b, depth, -Infinity, Infinity, true, board.Dark)
			is.True(res.Move != nil)
			is.True(b.IsLegal(res.Move.Row(), res.Move.Col(), board.Dark))
		}
	}
	is.Equal(*b, before)
}

func TestRootMustPass(t *testing.T) {
	is := is.New(t)
	b := board.MustParsePosition("OX....../......../......../......../......../......../......../........")
	s := NewSolver(heuristic.CoinParity.Evaluator())
	res := s.Search(b, 3, -Infinity, Infinity, true, board.Dark)
	is.True(res.Move == nil)
	// Light takes b1 with c1 and Dark is wiped out.
	is.Equal(res.Score, -3)
	pv := s.PrincipalVariation()
	is.True(len(pv.Moves) >= 2)
	is.True(pv.Moves[0].IsPass())
	is.Equal(pv.Moves[1].BoardCoords(), "c1")
}

func TestTerminalRoot(t *testing.T) {
	is := is.New(t)
	b := board.MustParsePosition("XX....O./......../......../......../......../......../......../........")
	is.True(b.IsTerminal())
	s := NewSolver(heuristic.Composite.Evaluator())
	res := s.Search(b, 4, -Infinity, Infinity, true, board.Light)
	is.True(res.Move == nil)
	is.Equal(res.Score, -1*heuristic.TerminalMultiplier)
}

func TestMinimizingRoot(t *testing.T) {
	is := is.New(t)
	boards, sides := midgamePositions(6, 4)
	fast := NewSolver(heuristic.Weighted.Evaluator())
	slow := referenceSolver(heuristic.Weighted)
	for i, b := range boards {
		// the opponent of sides[i] is the root side, but sides[i] moves
		root := sides[i].Opponent()
		r1 := fast.Search(b, 3, -Infinity, Infinity, false, root)
		r2 := slow.Search(b, 3, -Infinity, Infinity, false, root)
		is.Equal(r1.Score, r2.Score)
		is.True(b.IsLegal(r1.Move.Row(), r1.Move.Col(), sides[i]))
	}
}

func TestPVStartsWithBestMove(t *testing.T) {
	is := is.New(t)
	boards, sides := midgamePositions(7, 5)
	s := NewSolver(heuristic.Composite.Evaluator())
	for i, b := range boards {
		res := s.Search(b, 3, -Infinity, Infinity, true, sides[i])
		pv := s.PrincipalVariation()
		is.True(pv.GetPVMove().Equals(res.Move))
		is.Equal(pv.Score(), res.Score)
	}
}

func TestSearchLogStream(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	s := NewSolver(heuristic.Composite.Evaluator())
	s.SetLogStream(&buf)
	b := board.NewBoard()
	res := s.Search(b, 3, -Infinity, Infinity, true, board.Dark)
	s.SetLogStream(nil)

	dec := yaml.NewDecoder(&buf)
	var records []RootMoveLog
	for {
		var r RootMoveLog
		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			break
		}
		is.NoErr(err)
		records = append(records, r)
	}
	is.Equal(len(records), movegen.Mobility(b, board.Dark))
	found := false
	for _, r := range records {
		is.Equal(r.Depth, 3)
		if r.Move == res.Move.BoardCoords() {
			found = true
		}
	}
	is.True(found)
}

func TestIterativelyDeepen(t *testing.T) {
	is := is.New(t)
	boards, sides := midgamePositions(8, 3)
	s := NewSolver(heuristic.Composite.Evaluator())
	for i, b := range boards {
		full, err := s.IterativelyDeepen(context.Background(), b, sides[i], 4)
		is.NoErr(err)
		is.Equal(s.LastDepth(), 4)
		direct, err := s.Solve(context.Background(), b, sides[i], 4)
		is.NoErr(err)
		is.Equal(full.Score, direct.Score)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		shallow, err := s.IterativelyDeepen(ctx, b, sides[i], 4)
		is.NoErr(err)
		is.Equal(s.LastDepth(), 1)
		is.True(shallow.Move != nil)
	}
}

func TestSolveCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSolver(heuristic.Composite.Evaluator())
	_, err := s.Solve(ctx, board.NewBoard(), board.Dark, 3)
	is.True(errors.Is(err, context.Canceled))
}

func TestNegativePliesRejected(t *testing.T) {
	is := is.New(t)
	s := NewSolver(heuristic.CoinParity.Evaluator())
	_, err := s.Solve(context.Background(), board.NewBoard(), board.Dark, -1)
	is.True(errors.Is(err, ErrNegativePlies))
	_, err = s.IterativelyDeepen(context.Background(), board.NewBoard(), board.Dark, -3)
	is.True(errors.Is(err, ErrNegativePlies))

	// a negative depth handed straight to Search is a leaf
	res := s.Search(board.NewBoard(), -1, -Infinity, Infinity, true, board.Dark)
	is.True(res.Move == nil)
	is.Equal(res.Score, 0)
	is.Equal(s.Nodes(), uint64(1))
}

func TestNodeCount(t *testing.T) {
	is := is.New(t)
	fast := NewSolver(heuristic.Weighted.Evaluator())
	slow := referenceSolver(heuristic.Weighted)
	b := board.NewBoard()
	fast.Search(b, 5, -Infinity, Infinity, true, board.Dark)
	slow.Search(b, 5, -Infinity, Infinity, true, board.Dark)
	is.True(fast.Nodes() > 0)
	is.True(fast.Nodes() < slow.Nodes())
}
