// Package alphabeta implements the move search: depth-limited minimax
// with alpha-beta pruning, plus an exact solver for the last few empties.
package alphabeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/move"
	"github.com/othellolab/othello/movegen"
	"github.com/othellolab/othello/zobrist"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

const (
	// Infinity is larger than any score an evaluator can return.
	Infinity = 1 << 30
	// DefaultEndgameThreshold is the number of empties at or below which
	// Solve searches to the end of the game.
	DefaultEndgameThreshold = 10
	// DefaultTTFractionOfMem is the share of system memory the
	// transposition table aims for (subject to its size cap).
	DefaultTTFractionOfMem = 0.01
)

var ErrNegativePlies = errors.New("plies must not be negative")

// SearchResult is the outcome of a search. Score is from the root side's
// point of view. Move is nil when the root side has no legal move or the
// depth was zero.
type SearchResult struct {
	Score int
	Move  *move.Move
}

// RootMoveLog is written to the log stream once per root move.
type RootMoveLog struct {
	Depth int    `yaml:"depth"`
	Move  string `yaml:"move"`
	Score int    `yaml:"score"`
	Alpha int    `yaml:"alpha"`
	Beta  int    `yaml:"beta"`
	Nodes uint64 `yaml:"nodes"`
}

type Solver struct {
	evaluator        heuristic.Evaluator
	endgameEvaluator heuristic.Evaluator
	zobrist          *zobrist.Zobrist
	ttable           *TranspositionTable
	ttFractionOfMem  float64

	transpositionTableOptim bool
	moveOrderingOptim       bool
	pruningDisabled         bool
	endgameThreshold        int

	principalVariation PVLine
	lastDepth          int
	lastEndgame        bool
	nodes              atomic.Uint64

	logStream  io.Writer
	logEncoder *yaml.Encoder
}

// NewSolver creates a solver that scores leaves with eval. The
// transposition table and move ordering are on by default.
func NewSolver(eval heuristic.Evaluator) *Solver {
	z := &zobrist.Zobrist{}
	z.Initialize()
	return &Solver{
		evaluator:               eval,
		endgameEvaluator:        heuristic.EvaluatorFunc(heuristic.CoinParityScore),
		zobrist:                 z,
		ttable:                  &TranspositionTable{},
		ttFractionOfMem:         DefaultTTFractionOfMem,
		transpositionTableOptim: true,
		moveOrderingOptim:       true,
		endgameThreshold:        DefaultEndgameThreshold,
	}
}

// Search runs a single fixed-depth alpha-beta search from b. maximizing
// says whether rootSide is on turn at b; every score is from rootSide's
// point of view. b itself is never modified.
func (s *Solver) Search(b *board.Board, depth int, α, β int, maximizing bool, rootSide board.Color) SearchResult {
	stm := rootSide
	if !maximizing {
		stm = rootSide.Opponent()
	}
	tstart := time.Now()
	s.nodes.Store(0)
	if s.transpositionTableOptim {
		s.ttable.Reset(s.ttFractionOfMem)
	}
	if s.logStream != nil {
		s.logEncoder = yaml.NewEncoder(s.logStream)
		defer func() {
			if err := s.logEncoder.Close(); err != nil {
				log.Err(err).Msg("closing-search-log")
			}
			s.logEncoder = nil
		}()
	}

	pv := PVLine{}
	key := s.zobrist.Hash(b, stm)
	score, best := s.alphabeta(b, key, 0, depth, depth, α, β, maximizing, rootSide, &pv)
	s.principalVariation = pv

	ev := log.Debug().
		Int("depth", depth).
		Int("score", score).
		Str("move", best.ShortDescription()).
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds())
	if s.transpositionTableOptim {
		ev = ev.Uint64("ttable-created", s.ttable.created.Load()).
			Uint64("ttable-lookups", s.ttable.lookups.Load()).
			Uint64("ttable-hits", s.ttable.hits.Load()).
			Uint64("ttable-t2collisions", s.ttable.t2collisions.Load())
	}
	ev.Str("pv", pv.String()).Msg("search-returning")

	return SearchResult{Score: score, Move: best}
}

func (s *Solver) alphabeta(b *board.Board, key uint64, ply, depth, rootDepth int,
	α, β int, maximizing bool, rootSide board.Color, pv *PVLine) (int, *move.Move) {

	s.nodes.Add(1)
	if depth <= 0 {
		return s.evaluator.Evaluate(b, rootSide), nil
	}

	stm := rootSide
	if !maximizing {
		stm = rootSide.Opponent()
	}
	children := movegen.GenAll(b, stm)
	if len(children) == 0 {
		if !b.HasLegalMove(stm.Opponent()) {
			// game over
			return s.evaluator.Evaluate(b, rootSide), nil
		}
		// Forced pass. It does not use up depth.
		childPV := PVLine{}
		score, _ := s.alphabeta(b, s.zobrist.Pass(key), ply+1, depth, rootDepth,
			α, β, !maximizing, rootSide, &childPV)
		pv.Update(move.NewPassMove(stm), childPV, score)
		return score, nil
	}

	alphaOrig, betaOrig := α, β
	hashMove := noMove

	// The root always searches, so that it can return a move.
	if s.transpositionTableOptim && ply > 0 {
		entry := s.ttable.lookup(key)
		if entry.valid() {
			hashMove = int(entry.play)
			// Only an exact depth match gives the same value a fresh
			// search would.
			if int(entry.depth) == depth {
				score := int(entry.score)
				var cut bool
				switch entry.flag {
				case TTExact:
					cut = true
				case TTLower:
					α = max(α, score)
				case TTUpper:
					β = min(β, score)
				}
				if cut || α >= β {
					pv.Clear()
					var m *move.Move
					if hashMove != noMove {
						m = move.NewPlacementMove(hashMove/board.Dim, hashMove%board.Dim, stm)
						pv.Moves = append(pv.Moves, m)
					}
					return score, m
				}
			}
		}
	}

	if s.moveOrderingOptim {
		orderMoves(children, hashMove)
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}
	var bestMove *move.Move
	childPV := PVLine{}
	for _, child := range children {
		nb := *b
		flips := nb.Flip(child.Row(), child.Col(), stm)
		childKey := s.zobrist.AddMove(key, child.Square(), flips, stm)
		value, _ := s.alphabeta(&nb, childKey, ply+1, depth-1, rootDepth,
			α, β, !maximizing, rootSide, &childPV)

		if ply == 0 {
			s.logRootMove(rootDepth, child, value, α, β)
		}

		if maximizing {
			if bestMove == nil || value > best {
				best = value
				bestMove = child
				pv.Update(child, childPV, best)
			}
			if !s.pruningDisabled {
				α = max(α, best)
			}
		} else {
			if bestMove == nil || value < best {
				best = value
				bestMove = child
				pv.Update(child, childPV, best)
			}
			if !s.pruningDisabled {
				β = min(β, best)
			}
		}
		if !s.pruningDisabled && β <= α {
			break
		}
		childPV.Clear()
	}

	if s.transpositionTableOptim && ply > 0 {
		var flag uint8
		if best <= alphaOrig {
			flag = TTUpper
		} else if best >= betaOrig {
			flag = TTLower
		} else {
			flag = TTExact
		}
		s.ttable.store(key, TableEntry{
			score: int32(best),
			depth: uint8(depth),
			flag:  flag,
			play:  uint8(bestMove.Square().Index()),
		})
	}
	return best, bestMove
}

func (s *Solver) logRootMove(depth int, m *move.Move, value, α, β int) {
	if s.logEncoder == nil {
		return
	}
	err := s.logEncoder.Encode(RootMoveLog{
		Depth: depth,
		Move:  m.ShortDescription(),
		Score: value,
		Alpha: α,
		Beta:  β,
		Nodes: s.nodes.Load(),
	})
	if err != nil {
		log.Err(err).Msg("writing-search-log")
	}
}

// Solve picks the search depth for b and searches it with side on turn.
// With endgameThreshold or fewer empties it searches to the end of the
// game using the final disc differential, so the score is exact; otherwise
// it searches plies deep with the configured evaluator.
func (s *Solver) Solve(ctx context.Context, b *board.Board, side board.Color, plies int) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}
	if plies < 0 {
		return SearchResult{}, fmt.Errorf("%d: %w", plies, ErrNegativePlies)
	}
	depth := plies
	s.lastEndgame = false
	if empties := b.Empties(); empties <= s.endgameThreshold {
		depth = empties
		s.lastEndgame = true
		log.Debug().Int("empties", empties).Msg("endgame-mode")
		saved := s.evaluator
		s.evaluator = s.endgameEvaluator
		defer func() { s.evaluator = saved }()
	}
	s.lastDepth = depth
	return s.Search(b, depth, -Infinity, Infinity, true, side), nil
}

// IterativelyDeepen searches depth 1, 2, ... up to maxPlies and returns
// the deepest completed result. ctx is only looked at between depths; a
// depth that has started always finishes. Depth 1 always runs.
func (s *Solver) IterativelyDeepen(ctx context.Context, b *board.Board, side board.Color, maxPlies int) (SearchResult, error) {
	if b.Empties() <= s.endgameThreshold || maxPlies <= 1 {
		return s.Solve(context.Background(), b, side, maxPlies)
	}
	var res SearchResult
	for p := 1; p <= maxPlies; p++ {
		if p > 1 && ctx.Err() != nil {
			log.Debug().Int("completed-plies", p-1).Msg("deepening-stopped")
			break
		}
		log.Debug().Int("plies", p).Msg("deepening-iteratively")
		r, err := s.Solve(context.Background(), b, side, p)
		if err != nil {
			return res, err
		}
		res = r
	}
	return res, nil
}

// Nodes is the number of nodes visited by the last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) PrincipalVariation() PVLine {
	return s.principalVariation
}

// LastDepth is the depth actually searched by the last Solve.
func (s *Solver) LastDepth() int {
	return s.lastDepth
}

// LastWasEndgame reports whether the last Solve ran in endgame mode.
func (s *Solver) LastWasEndgame() bool {
	return s.lastEndgame
}

func (s *Solver) Evaluator() heuristic.Evaluator {
	return s.evaluator
}

func (s *Solver) SetEvaluator(e heuristic.Evaluator) {
	s.evaluator = e
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetMoveOrderingOptim(o bool) {
	s.moveOrderingOptim = o
}

// SetPruningDisabled turns the search into plain minimax. It is much
// slower and only meant for checking the pruned search.
func (s *Solver) SetPruningDisabled(d bool) {
	s.pruningDisabled = d
}

func (s *Solver) SetEndgameThreshold(n int) {
	s.endgameThreshold = n
}

func (s *Solver) SetTTFractionOfMem(f float64) {
	s.ttFractionOfMem = f
}

func (s *Solver) SetZobrist(z *zobrist.Zobrist) {
	s.zobrist = z
}

// SetLogStream makes every following search write one YAML document per
// root move to l. Pass nil to stop logging.
func (s *Solver) SetLogStream(l io.Writer) {
	s.logStream = l
}
