// Package bot picks moves for the computer side.
package bot

import (
	"context"
	"crypto/sha256"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/othellolab/othello/alphabeta"
	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/cache"
	"github.com/othellolab/othello/config"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/movegen"
	"github.com/othellolab/othello/zobrist"
)

// Player chooses moves with an alpha-beta search. It is not safe for
// concurrent use; give each goroutine its own Player.
type Player struct {
	solver    *alphabeta.Solver
	heuristic heuristic.Heuristic
	plies     int
	maxTime   time.Duration
	rng       *frand.RNG
}

// NewPlayer builds a player from the settings in cfg.
func NewPlayer(cfg *config.Config) (*Player, error) {
	h, err := heuristic.Parse(cfg.GetString(config.ConfigDefaultHeuristic))
	if err != nil {
		return nil, err
	}
	z, err := cache.Load(cfg, zobrist.CacheKey(cfg), zobrist.CacheLoadFunc)
	if err != nil {
		return nil, err
	}

	solver := alphabeta.NewSolver(h.Evaluator())
	solver.SetZobrist(z)
	solver.SetTranspositionTableOptim(cfg.GetBool(config.ConfigTranspositionTable))
	solver.SetMoveOrderingOptim(cfg.GetBool(config.ConfigMoveOrdering))
	solver.SetEndgameThreshold(cfg.GetInt(config.ConfigEndgameThreshold))
	solver.SetTTFractionOfMem(cfg.GetFloat64(config.ConfigTTFractionOfMem))

	p := &Player{
		solver:    solver,
		heuristic: h,
		plies:     cfg.GetInt(config.ConfigDefaultPlies),
		maxTime:   cfg.GetDuration(config.ConfigMaxTime),
	}
	p.SetSeed(cfg.GetString(config.ConfigRandomSeed))
	return p, nil
}

// SetSeed makes the random fallback reproducible. An empty seed uses
// fresh entropy.
func (p *Player) SetSeed(seed string) {
	if seed == "" {
		p.rng = frand.New()
		return
	}
	sum := sha256.Sum256([]byte(seed))
	p.rng = frand.NewCustom(sum[:], 1024, 12)
}

func (p *Player) SetHeuristic(h heuristic.Heuristic) {
	p.heuristic = h
	p.solver.SetEvaluator(h.Evaluator())
}

func (p *Player) Heuristic() heuristic.Heuristic {
	return p.heuristic
}

func (p *Player) SetPlies(plies int) {
	p.plies = plies
}

func (p *Player) Plies() int {
	return p.plies
}

// SetMaxTime turns on iterative deepening with a time budget. Zero means
// a single search at the full depth.
func (p *Player) SetMaxTime(d time.Duration) {
	p.maxTime = d
}

func (p *Player) SetLogStream(w io.Writer) {
	p.solver.SetLogStream(w)
}

func (p *Player) Solver() *alphabeta.Solver {
	return p.solver
}

// ChooseMove searches b for side and returns the chosen move. If the
// search yields no move (a depth of zero) it picks one of the legal moves
// at random. It returns ErrNoMoveAvailable if side has to pass.
func (p *Player) ChooseMove(ctx context.Context, b *board.Board, side board.Color) (*Choice, error) {
	tstart := time.Now()
	moves := movegen.GenAll(b, side)
	if len(moves) == 0 {
		return nil, ErrNoMoveAvailable
	}
	log.Debug().Str("side", side.String()).Int("plies", p.plies).
		Str("heuristic", p.heuristic.String()).Msg("ai-thinking")

	var res alphabeta.SearchResult
	var err error
	if p.maxTime > 0 {
		tctx, cancel := context.WithTimeout(ctx, p.maxTime)
		defer cancel()
		res, err = p.solver.IterativelyDeepen(tctx, b, side, p.plies)
	} else {
		res, err = p.solver.Solve(ctx, b, side, p.plies)
	}
	if err != nil {
		return nil, err
	}

	choice := &Choice{
		Move:    res.Move,
		Score:   res.Score,
		Depth:   p.solver.LastDepth(),
		Endgame: p.solver.LastWasEndgame(),
		Nodes:   p.solver.Nodes(),
	}
	if choice.Move == nil {
		choice.Move = moves[p.rng.Intn(len(moves))]
		choice.Random = true
	}
	choice.Elapsed = time.Since(tstart)
	log.Debug().Str("move", choice.Move.ShortDescription()).Int("score", choice.Score).
		Bool("random", choice.Random).Dur("elapsed", choice.Elapsed).Msg("ai-chose-move")
	return choice, nil
}

var (
	defaultPlayer     *Player
	defaultPlayerLock sync.Mutex
)

// ChooseAIMove is the one-call entry point: search b for side at
// plyDepth with heuristic h, using default settings for everything else.
func ChooseAIMove(b *board.Board, side board.Color, plyDepth int, h heuristic.Heuristic) (*Choice, error) {
	defaultPlayerLock.Lock()
	defer defaultPlayerLock.Unlock()
	if defaultPlayer == nil {
		cfg := config.DefaultConfig()
		p, err := NewPlayer(&cfg)
		if err != nil {
			return nil, err
		}
		defaultPlayer = p
	}
	defaultPlayer.SetHeuristic(h)
	defaultPlayer.SetPlies(plyDepth)
	return defaultPlayer.ChooseMove(context.Background(), b, side)
}
