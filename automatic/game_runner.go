// Package automatic plays computer-vs-computer games, for comparing
// heuristics and search depths over many games.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/othellolab/othello/ai/bot"
	"github.com/othellolab/othello/alphabeta"
	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/config"
	"github.com/othellolab/othello/game"
	"github.com/othellolab/othello/heuristic"
)

// LogHeader is the first line of the per-move CSV log.
const LogHeader = "gameID,turn,side,player,move,score,depth,nodes,dark,light\n"

// GameResult is the outcome of one autoplayed game.
type GameResult struct {
	GameID string
	Dark   int
	Light  int
	Winner board.Color
	Turns  int
}

// Differential is the final disc count from Dark's point of view.
func (g *GameResult) Differential() int {
	return g.Dark - g.Light
}

// GameRunner is the master struct here for the automatic game logic. It
// owns a bot for each side and is not safe for concurrent use.
type GameRunner struct {
	game         *game.Game
	config       *config.Config
	logchan      chan string
	players      [2]*bot.Player
	names        [2]string
	openingMoves int
}

func sideIdx(side board.Color) int {
	if side == board.Light {
		return 1
	}
	return 0
}

// NewGameRunner builds a runner with the bots and opening length in opts.
// The runner does not log until it is given a channel.
func NewGameRunner(cfg *config.Config, opts Options) (*GameRunner, error) {
	r := &GameRunner{config: cfg}
	if err := r.Init(opts.DarkHeuristic, opts.LightHeuristic, opts.DarkPlies, opts.LightPlies); err != nil {
		return nil, err
	}
	r.SetOpeningMoves(opts.OpeningMoves)
	return r, nil
}

// Init sets up the two bots.
func (r *GameRunner) Init(darkH, lightH heuristic.Heuristic, darkPlies, lightPlies int) error {
	hs := [2]heuristic.Heuristic{darkH, lightH}
	plies := [2]int{darkPlies, lightPlies}
	if darkPlies < 0 || lightPlies < 0 {
		return fmt.Errorf("plies %d/%d: %w", darkPlies, lightPlies, alphabeta.ErrNegativePlies)
	}
	for idx := range r.players {
		p, err := bot.NewPlayer(r.config)
		if err != nil {
			return err
		}
		p.SetHeuristic(hs[idx])
		p.SetPlies(plies[idx])
		r.players[idx] = p
		r.names[idx] = fmt.Sprintf("%s-%d", hs[idx], plies[idx])
	}
	return nil
}

// SetOpeningMoves makes every game start with n uniformly random moves so
// that deterministic bots do not replay the same game.
func (r *GameRunner) SetOpeningMoves(n int) {
	r.openingMoves = n
}

// PlayerName is the label used for side in logs and summaries.
func (r *GameRunner) PlayerName(side board.Color) string {
	return r.names[sideIdx(side)]
}

func (r *GameRunner) StartGame() {
	r.game = game.NewGame()
}

func (r *GameRunner) playRandomOpening(rng *frand.RNG) error {
	for i := 0; i < r.openingMoves && r.game.Playing() == game.StatePlaying; i++ {
		moves := r.game.LegalMoves()
		if err := r.game.PlayMove(moves[rng.Intn(len(moves))]); err != nil {
			return err
		}
	}
	return nil
}

// PlayBestTurn asks the bot on turn for a move and plays it.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	side := r.game.PlayerOnTurn()
	choice, err := r.players[sideIdx(side)].ChooseMove(ctx, r.game.Board(), side)
	if err != nil {
		return err
	}
	if err := r.game.PlayMove(choice.Move); err != nil {
		return err
	}
	if r.logchan != nil {
		dark, light := r.game.Score()
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			r.game.Uid(),
			r.game.Turn(),
			side,
			r.PlayerName(side),
			choice.Move.BoardCoords(),
			choice.Score,
			choice.Depth,
			choice.Nodes,
			dark,
			light)
	}
	return nil
}

func openingRNG(seed [32]byte) *frand.RNG {
	return frand.NewCustom(seed[:], 1024, 12)
}

// playFull plays one game to the end. The seed drives the random opening.
func (r *GameRunner) playFull(ctx context.Context, seed [32]byte) (*GameResult, error) {
	r.StartGame()
	if err := r.playRandomOpening(openingRNG(seed)); err != nil {
		return nil, err
	}
	for r.game.Playing() == game.StatePlaying {
		if err := r.PlayBestTurn(ctx); err != nil {
			return nil, err
		}
	}
	dark, light := r.game.Score()
	log.Debug().Str("game", r.game.Uid()).Int("dark", dark).Int("light", light).
		Msg("autoplay-game-over")
	return &GameResult{
		GameID: r.game.Uid(),
		Dark:   dark,
		Light:  light,
		Winner: r.game.Winner(),
		Turns:  r.game.Turn(),
	}, nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}
