package automatic

// Computer vs computer games over a pool of workers.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/othellolab/othello/config"
	"github.com/othellolab/othello/heuristic"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

var (
	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
	ErrNotEnoughSeeds = errors.New("fewer seeds than games")
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Options describes an autoplay run.
type Options struct {
	NumGames       int
	Threads        int
	OutputFilename string
	DarkHeuristic  heuristic.Heuristic
	LightHeuristic heuristic.Heuristic
	DarkPlies      int
	LightPlies     int
	OpeningMoves   int
	// Seeds drive the random opening of each game. If nil, they come from
	// the random-seed setting, or fresh entropy when that is empty.
	Seeds [][32]byte
}

// DefaultOptions fills Options from the config.
func DefaultOptions(cfg *config.Config) (Options, error) {
	h, err := heuristic.Parse(cfg.GetString(config.ConfigDefaultHeuristic))
	if err != nil {
		return Options{}, err
	}
	plies := cfg.GetInt(config.ConfigDefaultPlies)
	return Options{
		NumGames:       100,
		Threads:        cfg.GetInt(config.ConfigAutoplayThreads),
		OutputFilename: cfg.GetString(config.ConfigAutoplayLog),
		DarkHeuristic:  h,
		LightHeuristic: h,
		DarkPlies:      plies,
		LightPlies:     plies,
		OpeningMoves:   4,
	}, nil
}

// Autoplay is a computer-vs-computer run that has been set up but not
// started. All config reads happen in NewAutoplay, so Run may go on in
// the background while the config changes.
type Autoplay struct {
	opts    Options
	seeds   [][32]byte
	runners []*GameRunner
}

// NewAutoplay validates opts and builds one GameRunner per thread.
func NewAutoplay(cfg *config.Config, opts Options) (*Autoplay, error) {
	seeds := opts.Seeds
	if seeds == nil {
		if s := cfg.GetString(config.ConfigRandomSeed); s != "" {
			seeds = SeedsFromString(s, opts.NumGames)
		} else {
			seeds = GenerateSeeds(opts.NumGames)
		}
	}
	if len(seeds) < opts.NumGames {
		return nil, ErrNotEnoughSeeds
	}
	runners := make([]*GameRunner, max(1, opts.Threads))
	for t := range runners {
		r, err := NewGameRunner(cfg, opts)
		if err != nil {
			return nil, err
		}
		runners[t] = r
	}
	return &Autoplay{opts: opts, seeds: seeds, runners: runners}, nil
}

// CompVsComp plays opts.NumGames games and returns a summary of the
// results. A cancelled ctx stops handing out new games; games already
// started are finished and included in the summary.
func CompVsComp(ctx context.Context, cfg *config.Config, opts Options) (*Summary, error) {
	a, err := NewAutoplay(cfg, opts)
	if err != nil {
		return nil, err
	}
	return a.Run(ctx)
}

// startLogWriter writes every line sent on the returned channel to path.
// After a write error it keeps draining the channel, so games never block
// on it, and calls onErr once. The writer group returns the first error.
func startLogWriter(writer *errgroup.Group, path string, onErr func()) (chan string, error) {
	logfile, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	logChan := make(chan string, 100)
	writer.Go(func() error {
		defer logfile.Close()
		_, werr := logfile.WriteString(LogHeader)
		if werr != nil {
			onErr()
		}
		for msg := range logChan {
			if werr != nil {
				continue
			}
			if _, werr = logfile.WriteString(msg); werr != nil {
				log.Err(werr).Str("path", path).Msg("autoplay-log-write-failed")
				onErr()
			}
		}
		log.Debug().Msg("autoplay-logger-exiting")
		return werr
	})
	return logChan, nil
}

// Run plays the games. A log write failure stops handing out new games
// and is returned once the games in progress finish.
func (a *Autoplay) Run(ctx context.Context) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var logChan chan string
	writer := errgroup.Group{}
	if a.opts.OutputFilename != "" {
		var err error
		if logChan, err = startLogWriter(&writer, a.opts.OutputFilename, cancel); err != nil {
			return nil, err
		}
	}

	log.Info().Int("games", a.opts.NumGames).Int("threads", len(a.runners)).Msg("autoplay-starting")
	CVCCounter.Set(0)
	results := make([]*GameResult, a.opts.NumGames)
	jobs := make(chan int, 100)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < a.opts.NumGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("got stop signal, exiting soon")
				return nil
			}
		}
		return nil
	})

	for _, r := range a.runners {
		r := r
		r.logchan = logChan
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for idx := range jobs {
				if gctx.Err() != nil {
					continue
				}
				res, err := r.playFull(context.WithoutCancel(gctx), a.seeds[idx])
				if err != nil {
					return fmt.Errorf("game %d: %w", idx, err)
				}
				results[idx] = res
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	if logChan != nil {
		close(logChan)
		if werr := writer.Wait(); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int64("games", CVCCounter.Value()).Msg("autoplay-finished")

	summary := NewSummary(a.runners[0].names[0], a.runners[0].names[1])
	for _, res := range lo.Filter(results, func(r *GameResult, _ int) bool { return r != nil }) {
		summary.Add(res)
	}
	return summary, nil
}
