package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/othellolab/othello/alphabeta"
	"github.com/othellolab/othello/automatic"
	"github.com/othellolab/othello/heuristic"
)

// autoplayOptions reads the autoplay command line on top of the
// configured defaults.
func (sc *ShellController) autoplayOptions(cmd *shellcmd) (automatic.Options, error) {
	opts, err := automatic.DefaultOptions(sc.config)
	if err != nil {
		return opts, err
	}
	if opts.NumGames, err = cmd.options.IntDefault("games", opts.NumGames); err != nil {
		return opts, err
	}
	if opts.Threads, err = cmd.options.IntDefault("threads", opts.Threads); err != nil {
		return opts, err
	}
	if opts.OpeningMoves, err = cmd.options.IntDefault("opening", opts.OpeningMoves); err != nil {
		return opts, err
	}
	if opts.DarkPlies, err = cmd.options.IntDefault("darkplies", opts.DarkPlies); err != nil {
		return opts, err
	}
	if opts.LightPlies, err = cmd.options.IntDefault("lightplies", opts.LightPlies); err != nil {
		return opts, err
	}
	if v := cmd.options.String("dark"); v != "" {
		if opts.DarkHeuristic, err = heuristic.Parse(v); err != nil {
			return opts, err
		}
	}
	if v := cmd.options.String("light"); v != "" {
		if opts.LightHeuristic, err = heuristic.Parse(v); err != nil {
			return opts, err
		}
	}
	if v := cmd.options.String("file"); v != "" {
		opts.OutputFilename = v
	}
	if v := cmd.options.String("seeds"); v != "" {
		seeds, err := automatic.LoadSeeds(v)
		if err != nil {
			return opts, err
		}
		opts.Seeds = seeds
	}
	if opts.NumGames <= 0 {
		return opts, errors.New("games must be positive")
	}
	if opts.OpeningMoves < 0 {
		return opts, errors.New("opening must not be negative")
	}
	if opts.DarkPlies < 0 || opts.LightPlies < 0 {
		return opts, fmt.Errorf("darkplies %d, lightplies %d: %w",
			opts.DarkPlies, opts.LightPlies, alphabeta.ErrNegativePlies)
	}
	return opts, nil
}

func (sc *ShellController) autoplayRunning() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

// autoplay runs computer-vs-computer games. In the interactive shell it
// runs in the background until finished or `autoplay stop`; otherwise it
// blocks and returns the summary.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			if !sc.autoplayRunning() {
				return nil, errors.New("no autoplay running")
			}
			sc.autoplayCancel()
			return msg("stopping autoplay; finished games will be summarized"), nil
		case "analyze":
			if len(cmd.args) < 2 {
				return nil, errors.New("usage: autoplay analyze <logfile>")
			}
			summary, err := automatic.AnalyzeLogFile(cmd.args[1])
			if err != nil {
				return nil, err
			}
			return msg(summary.String()), nil
		default:
			return nil, fmt.Errorf("unknown autoplay argument %q", cmd.args[0])
		}
	}
	if sc.autoplayRunning() {
		return nil, errAutoplayRunning
	}
	opts, err := sc.autoplayOptions(cmd)
	if err != nil {
		return nil, err
	}
	header := fmt.Sprintf("autoplay: %d games, %d threads, dark %v-%d vs light %v-%d, logging to %s",
		opts.NumGames, opts.Threads, opts.DarkHeuristic, opts.DarkPlies,
		opts.LightHeuristic, opts.LightPlies, opts.OutputFilename)

	if !sc.interactive {
		summary, err := automatic.CompVsComp(context.Background(), sc.config, opts)
		if err != nil {
			return nil, err
		}
		return msg(strings.Join([]string{header, summary.String()}, "\n")), nil
	}

	// players are built here so a later `set` cannot race their setup
	a, err := automatic.NewAutoplay(sc.config, opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	done := make(chan struct{})
	sc.autoplayDone = done
	go func() {
		defer close(done)
		defer cancel()
		summary, err := a.Run(ctx)
		if err != nil {
			log.Err(err).Msg("autoplay-failed")
			sc.showError(err)
			return
		}
		sc.showMessage(summary.String())
	}()
	return msg(header + "\nautoplay started; `autoplay stop` to stop early"), nil
}
