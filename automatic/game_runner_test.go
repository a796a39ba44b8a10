package automatic

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/othellolab/othello/alphabeta"
	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func defaultRunner(t *testing.T) *GameRunner {
	t.Helper()
	cfg := testhelpers.Config()
	opts, err := DefaultOptions(cfg)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewGameRunner(cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPlayFullGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 200)
	runner := defaultRunner(t)
	runner.logchan = logchan
	runner.SetOpeningMoves(2)

	res, err := runner.playFull(context.Background(), SeedsFromString("one", 1)[0])
	is.NoErr(err)
	close(logchan)

	is.True(runner.Game().Board().IsTerminal())
	is.True(res.Dark+res.Light <= board.NumSquares)
	dark, light := runner.Game().Score()
	is.Equal(res.Dark, dark)
	is.Equal(res.Light, light)
	switch {
	case dark > light:
		is.Equal(res.Winner, board.Dark)
	case light > dark:
		is.Equal(res.Winner, board.Light)
	default:
		is.Equal(res.Winner, board.Empty)
	}

	// only bot moves are logged, and the last line carries the final count
	var lines []string
	for l := range logchan {
		lines = append(lines, l)
	}
	is.True(len(lines) > 0)
	fields := strings.Split(strings.TrimSpace(lines[len(lines)-1]), ",")
	is.Equal(len(fields), 10)
	is.Equal(fields[0], res.GameID)
	is.Equal(fields[3], "composite-2")
}

func TestRandomOpeningFollowsSeed(t *testing.T) {
	is := is.New(t)
	seed := SeedsFromString("opening", 1)[0]
	var positions []string
	for i := 0; i < 2; i++ {
		r := defaultRunner(t)
		r.SetOpeningMoves(6)
		r.StartGame()
		is.NoErr(r.playRandomOpening(openingRNG(seed)))
		positions = append(positions, r.Game().Board().ToPositionString())
		is.Equal(len(r.Game().History()) >= 6, true)
	}
	is.Equal(positions[0], positions[1])
}

func TestDifferentHeuristicsPerSide(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(testhelpers.Config(), Options{
		DarkHeuristic:  heuristic.CoinParity,
		LightHeuristic: heuristic.Weighted,
		DarkPlies:      1,
		LightPlies:     3,
		OpeningMoves:   2,
	})
	is.NoErr(err)
	is.Equal(r.PlayerName(board.Dark), "coin-1")
	is.Equal(r.PlayerName(board.Light), "weighted-3")
	is.Equal(r.openingMoves, 2)
}

func TestNegativePliesRejected(t *testing.T) {
	is := is.New(t)
	_, err := NewGameRunner(testhelpers.Config(), Options{
		DarkHeuristic:  heuristic.CoinParity,
		LightHeuristic: heuristic.CoinParity,
		DarkPlies:      2,
		LightPlies:     -1,
	})
	is.True(errors.Is(err, alphabeta.ErrNegativePlies))

	opts := testOptions(t, 2)
	opts.DarkPlies = -1
	_, err = CompVsComp(context.Background(), testhelpers.Config(), opts)
	is.True(errors.Is(err, alphabeta.ErrNegativePlies))
	is.Equal(IsPlaying.Value(), int64(0))
}
