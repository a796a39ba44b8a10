package automatic

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/othellolab/othello/config"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/testhelpers"
)

func testOptions(t *testing.T, games int) Options {
	opts, err := DefaultOptions(testhelpers.Config())
	if err != nil {
		t.Fatal(err)
	}
	opts.NumGames = games
	opts.Threads = 2
	opts.OutputFilename = filepath.Join(t.TempDir(), "autoplay.csv")
	opts.DarkHeuristic = heuristic.Composite
	opts.LightHeuristic = heuristic.CoinParity
	opts.DarkPlies = 2
	opts.LightPlies = 1
	return opts
}

func TestCompVsComp(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, 6)
	summary, err := CompVsComp(context.Background(), testhelpers.Config(), opts)
	is.NoErr(err)
	is.Equal(summary.Games, 6)
	is.Equal(summary.DarkWins+summary.LightWins+summary.Ties, 6)
	is.Equal(summary.Differential.Iterations(), 6)
	is.Equal(summary.DarkName, "composite-2")
	is.Equal(summary.LightName, "coin-1")
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	out := summary.String()
	is.True(strings.Contains(out, "Games played: 6"))
	is.True(strings.Contains(out, "Dark (composite-2) wins"))

	fromLog, err := AnalyzeLogFile(opts.OutputFilename)
	is.NoErr(err)
	is.Equal(fromLog.Games, summary.Games)
	is.Equal(fromLog.DarkWins, summary.DarkWins)
	is.Equal(fromLog.LightWins, summary.LightWins)
	is.Equal(fromLog.Ties, summary.Ties)
	is.Equal(fromLog.DarkName, "composite-2")
	is.Equal(fromLog.LightName, "coin-1")
}

func TestCompVsCompIsRepeatable(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, 4)
	opts.OutputFilename = ""
	opts.Seeds = SeedsFromString("repeat", 4)
	a, err := CompVsComp(context.Background(), testhelpers.Config(), opts)
	is.NoErr(err)
	b, err := CompVsComp(context.Background(), testhelpers.Config(), opts)
	is.NoErr(err)
	is.Equal(a.DarkWins, b.DarkWins)
	is.Equal(a.Ties, b.Ties)
	is.Equal(a.diffs, b.diffs)
}

func TestCompVsCompCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := testOptions(t, 50)
	summary, err := CompVsComp(ctx, testhelpers.Config(), opts)
	is.NoErr(err)
	is.True(summary.Games < 50)
}

func TestNotEnoughSeeds(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, 3)
	opts.Seeds = SeedsFromString("short", 2)
	_, err := CompVsComp(context.Background(), testhelpers.Config(), opts)
	is.Equal(err, ErrNotEnoughSeeds)
}

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	seeds := GenerateSeeds(5)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)
	is.Equal(SeedsFromString("x", 3), SeedsFromString("x", 3))
}

func TestReadBadSeeds(t *testing.T) {
	is := is.New(t)
	_, err := ReadSeeds(strings.NewReader("# header\n\nnot*base64\n"))
	is.True(errors.Is(err, ErrBadSeed))
	_, err = ReadSeeds(strings.NewReader("AAAA\n"))
	is.True(errors.Is(err, ErrBadSeed))
	seeds, err := ReadSeeds(strings.NewReader("# only a comment\n"))
	is.NoErr(err)
	is.Equal(len(seeds), 0)
}

func TestLogWriteFailureDoesNotHang(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full on this system")
	}
	is := is.New(t)
	opts := testOptions(t, 6)
	opts.OutputFilename = "/dev/full"

	errc := make(chan error, 1)
	go func() {
		_, err := CompVsComp(context.Background(), testhelpers.Config(), opts)
		errc <- err
	}()
	select {
	case err := <-errc:
		is.True(err != nil)
	case <-time.After(2 * time.Minute):
		t.Fatal("autoplay blocked on a failed log file")
	}
	is.Equal(IsPlaying.Value(), int64(0))

	// the next run is not refused
	opts.NumGames = 2
	opts.OutputFilename = ""
	summary, err := CompVsComp(context.Background(), testhelpers.Config(), opts)
	is.NoErr(err)
	is.Equal(summary.Games, 2)
}

func TestAutoplayIgnoresLaterConfigChanges(t *testing.T) {
	is := is.New(t)
	cfg := testhelpers.Config()
	opts := testOptions(t, 2)
	opts.OutputFilename = ""
	a, err := NewAutoplay(cfg, opts)
	is.NoErr(err)

	cfg.Set(config.ConfigDefaultHeuristic, "nope")
	cfg.Set(config.ConfigRandomSeed, "changed")
	summary, err := a.Run(context.Background())
	is.NoErr(err)
	is.Equal(summary.Games, 2)
	is.Equal(summary.DarkName, "composite-2")
}
