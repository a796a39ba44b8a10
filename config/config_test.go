package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigDefaultPlies), 4)
	is.Equal(cfg.GetString(ConfigDefaultHeuristic), "composite")
	is.Equal(cfg.GetInt(ConfigEndgameThreshold), 10)
	is.Equal(cfg.GetDuration(ConfigMaxTime), time.Duration(0))
	is.True(cfg.GetBool(ConfigTranspositionTable))
	is.True(cfg.GetBool(ConfigMoveOrdering))
	is.True(!cfg.GetBool(ConfigDebug))
	is.True(cfg.GetInt(ConfigAutoplayThreads) >= 1)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	cfg := &Config{}
	err := cfg.Load([]string{"--default-plies=6", "--debug", "autoplay", "--move-ordering=false"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigDefaultPlies), 6)
	is.True(cfg.GetBool(ConfigDebug))
	is.True(!cfg.GetBool(ConfigMoveOrdering))
	// untouched keys keep their defaults
	is.Equal(cfg.GetInt(ConfigEndgameThreshold), 10)
	is.Equal(NonFlagArgs([]string{"--debug", "autoplay", "10"}), []string{"autoplay", "10"})

	is.Equal(cfg.Load([]string{"--"}), ErrBadFlag)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	t.Setenv("OTHELLO_ENDGAME_THRESHOLD", "12")
	cfg := DefaultConfig()
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigEndgameThreshold), 12)
}

func TestWriteAndReload(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	cfg := DefaultConfig()
	is.NoErr(cfg.Load([]string{"--default-heuristic=weighted"}))
	is.NoErr(cfg.Write())
	_, err := os.Stat(filepath.Join(dir, "othello.yaml"))
	is.NoErr(err)

	reloaded := &Config{}
	is.NoErr(reloaded.Load(nil))
	is.Equal(reloaded.GetString(ConfigDefaultHeuristic), "weighted")
	is.Equal(reloaded.SanitizedSettings()[ConfigDefaultHeuristic], "weighted")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
