package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigDefaultPlies       = "default-plies"
	ConfigDefaultHeuristic   = "default-heuristic"
	ConfigEndgameThreshold   = "endgame-threshold"
	ConfigMaxTime            = "max-time"
	ConfigTranspositionTable = "transposition-table"
	ConfigTTFractionOfMem    = "tt-fraction-of-mem"
	ConfigMoveOrdering       = "move-ordering"
	ConfigRandomSeed         = "random-seed"
	ConfigAutoplayThreads    = "autoplay-threads"
	ConfigAutoplayLog        = "autoplay-log"
	ConfigCPUProfile         = "cpu-profile"
	ConfigMemProfile         = "mem-profile"
	ConfigHistoryFile        = "history-file"
	ConfigSearchLog          = "search-log"
)

var (
	ErrBadFlag = errors.New("flags must look like --key=value or --key")
)

// Config wraps a viper instance. Values come, in increasing priority, from
// the defaults below, an optional config file, OTHELLO_* environment
// variables, and --key=value arguments.
type Config struct {
	viper.Viper
	initialized bool
}

func DefaultConfig() Config {
	c := Config{Viper: *viper.New(), initialized: true}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigDefaultPlies, 4)
	c.SetDefault(ConfigDefaultHeuristic, "composite")
	c.SetDefault(ConfigEndgameThreshold, 10)
	c.SetDefault(ConfigMaxTime, "0s")
	c.SetDefault(ConfigTranspositionTable, true)
	c.SetDefault(ConfigTTFractionOfMem, 0.01)
	c.SetDefault(ConfigMoveOrdering, true)
	c.SetDefault(ConfigRandomSeed, "")
	c.SetDefault(ConfigAutoplayThreads, max(1, runtime.NumCPU()-1))
	c.SetDefault(ConfigAutoplayLog, filepath.Join(os.TempDir(), "othello-autoplay.csv"))
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
	c.SetDefault(ConfigHistoryFile, filepath.Join(os.TempDir(), "othello-history.txt"))
	c.SetDefault(ConfigSearchLog, "")
}

// Load reads the config file (if any), the environment, and the given
// command-line arguments. Arguments that are not flags are left alone;
// the caller treats them as a shell command.
func (c *Config) Load(args []string) error {
	if !c.initialized {
		c.Viper = *viper.New()
		c.initialized = true
	}
	c.setDefaults()
	c.SetEnvPrefix("OTHELLO")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("othello")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if home, err := os.UserConfigDir(); err == nil {
		c.AddConfigPath(filepath.Join(home, "othello"))
	}
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		log.Debug().Msg("no-config-file")
	}

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		kv := strings.TrimPrefix(arg, "--")
		if kv == "" {
			return ErrBadFlag
		}
		key, val, found := strings.Cut(kv, "=")
		if !found {
			val = "true"
		}
		c.Set(key, val)
	}
	return nil
}

// NonFlagArgs returns the arguments that Load did not consume.
func NonFlagArgs(args []string) []string {
	var rest []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			rest = append(rest, arg)
		}
	}
	return rest
}

// SanitizedSettings returns all settings. There are no secrets to hide yet,
// but callers that log the config should go through here.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

// Write saves the current settings to the file viper loaded them from, or
// to ./othello.yaml if there was none.
func (c *Config) Write() error {
	if c.ConfigFileUsed() != "" {
		return c.WriteConfig()
	}
	return c.WriteConfigAs("othello.yaml")
}
