package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/othellolab/othello/config"
	"github.com/othellolab/othello/shell"
)

var (
	GitVersion string
)

//go:embed othello.txt
var othellobanner string

func newLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s=", i)
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// startCPUProfile returns the function that stops the profile. It is a
// no-op when path is empty.
func startCPUProfile(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
		log.Info().Str("path", path).Msg("wrote-cpu-profile")
	}, nil
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	log.Info().Uint64("heap-alloc", ms.HeapAlloc).Uint32("num-gc", ms.NumGC).Msg("memory-stats")
	return pprof.WriteHeapProfile(f)
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
	argsLine := strings.TrimSpace(strings.Join(config.NonFlagArgs(os.Args[1:]), " "))

	log.Logger = newLogger(cfg.GetBool(config.ConfigDebug))
	zerolog.DefaultContextLogger = &log.Logger
	if argsLine == "" {
		fmt.Println(othellobanner)
		fmt.Println(GitVersion)
	}
	log.Debug().Str("exec-path", exPath).Interface("config", cfg.SanitizedSettings()).Msg("starting")

	stopProfile, err := startCPUProfile(cfg.GetString(config.ConfigCPUProfile))
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-start-cpu-profile")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	sc := shell.NewShellController(cfg, exPath, GitVersion)
	if argsLine == "" {
		go sc.Loop(sig)
		<-sig
		log.Debug().Msg("got quit signal...")
	} else {
		// one-shot mode: run the command line and quit
		sc.Execute(sig, argsLine)
	}

	sc.Cleanup()
	stopProfile()
	if path := cfg.GetString(config.ConfigMemProfile); path != "" {
		if err := writeHeapProfile(path); err != nil {
			log.Err(err).Msg("could-not-write-memory-profile")
		}
	}
}
