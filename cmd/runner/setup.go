package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/feed"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// newLogger returns a logger writing to w with the shared options.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger opens the interactive log file so output does not corrupt the
// alternate screen. It falls back to discarding logs.
func fileLogger() (*log.Logger, func()) {
	path := flagLogPath
	if path == "" {
		path = filepath.Join(config.UserDir(), "runner.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard, "runner"), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, "runner"), func() {}
	}
	return newLogger(f, "runner"), func() { f.Close() }
}

// loadConfig loads and validates the runner config.
func loadConfig() (config.RunnerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     resolveSeed(flagSeed, time.Now),
	}
}

// openStore opens score storage. A failure is logged and play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("Could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// startAudio opens the sound device when sound is enabled. It returns nil
// when sound is off or no device is available.
func startAudio(cfg config.AudioConfig, logger *log.Logger) *audio.Player {
	if !flagSound || !cfg.Enabled {
		return nil
	}
	player := audio.NewPlayer(cfg, logger)
	if err := player.Start(); err != nil {
		return nil
	}
	return player
}

// startFeed serves the spectator feed on addr until ctx is cancelled.
// An empty addr disables the feed.
func startFeed(ctx context.Context, addr string, logger *log.Logger) *feed.Hub {
	if addr == "" {
		return nil
	}
	hub := feed.NewHub(logger)
	go func() {
		if err := feed.Serve(ctx, addr, hub); err != nil {
			logger.Error("Spectator feed stopped", "addr", addr, "err", err)
		}
	}()
	return hub
}

// parsePreset resolves --difficulty, exiting on unknown names.
func parsePreset(name string) config.DifficultyPreset {
	preset, err := config.ParsePreset(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return preset
}

// requireTerminal exits when stdout is not an interactive terminal.
func requireTerminal() {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return
	}
	fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal")
	fmt.Fprintln(os.Stderr, "Use 'runner headless' to simulate a run without one.")
	os.Exit(1)
}
