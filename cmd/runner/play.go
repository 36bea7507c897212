package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/feed"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagDifficulty string
	flagFeedAddr   string
	flagDemo       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run directly.

Controls:
  Space/Up/W/Click  - Jump (also starts and restarts a run)
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a screenshot to ~/.runner/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower start, more time between obstacles
  normal - Default ramp
  hard   - Faster start, obstacles arrive sooner
  fixed  - No ramp, speed and spawn interval never change

Examples:
  runner play
  runner play --difficulty hard
  runner play --demo
  runner play --feed :8080
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve a spectator WebSocket feed on this address")
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let the autopilot play (runs are not recorded)")
}

// session bundles what one local run needs.
type session struct {
	runnerCfg config.RunnerConfig
	store     *storage.Store
	svc       tui.Services
	logger    *log.Logger
	cancel    context.CancelFunc
	closeLog  func()
}

// openSession loads config and opens every local collaborator.
func openSession() (*session, error) {
	runnerCfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog := fileLogger()
	ctx, cancel := context.WithCancel(context.Background())

	store := openStore(logger)
	hub := startFeed(ctx, flagFeedAddr, logger)

	s := &session{
		runnerCfg: runnerCfg,
		store:     store,
		logger:    logger,
		cancel:    cancel,
		closeLog:  closeLog,
		svc: tui.Services{
			Store:         store,
			Audio:         startAudio(runnerCfg.Audio, logger),
			Feed:          hub,
			Logger:        logger,
			SnapshotEvery: runnerCfg.Feed.SnapshotEvery,
			FeedTag:       "local",
		},
	}
	return s, nil
}

// newGame builds a game for preset with the persisted best loaded.
func (s *session) newGame(preset config.DifficultyPreset, cfg core.RuntimeConfig) (*runner.Game, error) {
	runnerCfg := s.runnerCfg
	config.ApplyPreset(&runnerCfg, preset)
	s.svc.BestKey = config.BestKey(runnerCfg.Scoring.BestKey, preset)

	opts := runner.Options{
		Config:  runnerCfg,
		Preset:  preset,
		Runtime: cfg,
		Best:    s.svc.LoadBest(),
	}
	if flagDemo {
		opts.Autopilot = runner.NewAutopilot()
	}
	return runner.New(opts)
}

func (s *session) Close() {
	if s.svc.Audio != nil {
		s.svc.Audio.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	s.cancel()
	s.closeLog()
}

func runPlay(_ *cobra.Command, _ []string) {
	preset := parsePreset(flagDifficulty)
	requireTerminal()

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	game, err := s.newGame(preset, cfg)
	if err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if flagFeedAddr != "" {
		fmt.Printf("Spectators can connect to ws://%s%s\n", flagFeedAddr, feed.Path)
	}

	s.logger.Info("Run started", "preset", preset, "seed", cfg.Seed, "demo", flagDemo)
	_, runErr := tui.Run(game, s.svc, cfg)

	// Close store before potential exit
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
