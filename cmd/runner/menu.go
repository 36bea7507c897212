package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the runner with a difficulty picker",
	Long: `Start the runner in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a difficulty.
Press Esc or B after a run ends to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select difficulty
  Tab          - High scores
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Shares --feed and --demo with play
	menuCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve a spectator WebSocket feed on this address")
	menuCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let the autopilot play (runs are not recorded)")
}

func runMenu(_ *cobra.Command, _ []string) {
	requireTerminal()
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	cfg := runtimeConfig()
	bestBase := s.runnerCfg.Scoring.BestKey

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(s.store, bestBase, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.store, bestBase, "", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		// Fresh seed for each run unless one was pinned
		cfg.Seed = resolveSeed(flagSeed, time.Now)

		game, err := s.newGame(menuResult.Preset, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		s.logger.Info("Run started", "preset", menuResult.Preset, "seed", cfg.Seed)
		backToMenu, err := tui.Run(game, s.svc, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}
		if !backToMenu {
			break
		}
	}
}
