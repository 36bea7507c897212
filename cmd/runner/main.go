// runner is an endless runner for the terminal: jump over obstacles while the
// world speeds up.
//
// Usage:
//
//	runner play              - Play a run
//	runner menu              - Pick a difficulty interactively
//	runner serve             - Start SSH server for remote play
//	runner scores [preset]   - Show high scores
//	runner headless          - Run a deterministic simulation without a terminal
//	runner config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.runner/scores.db)
//	--config <path>  - Use a custom runner.yaml
//	--log <path>     - Log file for interactive modes (default: ~/.runner/runner.log)
//	--sound          - Enable sound cues (default: true)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
	flagSound   bool
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Runner - an endless runner in your terminal",
	Long: `Runner is a terminal endless runner. Jump over obstacles as they
scroll in; spawns come faster and the world speeds up the longer you last.

Available commands:
  play      - Play a run directly
  menu      - Interactive difficulty picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  headless  - Simulate a run without a terminal
  config    - Print the effective configuration

Examples:
  runner play
  runner play --difficulty hard
  runner menu
  runner serve --ssh :2222 --feed :8080
  runner headless --duration 30 --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Log file for interactive modes (default ~/.runner/runner.log)")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", true, "Play sound cues")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(configCmd)
}
