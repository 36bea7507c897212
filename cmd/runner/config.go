package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the runner configuration as YAML after defaults, config files
and the difficulty preset are applied. The output is a valid runner.yaml.

Examples:
  runner config > ~/.runner/runner.yaml
  runner config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Apply a difficulty preset before printing")
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, parsePreset(flagDifficulty))
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
