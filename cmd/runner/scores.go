package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagScoresUI     bool
	flagScoresAll    bool
	flagScoresClear  bool
	flagScoresExport bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores",
	Long: `Display the top 10 runs and the best score for a difficulty preset.

Examples:
  runner scores
  runner scores hard
  runner scores --ui
  runner scores --all             # Every preset and stored best
  runner scores --export > runs.json
  runner scores easy --clear      # Forget runs and best for easy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresUI, "ui", false, "Browse scores interactively")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every preset and stored best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the runs and best score of the preset")
	scoresCmd.Flags().BoolVar(&flagScoresExport, "export", false, "Print every run of the preset as JSON")
}

func runScores(_ *cobra.Command, args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	preset := parsePreset(name)

	runnerCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	bestBase := runnerCfg.Scoring.BestKey

	switch {
	case flagScoresUI:
		requireTerminal()
		cfg := runtimeConfig()
		_, err = tui.RunScoreboard(store, bestBase, preset, cfg.ScreenW, cfg.ScreenH)
	case flagScoresClear:
		if err = clearScores(store, bestBase, preset); err == nil {
			fmt.Printf("Cleared runs and best score for %s.\n", preset)
		}
	case flagScoresExport:
		err = exportScores(os.Stdout, store, preset)
	case flagScoresAll:
		err = printAllScores(os.Stdout, store)
	default:
		err = printScores(os.Stdout, store, bestBase, preset)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the top 10 runs of preset with its best and stats.
func printScores(w io.Writer, store *storage.Store, bestBase string, preset config.DifficultyPreset) error {
	gameID := config.ScoreKey(preset)
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - Runner (%s)\n\n", preset)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'runner play --difficulty %s' to set the first high score!\n", preset)
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "When")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(entry.Score)), humanize.Time(entry.CreatedAt))
	}

	fmt.Fprintln(w)
	best, err := store.Best(config.BestKey(bestBase, preset))
	if err != nil {
		return err
	}
	high, err := store.HighScore(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Best: %s  Highest recorded run: %s\n", humanize.Comma(int64(best)), humanize.Comma(int64(high)))

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Runs: %d  Average: %.1f  Last played: %s\n", stats.GamesCount, stats.AvgScore, humanize.Time(stats.LastPlayed))
	return nil
}

// printAllScores writes one line per preset that has runs, then every
// stored best score.
func printAllScores(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	bests, err := store.AllBest()
	if err != nil {
		return err
	}

	if len(stats) == 0 && len(bests) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintln(w, "Runs")
	fmt.Fprintf(w, "  %-14s  %-6s  %-10s  %-10s  %s\n", "Game", "Runs", "High", "Average", "Last played")
	for _, id := range ids {
		st := stats[id]
		fmt.Fprintf(w, "  %-14s  %-6d  %-10s  %-10.1f  %s\n",
			id, st.GamesCount, humanize.Comma(int64(st.HighScore)), st.AvgScore, humanize.Time(st.LastPlayed))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Best scores")
	for _, b := range bests {
		fmt.Fprintf(w, "  %-24s  %-10s  %s\n", b.Key, humanize.Comma(int64(b.Best)), humanize.Time(b.UpdatedAt))
	}
	return nil
}

// exportedRun is one run in the --export output.
type exportedRun struct {
	ID        int64  `json:"id"`
	Game      string `json:"game"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at"`
}

// exportScores writes every run of preset as a JSON array, highest first.
func exportScores(w io.Writer, store *storage.Store, preset config.DifficultyPreset) error {
	scores, err := store.AllScores(config.ScoreKey(preset))
	if err != nil {
		return err
	}
	runs := make([]exportedRun, 0, len(scores))
	for _, s := range scores {
		runs = append(runs, exportedRun{
			ID:        s.ID,
			Game:      s.GameID,
			Score:     s.Score,
			CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}

// clearScores deletes the runs and the best score of preset.
func clearScores(store *storage.Store, bestBase string, preset config.DifficultyPreset) error {
	if err := store.ClearScores(config.ScoreKey(preset)); err != nil {
		return err
	}
	return store.ClearBest(config.BestKey(bestBase, preset))
}
