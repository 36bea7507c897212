package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	sim "github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagDuration  float64
	flagAutopilot bool
	flagJSON      bool
	flagRecord    bool
)

// resolveSeed returns pinned, or a time-based seed when pinned is zero.
func resolveSeed(pinned int64, now func() time.Time) int64 {
	if pinned != 0 {
		return pinned
	}
	if seed := now().UnixNano(); seed != 0 {
		return seed
	}
	return 1
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Simulate a run without a terminal",
	Long: `Run the simulation at a fixed step with no rendering and print the
result. The same seed, config and flags always produce the same run.
Without --seed (or with --seed 0) a seed is derived from the current time;
the chosen seed is printed with the result so the run can be replayed.

Examples:
  runner headless --seed 7
  runner headless --duration 120 --difficulty hard --json
  runner headless --autopilot=false --record`,
	Args: cobra.NoArgs,
	Run:  runHeadless,
}

func init() {
	headlessCmd.Flags().Float64Var(&flagDuration, "duration", 60, "Simulated seconds before stopping")
	headlessCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Let the autopilot jump")
	headlessCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
	headlessCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in the scores database")
	headlessCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// headlessRun configures one fixed-step simulation.
type headlessRun struct {
	Config    config.RunnerConfig
	Seed      int64
	Best      int
	TickRate  int
	Duration  float64 // Simulated seconds
	Autopilot bool
	Logger    *log.Logger
}

// headlessResult summarizes a finished simulation.
type headlessResult struct {
	Seed     int64        `json:"seed"`
	Ticks    int          `json:"ticks"`
	Elapsed  float64      `json:"elapsed"`
	Score    int          `json:"score"`
	Best     int          `json:"best"`
	NewBest  bool         `json:"new_best"`
	Jumps    int          `json:"jumps"`
	Spawns   int          `json:"spawns"`
	GameOver bool         `json:"game_over"`
	Final    sim.Snapshot `json:"final"`
}

// simulate runs one run from reset until game over or the duration elapses.
func simulate(r headlessRun) (headlessResult, error) {
	if r.TickRate <= 0 {
		r.TickRate = 60
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}

	s, err := sim.New(r.Config.ToSim(), sim.WithSeed(r.Seed), sim.WithBest(r.Best))
	if err != nil {
		return headlessResult{}, fmt.Errorf("headless: %w", err)
	}

	res := headlessResult{Seed: r.Seed}
	s.Subscribe(func(ev sim.Event) {
		switch ev.Kind {
		case sim.EventJump:
			res.Jumps++
		case sim.EventSpawn:
			res.Spawns++
			r.Logger.Debug("Spawn", "x", ev.Obstacle.X, "w", ev.Obstacle.W, "h", ev.Obstacle.H)
		case sim.EventGameOver:
			res.GameOver = true
			res.NewBest = ev.NewBest
			r.Logger.Debug("Game over", "score", ev.Score, "best", ev.Best)
		}
	})

	var ap *runner.Autopilot
	if r.Autopilot {
		ap = runner.NewAutopilot()
	}

	dt := 1.0 / float64(r.TickRate)
	limit := int(math.Ceil(r.Duration * float64(r.TickRate)))

	s.Reset()
	for res.Ticks < limit && s.Phase() == sim.PhaseRunning {
		if ap != nil && ap.Decide(s) {
			s.Jump()
		}
		s.Tick(dt)
		res.Ticks++
	}

	res.Elapsed = float64(res.Ticks) * dt
	res.Score = int(math.Floor(s.Score()))
	res.Best = s.Best()
	res.Final = s.Snapshot()
	return res, nil
}

func runHeadless(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "runner")
	preset := parsePreset(flagDifficulty)

	runnerCfg, err := loadConfig()
	if err != nil {
		logger.Fatal("Invalid config", "err", err)
	}
	config.ApplyPreset(&runnerCfg, preset)

	seed := resolveSeed(flagSeed, time.Now)
	logger.Debug("Using seed", "seed", seed, "pinned", flagSeed != 0)

	var store *storage.Store
	bestKey := config.BestKey(runnerCfg.Scoring.BestKey, preset)
	best := 0
	if flagRecord {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
			if best, err = store.Best(bestKey); err != nil {
				logger.Warn("Could not load best score", "key", bestKey, "err", err)
			}
		}
	}

	res, err := simulate(headlessRun{
		Config:    runnerCfg,
		Seed:      seed,
		Best:      best,
		TickRate:  flagFPS,
		Duration:  flagDuration,
		Autopilot: flagAutopilot,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("Simulation failed", "err", err)
	}

	if store != nil && res.GameOver && res.Score > 0 {
		if err := store.RecordRun(config.ScoreKey(preset), bestKey, res.Score, res.NewBest); err != nil {
			logger.Error("Could not record run", "err", err)
		} else {
			logger.Info("Run recorded", "score", res.Score, "new_best", res.NewBest)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			logger.Fatal("Could not encode result", "err", err)
		}
		return
	}

	status := "survived"
	if res.GameOver {
		status = "game over"
	}
	fmt.Printf("Seed:    %d\n", res.Seed)
	fmt.Printf("Result:  %s after %.2fs (%d ticks)\n", status, res.Elapsed, res.Ticks)
	fmt.Printf("Score:   %d\n", res.Score)
	fmt.Printf("Best:    %d\n", res.Best)
	fmt.Printf("Jumps:   %d  Spawns: %d\n", res.Jumps, res.Spawns)
	fmt.Printf("Speed:   %.1f  Interval: %.3fs\n", res.Final.ScrollSpeed, res.Final.SpawnInterval)
	if res.NewBest {
		fmt.Println("New best!")
	}
}
