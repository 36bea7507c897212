package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-runner/internal/runner"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultBestKey is the storage key of the best score for the normal preset.
const DefaultBestKey = "simple-runner-best"

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	sim := runner.DefaultConfig()
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:      sim.Gravity,
			JumpVelocity: sim.JumpVelocity,
			MaxDt:        sim.MaxDt,
		},
		Field: FieldConfig{
			Width:       sim.FieldWidth,
			Height:      sim.FieldHeight,
			GroundRatio: sim.GroundRatio,
		},
		Actor: ActorConfig{
			X:           sim.ActorX,
			Width:       sim.ActorWidth,
			Height:      sim.ActorHeight,
			XRatio:      sim.ActorXRatio,
			WidthRatio:  sim.ActorWidthRatio,
			HeightRatio: sim.ActorHeightRatio,
		},
		Obstacles: ObstaclesConfig{
			MinWidth:      sim.ObstacleMinWidth,
			MaxWidth:      sim.ObstacleMaxWidth,
			MinHeight:     sim.ObstacleMinHeight,
			MaxHeight:     sim.ObstacleMaxHeight,
			SpawnMargin:   sim.SpawnMargin,
			RemovalMargin: sim.RemovalMargin,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			IntervalStart: sim.SpawnIntervalStart,
			IntervalMin:   sim.SpawnIntervalMin,
			IntervalDecay: sim.SpawnIntervalDecay,
			SpeedStart:    sim.ScrollSpeedStart,
			SpeedMax:      sim.ScrollSpeedMax,
			SpeedStep:     sim.ScrollSpeedStep,
		},
		Scoring: ScoringConfig{
			Rate:    sim.ScoreRate,
			BestKey: DefaultBestKey,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  -1,
			Music:   true,
		},
		Feed: FeedConfig{
			SnapshotEvery: 6,
		},
	}
}
