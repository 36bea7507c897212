// Package config provides YAML-based runner configuration loading and
// difficulty presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/runner"
)

// RunnerConfig contains all configuration for the runner game.
type RunnerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Field      FieldConfig      `yaml:"field"`
	Actor      ActorConfig      `yaml:"actor"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Audio      AudioConfig      `yaml:"audio"`
	Feed       FeedConfig       `yaml:"feed"`
}

// PhysicsConfig defines the actor physics.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"` // Negative is up
	MaxDt        float64 `yaml:"max_dt"`        // Largest step integrated per tick, seconds
}

// FieldConfig defines the world-space field.
type FieldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GroundRatio float64 `yaml:"ground_ratio"`
}

// ActorConfig defines actor size and placement.
type ActorConfig struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	XRatio      float64 `yaml:"x_ratio"`
	WidthRatio  float64 `yaml:"width_ratio"`
	HeightRatio float64 `yaml:"height_ratio"`
}

// ObstaclesConfig defines obstacle size ranges and margins.
type ObstaclesConfig struct {
	MinWidth      float64 `yaml:"min_width"`
	MaxWidth      float64 `yaml:"max_width"`
	MinHeight     float64 `yaml:"min_height"`
	MaxHeight     float64 `yaml:"max_height"`
	SpawnMargin   float64 `yaml:"spawn_margin"`
	RemovalMargin float64 `yaml:"removal_margin"`
}

// DifficultyConfig defines the spawn interval and scroll speed ramp.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"` // false freezes the ramp at its start values
	IntervalStart float64 `yaml:"interval_start"`
	IntervalMin   float64 `yaml:"interval_min"`
	IntervalDecay float64 `yaml:"interval_decay"`
	SpeedStart    float64 `yaml:"speed_start"`
	SpeedMax      float64 `yaml:"speed_max"`
	SpeedStep     float64 `yaml:"speed_step"`
}

// ScoringConfig defines score accrual and best-score persistence.
type ScoringConfig struct {
	Rate    float64 `yaml:"rate"`     // Score per second while running
	BestKey string  `yaml:"best_key"` // Storage key of the persisted best score
}

// AudioConfig defines the synthesized sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Gain in beep's log2 units; 0 is unchanged
	Music   bool    `yaml:"music"`  // Background arpeggio while running

	// AssetsDir holds optional jump.wav, back.wav, over.wav and bg.wav files
	// that replace the synthesized cues.
	AssetsDir string `yaml:"assets_dir"`
}

// FeedConfig defines the spectator feed.
type FeedConfig struct {
	SnapshotEvery int `yaml:"snapshot_every"` // Ticks between snapshot broadcasts
}

// ToSim converts the YAML document into a simulation config.
func (c RunnerConfig) ToSim() runner.Config {
	sim := runner.Config{
		Gravity:      c.Physics.Gravity,
		JumpVelocity: c.Physics.JumpVelocity,
		MaxDt:        c.Physics.MaxDt,

		FieldWidth:  c.Field.Width,
		FieldHeight: c.Field.Height,
		GroundRatio: c.Field.GroundRatio,

		ActorX:           c.Actor.X,
		ActorWidth:       c.Actor.Width,
		ActorHeight:      c.Actor.Height,
		ActorXRatio:      c.Actor.XRatio,
		ActorWidthRatio:  c.Actor.WidthRatio,
		ActorHeightRatio: c.Actor.HeightRatio,

		ObstacleMinWidth:  c.Obstacles.MinWidth,
		ObstacleMaxWidth:  c.Obstacles.MaxWidth,
		ObstacleMinHeight: c.Obstacles.MinHeight,
		ObstacleMaxHeight: c.Obstacles.MaxHeight,
		SpawnMargin:       c.Obstacles.SpawnMargin,
		RemovalMargin:     c.Obstacles.RemovalMargin,

		SpawnIntervalStart: c.Difficulty.IntervalStart,
		SpawnIntervalMin:   c.Difficulty.IntervalMin,
		SpawnIntervalDecay: c.Difficulty.IntervalDecay,
		ScrollSpeedStart:   c.Difficulty.SpeedStart,
		ScrollSpeedMax:     c.Difficulty.SpeedMax,
		ScrollSpeedStep:    c.Difficulty.SpeedStep,

		ScoreRate: c.Scoring.Rate,
	}
	if !c.Difficulty.Enabled {
		sim.SpawnIntervalDecay = 0
		sim.ScrollSpeedStep = 0
	}
	return sim
}

// Validate checks that the config produces a valid simulation.
func (c RunnerConfig) Validate() error {
	if err := c.ToSim().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Feed.SnapshotEvery < 0 {
		return fmt.Errorf("config: feed snapshot_every must be non-negative, got %d", c.Feed.SnapshotEvery)
	}
	return nil
}
