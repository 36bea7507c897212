// Package runner implements the deterministic endless-runner simulation:
// actor physics, obstacle spawning, the difficulty ramp, collision, scoring
// and the Idle/Running/GameOver run state machine.
//
// The package performs no I/O. Rendering, audio, persistence and input
// translation live in collaborators that drive Tick/Jump and subscribe to
// events.
package runner

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned (wrapped) when a Config fails validation.
var ErrInvalidConfig = errors.New("runner: invalid config")

// Config holds every tunable constant of the simulation.
// Distances are world units, times are seconds.
type Config struct {
	Gravity      float64 // Downward acceleration, units/s^2
	JumpVelocity float64 // Vertical velocity applied on jump (negative = up)

	FieldWidth  float64 // Visible field width
	FieldHeight float64 // Visible field height
	GroundRatio float64 // Ground line as a fraction of FieldHeight

	ActorX           float64 // Minimum actor x position
	ActorWidth       float64 // Maximum actor width
	ActorHeight      float64 // Maximum actor height
	ActorXRatio      float64 // Actor x as a fraction of field width (0 = use ActorX)
	ActorWidthRatio  float64 // Width cap as a fraction of field width (0 = no cap)
	ActorHeightRatio float64 // Height cap as a fraction of field height (0 = no cap)

	ObstacleMinWidth  float64
	ObstacleMaxWidth  float64
	ObstacleMinHeight float64
	ObstacleMaxHeight float64
	SpawnMargin       float64 // Distance past the right edge where obstacles appear
	RemovalMargin     float64 // Obstacles are removed once x+w < -RemovalMargin

	SpawnIntervalStart float64
	SpawnIntervalMin   float64
	SpawnIntervalDecay float64 // Subtracted from the interval on every spawn

	ScrollSpeedStart float64
	ScrollSpeedMax   float64
	ScrollSpeedStep  float64 // Added to the speed on every spawn

	ScoreRate float64 // Score units per second while running
	MaxDt     float64 // Largest timestep integrated in a single tick
}

// DefaultConfig returns the classic runner tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:      2200,
		JumpVelocity: -760,

		FieldWidth:  960,
		FieldHeight: 540,
		GroundRatio: 0.78,

		ActorX:           48,
		ActorWidth:       48,
		ActorHeight:      48,
		ActorXRatio:      0.12,
		ActorWidthRatio:  0.08,
		ActorHeightRatio: 0.09,

		ObstacleMinWidth:  20,
		ObstacleMaxWidth:  46,
		ObstacleMinHeight: 24,
		ObstacleMaxHeight: 90,
		SpawnMargin:       20,
		RemovalMargin:     20,

		SpawnIntervalStart: 0.9,
		SpawnIntervalMin:   0.55,
		SpawnIntervalDecay: 0.01,

		ScrollSpeedStart: 420,
		ScrollSpeedMax:   920,
		ScrollSpeedStep:  6,

		ScoreRate: 100,
		MaxDt:     0.05,
	}
}

// Validate checks the config for values that would make the simulation
// ill-defined. The returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	for name, v := range map[string]float64{
		"gravity": c.Gravity, "jump velocity": c.JumpVelocity, "max dt": c.MaxDt,
		"field width": c.FieldWidth, "field height": c.FieldHeight, "ground ratio": c.GroundRatio,
		"actor x": c.ActorX, "actor width": c.ActorWidth, "actor height": c.ActorHeight,
		"actor x ratio": c.ActorXRatio, "actor width ratio": c.ActorWidthRatio, "actor height ratio": c.ActorHeightRatio,
		"obstacle min width": c.ObstacleMinWidth, "obstacle max width": c.ObstacleMaxWidth,
		"obstacle min height": c.ObstacleMinHeight, "obstacle max height": c.ObstacleMaxHeight,
		"spawn margin": c.SpawnMargin, "removal margin": c.RemovalMargin,
		"spawn interval start": c.SpawnIntervalStart, "spawn interval min": c.SpawnIntervalMin,
		"spawn interval decay": c.SpawnIntervalDecay,
		"scroll speed start": c.ScrollSpeedStart, "scroll speed max": c.ScrollSpeedMax,
		"scroll speed step": c.ScrollSpeedStep, "score rate": c.ScoreRate,
	} {
		check(!math.IsNaN(v) && !math.IsInf(v, 0), "%s must be finite, got %v", name, v)
	}

	check(c.Gravity > 0, "gravity must be positive, got %v", c.Gravity)
	check(c.JumpVelocity < 0, "jump velocity must be negative (upward), got %v", c.JumpVelocity)
	check(c.FieldWidth > 0 && c.FieldHeight > 0, "field must have positive size, got %vx%v", c.FieldWidth, c.FieldHeight)
	check(c.GroundRatio > 0 && c.GroundRatio <= 1, "ground ratio must be in (0, 1], got %v", c.GroundRatio)

	check(c.ActorX >= 0, "actor x must be non-negative, got %v", c.ActorX)
	check(c.ActorWidth > 0 && c.ActorHeight > 0, "actor must have positive size, got %vx%v", c.ActorWidth, c.ActorHeight)
	check(c.ActorXRatio >= 0 && c.ActorWidthRatio >= 0 && c.ActorHeightRatio >= 0, "actor layout ratios must be non-negative")

	check(c.ObstacleMinWidth > 0, "obstacle min width must be positive, got %v", c.ObstacleMinWidth)
	check(c.ObstacleMinHeight > 0, "obstacle min height must be positive, got %v", c.ObstacleMinHeight)
	check(c.ObstacleMinWidth <= c.ObstacleMaxWidth, "obstacle width range is inverted: [%v, %v)", c.ObstacleMinWidth, c.ObstacleMaxWidth)
	check(c.ObstacleMinHeight <= c.ObstacleMaxHeight, "obstacle height range is inverted: [%v, %v)", c.ObstacleMinHeight, c.ObstacleMaxHeight)
	check(c.SpawnMargin >= 0 && c.RemovalMargin >= 0, "margins must be non-negative")

	check(c.SpawnIntervalMin > 0, "spawn interval floor must be positive, got %v", c.SpawnIntervalMin)
	check(c.SpawnIntervalMin <= c.SpawnIntervalStart, "spawn interval start %v is below its floor %v", c.SpawnIntervalStart, c.SpawnIntervalMin)
	check(c.SpawnIntervalDecay >= 0, "spawn interval decay must be non-negative, got %v", c.SpawnIntervalDecay)

	check(c.ScrollSpeedStart >= 0, "scroll speed start must be non-negative, got %v", c.ScrollSpeedStart)
	check(c.ScrollSpeedStart <= c.ScrollSpeedMax, "scroll speed start %v is above its ceiling %v", c.ScrollSpeedStart, c.ScrollSpeedMax)
	check(c.ScrollSpeedStep >= 0, "scroll speed step must be non-negative, got %v", c.ScrollSpeedStep)

	check(c.ScoreRate >= 0, "score rate must be non-negative, got %v", c.ScoreRate)
	check(c.MaxDt > 0, "max dt must be positive, got %v", c.MaxDt)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// GroundY returns the ground line for the configured field.
func (c Config) GroundY() float64 {
	return math.Floor(c.FieldHeight * c.GroundRatio)
}
