package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset parses a preset name. An empty name is DifficultyNormal.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", name)
}

// Description returns a one-line summary of the preset.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slower start, more time between obstacles"
	case DifficultyHard:
		return "Starts part-way up the ramp"
	case DifficultyFixed:
		return "No ramp, speed and spacing never change"
	default:
		return "The classic ramp"
	}
}

// InitialLevelForPreset returns where on the ramp a preset starts.
// 0 is the configured start, 1 is the configured bounds and negative values
// start further from the bounds.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return -0.25
	case DifficultyHard:
		return 0.4
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	if IsFixedPreset(preset) {
		d.Enabled = false
		return
	}
	d.Enabled = true

	level := InitialLevelForPreset(preset)
	if level == 0 {
		return
	}
	d.IntervalStart = math.Max(d.IntervalMin, d.IntervalStart-level*(d.IntervalStart-d.IntervalMin))
	d.SpeedStart = math.Max(0, math.Min(d.SpeedMax, d.SpeedStart+level*(d.SpeedMax-d.SpeedStart)))
}

// BestKey returns the storage key for the preset's best score.
func BestKey(base string, preset DifficultyPreset) string {
	if base == "" {
		base = DefaultBestKey
	}
	if preset == "" || preset == DifficultyNormal {
		return base
	}
	return base + "/" + string(preset)
}

// ScoreKey returns the game id under which runs of the preset are recorded.
func ScoreKey(preset DifficultyPreset) string {
	if preset == "" || preset == DifficultyNormal {
		return "runner"
	}
	return "runner/" + string(preset)
}
