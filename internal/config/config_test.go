package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/runner"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultRunnerConfig())
	}
}

func TestToSimDefaults(t *testing.T) {
	got := DefaultRunnerConfig().ToSim()
	if got != runner.DefaultConfig() {
		t.Errorf("ToSim() = %+v, expected %+v", got, runner.DefaultConfig())
	}
}

func TestToSimDisabledRamp(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Difficulty.Enabled = false

	sim := cfg.ToSim()
	if sim.SpawnIntervalDecay != 0 || sim.ScrollSpeedStep != 0 {
		t.Errorf("disabled ramp gave decay=%v step=%v, expected 0 0", sim.SpawnIntervalDecay, sim.ScrollSpeedStep)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("physics:\n  gravity: 3000\ndifficulty:\n  speed_start: 500\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Physics.Gravity != 3000 {
		t.Errorf("Gravity = %v, expected 3000", cfg.Physics.Gravity)
	}
	if cfg.Difficulty.SpeedStart != 500 {
		t.Errorf("SpeedStart = %v, expected 500", cfg.Difficulty.SpeedStart)
	}
	if cfg.Physics.JumpVelocity != -760 {
		t.Errorf("JumpVelocity = %v, expected default -760", cfg.Physics.JumpVelocity)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file expected error, got nil")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed yaml expected error, got nil")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".runner", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "runner.yaml"), []byte("scoring:\n  rate: 50\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scoring.Rate != 50 {
		t.Errorf("Rate = %v, expected 50", cfg.Scoring.Rate)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}

	cfg := DefaultRunnerConfig()
	cfg.Obstacles.MinHeight = 200
	err := cfg.Validate()
	if !errors.Is(err, runner.ErrInvalidConfig) {
		t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
	}

	cfg = DefaultRunnerConfig()
	cfg.Feed.SnapshotEvery = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for negative snapshot_every")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultRunnerConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var cfg RunnerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("round trip = %+v, expected defaults", cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset        DifficultyPreset
		enabled       bool
		intervalStart float64
		speedStart    float64
	}{
		{DifficultyEasy, true, 0.9875, 295},
		{DifficultyNormal, true, 0.9, 420},
		{DifficultyHard, true, 0.76, 620},
		{DifficultyFixed, false, 0.9, 420},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)

			d := cfg.Difficulty
			if d.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", d.Enabled, tc.enabled)
			}
			if diff := d.IntervalStart - tc.intervalStart; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("IntervalStart = %v, expected %v", d.IntervalStart, tc.intervalStart)
			}
			if diff := d.SpeedStart - tc.speedStart; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("SpeedStart = %v, expected %v", d.SpeedStart, tc.speedStart)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced invalid config: %v", tc.preset, err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		base     string
		preset   DifficultyPreset
		bestKey  string
		scoreKey string
	}{
		{"", DifficultyNormal, "simple-runner-best", "runner"},
		{"", "", "simple-runner-best", "runner"},
		{"", DifficultyHard, "simple-runner-best/hard", "runner/hard"},
		{"custom", DifficultyEasy, "custom/easy", "runner/easy"},
	}

	for _, tc := range tests {
		if got := BestKey(tc.base, tc.preset); got != tc.bestKey {
			t.Errorf("BestKey(%q, %q) = %q, expected %q", tc.base, tc.preset, got, tc.bestKey)
		}
		if got := ScoreKey(tc.preset); got != tc.scoreKey {
			t.Errorf("ScoreKey(%q) = %q, expected %q", tc.preset, got, tc.scoreKey)
		}
	}
}
