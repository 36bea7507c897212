package runner

import "math"

// Difficulty tracks the spawn interval and scroll speed ramp.
// Both values move one step per spawn event and stay inside their bounds.
type Difficulty struct {
	interval float64
	speed    float64

	intervalStart float64
	intervalMin   float64
	intervalDecay float64
	speedStart    float64
	speedMax      float64
	speedStep     float64
}

// NewDifficulty creates a controller at the configured start values.
func NewDifficulty(cfg Config) *Difficulty {
	d := &Difficulty{
		intervalStart: cfg.SpawnIntervalStart,
		intervalMin:   cfg.SpawnIntervalMin,
		intervalDecay: cfg.SpawnIntervalDecay,
		speedStart:    cfg.ScrollSpeedStart,
		speedMax:      cfg.ScrollSpeedMax,
		speedStep:     cfg.ScrollSpeedStep,
	}
	d.Reset()
	return d
}

// OnSpawn tightens the ramp by one step.
func (d *Difficulty) OnSpawn() {
	d.interval = math.Max(d.intervalMin, d.interval-d.intervalDecay)
	d.speed = math.Min(d.speedMax, d.speed+d.speedStep)
}

// Reset restores the start values.
func (d *Difficulty) Reset() {
	d.interval = d.intervalStart
	d.speed = d.speedStart
}

// Interval returns the current spawn interval in seconds.
func (d *Difficulty) Interval() float64 {
	return d.interval
}

// Speed returns the current scroll speed in units per second.
func (d *Difficulty) Speed() float64 {
	return d.speed
}
