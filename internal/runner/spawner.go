package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Rand is the randomness source used for obstacle generation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Obstacle is a ground obstacle scrolling toward the actor.
// Only X changes after spawn.
type Obstacle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Box returns the collision box of the obstacle.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.W, o.H)
}

// Spawner produces obstacles with bounded random sizes.
type Spawner struct {
	rng    Rand
	minW   float64
	maxW   float64
	minH   float64
	maxH   float64
	margin float64
}

// NewSpawner creates a spawner drawing from rng with the size ranges in cfg.
func NewSpawner(rng Rand, cfg Config) *Spawner {
	return &Spawner{
		rng:    rng,
		minW:   cfg.ObstacleMinWidth,
		maxW:   cfg.ObstacleMaxWidth,
		minH:   cfg.ObstacleMinHeight,
		maxH:   cfg.ObstacleMaxHeight,
		margin: cfg.SpawnMargin,
	}
}

// Spawn creates an obstacle standing on groundY just past the right edge
// of a field fieldWidth units wide.
func (s *Spawner) Spawn(fieldWidth, groundY float64) Obstacle {
	h := math.Floor(s.uniform(s.minH, s.maxH))
	w := math.Floor(s.uniform(s.minW, s.maxW))
	// Flooring can only reach below min when the range is fractional.
	h = math.Max(h, math.Min(s.minH, s.maxH))
	w = math.Max(w, math.Min(s.minW, s.maxW))
	return Obstacle{
		X: fieldWidth + s.margin,
		Y: groundY - h,
		W: w,
		H: h,
	}
}

func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
