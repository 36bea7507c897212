package runner

import (
	sim "github.com/vovakirdan/tui-runner/internal/runner"
)

// DefaultLookahead is the time to contact, in seconds, at which the
// autopilot jumps.
const DefaultLookahead = 0.2

// Autopilot is a deterministic bot that jumps when the nearest obstacle
// ahead is about to reach the actor.
type Autopilot struct {
	Lookahead float64 // Seconds of travel ahead of the actor to watch
}

// NewAutopilot creates an autopilot with the default lookahead.
func NewAutopilot() *Autopilot {
	return &Autopilot{Lookahead: DefaultLookahead}
}

// Decide reports whether the bot wants to jump this frame.
func (a *Autopilot) Decide(s *sim.Simulation) bool {
	if s.Phase() != sim.PhaseRunning {
		return false
	}
	return a.ShouldJump(s.Actor(), s.Obstacles(), s.ScrollSpeed())
}

// ShouldJump reports whether a grounded actor should jump given the live
// obstacles and the current scroll speed.
func (a *Autopilot) ShouldJump(actor sim.Actor, obstacles []sim.Obstacle, speed float64) bool {
	if !actor.OnGround {
		return false
	}
	window := speed * a.Lookahead
	front := actor.X + actor.W
	for _, o := range obstacles {
		gap := o.X - front
		if gap >= 0 && gap <= window {
			return true
		}
	}
	return false
}
