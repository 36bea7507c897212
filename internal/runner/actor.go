package runner

import "github.com/vovakirdan/tui-runner/internal/core"

// Actor is the player-controlled runner. Y grows downward.
type Actor struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VY       float64 `json:"vy"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	OnGround bool    `json:"on_ground"`
}

// Box returns the collision box of the actor.
func (a Actor) Box() core.Box {
	return core.NewBox(a.X, a.Y, a.W, a.H)
}

// integrate applies gravity for dt seconds and clamps the actor to the ground.
func (a *Actor) integrate(dt, gravity, groundY float64) {
	a.VY += gravity * dt
	a.Y += a.VY * dt

	if a.Y+a.H >= groundY {
		a.Y = groundY - a.H
		a.VY = 0
		a.OnGround = true
	} else {
		a.OnGround = false
	}
}

// jump launches the actor if it is standing on the ground.
// It reports whether the jump was applied.
func (a *Actor) jump(velocity float64) bool {
	if !a.OnGround {
		return false
	}
	a.VY = velocity
	a.OnGround = false
	return true
}

// land puts the actor at rest on the ground line.
func (a *Actor) land(groundY float64) {
	a.Y = groundY - a.H
	a.VY = 0
	a.OnGround = true
}
