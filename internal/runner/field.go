package runner

import "github.com/vovakirdan/tui-runner/internal/core"

// Field holds the live obstacles. Order is not significant.
type Field struct {
	obstacles []Obstacle
}

// NewField creates an empty field.
func NewField() *Field {
	return &Field{obstacles: make([]Obstacle, 0, 16)}
}

// Add appends an obstacle.
func (f *Field) Add(o Obstacle) {
	f.obstacles = append(f.obstacles, o)
}

// Len returns the number of live obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Advance scrolls every obstacle left by speed*dt and drops those whose
// right edge is past -margin.
func (f *Field) Advance(dt, speed, margin float64) {
	for i := range f.obstacles {
		f.obstacles[i].X -= speed * dt
	}

	for i := 0; i < len(f.obstacles); {
		o := f.obstacles[i]
		if o.X+o.W < -margin {
			last := len(f.obstacles) - 1
			f.obstacles[i] = f.obstacles[last]
			f.obstacles = f.obstacles[:last]
			continue
		}
		i++
	}
}

// FirstOverlap returns an obstacle overlapping box, if any.
func (f *Field) FirstOverlap(box core.Box) (Obstacle, bool) {
	for _, o := range f.obstacles {
		if core.Overlaps(box, o.Box()) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Settle stands every obstacle on a new ground line.
func (f *Field) Settle(groundY float64) {
	for i := range f.obstacles {
		f.obstacles[i].Y = groundY - f.obstacles[i].H
	}
}

// Snapshot returns a copy of the live obstacles.
func (f *Field) Snapshot() []Obstacle {
	out := make([]Obstacle, len(f.obstacles))
	copy(out, f.obstacles)
	return out
}

// Clear removes all obstacles, keeping the backing storage.
func (f *Field) Clear() {
	f.obstacles = f.obstacles[:0]
}
