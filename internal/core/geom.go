// Package core provides fundamental types and utilities for the runner platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Box is an axis-aligned bounding box in world units.
// X, Y is the top-left corner; W and H are expected to be positive.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given position and extents.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Rect projects the box onto a cell grid where one cell spans
// cellW by cellH world units.
func (b Box) Rect(cellW, cellH float64) Rect {
	x0 := int(math.Floor(b.X / cellW))
	y0 := int(math.Floor(b.Y / cellH))
	x1 := int(math.Ceil(b.Right() / cellW))
	y1 := int(math.Ceil(b.Bottom() / cellH))
	return NewRect(x0, y0, Max(x1-x0, 1), Max(y1-y0, 1))
}

// Overlaps reports whether two boxes intersect on both axes.
// Boxes are separated only by a strict gap, so touching edges count as overlap.
func Overlaps(a, b Box) bool {
	if a.Right() < b.X || b.Right() < a.X {
		return false
	}
	if a.Bottom() < b.Y || b.Bottom() < a.Y {
		return false
	}
	return true
}

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Adjacent cells do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
