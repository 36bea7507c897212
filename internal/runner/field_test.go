package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func TestSpawnerBounds(t *testing.T) {
	tests := []struct {
		name      string
		draws     []float64
		expectedH float64
		expectedW float64
	}{
		{"lowest draw", []float64{0, 0}, 24, 20},
		{"highest draw", []float64{0.9999, 0.9999}, 89, 45},
		{"midpoint", []float64{0.5, 0.5}, 57, 33},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sp := NewSpawner(&seqRand{vals: tc.draws}, DefaultConfig())
			o := sp.Spawn(800, 400)
			if o.H != tc.expectedH {
				t.Errorf("H = %v, expected %v", o.H, tc.expectedH)
			}
			if o.W != tc.expectedW {
				t.Errorf("W = %v, expected %v", o.W, tc.expectedW)
			}
			if o.X != 820 {
				t.Errorf("X = %v, expected 820", o.X)
			}
			if o.Y != 400-tc.expectedH {
				t.Errorf("Y = %v, expected %v", o.Y, 400-tc.expectedH)
			}
		})
	}
}

func TestSpawnerAlwaysInRange(t *testing.T) {
	s := newTestSim(t)
	sp := NewSpawner(s.rng, DefaultConfig())
	for i := 0; i < 5000; i++ {
		o := sp.Spawn(800, 400)
		if o.H < 24 || o.H >= 90 || o.H != math.Floor(o.H) {
			t.Fatalf("H = %v out of [24, 90)", o.H)
		}
		if o.W < 20 || o.W >= 46 || o.W != math.Floor(o.W) {
			t.Fatalf("W = %v out of [20, 46)", o.W)
		}
	}
}

func TestDifficultyRamp(t *testing.T) {
	d := NewDifficulty(DefaultConfig())

	d.OnSpawn()
	if !almostEqual(d.Interval(), 0.89) {
		t.Errorf("Interval() = %v, expected 0.89", d.Interval())
	}
	if d.Speed() != 426 {
		t.Errorf("Speed() = %v, expected 426", d.Speed())
	}

	prevI, prevS := d.Interval(), d.Speed()
	for i := 0; i < 1000; i++ {
		d.OnSpawn()
		if d.Interval() > prevI || d.Speed() < prevS {
			t.Fatalf("ramp reversed at spawn %d", i)
		}
		if d.Interval() < 0.55 {
			t.Fatalf("Interval() = %v below floor", d.Interval())
		}
		if d.Speed() > 920 {
			t.Fatalf("Speed() = %v above ceiling", d.Speed())
		}
		prevI, prevS = d.Interval(), d.Speed()
	}
	if d.Interval() != 0.55 || d.Speed() != 920 {
		t.Errorf("bounds = (%v, %v), expected (0.55, 920)", d.Interval(), d.Speed())
	}

	d.Reset()
	if d.Interval() != 0.9 || d.Speed() != 420 {
		t.Errorf("after Reset() = (%v, %v), expected (0.9, 420)", d.Interval(), d.Speed())
	}
}

func TestFieldAdvanceRemoval(t *testing.T) {
	f := NewField()
	f.Add(Obstacle{X: -30, Y: 0, W: 10, H: 10})  // right edge exactly at -20 before move
	f.Add(Obstacle{X: 100, Y: 0, W: 10, H: 10})  // stays
	f.Add(Obstacle{X: -100, Y: 0, W: 10, H: 10}) // already past
	f.Add(Obstacle{X: -29, Y: 0, W: 10, H: 10})  // lands on the threshold

	f.Advance(0.01, 100, 20)

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", f.Len())
	}
	xs := map[float64]bool{}
	for _, o := range f.Snapshot() {
		xs[o.X] = true
	}
	if !xs[99] || !xs[-30] {
		t.Errorf("remaining X = %v, expected 99 and -30", xs)
	}
}

func TestFieldFirstOverlap(t *testing.T) {
	f := NewField()
	f.Add(Obstacle{X: 200, Y: 50, W: 20, H: 50})
	f.Add(Obstacle{X: 10, Y: 50, W: 20, H: 50})

	o, ok := f.FirstOverlap(core.NewBox(0, 60, 15, 15))
	if !ok {
		t.Fatal("FirstOverlap() expected a hit")
	}
	if o.X != 10 {
		t.Errorf("FirstOverlap() X = %v, expected 10", o.X)
	}

	if _, ok := f.FirstOverlap(core.NewBox(50, 0, 10, 10)); ok {
		t.Error("FirstOverlap() expected no hit")
	}

	f.Clear()
	if f.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, expected 0", f.Len())
	}
}
