// Package audio synthesizes the runner's sound cues with beep and plays them
// in response to simulation events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// tail keeps a tone sounding briefly after its decay ends.
const tail = 20 * time.Millisecond

// floorGain is the level the decay envelope ramps down to.
const floorGain = 0.001

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// String returns the wave name.
func (w WaveType) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSaw:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// oscillator generates a raw periodic wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a full-scale oscillator of the given length.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 4.0*math.Abs(o.phase-0.5) - 1.0
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay scales a stream by an exponential ramp from peak down to floorGain
// over length samples, holding the floor afterwards.
type decay struct {
	streamer beep.Streamer
	peak     float64
	length   int
	position int
}

// NewDecay wraps s in an exponential decay envelope.
func NewDecay(s beep.Streamer, peak float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, peak: peak, length: rate.N(duration)}
}

// gain returns the envelope level at sample pos.
func (d *decay) gain(pos int) float64 {
	if d.peak <= floorGain {
		return d.peak
	}
	if d.length <= 0 || pos >= d.length {
		return floorGain
	}
	t := float64(pos) / float64(d.length)
	return d.peak * math.Pow(floorGain/d.peak, t)
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := d.gain(d.position)
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// Tone is one enveloped note inside a cue.
type Tone struct {
	Freq     float64  // Hz
	Delay    float64  // Seconds from cue start
	Duration float64  // Seconds of decay
	Wave     WaveType // Oscillator shape
	Volume   float64  // Peak linear gain
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// End returns the offset, from the cue start, at which the tone falls silent.
func (t Tone) End() time.Duration {
	return seconds(t.Delay+t.Duration) + tail
}

// Streamer renders the tone, including its leading delay.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	dur := seconds(t.Duration)
	osc := NewOscillator(t.Freq, dur+tail, t.Wave, rate)
	note := NewDecay(osc, t.Volume, dur, rate)
	if t.Delay <= 0 {
		return note
	}
	return beep.Seq(beep.Silence(rate.N(seconds(t.Delay))), note)
}
