package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue identifies a sound the game plays.
type Cue int

const (
	CueJump Cue = iota
	CueStart
	CueGameOver
	CueMusic
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueStart:
		return "start"
	case CueGameOver:
		return "game_over"
	case CueMusic:
		return "music"
	default:
		return "unknown"
	}
}

// MusicDelay separates the start flourish from the background arpeggio.
const MusicDelay = 220 * time.Millisecond

// BarLength is the duration of one arpeggio step.
const BarLength = 360 * time.Millisecond

// melody is the four-note arpeggio the background music cycles through.
var melody = [4]float64{440, 550, 660, 880}

// Tones returns the notes of a one-shot cue. CueMusic returns its first bar.
func Tones(c Cue) []Tone {
	switch c {
	case CueJump:
		return []Tone{{Freq: 1100, Duration: 0.06, Wave: WaveSquare, Volume: 0.18}}
	case CueStart:
		return []Tone{
			{Freq: 660, Duration: 0.12, Wave: WaveSine, Volume: 0.12},
			{Freq: 825, Delay: 0.12, Duration: 0.12, Wave: WaveTriangle, Volume: 0.08},
		}
	case CueGameOver:
		return []Tone{
			{Freq: 780, Duration: 0.18, Wave: WaveSaw, Volume: 0.16},
			{Freq: 624, Delay: 0.15, Duration: 0.22, Wave: WaveSaw, Volume: 0.12},
			{Freq: 468, Delay: 0.34, Duration: 0.26, Wave: WaveSaw, Volume: 0.09},
		}
	case CueMusic:
		return Bar(0)
	default:
		return nil
	}
}

// Bar returns the notes of arpeggio step idx: a lead note and a softer
// harmony an octave down, two steps ahead in the melody.
func Bar(idx int) []Tone {
	lead := melody[idx%len(melody)]
	harmony := melody[(idx+2)%len(melody)] * 0.5
	return []Tone{
		{Freq: lead, Duration: 0.16, Wave: WaveSine, Volume: 0.09},
		{Freq: harmony, Delay: 0.06, Duration: 0.18, Wave: WaveTriangle, Volume: 0.06},
	}
}

// Length returns how long a one-shot cue sounds.
func Length(c Cue) time.Duration {
	var end time.Duration
	for _, t := range Tones(c) {
		end = max(end, t.End())
	}
	return end
}

// Render returns a streamer for the cue. One-shot cues end after Length;
// CueMusic never drains.
func Render(c Cue, rate beep.SampleRate) beep.Streamer {
	if c == CueMusic {
		return &arpeggio{rate: rate}
	}
	tones := Tones(c)
	streams := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		streams = append(streams, t.Streamer(rate))
	}
	return beep.Take(rate.N(Length(c)), beep.Mix(streams...))
}

// arpeggio streams fixed-length bars forever, advancing the melody each bar.
type arpeggio struct {
	rate beep.SampleRate
	idx  int
	bar  beep.Streamer
}

func (a *arpeggio) nextBar() {
	tones := Bar(a.idx)
	streams := make([]beep.Streamer, 0, len(tones)+1)
	for _, t := range tones {
		streams = append(streams, t.Streamer(a.rate))
	}
	// Pad so every bar lasts exactly BarLength.
	streams = append(streams, beep.Silence(-1))
	a.bar = beep.Take(a.rate.N(BarLength), beep.Mix(streams...))
	a.idx++
}

func (a *arpeggio) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if a.bar == nil {
			a.nextBar()
		}
		sn, sok := a.bar.Stream(samples[n:])
		n += sn
		if !sok || sn == 0 {
			a.bar = nil
		}
	}
	return n, true
}

func (a *arpeggio) Err() error { return nil }
