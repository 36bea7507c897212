package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

// drain streams s to exhaustion and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("stream did not drain within %d samples", limit)
	return total, peak
}

func TestOscillatorRange(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveTriangle} {
		t.Run(wave.String(), func(t *testing.T) {
			osc := NewOscillator(440, 100*time.Millisecond, wave, SampleRate)
			samples := make([][2]float64, 200)
			n, ok := osc.Stream(samples)
			if !ok || n != 200 {
				t.Fatalf("Stream() = %d, %v, expected 200, true", n, ok)
			}
			for i := 0; i < n; i++ {
				if samples[i][0] < -1 || samples[i][0] > 1 {
					t.Errorf("sample %d out of range: %f", i, samples[i][0])
				}
				if samples[i][0] != samples[i][1] {
					t.Errorf("sample %d channels differ", i)
				}
			}
		})
	}
}

func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(1100, 10*time.Millisecond, WaveSquare, SampleRate)
	samples := make([][2]float64, 10)
	osc.Stream(samples)
	for i, s := range samples {
		if s[0] != 1 && s[0] != -1 {
			t.Errorf("square sample %d = %f, expected +-1", i, s[0])
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	osc := NewOscillator(440, 50*time.Millisecond, WaveSine, SampleRate)
	n, _ := drain(t, osc, SampleRate.N(time.Second))
	if expected := SampleRate.N(50 * time.Millisecond); n != expected {
		t.Errorf("oscillator length = %d, expected %d", n, expected)
	}
}

func TestDecayEnvelope(t *testing.T) {
	d := &decay{peak: 0.2, length: 100}

	tests := []struct {
		pos      int
		expected float64
	}{
		{0, 0.2},
		{50, 0.2 * math.Sqrt(floorGain/0.2)},
		{100, floorGain},
		{150, floorGain},
	}
	for _, tc := range tests {
		if got := d.gain(tc.pos); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("gain(%d) = %v, expected %v", tc.pos, got, tc.expected)
		}
	}
}

func TestDecayIsMonotonic(t *testing.T) {
	d := &decay{peak: 0.16, length: SampleRate.N(180 * time.Millisecond)}
	prev := math.Inf(1)
	for pos := 0; pos < d.length+10; pos++ {
		g := d.gain(pos)
		if g > prev {
			t.Fatalf("gain(%d) = %v rose above %v", pos, g, prev)
		}
		prev = g
	}
}

func TestCueTones(t *testing.T) {
	tests := []struct {
		cue   Cue
		freqs []float64
		waves []WaveType
	}{
		{CueJump, []float64{1100}, []WaveType{WaveSquare}},
		{CueStart, []float64{660, 825}, []WaveType{WaveSine, WaveTriangle}},
		{CueGameOver, []float64{780, 624, 468}, []WaveType{WaveSaw, WaveSaw, WaveSaw}},
	}

	for _, tc := range tests {
		t.Run(tc.cue.String(), func(t *testing.T) {
			tones := Tones(tc.cue)
			if len(tones) != len(tc.freqs) {
				t.Fatalf("len(Tones()) = %d, expected %d", len(tones), len(tc.freqs))
			}
			for i, tone := range tones {
				if tone.Freq != tc.freqs[i] {
					t.Errorf("tone %d Freq = %v, expected %v", i, tone.Freq, tc.freqs[i])
				}
				if tone.Wave != tc.waves[i] {
					t.Errorf("tone %d Wave = %v, expected %v", i, tone.Wave, tc.waves[i])
				}
			}
		})
	}
}

func TestBarCyclesMelody(t *testing.T) {
	tests := []struct {
		idx     int
		lead    float64
		harmony float64
	}{
		{0, 440, 330},
		{1, 550, 440},
		{2, 660, 220},
		{3, 880, 275},
		{4, 440, 330},
	}
	for _, tc := range tests {
		bar := Bar(tc.idx)
		if bar[0].Freq != tc.lead || bar[1].Freq != tc.harmony {
			t.Errorf("Bar(%d) = %v/%v, expected %v/%v", tc.idx, bar[0].Freq, bar[1].Freq, tc.lead, tc.harmony)
		}
	}
}

func TestRenderOneShotEnds(t *testing.T) {
	tests := []struct {
		cue    Cue
		length time.Duration
	}{
		{CueJump, 80 * time.Millisecond},
		{CueStart, 260 * time.Millisecond},
		{CueGameOver, 620 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.cue.String(), func(t *testing.T) {
			if got := Length(tc.cue); got != tc.length {
				t.Errorf("Length() = %v, expected %v", got, tc.length)
			}
			n, peak := drain(t, Render(tc.cue, SampleRate), SampleRate.N(2*time.Second))
			// Rounding in rate.N may shave a sample off the longest tone.
			if expected := SampleRate.N(tc.length); n < expected-1 || n > expected {
				t.Errorf("rendered %d samples, expected %d", n, expected)
			}
			if peak == 0 || peak > 0.5 {
				t.Errorf("peak level = %v, expected within (0, 0.5]", peak)
			}
		})
	}
}

func TestRenderMusicLoops(t *testing.T) {
	s := Render(CueMusic, SampleRate)
	buf := make([][2]float64, SampleRate.N(BarLength)*3)
	n, ok := s.Stream(buf)
	if !ok || n != len(buf) {
		t.Fatalf("Stream() = %d, %v, expected %d, true", n, ok, len(buf))
	}

	// Each bar opens on its lead note.
	for bar := 0; bar < 3; bar++ {
		start := bar * SampleRate.N(BarLength)
		loud := false
		for i := start; i < start+200; i++ {
			if math.Abs(buf[i][0]) > 0.01 {
				loud = true
			}
		}
		if !loud {
			t.Errorf("bar %d is silent at its start", bar)
		}
	}
}

func testPlayer(t *testing.T, cfg config.AudioConfig) *Player {
	t.Helper()
	p := NewPlayer(cfg, nil)
	t.Cleanup(p.Close)
	return p
}

func TestPlayerHandleEvent(t *testing.T) {
	p := testPlayer(t, config.AudioConfig{Enabled: true, Music: true})

	p.HandleEvent(runner.Event{Kind: runner.EventRunStarted})
	if !p.MusicPlaying() {
		t.Error("music should start with a run")
	}
	if got := p.Active(); got != 2 {
		t.Errorf("Active() = %d after run start, expected 2", got)
	}

	p.HandleEvent(runner.Event{Kind: runner.EventJump})
	if got := p.Active(); got != 3 {
		t.Errorf("Active() = %d after jump, expected 3", got)
	}

	p.HandleEvent(runner.Event{Kind: runner.EventGameOver, Score: 10})
	if p.MusicPlaying() {
		t.Error("music should stop on game over")
	}

	// Stream past every one-shot cue; the mixer drops drained streams.
	drainMixer(p, time.Second)
	if got := p.Active(); got != 0 {
		t.Errorf("Active() = %d after draining, expected 0", got)
	}
}

func drainMixer(p *Player, d time.Duration) {
	buf := make([][2]float64, 512)
	for n := 0; n < p.rate.N(d); n += len(buf) {
		p.mixer.Stream(buf)
	}
}

func TestPlayerWithoutMusic(t *testing.T) {
	p := testPlayer(t, config.AudioConfig{Enabled: true})
	p.HandleEvent(runner.Event{Kind: runner.EventRunStarted})
	if p.MusicPlaying() {
		t.Error("music disabled but playing")
	}
	if got := p.Active(); got != 1 {
		t.Errorf("Active() = %d, expected 1", got)
	}
}

func TestPlayerDisabled(t *testing.T) {
	p := testPlayer(t, config.AudioConfig{Enabled: false, Music: true})
	p.HandleEvent(runner.Event{Kind: runner.EventRunStarted})
	p.HandleEvent(runner.Event{Kind: runner.EventJump})
	if got := p.Active(); got != 0 {
		t.Errorf("Active() = %d for disabled player, expected 0", got)
	}
	if err := p.Start(); err != nil {
		t.Errorf("Start() on disabled player = %v, expected nil", err)
	}
}

func writeWAV(t *testing.T, path string, rate beep.SampleRate, d time.Duration) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, NewOscillator(440, d, WaveSine, rate), format); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
}

func TestLoadAssets(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, AssetFile(CueJump)), SampleRate, 100*time.Millisecond)
	writeWAV(t, filepath.Join(dir, AssetFile(CueGameOver)), 22050, 100*time.Millisecond)

	assets, err := LoadAssets(dir, SampleRate)
	if err != nil {
		t.Fatalf("LoadAssets() error = %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("len(assets) = %d, expected 2", len(assets))
	}
	if _, ok := assets[CueMusic]; ok {
		t.Error("missing bg.wav should be skipped")
	}

	expected := SampleRate.N(100 * time.Millisecond)
	if got := assets[CueJump].Len(); got != expected {
		t.Errorf("jump asset Len() = %d, expected %d", got, expected)
	}
	// Resampled from 22050 Hz; allow for filter edges.
	if got := assets[CueGameOver].Len(); math.Abs(float64(got-expected)) > 64 {
		t.Errorf("resampled asset Len() = %d, expected about %d", got, expected)
	}
}

func TestLoadAssetsEmptyDir(t *testing.T) {
	assets, err := LoadAssets("", SampleRate)
	if err != nil || len(assets) != 0 {
		t.Errorf("LoadAssets(\"\") = %v, %v, expected empty, nil", assets, err)
	}
}

func TestLoadAssetsBadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, AssetFile(CueJump)), []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAssets(dir, SampleRate); err == nil {
		t.Error("LoadAssets() expected error for corrupt file")
	}
}

func TestPlayerUsesAsset(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, AssetFile(CueJump)), SampleRate, 300*time.Millisecond)

	p := testPlayer(t, config.AudioConfig{Enabled: true, AssetsDir: dir})
	n, _ := drain(t, p.streamer(CueJump), SampleRate.N(2*time.Second))
	if expected := SampleRate.N(300 * time.Millisecond); n != expected {
		t.Errorf("asset cue length = %d, expected %d", n, expected)
	}
}
