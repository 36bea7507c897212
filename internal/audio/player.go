package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

// Player turns simulation events into sound. It mixes every cue into one
// stream; Start attaches that stream to the speaker. A player that was never
// started still mixes, which keeps it usable without an audio device.
type Player struct {
	mu      sync.Mutex
	cfg     config.AudioConfig
	logger  *log.Logger
	rate    beep.SampleRate
	mixer   *beep.Mixer
	music   *beep.Ctrl
	assets  map[Cue]*beep.Buffer
	started bool
	failed  bool // Speaker init failed; stay silent
}

// NewPlayer creates a player. Sample files from cfg.AssetsDir replace the
// synthesized cues they name; unreadable files are logged and ignored.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		cfg:    cfg,
		logger: logger,
		rate:   SampleRate,
		mixer:  &beep.Mixer{},
	}

	assets, err := LoadAssets(cfg.AssetsDir, p.rate)
	if err != nil {
		logger.Warn("Audio assets not loaded, using synth", "dir", cfg.AssetsDir, "err", err)
	}
	p.assets = assets
	if len(assets) > 0 {
		logger.Debug("Audio assets loaded", "dir", cfg.AssetsDir, "count", len(assets))
	}
	return p
}

// Enabled reports whether the player produces sound at all.
func (p *Player) Enabled() bool {
	return p.cfg.Enabled
}

// Start opens the audio device and begins playback of the mix.
// A failed device is logged once; the player then stays silent.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.started || p.failed {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.failed = true
		p.logger.Warn("Audio device unavailable, sound disabled", "err", err)
		return err
	}

	speaker.Play(&effects.Volume{Streamer: p.mixer, Base: 2, Volume: p.cfg.Volume})
	p.started = true
	return nil
}

// Close stops all sounds and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.withSpeaker(func() {
		p.stopMusicLocked()
		p.mixer.Clear()
	})
	if p.started {
		speaker.Close()
		p.started = false
	}
}

// HandleEvent plays the cue for a simulation event. It has the
// runner.Listener signature.
func (p *Player) HandleEvent(ev runner.Event) {
	switch ev.Kind {
	case runner.EventJump:
		p.Play(CueJump)
	case runner.EventRunStarted:
		p.Play(CueStart)
		if p.cfg.Music {
			p.startMusic(MusicDelay)
		}
	case runner.EventGameOver:
		p.StopMusic()
		p.Play(CueGameOver)
	}
}

// Play mixes a one-shot cue in.
func (p *Player) Play(c Cue) {
	if !p.cfg.Enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.streamer(c)
	p.withSpeaker(func() { p.mixer.Add(s) })
}

// StopMusic halts the background arpeggio if it is playing.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withSpeaker(p.stopMusicLocked)
}

// MusicPlaying reports whether background music is active.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil
}

// Active returns the number of streams currently in the mix.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	var n int
	p.withSpeaker(func() { n = p.mixer.Len() })
	return n
}

func (p *Player) startMusic(delay time.Duration) {
	if !p.cfg.Enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.withSpeaker(func() {
		p.stopMusicLocked()
		s := beep.Seq(beep.Silence(p.rate.N(delay)), p.streamer(CueMusic))
		p.music = &beep.Ctrl{Streamer: s}
		p.mixer.Add(p.music)
	})
}

// stopMusicLocked must run under p.mu and the speaker lock.
func (p *Player) stopMusicLocked() {
	if p.music == nil {
		return
	}
	// A Ctrl without a streamer drains, so the mixer drops it.
	p.music.Paused = true
	p.music.Streamer = nil
	p.music = nil
}

// streamer returns the sample asset for c when one was loaded, or the synth.
func (p *Player) streamer(c Cue) beep.Streamer {
	buf, ok := p.assets[c]
	if !ok {
		return Render(c, p.rate)
	}
	s := buf.Streamer(0, buf.Len())
	if c == CueMusic {
		return beep.Loop(-1, s)
	}
	return s
}

// withSpeaker runs fn while the speaker is not reading the mixer.
func (p *Player) withSpeaker(fn func()) {
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
