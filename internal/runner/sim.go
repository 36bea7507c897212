package runner

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Phase is the run state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns a short name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseIdle, PhaseRunning, PhaseGameOver} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("runner: unknown phase %q", text)
}

// Option configures a Simulation at construction.
type Option func(*Simulation)

// WithSeed seeds the default randomness source.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand replaces the randomness source.
func WithRand(r Rand) Option {
	return func(s *Simulation) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithBest sets the best score carried over from a previous session.
func WithBest(best int) Option {
	return func(s *Simulation) {
		if best > 0 {
			s.best = best
		}
	}
}

// WithListener subscribes l before the simulation is returned.
func WithListener(l Listener) Option {
	return func(s *Simulation) {
		s.Subscribe(l)
	}
}

// Simulation is the endless-runner state machine.
//
// All methods except QueueJump must be called from a single goroutine.
type Simulation struct {
	cfg Config
	rng Rand

	spawner *Spawner
	diff    *Difficulty
	field   *Field
	actor   Actor

	fieldW  float64
	fieldH  float64
	groundY float64

	timer float64
	score float64
	best  int
	phase Phase

	listeners []Listener
	jumps     atomic.Int32
}

// New creates a simulation in the Idle phase.
// Without WithSeed or WithRand the spawn sequence is seeded with 0.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:    cfg,
		field:  NewField(),
		diff:   NewDifficulty(cfg),
		fieldW: cfg.FieldWidth,
		fieldH: cfg.FieldHeight,
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(0))
	}
	s.spawner = NewSpawner(s.rng, cfg)

	s.layout()
	s.actor.land(s.groundY)
	return s, nil
}

// MustNew is like New but panics on an invalid config.
func MustNew(cfg Config, opts ...Option) *Simulation {
	s, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("runner.MustNew: %v", err))
	}
	return s
}

// Subscribe registers a listener for simulation events.
func (s *Simulation) Subscribe(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Simulation) emit(ev Event) {
	for _, l := range s.listeners {
		l(ev)
	}
}

// Reset starts a fresh run.
func (s *Simulation) Reset() {
	s.field.Clear()
	s.timer = 0
	s.diff.Reset()
	s.score = 0
	s.actor.land(s.groundY)
	s.phase = PhaseRunning

	s.emit(Event{Kind: EventRunStarted, Best: s.best})
}

// Jump applies a jump intent. Outside the Running phase it starts a new run
// instead. A jump while airborne is ignored.
func (s *Simulation) Jump() {
	if s.phase != PhaseRunning {
		s.Reset()
		return
	}
	if s.actor.jump(s.cfg.JumpVelocity) {
		s.emit(Event{Kind: EventJump, Score: s.floorScore(), Best: s.best})
	}
}

// QueueJump records a jump intent to be applied at the start of the next
// Tick. It is safe to call from any goroutine, so input sources running off
// the tick loop (key readers, SSH sessions, the autopilot) use it instead of
// Jump. Queued intents are applied in arrival order.
func (s *Simulation) QueueJump() {
	s.jumps.Add(1)
}

func (s *Simulation) drainJumps() {
	for n := s.jumps.Swap(0); n > 0; n-- {
		s.Jump()
	}
}

// Tick advances the simulation by dt seconds. Queued jumps are applied
// first. Outside the Running phase nothing else changes.
func (s *Simulation) Tick(dt float64) {
	dt = s.clampDt(dt)
	s.drainJumps()

	if s.phase != PhaseRunning {
		return
	}

	s.actor.integrate(dt, s.cfg.Gravity, s.groundY)

	s.timer += dt
	if s.timer > s.diff.Interval() {
		o := s.spawner.Spawn(s.fieldW, s.groundY)
		s.field.Add(o)
		s.timer = 0
		s.diff.OnSpawn()
		s.emit(Event{Kind: EventSpawn, Score: s.floorScore(), Best: s.best, Obstacle: o})
	}

	s.field.Advance(dt, s.diff.Speed(), s.cfg.RemovalMargin)

	s.score += dt * s.cfg.ScoreRate

	if _, hit := s.field.FirstOverlap(s.actor.Box()); hit {
		s.gameOver()
	}
}

func (s *Simulation) gameOver() {
	s.phase = PhaseGameOver

	final := s.floorScore()
	newBest := final > s.best
	if newBest {
		s.best = final
	}

	s.emit(Event{Kind: EventGameOver, Score: final, Best: s.best, NewBest: newBest})
}

func (s *Simulation) clampDt(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0
	}
	return core.ClampF(dt, 0, s.cfg.MaxDt)
}

// Resize changes the field dimensions and re-lays out the actor and ground
// line. Non-positive sizes are ignored.
func (s *Simulation) Resize(w, h float64) {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return
	}
	s.fieldW = w
	s.fieldH = h
	s.layout()
	s.field.Settle(s.groundY)

	if s.actor.OnGround || s.actor.Y+s.actor.H > s.groundY {
		s.actor.land(s.groundY)
	}
}

// layout derives the ground line and actor extents from the field size.
func (s *Simulation) layout() {
	c := s.cfg
	s.groundY = math.Floor(s.fieldH * c.GroundRatio)

	s.actor.X = c.ActorX
	if c.ActorXRatio > 0 {
		s.actor.X = math.Max(c.ActorX, s.fieldW*c.ActorXRatio)
	}

	s.actor.W = c.ActorWidth
	if c.ActorWidthRatio > 0 {
		s.actor.W = math.Max(1, math.Min(c.ActorWidth, math.Floor(s.fieldW*c.ActorWidthRatio)))
	}

	s.actor.H = c.ActorHeight
	if c.ActorHeightRatio > 0 {
		s.actor.H = math.Max(1, math.Min(c.ActorHeight, math.Floor(s.fieldH*c.ActorHeightRatio)))
	}
}

func (s *Simulation) floorScore() int {
	return int(math.Floor(s.score))
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Phase returns the current run phase.
func (s *Simulation) Phase() Phase { return s.phase }

// Actor returns a copy of the actor state.
func (s *Simulation) Actor() Actor { return s.actor }

// Obstacles returns a snapshot of the live obstacles.
func (s *Simulation) Obstacles() []Obstacle { return s.field.Snapshot() }

// Score returns the accumulated score of the current or last run.
func (s *Simulation) Score() float64 { return s.score }

// Best returns the best floored score seen.
func (s *Simulation) Best() int { return s.best }

// SpawnInterval returns the current spawn interval in seconds.
func (s *Simulation) SpawnInterval() float64 { return s.diff.Interval() }

// ScrollSpeed returns the current scroll speed in units per second.
func (s *Simulation) ScrollSpeed() float64 { return s.diff.Speed() }

// GroundY returns the ground line.
func (s *Simulation) GroundY() float64 { return s.groundY }

// FieldSize returns the visible field dimensions.
func (s *Simulation) FieldSize() (w, h float64) { return s.fieldW, s.fieldH }

// Snapshot is a read-only copy of the simulation state.
type Snapshot struct {
	Phase         Phase      `json:"phase"`
	Actor         Actor      `json:"actor"`
	Obstacles     []Obstacle `json:"obstacles"`
	Score         float64    `json:"score"`
	Best          int        `json:"best"`
	SpawnInterval float64    `json:"spawn_interval"`
	ScrollSpeed   float64    `json:"scroll_speed"`
	GroundY       float64    `json:"ground_y"`
	FieldWidth    float64    `json:"field_width"`
	FieldHeight   float64    `json:"field_height"`
}

// Snapshot returns a copy of the full simulation state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Phase:         s.phase,
		Actor:         s.actor,
		Obstacles:     s.field.Snapshot(),
		Score:         s.score,
		Best:          s.best,
		SpawnInterval: s.diff.Interval(),
		ScrollSpeed:   s.diff.Speed(),
		GroundY:       s.groundY,
		FieldWidth:    s.fieldW,
		FieldHeight:   s.fieldH,
	}
}
