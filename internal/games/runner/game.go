// Package runner adapts the endless-runner simulation to the terminal
// platform. It maps input actions to jump intents, owns the pause policy and
// renders the world onto a cell screen.
package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	sim "github.com/vovakirdan/tui-runner/internal/runner"
)

// World units covered by one terminal cell.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// Visual characters for rendering
const (
	RunnerBody   = '█'
	RunnerEye    = '◆'
	RunnerLeg1   = '╱'
	RunnerLeg2   = '╲'
	ObstacleChar = '▓'
	GroundChar   = '═'
	DirtChar     = '░'
)

// Options configures a new Game.
type Options struct {
	Config    config.RunnerConfig
	Preset    config.DifficultyPreset
	Runtime   core.RuntimeConfig
	Best      int        // Best score loaded from storage
	Autopilot *Autopilot // Optional bot that jumps on its own
}

// Game implements the runner for the terminal platform.
type Game struct {
	sim       *sim.Simulation
	cfg       config.RunnerConfig
	preset    config.DifficultyPreset
	autopilot *Autopilot

	paused   bool
	newBest  bool // Last run beat the previous best
	legFrame int  // Animation frame for running legs
	cols     int
	rows     int
}

// New creates a game in the Idle phase.
func New(opts Options) (*Game, error) {
	s, err := sim.New(opts.Config.ToSim(), sim.WithSeed(opts.Runtime.Seed), sim.WithBest(opts.Best))
	if err != nil {
		return nil, fmt.Errorf("runner game: %w", err)
	}

	g := &Game{
		sim:       s,
		cfg:       opts.Config,
		preset:    opts.Preset,
		autopilot: opts.Autopilot,
	}
	s.Subscribe(g.onEvent)

	if opts.Runtime.ScreenW > 0 && opts.Runtime.ScreenH > 0 {
		g.Resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	}
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return config.ScoreKey(g.preset)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.preset == "" || g.preset == config.DifficultyNormal {
		return "Runner"
	}
	return fmt.Sprintf("Runner (%s)", g.preset)
}

// Preset returns the difficulty preset the game was built with.
func (g *Game) Preset() config.DifficultyPreset {
	return g.preset
}

// Demo reports whether the autopilot plays this game.
func (g *Game) Demo() bool {
	return g.autopilot != nil
}

// Sim exposes the underlying simulation for collaborators.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Subscribe registers a listener for simulation events.
func (g *Game) Subscribe(l sim.Listener) {
	g.sim.Subscribe(l)
}

func (g *Game) onEvent(ev sim.Event) {
	switch ev.Kind {
	case sim.EventRunStarted:
		g.newBest = false
		g.paused = false
	case sim.EventGameOver:
		g.newBest = ev.NewBest
	}
}

// Resize fits the world to a screen of cols x rows cells.
func (g *Game) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	g.cols, g.rows = cols, rows
	g.sim.Resize(float64(cols)*CellWidth, float64(rows)*CellHeight)
}

// Step applies one frame of input and advances the simulation by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	running := g.sim.Phase() == sim.PhaseRunning

	// Handle pause toggle
	if in.Has(core.ActionPause) && running {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && !running {
		g.sim.Reset()
	} else if in.Has(core.ActionJump) {
		g.sim.QueueJump()
	}

	if g.autopilot != nil && g.autopilot.Decide(g.sim) {
		g.sim.QueueJump()
	}

	g.sim.Tick(dt)

	if g.sim.Phase() == sim.PhaseRunning {
		g.legFrame = (g.legFrame + 1) % 10 // Animation cycle
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(math.Floor(g.sim.Score())),
		Best:     g.sim.Best(),
		Phase:    g.sim.Phase().String(),
		GameOver: g.sim.Phase() == sim.PhaseGameOver,
		Paused:   g.paused,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	groundRow := int(math.Ceil(g.sim.GroundY() / CellHeight))

	// Draw ground
	dst.FillRect(core.NewRect(0, groundRow+1, dst.Width(), dst.Height()-groundRow-1), DirtChar, core.ColorGray)
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, groundRow, GroundChar, core.ColorYellow)
	}

	// Draw obstacles that are at least partly on screen
	view := core.NewRect(0, 0, dst.Width(), dst.Height())
	for _, o := range g.sim.Obstacles() {
		r := o.Box().Rect(CellWidth, CellHeight)
		if !r.Intersects(view) {
			continue
		}
		dst.FillRect(r, ObstacleChar, core.ColorGreen)
	}

	g.drawRunner(dst)
	g.drawHUD(dst)

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.sim.Phase() == sim.PhaseIdle:
		g.drawCenteredMessage(dst, g.Title(), "Space / click to jump, R to restart")
	case g.sim.Phase() == sim.PhaseGameOver:
		title := "GAME OVER"
		if g.newBest {
			title = "GAME OVER - NEW BEST!"
		}
		st := g.State()
		g.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  Best: %d  |  Space to restart", st.Score, st.Best))
	}
}

// drawRunner renders the actor as a filled block with an eye and legs.
func (g *Game) drawRunner(dst *core.Screen) {
	a := g.sim.Actor()
	r := a.Box().Rect(CellWidth, CellHeight)
	color := core.ColorBrightCyan
	if g.sim.Phase() == sim.PhaseGameOver {
		color = core.ColorBrightRed
	}

	dst.FillRect(core.NewRect(r.X, r.Y, r.W, core.Max(r.H-1, 1)), RunnerBody, color)
	dst.SetColor(r.Right()-1, r.Y, RunnerEye, core.ColorBrightWhite)
	if r.H < 2 {
		return
	}

	// Legs (animated when grounded)
	legY := r.Bottom() - 1
	for x := r.X; x < r.Right(); x++ {
		dst.SetColor(x, legY, ' ', color)
	}
	switch {
	case !a.OnGround:
		// In air - legs tucked
		dst.SetColor(r.X, legY, RunnerLeg1, color)
		dst.SetColor(r.X+1, legY, RunnerLeg2, color)
	case g.legFrame < 5:
		dst.SetColor(r.X, legY, RunnerLeg1, color)
		dst.SetColor(r.Right()-1, legY, RunnerLeg2, color)
	default:
		dst.SetColor(r.X+1, legY, RunnerLeg1, color)
		dst.SetColor(r.Right()-2, legY, RunnerLeg2, color)
	}
}

// drawHUD renders score, best and speed on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", st.Score), core.ColorBrightWhite)
	dst.DrawTextColor(16, 0, fmt.Sprintf(" Best: %d ", st.Best), core.ColorBrightYellow)

	speedText := fmt.Sprintf(" Spd: %.0f ", g.sim.ScrollSpeed())
	if g.autopilot != nil {
		speedText = " AUTO" + speedText
	}
	dst.DrawTextColor(dst.Width()-len(speedText)-2, 0, speedText, core.ColorCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := core.Clamp((w-boxW)/2, 0, w)
	boxY := core.Clamp((h-boxH)/2, 0, h)

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
