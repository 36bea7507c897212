package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/feed"
)

// Model is the Bubble Tea model for one runner game.
type Model struct {
	game       *runner.Game
	screen     *core.Screen
	palette    *Palette
	publisher  *feed.Publisher
	svc        Services
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	embedded   bool // Hosted by SessionModel; Back must not quit the program
	quitting   bool
	backToMenu bool
}

// NewModel creates a Bubble Tea model for game and attaches svc to it.
func NewModel(game *runner.Game, svc Services, cfg core.RuntimeConfig, palette *Palette) Model {
	if palette == nil {
		palette = NewPalette(nil)
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    palette,
		publisher:  svc.Attach(game),
		svc:        svc,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game unless a run is in progress
	if action == core.ActionBack && (m.gameState.Phase != "running" || m.gameState.Paused) {
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the screen buffer and the world in step with the
// terminal. The run continues across resizes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the game by the real time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State

	if m.publisher != nil && !m.gameState.Paused {
		m.publisher.Tick(m.game.Sim().Snapshot)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("Could not create screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s.txt", filepath.Base(m.game.ID()), timestamp)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.logger().Warn("Could not save screenshot", "path", path, "err", err)
		return
	}
	m.svc.logger().Info("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits or goes back.
// It reports whether the user asked to return to the menu.
func Run(game *runner.Game, svc Services, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, svc, cfg, nil)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click to jump
	)

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
