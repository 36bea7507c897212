package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

// sessionScreen is the screen a session currently shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game -> menu, with the
// scoreboard one Tab away. It is the top-level model for SSH sessions.
type SessionModel struct {
	svc        Services
	runnerCfg  config.RunnerConfig
	bestBase   string
	config     core.RuntimeConfig
	palette    *Palette
	screen     sessionScreen
	preset     config.DifficultyPreset
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  *Model
	quitting   bool
	err        error // Last game construction failure, shown on the menu
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, runnerCfg config.RunnerConfig, cfg core.RuntimeConfig, palette *Palette) SessionModel {
	bestBase := runnerCfg.Scoring.BestKey
	return SessionModel{
		svc:       svc,
		runnerCfg: runnerCfg,
		bestBase:  bestBase,
		config:    cfg,
		palette:   palette,
		preset:    config.DifficultyNormal,
		menu:      NewMenuModel(svc.Store, bestBase, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.svc.Store, m.bestBase, m.preset, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		m.preset = m.menu.Selected().Preset
		gameModel, err := m.newGame(m.preset)
		if err != nil {
			m.svc.logger().Error("Could not start game", "preset", m.preset, "err", err)
			m.err = err
			m.menu = NewMenuModel(m.svc.Store, m.bestBase, m.config)
			return m, nil
		}
		m.gameModel = gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// newGame builds a game for preset with the session's collaborators.
func (m SessionModel) newGame(preset config.DifficultyPreset) (*Model, error) {
	cfg := m.runnerCfg
	config.ApplyPreset(&cfg, preset)

	svc := m.svc
	svc.BestKey = config.BestKey(m.bestBase, preset)

	game, err := runner.New(runner.Options{
		Config:  cfg,
		Preset:  preset,
		Runtime: m.config,
		Best:    svc.LoadBest(),
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	model := NewModel(game, svc, m.config, m.palette)
	model.embedded = true
	return &model, nil
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.screen = screenMenu
		m.gameModel = nil
		m.menu = NewMenuModel(m.svc.Store, m.bestBase, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.svc.Store, m.bestBase, m.config)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(menuDimStyle.Render("Error: "+m.err.Error()), m.config.ScreenW)
	}
	return view
}
