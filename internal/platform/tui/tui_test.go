package tui

import (
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/feed"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFrameDelta(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		prev     time.Time
		now      time.Time
		rate     int
		expected float64
	}{
		{"first tick", time.Time{}, base, 60, 1.0 / 60},
		{"steady", base, base.Add(20 * time.Millisecond), 60, 0.02},
		{"clock went back", base, base.Add(-time.Second), 30, 1.0 / 30},
		{"stall capped", base, base.Add(3 * time.Second), 60, 0.25},
		{"zero rate", time.Time{}, base, 0, 1.0 / 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frameDelta(tc.prev, tc.now, tc.rate); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("frameDelta() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key      string
		action   core.Action
		expected bool
	}{
		{" ", core.ActionJump, false},
		{"w", core.ActionJump, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"enter", core.ActionConfirm, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(keyMsg(tc.key))
		if action != tc.action || quit != tc.expected {
			t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tc.key, action, quit, tc.action, tc.expected)
		}
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.MouseMsg
		expected core.Action
	}{
		{"left press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.ActionJump},
		{"left release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, core.ActionNone},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, core.ActionNone},
		{"motion", tea.MouseMsg{Action: tea.MouseActionMotion}, core.ActionNone},
	}

	for _, tc := range tests {
		if got := km.MapMouse(tc.msg); got != tc.expected {
			t.Errorf("%s: MapMouse() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestPaletteRender(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz")

	out := NewPalette(nil).Render(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() produced %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in %q", want, out)
		}
	}
}

func newGame(t *testing.T, preset config.DifficultyPreset, best int) *runner.Game {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	config.ApplyPreset(&cfg, preset)
	g, err := runner.New(runner.Options{
		Config:  cfg,
		Preset:  preset,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3},
		Best:    best,
	})
	if err != nil {
		t.Fatalf("runner.New() error = %v", err)
	}
	return g
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

// playUntilOver ticks at 50ms steps without jumping until the run ends.
func playUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	base := time.Now()
	m = update(t, m, keyMsg(" "))
	for i := 1; i < 4000 && !m.State().GameOver; i++ {
		m = update(t, m, TickMsg(base.Add(time.Duration(i)*50*time.Millisecond)))
	}
	if !m.State().GameOver {
		t.Fatal("expected run to end without jumping")
	}
	return m
}

func TestModelRecordsRun(t *testing.T) {
	store := openStore(t)
	svc := Services{Store: store, BestKey: "best-test", Logger: log.New(io.Discard)}

	g := newGame(t, config.DifficultyNormal, 0)
	m := NewModel(g, svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)
	m = playUntilOver(t, m)

	final := m.State().Score
	if final <= 0 {
		t.Fatalf("final score = %d, expected > 0", final)
	}

	best, err := store.Best("best-test")
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if best != final {
		t.Errorf("stored best = %d, expected %d", best, final)
	}
	high, _ := store.HighScore(g.ID())
	if high != final {
		t.Errorf("HighScore(%q) = %d, expected %d", g.ID(), high, final)
	}
}

func TestModelDemoRunNotRecorded(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveBest("best-test", 5); err != nil {
		t.Fatalf("SaveBest() error = %v", err)
	}
	svc := Services{Store: store, BestKey: "best-test", Logger: log.New(io.Discard)}

	g, err := runner.New(runner.Options{
		Config:    config.DefaultRunnerConfig(),
		Runtime:   core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3},
		Best:      svc.LoadBest(),
		Autopilot: runner.NewAutopilot(),
	})
	if err != nil {
		t.Fatalf("runner.New() error = %v", err)
	}
	NewModel(g, svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)

	// Drive the simulation directly so the run ends even though the
	// autopilot would keep jumping.
	s := g.Sim()
	s.Reset()
	for i := 0; i < 4000 && s.Phase().String() != "game_over"; i++ {
		s.Tick(0.05)
	}
	if s.Phase().String() != "game_over" {
		t.Fatal("expected run to end without jumping")
	}
	if best, _ := store.Best("best-test"); best != 5 {
		t.Errorf("stored best = %d after a demo run, expected 5", best)
	}
	if high, _ := store.HighScore(g.ID()); high != 0 {
		t.Errorf("HighScore(%q) = %d after a demo run, expected 0", g.ID(), high)
	}
}

func TestModelKeepsHigherBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveBest("best-test", 100000); err != nil {
		t.Fatalf("SaveBest() error = %v", err)
	}
	svc := Services{Store: store, BestKey: "best-test", Logger: log.New(io.Discard)}

	g := newGame(t, config.DifficultyNormal, svc.LoadBest())
	if g.State().Best != 100000 {
		t.Fatalf("Best = %d, expected the stored 100000", g.State().Best)
	}

	m := playUntilOver(t, NewModel(g, svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil))
	if m.State().Best != 100000 {
		t.Errorf("Best = %d after a lower run, expected 100000", m.State().Best)
	}
	if best, _ := store.Best("best-test"); best != 100000 {
		t.Errorf("stored best = %d, expected 100000", best)
	}
}

func TestModelMouseJumpStartsRun(t *testing.T) {
	g := newGame(t, config.DifficultyNormal, 0)
	m := NewModel(g, Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)

	m = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg(time.Now()))
	if m.State().Phase != "running" {
		t.Errorf("Phase = %q after click, expected running", m.State().Phase)
	}
}

func TestModelBack(t *testing.T) {
	g := newGame(t, config.DifficultyNormal, 0)
	m := NewModel(g, Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)
	m.embedded = true

	// Back is ignored during a run
	m = update(t, m, keyMsg(" "))
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while running")
	}

	// Paused runs may leave
	m = update(t, m, keyMsg("p"))
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("back should leave a paused run")
	}
	if m.IsQuitting() {
		t.Error("embedded model should not quit on back")
	}
}

func TestModelResize(t *testing.T) {
	g := newGame(t, config.DifficultyNormal, 0)
	m := NewModel(g, Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if w, h := g.Sim().FieldSize(); w != 1000 || h != 600 {
		t.Errorf("FieldSize() = %vx%v, expected 1000x600", w, h)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "Runner") {
		t.Error("View() should show the idle overlay")
	}
}

func TestModelPublishesSnapshots(t *testing.T) {
	hub := feed.NewHub(log.New(io.Discard))
	svc := Services{Feed: hub, SnapshotEvery: 2, FeedTag: "alice"}

	g := newGame(t, config.DifficultyNormal, 0)
	m := NewModel(g, svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)
	if m.publisher == nil {
		t.Fatal("expected a feed publisher")
	}

	base := time.Now()
	m = update(t, m, keyMsg(" "))
	for i := 0; i < 4; i++ {
		m = update(t, m, TickMsg(base.Add(time.Duration(i)*16*time.Millisecond)))
	}
	if m.State().Phase != "running" {
		t.Fatalf("Phase = %q, expected running", m.State().Phase)
	}
	// run_started plus snapshots on ticks 2 and 4; the hub is not running
	if got := hub.Queued(); got != 3 {
		t.Errorf("Queued() = %d, expected 3", got)
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, "", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if got := m.items[m.cursor].Preset; got != config.DifficultyNormal {
		t.Fatalf("initial selection = %q, expected normal", got)
	}

	next, _ := m.Update(keyMsg("down"))
	m = next.(MenuModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().Preset != config.DifficultyHard {
		t.Errorf("Selected() = %v, expected hard", m.Selected())
	}
	if cmd == nil {
		t.Error("selection should end the menu program")
	}
}

func TestMenuShowsStoredBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveBest(config.BestKey("", config.DifficultyHard), 321); err != nil {
		t.Fatalf("SaveBest() error = %v", err)
	}

	m := NewMenuModel(store, "", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	for _, item := range m.items {
		expected := 0
		if item.Preset == config.DifficultyHard {
			expected = 321
		}
		if item.Best != expected {
			t.Errorf("%s best = %d, expected %d", item.Preset, item.Best, expected)
		}
	}
	if !strings.Contains(m.View(), "321") {
		t.Error("View() should list the stored best")
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(config.ScoreKey(config.DifficultyEasy), 42); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}

	m := NewScoreboardModel(store, "", config.DifficultyNormal, 100, 30)
	if len(m.scores) != 0 {
		t.Errorf("normal tab has %d scores, expected 0", len(m.scores))
	}

	// Shift back one tab to easy
	next, _ := m.Update(keyMsg("h"))
	m = next.(ScoreboardModel)
	if m.tabs[m.tabCursor].ID != "runner/easy" {
		t.Fatalf("tab = %q, expected runner/easy", m.tabs[m.tabCursor].ID)
	}
	if len(m.scores) != 1 || m.scores[0].Score != 42 {
		t.Errorf("easy tab scores = %v, expected one run of 42", m.scores)
	}
	if m.stats == nil || m.stats.GamesCount != 1 {
		t.Errorf("easy tab stats = %+v, expected one run", m.stats)
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	svc := Services{Store: store, Logger: log.New(io.Discard)}
	s := NewSessionModel(svc, config.DefaultRunnerConfig(), core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(keyMsg("tab"))
	if s.screen != screenScores {
		t.Fatalf("screen = %v after tab, expected scores", s.screen)
	}
	step(keyMsg("esc"))
	if s.screen != screenMenu {
		t.Fatalf("screen = %v after back, expected menu", s.screen)
	}

	step(keyMsg("enter"))
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatalf("screen = %v after select, expected game", s.screen)
	}
	if s.gameModel.game.ID() != "runner" {
		t.Errorf("game ID = %q, expected runner", s.gameModel.game.ID())
	}

	// Idle game: back returns to the menu without quitting
	step(keyMsg("esc"))
	if s.screen != screenMenu || s.quitting {
		t.Errorf("screen = %v quitting = %v, expected menu", s.screen, s.quitting)
	}
}
