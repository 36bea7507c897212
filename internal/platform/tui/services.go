package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/platform/feed"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Services are the optional collaborators a game session reports to.
// Every field may be nil.
type Services struct {
	Store  *storage.Store
	Audio  *audio.Player
	Feed   *feed.Hub
	Logger *log.Logger

	// BestKey is the storage key of the persisted best score.
	BestKey string

	// SnapshotEvery is the number of ticks between feed snapshots.
	SnapshotEvery int

	// FeedTag prefixes the game id in feed messages so spectators can tell
	// concurrent sessions apart.
	FeedTag string
}

func (s Services) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// LoadBest reads the persisted best score. Failures are logged and count as
// no best.
func (s Services) LoadBest() int {
	if s.Store == nil || s.BestKey == "" {
		return 0
	}
	best, err := s.Store.Best(s.BestKey)
	if err != nil {
		s.logger().Warn("Could not load best score", "key", s.BestKey, "err", err)
		return 0
	}
	return best
}

// attachable is the part of a game the services subscribe to.
type attachable interface {
	ID() string
	Demo() bool
	Subscribe(runner.Listener)
}

// Attach subscribes every configured collaborator to game and returns the
// feed publisher, or nil when no feed is configured. Demo games are never
// recorded.
func (s Services) Attach(game attachable) *feed.Publisher {
	if s.Store != nil && !game.Demo() {
		game.Subscribe(s.recordRun(game.ID()))
	}
	if s.Audio != nil {
		game.Subscribe(s.Audio.HandleEvent)
	}
	if s.Feed == nil {
		return nil
	}
	name := game.ID()
	if s.FeedTag != "" {
		name = s.FeedTag + "@" + name
	}
	pub := feed.NewPublisher(s.Feed, name, s.SnapshotEvery)
	game.Subscribe(pub.HandleEvent)
	return pub
}

// recordRun persists finished runs that scored. Storage errors never
// interrupt play.
func (s Services) recordRun(gameID string) runner.Listener {
	return func(ev runner.Event) {
		if ev.Kind != runner.EventGameOver || ev.Score <= 0 {
			return
		}
		if err := s.Store.RecordRun(gameID, s.BestKey, ev.Score, ev.NewBest); err != nil {
			s.logger().Warn("Could not record run", "game", gameID, "score", ev.Score, "err", err)
			return
		}
		s.logger().Info("Run recorded", "game", gameID, "score", ev.Score, "best", ev.Best, "new_best", ev.NewBest)
	}
}
