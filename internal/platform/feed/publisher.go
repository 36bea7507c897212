package feed

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-runner/internal/runner"
)

// Publisher forwards one game's events to a hub and sends a full snapshot
// every few ticks. Every run gets a fresh id so spectators can tell a
// restart from a continuing run.
type Publisher struct {
	hub   *Hub
	game  string
	every int
	ticks int
	run   string
	newID func() string
}

// NewPublisher creates a publisher for game. every <= 0 disables snapshots.
func NewPublisher(hub *Hub, game string, every int) *Publisher {
	return &Publisher{hub: hub, game: game, every: every, newID: uuid.NewString}
}

// Run returns the id of the current run, or "" before the first run starts.
func (p *Publisher) Run() string {
	return p.run
}

// HandleEvent publishes a simulation event. It has the runner.Listener
// signature.
func (p *Publisher) HandleEvent(ev runner.Event) {
	if ev.Kind == runner.EventRunStarted {
		p.ticks = 0
		p.run = p.newID()
	}
	msg := EventMessage(p.game, ev)
	msg.Run = p.run
	p.hub.Publish(msg)
}

// Tick counts one simulation tick and publishes snap when a snapshot is due.
// snap is only called when needed.
func (p *Publisher) Tick(snap func() runner.Snapshot) {
	if p.every <= 0 {
		return
	}
	p.ticks++
	if p.ticks%p.every != 0 {
		return
	}
	msg := SnapshotMessage(p.game, snap())
	msg.Run = p.run
	p.hub.Publish(msg)
}
