// Package feed streams a live run to WebSocket spectators. A Hub fans JSON
// messages out to every connected client; a Publisher turns simulation
// events and periodic snapshots into those messages.
package feed

import (
	"encoding/json"

	"github.com/vovakirdan/tui-runner/internal/runner"
)

// TypeSnapshot marks a periodic full-state message. Event messages use the
// event kind's wire name.
const TypeSnapshot = "snapshot"

// Message is one frame sent to spectators.
type Message struct {
	Type     string           `json:"type"`
	Game     string           `json:"game,omitempty"`
	Run      string           `json:"run,omitempty"` // Unique id of the run the frame belongs to
	Phase    string           `json:"phase"`
	Score    int              `json:"score"`
	Best     int              `json:"best"`
	NewBest  bool             `json:"new_best,omitempty"`
	Obstacle *runner.Obstacle `json:"obstacle,omitempty"`
	Snapshot *runner.Snapshot `json:"snapshot,omitempty"`
}

// EventMessage converts a simulation event into a feed message.
func EventMessage(game string, ev runner.Event) Message {
	msg := Message{
		Type:    ev.Kind.String(),
		Game:    game,
		Phase:   runner.PhaseRunning.String(),
		Score:   ev.Score,
		Best:    ev.Best,
		NewBest: ev.NewBest,
	}
	switch ev.Kind {
	case runner.EventGameOver:
		msg.Phase = runner.PhaseGameOver.String()
	case runner.EventSpawn:
		o := ev.Obstacle
		msg.Obstacle = &o
	}
	return msg
}

// SnapshotMessage wraps a full simulation snapshot.
func SnapshotMessage(game string, snap runner.Snapshot) Message {
	return Message{
		Type:     TypeSnapshot,
		Game:     game,
		Phase:    snap.Phase.String(),
		Score:    int(snap.Score),
		Best:     snap.Best,
		Snapshot: &snap,
	}
}

// Encode serializes the message for the wire.
func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}
