package runner

// EventKind identifies what happened inside a tick or intent call.
type EventKind int

const (
	EventRunStarted EventKind = iota // A new run began (reset)
	EventJump                        // A jump was accepted
	EventSpawn                       // An obstacle entered the field
	EventGameOver                    // The actor hit an obstacle
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventRunStarted:
		return "run_started"
	case EventJump:
		return "jump"
	case EventSpawn:
		return "spawn"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to every subscribed Listener.
type Event struct {
	Kind EventKind

	// Score is the floored score when the event fired.
	// For EventGameOver it is the final score of the run.
	Score int

	// Best is the best score after the event was applied.
	Best int

	// NewBest is set on EventGameOver when the run beat the previous best.
	NewBest bool

	// Obstacle is the spawned obstacle for EventSpawn.
	Obstacle Obstacle
}

// Listener receives simulation events. Listeners run on the goroutine that
// called Tick, Jump or Reset and must not call back into the simulation.
type Listener func(Event)
