// Package tui provides the Bubble Tea front end for the runner: the game
// model, the difficulty menu, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameGap caps the measured frame time after a stall.
const maxFrameGap = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds elapsed between two ticks. The first tick
// (zero prev) and clock jumps backwards fall back to one nominal frame.
func frameDelta(prev, now time.Time, tickRate int) float64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	nominal := 1.0 / float64(tickRate)
	if prev.IsZero() || !now.After(prev) {
		return nominal
	}
	return min(now.Sub(prev), maxFrameGap).Seconds()
}
