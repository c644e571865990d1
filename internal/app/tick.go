package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordangarrison/grove/internal/capture"
)

// ScheduleTick conditionally emits a Cmd::Tick for dueAt — but only when
// dueAt is sooner than the currently-scheduled due time (spec.md §4.1/§5:
// "the reducer never postpones an already-sooner-due tick", testable
// property 1). Returns nil when the existing timer already fires sooner.
func (s *State) ScheduleTick(dueAt time.Time, intervalMS int) tea.Cmd {
	if !s.NextTickDueAt.IsZero() && !dueAt.Before(s.NextTickDueAt) {
		return nil
	}
	s.NextTickDueAt = dueAt
	s.NextTickIntervalMS = intervalMS

	delay := time.Until(dueAt)
	if delay < 0 {
		delay = 0
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// HandleTick processes an incoming TickMsg: drops it if it arrived before
// the scheduled due time (clock skew / coalesced timers), else computes
// the next interval and reschedules.
func (s *State) HandleTick(msg TickMsg) tea.Cmd {
	if msg.At.Before(s.NextTickDueAt) {
		if s.Events != nil {
			s.Events.Append("tick/skipped", map[string]string{"reason": "not_due"})
		}
		return nil
	}
	// This tick has fired; clear its due time so the next one is scheduled.
	s.NextTickDueAt = time.Time{}

	s.ClearExpiredToast()
	s.spinnerFrame++

	interval := s.nextPollInterval()
	return tea.Batch(s.startPollCmd(), s.ScheduleTick(time.Now().Add(interval), int(interval/time.Millisecond)))
}

// nextPollInterval derives the adaptive tick interval from current state
// (spec.md §4.1: selected workspace status, poll-in-flight, interactive
// activity, time since last key, output-changing).
func (s *State) nextPollInterval() time.Duration {
	interactiveActive := s.Interactive != nil
	timeSinceKey := time.Hour
	if interactiveActive && !s.Interactive.LastKeyTime.IsZero() {
		timeSinceKey = time.Since(s.Interactive.LastKeyTime)
	}
	outputChanging := s.recentOutputChanging()

	return capture.PollInterval(interactiveActive, s.pending.previewPollInFlight, timeSinceKey, outputChanging)
}

// recentOutputChanging reports whether the capture engine's activity window
// shows output changing within the last few ticks.
func (s *State) recentOutputChanging() bool {
	if s.Engine == nil {
		return false
	}
	return s.Engine.RecentlyChanging()
}
