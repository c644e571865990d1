package app

import (
	"testing"
	"time"

	"github.com/jordangarrison/grove/internal/interactive"
	"github.com/stretchr/testify/require"
)

func TestScheduleTickFirstCallAlwaysFires(t *testing.T) {
	s := newTestState(t)
	due := time.Now().Add(50 * time.Millisecond)
	cmd := s.ScheduleTick(due, 50)
	require.NotNil(t, cmd)
	require.Equal(t, due, s.NextTickDueAt)
}

func TestScheduleTickNeverPostponesASoonerTick(t *testing.T) {
	s := newTestState(t)
	soon := time.Now().Add(10 * time.Millisecond)
	s.ScheduleTick(soon, 10)

	later := soon.Add(time.Second)
	cmd := s.ScheduleTick(later, 1000)
	require.Nil(t, cmd, "a later due time must not override an already-sooner-due tick")
	require.Equal(t, soon, s.NextTickDueAt, "NextTickDueAt must remain the sooner time")
}

func TestScheduleTickAllowsASoonerReschedule(t *testing.T) {
	s := newTestState(t)
	later := time.Now().Add(time.Second)
	s.ScheduleTick(later, 1000)

	sooner := time.Now().Add(10 * time.Millisecond)
	cmd := s.ScheduleTick(sooner, 10)
	require.NotNil(t, cmd)
	require.Equal(t, sooner, s.NextTickDueAt)
}

func TestHandleTickDropsEarlyArrival(t *testing.T) {
	s := newTestState(t)
	due := time.Now().Add(time.Hour)
	s.NextTickDueAt = due

	cmd := s.HandleTick(TickMsg{At: time.Now()})
	require.Nil(t, cmd)
	require.Equal(t, due, s.NextTickDueAt, "a premature tick must not reschedule")
}

func TestHandleTickReschedulesOnDueArrival(t *testing.T) {
	s := newTestState(t)
	due := time.Now().Add(-time.Millisecond)
	s.NextTickDueAt = due

	cmd := s.HandleTick(TickMsg{At: time.Now()})
	require.NotNil(t, cmd)
	require.True(t, s.NextTickDueAt.After(due))
}

func TestNextPollIntervalDefaultsToSlowest(t *testing.T) {
	s := newTestState(t)
	require.Equal(t, 2*time.Second, s.nextPollInterval())
}

func TestNextPollIntervalFastWhileInteractiveTyping(t *testing.T) {
	s := newTestState(t)
	s.Interactive = interactive.New("grove-a-agent")
	require.Equal(t, 15*time.Millisecond, s.nextPollInterval())
}

func TestRecentOutputChangingFalseWithoutEngine(t *testing.T) {
	s := newTestState(t)
	s.Engine = nil
	require.False(t, s.recentOutputChanging())
}

func TestRecentOutputChangingReflectsActivityWindow(t *testing.T) {
	s := newTestState(t)
	require.False(t, s.recentOutputChanging())
	s.Engine.NoteActivity(true)
	require.True(t, s.recentOutputChanging())
}
