// ABOUTME: Tests for the focus timer state machine.
// ABOUTME: Covers transitions, pause semantics, and one-shot completion.
package focus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimerBounds(t *testing.T) {
	_, err := NewTimer(0)
	assert.Error(t, err)
	_, err = NewTimer(MaxMinutes + 1)
	assert.Error(t, err)

	tm, err := NewTimer(DefaultMinutes)
	require.NoError(t, err)
	assert.Equal(t, Idle, tm.Status())
	assert.Equal(t, "25:00", tm.Clock())
}

func TestTimerFinishesOnce(t *testing.T) {
	tm, err := NewTimer(1)
	require.NoError(t, err)
	tm.Start()

	finished := 0
	for i := 0; i < 90; i++ {
		if tm.Tick() {
			finished++
		}
	}
	assert.Equal(t, 1, finished)
	assert.Equal(t, Finished, tm.Status())
	assert.Equal(t, time.Duration(0), tm.Remaining())
	assert.InDelta(t, 1.0, tm.Percent(), 1e-9)
}

func TestPauseKeepsRemaining(t *testing.T) {
	tm, _ := NewTimer(1)
	tm.Toggle()
	for i := 0; i < 10; i++ {
		tm.Tick()
	}
	tm.Toggle()
	assert.Equal(t, Paused, tm.Status())
	assert.False(t, tm.Tick())
	assert.Equal(t, 50*time.Second, tm.Remaining())

	tm.Toggle()
	assert.Equal(t, Running, tm.Status())
	tm.Tick()
	assert.Equal(t, "00:49", tm.Clock())
}

func TestResetReturnsToIdle(t *testing.T) {
	tm, _ := NewTimer(2)
	tm.Start()
	tm.Tick()
	tm.Reset()
	assert.Equal(t, Idle, tm.Status())
	assert.Equal(t, 2*time.Minute, tm.Remaining())
}

func TestSetDuration(t *testing.T) {
	tm, _ := NewTimer(1)
	tm.Start()
	assert.ErrorIs(t, tm.SetDuration(5), ErrRunning)

	for i := 0; i < 60; i++ {
		tm.Tick()
	}
	require.Equal(t, Finished, tm.Status())

	require.NoError(t, tm.SetDuration(5))
	assert.Equal(t, Idle, tm.Status())
	assert.Equal(t, 5*time.Minute, tm.Remaining())
	assert.Equal(t, 5, tm.Minutes())
}

func TestStartAfterFinishRestarts(t *testing.T) {
	tm, _ := NewTimer(1)
	tm.Start()
	for i := 0; i < 60; i++ {
		tm.Tick()
	}
	tm.Start()
	assert.Equal(t, Running, tm.Status())
	assert.Equal(t, time.Minute, tm.Remaining())
}
