// ABOUTME: Focus timer state machine independent of any UI.
// ABOUTME: Idle, Running, Paused, and Finished states with a one-shot completion signal.
package focus

import (
	"errors"
	"fmt"
	"time"
)

// Duration bounds in minutes.
const (
	DefaultMinutes = 25
	MinMinutes     = 1
	MaxMinutes     = 180
)

// ErrRunning is returned when the duration changes mid-countdown.
var ErrRunning = errors.New("timer is running")

// Status is the timer's state.
type Status int

const (
	Idle Status = iota
	Running
	Paused
	Finished
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Timer counts down a focus session one second at a time.
type Timer struct {
	duration  time.Duration
	remaining time.Duration
	status    Status
}

// NewTimer returns an idle timer of the given length in minutes.
func NewTimer(minutes int) (*Timer, error) {
	t := &Timer{}
	if err := t.SetDuration(minutes); err != nil {
		return nil, err
	}
	return t, nil
}

// SetDuration changes the session length. It resets the countdown and
// clears a finished session. Not allowed while running.
func (t *Timer) SetDuration(minutes int) error {
	if t.status == Running {
		return ErrRunning
	}
	if minutes < MinMinutes || minutes > MaxMinutes {
		return fmt.Errorf("duration must be %d-%d minutes, got %d", MinMinutes, MaxMinutes, minutes)
	}
	t.duration = time.Duration(minutes) * time.Minute
	t.remaining = t.duration
	t.status = Idle
	return nil
}

// Start begins or resumes the countdown. A finished timer starts over.
func (t *Timer) Start() {
	switch t.status {
	case Idle, Paused:
		t.status = Running
	case Finished:
		t.remaining = t.duration
		t.status = Running
	}
}

// Pause stops the countdown, keeping the remaining time.
func (t *Timer) Pause() {
	if t.status == Running {
		t.status = Paused
	}
}

// Toggle starts a stopped timer or pauses a running one.
func (t *Timer) Toggle() {
	if t.status == Running {
		t.Pause()
		return
	}
	t.Start()
}

// Reset returns to Idle with the full duration.
func (t *Timer) Reset() {
	t.remaining = t.duration
	t.status = Idle
}

// Tick advances one second. It reports true only on the tick that
// reaches zero, so the completion reward is granted exactly once.
func (t *Timer) Tick() bool {
	if t.status != Running {
		return false
	}
	t.remaining -= time.Second
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.status = Finished
	return true
}

// Status returns the current state.
func (t *Timer) Status() Status { return t.status }

// Duration returns the configured session length.
func (t *Timer) Duration() time.Duration { return t.duration }

// Remaining returns the time left in the session.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Minutes returns the configured length in whole minutes.
func (t *Timer) Minutes() int { return int(t.duration / time.Minute) }

// Percent returns elapsed progress in [0,1].
func (t *Timer) Percent() float64 {
	if t.duration == 0 {
		return 0
	}
	return 1 - float64(t.remaining)/float64(t.duration)
}

// Clock formats the remaining time as MM:SS.
func (t *Timer) Clock() string {
	secs := int(t.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
