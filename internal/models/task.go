// ABOUTME: Task model for one-off to-dos.
// ABOUTME: Tasks may be scheduled on a YYYY-MM-DD date key.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day key format used for tasks and journal entries.
const DateLayout = "2006-01-02"

// Task is a one-off to-do item.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
	CreatedAt int64  `json:"createdAt" yaml:"created_at"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
}

// NewTask creates an incomplete task with a generated ID.
func NewTask(title string, now time.Time) *Task {
	return &Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now.UnixMilli(),
	}
}

// WithDate schedules the task on a calendar day.
func (t *Task) WithDate(date string) *Task {
	t.Date = date
	return t
}

// ShortID returns the 8-character ID prefix shown in listings.
func (t *Task) ShortID() string {
	return shortID(t.ID)
}

// DateKey formats t as a calendar-day key in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// IsValidDateKey reports whether s parses as YYYY-MM-DD.
func IsValidDateKey(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
