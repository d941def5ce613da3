// ABOUTME: The single application state object and its persisted keys.
// ABOUTME: Every durable value lives here; the reducer returns modified copies.
package tracker

import (
	"github.com/harperreed/apex/internal/models"
)

// Theme is the presentation colour scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", ErrInvalidTheme
}

// Key names one independently persisted value.
type Key string

const (
	KeyTheme      Key = "theme"
	KeyHasEntered Key = "has_entered"
	KeyRoutines   Key = "routines"
	KeyTasks      Key = "tasks"
	KeyXP         Key = "xp"
	KeyPro        Key = "is_pro"
	KeyJournal    Key = "journal"
	KeyChat       Key = "chat_history"
	KeyUsage      Key = "guru_usage"
	KeyPending    Key = "pending_suggestions"
)

// AllKeys lists every persisted key in load order.
var AllKeys = []Key{
	KeyTheme, KeyHasEntered, KeyRoutines, KeyTasks, KeyXP,
	KeyPro, KeyJournal, KeyChat, KeyUsage, KeyPending,
}

// Pending is an AI-generated candidate list awaiting review.
type Pending struct {
	Goal       string           `json:"goal"`
	Candidates []models.Routine `json:"candidates"`
	Selected   []int            `json:"selected"`
}

// State is everything the app persists.
type State struct {
	Theme      Theme
	HasEntered bool
	Routines   []models.Routine
	Tasks      []models.Task
	XP         int
	IsPro      bool
	Journal    []models.JournalEntry
	Chat       []models.ChatMessage
	Usage      models.DailyUsage
	Pending    *Pending
}

// DefaultState is the state of a fresh install.
func DefaultState() State {
	return State{
		Theme:    ThemeDark,
		Routines: []models.Routine{},
		Tasks:    []models.Task{},
		Journal:  []models.JournalEntry{},
		Chat:     []models.ChatMessage{models.GreetingMessage()},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Routines = make([]models.Routine, len(s.Routines))
	for i, r := range s.Routines {
		out.Routines[i] = r.Clone()
	}
	out.Tasks = append([]models.Task{}, s.Tasks...)
	out.Journal = make([]models.JournalEntry, len(s.Journal))
	for i, e := range s.Journal {
		out.Journal[i] = e.Clone()
	}
	out.Chat = make([]models.ChatMessage, len(s.Chat))
	for i, m := range s.Chat {
		c := m
		if m.SuggestedRoutines != nil {
			c.SuggestedRoutines = make([]models.Routine, len(m.SuggestedRoutines))
			for j, r := range m.SuggestedRoutines {
				c.SuggestedRoutines[j] = r.Clone()
			}
		}
		out.Chat[i] = c
	}
	if s.Pending != nil {
		p := *s.Pending
		p.Candidates = make([]models.Routine, len(s.Pending.Candidates))
		for i, r := range s.Pending.Candidates {
			p.Candidates[i] = r.Clone()
		}
		p.Selected = append([]int{}, s.Pending.Selected...)
		out.Pending = &p
	}
	return out
}

// FindRoutine returns the index of the routine with the exact id, or -1.
func (s *State) FindRoutine(id string) int {
	for i := range s.Routines {
		if s.Routines[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTask returns the index of the task with the exact id, or -1.
func (s *State) FindTask(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// FindJournal returns the index of the entry for date, or -1.
func (s *State) FindJournal(date string) int {
	for i := range s.Journal {
		if s.Journal[i].Date == date {
			return i
		}
	}
	return -1
}

// FindMessage returns the index of the chat message with id, or -1.
func (s *State) FindMessage(id string) int {
	for i := range s.Chat {
		if s.Chat[i].ID == id {
			return i
		}
	}
	return -1
}
