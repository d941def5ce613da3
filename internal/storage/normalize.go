// ABOUTME: Repairs loaded or imported state so every invariant holds.
// ABOUTME: Consistency is always recomputed from the shared schedule logic.
package storage

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/tracker"
)

// Normalize fixes st in place and returns a description of each repair.
func Normalize(st *tracker.State, now time.Time) []string {
	var fixes []string
	note := func(format string, args ...any) {
		fixes = append(fixes, fmt.Sprintf(format, args...))
	}

	if _, err := tracker.ParseTheme(string(st.Theme)); err != nil {
		note("theme %q reset to dark", st.Theme)
		st.Theme = tracker.ThemeDark
	}
	if st.XP < 0 {
		note("negative xp %d clamped", st.XP)
		st.XP = 0
	}

	normalizeRoutines(st, now, note)
	normalizeTasks(st, now, note)
	normalizeJournal(st, note)

	if len(st.Chat) == 0 {
		st.Chat = []models.ChatMessage{models.GreetingMessage()}
	}
	for i := range st.Chat {
		if st.Chat[i].ID == "" {
			st.Chat[i].ID = ulid.Make().String()
		}
		if st.Chat[i].Role != models.RoleUser && st.Chat[i].Role != models.RoleModel {
			st.Chat[i].Role = models.RoleModel
		}
	}

	if today := models.DateKey(now); st.Usage.Date != today {
		st.Usage = models.DailyUsage{Date: today}
	}
	if st.Usage.Count < 0 {
		st.Usage.Count = 0
	}

	if p := st.Pending; p != nil {
		if len(p.Candidates) == 0 {
			st.Pending = nil
		} else {
			p.Selected = slices.DeleteFunc(p.Selected, func(i int) bool { return i < 0 || i >= len(p.Candidates) })
			slices.Sort(p.Selected)
			p.Selected = slices.Compact(p.Selected)
		}
	}
	return fixes
}

func normalizeRoutines(st *tracker.State, now time.Time, note func(string, ...any)) {
	if st.Routines == nil {
		st.Routines = []models.Routine{}
	}
	seen := make(map[string]bool, len(st.Routines))
	for i := range st.Routines {
		r := &st.Routines[i]
		if r.ID == "" || seen[r.ID] {
			r.ID = uuid.New().String()
			note("routine %q given a new id", r.Title)
		}
		seen[r.ID] = true
		if strings.TrimSpace(r.Title) == "" {
			r.Title = "Untitled"
		}
		if !r.Category.IsValid() {
			if c, ok := models.ParseCategory(string(r.Category)); ok {
				r.Category = c
			} else {
				note("routine %q category %q set to %s", r.Title, r.Category, models.DefaultCategory)
				r.Category = models.DefaultCategory
			}
		}
		if r.IconColor == "" {
			r.IconColor = r.Category.Color()
		}
		if !r.Type.IsValid() {
			r.Type = models.RoutinePositive
		}
		if r.IsNegative() && r.StartDate == 0 {
			r.StartDate = now.UnixMilli()
		}
		if r.Streak < 0 {
			r.Streak = 0
		}
		if r.Frequency != nil {
			r.Frequency = tracker.ActiveDays(r.Frequency)
		}
		if c := tracker.ComputeConsistency(r); c != r.Consistency {
			note("routine %q consistency %d recomputed to %d", r.Title, r.Consistency, c)
			r.Consistency = c
		}
	}
}

func normalizeTasks(st *tracker.State, now time.Time, note func(string, ...any)) {
	if st.Tasks == nil {
		st.Tasks = []models.Task{}
	}
	for i := range st.Tasks {
		t := &st.Tasks[i]
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if strings.TrimSpace(t.Title) == "" {
			t.Title = "Untitled"
		}
		if t.CreatedAt == 0 {
			t.CreatedAt = now.UnixMilli()
		}
		if t.Date != "" && !models.IsValidDateKey(t.Date) {
			note("task %q date %q cleared", t.Title, t.Date)
			t.Date = ""
		}
	}
}

// normalizeJournal drops undated entries and merges duplicate dates so the
// date stays unique.
func normalizeJournal(st *tracker.State, note func(string, ...any)) {
	out := make([]models.JournalEntry, 0, len(st.Journal))
	index := make(map[string]int, len(st.Journal))
	for _, e := range st.Journal {
		if !models.IsValidDateKey(e.Date) {
			note("journal entry with date %q dropped", e.Date)
			continue
		}
		if !e.Mood.IsValid() {
			e.Mood = models.MoodNeutral
		}
		if e.HabitLog == nil {
			e.HabitLog = []models.HabitNote{}
		}
		if i, ok := index[e.Date]; ok {
			note("duplicate journal entries for %s merged", e.Date)
			merged := &out[i]
			if merged.Content == "" {
				merged.Content = e.Content
			}
			merged.HabitLog = append(merged.HabitLog, e.HabitLog...)
			continue
		}
		index[e.Date] = len(out)
		out = append(out, e)
	}
	st.Journal = out
}
