// ABOUTME: Journal entry model with Mood enum and habit note log.
// ABOUTME: Entries are keyed by calendar date; at most one per day.
package models

// Mood is the ordered daily mood scale, best first.
type Mood string

const (
	MoodGreat   Mood = "great"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodBad     Mood = "bad"
	MoodAwful   Mood = "awful"
)

// AllMoods lists moods from best to worst.
var AllMoods = []Mood{MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodAwful}

// IsValid reports whether m is on the mood scale.
func (m Mood) IsValid() bool {
	for _, v := range AllMoods {
		if v == m {
			return true
		}
	}
	return false
}

// Rank returns 0 for great through 4 for awful, or -1 if unknown.
func (m Mood) Rank() int {
	for i, v := range AllMoods {
		if v == m {
			return i
		}
	}
	return -1
}

// HabitNote records a routine note saved on the entry's day.
type HabitNote struct {
	RoutineID    string `json:"routineId" yaml:"routine_id"`
	RoutineTitle string `json:"routineTitle" yaml:"routine_title"`
	Note         string `json:"note" yaml:"note"`
	Timestamp    int64  `json:"timestamp" yaml:"timestamp"`
}

// JournalEntry is the journal page for one calendar day.
type JournalEntry struct {
	Date     string      `json:"date" yaml:"date"`
	Content  string      `json:"content" yaml:"content"`
	Mood     Mood        `json:"mood" yaml:"mood"`
	HabitLog []HabitNote `json:"habitLog" yaml:"habit_log"`
}

// NewJournalEntry creates an empty neutral entry for date.
func NewJournalEntry(date string) *JournalEntry {
	return &JournalEntry{Date: date, Mood: MoodNeutral, HabitLog: []HabitNote{}}
}

// Clone returns a copy that does not share the habit log.
func (e JournalEntry) Clone() JournalEntry {
	out := e
	out.HabitLog = append([]HabitNote{}, e.HabitLog...)
	return out
}
