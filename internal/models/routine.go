// ABOUTME: Routine model with Category and RoutineType enums.
// ABOUTME: Positive routines track weekly check-offs; negative ones track days clean.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups routines by life area.
type Category string

const (
	CategoryCareer  Category = "Career"
	CategoryGrowth  Category = "Growth"
	CategoryHealth  Category = "Health"
	CategoryMindset Category = "Mindset"
)

// DefaultCategory is used when input is missing or unrecognized.
const DefaultCategory = CategoryGrowth

// AllCategories returns all valid categories in display order.
var AllCategories = []Category{CategoryCareer, CategoryGrowth, CategoryHealth, CategoryMindset}

// CategoryColors maps categories to their icon gradient.
var CategoryColors = map[Category]string{
	CategoryCareer:  "from-cyan-500 to-blue-600",
	CategoryGrowth:  "from-pink-500 to-rose-500",
	CategoryHealth:  "from-orange-400 to-red-500",
	CategoryMindset: "from-purple-500 to-indigo-600",
}

// FallbackColor is the icon gradient for unrecognized categories.
const FallbackColor = "from-gray-500 to-gray-700"

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	_, ok := CategoryColors[c]
	return ok
}

// Color returns the icon gradient for c, falling back to gray.
func (c Category) Color() string {
	if color, ok := CategoryColors[c]; ok {
		return color
	}
	return FallbackColor
}

// ParseCategory matches s case-insensitively against the fixed set.
func ParseCategory(s string) (Category, bool) {
	for _, c := range AllCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// RoutineType distinguishes habits being built from habits being quit.
type RoutineType string

const (
	RoutinePositive RoutineType = "positive"
	RoutineNegative RoutineType = "negative"
)

// IsValid reports whether t is a known routine type.
func (t RoutineType) IsValid() bool {
	return t == RoutinePositive || t == RoutineNegative
}

// DaysPerWeek is the length of CompletedDays (Mon..Sun).
const DaysPerWeek = 7

// DayNames are short weekday labels indexed Mon=0..Sun=6.
var DayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayIndex returns t's weekday as Mon=0..Sun=6.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysPerWeek
}

// ParseDay accepts an index 0-6 or a day name prefix like "mon" or "tuesday".
func ParseDay(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= DaysPerWeek {
			return 0, fmt.Errorf("day %d out of range 0-6", n)
		}
		return n, nil
	}
	if len(s) >= 3 {
		for i, name := range DayNames {
			if strings.HasPrefix(s, strings.ToLower(name)) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// Weekdays lists active weekday indices. Nil means every day; an empty,
// non-nil list means no scheduled days.
type Weekdays []int

// IsZero keeps YAML omitempty from dropping an empty schedule.
func (w Weekdays) IsZero() bool {
	return w == nil
}

// Routine is a tracked habit.
type Routine struct {
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	Category      Category          `json:"category" yaml:"category"`
	Type          RoutineType       `json:"type" yaml:"type"`
	Consistency   int               `json:"consistency" yaml:"consistency"`
	CompletedDays [DaysPerWeek]bool `json:"completedDays" yaml:"completed_days"`
	IconColor     string            `json:"iconColor" yaml:"icon_color"`
	Streak        int               `json:"streak" yaml:"streak"`
	Frequency     Weekdays          `json:"frequency" yaml:"frequency,omitempty"`
	Target        *int              `json:"target,omitempty" yaml:"target,omitempty"`
	StartDate     int64             `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	Notes         string            `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewRoutine creates a positive routine with a generated ID and the
// category's icon color. Unknown categories fall back to DefaultCategory.
func NewRoutine(title string, category Category) *Routine {
	if !category.IsValid() {
		category = DefaultCategory
	}
	return &Routine{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  category,
		Type:      RoutinePositive,
		IconColor: category.Color(),
	}
}

// WithType sets the routine type. Negative routines start their clean
// streak at now.
func (r *Routine) WithType(t RoutineType, now time.Time) *Routine {
	r.Type = t
	if t == RoutineNegative && r.StartDate == 0 {
		r.StartDate = now.UnixMilli()
	}
	return r
}

// WithFrequency restricts the routine to the given weekday indices. An
// empty list leaves the routine with no scheduled days.
func (r *Routine) WithFrequency(days []int) *Routine {
	r.Frequency = append(Weekdays{}, days...)
	return r
}

// WithTarget sets an optional numeric goal.
func (r *Routine) WithTarget(target int) *Routine {
	r.Target = &target
	return r
}

// IsNegative reports whether the routine tracks a habit being quit.
func (r *Routine) IsNegative() bool {
	return r.Type == RoutineNegative
}

// DaysClean returns whole days elapsed since StartDate for negative routines.
func (r *Routine) DaysClean(now time.Time) int {
	if !r.IsNegative() || r.StartDate == 0 {
		return 0
	}
	elapsed := now.UnixMilli() - r.StartDate
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / int64(24*time.Hour/time.Millisecond))
}

// ShortID returns the 8-character ID prefix shown in listings.
func (r *Routine) ShortID() string {
	return shortID(r.ID)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Clone returns a deep copy so reducers never share slices or pointers
// with the previous state.
func (r Routine) Clone() Routine {
	out := r
	if r.Frequency != nil {
		out.Frequency = append(Weekdays{}, r.Frequency...)
	}
	if r.Target != nil {
		t := *r.Target
		out.Target = &t
	}
	return out
}
