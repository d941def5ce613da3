// ABOUTME: Rest-day and frequency logic shared by toggle, stats, and validation.
// ABOUTME: Every consistency number in the app is computed here.
package tracker

import (
	"math"

	"github.com/harperreed/apex/internal/models"
)

// fullWeek is the active set for routines without an explicit frequency.
var fullWeek = [models.DaysPerWeek]bool{true, true, true, true, true, true, true}

// ActiveSet returns a membership table of the routine's active weekdays.
// A nil frequency means every day; out-of-range indices are ignored.
func ActiveSet(frequency []int) [models.DaysPerWeek]bool {
	if frequency == nil {
		return fullWeek
	}
	var set [models.DaysPerWeek]bool
	for _, d := range frequency {
		if d >= 0 && d < models.DaysPerWeek {
			set[d] = true
		}
	}
	return set
}

// ActiveDays returns the sorted, de-duplicated active weekday indices.
func ActiveDays(frequency []int) []int {
	set := ActiveSet(frequency)
	days := make([]int, 0, models.DaysPerWeek)
	for i, on := range set {
		if on {
			days = append(days, i)
		}
	}
	return days
}

// IsActiveDay reports whether day is scheduled for the routine.
func IsActiveDay(r *models.Routine, day int) bool {
	if day < 0 || day >= models.DaysPerWeek {
		return false
	}
	return ActiveSet(r.Frequency)[day]
}

// ScheduleCounts returns how many days are active and how many of those are completed.
func ScheduleCounts(r *models.Routine) (active, completed int) {
	set := ActiveSet(r.Frequency)
	for i, on := range set {
		if !on {
			continue
		}
		active++
		if r.CompletedDays[i] {
			completed++
		}
	}
	return active, completed
}

// ComputeConsistency returns round(100 * completedActive / active), or 0
// when the routine has no active days.
func ComputeConsistency(r *models.Routine) int {
	active, completed := ScheduleCounts(r)
	return percent(completed, active)
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
