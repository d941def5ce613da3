// ABOUTME: Weekly completion statistics and per-category balance.
// ABOUTME: Only positive routines count toward weekly stats.
package tracker

import "github.com/harperreed/apex/internal/models"

// OnTrackThreshold is the consistency at which a routine counts as on track.
const OnTrackThreshold = 80

// WeeklyStats summarizes this week's scheduled vs completed days.
type WeeklyStats struct {
	TotalScheduled     int `json:"total_scheduled"`
	CompletedScheduled int `json:"completed_scheduled"`
	Percentage         int `json:"percentage"`
	OnTrack            int `json:"on_track"`
	PositiveCount      int `json:"positive_count"`
}

// ComputeWeeklyStats aggregates active-day counts across positive routines.
func ComputeWeeklyStats(routines []models.Routine) WeeklyStats {
	var s WeeklyStats
	for i := range routines {
		r := &routines[i]
		if r.IsNegative() {
			continue
		}
		s.PositiveCount++
		active, completed := ScheduleCounts(r)
		s.TotalScheduled += active
		s.CompletedScheduled += completed
		if ComputeConsistency(r) >= OnTrackThreshold {
			s.OnTrack++
		}
	}
	s.Percentage = percent(s.CompletedScheduled, s.TotalScheduled)
	return s
}

// CategoryWeight is one bar of the category balance chart.
type CategoryWeight struct {
	Category models.Category `json:"category"`
	Score    int             `json:"score"`
	Percent  int             `json:"percent"`
}

// CategoryBalance weighs each category by max(streak,1) times completed
// days and normalizes against the heaviest category.
func CategoryBalance(routines []models.Routine) []CategoryWeight {
	scores := make(map[models.Category]int, len(models.AllCategories))
	for i := range routines {
		r := &routines[i]
		completed := 0
		for _, done := range r.CompletedDays {
			if done {
				completed++
			}
		}
		scores[r.Category] += max(r.Streak, 1) * completed
	}

	top := 0
	for _, v := range scores {
		top = max(top, v)
	}

	out := make([]CategoryWeight, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		out = append(out, CategoryWeight{
			Category: c,
			Score:    scores[c],
			Percent:  percent(scores[c], top),
		})
	}
	return out
}
