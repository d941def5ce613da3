// ABOUTME: Achievement badges derived from routines, tasks, and level.
// ABOUTME: Badges are recomputed on read and never persisted.
package tracker

import "github.com/harperreed/apex/internal/models"

// Badge is an achievement and whether it is unlocked.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// ComputeBadges evaluates every badge against the current state.
func ComputeBadges(routines []models.Routine, tasks []models.Task, level LevelInfo) []Badge {
	completions := 0
	maxStreak := 0
	for i := range routines {
		for _, done := range routines[i].CompletedDays {
			if done {
				completions++
			}
		}
		maxStreak = max(maxStreak, routines[i].Streak)
	}
	tasksDone := 0
	for _, t := range tasks {
		if t.Completed {
			tasksDone++
		}
	}

	return []Badge{
		{ID: "week-warrior", Name: "Week Warrior", Description: "20+ completions this week", Unlocked: completions >= 20},
		{ID: "consistency-king", Name: "Consistency King", Description: "Reach a 7 day streak", Unlocked: maxStreak >= 7},
		{ID: "task-master", Name: "Task Master", Description: "Complete 10 tasks", Unlocked: tasksDone >= 10},
		{ID: "titan-status", Name: "Titan Status", Description: "Reach level 5", Unlocked: level.Level >= 5},
		{ID: "laser-focused", Name: "Laser Focused", Description: "Earn 50 XP", Unlocked: level.XP >= 50},
	}
}
