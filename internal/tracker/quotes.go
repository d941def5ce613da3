// ABOUTME: Daily stoic quote and the shareable progress summary.
package tracker

import (
	"fmt"
	"time"
)

var quotes = []string{
	"We are what we repeatedly do. Excellence, then, is not an act, but a habit.",
	"He who has a why to live can bear almost any how.",
	"Discipline is doing what needs to be done, even if you don't want to do it.",
	"The obstacle is the way.",
	"Waste no more time arguing about what a good man should be. Be one.",
	"It does not matter how slowly you go as long as you do not stop.",
	"Your future is created by what you do today, not tomorrow.",
}

// DailyQuote picks a quote deterministically from the calendar day.
func DailyQuote(day time.Time) string {
	return quotes[day.YearDay()%len(quotes)]
}

// ShareSummary formats the text copied by the share action.
func ShareSummary(level LevelInfo, activeHabits int) string {
	return fmt.Sprintf("🔥 Apex Tracker Update\nLevel: %s\nXP: %d\nActive Habits: %d\n\nJoin me on Apex.",
		level.Title, level.XP, activeHabits)
}
