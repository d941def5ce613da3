// ABOUTME: XP level table and the level/progress derivation.
// ABOUTME: Past the last threshold the next target is synthesized as xp*1.5.
package tracker

import "math"

// LevelDef is one row of the level table.
type LevelDef struct {
	Level     int
	Title     string
	Threshold int
	Color     string
}

// DefaultLevels is the fixed progression used by the app.
var DefaultLevels = []LevelDef{
	{Level: 1, Title: "Novice", Threshold: 0, Color: "text-gray-400"},
	{Level: 2, Title: "Apprentice", Threshold: 100, Color: "text-emerald-400"},
	{Level: 3, Title: "Architect", Threshold: 300, Color: "text-blue-400"},
	{Level: 4, Title: "Executioner", Threshold: 600, Color: "text-purple-400"},
	{Level: 5, Title: "Titan", Threshold: 1000, Color: "text-amber-400"},
	{Level: 6, Title: "God Mode", Threshold: 2000, Color: "text-red-500"},
}

// LegendTitle names the open-ended target beyond the last level.
const LegendTitle = "Legend"

// XP awarded or removed by each action.
const (
	XPHabit = 10
	XPTask  = 5
	XPFocus = 50
)

// LevelInfo describes where an XP total sits on the level table.
type LevelInfo struct {
	Level         int    `json:"level"`
	Title         string `json:"title"`
	Color         string `json:"color"`
	XP            int    `json:"xp"`
	Threshold     int    `json:"threshold"`
	NextThreshold int    `json:"next_threshold"`
	NextTitle     string `json:"next_title"`
	Progress      int    `json:"progress"`
}

// ComputeLevelInfo finds the highest level whose threshold is <= xp and the
// progress toward the next one. The table must be sorted by threshold.
func ComputeLevelInfo(xp int, table []LevelDef) LevelInfo {
	if len(table) == 0 {
		table = DefaultLevels
	}
	if xp < 0 {
		xp = 0
	}

	idx := 0
	for i, def := range table {
		if xp >= def.Threshold {
			idx = i
		}
	}
	cur := table[idx]

	info := LevelInfo{
		Level:     cur.Level,
		Title:     cur.Title,
		Color:     cur.Color,
		XP:        xp,
		Threshold: cur.Threshold,
	}
	if idx+1 < len(table) {
		info.NextThreshold = table[idx+1].Threshold
		info.NextTitle = table[idx+1].Title
	} else {
		info.NextThreshold = int(float64(xp) * 1.5)
		info.NextTitle = LegendTitle
	}

	span := info.NextThreshold - cur.Threshold
	if span <= 0 {
		info.Progress = 100
		return info
	}
	p := int(math.Round(float64(xp-cur.Threshold) / float64(span) * 100))
	info.Progress = max(0, min(100, p))
	return info
}

func adjustXP(xp, delta int) int {
	return max(0, xp+delta)
}
