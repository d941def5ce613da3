// ABOUTME: Built-in "titan" blueprints, curated routine bundles.
// ABOUTME: Importing a blueprint is a pro-only batch add.
package tracker

import (
	"strings"

	"github.com/harperreed/apex/internal/models"
)

// Blueprints are the curated bundles offered by the import flow.
var Blueprints = []models.Blueprint{
	{
		ID:          "titan-1",
		Author:      "Elon Musk",
		Title:       "Tech Titan Protocol",
		Description: "Maximize efficiency with 5-minute time blocks and rapid execution.",
		Routines: []models.BlueprintRoutine{
			{Title: "Email Triage (5 min blocks)", Category: models.CategoryCareer},
			{Title: "Skip Breakfast", Category: models.CategoryHealth},
			{Title: "Critical Design Review", Category: models.CategoryCareer},
			{Title: "Sleep 6 Hours", Category: models.CategoryHealth, IconColor: "from-purple-500 to-indigo-600"},
		},
	},
	{
		ID:          "titan-2",
		Author:      "David Goggins",
		Title:       "Stay Hard Routine",
		Description: "Callous your mind. Do what you hate.",
		Routines: []models.BlueprintRoutine{
			{Title: "4:00 AM Run (10 miles)", Category: models.CategoryHealth},
			{Title: "Stretch (2 hours)", Category: models.CategoryHealth, IconColor: "from-pink-500 to-rose-500"},
			{Title: "Study / Work", Category: models.CategoryCareer},
			{Title: "Visualization", Category: models.CategoryMindset},
		},
	},
	{
		ID:          "titan-3",
		Author:      "Marcus Aurelius",
		Title:       "Stoic Emperor",
		Description: "Find stillness in chaos. Logic over emotion.",
		Routines: []models.BlueprintRoutine{
			{Title: "Morning Journaling", Category: models.CategoryMindset},
			{Title: "Cold Bath / Wash", Category: models.CategoryHealth, IconColor: "from-blue-400 to-cyan-500"},
			{Title: "Eat Plainly", Category: models.CategoryHealth, IconColor: "from-green-500 to-emerald-600"},
			{Title: "Evening Reflection", Category: models.CategoryMindset},
		},
	},
	{
		ID:          "titan-4",
		Author:      "Cristiano Ronaldo",
		Title:       "CR7 Consistency",
		Description: "Elite performance via polyphasic sleep and strict nutrition.",
		Routines: []models.BlueprintRoutine{
			{Title: "90min Sleep Cycle", Category: models.CategoryHealth, IconColor: "from-purple-500 to-indigo-600"},
			{Title: "Clean Eating (6 meals)", Category: models.CategoryHealth, IconColor: "from-green-500 to-emerald-600"},
			{Title: "Ice Bath Recovery", Category: models.CategoryHealth, IconColor: "from-blue-400 to-cyan-500"},
			{Title: "Technical Drills", Category: models.CategoryCareer},
		},
	},
}

// FindBlueprint looks a blueprint up by ID, case-insensitively.
func FindBlueprint(id string) (models.Blueprint, error) {
	for _, bp := range Blueprints {
		if strings.EqualFold(bp.ID, strings.TrimSpace(id)) {
			return bp, nil
		}
	}
	return models.Blueprint{}, ErrUnknownBlueprint
}

// BlueprintRoutines expands a blueprint into fresh routines.
func BlueprintRoutines(bp models.Blueprint) []models.Routine {
	out := make([]models.Routine, 0, len(bp.Routines))
	for _, br := range bp.Routines {
		title := strings.TrimSpace(br.Title)
		if title == "" {
			title = "Titan Habit"
		}
		r := models.NewRoutine(title, br.Category)
		r.IconColor = br.Category.Color()
		if br.IconColor != "" {
			r.IconColor = br.IconColor
		}
		out = append(out, *r)
	}
	return out
}
