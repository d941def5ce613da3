// ABOUTME: Offline Generator used when no API key is configured.
// ABOUTME: Returns canned routines per category so the flow stays usable.
package suggest

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/harperreed/apex/internal/models"
)

// OfflineChatText is the Guru reply when no provider is configured.
const OfflineChatText = "The Guru is offline. Set GEMINI_API_KEY or gemini_api_key in your config to start coaching."

var cannedRoutines = map[models.Category][]string{
	models.CategoryHealth:  {"Drink 2L of water", "Walk 8,000 steps", "Sleep by 23:00"},
	models.CategoryCareer:  {"Deep work block (90 min)", "Plan tomorrow's top 3", "Inbox zero"},
	models.CategoryMindset: {"Morning journaling", "10 minute meditation", "Evening reflection"},
	models.CategoryGrowth:  {"Read 20 pages", "Learn one new concept", "Practice a skill for 30 min"},
}

var categoryKeywords = map[models.Category][]string{
	models.CategoryHealth:  {"health", "fit", "weight", "run", "sleep", "gym", "diet", "eat"},
	models.CategoryCareer:  {"career", "work", "job", "promotion", "business", "code", "startup"},
	models.CategoryMindset: {"mind", "stress", "calm", "focus", "anxiety", "meditat", "stoic"},
}

// Static is a deterministic Generator without network access.
type Static struct{}

// Suggest implements Generator by matching goal keywords to a category.
func (Static) Suggest(_ context.Context, goal string, count int) (string, error) {
	category := categoryFor(goal)
	titles := cannedRoutines[category]
	if count < len(titles) {
		titles = titles[:count]
	}
	items := make([]map[string]string, 0, len(titles))
	for _, t := range titles {
		items = append(items, map[string]string{"title": t, "category": string(category)})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Chat implements Generator.
func (Static) Chat(context.Context, []models.ChatMessage, string) (string, error) {
	return OfflineChatText, nil
}

func categoryFor(goal string) models.Category {
	g := strings.ToLower(goal)
	for _, c := range models.AllCategories {
		for _, kw := range categoryKeywords[c] {
			if strings.Contains(g, kw) {
				return c
			}
		}
	}
	return models.DefaultCategory
}
