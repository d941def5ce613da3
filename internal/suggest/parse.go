// ABOUTME: Parsing and sanitizing of model output into routines.
// ABOUTME: Only title and category are trusted; everything else is derived.
package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/apex/internal/models"
)

// Separator divides a Guru reply's prose from its JSON payload.
const Separator = "|||APEX_DATA|||"

// DefaultTitle replaces missing candidate titles.
const DefaultTitle = "New Habit"

// ErrMalformed is returned when model output is not a JSON array.
var ErrMalformed = errors.New("malformed suggestion payload")

// Defaults controls how a missing category is coloured.
type Defaults struct {
	// MissingCategoryColor is used when the category field is absent.
	// Unrecognized categories always use the gray fallback.
	MissingCategoryColor string
}

var (
	// SuggestDefaults colours missing categories gray.
	SuggestDefaults = Defaults{MissingCategoryColor: models.FallbackColor}
	// ChatDefaults treats a missing category as Growth, colour included.
	ChatDefaults = Defaults{MissingCategoryColor: models.DefaultCategory.Color()}
)

// CleanJSON strips a surrounding markdown code fence.
func CleanJSON(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return "[]"
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// SplitReply returns the display text and the data after the separator.
func SplitReply(text string) (display, data string, ok bool) {
	display, data, ok = strings.Cut(text, Separator)
	return strings.TrimSpace(display), data, ok
}

// ParseCandidates decodes a JSON array of {title, category} objects into
// fresh positive routines. Non-object elements are skipped.
func ParseCandidates(text string, d Defaults) ([]models.Routine, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(CleanJSON(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	out := make([]models.Routine, 0, len(raw))
	for _, item := range raw {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		out = append(out, toRoutine(fields, d))
	}
	return out, nil
}

func toRoutine(fields map[string]any, d Defaults) models.Routine {
	title, _ := fields["title"].(string)
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	raw, present := fields["category"].(string)
	category, known := models.ParseCategory(raw)
	r := models.NewRoutine(title, category)
	switch {
	case known:
	case !present || strings.TrimSpace(raw) == "":
		r.IconColor = d.MissingCategoryColor
	default:
		r.IconColor = models.FallbackColor
	}
	return *r
}
