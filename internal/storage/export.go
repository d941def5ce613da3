// ABOUTME: Export and import functionality for apex data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/tracker"
)

// ExportVersion is the version of the export document layout.
const ExportVersion = "1.0"

// ExportData represents the full export format for apex data.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Theme      tracker.Theme         `json:"theme" yaml:"theme"`
	XP         int                   `json:"xp" yaml:"xp"`
	IsPro      bool                  `json:"is_pro" yaml:"is_pro"`
	Routines   []models.Routine      `json:"routines" yaml:"routines"`
	Tasks      []models.Task         `json:"tasks" yaml:"tasks"`
	Journal    []models.JournalEntry `json:"journal" yaml:"journal"`
	Chat       []models.ChatMessage  `json:"chat,omitempty" yaml:"chat,omitempty"`
}

// NewExportData captures the exportable parts of st.
func NewExportData(st tracker.State, now time.Time) *ExportData {
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: now,
		Tool:       "apex",
		Theme:      st.Theme,
		XP:         st.XP,
		IsPro:      st.IsPro,
		Routines:   st.Routines,
		Tasks:      st.Tasks,
		Journal:    st.Journal,
		Chat:       st.Chat,
	}
}

// State builds a normalized state from an export. HasEntered is set since
// an imported profile has been used before.
func (e *ExportData) State(now time.Time) tracker.State {
	st := tracker.DefaultState()
	st.Theme = e.Theme
	st.HasEntered = true
	st.XP = e.XP
	st.IsPro = e.IsPro
	st.Routines = e.Routines
	st.Tasks = e.Tasks
	st.Journal = e.Journal
	st.Chat = e.Chat
	Normalize(&st, now)
	return st
}

// ExportJSON exports all data as JSON.
func ExportJSON(st tracker.State, now time.Time) ([]byte, error) {
	return json.MarshalIndent(NewExportData(st, now), "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(st tracker.State, now time.Time) ([]byte, error) {
	return yaml.Marshal(NewExportData(st, now))
}

// ParseExport decodes a JSON or YAML export, decrypting it first when it
// is age-encrypted.
func ParseExport(data []byte, passphrase string) (*ExportData, error) {
	if IsEncrypted(data) {
		if passphrase == "" {
			return nil, ErrPassphraseRequired
		}
		plain, err := Decrypt(data, passphrase)
		if err != nil {
			return nil, err
		}
		data = plain
	}

	var export ExportData
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &export); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &export); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	if export.Tool != "" && export.Tool != "apex" {
		return nil, fmt.Errorf("export was written by %q, not apex", export.Tool)
	}
	return &export, nil
}

// ExportMarkdown exports data as Markdown. Journal entries before since
// are skipped when since is set.
func ExportMarkdown(st tracker.State, since *time.Time, now time.Time) string {
	var sb strings.Builder
	level := tracker.ComputeLevelInfo(st.XP, tracker.DefaultLevels)
	stats := tracker.ComputeWeeklyStats(st.Routines)

	sb.WriteString(fmt.Sprintf("# Apex Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Level %d · %s** · %d XP · %d%% of scheduled days done\n\n",
		level.Level, level.Title, level.XP, stats.Percentage))

	if len(st.Routines) > 0 {
		sb.WriteString("## Routines\n\n")
		sb.WriteString("| Routine | Category | " + strings.Join(models.DayNames[:], " | ") + " | Consistency | Streak |\n")
		sb.WriteString("|---|---|" + strings.Repeat("---|", models.DaysPerWeek) + "---|---|\n")
		for i := range st.Routines {
			r := &st.Routines[i]
			cells := make([]string, models.DaysPerWeek)
			for d := range cells {
				switch {
				case r.IsNegative():
					cells[d] = ""
				case !tracker.IsActiveDay(r, d):
					cells[d] = "rest"
				case r.CompletedDays[d]:
					cells[d] = "✓"
				default:
					cells[d] = "·"
				}
			}
			consistency := fmt.Sprintf("%d%%", r.Consistency)
			if r.IsNegative() {
				consistency = fmt.Sprintf("%d days clean", r.DaysClean(now))
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d |\n",
				r.Title, r.Category, strings.Join(cells, " | "), consistency, r.Streak))
		}
		sb.WriteString("\n")
	}

	if len(st.Tasks) > 0 {
		sb.WriteString("## Tasks\n\n")
		for _, t := range st.Tasks {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			line := fmt.Sprintf("- %s %s", box, t.Title)
			if t.Date != "" {
				line += fmt.Sprintf(" (%s)", t.Date)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	var sinceKey string
	if since != nil {
		sinceKey = models.DateKey(*since)
	}
	wroteHeader := false
	for _, e := range st.Journal {
		if sinceKey != "" && e.Date < sinceKey {
			continue
		}
		if !wroteHeader {
			sb.WriteString("## Journal\n\n")
			wroteHeader = true
		}
		sb.WriteString(JournalMarkdown(e))
		sb.WriteString("\n")
	}

	return sb.String()
}

// JournalMarkdown renders one journal entry.
func JournalMarkdown(e models.JournalEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("### %s · %s\n\n", e.Date, e.Mood))
	if strings.TrimSpace(e.Content) != "" {
		sb.WriteString(e.Content + "\n\n")
	}
	for _, n := range e.HabitLog {
		ts := time.UnixMilli(n.Timestamp).Format("15:04")
		sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", n.RoutineTitle, ts, n.Note))
	}
	return sb.String()
}
