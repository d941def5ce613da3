// ABOUTME: Apex terminal theme with dark and light palettes.
// ABOUTME: Reusable lipgloss styles, icons, and small render helpers.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/apex/internal/models"
)

const (
	IconBolt   = "⚡"
	IconCheck  = "✓"
	IconCross  = "✗"
	IconFire   = "🔥"
	IconShield = "🛡"
	IconTrophy = "🏆"
	IconBrain  = "🧠"
	IconLock   = "🔒"
	IconTimer  = "⏱"
)

// Palette is a set of colors for one theme.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
	Muted   lipgloss.Color
	Gold    lipgloss.Color
	Text    lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary: lipgloss.Color("63"),
		Accent:  lipgloss.Color("205"),
		Good:    lipgloss.Color("42"),
		Warn:    lipgloss.Color("214"),
		Bad:     lipgloss.Color("196"),
		Muted:   lipgloss.Color("244"),
		Gold:    lipgloss.Color("220"),
		Text:    lipgloss.Color("252"),
	}
	LightPalette = Palette{
		Primary: lipgloss.Color("25"),
		Accent:  lipgloss.Color("162"),
		Good:    lipgloss.Color("28"),
		Warn:    lipgloss.Color("166"),
		Bad:     lipgloss.Color("160"),
		Muted:   lipgloss.Color("243"),
		Gold:    lipgloss.Color("136"),
		Text:    lipgloss.Color("235"),
	}
)

// categoryColors are terminal stand-ins for the category gradients.
var categoryColors = map[models.Category]lipgloss.Color{
	models.CategoryCareer:  lipgloss.Color("39"),
	models.CategoryGrowth:  lipgloss.Color("205"),
	models.CategoryHealth:  lipgloss.Color("208"),
	models.CategoryMindset: lipgloss.Color("99"),
}

// Theme holds rendered styles for a palette.
type Theme struct {
	Name    string
	Palette Palette

	Title lipgloss.Style
	H2    lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Gold  lipgloss.Style
	Panel lipgloss.Style
}

// NewTheme builds the named theme. Anything but "light" is dark.
func NewTheme(name string) Theme {
	p := DarkPalette
	if name == "light" {
		p = LightPalette
	} else {
		name = "dark"
	}
	return Theme{
		Name:    name,
		Palette: p,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		H2:      lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Key:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Good:    lipgloss.NewStyle().Bold(true).Foreground(p.Good),
		Warn:    lipgloss.NewStyle().Bold(true).Foreground(p.Warn),
		Bad:     lipgloss.NewStyle().Bold(true).Foreground(p.Bad),
		Gold:    lipgloss.NewStyle().Bold(true).Foreground(p.Gold),
		Panel:   lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1),
	}
}

// Heading renders an icon and title.
func (t Theme) Heading(icon, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return t.Title.Render(icon + title)
}

// LabelValue renders "label: value".
func (t Theme) LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", t.Key.Render(label+":"), value)
}

// Category renders a category name in its color.
func (t Theme) Category(c models.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		color = t.Palette.Muted
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(c))
}

// Week renders seven day cells: filled for done, hollow for active, dot for rest.
func (t Theme) Week(done [models.DaysPerWeek]bool, active [models.DaysPerWeek]bool) string {
	cells := make([]string, 0, models.DaysPerWeek)
	for i := 0; i < models.DaysPerWeek; i++ {
		switch {
		case !active[i]:
			cells = append(cells, t.Muted.Render("·"))
		case done[i]:
			cells = append(cells, t.Good.Render("■"))
		default:
			cells = append(cells, t.Muted.Render("□"))
		}
	}
	return strings.Join(cells, " ")
}

// Bar renders a percentage as a progress bar of the given width.
func (t Theme) Bar(percent int, width int) string {
	bar := progress.New(
		progress.WithScaledGradient(string(t.Palette.Primary), string(t.Palette.Accent)),
		progress.WithoutPercentage(),
	)
	bar.Width = width
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return bar.ViewAs(float64(percent) / 100)
}
