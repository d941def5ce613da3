// ABOUTME: Shared output helpers for CLI commands.
// ABOUTME: Colored status lines, outcome rendering, and table padding.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/tracker"
	"github.com/harperreed/apex/internal/ui"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	faint  = color.New(color.Faint)
)

func success(w io.Writer, format string, args ...any) {
	green.Fprintf(w, "✓ "+format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// printOutcome reports paywalls, XP changes, and reducer messages.
// It returns true when a paywall was shown.
func printOutcome(w io.Writer, out tracker.Outcome) bool {
	if out.Paywall != nil {
		warn(w, "%s", out.Paywall.Message())
		if len(out.Paywall.Rejected) > 0 {
			nums := make([]string, len(out.Paywall.Rejected))
			for i, idx := range out.Paywall.Rejected {
				nums[i] = fmt.Sprint(idx + 1)
			}
			faint.Fprintf(w, "  not added: %s\n", strings.Join(nums, ", "))
		}
	}
	if out.XPDelta != 0 {
		faint.Fprintf(w, "  %+d XP\n", out.XPDelta)
	}
	if out.Message != "" {
		fmt.Fprintf(w, "  %s\n", out.Message)
	}
	return out.Paywall != nil
}

func printRoutines(w io.Writer, th ui.Theme, routines []models.Routine, now time.Time) {
	if len(routines) == 0 {
		fmt.Fprintln(w, "No routines yet. Add one with 'apex routine add'.")
		return
	}
	fmt.Fprintln(w, th.H2.Render("Routines"))
	fmt.Fprintf(w, "%s %s %s\n", padRight("", 9), padRight("", 28), th.Muted.Render(strings.Join(dayInitials(), " ")))
	for i := range routines {
		r := &routines[i]
		var detail string
		week := th.Muted.Render(strings.Repeat("  ", models.DaysPerWeek))
		if r.IsNegative() {
			detail = fmt.Sprintf("%s %d days clean", ui.IconShield, r.DaysClean(now))
		} else {
			week = th.Week(r.CompletedDays, tracker.ActiveSet(r.Frequency))
			detail = fmt.Sprintf("%3d%%  %s %d", r.Consistency, ui.IconFire, r.Streak)
		}
		fmt.Fprintf(w, "%s %s %s  %s  %s\n",
			faint.Sprint(r.ShortID()),
			padRight(truncate(r.Title, 28), 28),
			week,
			detail,
			th.Category(r.Category))
	}
}

func dayInitials() []string {
	out := make([]string, models.DaysPerWeek)
	for i, name := range models.DayNames {
		out[i] = name[:1]
	}
	return out
}

func tasksFor(tasks []models.Task, date string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Date == "" || t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

func printTasks(w io.Writer, th ui.Theme, tasks []models.Task, date string) {
	fmt.Fprintln(w, th.H2.Render("Tasks · "+date))
	if len(tasks) == 0 {
		fmt.Fprintln(w, th.Muted.Render("  Nothing scheduled."))
		return
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = th.Good.Render("[x]")
		}
		fmt.Fprintf(w, "%s %s %s\n", faint.Sprint(t.ShortID()), box, t.Title)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
