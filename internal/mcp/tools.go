// ABOUTME: MCP tool implementations for routines, tasks, and progress.
// ABOUTME: Every mutation is dispatched through the tracker App.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/tracker"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routines",
		Description: "List habits with this week's check-offs, consistency, and streak",
	}, s.handleListRoutines)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_routine",
		Description: "Add a habit (free plan is limited to 10)",
	}, s.handleAddRoutine)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_day",
		Description: "Mark or unmark a habit as done on a weekday",
	}, s.handleToggleDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_week",
		Description: "Clear a habit's week, or restart a quit-habit's clean streak",
	}, s.handleResetWeek)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_note",
		Description: "Attach a note to a habit for today's journal",
	}, s.handleSaveNote)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a one-off task for a date (default today)",
	}, s.handleAddTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks for a date (default today)",
	}, s.handleListTasks)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_task",
		Description: "Mark a task complete or incomplete",
	}, s.handleToggleTask)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Weekly completion statistics and category balance",
	}, s.handleGetStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_level",
		Description: "Current XP, level title, and progress to the next level",
	}, s.handleGetLevel)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_blueprints",
		Description: "List the titan blueprints available for import",
	}, s.handleListBlueprints)
}

// Tool input/output types

type emptyInput struct{}

type routineRef struct {
	ID string `json:"id" jsonschema:"Routine ID or ID prefix"`
}

type addRoutineInput struct {
	Title     string `json:"title" jsonschema:"Habit title"`
	Category  string `json:"category,omitempty" jsonschema:"One of Career, Growth, Health, Mindset (default Growth)"`
	Negative  bool   `json:"negative,omitempty" jsonschema:"True for a habit being quit"`
	Frequency []int  `json:"frequency,omitempty" jsonschema:"Active weekdays, 0=Mon..6=Sun (default every day)"`
}

type toggleDayInput struct {
	ID  string `json:"id" jsonschema:"Routine ID or ID prefix"`
	Day string `json:"day,omitempty" jsonschema:"Weekday index 0-6 or name like mon (default today)"`
}

type saveNoteInput struct {
	ID   string `json:"id" jsonschema:"Routine ID or ID prefix"`
	Text string `json:"text" jsonschema:"Note text"`
}

type addTaskInput struct {
	Title string `json:"title" jsonschema:"Task title"`
	Date  string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD (default today)"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD (default today)"`
}

type taskRef struct {
	ID string `json:"id" jsonschema:"Task ID or ID prefix"`
}

type routineOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Week        string   `json:"week"`
	Consistency int      `json:"consistency"`
	Streak      int      `json:"streak"`
	DaysClean   int      `json:"days_clean,omitempty"`
	ActiveDays  []string `json:"active_days"`
}

type listRoutinesOutput struct {
	Routines []routineOutput `json:"routines"`
	Message  string          `json:"message,omitempty"`
}

type actionOutput struct {
	Message string `json:"message"`
	XP      int    `json:"xp"`
	XPDelta int    `json:"xp_delta,omitempty"`
	Paywall string `json:"paywall,omitempty"`
}

type taskOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type listTasksOutput struct {
	Date  string       `json:"date"`
	Tasks []taskOutput `json:"tasks"`
}

type statsOutput struct {
	Weekly  tracker.WeeklyStats      `json:"weekly"`
	Balance []tracker.CategoryWeight `json:"balance"`
	Badges  []tracker.Badge          `json:"badges"`
}

type blueprintsOutput struct {
	IsPro      bool               `json:"is_pro"`
	Blueprints []models.Blueprint `json:"blueprints"`
}

// Tool handlers

func (s *Server) handleListRoutines(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, listRoutinesOutput, error) {
	st := s.app.State()
	now := s.app.Now()

	out := listRoutinesOutput{Routines: make([]routineOutput, 0, len(st.Routines))}
	for i := range st.Routines {
		out.Routines = append(out.Routines, toRoutineOutput(&st.Routines[i], now))
	}
	if len(out.Routines) == 0 {
		out.Message = "No routines yet."
	}
	return nil, out, nil
}

func toRoutineOutput(r *models.Routine, now time.Time) routineOutput {
	active := tracker.ActiveSet(r.Frequency)
	week := make([]byte, 0, models.DaysPerWeek)
	var days []string
	for i := 0; i < models.DaysPerWeek; i++ {
		switch {
		case !active[i]:
			week = append(week, '-')
		case r.CompletedDays[i]:
			week = append(week, 'x')
		default:
			week = append(week, '.')
		}
		if active[i] {
			days = append(days, models.DayNames[i])
		}
	}
	out := routineOutput{
		ID:          r.ID,
		Title:       r.Title,
		Category:    string(r.Category),
		Type:        string(r.Type),
		Week:        string(week),
		Consistency: r.Consistency,
		Streak:      r.Streak,
		ActiveDays:  days,
		DaysClean:   r.DaysClean(now),
	}
	return out
}

func (s *Server) handleAddRoutine(ctx context.Context, req *mcp.CallToolRequest, input addRoutineInput) (*mcp.CallToolResult, actionOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, actionOutput{}, tracker.ErrEmptyTitle
	}
	category, ok := models.ParseCategory(input.Category)
	if !ok {
		category = models.DefaultCategory
	}

	r := models.NewRoutine(title, category)
	if input.Negative {
		r.WithType(models.RoutineNegative, s.app.Now())
	}
	if input.Frequency != nil {
		r.WithFrequency(input.Frequency)
	}

	out, err := s.app.Dispatch(tracker.AddRoutines{Source: tracker.SourceManual, Routines: []models.Routine{*r}})
	if err != nil {
		return nil, actionOutput{}, fmt.Errorf("failed to add routine: %w", err)
	}
	if len(out.Added) == 1 {
		return nil, s.result(out, fmt.Sprintf("Added %s (ID: %s)", out.Added[0].Title, out.Added[0].ShortID())), nil
	}
	return nil, s.result(out, ""), nil
}

func (s *Server) handleToggleDay(ctx context.Context, req *mcp.CallToolRequest, input toggleDayInput) (*mcp.CallToolResult, actionOutput, error) {
	r, err := s.app.ResolveRoutine(input.ID)
	if err != nil {
		return nil, actionOutput{}, err
	}
	day := models.DayIndex(s.app.Now())
	if input.Day != "" {
		if day, err = models.ParseDay(input.Day); err != nil {
			return nil, actionOutput{}, err
		}
	}

	out, err := s.app.Dispatch(tracker.ToggleDay{RoutineID: r.ID, Day: day})
	if err != nil {
		return nil, actionOutput{}, fmt.Errorf("failed to toggle day: %w", err)
	}
	msg := fmt.Sprintf("%s has no change on %s", r.Title, models.DayNames[day])
	switch {
	case out.XPDelta > 0:
		msg = fmt.Sprintf("Checked %s on %s", r.Title, models.DayNames[day])
	case len(out.Changed) > 0:
		msg = fmt.Sprintf("Unchecked %s on %s", r.Title, models.DayNames[day])
	}
	return nil, s.result(out, msg), nil
}

func (s *Server) handleResetWeek(ctx context.Context, req *mcp.CallToolRequest, input routineRef) (*mcp.CallToolResult, actionOutput, error) {
	r, err := s.app.ResolveRoutine(input.ID)
	if err != nil {
		return nil, actionOutput{}, err
	}
	out, err := s.app.Dispatch(tracker.ResetWeek{RoutineID: r.ID})
	if err != nil {
		return nil, actionOutput{}, fmt.Errorf("failed to reset: %w", err)
	}
	return nil, s.result(out, fmt.Sprintf("Reset %s", r.Title)), nil
}

func (s *Server) handleSaveNote(ctx context.Context, req *mcp.CallToolRequest, input saveNoteInput) (*mcp.CallToolResult, actionOutput, error) {
	r, err := s.app.ResolveRoutine(input.ID)
	if err != nil {
		return nil, actionOutput{}, err
	}
	out, err := s.app.Dispatch(tracker.SaveNote{RoutineID: r.ID, Text: input.Text})
	if err != nil {
		return nil, actionOutput{}, fmt.Errorf("failed to save note: %w", err)
	}
	return nil, s.result(out, fmt.Sprintf("Saved note on %s", r.Title)), nil
}

func (s *Server) handleAddTask(ctx context.Context, req *mcp.CallToolRequest, input addTaskInput) (*mcp.CallToolResult, actionOutput, error) {
	date := input.Date
	if date == "" {
		date = models.DateKey(s.app.Now())
	}
	out, err := s.app.Dispatch(tracker.AddTask{Title: input.Title, Date: date})
	if err != nil {
		return nil, actionOutput{}, fmt.Errorf("failed to add task: %w", err)
	}
	msg := ""
	if out.Task != nil {
		msg = fmt.Sprintf("Added task %s for %s (ID: %s)", out.Task.Title, out.Task.Date, out.Task.ShortID())
	}
	return nil, s.result(out, msg), nil
}

func (s *Server) handleListTasks(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, listTasksOutput, error) {
	date := input.Date
	if date == "" {
		date = models.DateKey(s.app.Now())
	}
	if !models.IsValidDateKey(date) {
		return nil, listTasksOutput{}, tracker.ErrInvalidDate
	}

	out := listTasksOutput{Date: date, Tasks: []taskOutput{}}
	for _, t := range s.app.State().Tasks {
		if t.Date != "" && t.Date != date {
			continue
		}
		out.Tasks = append(out.Tasks, taskOutput{ID: t.ID, Title: t.Title, Date: t.Date, Completed: t.Completed})
	}
	return nil, out, nil
}

func (s *Server) handleToggleTask(ctx context.Context, req *mcp.CallToolRequest, input taskRef) (*mcp.CallToolResult, actionOutput, error) {
	t, err := s.app.ResolveTask(input.ID)
	if err != nil {
		return nil, actionOutput{}, err
	}
	out, err := s.app.Dispatch(tracker.ToggleTask{TaskID: t.ID})
	if err != nil {
		return nil, actionOutput{}, fmt.Errorf("failed to toggle task: %w", err)
	}
	verb := "Completed"
	if out.XPDelta < 0 {
		verb = "Reopened"
	}
	return nil, s.result(out, fmt.Sprintf("%s %s", verb, t.Title)), nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statsOutput, error) {
	st := s.app.State()
	return nil, statsOutput{
		Weekly:  tracker.ComputeWeeklyStats(st.Routines),
		Balance: tracker.CategoryBalance(st.Routines),
		Badges:  tracker.ComputeBadges(st.Routines, st.Tasks, s.app.Level()),
	}, nil
}

func (s *Server) handleGetLevel(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, tracker.LevelInfo, error) {
	return nil, s.app.Level(), nil
}

func (s *Server) handleListBlueprints(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, blueprintsOutput, error) {
	return nil, blueprintsOutput{IsPro: s.app.State().IsPro, Blueprints: tracker.Blueprints}, nil
}

// result converts a dispatch outcome into tool output. A paywall replaces
// the success message.
func (s *Server) result(out tracker.Outcome, msg string) actionOutput {
	res := actionOutput{
		Message: msg,
		XP:      s.app.State().XP,
		XPDelta: out.XPDelta,
	}
	if out.Paywall != nil {
		res.Paywall = string(out.Paywall.Reason)
		res.Message = out.Paywall.Message()
	}
	if res.Message == "" {
		res.Message = out.Message
	}
	return res
}
