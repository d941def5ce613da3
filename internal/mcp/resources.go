// ABOUTME: MCP resource implementations for the apex tracker.
// ABOUTME: Provides apex://dashboard and apex://journal/today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/tracker"
)

const (
	dashboardURI    = "apex://dashboard"
	journalTodayURI = "apex://journal/today"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Apex Dashboard",
		Description: "Level, weekly stats, habits, today's tasks, and the daily quote",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         journalTodayURI,
		Name:        "Today's Journal",
		Description: "Journal entry for today, if any",
		MIMEType:    "application/json",
	}, s.handleJournalTodayResource)
}

type dashboard struct {
	Date     string              `json:"date"`
	Quote    string              `json:"quote"`
	Level    tracker.LevelInfo   `json:"level"`
	Stats    tracker.WeeklyStats `json:"stats"`
	IsPro    bool                `json:"is_pro"`
	Routines []routineOutput     `json:"routines"`
	Tasks    []taskOutput        `json:"tasks"`
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	st := s.app.State()
	now := s.app.Now()
	today := models.DateKey(now)

	d := dashboard{
		Date:     today,
		Quote:    tracker.DailyQuote(now),
		Level:    tracker.ComputeLevelInfo(st.XP, tracker.DefaultLevels),
		Stats:    tracker.ComputeWeeklyStats(st.Routines),
		IsPro:    st.IsPro,
		Routines: make([]routineOutput, 0, len(st.Routines)),
		Tasks:    []taskOutput{},
	}
	for i := range st.Routines {
		d.Routines = append(d.Routines, toRoutineOutput(&st.Routines[i], now))
	}
	for _, t := range st.Tasks {
		if t.Date == "" || t.Date == today {
			d.Tasks = append(d.Tasks, taskOutput{ID: t.ID, Title: t.Title, Date: t.Date, Completed: t.Completed})
		}
	}

	return jsonResource(dashboardURI, d)
}

func (s *Server) handleJournalTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	st := s.app.State()
	today := models.DateKey(s.app.Now())

	var result any = map[string]string{"date": today, "message": "No journal entry for today."}
	if i := st.FindJournal(today); i >= 0 {
		result = st.Journal[i]
	}
	return jsonResource(journalTodayURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
