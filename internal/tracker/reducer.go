// ABOUTME: Pure state transitions for every user action.
// ABOUTME: Reduce never mutates its input and reports which keys changed.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/apex/internal/models"
)

// Outcome describes what an action did.
type Outcome struct {
	// Changed lists the keys that must be persisted. Empty means no-op.
	Changed []Key
	// Paywall is set when gating refused the action or part of it.
	Paywall *Paywall
	XPDelta int
	Message string
	Added   []models.Routine
	Source  Source
	Task    *models.Task
	Chat    *models.ChatMessage
}

// Reduce applies action to s at time now. On error or no-op the input
// state is returned unchanged.
func Reduce(s State, action Action, now time.Time) (State, Outcome, error) {
	next := s.Clone()
	var (
		out Outcome
		err error
	)

	switch a := action.(type) {
	case ToggleDay:
		out, err = toggleDay(&next, a)
	case ResetWeek:
		out, err = resetWeek(&next, a, now)
	case DeleteRoutine:
		out, err = deleteRoutine(&next, a)
	case AddRoutines:
		out, err = addRoutines(&next, a.Source, a.Routines, now)
	case SaveNote:
		out, err = saveNote(&next, a, now)
	case AddTask:
		out, err = addTask(&next, a, now)
	case ToggleTask:
		out, err = toggleTask(&next, a)
	case DeleteTask:
		out, err = deleteTask(&next, a)
	case SaveJournalEntry:
		out, err = saveJournalEntry(&next, a)
	case Upgrade:
		if !next.IsPro {
			next.IsPro = true
			out = Outcome{Changed: []Key{KeyPro}, Message: "Welcome to Apex Pro."}
		}
	case SetTheme:
		out, err = setTheme(&next, a.Theme)
	case ToggleTheme:
		t := ThemeLight
		if next.Theme == ThemeLight {
			t = ThemeDark
		}
		out, err = setTheme(&next, t)
	case Enter:
		if !next.HasEntered {
			next.HasEntered = true
			out.Changed = []Key{KeyHasEntered}
		}
	case CompleteFocusSession:
		out = awardXP(&next, XPFocus)
		out.Message = fmt.Sprintf("Focus session complete. +%d XP", XPFocus)
	case RefreshUsage:
		if refreshUsage(&next, now) {
			out.Changed = []Key{KeyUsage}
		}
	case SendChatMessage:
		out, err = sendChatMessage(&next, a, now)
	case ReceiveChatReply:
		msg := models.NewChatMessage(models.RoleModel, a.Text)
		for _, r := range a.Suggestions {
			msg.SuggestedRoutines = append(msg.SuggestedRoutines, r.Clone())
		}
		next.Chat = append(next.Chat, *msg)
		out = Outcome{Changed: []Key{KeyChat}, Chat: msg}
	case AcceptChatSuggestions:
		out, err = acceptChatSuggestions(&next, a, now)
	case BeginSuggestions:
		if IsLimitReached(next.IsPro, len(next.Routines)) {
			out.Paywall = &Paywall{Reason: PaywallRoutineLimit}
		}
	case SetPendingSuggestions:
		out = setPending(&next, a)
	case SelectSuggestion:
		out, err = selectSuggestion(&next, a.Index)
	case DeselectSuggestion:
		out, err = deselectSuggestion(&next, a.Index)
	case AcceptPendingSuggestions:
		out, err = acceptPending(&next, now)
	case ClearPendingSuggestions:
		if next.Pending != nil {
			next.Pending = nil
			out.Changed = []Key{KeyPending}
		}
	case ImportBlueprint:
		out, err = importBlueprint(&next, a, now)
	case Replace:
		usage, pending := next.Usage, next.Pending
		next = a.State.Clone()
		next.Usage, next.Pending = usage, pending
		out = Outcome{Changed: append([]Key{}, AllKeys...), Message: "State imported."}
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	if err != nil {
		return s, Outcome{}, err
	}
	if len(out.Changed) == 0 {
		return s, out, nil
	}
	return next, out, nil
}

func toggleDay(s *State, a ToggleDay) (Outcome, error) {
	if a.Day < 0 || a.Day >= models.DaysPerWeek {
		return Outcome{}, ErrInvalidDay
	}
	i := s.FindRoutine(a.RoutineID)
	if i < 0 {
		return Outcome{}, ErrRoutineNotFound
	}
	r := &s.Routines[i]
	if r.IsNegative() || !IsActiveDay(r, a.Day) {
		return Outcome{}, nil
	}

	done := !r.CompletedDays[a.Day]
	r.CompletedDays[a.Day] = done
	r.Consistency = ComputeConsistency(r)

	delta := XPHabit
	if done {
		r.Streak++
	} else {
		r.Streak = max(0, r.Streak-1)
		delta = -XPHabit
	}
	out := awardXP(s, delta)
	out.Changed = append([]Key{KeyRoutines}, out.Changed...)
	return out, nil
}

func resetWeek(s *State, a ResetWeek, now time.Time) (Outcome, error) {
	i := s.FindRoutine(a.RoutineID)
	if i < 0 {
		return Outcome{}, ErrRoutineNotFound
	}
	r := &s.Routines[i]
	if r.IsNegative() {
		r.StartDate = now.UnixMilli()
		return Outcome{Changed: []Key{KeyRoutines}, Message: "Clean streak restarted."}, nil
	}
	r.CompletedDays = [models.DaysPerWeek]bool{}
	r.Consistency = 0
	return Outcome{Changed: []Key{KeyRoutines}, Message: "Week reset! Streak preserved."}, nil
}

func deleteRoutine(s *State, a DeleteRoutine) (Outcome, error) {
	i := s.FindRoutine(a.RoutineID)
	if i < 0 {
		return Outcome{}, ErrRoutineNotFound
	}
	s.Routines = append(s.Routines[:i], s.Routines[i+1:]...)
	return Outcome{Changed: []Key{KeyRoutines}, Message: "Routine deleted."}, nil
}

// addRoutines is the single gate every entry point funnels through.
func addRoutines(s *State, src Source, routines []models.Routine, now time.Time) (Outcome, error) {
	if len(routines) == 0 {
		return Outcome{}, nil
	}
	if !CanAdd(s.IsPro, len(s.Routines), len(routines)) {
		return Outcome{Paywall: &Paywall{Reason: PaywallRoutineLimit}}, nil
	}

	added := make([]models.Routine, 0, len(routines))
	for _, in := range routines {
		r, err := normalizeRoutine(s, in, now)
		if err != nil {
			return Outcome{}, err
		}
		s.Routines = append(s.Routines, r)
		added = append(added, r)
	}
	if src == "" {
		src = SourceManual
	}
	return Outcome{Changed: []Key{KeyRoutines}, Added: added, Source: src, Message: "Add Routine Success"}, nil
}

func normalizeRoutine(s *State, in models.Routine, now time.Time) (models.Routine, error) {
	r := in.Clone()
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return r, ErrEmptyTitle
	}
	if r.ID == "" || s.FindRoutine(r.ID) >= 0 {
		r.ID = uuid.New().String()
	}
	if !r.Category.IsValid() {
		r.Category = models.DefaultCategory
	}
	if r.IconColor == "" {
		r.IconColor = r.Category.Color()
	}
	if !r.Type.IsValid() {
		r.Type = models.RoutinePositive
	}
	if r.IsNegative() && r.StartDate == 0 {
		r.StartDate = now.UnixMilli()
	}
	r.Streak = max(0, r.Streak)
	r.Consistency = ComputeConsistency(&r)
	return r, nil
}

func saveNote(s *State, a SaveNote, now time.Time) (Outcome, error) {
	i := s.FindRoutine(a.RoutineID)
	if i < 0 {
		return Outcome{}, ErrRoutineNotFound
	}
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return Outcome{}, ErrEmptyMessage
	}
	r := &s.Routines[i]
	r.Notes = text

	note := models.HabitNote{
		RoutineID:    r.ID,
		RoutineTitle: r.Title,
		Note:         text,
		Timestamp:    now.UnixMilli(),
	}
	date := models.DateKey(now)
	if j := s.FindJournal(date); j >= 0 {
		s.Journal[j].HabitLog = append(s.Journal[j].HabitLog, note)
	} else {
		entry := models.NewJournalEntry(date)
		entry.HabitLog = append(entry.HabitLog, note)
		s.Journal = append(s.Journal, *entry)
	}
	return Outcome{Changed: []Key{KeyRoutines, KeyJournal}, Message: "Note Saved to Journal"}, nil
}

func addTask(s *State, a AddTask, now time.Time) (Outcome, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return Outcome{}, ErrEmptyTitle
	}
	if a.Date != "" && !models.IsValidDateKey(a.Date) {
		return Outcome{}, ErrInvalidDate
	}
	t := models.NewTask(title, now).WithDate(a.Date)
	s.Tasks = append([]models.Task{*t}, s.Tasks...)
	return Outcome{Changed: []Key{KeyTasks}, Task: t}, nil
}

func toggleTask(s *State, a ToggleTask) (Outcome, error) {
	i := s.FindTask(a.TaskID)
	if i < 0 {
		return Outcome{}, ErrTaskNotFound
	}
	t := &s.Tasks[i]
	t.Completed = !t.Completed
	delta := XPTask
	if !t.Completed {
		delta = -XPTask
	}
	out := awardXP(s, delta)
	out.Changed = append([]Key{KeyTasks}, out.Changed...)
	task := *t
	out.Task = &task
	return out, nil
}

func deleteTask(s *State, a DeleteTask) (Outcome, error) {
	i := s.FindTask(a.TaskID)
	if i < 0 {
		return Outcome{}, ErrTaskNotFound
	}
	s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
	return Outcome{Changed: []Key{KeyTasks}}, nil
}

func saveJournalEntry(s *State, a SaveJournalEntry) (Outcome, error) {
	e := a.Entry.Clone()
	if a.Entry.HabitLog == nil {
		e.HabitLog = nil
	}
	if !models.IsValidDateKey(e.Date) {
		return Outcome{}, ErrInvalidDate
	}
	if e.Mood == "" {
		e.Mood = models.MoodNeutral
	}
	if !e.Mood.IsValid() {
		return Outcome{}, ErrInvalidMood
	}

	if i := s.FindJournal(e.Date); i >= 0 {
		if e.HabitLog == nil {
			e.HabitLog = s.Journal[i].HabitLog
		}
		s.Journal[i] = e
	} else {
		if e.HabitLog == nil {
			e.HabitLog = []models.HabitNote{}
		}
		s.Journal = append(s.Journal, e)
	}
	return Outcome{Changed: []Key{KeyJournal}, Message: "Journal Updated"}, nil
}

func setTheme(s *State, t Theme) (Outcome, error) {
	if _, err := ParseTheme(string(t)); err != nil {
		return Outcome{}, err
	}
	if s.Theme == t {
		return Outcome{}, nil
	}
	s.Theme = t
	return Outcome{Changed: []Key{KeyTheme}}, nil
}

func awardXP(s *State, delta int) Outcome {
	before := s.XP
	s.XP = adjustXP(s.XP, delta)
	if s.XP == before {
		return Outcome{}
	}
	return Outcome{Changed: []Key{KeyXP}, XPDelta: s.XP - before}
}

func refreshUsage(s *State, now time.Time) bool {
	today := models.DateKey(now)
	if s.Usage.Date == today {
		return false
	}
	s.Usage = models.DailyUsage{Date: today}
	return true
}

func sendChatMessage(s *State, a SendChatMessage, now time.Time) (Outcome, error) {
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return Outcome{}, ErrEmptyMessage
	}
	var out Outcome
	if refreshUsage(s, now) {
		out.Changed = append(out.Changed, KeyUsage)
	}
	if IsMessageLimitReached(s.IsPro, s.Usage.Count) {
		out.Paywall = &Paywall{Reason: PaywallMessageLimit}
		return out, nil
	}
	msg := models.NewChatMessage(models.RoleUser, text)
	s.Chat = append(s.Chat, *msg)
	s.Usage.Count++
	out.Changed = []Key{KeyChat, KeyUsage}
	out.Chat = msg
	return out, nil
}

// selectPicks applies each pick as a separate selection attempt so that
// over-limit picks are rejected individually.
func selectPicks(n int, picks []int, slots int) ([]int, *Paywall, error) {
	if picks == nil {
		return Preselect(n, slots), nil, nil
	}
	var (
		selected []int
		rejected []int
	)
	for _, idx := range picks {
		if idx < 0 || idx >= n {
			return nil, nil, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
		}
		var pw *Paywall
		selected, pw = Select(selected, idx, slots)
		if pw != nil {
			rejected = append(rejected, pw.Rejected...)
		}
	}
	if len(rejected) == 0 {
		return selected, nil, nil
	}
	return selected, &Paywall{Reason: PaywallRoutineLimit, Rejected: rejected}, nil
}

func acceptChatSuggestions(s *State, a AcceptChatSuggestions, now time.Time) (Outcome, error) {
	i := s.FindMessage(a.MessageID)
	if i < 0 {
		return Outcome{}, ErrMessageNotFound
	}
	msg := &s.Chat[i]
	if len(msg.SuggestedRoutines) == 0 {
		return Outcome{}, ErrNoSuggestions
	}
	if msg.Accepted {
		return Outcome{}, ErrAlreadyAccepted
	}

	slots := RemainingSlots(s.IsPro, len(s.Routines))
	selected, pw, err := selectPicks(len(msg.SuggestedRoutines), a.Picks, slots)
	if err != nil {
		return Outcome{}, err
	}
	if len(selected) == 0 {
		if pw == nil {
			pw = &Paywall{Reason: PaywallRoutineLimit}
		}
		return Outcome{Paywall: pw}, nil
	}

	picked := make([]models.Routine, 0, len(selected))
	for _, idx := range selected {
		picked = append(picked, msg.SuggestedRoutines[idx])
	}
	out, err := addRoutines(s, SourceGuru, picked, now)
	if err != nil || out.Paywall != nil {
		return out, err
	}
	msg.Accepted = true
	out.Changed = append(out.Changed, KeyChat)
	out.Paywall = pw
	return out, nil
}

func setPending(s *State, a SetPendingSuggestions) Outcome {
	if len(a.Candidates) == 0 {
		if s.Pending == nil {
			return Outcome{}
		}
		s.Pending = nil
		return Outcome{Changed: []Key{KeyPending}}
	}
	candidates := make([]models.Routine, len(a.Candidates))
	for i, r := range a.Candidates {
		candidates[i] = r.Clone()
	}
	slots := RemainingSlots(s.IsPro, len(s.Routines))
	s.Pending = &Pending{
		Goal:       a.Goal,
		Candidates: candidates,
		Selected:   Preselect(len(candidates), slots),
	}
	return Outcome{Changed: []Key{KeyPending}}
}

func selectSuggestion(s *State, idx int) (Outcome, error) {
	if s.Pending == nil {
		return Outcome{}, ErrNoSuggestions
	}
	if idx < 0 || idx >= len(s.Pending.Candidates) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
	}
	slots := RemainingSlots(s.IsPro, len(s.Routines))
	selected, pw := Select(s.Pending.Selected, idx, slots)
	if pw != nil {
		return Outcome{Paywall: pw}, nil
	}
	if len(selected) == len(s.Pending.Selected) {
		return Outcome{}, nil
	}
	s.Pending.Selected = selected
	return Outcome{Changed: []Key{KeyPending}}, nil
}

func deselectSuggestion(s *State, idx int) (Outcome, error) {
	if s.Pending == nil {
		return Outcome{}, ErrNoSuggestions
	}
	if idx < 0 || idx >= len(s.Pending.Candidates) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
	}
	selected := Deselect(s.Pending.Selected, idx)
	if len(selected) == len(s.Pending.Selected) {
		return Outcome{}, nil
	}
	s.Pending.Selected = selected
	return Outcome{Changed: []Key{KeyPending}}, nil
}

func acceptPending(s *State, now time.Time) (Outcome, error) {
	if s.Pending == nil || len(s.Pending.Selected) == 0 {
		return Outcome{}, ErrNoSuggestions
	}
	// Routines added since generation may have used up slots.
	slots := RemainingSlots(s.IsPro, len(s.Routines))
	selected, pw, err := selectPicks(len(s.Pending.Candidates), s.Pending.Selected, slots)
	if err != nil {
		return Outcome{}, err
	}
	if len(selected) == 0 {
		if pw == nil {
			pw = &Paywall{Reason: PaywallRoutineLimit}
		}
		return Outcome{Paywall: pw}, nil
	}

	picked := make([]models.Routine, 0, len(selected))
	for _, idx := range selected {
		picked = append(picked, s.Pending.Candidates[idx])
	}
	out, err := addRoutines(s, SourceAI, picked, now)
	if err != nil || out.Paywall != nil {
		return out, err
	}
	s.Pending = nil
	out.Changed = append(out.Changed, KeyPending)
	out.Paywall = pw
	return out, nil
}

func importBlueprint(s *State, a ImportBlueprint, now time.Time) (Outcome, error) {
	bp, err := FindBlueprint(a.BlueprintID)
	if err != nil {
		return Outcome{}, err
	}
	if !s.IsPro {
		return Outcome{Paywall: &Paywall{Reason: PaywallProOnly}}, nil
	}
	out, err := addRoutines(s, SourceBlueprint, BlueprintRoutines(bp), now)
	if err == nil && out.Paywall == nil {
		out.Message = fmt.Sprintf("Imported %s.", bp.Title)
	}
	return out, err
}
