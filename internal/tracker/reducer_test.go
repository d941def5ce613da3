// ABOUTME: Tests for the pure reducer: toggles, resets, gating, journal, tasks, chat.
package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/apex/internal/models"
)

var monday = time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)

func stateWithRoutines(n int) State {
	s := DefaultState()
	for i := 0; i < n; i++ {
		s.Routines = append(s.Routines, *models.NewRoutine(fmt.Sprintf("Habit %d", i), models.CategoryHealth))
	}
	return s
}

func reduce(t *testing.T, s State, a Action) (State, Outcome) {
	t.Helper()
	next, out, err := Reduce(s, a, monday)
	require.NoError(t, err)
	return next, out
}

func TestToggleMondayScenario(t *testing.T) {
	s := stateWithRoutines(1)
	id := s.Routines[0].ID

	next, out := reduce(t, s, ToggleDay{RoutineID: id, Day: 0})
	r := next.Routines[0]
	assert.True(t, r.CompletedDays[0])
	assert.Equal(t, 14, r.Consistency)
	assert.Equal(t, 1, r.Streak)
	assert.Equal(t, 10, next.XP)
	assert.Equal(t, 10, out.XPDelta)
	assert.ElementsMatch(t, []Key{KeyRoutines, KeyXP}, out.Changed)
}

func TestToggleRoundTrip(t *testing.T) {
	s := stateWithRoutines(1)
	s.Routines[0].Streak = 3
	s.XP = 40
	id := s.Routines[0].ID

	once, _ := reduce(t, s, ToggleDay{RoutineID: id, Day: 4})
	twice, _ := reduce(t, once, ToggleDay{RoutineID: id, Day: 4})

	assert.Equal(t, s.Routines[0].CompletedDays, twice.Routines[0].CompletedDays)
	assert.Equal(t, s.Routines[0].Consistency, twice.Routines[0].Consistency)
	assert.Equal(t, 3, twice.Routines[0].Streak)
	assert.Equal(t, 40, twice.XP)
}

func TestToggleOffClampsXPAndStreak(t *testing.T) {
	s := stateWithRoutines(1)
	s.Routines[0].CompletedDays[2] = true
	id := s.Routines[0].ID

	next, out := reduce(t, s, ToggleDay{RoutineID: id, Day: 2})
	assert.Equal(t, 0, next.XP)
	assert.Equal(t, 0, next.Routines[0].Streak)
	assert.Equal(t, 0, out.XPDelta)
	assert.Equal(t, []Key{KeyRoutines}, out.Changed)
}

func TestToggleNoops(t *testing.T) {
	s := stateWithRoutines(2)
	s.Routines[0].Frequency = []int{0, 2, 4}
	s.Routines[1].Type = models.RoutineNegative

	for _, a := range []ToggleDay{
		{RoutineID: s.Routines[0].ID, Day: 1},
		{RoutineID: s.Routines[1].ID, Day: 0},
	} {
		next, out := reduce(t, s, a)
		assert.Empty(t, out.Changed)
		assert.Empty(t, cmp.Diff(s, next))
	}
}

func TestToggleErrors(t *testing.T) {
	s := stateWithRoutines(1)
	_, _, err := Reduce(s, ToggleDay{RoutineID: s.Routines[0].ID, Day: 7}, monday)
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, _, err = Reduce(s, ToggleDay{RoutineID: s.Routines[0].ID, Day: -1}, monday)
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, _, err = Reduce(s, ToggleDay{RoutineID: "nope", Day: 0}, monday)
	assert.ErrorIs(t, err, ErrRoutineNotFound)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := stateWithRoutines(2)
	s.Routines[0].Frequency = []int{0, 1}
	before := s.Clone()

	_, _ = reduce(t, s, ToggleDay{RoutineID: s.Routines[0].ID, Day: 0})
	_, _ = reduce(t, s, SaveNote{RoutineID: s.Routines[1].ID, Text: "felt good"})
	_, _ = reduce(t, s, DeleteRoutine{RoutineID: s.Routines[0].ID})
	_, _ = reduce(t, s, AddTask{Title: "x"})

	assert.Empty(t, cmp.Diff(before, s))
}

func TestResetWeekPreservesStreak(t *testing.T) {
	s := stateWithRoutines(1)
	s.Routines[0].CompletedDays = [7]bool{true, true, true}
	s.Routines[0].Consistency = 43
	s.Routines[0].Streak = 9
	s.XP = 30

	next, out := reduce(t, s, ResetWeek{RoutineID: s.Routines[0].ID})
	r := next.Routines[0]
	assert.Equal(t, [7]bool{}, r.CompletedDays)
	assert.Equal(t, 0, r.Consistency)
	assert.Equal(t, 9, r.Streak)
	assert.Equal(t, 30, next.XP)
	assert.Equal(t, "Week reset! Streak preserved.", out.Message)
}

func TestResetWeekNegativeRestartsClock(t *testing.T) {
	s := stateWithRoutines(1)
	s.Routines[0].Type = models.RoutineNegative
	s.Routines[0].StartDate = monday.Add(-72 * time.Hour).UnixMilli()

	next, _ := reduce(t, s, ResetWeek{RoutineID: s.Routines[0].ID})
	assert.Equal(t, monday.UnixMilli(), next.Routines[0].StartDate)
	assert.Equal(t, 0, next.Routines[0].DaysClean(monday))
}

func TestDeleteRoutine(t *testing.T) {
	s := stateWithRoutines(3)
	next, _ := reduce(t, s, DeleteRoutine{RoutineID: s.Routines[1].ID})
	require.Len(t, next.Routines, 2)
	assert.Equal(t, s.Routines[0].ID, next.Routines[0].ID)
	assert.Equal(t, s.Routines[2].ID, next.Routines[1].ID)

	_, _, err := Reduce(s, DeleteRoutine{RoutineID: "missing"}, monday)
	assert.ErrorIs(t, err, ErrRoutineNotFound)
}

func TestAddRoutinesNormalizes(t *testing.T) {
	s := DefaultState()
	in := []models.Routine{
		{Title: "  Cold shower ", Category: "bogus"},
		{Title: "No sugar", Type: models.RoutineNegative, Category: models.CategoryHealth},
	}
	next, out := reduce(t, s, AddRoutines{Source: SourceManual, Routines: in})
	require.Len(t, next.Routines, 2)
	require.Len(t, out.Added, 2)

	r := next.Routines[0]
	assert.Equal(t, "Cold shower", r.Title)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, models.CategoryGrowth, r.Category)
	assert.Equal(t, models.CategoryGrowth.Color(), r.IconColor)
	assert.Equal(t, models.RoutinePositive, r.Type)

	assert.Equal(t, monday.UnixMilli(), next.Routines[1].StartDate)

	_, _, err := Reduce(s, AddRoutines{Routines: []models.Routine{{Title: "  "}}}, monday)
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestAddRoutinesReassignsDuplicateIDs(t *testing.T) {
	s := stateWithRoutines(1)
	dup := s.Routines[0].Clone()
	next, _ := reduce(t, s, AddRoutines{Routines: []models.Routine{dup}})
	require.Len(t, next.Routines, 2)
	assert.NotEqual(t, next.Routines[0].ID, next.Routines[1].ID)
}

func TestAddedRoutinesReportSource(t *testing.T) {
	run := *models.NewRoutine("Run", models.CategoryHealth)

	_, out := reduce(t, DefaultState(), AddRoutines{Routines: []models.Routine{run}})
	assert.Equal(t, SourceManual, out.Source)

	_, out = reduce(t, DefaultState(), AddRoutines{Source: SourceAI, Routines: []models.Routine{run}})
	assert.Equal(t, SourceAI, out.Source)

	pending, _ := reduce(t, DefaultState(), SetPendingSuggestions{Goal: "fit", Candidates: []models.Routine{run}})
	_, out = reduce(t, pending, AcceptPendingSuggestions{})
	assert.Equal(t, SourceAI, out.Source)

	guru, id := guruState(t, 0, 1)
	_, out = reduce(t, guru, AcceptChatSuggestions{MessageID: id})
	assert.Equal(t, SourceGuru, out.Source)

	pro, _ := reduce(t, DefaultState(), Upgrade{})
	_, out = reduce(t, pro, ImportBlueprint{BlueprintID: "titan-1"})
	assert.Equal(t, SourceBlueprint, out.Source)
}

func TestGatingAtLimit(t *testing.T) {
	s := stateWithRoutines(FreeRoutineLimit)
	candidate := *models.NewRoutine("One more", models.CategoryCareer)

	actions := map[string]Action{
		"manual":    AddRoutines{Source: SourceManual, Routines: []models.Routine{candidate}},
		"ai":        BeginSuggestions{},
		"blueprint": ImportBlueprint{BlueprintID: "titan-3"},
	}
	for name, a := range actions {
		t.Run(name, func(t *testing.T) {
			next, out := reduce(t, s, a)
			require.NotNil(t, out.Paywall)
			assert.Empty(t, out.Changed)
			assert.Len(t, next.Routines, FreeRoutineLimit)
		})
	}
}

func TestGatingBatchOverflow(t *testing.T) {
	s := stateWithRoutines(8)
	batch := []models.Routine{
		*models.NewRoutine("a", models.CategoryCareer),
		*models.NewRoutine("b", models.CategoryCareer),
		*models.NewRoutine("c", models.CategoryCareer),
	}
	next, out := reduce(t, s, AddRoutines{Routines: batch})
	require.NotNil(t, out.Paywall)
	assert.Len(t, next.Routines, 8)

	next, out = reduce(t, s, AddRoutines{Routines: batch[:2]})
	assert.Nil(t, out.Paywall)
	assert.Len(t, next.Routines, 10)
}

func TestProBypassesLimit(t *testing.T) {
	s := stateWithRoutines(FreeRoutineLimit)
	s, _ = reduce(t, s, Upgrade{})
	assert.True(t, s.IsPro)

	next, out := reduce(t, s, ImportBlueprint{BlueprintID: "titan-1"})
	assert.Nil(t, out.Paywall)
	assert.Len(t, next.Routines, FreeRoutineLimit+4)
	assert.Equal(t, "Email Triage (5 min blocks)", next.Routines[FreeRoutineLimit].Title)

	_, out = reduce(t, next, Upgrade{})
	assert.Empty(t, out.Changed)
}

func TestBlueprintProOnly(t *testing.T) {
	s := DefaultState()
	next, out := reduce(t, s, ImportBlueprint{BlueprintID: "titan-2"})
	require.NotNil(t, out.Paywall)
	assert.Equal(t, PaywallProOnly, out.Paywall.Reason)
	assert.Empty(t, next.Routines)

	_, _, err := Reduce(s, ImportBlueprint{BlueprintID: "titan-9"}, monday)
	assert.ErrorIs(t, err, ErrUnknownBlueprint)
}

func TestJournalUpsertFromNotes(t *testing.T) {
	s := stateWithRoutines(2)
	s, _ = reduce(t, s, SaveNote{RoutineID: s.Routines[0].ID, Text: "first"})
	s, out := reduce(t, s, SaveNote{RoutineID: s.Routines[1].ID, Text: "second"})

	require.Len(t, s.Journal, 1)
	e := s.Journal[0]
	assert.Equal(t, "2024-01-01", e.Date)
	assert.Equal(t, models.MoodNeutral, e.Mood)
	assert.Empty(t, e.Content)
	require.Len(t, e.HabitLog, 2)
	assert.Equal(t, "first", e.HabitLog[0].Note)
	assert.Equal(t, "Habit 0", e.HabitLog[0].RoutineTitle)
	assert.Equal(t, "second", e.HabitLog[1].Note)
	assert.Equal(t, "second", s.Routines[1].Notes)
	assert.ElementsMatch(t, []Key{KeyRoutines, KeyJournal}, out.Changed)
}

func TestSaveJournalEntry(t *testing.T) {
	s := stateWithRoutines(1)
	s, _ = reduce(t, s, SaveNote{RoutineID: s.Routines[0].ID, Text: "note"})

	s, _ = reduce(t, s, SaveJournalEntry{Entry: models.JournalEntry{Date: "2024-01-01", Content: "Solid day", Mood: models.MoodGreat}})
	require.Len(t, s.Journal, 1)
	assert.Equal(t, "Solid day", s.Journal[0].Content)
	assert.Equal(t, models.MoodGreat, s.Journal[0].Mood)
	assert.Len(t, s.Journal[0].HabitLog, 1)

	s, _ = reduce(t, s, SaveJournalEntry{Entry: models.JournalEntry{Date: "2024-01-02", Content: "Next"}})
	require.Len(t, s.Journal, 2)
	assert.Equal(t, models.MoodNeutral, s.Journal[1].Mood)
	assert.NotNil(t, s.Journal[1].HabitLog)

	_, _, err := Reduce(s, SaveJournalEntry{Entry: models.JournalEntry{Date: "01/02/2024"}}, monday)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, _, err = Reduce(s, SaveJournalEntry{Entry: models.JournalEntry{Date: "2024-01-02", Mood: "ecstatic"}}, monday)
	assert.ErrorIs(t, err, ErrInvalidMood)
}

func TestTasks(t *testing.T) {
	s := DefaultState()
	s, _ = reduce(t, s, AddTask{Title: "first"})
	s, out := reduce(t, s, AddTask{Title: "second", Date: "2024-01-03"})
	require.Len(t, s.Tasks, 2)
	assert.Equal(t, "second", s.Tasks[0].Title)
	assert.Equal(t, "2024-01-03", s.Tasks[0].Date)
	assert.Equal(t, out.Task.ID, s.Tasks[0].ID)

	id := s.Tasks[1].ID
	s, out = reduce(t, s, ToggleTask{TaskID: id})
	assert.True(t, s.Tasks[1].Completed)
	assert.Equal(t, 5, s.XP)
	assert.Equal(t, 5, out.XPDelta)

	s.XP = 3
	s, _ = reduce(t, s, ToggleTask{TaskID: id})
	assert.False(t, s.Tasks[1].Completed)
	assert.Equal(t, 0, s.XP)

	s, _ = reduce(t, s, DeleteTask{TaskID: id})
	assert.Len(t, s.Tasks, 1)

	_, _, err := Reduce(s, AddTask{Title: "   "}, monday)
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, _, err = Reduce(s, AddTask{Title: "x", Date: "tomorrow"}, monday)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, _, err = Reduce(s, ToggleTask{TaskID: "gone"}, monday)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestFocusAwardsXP(t *testing.T) {
	s, out := reduce(t, DefaultState(), CompleteFocusSession{})
	assert.Equal(t, XPFocus, s.XP)
	assert.Equal(t, XPFocus, out.XPDelta)
}

func TestThemeAndEnter(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, ThemeDark, s.Theme)

	s, _ = reduce(t, s, ToggleTheme{})
	assert.Equal(t, ThemeLight, s.Theme)

	_, out := reduce(t, s, SetTheme{Theme: ThemeLight})
	assert.Empty(t, out.Changed)

	_, _, err := Reduce(s, SetTheme{Theme: "neon"}, monday)
	assert.ErrorIs(t, err, ErrInvalidTheme)

	s, out = reduce(t, s, Enter{})
	assert.True(t, s.HasEntered)
	assert.Equal(t, []Key{KeyHasEntered}, out.Changed)
}

func TestChatQuota(t *testing.T) {
	s := DefaultState()
	for i := 0; i < FreeMessageLimit; i++ {
		var out Outcome
		s, out = reduce(t, s, SendChatMessage{Text: fmt.Sprintf("q%d", i)})
		require.Nil(t, out.Paywall)
	}
	assert.Equal(t, FreeMessageLimit, s.Usage.Count)
	assert.Len(t, s.Chat, FreeMessageLimit+1)

	next, out := reduce(t, s, SendChatMessage{Text: "one more"})
	require.NotNil(t, out.Paywall)
	assert.Equal(t, PaywallMessageLimit, out.Paywall.Reason)
	assert.Empty(t, cmp.Diff(s, next))

	// A new day resets the counter.
	tomorrow := monday.Add(24 * time.Hour)
	next, out, err := Reduce(s, SendChatMessage{Text: "fresh"}, tomorrow)
	require.NoError(t, err)
	assert.Nil(t, out.Paywall)
	assert.Equal(t, 1, next.Usage.Count)
	assert.Equal(t, "2024-01-02", next.Usage.Date)

	_, _, err = Reduce(s, SendChatMessage{Text: " "}, monday)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestRefreshUsage(t *testing.T) {
	s := DefaultState()
	s.Usage = models.DailyUsage{Date: "2023-12-31", Count: 5}
	next, out := reduce(t, s, RefreshUsage{})
	assert.Equal(t, models.DailyUsage{Date: "2024-01-01"}, next.Usage)
	assert.Equal(t, []Key{KeyUsage}, out.Changed)

	_, out = reduce(t, next, RefreshUsage{})
	assert.Empty(t, out.Changed)
}

func guruState(t *testing.T, routines, suggestions int) (State, string) {
	t.Helper()
	s := stateWithRoutines(routines)
	var sugg []models.Routine
	for i := 0; i < suggestions; i++ {
		sugg = append(sugg, *models.NewRoutine(fmt.Sprintf("Guru %d", i), models.CategoryMindset))
	}
	s, out := reduce(t, s, ReceiveChatReply{Text: "Try these.", Suggestions: sugg})
	return s, out.Chat.ID
}

func TestAcceptChatSuggestionsPreselects(t *testing.T) {
	s, id := guruState(t, 8, 3)
	next, out := reduce(t, s, AcceptChatSuggestions{MessageID: id})
	assert.Nil(t, out.Paywall)
	assert.Len(t, next.Routines, 10)
	assert.Equal(t, "Guru 0", next.Routines[8].Title)
	assert.Equal(t, "Guru 1", next.Routines[9].Title)
	assert.True(t, next.Chat[len(next.Chat)-1].Accepted)

	_, _, err := Reduce(next, AcceptChatSuggestions{MessageID: id}, monday)
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
}

func TestAcceptChatSuggestionsRejectsPerItem(t *testing.T) {
	s, id := guruState(t, 8, 3)
	next, out := reduce(t, s, AcceptChatSuggestions{MessageID: id, Picks: []int{2, 0, 1}})
	require.NotNil(t, out.Paywall)
	assert.Equal(t, []int{1}, out.Paywall.Rejected)
	assert.Len(t, next.Routines, 10)
	assert.Equal(t, "Guru 0", next.Routines[8].Title)
	assert.Equal(t, "Guru 2", next.Routines[9].Title)

	_, _, err := Reduce(s, AcceptChatSuggestions{MessageID: id, Picks: []int{5}}, monday)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestAcceptChatSuggestionsAtLimit(t *testing.T) {
	s, id := guruState(t, FreeRoutineLimit, 2)
	next, out := reduce(t, s, AcceptChatSuggestions{MessageID: id})
	require.NotNil(t, out.Paywall)
	assert.Len(t, next.Routines, FreeRoutineLimit)

	_, _, err := Reduce(s, AcceptChatSuggestions{MessageID: "init"}, monday)
	assert.ErrorIs(t, err, ErrNoSuggestions)
}

func TestPendingSuggestionsFlow(t *testing.T) {
	s := stateWithRoutines(9)
	cands := []models.Routine{
		*models.NewRoutine("A", models.CategoryGrowth),
		*models.NewRoutine("B", models.CategoryGrowth),
	}
	s, _ = reduce(t, s, SetPendingSuggestions{Goal: "learn", Candidates: cands})
	require.NotNil(t, s.Pending)
	assert.Equal(t, []int{0}, s.Pending.Selected)

	_, out := reduce(t, s, SelectSuggestion{Index: 1})
	require.NotNil(t, out.Paywall)

	s, _ = reduce(t, s, DeselectSuggestion{Index: 0})
	s, out = reduce(t, s, SelectSuggestion{Index: 1})
	assert.Nil(t, out.Paywall)
	assert.Equal(t, []int{1}, s.Pending.Selected)

	s, out = reduce(t, s, AcceptPendingSuggestions{})
	assert.Nil(t, s.Pending)
	require.Len(t, s.Routines, 10)
	assert.Equal(t, "B", s.Routines[9].Title)
	assert.ElementsMatch(t, []Key{KeyRoutines, KeyPending}, out.Changed)

	_, _, err := Reduce(s, AcceptPendingSuggestions{}, monday)
	assert.ErrorIs(t, err, ErrNoSuggestions)
}

func TestAcceptPendingAfterRoutinesAdded(t *testing.T) {
	s := stateWithRoutines(5)
	var cands []models.Routine
	for _, title := range []string{"A", "B", "C"} {
		cands = append(cands, *models.NewRoutine(title, models.CategoryGrowth))
	}
	s, _ = reduce(t, s, SetPendingSuggestions{Goal: "focus", Candidates: cands})
	require.Equal(t, []int{0, 1, 2}, s.Pending.Selected)

	s, _ = reduce(t, s, AddRoutines{Routines: []models.Routine{
		*models.NewRoutine("Walk", models.CategoryHealth),
		*models.NewRoutine("Stretch", models.CategoryHealth),
		*models.NewRoutine("Water", models.CategoryHealth),
		*models.NewRoutine("Sleep", models.CategoryHealth),
	}})
	require.Len(t, s.Routines, 9)

	next, out := reduce(t, s, AcceptPendingSuggestions{})
	require.NotNil(t, out.Paywall)
	assert.Equal(t, PaywallRoutineLimit, out.Paywall.Reason)
	assert.Equal(t, []int{1, 2}, out.Paywall.Rejected)
	require.Len(t, next.Routines, FreeRoutineLimit)
	assert.Equal(t, "A", next.Routines[9].Title)
	assert.Nil(t, next.Pending)

	s.Routines = append(s.Routines, *models.NewRoutine("Read", models.CategoryGrowth))
	full, out := reduce(t, s, AcceptPendingSuggestions{})
	require.NotNil(t, out.Paywall)
	assert.Equal(t, []int{0, 1, 2}, out.Paywall.Rejected)
	assert.NotNil(t, full.Pending, "a fully refused accept keeps the queue")
}

func TestClearPendingSuggestions(t *testing.T) {
	s := DefaultState()
	s, _ = reduce(t, s, SetPendingSuggestions{Goal: "x", Candidates: []models.Routine{*models.NewRoutine("A", models.CategoryGrowth)}})
	s, out := reduce(t, s, ClearPendingSuggestions{})
	assert.Nil(t, s.Pending)
	assert.Equal(t, []Key{KeyPending}, out.Changed)
}

func TestReplace(t *testing.T) {
	other := stateWithRoutines(2)
	other.XP = 77
	next, out := reduce(t, DefaultState(), Replace{State: other})
	assert.Equal(t, 77, next.XP)
	assert.Len(t, next.Routines, 2)
	assert.ElementsMatch(t, AllKeys, out.Changed)
}

func TestReplaceKeepsUsageAndPending(t *testing.T) {
	s := DefaultState()
	for i := 0; i < FreeMessageLimit; i++ {
		s, _ = reduce(t, s, SendChatMessage{Text: fmt.Sprintf("q%d", i)})
	}
	s, _ = reduce(t, s, SetPendingSuggestions{Goal: "sleep", Candidates: []models.Routine{*models.NewRoutine("A", models.CategoryHealth)}})

	backup := stateWithRoutines(1)
	backup.Usage = models.DailyUsage{Date: "2024-01-01"}
	next, _ := reduce(t, s, Replace{State: backup})

	assert.Equal(t, FreeMessageLimit, next.Usage.Count)
	require.NotNil(t, next.Pending)
	assert.Equal(t, "sleep", next.Pending.Goal)
	assert.Len(t, next.Routines, 1)

	_, out := reduce(t, next, SendChatMessage{Text: "after import"})
	require.NotNil(t, out.Paywall)
	assert.Equal(t, PaywallMessageLimit, out.Paywall.Reason)
}

type bogusAction struct{ ToggleDay }

func TestUnknownAction(t *testing.T) {
	_, _, err := Reduce(DefaultState(), bogusAction{}, monday)
	assert.ErrorIs(t, err, ErrUnknownAction)
}
