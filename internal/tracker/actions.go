// ABOUTME: Action types accepted by Reduce.
// ABOUTME: Actions carry exact IDs; prefix resolution happens in App.
package tracker

import "github.com/harperreed/apex/internal/models"

// Action is a state transition request.
type Action interface {
	isAction()
}

// Source identifies which entry point is adding routines. It is reported
// on the Outcome; an empty Source on AddRoutines means SourceManual.
type Source string

const (
	SourceManual    Source = "manual"
	SourceAI        Source = "ai"
	SourceGuru      Source = "guru"
	SourceBlueprint Source = "blueprint"
)

type (
	ToggleDay struct {
		RoutineID string
		Day       int
	}
	ResetWeek struct {
		RoutineID string
	}
	DeleteRoutine struct {
		RoutineID string
	}
	AddRoutines struct {
		Source   Source
		Routines []models.Routine
	}
	SaveNote struct {
		RoutineID string
		Text      string
	}
	AddTask struct {
		Title string
		Date  string
	}
	ToggleTask struct {
		TaskID string
	}
	DeleteTask struct {
		TaskID string
	}
	// SaveJournalEntry replaces the entry for Entry.Date. A nil HabitLog
	// keeps the existing log.
	SaveJournalEntry struct {
		Entry models.JournalEntry
	}
	Upgrade     struct{}
	SetTheme    struct{ Theme Theme }
	ToggleTheme struct{}
	Enter       struct{}
	// CompleteFocusSession is dispatched once per finished focus timer.
	CompleteFocusSession struct{}
	// RefreshUsage resets the daily AI counter when the day has changed.
	RefreshUsage    struct{}
	SendChatMessage struct {
		Text string
	}
	ReceiveChatReply struct {
		Text        string
		Suggestions []models.Routine
	}
	// AcceptChatSuggestions adds the picked suggestions of a Guru message.
	// A nil Picks selects as many as the remaining slots allow.
	AcceptChatSuggestions struct {
		MessageID string
		Picks     []int
	}
	// BeginSuggestions checks the quota before an AI generation request.
	BeginSuggestions      struct{}
	SetPendingSuggestions struct {
		Goal       string
		Candidates []models.Routine
	}
	SelectSuggestion struct {
		Index int
	}
	DeselectSuggestion struct {
		Index int
	}
	AcceptPendingSuggestions struct{}
	ClearPendingSuggestions  struct{}
	ImportBlueprint          struct {
		BlueprintID string
	}
	// Replace swaps the whole state, used by import. The daily Guru usage
	// and the pending review queue are kept.
	Replace struct {
		State State
	}
)

func (ToggleDay) isAction()                {}
func (ResetWeek) isAction()                {}
func (DeleteRoutine) isAction()            {}
func (AddRoutines) isAction()              {}
func (SaveNote) isAction()                 {}
func (AddTask) isAction()                  {}
func (ToggleTask) isAction()               {}
func (DeleteTask) isAction()               {}
func (SaveJournalEntry) isAction()         {}
func (Upgrade) isAction()                  {}
func (SetTheme) isAction()                 {}
func (ToggleTheme) isAction()              {}
func (Enter) isAction()                    {}
func (CompleteFocusSession) isAction()     {}
func (RefreshUsage) isAction()             {}
func (SendChatMessage) isAction()          {}
func (ReceiveChatReply) isAction()         {}
func (AcceptChatSuggestions) isAction()    {}
func (BeginSuggestions) isAction()         {}
func (SetPendingSuggestions) isAction()    {}
func (SelectSuggestion) isAction()         {}
func (DeselectSuggestion) isAction()       {}
func (AcceptPendingSuggestions) isAction() {}
func (ClearPendingSuggestions) isAction()  {}
func (ImportBlueprint) isAction()          {}
func (Replace) isAction()                  {}
