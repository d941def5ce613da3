// ABOUTME: App is the single-writer state store: reduce, persist, commit.
// ABOUTME: AI calls run outside the lock and apply their result by a second dispatch.
package tracker

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/suggest"
)

// Persister durably writes the given keys of a state.
type Persister interface {
	Persist(state *State, keys []Key) error
}

// App serializes actions against one in-memory State.
type App struct {
	mu      sync.Mutex
	state   State
	persist Persister
	adapter *suggest.Adapter
	now     func() time.Time
	logger  *log.Logger
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithAdapter sets the AI suggestion adapter.
func WithAdapter(ad *suggest.Adapter) Option {
	return func(a *App) { a.adapter = ad }
}

// NewApp creates an App over a loaded state. A nil Persister keeps
// everything in memory.
func NewApp(state State, p Persister, opts ...Option) *App {
	a := &App{
		state:   state.Clone(),
		persist: p,
		now:     time.Now,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.adapter == nil {
		a.adapter = suggest.NewAdapter(suggest.Static{}, a.logger)
	}
	return a
}

// Now returns the app clock's current time.
func (a *App) Now() time.Time {
	return a.now()
}

// State returns a copy of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Clone()
}

// Dispatch reduces action, persists the changed keys, then commits. If
// persisting fails the in-memory state is left untouched.
func (a *App) Dispatch(action Action) (Outcome, error) {
	return a.dispatch(action, nil)
}

// dispatch is Dispatch that, when snap is non-nil, also copies the committed
// state into snap before releasing the lock.
func (a *App) dispatch(action Action, snap *State) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next, out, err := Reduce(a.state, action, a.now())
	if err != nil {
		a.logger.Debug("action rejected", "action", fmt.Sprintf("%T", action), "err", err)
		return out, err
	}
	if out.Paywall != nil {
		a.logger.Debug("paywall", "action", fmt.Sprintf("%T", action), "reason", out.Paywall.Reason)
	}
	if len(out.Changed) == 0 {
		return out, nil
	}
	if a.persist != nil {
		if err := a.persist.Persist(&next, out.Changed); err != nil {
			return Outcome{}, fmt.Errorf("persist %v: %w", out.Changed, err)
		}
	}
	a.state = next
	if len(out.Added) > 0 {
		a.logger.Debug("routines added", "source", out.Source, "count", len(out.Added))
	}
	a.logger.Debug("state updated", "action", fmt.Sprintf("%T", action), "changed", out.Changed, "xp", next.XP)
	if snap != nil {
		*snap = a.state.Clone()
	}
	return out, nil
}

// Level returns the level info for the current XP.
func (a *App) Level() LevelInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ComputeLevelInfo(a.state.XP, DefaultLevels)
}

// Stats returns this week's statistics.
func (a *App) Stats() WeeklyStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ComputeWeeklyStats(a.state.Routines)
}

// ResolveRoutine finds a routine by ID prefix.
func (a *App) ResolveRoutine(prefix string) (models.Routine, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.ResolveRoutine(prefix)
}

// ResolveTask finds a task by ID prefix.
func (a *App) ResolveTask(prefix string) (models.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.ResolveTask(prefix)
}

// ResolveMessage finds a chat message by ID prefix.
func (a *App) ResolveMessage(prefix string) (models.ChatMessage, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.ResolveMessage(prefix)
}

// GenerateSuggestions asks the AI for routines toward goal and stores them
// as pending. Generator failures are reported through Outcome.Message.
func (a *App) GenerateSuggestions(ctx context.Context, goal string, count int) (Outcome, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return Outcome{}, ErrEmptyMessage
	}
	out, err := a.Dispatch(BeginSuggestions{})
	if err != nil || out.Paywall != nil {
		return out, err
	}

	res := a.adapter.Suggest(ctx, goal, count)
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if !res.OK() || len(res.Candidates) == 0 {
		return Outcome{Message: res.Message()}, nil
	}
	return a.Dispatch(SetPendingSuggestions{Goal: goal, Candidates: res.Candidates})
}

// SendGuruMessage records the user's message, asks the Guru, and appends
// the reply. A quota refusal returns a Paywall without calling the AI.
func (a *App) SendGuruMessage(ctx context.Context, text string) (Outcome, error) {
	var state State
	out, err := a.dispatch(SendChatMessage{Text: text}, &state)
	if err != nil || out.Paywall != nil {
		return out, err
	}

	history := state.Chat
	if i := state.FindMessage(out.Chat.ID); i >= 0 {
		history = history[:i]
	}
	reply := a.adapter.Chat(ctx, history, out.Chat.Text)
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	return a.Dispatch(ReceiveChatReply{Text: reply.Text, Suggestions: reply.Suggestions})
}
