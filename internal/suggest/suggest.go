// ABOUTME: Suggestion adapter that turns raw generator text into validated routines.
// ABOUTME: Failures degrade to fallback text and never reach the caller as errors.
package suggest

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/harperreed/apex/internal/models"
)

// Fallback texts shown when a generator call fails.
const (
	FallbackChatText    = "Connection error. Stay focused and try again."
	FallbackSuggestText = "Nothing suggested right now."
)

// DefaultCount is the number of suggestions requested when none is given.
const DefaultCount = 3

// ErrNotConfigured is returned by generators without credentials.
var ErrNotConfigured = errors.New("no AI provider configured")

// Generator is the opaque remote model. Implementations return raw text.
type Generator interface {
	Suggest(ctx context.Context, goal string, count int) (string, error)
	Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error)
}

// Result is the outcome of a suggestion request: Candidates when Err is nil.
type Result struct {
	Candidates []models.Routine
	Err        error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Message is the text to show the user for this result.
func (r Result) Message() string {
	if r.Err != nil || len(r.Candidates) == 0 {
		return FallbackSuggestText
	}
	return ""
}

// Reply is a Guru chat answer with any suggested routines.
type Reply struct {
	Text        string
	Suggestions []models.Routine
	Err         error
}

// Adapter wraps a Generator with parsing, validation, and logging.
type Adapter struct {
	gen    Generator
	logger *log.Logger
}

// NewAdapter creates an adapter. A nil logger discards output.
func NewAdapter(gen Generator, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{gen: gen, logger: logger}
}

// Suggest asks the generator for count routines toward goal.
func (a *Adapter) Suggest(ctx context.Context, goal string, count int) Result {
	if count <= 0 {
		count = DefaultCount
	}
	text, err := a.gen.Suggest(ctx, goal, count)
	if err != nil {
		a.logger.Warn("suggestion request failed", "goal", goal, "err", err)
		return Result{Err: err}
	}
	candidates, err := ParseCandidates(text, SuggestDefaults)
	if err != nil {
		a.logger.Warn("suggestion response unusable", "err", err)
		return Result{Err: err}
	}
	return Result{Candidates: candidates}
}

// Chat sends message with prior history to the Guru and splits the reply.
func (a *Adapter) Chat(ctx context.Context, history []models.ChatMessage, message string) Reply {
	text, err := a.gen.Chat(ctx, history, message)
	if err != nil {
		a.logger.Warn("guru request failed", "err", err)
		return Reply{Text: FallbackChatText, Err: err}
	}

	display, data, ok := SplitReply(text)
	reply := Reply{Text: display}
	if !ok {
		return reply
	}
	suggestions, err := ParseCandidates(data, ChatDefaults)
	if err != nil {
		a.logger.Warn("guru suggestions unusable", "err", err)
		return reply
	}
	reply.Suggestions = suggestions
	return reply
}
