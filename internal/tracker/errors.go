// ABOUTME: Sentinel errors returned by tracker actions.
// ABOUTME: Paywall outcomes are not errors; see Outcome.Paywall.
package tracker

import "errors"

var (
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrMessageNotFound  = errors.New("chat message not found")
	ErrAmbiguousID      = errors.New("ambiguous id prefix")
	ErrInvalidDay       = errors.New("day index must be between 0 (Mon) and 6 (Sun)")
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidMood      = errors.New("unknown mood")
	ErrInvalidTheme     = errors.New("theme must be dark or light")
	ErrUnknownBlueprint = errors.New("unknown blueprint")
	ErrNoSuggestions    = errors.New("no suggestions to accept")
	ErrAlreadyAccepted  = errors.New("suggestions already added")
	ErrInvalidIndex     = errors.New("suggestion index out of range")
	ErrUnknownAction    = errors.New("unknown action")
)
