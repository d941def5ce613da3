// ABOUTME: ID prefix resolution for routines, tasks, and chat messages.
// ABOUTME: Exact matches win; otherwise a prefix must match exactly one item.
package tracker

import (
	"fmt"
	"strings"

	"github.com/harperreed/apex/internal/models"
)

func resolvePrefix[T any](items []T, id func(*T) string, prefix string, notFound error) (int, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return -1, notFound
	}
	match := -1
	for i := range items {
		full := id(&items[i])
		if full == prefix {
			return i, nil
		}
		if strings.HasPrefix(full, prefix) {
			if match >= 0 {
				return -1, fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousID, prefix)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", notFound, prefix)
	}
	return match, nil
}

// ResolveRoutine finds a routine by ID or unique ID prefix.
func (s *State) ResolveRoutine(prefix string) (models.Routine, error) {
	i, err := resolvePrefix(s.Routines, func(r *models.Routine) string { return r.ID }, prefix, ErrRoutineNotFound)
	if err != nil {
		return models.Routine{}, err
	}
	return s.Routines[i].Clone(), nil
}

// ResolveTask finds a task by ID or unique ID prefix.
func (s *State) ResolveTask(prefix string) (models.Task, error) {
	i, err := resolvePrefix(s.Tasks, func(t *models.Task) string { return t.ID }, prefix, ErrTaskNotFound)
	if err != nil {
		return models.Task{}, err
	}
	return s.Tasks[i], nil
}

// ResolveMessage finds a chat message by ID or unique ID prefix.
func (s *State) ResolveMessage(prefix string) (models.ChatMessage, error) {
	i, err := resolvePrefix(s.Chat, func(m *models.ChatMessage) string { return m.ID }, prefix, ErrMessageNotFound)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return s.Chat[i], nil
}
