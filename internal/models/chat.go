// ABOUTME: Chat message model for the Guru coach conversation.
// ABOUTME: Model replies may carry uncommitted routine suggestions.
package models

import (
	"github.com/oklog/ulid/v2"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// GreetingText opens every new conversation.
const GreetingText = "I am your High Performance Guru. What is the target today?"

// ChatMessage is one turn of the Guru conversation.
type ChatMessage struct {
	ID                string    `json:"id" yaml:"id"`
	Role              Role      `json:"role" yaml:"role"`
	Text              string    `json:"text" yaml:"text"`
	SuggestedRoutines []Routine `json:"suggestedRoutines,omitempty" yaml:"suggested_routines,omitempty"`
	// Accepted is set once the suggestions have been added.
	Accepted bool `json:"accepted,omitempty" yaml:"accepted,omitempty"`
}

// NewChatMessage creates a message with a sortable ULID.
func NewChatMessage(role Role, text string) *ChatMessage {
	return &ChatMessage{
		ID:   ulid.Make().String(),
		Role: role,
		Text: text,
	}
}

// GreetingMessage is the default conversation opener.
func GreetingMessage() ChatMessage {
	return ChatMessage{ID: "init", Role: RoleModel, Text: GreetingText}
}

// DailyUsage counts Guru messages sent on a calendar day.
type DailyUsage struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}
