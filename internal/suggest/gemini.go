// ABOUTME: Gemini-backed Generator using the google.golang.org/genai client.
// ABOUTME: Suggestions use a JSON response schema; chat uses the Guru persona.
package suggest

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/harperreed/apex/internal/models"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Gemini generates suggestions and chat replies with Google Gemini.
type Gemini struct {
	client   *genai.Client
	model    string
	language string
}

// NewGemini creates a Gemini generator. language is "en" or "pt".
func NewGemini(ctx context.Context, apiKey, model, language string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, language: language}, nil
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString, Description: "The daily habit action"},
			"category":    {Type: genai.TypeString, Description: "Category of the habit"},
			"description": {Type: genai.TypeString, Description: "Short motivation why"},
		},
		Required: []string{"title", "category"},
	},
}

// Suggest implements Generator.
func (g *Gemini) Suggest(ctx context.Context, goal string, count int) (string, error) {
	prompt := fmt.Sprintf(`I have a goal: %q. Generate exactly %d specific, daily actionable habits/routines that will help me achieve this.
Return strictly JSON data. Categories must be one of: Career, Growth, Health, Mindset.`, goal, count)

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   suggestionSchema,
		})
	if err != nil {
		return "", fmt.Errorf("generate suggestions: %w", err)
	}
	return resp.Text(), nil
}

// Chat implements Generator.
func (g *Gemini) Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	contents := chatContents(history, message)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(GuruInstruction(g.language), genai.RoleUser),
		})
	if err != nil {
		return "", fmt.Errorf("guru chat: %w", err)
	}
	return resp.Text(), nil
}

// chatContents converts history into alternating turns. Leading model
// turns such as the greeting are dropped since a conversation must open
// with the user.
func chatContents(history []models.ChatMessage, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		if len(contents) == 0 && m.Role != models.RoleUser {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if m.Role == models.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

// GuruInstruction is the system prompt for the Guru persona.
func GuruInstruction(language string) string {
	lang := "English"
	if language == "pt" {
		lang = "Portuguese"
	}
	return fmt.Sprintf(`You are 'Apex Guru', a high-performance productivity coach.
Language: %s.
Tone: Motivating, concise, elite mindset.

CRITICAL INSTRUCTION:
If the user asks for a plan, a routine, or how to achieve a specific goal, give your advice in text first.
THEN, if actionable habits are relevant, append a special separator "%s" followed by a valid JSON array of habits.

The JSON array structure must be:
[
  { "title": "Habit Name", "category": "Health" (or Career, Growth, Mindset) }
]`, lang, Separator)
}
