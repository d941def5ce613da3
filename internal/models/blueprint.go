// ABOUTME: Blueprint model for persona routine bundles.
// ABOUTME: Blueprints are imported as a batch by pro users.
package models

// BlueprintRoutine is a partial routine template inside a blueprint.
type BlueprintRoutine struct {
	Title     string   `json:"title" yaml:"title"`
	Category  Category `json:"category" yaml:"category"`
	IconColor string   `json:"iconColor,omitempty" yaml:"icon_color,omitempty"`
}

// Blueprint is a predefined bundle of routines attributed to a persona.
type Blueprint struct {
	ID          string             `json:"id" yaml:"id"`
	Author      string             `json:"author" yaml:"author"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Routines    []BlueprintRoutine `json:"routines" yaml:"routines"`
}
