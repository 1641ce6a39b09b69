package domain

import "context"

// TextGenerator defines the contract for the text-generation collaborator.
// The system persona and user prompt are passed per call; the model and
// sampling parameters are fixed at construction.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
