package interfaces

import "context"

// GeminiClient is the contract for the Gemini API client used by the copilot.
type GeminiClient interface {
	// GenerateText sends a prompt and returns the model's text response.
	GenerateText(ctx context.Context, prompt string) (string, error)

	Close() error
}
