package copilot

import (
	"context"
	"errors"
	"fmt"

	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/models"
)

// ErrNotConfigured is returned when no Gemini client is available, typically
// because no API key was set. Handlers map this to a 503.
var ErrNotConfigured = errors.New("copilot is not configured")

const systemPrompt = `You are WealthLens, a personal-finance education assistant.
You explain the user's own portfolio numbers and general financial concepts.
You never give buy, sell, or timing advice, never predict market movements,
and never promise or guarantee returns. When a question needs personal advice,
point the user to a SEBI-registered investment advisor.`

const calmContext = `[The user appears anxious or rushed. Acknowledge their concern calmly before explaining anything, and avoid language that adds pressure.]`

// refusals keyed by the guardrail type that fired first.
var refusals = map[models.GuardrailType]string{
	models.GuardrailAdvice:         "I can't recommend whether to buy, sell, or time an investment. A SEBI-registered investment advisor can help with that decision. I'm happy to explain the numbers behind your portfolio instead.",
	models.GuardrailPrediction:     "I can't predict market movements or price targets, and neither can anyone else reliably. I can explain how your holdings have actually performed so far.",
	models.GuardrailOverconfidence: "No investment offers guaranteed or risk-free returns, so I can't point you to one. I can explain how risk and return trade off across your current holdings.",
	models.GuardrailInjection:      "I can only answer questions about your portfolio and general financial concepts.",
	models.GuardrailPanic:          "Take a breath. Nothing in your portfolio needs a decision this minute. Ask me about any specific holding and I'll walk you through its actual numbers.",
}

// Service implements CopilotService
type Service struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewService creates a new copilot service. gemini may be nil when no API key
// is configured; queries then fail with ErrNotConfigured after the guardrail
// screen, so blocked queries still get their refusal without a key.
func NewService(gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		gemini: gemini,
		logger: logger,
	}
}

// Query screens the question, calls the model when allowed, and sanitizes the
// answer. Blocked queries never reach the model.
func (s *Service) Query(ctx context.Context, userID, query string) (*models.CopilotResponse, error) {
	triggered, action := ScreenQuery(query)

	if action == models.QueryActionBlock {
		s.logger.Warn().
			Str("user_id", userID).
			Str("guardrail", triggered[0].Name).
			Str("reason", triggered[0].Reason).
			Msg("Copilot query blocked")

		return &models.CopilotResponse{
			Answer:     refusalFor(triggered),
			Blocked:    true,
			Action:     action,
			Guardrails: triggered,
		}, nil
	}

	if s.gemini == nil {
		return nil, ErrNotConfigured
	}

	prompt := systemPrompt + "\n\n"
	if action == models.QueryActionRewrite {
		prompt += calmContext + "\n\n"
	}
	prompt += "User question: " + SanitizeInput(query)

	answer, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate copilot answer: %w", err)
	}

	postChecks := ScreenOutput(answer)
	sanitized, applied := SanitizeOutput(answer)
	if len(applied) > 0 {
		s.logger.Info().
			Str("user_id", userID).
			Strs("sanitizers", applied).
			Msg("Copilot answer sanitized")
	}

	return &models.CopilotResponse{
		Answer:     sanitized,
		Action:     action,
		Guardrails: append(triggered, postChecks...),
		Sanitized:  applied,
	}, nil
}

// refusalFor picks the refusal text for the first triggered guardrail.
func refusalFor(triggered []models.GuardrailResult) string {
	if len(triggered) > 0 {
		if msg, ok := refusals[triggered[0].Type]; ok {
			return msg
		}
	}
	return refusals[models.GuardrailInjection]
}

var _ interfaces.CopilotService = (*Service)(nil)
