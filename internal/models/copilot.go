package models

// GuardrailType classifies a copilot guardrail.
type GuardrailType string

const (
	GuardrailAdvice         GuardrailType = "advice"
	GuardrailPanic          GuardrailType = "panic"
	GuardrailOverconfidence GuardrailType = "overconfidence"
	GuardrailPrediction     GuardrailType = "prediction"
	GuardrailInjection      GuardrailType = "injection"
)

// GuardrailResult is the outcome of a single deterministic guardrail check.
type GuardrailResult struct {
	Triggered      bool          `json:"triggered"`
	Type           GuardrailType `json:"type"`
	Name           string        `json:"name"`
	Reason         string        `json:"reason,omitempty"`
	MatchedPattern string        `json:"matched_pattern,omitempty"`
	Severity       Severity      `json:"severity,omitempty"`
}

// Query actions decided by the guardrail layer before any model call.
const (
	QueryActionBlock   = "block"   // refuse outright (advice, prediction, injection)
	QueryActionRewrite = "rewrite" // soften and proceed (panic, urgency)
	QueryActionAllow   = "allow"
)

// CopilotResponse is the answer returned to the client. When Blocked is true,
// Answer carries the refusal text and no model call was made.
type CopilotResponse struct {
	Answer     string            `json:"answer"`
	Blocked    bool              `json:"blocked"`
	Action     string            `json:"action"`
	Guardrails []GuardrailResult `json:"guardrails,omitempty"` // triggered checks only
	Sanitized  []string          `json:"sanitized,omitempty"`  // sanitizers applied to the output
}
