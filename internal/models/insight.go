package models

// Severity is a closed enumeration with a defined total order, so sorting by
// severity is well-defined rather than string-comparison-dependent.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank returns the severity's position in the total order (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// Insight is a single finding from a rule engine. Regenerated on every call;
// never persisted or deduplicated across calls.
type Insight struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Metric      string   `json:"metric,omitempty"` // metric that triggered the rule
}
