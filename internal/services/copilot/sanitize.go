package copilot

import (
	"regexp"
	"strings"
)

type rewriteRule struct {
	re          *regexp.Regexp
	replacement string
}

func rr(expr, replacement string) rewriteRule {
	return rewriteRule{re: regexp.MustCompile(`(?i)` + expr), replacement: replacement}
}

var adviceRewrites = []rewriteRule{
	rr(`\byou\s+should\s+(buy|sell|invest|exit)\b`, "you might consider"),
	rr(`\bi\s+recommend\s+(buying|selling|investing)\b`, "one approach could be"),
	rr(`\bi\s+advise\s+(you\s+to\s+)?`, "you could consider "),
	rr(`\bmy\s+advice\s+is\b`, "one perspective is"),
	rr(`\bbuy\s+this\b`, "consider this"),
	rr(`\bsell\s+this\b`, "review this"),
	rr(`\byou\s+must\s+(buy|sell|invest)\b`, "you might want to consider"),
}

var predictionRewrites = []rewriteRule{
	rr(`\bwill\s+(?:definitely|certainly)\s+(?:go\s+up|rise)\b`, "may potentially increase"),
	rr(`\bwill\s+(?:definitely|certainly)\s+(?:go\s+down|fall)\b`, "may potentially decrease"),
	rr(`\bwill\s+(?:go\s+up|rise|increase)\b`, "may fluctuate"),
	rr(`\bwill\s+(?:go\s+down|fall|decrease)\b`, "may fluctuate"),
	rr(`\bexpect(?:ed)?\s+to\s+reach\s+(\d+)\b`, "historically has been around ${1}"),
	rr(`\bshould\s+reach\s+(\d+)\b`, "has varied around ${1}"),
}

var overconfidenceRewrites = []rewriteRule{
	rr(`\bdefinitely\b`, "likely"),
	rr(`\bcertainly\b`, "probably"),
	rr(`\bguaranteed\b`, "expected"),
	rr(`\babsolutely\b`, "generally"),
	rr(`\bwithout\s+(?:a\s+)?doubt\b`, "in most cases"),
	rr(`\b100%`, "very likely"),
	rr(`\bno\s+risk\b`, "lower risk"),
	rr(`\bcan'?t\s+go\s+wrong\b`, "has historically performed well"),
	rr(`\bsure\s+thing\b`, "reasonable option"),
}

func applyRewrites(text string, rules []rewriteRule) string {
	for _, rule := range rules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// SanitizeOutput softens advice, prediction, and certainty language in a
// generated answer. Returns the cleaned text plus the names of the sanitizer
// passes that changed anything, in application order.
func SanitizeOutput(text string) (string, []string) {
	var applied []string

	passes := []struct {
		name  string
		rules []rewriteRule
	}{
		{"advice_language", adviceRewrites},
		{"prediction_language", predictionRewrites},
		{"overconfidence_language", overconfidenceRewrites},
	}

	for _, pass := range passes {
		cleaned := applyRewrites(text, pass.rules)
		if cleaned != text {
			applied = append(applied, pass.name)
			text = cleaned
		}
	}

	return text, applied
}

var injectionScrubs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bignore\s+(all\s+)?(previous|prior|above)\s+instructions?\b`),
	regexp.MustCompile(`(?i)\bdisregard\s+(your|the)\s+(instructions?|rules?|guidelines?)\b`),
	regexp.MustCompile(`(?i)\byou\s+are\s+now\s+(a|an)?\b`),
	regexp.MustCompile(`(?i)\bact\s+as\s+(a|an)?\b`),
	regexp.MustCompile(`(?i)\bpretend\s+(you('re|\s+are)\s+)?(allowed|able)?\b`),
	regexp.MustCompile("(?s)```.*?```"),
	regexp.MustCompile(`(?im)^\s*system\s*:.*$`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeInput scrubs prompt-manipulation phrasing from user input before it
// is embedded in a prompt. The residue may read awkwardly; the point is that
// the manipulation attempt never reaches the model intact.
func SanitizeInput(text string) string {
	for _, re := range injectionScrubs {
		text = re.ReplaceAllString(text, " ")
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
