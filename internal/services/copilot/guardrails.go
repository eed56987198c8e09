// Package copilot screens queries with deterministic guardrails before any
// model call and sanitizes whatever comes back
package copilot

import (
	"regexp"

	"github.com/wealthlens/wealthlens/internal/models"
)

// guardrailPattern pairs a compiled expression with the reason reported when
// it matches. All patterns are compiled once at init and run case-insensitive.
type guardrailPattern struct {
	re     *regexp.Regexp
	reason string
}

func gp(expr, reason string) guardrailPattern {
	return guardrailPattern{re: regexp.MustCompile(`(?i)` + expr), reason: reason}
}

var buyAdvicePatterns = []guardrailPattern{
	gp(`\bshould\s+i\s+buy\b`, "Direct buy advice request"),
	gp(`\b(what|which)\s+(stock|share|fund|investment)\s+(should|to)\s+buy\b`, "Stock/fund recommendation request"),
	gp(`\brecommend\s+(a\s+)?(stock|share|fund|investment)\s+to\s+buy\b`, "Buy recommendation request"),
	gp(`\b(is|are)\s+.+\s+(a\s+)?good\s+buy\b`, "Buy evaluation request"),
	gp(`\bbest\s+(stock|share|fund)\s+to\s+buy\b`, "Best buy request"),
	gp(`\bgive\s+me\s+(a\s+)?buy\s+(tip|recommendation)\b`, "Buy tip request"),
	gp(`\bwhat\s+to\s+buy\b`, "General buy advice"),
	gp(`\bbuy\s+karna\s+chahiye\b`, "Hindi buy advice request"),
}

var sellAdvicePatterns = []guardrailPattern{
	gp(`\bshould\s+i\s+sell\b`, "Direct sell advice request"),
	gp(`\bshould\s+i\s+(exit|redeem|withdraw)\b`, "Exit advice request"),
	gp(`\b(is\s+it|time)\s+to\s+sell\b`, "Timing sell request"),
	gp(`\bbook\s+(my\s+)?profits?\b`, "Profit booking advice"),
	gp(`\bcut\s+(my\s+)?loss(es)?\b`, "Loss cutting advice"),
	gp(`\bsell\s+karna\s+chahiye\b`, "Hindi sell advice request"),
	gp(`\bexit\s+karna\s+chahiye\b`, "Hindi exit advice request"),
}

var timingAdvicePatterns = []guardrailPattern{
	gp(`\bwhen\s+should\s+i\s+(buy|sell|invest|exit)\b`, "Timing advice request"),
	gp(`\b(good|right|best)\s+time\s+to\s+(buy|sell|invest|enter|exit)\b`, "Market timing request"),
	gp(`\bwait\s+for\s+(a\s+)?(dip|correction|crash)\b`, "Dip timing request"),
	gp(`\bwait\s+and\s+watch\b`, "Wait advice request"),
	gp(`\btime\s+the\s+market\b`, "Market timing request"),
	gp(`\bbuy\s+the\s+dip\b`, "Dip buying advice"),
	gp(`\bentry\s+point\b`, "Entry timing request"),
	gp(`\bexit\s+point\b`, "Exit timing request"),
}

var guaranteePatterns = []guardrailPattern{
	gp(`\bguarantee(d)?\s+(return|profit|gain)s?\b`, "Guaranteed returns request"),
	gp(`\bgive\s+me\s+guaranteed\b`, "Guaranteed request"),
	gp(`\bassured\s+(return|profit|gain)s?\b`, "Assured returns request"),
	gp(`\bfixed\s+returns?\b`, "Fixed return request"),
	gp(`\brisk[- ]?free\s+(return|investment|option)\b`, "Risk-free request"),
	gp(`\b100\s*%\s*safe\b`, "100% safe request"),
	gp(`\bno\s+(risk|loss)\b`, "No risk request"),
	gp(`\bzero\s+risk\b`, "Zero risk request"),
	gp(`\bdouble\s+(my|your)\s+money\b`, "Double money request"),
}

var predictionPatterns = []guardrailPattern{
	gp(`\bwill\s+(the\s+)?(nifty|sensex|market|stock)\s+(go\s+)?(up|down|rise|fall|crash)\b`, "Market direction prediction"),
	gp(`\bwill\s+.+\s+go\s+up\b`, "Go up prediction"),
	gp(`\bwhere\s+will\s+.+\s+(be|go|reach)\b`, "Price target prediction"),
	gp(`\bpredict\s+(the\s+)?(market|stock|price)\b`, "Direct prediction request"),
	gp(`\bforecast\b`, "Forecast request"),
	gp(`\btarget\s+price\b`, "Target price request"),
	gp(`\bprice\s+target\b`, "Price target request"),
	gp(`\bwhat\s+will\s+.+\s+(be|reach)\s+in\b`, "Future value prediction"),
	gp(`\bhow\s+(much|high|low)\s+will\s+.+\s+(go|reach)\b`, "Price level prediction"),
	gp(`\bexpected\s+(return|price|growth)\b`, "Expected return request"),
}

var injectionPatterns = []guardrailPattern{
	gp(`\bignore\s+(all\s+)?(previous|prior|above)\s+instructions?\b`, "Instruction override attempt"),
	gp(`\bdisregard\s+(your|the)\s+(instructions?|rules?|guidelines?)\b`, "Instruction override attempt"),
	gp(`\byou\s+are\s+now\s+(a|an)\b`, "Role reassignment attempt"),
	gp(`\bact\s+as\s+(a|an)\s+(financial|stock|investment)\s+advisor\b`, "Advisor role injection"),
	gp(`\bpretend\s+(you('re|\s+are)\s+)?(allowed|able)\b`, "Permission bypass attempt"),
	gp(`\bsystem\s*(:|prompt)\b`, "System prompt reference"),
	gp(`\bjailbreak\b`, "Jailbreak attempt"),
	gp("```", "Embedded code block"),
}

// weightedPattern scores emotional-distress indicators; a single mild word
// does not trip the panic guardrail but a combination does.
type weightedPattern struct {
	guardrailPattern
	weight int
}

func wp(expr, reason string, weight int) weightedPattern {
	return weightedPattern{guardrailPattern: gp(expr, reason), weight: weight}
}

var panicPatterns = []weightedPattern{
	wp(`\bcrash(ing|ed)?\b`, "Crash language", 2),
	wp(`\bpanic(king)?\b`, "Panic language", 3),
	wp(`\blost\s+everything\b`, "Total loss fear", 3),
	wp(`\bwipe(d)?\s+out\b`, "Wipeout fear", 3),
	wp(`\bdisaster\b`, "Disaster language", 2),
	wp(`\bcatastroph(e|ic)\b`, "Catastrophe language", 2),
	wp(`\bscared\b`, "Fear expression", 2),
	wp(`\bterrified\b`, "Terror expression", 3),
	wp(`\bfreaking\s+out\b`, "Panic expression", 3),
	wp(`\bcan'?t\s+sleep\b`, "Anxiety indicator", 2),
	wp(`\bworried\s+sick\b`, "Severe worry", 2),
	wp(`\bhelp\s*!+`, "Urgent help request", 2),
	wp(`\bmarket\s+(is\s+)?(falling|tanking|bleeding)\b`, "Market fear", 2),
}

const panicScoreThreshold = 2

var urgencyPatterns = []guardrailPattern{
	gp(`\bimmediately\b`, "Immediate action request"),
	gp(`\bright\s+now\b`, "Right now urgency"),
	gp(`\basap\b`, "ASAP urgency"),
	gp(`\burgent(ly)?\b`, "Urgent language"),
	gp(`\bquick(ly)?\b`, "Quick action request"),
	gp(`\bhurry\b`, "Hurry language"),
	gp(`\bbefore\s+it'?s\s+too\s+late\b`, "Time pressure"),
	gp(`\blast\s+chance\b`, "Last chance urgency"),
	gp(`\bnow\s+or\s+never\b`, "Now or never pressure"),
	gp(`!{2,}`, "Multiple exclamation marks"),
}

var overconfidentOutputPatterns = []guardrailPattern{
	gp(`\bwill\s+definitely\b`, "Definite prediction"),
	gp(`\bwill\s+certainly\b`, "Certain prediction"),
	gp(`\bguaranteed\s+to\b`, "Guarantee language"),
	gp(`\bcertain\s+to\b`, "Certainty language"),
	gp(`\bwithout\s+(a\s+)?doubt\b`, "No doubt language"),
	gp(`\b100\s*%`, "100% certainty"),
	gp(`\bno\s+risk\b`, "No risk claim"),
	gp(`\bcan'?t\s+(go\s+)?wrong\b`, "Can't go wrong claim"),
	gp(`\bsure\s+thing\b`, "Sure thing language"),
	gp(`\babsolutely\s+(will|certain)\b`, "Absolute certainty"),
}

var predictionOutputPatterns = []guardrailPattern{
	gp(`\bwill\s+(go\s+)?(up|rise|increase|grow)\b`, "Upward prediction"),
	gp(`\bwill\s+(go\s+)?(down|fall|decrease|drop|crash)\b`, "Downward prediction"),
	gp(`\bexpect(ed)?\s+to\s+(reach|hit|cross)\b`, "Price expectation"),
	gp(`\bshould\s+(reach|hit|cross)\s+\d+\b`, "Price target"),
	gp(`\blikely\s+to\s+(reach|hit|go)\b`, "Likely prediction"),
	gp(`\bprobably\s+will\s+(rise|fall|go)\b`, "Probable prediction"),
}

// detect runs a pattern table and reports the first match.
func detect(text string, patterns []guardrailPattern, gtype models.GuardrailType, name string, severity models.Severity) models.GuardrailResult {
	for _, p := range patterns {
		if p.re.MatchString(text) {
			return models.GuardrailResult{
				Triggered:      true,
				Type:           gtype,
				Name:           name,
				Reason:         p.reason,
				MatchedPattern: p.re.String(),
				Severity:       severity,
			}
		}
	}
	return models.GuardrailResult{Type: gtype, Name: name}
}

// DetectBuyAdvice flags requests for buy recommendations. Unregistered
// entities cannot give buy advice, so these are refused rather than answered.
func DetectBuyAdvice(text string) models.GuardrailResult {
	return detect(text, buyAdvicePatterns, models.GuardrailAdvice, "buy_advice_detector", models.SeverityCritical)
}

// DetectSellAdvice flags requests for sell or exit recommendations.
func DetectSellAdvice(text string) models.GuardrailResult {
	return detect(text, sellAdvicePatterns, models.GuardrailAdvice, "sell_advice_detector", models.SeverityCritical)
}

// DetectTimingAdvice flags market-timing questions.
func DetectTimingAdvice(text string) models.GuardrailResult {
	return detect(text, timingAdvicePatterns, models.GuardrailAdvice, "timing_advice_detector", models.SeverityCritical)
}

// DetectGuaranteeRequest flags requests for guaranteed or risk-free returns.
func DetectGuaranteeRequest(text string) models.GuardrailResult {
	return detect(text, guaranteePatterns, models.GuardrailOverconfidence, "guarantee_request_detector", models.SeverityCritical)
}

// DetectPredictionRequest flags requests for market forecasts or price targets.
func DetectPredictionRequest(text string) models.GuardrailResult {
	return detect(text, predictionPatterns, models.GuardrailPrediction, "prediction_request_detector", models.SeverityCritical)
}

// DetectInjection flags prompt-manipulation attempts in user input.
func DetectInjection(text string) models.GuardrailResult {
	return detect(text, injectionPatterns, models.GuardrailInjection, "injection_detector", models.SeverityCritical)
}

// DetectPanic scores emotional-distress indicators. Triggers when the summed
// weight reaches the threshold; the first match is reported as primary.
func DetectPanic(text string) models.GuardrailResult {
	score := 0
	var primary *weightedPattern
	for i, p := range panicPatterns {
		if p.re.MatchString(text) {
			score += p.weight
			if primary == nil {
				primary = &panicPatterns[i]
			}
		}
	}

	result := models.GuardrailResult{Type: models.GuardrailPanic, Name: "panic_language_detector"}
	if score >= panicScoreThreshold && primary != nil {
		result.Triggered = true
		result.Reason = primary.reason
		result.MatchedPattern = primary.re.String()
		result.Severity = models.SeverityWarning
		if score >= 4 {
			result.Severity = models.SeverityCritical
		}
	}
	return result
}

// DetectUrgency flags rushed-decision language.
func DetectUrgency(text string) models.GuardrailResult {
	return detect(text, urgencyPatterns, models.GuardrailPanic, "urgency_language_detector", models.SeverityWarning)
}

// DetectOverconfidentOutput flags certainty language in model output.
func DetectOverconfidentOutput(text string) models.GuardrailResult {
	return detect(text, overconfidentOutputPatterns, models.GuardrailOverconfidence, "overconfidence_output_detector", models.SeverityWarning)
}

// DetectPredictionInOutput flags directional predictions in model output.
func DetectPredictionInOutput(text string) models.GuardrailResult {
	return detect(text, predictionOutputPatterns, models.GuardrailPrediction, "prediction_output_detector", models.SeverityCritical)
}

// preQueryDetectors run against user input before any model call, in this
// fixed order. Output ordering of triggered results follows this order.
var preQueryDetectors = []func(string) models.GuardrailResult{
	DetectInjection,
	DetectBuyAdvice,
	DetectSellAdvice,
	DetectTimingAdvice,
	DetectGuaranteeRequest,
	DetectPredictionRequest,
	DetectPanic,
	DetectUrgency,
}

// ScreenQuery runs every pre-query guardrail and decides the action: block
// when anything critical fired (advice, prediction, guarantee, injection,
// severe panic), rewrite when only distress or urgency fired, allow otherwise.
// Returns the triggered results only.
func ScreenQuery(text string) ([]models.GuardrailResult, string) {
	var triggered []models.GuardrailResult
	for _, detector := range preQueryDetectors {
		if result := detector(text); result.Triggered {
			triggered = append(triggered, result)
		}
	}

	if len(triggered) == 0 {
		return nil, models.QueryActionAllow
	}

	for _, r := range triggered {
		if r.Severity == models.SeverityCritical {
			return triggered, models.QueryActionBlock
		}
	}

	return triggered, models.QueryActionRewrite
}

// ScreenOutput runs the post-model guardrails over a generated answer.
func ScreenOutput(text string) []models.GuardrailResult {
	var triggered []models.GuardrailResult
	for _, detector := range []func(string) models.GuardrailResult{DetectOverconfidentOutput, DetectPredictionInOutput} {
		if result := detector(text); result.Triggered {
			triggered = append(triggered, result)
		}
	}
	return triggered
}
