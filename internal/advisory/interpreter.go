package advisory

import (
	"strings"

	"lunchgate/internal/policy"
)

// Classification keyword precedence: the first group with a hit wins.
var (
	highRiskSignals = []string{
		"tobacco", "hard liquor", "peanut", "shellfish", "high risk", "dangerous",
	}
	mediumRiskSignals = []string{
		"medium risk", "moderate", "inclusivity", "dietary restriction", "allergen",
	}
)

// reasonTopic maps a keyword family in the advisory text to a fixed
// human-readable reason. Topics are additive and independent of the risk
// classification.
type reasonTopic struct {
	keywords []string
	reason   string
}

var reasonTopics = []reasonTopic{
	{
		keywords: []string{"tobacco", "nicotine", "cigarette", "cigar"},
		reason:   "Advisory flagged tobacco or nicotine products",
	},
	{
		keywords: []string{"hard liquor", "vodka", "whiskey", "whisky", "rum", "gin", "tequila", "bourbon", "liquor", "spirits"},
		reason:   "Advisory flagged hard liquor",
	},
	{
		keywords: []string{"peanut", "tree nut", "almond", "cashew", "walnut"},
		reason:   "Advisory flagged peanut or tree nut allergens",
	},
	{
		keywords: []string{"shellfish", "shrimp", "crab", "lobster"},
		reason:   "Advisory flagged shellfish allergens",
	},
	{
		keywords: []string{"dairy", "lactose"},
		reason:   "Advisory flagged dairy or lactose content",
	},
	{
		keywords: []string{"soy"},
		reason:   "Advisory flagged soy content",
	},
	{
		keywords: []string{"egg"},
		reason:   "Advisory flagged egg content",
	},
	{
		keywords: []string{"only pork", "all pork", "pork-only", "mostly pork", "pork heavy", "pork-heavy"},
		reason:   "Advisory flagged a pork-heavy menu that excludes dietary restrictions",
	},
}

// Interpret maps a free-text advisory response to a risk classification and
// a set of reason strings. Classification is first-match-wins over the
// signal groups; reason extraction is independent and additive. The advisory
// output is pattern-matched, never semantically parsed.
func Interpret(text string) (policy.RiskLevel, []string) {
	risk := classify(text)

	var reasons []string
	for _, topic := range reasonTopics {
		if containsAny(text, topic.keywords) {
			reasons = append(reasons, topic.reason)
		}
	}

	// Gluten is only a finding when the response does not already promise
	// gluten-free options.
	if policy.ContainsKeyword(text, "gluten") && !policy.ContainsKeyword(text, "gluten-free") {
		reasons = append(reasons, "Advisory flagged gluten content")
	}

	// Silence about vegetarian options is itself a signal.
	if !policy.ContainsKeyword(text, "vegetarian") && !policy.ContainsKeyword(text, "vegan") {
		reasons = append(reasons, "Advisory did not identify any vegetarian options")
	}

	return risk, dedupe(reasons)
}

func classify(text string) policy.RiskLevel {
	if containsAny(text, highRiskSignals) {
		return policy.RiskHigh
	}
	if containsAny(text, mediumRiskSignals) {
		return policy.RiskMedium
	}
	return policy.RiskLow
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if policy.ContainsKeyword(text, kw) {
			return true
		}
	}
	return false
}

func dedupe(reasons []string) []string {
	seen := make(map[string]struct{}, len(reasons))
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
