// Package policy holds the fixed corporate lunch policy: keyword rulesets,
// menu sanitization, and the rule-only risk classification used whenever the
// advisory service is unavailable.
//
// Every predicate is pure and order-independent over the menu. Rules are
// expressed as keyword lists consumed by a generic matcher so policy changes
// stay data edits, not logic edits.
package policy

import "strings"

// RiskLevel is the three-level ordinal severity gating the final decision.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Severity orders risk levels: low < medium < high.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// PorkOverConcentrationThreshold is the fraction of pork-family items above
// which a menu is considered exclusionary. Strictly greater-than.
const PorkOverConcentrationThreshold = 0.5

var (
	prohibitedSubstances = []string{
		"tobacco", "nicotine", "cigarette", "cigar", "vape", "hookah",
	}

	// Hard liquor only. Beer, wine, champagne, sparkling wine, lager and
	// ale are deliberately absent: they are allowed under company policy.
	restrictedAlcohol = []string{
		"vodka", "whiskey", "whisky", "rum", "gin", "tequila",
		"bourbon", "brandy", "liquor", "spirits", "absinthe", "moonshine",
	}

	majorAllergens = []string{
		"peanut", "shellfish", "shrimp", "prawn", "crab", "lobster",
		"oyster", "clam", "mussel", "scallop",
		"tree nut", "almond", "cashew", "walnut", "pecan", "pistachio",
		"hazelnut", "macadamia",
	}

	inclusivitySignals = []string{
		"vegetarian", "vegan", "salad", "veggie", "plant-based",
	}

	// PorkFamily is the restricted-diet-incompatible ingredient class
	// checked for over-concentration.
	PorkFamily = []string{
		"pork", "bacon", "ham", "sausage", "prosciutto", "chorizo",
	}
)

// IsProhibitedSubstance reports whether the item names a tobacco or nicotine
// product.
func IsProhibitedSubstance(item string) bool {
	return matchesAny(item, prohibitedSubstances)
}

// IsRestrictedAlcohol reports whether the item names hard liquor.
func IsRestrictedAlcohol(item string) bool {
	return matchesAny(item, restrictedAlcohol)
}

// IsMajorAllergen reports whether the item names a peanut, tree-nut or
// shellfish ingredient.
func IsMajorAllergen(item string) bool {
	return matchesAny(item, majorAllergens)
}

// HasInclusivitySignal reports whether any item in the menu signals a
// vegetarian-friendly option.
func HasInclusivitySignal(menu []string) bool {
	for _, item := range menu {
		if matchesAny(item, inclusivitySignals) {
			return true
		}
	}
	return false
}

// OverConcentrated reports whether the fraction of menu items matching any
// of the category keywords strictly exceeds threshold.
func OverConcentrated(menu []string, category []string, threshold float64) bool {
	if len(menu) == 0 {
		return false
	}
	matched := 0
	for _, item := range menu {
		if matchesAny(item, category) {
			matched++
		}
	}
	return float64(matched)/float64(len(menu)) > threshold
}

// InclusivityFindings runs the inclusivity checks over a (sanitized) menu
// and returns one reason per failed check. Empty menus produce no findings:
// there is nothing to be exclusionary about.
func InclusivityFindings(menu []string) []string {
	if len(menu) == 0 {
		return nil
	}

	var findings []string
	if !HasInclusivitySignal(menu) {
		findings = append(findings, "No vegetarian or vegan options are included")
	}
	if OverConcentrated(menu, PorkFamily, PorkOverConcentrationThreshold) {
		findings = append(findings, "More than half of the menu is pork-based, which excludes common dietary restrictions")
	}
	return findings
}

// Classify is the rule-only risk classification applied when no advisory
// opinion is available. It inspects the raw menu: sanitization happens
// separately and never weakens the classification.
func Classify(rawMenu []string, inclusivityIssues bool) RiskLevel {
	for _, item := range rawMenu {
		if IsProhibitedSubstance(item) || IsMajorAllergen(item) {
			return RiskHigh
		}
	}
	for _, item := range rawMenu {
		if IsRestrictedAlcohol(item) {
			return RiskMedium
		}
	}
	if inclusivityIssues {
		return RiskMedium
	}
	return RiskLow
}

// ContainsKeyword reports whether text contains the keyword,
// case-insensitively. Matches are anchored at word boundaries so "gin" does
// not flag "ginger ale" and "ham" does not flag "hamburger". A trailing
// plural "s" on the matched word is tolerated.
func ContainsKeyword(text, keyword string) bool {
	return containsWord(strings.ToLower(text), strings.ToLower(keyword))
}

func matchesAny(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if containsWord(lowered, kw) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		at := start + idx
		end := at + len(word)
		if boundaryBefore(text, at) && boundaryAfter(text, end) {
			return true
		}
		start = at + 1
	}
}

func boundaryBefore(text string, at int) bool {
	return at == 0 || !isWordChar(text[at-1])
}

func boundaryAfter(text string, end int) bool {
	if end == len(text) || !isWordChar(text[end]) {
		return true
	}
	// Tolerate a simple plural: "peanuts" matches "peanut".
	if text[end] == 's' && (end+1 == len(text) || !isWordChar(text[end+1])) {
		return true
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
