package policy

import "fmt"

// Sanitize strips non-compliant items from a menu. Checks run per item in a
// fixed order (prohibited substance, then restricted alcohol, then major
// allergen); the first matching check removes the item and records a single
// violation, even when later checks would also match.
//
// The returned menu is a subsequence of the input with original casing
// preserved, and every removed item has exactly one corresponding violation.
func Sanitize(menu []string) (sanitized []string, violations []string) {
	sanitized = make([]string, 0, len(menu))

	for _, item := range menu {
		switch {
		case IsProhibitedSubstance(item):
			violations = append(violations, fmt.Sprintf("Prohibited substance removed from menu: %s", item))
		case IsRestrictedAlcohol(item):
			violations = append(violations, fmt.Sprintf("Restricted alcohol removed from menu: %s", item))
		case IsMajorAllergen(item):
			violations = append(violations, fmt.Sprintf("Major allergen risk removed from menu: %s", item))
		default:
			sanitized = append(sanitized, item)
		}
	}

	return sanitized, violations
}
