// Package roster normalizes the participant list submitted with a lunch order.
package roster

import "strings"

// Normalize trims whitespace from each entry, drops entries that become
// empty, and removes duplicates keeping the first occurrence. The relative
// order of surviving entries is preserved. Matching is case-sensitive:
// "alice" and "Alice" are different people as far as this service knows.
//
// Example:
//
//	Normalize([]string{" Alice ", "Bob", "Alice", ""})
//	// Returns: []string{"Alice", "Bob"}
func Normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, entry := range raw {
		trimmed := strings.TrimSpace(entry)
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
