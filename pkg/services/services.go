// Package services implements the business rules on top of the repositories:
// input validation, enum checking, uniqueness checks, ownership resolution
// and the evidence attachment pipeline.
package services

import "strings"

// validEnum reports whether value is one of the allowed enum values.
func validEnum(value string, allowed []string) bool {
	for _, v := range allowed {
		if value == v {
			return true
		}
	}
	return false
}

// enumList formats allowed enum values for validation messages.
func enumList(allowed []string) string {
	return strings.Join(allowed, ", ")
}

// dedupeTags trims tags, drops blanks and removes duplicates while keeping
// first-seen order. Tag columns carry set semantics.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
