package validators

import (
	"errors"
	"strings"
)

var ErrTagUnsafe = errors.New("tags must not contain commas")

// ValidateTags rejects candidates the comma-joined storage serialization
// can't hold. Checked at the edge so bad input turns into a 400 instead of
// a write error deep in the stack
func ValidateTags(in []string) error {
	for _, t := range in {
		if strings.Contains(t, ",") {
			return ErrTagUnsafe
		}
	}

	return nil
}

// CleanTags trims every candidate and drops empty or whitespace-only
// entries. Order is preserved, duplicates within the input collapse to the
// first occurrence. Dedup is case-sensitive on purpose
func CleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}

// MergeTags unions candidates into existing with set semantics. Existing
// tags keep their position, new ones are appended in input order
func MergeTags(existing, candidates []string) []string {
	merged := append([]string{}, existing...)
	seen := make(map[string]struct{}, len(existing))

	for _, t := range existing {
		seen[t] = struct{}{}
	}

	for _, t := range CleanTags(candidates) {
		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		merged = append(merged, t)
	}

	return merged
}
