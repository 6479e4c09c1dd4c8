package utils

import "strings"

// DedupeTargets removes duplicate SKUs/URLs from a scheduling target list.
// Entries are trimmed and compared case-insensitively; the first-seen casing
// is preserved and order is kept. Empty entries are dropped.
func DedupeTargets(targets []string) []string {
	seen := make(map[string]struct{}, len(targets))
	deduped := make([]string, 0, len(targets))
	for _, t := range targets {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, t)
	}
	return deduped
}

// SplitTargets splits a comma-separated target list as accepted at the CLI
// boundary and deduplicates it.
func SplitTargets(s string) []string {
	return DedupeTargets(strings.Split(s, ","))
}
