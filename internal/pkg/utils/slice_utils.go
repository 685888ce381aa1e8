package utils

import "strings"

// UniqueStrings returns items without duplicates, keeping the first occurrence.
// Comparison is case-insensitive: bech32 addresses are case-insensitive.
func UniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
