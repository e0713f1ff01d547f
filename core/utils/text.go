package utils

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the input and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming hyphens at both ends.
func Slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// Capitalize uppercases the first character and lowercases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// TitleCase capitalizes every space-separated word. The CRM stores display
// names in inconsistent casing, so the mirror normalizes them on every write.
func TitleCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CityName extracts the display name from a raw CRM city value. Values come
// as "City/Region"; only the first segment is kept, trimmed and capitalized.
func CityName(full string) string {
	first := strings.TrimSpace(strings.Split(full, "/")[0])
	return Capitalize(first)
}
