package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	whitespaceRegex    = regexp.MustCompile(`\s+`)
	nonTokenCharsRegex = regexp.MustCompile(`[^a-z0-9]`)
)

// NormalizeToken converts an option name or value into its canonical slug
// token: lowercase, no whitespace, only [a-z0-9]. "Pro Usage" -> "prousage".
func NormalizeToken(raw string) string {
	if raw == "" {
		return ""
	}
	token := strings.ToLower(raw)
	token = whitespaceRegex.ReplaceAllString(token, "")
	return nonTokenCharsRegex.ReplaceAllString(token, "")
}
