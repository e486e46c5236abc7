package utils

import "regexp"

// injectionPatterns flag the usual prompt-injection and payload attempts in
// free-text chat messages before they reach the LLM.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore previous instructions`),
	regexp.MustCompile(`(?i)disregard all`),
	regexp.MustCompile(`(?i)system prompt`),
	regexp.MustCompile(`(?i)<script>`),
	regexp.MustCompile(`(?i)DROP TABLE`),
	regexp.MustCompile(`(?i)';\s*DELETE\s+FROM`),
}

// IsPromptSafe reports whether a chat message is free of known injection
// patterns.
func IsPromptSafe(text string) bool {
	for _, p := range injectionPatterns {
		if p.MatchString(text) {
			return false
		}
	}
	return true
}
