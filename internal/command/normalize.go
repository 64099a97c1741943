package command

import "strings"

// Normalize lowercases and trims an utterance. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
