package service

import "regexp"

// noisePatterns match commit messages that carry no signal for a
// technical-capability analysis: merges, README-only edits, placeholder
// first commits, typo fixes, generic cleanup, and one-character messages.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^merge\b`),
	regexp.MustCompile(`(?i)^update readme(\.md)?$`),
	regexp.MustCompile(`(?i)^(initial|first) commit$`),
	regexp.MustCompile(`(?i)\btypo\b`),
	regexp.MustCompile(`(?i)^clean ?up$`),
	regexp.MustCompile(`^.$`),
}

// FilterNoise drops low-signal commit messages. The result is a subset of
// the input in the original relative order. Pure function, no I/O.
func FilterNoise(messages []string) []string {
	kept := make([]string, 0, len(messages))
	for _, msg := range messages {
		if !isNoise(msg) {
			kept = append(kept, msg)
		}
	}
	return kept
}

func isNoise(msg string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(msg) {
			return true
		}
	}
	return false
}
