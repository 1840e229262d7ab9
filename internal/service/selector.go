package service

import (
	"sort"
	"strings"
)

// Source extensions and naming hints used to pick "representative" files
// out of the changed-path set. This is an intentionally crude relevance
// heuristic—substring matching, first-match-wins—not a static-analysis
// importance ranking.
var (
	coreExtensions   = []string{".py", ".js", ".ts", ".java", ".go"}
	priorityKeywords = []string{"main.", "app.", "index.", "agent.", "service."}
)

// SelectCorePaths picks at most maxCoreSnippets paths from the candidate
// set. A path qualifies when it has a source extension AND either contains
// a priority keyword (case-insensitive) or sits at the repository top level.
// Candidates are evaluated in sorted order so the same input set always
// yields the same selection.
func SelectCorePaths(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	var selected []string
	for _, p := range sorted {
		if len(selected) == maxCoreSnippets {
			break
		}
		if isCorePath(p) {
			selected = append(selected, p)
		}
	}
	return selected
}

func isCorePath(p string) bool {
	if !hasCoreExtension(p) {
		return false
	}
	lower := strings.ToLower(p)
	for _, kw := range priorityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return !strings.Contains(p, "/")
}

func hasCoreExtension(p string) bool {
	for _, ext := range coreExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
