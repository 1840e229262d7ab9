package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"popolo/internal/models"
)

// Section labels of the assembled context block. These are an interface
// contract: the agent prompts reference them, so renaming a label changes
// prompt behavior. Bump contextFormatVersion when touching any of them.
const (
	contextFormatVersion = "v1"

	projectHeaderPrefix = "### Project: "
	readmeHeader        = "#### README"
	commitsHeader       = "#### Commit History"
	coreCodeHeader      = "#### Core Code"
	snippetLabelFormat  = "--- File: %s ---"
)

// Truncate caps s at max characters, counted as runes so the cut never
// splits a multibyte sequence. Truncating an already-short string returns
// it unchanged, so applying the cap twice is a no-op.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// BuildContext combines a repository's README excerpt, filtered commit
// messages, and core-code snippets into the single bounded text block the
// agent consumes. All three sections are always present; empty inputs
// render as empty section bodies under their headers, never as missing
// headers. Caps applied here: README maxReadmeChars, commits
// maxContextCommits, snippet content maxSnippetChars.
func BuildContext(fullName, readme string, commits []string, snippets []models.Snippet) string {
	if len(commits) > maxContextCommits {
		commits = commits[:maxContextCommits]
	}

	var b strings.Builder
	b.WriteString(projectHeaderPrefix + fullName + "\n\n")

	b.WriteString(readmeHeader + "\n")
	b.WriteString(Truncate(readme, maxReadmeChars))
	b.WriteString("\n\n")

	b.WriteString(commitsHeader + "\n")
	for _, msg := range commits {
		b.WriteString("- " + msg + "\n")
	}
	b.WriteString("\n")

	b.WriteString(coreCodeHeader + "\n")
	for i, sn := range snippets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, snippetLabelFormat+"\n", sn.Path)
		b.WriteString(Truncate(sn.Content, maxSnippetChars))
		b.WriteString("\n")
	}

	return b.String()
}
