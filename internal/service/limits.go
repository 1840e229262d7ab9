package service

// Caps on the evidence fed to the agent. Raw repository volume is
// unbounded; everything past these caps is dropped, so one context block is
// never larger than the sum of its component caps.
const (
	// contextCommitsPerPage / contextCommitPages shape the author-filtered
	// fetch that feeds the commit-history section.
	contextCommitsPerPage = 20
	contextCommitPages    = 1

	// historyPerPage / historyMaxPages shape the unfiltered full-history
	// fetch used when no author filter applies.
	historyPerPage  = 100
	historyMaxPages = 3

	// changedPathWindow bounds the N+1 fan-out of the changed-path
	// collector: one detail request per commit, never more than this many.
	changedPathWindow = 30

	// detailConcurrency limits how many per-commit detail fetches run at once.
	detailConcurrency = 5

	maxContextCommits = 50   // commit bullets per context
	maxReadmeChars    = 2000 // README excerpt cap
	maxSnippetChars   = 1500 // per selected source file
	maxCoreSnippets   = 2    // selected files per repository
)
