package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"popolo/internal/github"
	"popolo/internal/models"
)

// GitHubAPI is the slice of the GitHub client the pipeline consumes.
// Declared here so tests can substitute a fake.
type GitHubAPI interface {
	CurrentUserLogin(ctx context.Context) (string, error)
	ListUserRepos(ctx context.Context) ([]models.Repo, error)
	ListCommits(ctx context.Context, fullName string, q github.CommitQuery) ([]models.Commit, error)
	CommitFiles(ctx context.Context, fullName, sha string) ([]string, error)
	GetReadme(ctx context.Context, fullName string) (string, error)
	GetContent(ctx context.Context, fullName, path string) (string, error)
}

// Evidence is the raw per-repository material before preprocessing: the
// user's commit log page and the README text (empty when absent).
type Evidence struct {
	Commits []models.Commit
	Readme  string
}

// Collector gathers one repository's evidence from GitHub.
type Collector struct {
	gh GitHubAPI
}

func NewCollector(gh GitHubAPI) *Collector {
	return &Collector{gh: gh}
}

// Evidence fetches the author-filtered commit page and the README. The two
// requests have no data dependency, so they run concurrently and join. An
// upstream failure on the README alone degrades it to empty; the commit
// log is the repository's primary evidence and its errors propagate.
func (c *Collector) Evidence(ctx context.Context, fullName, login string) (Evidence, error) {
	var ev Evidence

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		commits, err := c.gh.ListCommits(gCtx, fullName, github.CommitQuery{
			Author:   login,
			PerPage:  contextCommitsPerPage,
			MaxPages: contextCommitPages,
		})
		if err != nil {
			return err
		}
		ev.Commits = commits
		return nil
	})
	g.Go(func() error {
		readme, err := c.gh.GetReadme(gCtx, fullName)
		if err != nil {
			var up *github.UpstreamError
			if errors.As(err, &up) {
				log.Printf("[Collector] %s: README unavailable, continuing without it: %v", fullName, err)
				return nil
			}
			return err
		}
		ev.Readme = readme
		return nil
	})

	if err := g.Wait(); err != nil {
		return Evidence{}, err
	}
	return ev, nil
}

// FullHistory fetches the unfiltered commit log, bounded to
// historyMaxPages pages of historyPerPage.
func (c *Collector) FullHistory(ctx context.Context, fullName string) ([]models.Commit, error) {
	return c.gh.ListCommits(ctx, fullName, github.CommitQuery{
		PerPage:  historyPerPage,
		MaxPages: historyMaxPages,
	})
}

// ChangedPaths returns the deduplicated set of file paths touched by the
// user's recent commits, sorted for deterministic downstream selection.
//
// Each commit needs its own detail request on top of the commit list (the
// N+1 fan-out), so the window is fixed at changedPathWindow commits and the
// fetches run under a concurrency limit. A failed detail fetch drops that
// one commit's paths; only rate-limit exhaustion stops the collection.
func (c *Collector) ChangedPaths(ctx context.Context, fullName, login string) ([]string, error) {
	commits, err := c.gh.ListCommits(ctx, fullName, github.CommitQuery{
		Author:   login,
		PerPage:  changedPathWindow,
		MaxPages: 1,
	})
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		set = make(map[string]struct{})
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)

	for _, commit := range commits {
		g.Go(func() error {
			paths, err := c.gh.CommitFiles(gCtx, fullName, commit.SHA)
			if err != nil {
				var rl *github.RateLimitedError
				if errors.As(err, &rl) {
					return err
				}
				log.Printf("[Collector] %s: skipping commit %s detail: %v", fullName, commit.SHA, err)
				return nil
			}
			mu.Lock()
			for _, p := range paths {
				set[p] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// CoreSnippets selects representative paths and fetches their truncated
// contents. Files that resolve to empty content (deleted since the commit,
// or undecodable) are dropped.
func (c *Collector) CoreSnippets(ctx context.Context, fullName string, paths []string) ([]models.Snippet, error) {
	var snippets []models.Snippet
	for _, p := range SelectCorePaths(paths) {
		content, err := c.gh.GetContent(ctx, fullName, p)
		if err != nil {
			return nil, err
		}
		if content == "" {
			continue
		}
		snippets = append(snippets, models.Snippet{
			Path:    p,
			Content: Truncate(content, maxSnippetChars),
		})
	}
	return snippets, nil
}
