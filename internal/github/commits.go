package github

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"popolo/internal/models"
)

// CommitQuery parameterizes a commit-log fetch. The two pipeline call sites
// use different shapes (a single author-filtered page of 20 versus up to
// three unfiltered pages of 100), so page size and page count are options,
// not constants baked into the client.
type CommitQuery struct {
	Author   string // empty means no author filter
	PerPage  int    // ≤100 per the API
	MaxPages int    // pagination stops early when a short page comes back
}

// commitItem mirrors the wire shape of one entry of GET /repos/{repo}/commits.
type commitItem struct {
	SHA    string `json:"sha"`
	URL    string `json:"url"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// ListCommits returns the repository's commit log, newest first, bounded by
// q.MaxPages pages of q.PerPage. Repositories with fewer commits simply
// yield everything they have.
func (c *Client) ListCommits(ctx context.Context, fullName string, q CommitQuery) ([]models.Commit, error) {
	perPage := q.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	maxPages := q.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	var commits []models.Commit
	for page := 1; page <= maxPages; page++ {
		vals := url.Values{}
		vals.Set("per_page", fmt.Sprint(perPage))
		vals.Set("page", fmt.Sprint(page))
		if q.Author != "" {
			vals.Set("author", q.Author)
		}

		var items []commitItem
		u := fmt.Sprintf("%s/repos/%s/commits?%s", c.baseURL, fullName, vals.Encode())
		if err := c.get(ctx, u, &items); err != nil {
			return nil, err
		}

		for _, it := range items {
			commits = append(commits, models.Commit{
				SHA:        it.SHA,
				Message:    it.Commit.Message,
				AuthoredAt: it.Commit.Author.Date,
				URL:        it.URL,
			})
		}
		if len(items) < perPage {
			break
		}
	}
	return commits, nil
}

// CommitFiles fetches the per-commit detail resource and returns the paths
// touched by that commit. This is the fan-out call of the changed-path
// collector—one request per commit—so callers bound how often they invoke it.
func (c *Client) CommitFiles(ctx context.Context, fullName, sha string) ([]string, error) {
	var detail struct {
		Files []struct {
			Filename string `json:"filename"`
		} `json:"files"`
	}
	u := fmt.Sprintf("%s/repos/%s/commits/%s", c.baseURL, fullName, sha)
	if err := c.get(ctx, u, &detail); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(detail.Files))
	for _, f := range detail.Files {
		paths = append(paths, f.Filename)
	}
	return paths, nil
}
