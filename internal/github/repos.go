package github

import (
	"context"
	"fmt"
	"net/url"

	"popolo/internal/models"
)

// RepoPageSize caps the directory listing at one page of recently
// updated repositories.
const RepoPageSize = 30

// ListUserRepos returns every repository the token's identity can see as
// owner, collaborator, or organization member, most recently updated first,
// capped at RepoPageSize.
func (c *Client) ListUserRepos(ctx context.Context) ([]models.Repo, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("per_page", fmt.Sprint(RepoPageSize))
	q.Set("affiliation", "owner,collaborator,organization_member")

	var raw []struct {
		FullName string `json:"full_name"`
		Private  bool   `json:"private"`
	}
	if err := c.get(ctx, c.baseURL+"/user/repos?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	repos := make([]models.Repo, 0, len(raw))
	for _, r := range raw {
		repos = append(repos, models.Repo{FullName: r.FullName, Private: r.Private})
	}
	return repos, nil
}
