package slack

import (
	"errors"
	"fmt"

	"popolo/internal/github"
	"popolo/internal/models"
)

// Slack caps static-select options at 100; the picker keeps the menu
// shorter than that: 25 options, at most 5 selections.
const (
	maxSelectOptions   = 25
	maxSelectedRepos   = 5
	RepoSelectActionID = "repo_selection_action"
)

// RepoSelectBlocks builds the replace-original message that offers the
// user's repositories in a multi-select menu.
func RepoSelectBlocks(repos []models.Repo) map[string]any {
	options := make([]map[string]any, 0, len(repos))
	for _, r := range repos {
		if len(options) == maxSelectOptions {
			break
		}
		visibility := "Public"
		if r.Private {
			visibility = "Private"
		}
		options = append(options, map[string]any{
			"text": map[string]any{
				"type": "plain_text",
				"text": fmt.Sprintf("%s (%s)", r.FullName, visibility),
			},
			"value": r.FullName,
		})
	}

	return map[string]any{
		"replace_original": true,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": "📂 Pick the projects *POPOLO* should analyze (up to 5).",
				},
			},
			{
				"type":     "section",
				"block_id": "repo_select_block",
				"text": map[string]any{
					"type": "plain_text",
					"text": "Repository list",
				},
				"accessory": map[string]any{
					"type":               "multi_static_select",
					"action_id":          RepoSelectActionID,
					"options":            options,
					"max_selected_items": maxSelectedRepos,
				},
			},
		},
	}
}

// ErrorText maps a GitHub client error to the user-facing message posted in
// place of the repo picker.
func ErrorText(err error) string {
	var (
		auth *github.AuthError
		rl   *github.RateLimitedError
		nf   *github.NotFoundError
	)
	switch {
	case errors.As(err, &rl):
		if rl.Reset.IsZero() {
			return "🚫 *API rate limit exceeded*: please try again later."
		}
		return fmt.Sprintf("🚫 *API rate limit exceeded*: please try again after %s.", rl.Reset.Format("15:04:05"))
	case errors.As(err, &auth):
		return "🚫 *Permission denied*: check the token's `repo` scope."
	case errors.As(err, &nf):
		return "🚫 *Not found*: the repository does not exist or is not accessible."
	default:
		return fmt.Sprintf("🚫 *GitHub API error*: %v", err)
	}
}
