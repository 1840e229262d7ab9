package models

import "time"

// Repo identifies one GitHub repository the authenticated user can access.
type Repo struct {
	FullName string `json:"full_name"` // "owner/name"
	Private  bool   `json:"private"`
}

// Commit captures the minimal fields we care about from GitHub's REST API.
// URL points at the per-commit detail resource, which is where the list of
// changed files lives.
type Commit struct {
	SHA        string    `json:"sha"`
	Message    string    `json:"message"`
	AuthoredAt time.Time `json:"authored_at"`
	URL        string    `json:"url"`
}

// Snippet is one selected source file, already truncated to the per-file cap.
type Snippet struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ProjectMeta is the gallery-table row the agent extracts from an analysis.
type ProjectMeta struct {
	Name    string `json:"name"`
	Stack   string `json:"stack"`
	Summary string `json:"summary"`
}

// Portfolio is the assembled document persisted by the portfolio store.
type Portfolio struct {
	ID        string    `bson:"_id,omitempty" json:"id"` // destination name, e.g. "PORTFOLIO.md"
	Content   string    `bson:"content"       json:"content"`
	CreatedAt time.Time `bson:"created_at"    json:"created_at"`
}
