package service

import (
	"context"
	"fmt"
	"sync"

	"popolo/internal/github"
	"popolo/internal/models"
)

// fakeGitHub implements GitHubAPI with per-method function fields. Methods
// without a configured function fail loudly so a test never silently
// exercises an unexpected call path.
type fakeGitHub struct {
	loginFn       func(ctx context.Context) (string, error)
	listReposFn   func(ctx context.Context) ([]models.Repo, error)
	listCommitsFn func(ctx context.Context, fullName string, q github.CommitQuery) ([]models.Commit, error)
	commitFilesFn func(ctx context.Context, fullName, sha string) ([]string, error)
	readmeFn      func(ctx context.Context, fullName string) (string, error)
	contentFn     func(ctx context.Context, fullName, path string) (string, error)
}

func (f *fakeGitHub) CurrentUserLogin(ctx context.Context) (string, error) {
	if f.loginFn == nil {
		return "", fmt.Errorf("unexpected CurrentUserLogin call")
	}
	return f.loginFn(ctx)
}

func (f *fakeGitHub) ListUserRepos(ctx context.Context) ([]models.Repo, error) {
	if f.listReposFn == nil {
		return nil, fmt.Errorf("unexpected ListUserRepos call")
	}
	return f.listReposFn(ctx)
}

func (f *fakeGitHub) ListCommits(ctx context.Context, fullName string, q github.CommitQuery) ([]models.Commit, error) {
	if f.listCommitsFn == nil {
		return nil, fmt.Errorf("unexpected ListCommits call for %s", fullName)
	}
	return f.listCommitsFn(ctx, fullName, q)
}

func (f *fakeGitHub) CommitFiles(ctx context.Context, fullName, sha string) ([]string, error) {
	if f.commitFilesFn == nil {
		return nil, fmt.Errorf("unexpected CommitFiles call for %s", fullName)
	}
	return f.commitFilesFn(ctx, fullName, sha)
}

func (f *fakeGitHub) GetReadme(ctx context.Context, fullName string) (string, error) {
	if f.readmeFn == nil {
		return "", fmt.Errorf("unexpected GetReadme call for %s", fullName)
	}
	return f.readmeFn(ctx, fullName)
}

func (f *fakeGitHub) GetContent(ctx context.Context, fullName, path string) (string, error) {
	if f.contentFn == nil {
		return "", fmt.Errorf("unexpected GetContent call for %s", fullName)
	}
	return f.contentFn(ctx, fullName, path)
}

// recordingNotifier collects every update the pipeline posts.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, text string, _ bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// memoryStore keeps saved portfolios in a map.
type memoryStore struct {
	mu    sync.Mutex
	saved map[string]string
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saved: make(map[string]string)}
}

func (s *memoryStore) Save(_ context.Context, name, content string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[name] = content
	return nil
}

// scriptedAgent is an Agent whose outputs are derived from its inputs, so
// assertions can trace what the pipeline fed it.
type scriptedAgent struct {
	analyzeErr error
	metaErr    error
	contexts   sync.Map // projectName -> contextBlock
}

func (a *scriptedAgent) AnalyzeProject(_ context.Context, projectName, contextBlock string) (string, error) {
	if a.analyzeErr != nil {
		return "", a.analyzeErr
	}
	a.contexts.Store(projectName, contextBlock)
	return "analysis of " + projectName, nil
}

func (a *scriptedAgent) ExtractMeta(_ context.Context, analysis string) (models.ProjectMeta, error) {
	if a.metaErr != nil {
		return models.ProjectMeta{}, a.metaErr
	}
	return models.ProjectMeta{Stack: "Go", Summary: "summary of " + analysis}, nil
}

func (a *scriptedAgent) SummarizeOverview(_ context.Context, analyses []string) (string, error) {
	return fmt.Sprintf("overview of %d projects", len(analyses)), nil
}
