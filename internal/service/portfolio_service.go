package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"popolo/internal/github"
	"popolo/internal/models"
	"popolo/internal/publisher"
)

// Notifier is the progress sink for user-visible status updates. Delivery
// is fire-and-forget: the pipeline logs but never fails on a notification
// error, and correctness never depends on delivery order. replace marks an
// update that logically supersedes the previous one.
type Notifier interface {
	Notify(ctx context.Context, text string, replace bool) error
}

// PortfolioStore persists the assembled portfolio document under a
// destination name. The pipeline does not care about the medium.
type PortfolioStore interface {
	Save(ctx context.Context, name, content string) error
}

// RepoStatus records the outcome for one selected repository.
type RepoStatus struct {
	Repo string
	Err  error // nil on success
}

// RunReport is the ephemeral result of one pipeline invocation.
type RunReport struct {
	Login    string
	Statuses []RepoStatus
	Document string // destination name, set when a portfolio was published
}

// PortfolioService drives the whole pipeline for a set of selected
// repositories.
type PortfolioService interface {
	Run(ctx context.Context, selected []string, notify Notifier) (*RunReport, error)
}

type portfolioService struct {
	gh          GitHubAPI
	collector   *Collector
	agent       Agent
	store       PortfolioStore
	destination string
}

// NewPortfolioService wires dependencies.
func NewPortfolioService(gh GitHubAPI, agent Agent, store PortfolioStore, destination string) PortfolioService {
	return &portfolioService{
		gh:          gh,
		collector:   NewCollector(gh),
		agent:       agent,
		store:       store,
		destination: destination,
	}
}

// Run processes each selected repository independently: one repository's
// failure is recorded and reported, never aborting the run. Run-fatal are
// only the conditions that would fail every remaining call the same way:
// the identity lookup failing, rate-limit exhaustion (we stop and report
// the reset time), and the token being rejected mid-run.
func (s *portfolioService) Run(ctx context.Context, selected []string, notify Notifier) (*RunReport, error) {
	login, err := s.gh.CurrentUserLogin(ctx)
	if err != nil {
		s.post(ctx, notify, "🚫 Could not resolve the GitHub account for this token. Check the token's `repo` scope.", true)
		return nil, err
	}

	report := &RunReport{Login: login}
	s.post(ctx, notify, fmt.Sprintf("🚀 Starting analysis of *%d* repositories.", len(selected)), false)

	var (
		analyses []string
		metas    []models.ProjectMeta
	)
	for _, repo := range selected {
		s.post(ctx, notify, fmt.Sprintf("🔍 Analyzing *%s*...", repo), false)

		analysis, meta, err := s.processRepo(ctx, repo, login)
		if err != nil {
			var rl *github.RateLimitedError
			if errors.As(err, &rl) {
				report.Statuses = append(report.Statuses, RepoStatus{Repo: repo, Err: err})
				s.post(ctx, notify, rateLimitText(rl), true)
				return report, err
			}
			// A token that stops authenticating mid-run fails every
			// remaining call the same way, so stop here too.
			var auth *github.AuthError
			if errors.As(err, &auth) {
				report.Statuses = append(report.Statuses, RepoStatus{Repo: repo, Err: err})
				s.post(ctx, notify, "🚫 GitHub rejected the token mid-run. Check the token's `repo` scope and expiry.", true)
				return report, err
			}
			report.Statuses = append(report.Statuses, RepoStatus{Repo: repo, Err: err})
			s.post(ctx, notify, fmt.Sprintf("⚠️ Error while analyzing %s: %v", repo, err), false)
			continue
		}

		report.Statuses = append(report.Statuses, RepoStatus{Repo: repo})
		analyses = append(analyses, analysis)
		metas = append(metas, meta)
		s.post(ctx, notify, fmt.Sprintf("✅ *%s* analyzed! (stack: `%s`)", repo, meta.Stack), false)
	}

	if len(analyses) == 0 {
		s.post(ctx, notify, "😕 Nothing to summarize: no selected repository produced a usable context.", false)
		return report, nil
	}

	overview, err := s.agent.SummarizeOverview(ctx, analyses)
	if err != nil {
		s.post(ctx, notify, fmt.Sprintf("❌ Error while assembling the portfolio: %v", err), false)
		return report, err
	}

	document := publisher.Assemble(overview, publisher.GalleryTable(metas), analyses)
	if err := s.store.Save(ctx, s.destination, document); err != nil {
		s.post(ctx, notify, fmt.Sprintf("❌ Error while saving the portfolio: %v", err), false)
		return report, err
	}

	report.Document = s.destination
	s.post(ctx, notify, fmt.Sprintf("🚀 *Your portfolio is ready!*\nCheck `%s`.", s.destination), false)
	return report, nil
}

// processRepo runs collection, preprocessing, and agent analysis for one
// repository. Any error is scoped to this repository unless it is a
// rate-limit exhaustion, which the caller promotes to run-fatal.
func (s *portfolioService) processRepo(ctx context.Context, repo, login string) (string, models.ProjectMeta, error) {
	ev, err := s.collector.Evidence(ctx, repo, login)
	if err != nil {
		return "", models.ProjectMeta{}, err
	}

	paths, err := s.collector.ChangedPaths(ctx, repo, login)
	if err != nil {
		return "", models.ProjectMeta{}, err
	}

	snippets, err := s.collector.CoreSnippets(ctx, repo, paths)
	if err != nil {
		return "", models.ProjectMeta{}, err
	}

	messages := make([]string, 0, len(ev.Commits))
	for _, c := range ev.Commits {
		messages = append(messages, c.Message)
	}
	contextBlock := BuildContext(repo, ev.Readme, FilterNoise(messages), snippets)

	analysis, err := s.agent.AnalyzeProject(ctx, repo, contextBlock)
	if err != nil {
		return "", models.ProjectMeta{}, err
	}

	meta, err := s.agent.ExtractMeta(ctx, analysis)
	if err != nil {
		return "", models.ProjectMeta{}, err
	}
	meta.Name = repo

	return analysis, meta, nil
}

func (s *portfolioService) post(ctx context.Context, notify Notifier, text string, replace bool) {
	if err := notify.Notify(ctx, text, replace); err != nil {
		log.Printf("[Portfolio Service] notification dropped: %v", err)
	}
}

func rateLimitText(rl *github.RateLimitedError) string {
	if rl.Reset.IsZero() {
		return "🚫 *API rate limit exceeded*: please try again later."
	}
	return fmt.Sprintf("🚫 *API rate limit exceeded*: please try again after %s.", rl.Reset.Format("15:04:05"))
}
