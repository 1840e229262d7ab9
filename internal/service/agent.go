package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"popolo/internal/models"
)

// Agent abstracts the LLM behind the pipeline. Implementations live in
// vertex_agent.go and openai_agent.go; tests use NewDummyAgent.
type Agent interface {
	// AnalyzeProject turns one repository context block into a portfolio
	// section for that project.
	AnalyzeProject(ctx context.Context, projectName, contextBlock string) (string, error)
	// ExtractMeta pulls the gallery-table row (stack, summary) out of a
	// finished project analysis.
	ExtractMeta(ctx context.Context, analysis string) (models.ProjectMeta, error)
	// SummarizeOverview writes the consolidated technical overview from all
	// per-project analyses.
	SummarizeOverview(ctx context.Context, analyses []string) (string, error)
}

// Prompts shared by both agent implementations. The user messages embed the
// context block built in context.go, so its section labels are part of the
// prompt surface.
const (
	analysisSystemPrompt = `You are an expert agent that analyzes a developer's technical capabilities and documents them. Base every claim on the provided data.`

	overviewSystemPrompt = `You are a senior technical writer crafting a portfolio that catches a recruiter's eye. Using the provided per-project analyses, write the developer's "Technical Overview". Infer core competencies quantitatively from the data.`

	metaSystemPrompt = `Extract project metadata from the analysis below. Return ONLY a JSON object with two string fields: "stack" (comma-separated main technologies) and "summary" (one sentence). No markdown, no code fences.`
)

func analysisUserPrompt(projectName, contextBlock string) string {
	return fmt.Sprintf("Analyze the data below and complete the '%s' section:\n\n%s", projectName, contextBlock)
}

func overviewUserPrompt(analyses []string) string {
	return fmt.Sprintf(
		"These are the individual repository analyses:\n\n%s\n\n---\nWrite the portfolio's 'Technical Overview' section in markdown, covering the main technology stack and core competencies.",
		strings.Join(analyses, "\n\n"),
	)
}

// parseMeta decodes the {stack, summary} JSON an agent returns, tolerating
// the markdown code fences some models wrap around JSON output.
func parseMeta(raw string) (models.ProjectMeta, error) {
	cleaned := stripCodeFences(raw)
	var meta models.ProjectMeta
	if err := json.Unmarshal([]byte(cleaned), &meta); err != nil {
		return models.ProjectMeta{}, fmt.Errorf("parsing meta response: %w\nraw: %s", err, raw)
	}
	return meta, nil
}

// stripCodeFences removes a surrounding ```json ... ``` fence if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// ---- Test double ------------------------------------------------------------

type dummyAgent struct{}

// NewDummyAgent returns an Agent that fabricates deterministic output.
// Useful for wiring tests and local runs without LLM credentials.
func NewDummyAgent() Agent {
	return dummyAgent{}
}

func (dummyAgent) AnalyzeProject(_ context.Context, projectName, _ string) (string, error) {
	return "## " + projectName + "\n\n<placeholder analysis>", nil
}

func (dummyAgent) ExtractMeta(_ context.Context, _ string) (models.ProjectMeta, error) {
	return models.ProjectMeta{Stack: "N/A", Summary: "N/A"}, nil
}

func (dummyAgent) SummarizeOverview(_ context.Context, _ []string) (string, error) {
	return "<placeholder overview>", nil
}
