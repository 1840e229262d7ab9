package service

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"popolo/internal/models"
)

// OpenAIAgent implements Agent against any OpenAI-compatible chat endpoint.
type OpenAIAgent struct {
	client *openai.Client
	model  string
}

// NewOpenAIAgent builds an agent for the given endpoint. baseURL may point
// at api.openai.com or any compatible server.
func NewOpenAIAgent(baseURL, apiKey, model string) *OpenAIAgent {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &OpenAIAgent{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (a *OpenAIAgent) AnalyzeProject(ctx context.Context, projectName, contextBlock string) (string, error) {
	return a.chat(ctx, analysisSystemPrompt, analysisUserPrompt(projectName, contextBlock))
}

func (a *OpenAIAgent) ExtractMeta(ctx context.Context, analysis string) (models.ProjectMeta, error) {
	raw, err := a.chat(ctx, metaSystemPrompt, analysis)
	if err != nil {
		return models.ProjectMeta{}, err
	}
	return parseMeta(raw)
}

func (a *OpenAIAgent) SummarizeOverview(ctx context.Context, analyses []string) (string, error) {
	return a.chat(ctx, overviewSystemPrompt, overviewUserPrompt(analyses))
}

func (a *OpenAIAgent) chat(ctx context.Context, system, user string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// No ResponseFormat — not all compatible servers support
		// json_object mode; the meta prompt asks for pure JSON instead.
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("LLM call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
