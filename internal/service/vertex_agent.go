package service

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"popolo/internal/models"
)

// VertexAgent implements Agent on Google's Vertex AI Gemini models.
type VertexAgent struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertexAgent creates a Vertex AI backed agent for the given project and
// location. Credentials come from GOOGLE_APPLICATION_CREDENTIALS when set,
// otherwise application default credentials.
func NewVertexAgent(ctx context.Context, projectID, location, modelName string) (*VertexAgent, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &VertexAgent{client: client, model: model}, nil
}

func (a *VertexAgent) AnalyzeProject(ctx context.Context, projectName, contextBlock string) (string, error) {
	return a.generate(ctx, analysisSystemPrompt, analysisUserPrompt(projectName, contextBlock))
}

func (a *VertexAgent) ExtractMeta(ctx context.Context, analysis string) (models.ProjectMeta, error) {
	raw, err := a.generate(ctx, metaSystemPrompt, analysis)
	if err != nil {
		return models.ProjectMeta{}, err
	}
	return parseMeta(raw)
}

func (a *VertexAgent) SummarizeOverview(ctx context.Context, analyses []string) (string, error) {
	return a.generate(ctx, overviewSystemPrompt, overviewUserPrompt(analyses))
}

func (a *VertexAgent) generate(ctx context.Context, system, user string) (string, error) {
	// One agent serves concurrent pipeline runs, so the shared model is
	// never mutated; the system instruction goes on a per-call copy.
	m := *a.model
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type")
	}
	return string(text), nil
}

// Close closes the underlying Vertex AI client.
func (a *VertexAgent) Close() error {
	return a.client.Close()
}
