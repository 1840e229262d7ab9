package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"popolo/internal/models"
	"popolo/internal/service"
	"popolo/internal/slack"
)

// SlackHandler wires the Slack webhook endpoints to the pipeline. Slack
// expects a response within 3 seconds, so both endpoints acknowledge
// immediately and push the real work into a background goroutine that
// reports back through the response_url.
type SlackHandler struct {
	gh       service.GitHubAPI
	pipeline service.PortfolioService
	timeout  time.Duration
}

// NewSlackHandler creates a SlackHandler. timeout bounds one background
// pipeline run.
func NewSlackHandler(gh service.GitHubAPI, pipeline service.PortfolioService, timeout time.Duration) *SlackHandler {
	return &SlackHandler{gh: gh, pipeline: pipeline, timeout: timeout}
}

// Register mounts POST /slack/command and POST /slack/interactive.
func (h *SlackHandler) Register(r fiber.Router) {
	r.Post("/slack/command", h.command)
	r.Post("/slack/interactive", h.interactive)
}

// command handles the slash command: acknowledge, then load the repository
// directory in the background and replace the message with the picker.
func (h *SlackHandler) command(c *fiber.Ctx) error {
	responseURL := c.FormValue("response_url")
	if responseURL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "response_url is required")
	}

	go h.loadRepoPicker(responseURL)

	return c.JSON(fiber.Map{
		"response_type": "ephemeral",
		"text":          "🔍 Loading repositories for your account and organizations. One moment...",
	})
}

// interactive handles block interactions. Only the repo-selection action is
// known; anything else is acknowledged with an empty body.
func (h *SlackHandler) interactive(c *fiber.Ctx) error {
	raw := c.FormValue("payload")
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "payload is required")
	}

	var payload models.InteractivePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload JSON")
	}
	if len(payload.Actions) == 0 {
		return c.SendString("")
	}

	action := payload.Actions[0]
	if action.ActionID != slack.RepoSelectActionID {
		return c.SendString("")
	}

	selected := make([]string, 0, len(action.SelectedOptions))
	for _, opt := range action.SelectedOptions {
		selected = append(selected, opt.Value)
	}

	go h.runPipeline(payload.ResponseURL, selected)

	return c.JSON(fiber.Map{
		"replace_original": true,
		"text":             fmt.Sprintf("📡 Extracting detailed data for %d projects...", len(selected)),
	})
}

func (h *SlackHandler) loadRepoPicker(responseURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	notifier := slack.NewNotifier(responseURL)
	repos, err := h.gh.ListUserRepos(ctx)
	if err != nil {
		log.Printf("[Slack Handler] repo listing failed: %v", err)
		if nerr := notifier.Notify(ctx, slack.ErrorText(err), true); nerr != nil {
			log.Printf("[Slack Handler] error notification dropped: %v", nerr)
		}
		return
	}

	if err := notifier.Post(ctx, slack.RepoSelectBlocks(repos)); err != nil {
		log.Printf("[Slack Handler] posting repo picker failed: %v", err)
	}
}

func (h *SlackHandler) runPipeline(responseURL string, selected []string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	report, err := h.pipeline.Run(ctx, selected, slack.NewNotifier(responseURL))
	if err != nil {
		log.Printf("[Slack Handler] pipeline run failed: %v", err)
		return
	}
	log.Printf("[Slack Handler] pipeline run for %s finished (%d repositories)", report.Login, len(report.Statuses))
}
