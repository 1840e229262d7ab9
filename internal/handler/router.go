package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"popolo/internal/service"
)

// RegisterRoutes mounts every webhook endpoint on the app.
func RegisterRoutes(app *fiber.App,
	gh service.GitHubAPI,
	pipeline service.PortfolioService,
	pipelineTimeout time.Duration,
) {
	NewSlackHandler(gh, pipeline, pipelineTimeout).Register(app)
}
