package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports process liveness and, when configured, portfolio
// store connectivity.
type HealthHandler struct {
	db *mongo.Client // nil when the file store is in use
}

func NewHealthHandler(db *mongo.Client) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"store":  h.checkDB(c.UserContext()),
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) string {
	if h.db == nil {
		return "not_configured"
	}
	if err := h.db.Ping(ctx, nil); err != nil {
		return "error"
	}
	return "connected"
}
