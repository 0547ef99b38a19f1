package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ClientCounter reports connected websocket clients
type ClientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	clients ClientCounter
	started time.Time
}

func NewHealthHandler(clients ClientCounter) *HealthHandler {
	return &HealthHandler{clients: clients, started: time.Now()}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"ws_clients": h.clients.ClientCount(),
	})
}
