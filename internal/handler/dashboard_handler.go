package handler

import (
	"strconv"

	"go-inventory-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultRecentLimit = 5

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// queryPositiveInt falls back when the parameter is missing, malformed or not positive
func queryPositiveInt(c *fiber.Ctx, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days := queryPositiveInt(c, "days", service.DefaultMovementDays)

	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) GetTopStockOut(c *fiber.Ctx) error {
	top, err := h.service.GetTopStockOut(c.UserContext(), queryPositiveInt(c, "limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(top)
}

func (h *DashboardHandler) GetRecentProducts(c *fiber.Ctx) error {
	recent, err := h.service.GetRecentProducts(c.UserContext(), queryPositiveInt(c, "limit", defaultRecentLimit))
	if err != nil {
		return err
	}
	return c.JSON(recent)
}
