package handler

import (
	"bytes"
	"fmt"
	"time"

	"go-inventory-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// ExportInventory handles GET /api/v1/reports/inventory.xlsx
func (h *ReportHandler) ExportInventory(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportInventory(c.UserContext(), &buf); err != nil {
		return err
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
