package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/service"
)

// ReportsHandler exposes the audit trail and derived analytics.
type ReportsHandler struct {
	memory  *service.MemoryService
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(memory *service.MemoryService, reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{memory: memory, reports: reports}
}

// ListRecords GET /records.
func (h *ReportsHandler) ListRecords(c *fiber.Ctx) error {
	records, err := h.memory.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": records})
}

// Summary GET /reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// Export GET /reports/export.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	report, err := h.reports.Export(c.UserContext())
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("ticket_report_%s.json", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.JSON(report)
}
