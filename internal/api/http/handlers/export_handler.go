package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/service"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Tickets streams the filtered ticket list as xlsx.
func (h *ExportHandler) Tickets(c *fiber.Ctx) error {
	data, filename, err := h.exports.ExportTickets(c.UserContext(), ticketFilterFromQuery(c))
	if err != nil {
		return err
	}
	return sendWorkbook(c, filename, data)
}

// DailyReports streams one day's report evidence as xlsx. The date query
// parameter takes YYYY-MM-DD and defaults to today.
func (h *ExportHandler) DailyReports(c *fiber.Ctx) error {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return apperrors.NewValidationError("invalid date, expected YYYY-MM-DD", map[string]any{"date": raw})
		}
		day = parsed
	}
	data, filename, err := h.exports.ExportDailyReports(c.UserContext(), day)
	if err != nil {
		return err
	}
	return sendWorkbook(c, filename, data)
}

// ProjectEvidence streams a project's export-flagged captures as xlsx.
func (h *ExportHandler) ProjectEvidence(c *fiber.Ctx) error {
	projectID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	data, filename, err := h.exports.ExportProjectEvidence(c.UserContext(), projectID)
	if err != nil {
		return err
	}
	return sendWorkbook(c, filename, data)
}

func sendWorkbook(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
