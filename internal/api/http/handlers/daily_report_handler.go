package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/service"
)

// DailyReportHandler serves end-of-day report submission and review.
type DailyReportHandler struct {
	reports *service.DailyReportService
}

// NewDailyReportHandler constructs the handler.
func NewDailyReportHandler(reports *service.DailyReportService) *DailyReportHandler {
	return &DailyReportHandler{reports: reports}
}

// List returns all reports, or one account's when account_id is given.
func (h *DailyReportHandler) List(c *fiber.Ctx) error {
	var (
		reports []domain.DailyReport
		err     error
	)
	if accountID := c.QueryInt("account_id"); accountID > 0 {
		reports, err = h.reports.ListByAccount(c.UserContext(), int64(accountID))
	} else {
		reports, err = h.reports.List(c.UserContext())
	}
	if err != nil {
		return err
	}
	result := make([]dto.DailyReportResponse, len(reports))
	for i := range reports {
		result[i] = dto.NewDailyReportResponse(&reports[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// Get returns one report.
func (h *DailyReportHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	report, err := h.reports.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewDailyReportResponse(report))
}

// Create submits a report with its evidence entries.
func (h *DailyReportHandler) Create(c *fiber.Ctx) error {
	var req dto.DailyReportRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	report, err := h.reports.Create(c.UserContext(), auth.AccountFromContext(c), reportInput(req))
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewDailyReportResponse(report))
}

// Update rewrites a report.
func (h *DailyReportHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.DailyReportRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	report, err := h.reports.Update(c.UserContext(), auth.AccountFromContext(c), id, reportInput(req))
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewDailyReportResponse(report))
}

// Delete removes a report.
func (h *DailyReportHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.reports.Delete(c.UserContext(), auth.AccountFromContext(c), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func reportInput(req dto.DailyReportRequest) service.DailyReportInput {
	input := service.DailyReportInput{
		Title:       req.Title,
		Description: req.Description,
	}
	for _, ev := range req.Evidences {
		input.Evidences = append(input.Evidences, service.DailyReportEvidenceInput{
			Image:       ev.Image,
			Description: ev.Description,
			Latitude:    ev.Latitude,
			Longitude:   ev.Longitude,
			Address:     ev.Address,
			CapturedAt:  ev.CapturedAt,
		})
	}
	return input
}
