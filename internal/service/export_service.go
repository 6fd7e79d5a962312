package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/workdesk-service/internal/config"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// ExportService renders spreadsheet downloads for tickets, daily reports and
// project evidence.
type ExportService struct {
	tickets  repository.TicketRepository
	accounts repository.AccountRepository
	reports  repository.DailyReportRepository
	images   repository.TaskEvidenceRepository
	cfg      config.ExportConfig
}

// NewExportService wires the export service.
func NewExportService(
	tickets repository.TicketRepository,
	accounts repository.AccountRepository,
	reports repository.DailyReportRepository,
	images repository.TaskEvidenceRepository,
	cfg config.ExportConfig,
) *ExportService {
	return &ExportService{
		tickets:  tickets,
		accounts: accounts,
		reports:  reports,
		images:   images,
		cfg:      cfg,
	}
}

// ExportTickets renders tickets matching the filter as an xlsx workbook.
func (s *ExportService) ExportTickets(ctx context.Context, filter repository.TicketFilter) ([]byte, string, error) {
	if filter.Limit <= 0 || filter.Limit > s.cfg.MaxRows {
		filter.Limit = s.cfg.MaxRows
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	headers := []string{"Code", "Title", "Status", "Priority", "Requester", "Handler", "Created At"}
	rows := make([][]any, 0, len(tickets))
	for i := range tickets {
		ticket := &tickets[i]
		requester := s.accountName(ctx, ticket.RequesterID)
		handler := ""
		if ticket.HandlerID != nil {
			handler = s.accountName(ctx, *ticket.HandlerID)
		}
		rows = append(rows, []any{
			ticket.Code,
			ticket.Title,
			string(ticket.Status),
			string(ticket.Priority),
			requester,
			handler,
			ticket.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := s.render(headers, rows)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("tickets-%s.xlsx", time.Now().Format("2006-01-02")), nil
}

// ExportDailyReports renders the evidence captured on one day.
func (s *ExportService) ExportDailyReports(ctx context.Context, day time.Time) ([]byte, string, error) {
	evidences, err := s.reports.ListEvidenceByDate(ctx, day)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	headers := []string{"Report ID", "Description", "Address", "Latitude", "Longitude", "Captured At"}
	rows := make([][]any, 0, len(evidences))
	for _, ev := range evidences {
		capturedAt := ""
		if ev.CapturedAt != nil {
			capturedAt = ev.CapturedAt.Format(time.RFC3339)
		}
		rows = append(rows, []any{
			ev.DailyReportID,
			ev.Description,
			ev.Address,
			floatOrEmpty(ev.Latitude),
			floatOrEmpty(ev.Longitude),
			capturedAt,
		})
	}

	data, err := s.render(headers, rows)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("daily-reports-%s.xlsx", day.Format("2006-01-02")), nil
}

// ExportProjectEvidence renders a project's export-flagged captures.
func (s *ExportService) ExportProjectEvidence(ctx context.Context, projectID int64) ([]byte, string, error) {
	images, err := s.images.ListImagesByProject(ctx, projectID)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	headers := []string{"Evidence ID", "Description", "Latitude", "Longitude", "Date", "Image"}
	rows := make([][]any, 0, len(images))
	for _, image := range images {
		if !image.IsExport {
			continue
		}
		rows = append(rows, []any{
			image.TaskEvidenceID,
			image.Description,
			image.Latitude,
			image.Longitude,
			image.Date.Format(time.RFC3339),
			image.Image,
		})
	}

	data, err := s.render(headers, rows)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("project-%d-evidence.xlsx", projectID), nil
}

func (s *ExportService) render(headers []string, rows [][]any) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck

	sheet := s.cfg.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	file.SetActiveSheet(index)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
	}
	for i, row := range rows {
		if i >= s.cfg.MaxRows {
			break
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, apperrors.NewInternalError(err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, apperrors.NewInternalError(err)
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) accountName(ctx context.Context, id int64) string {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return "Unknown"
	}
	return account.Fullname
}

func floatOrEmpty(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
