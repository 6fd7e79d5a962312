package service

import (
	"context"
	"time"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// DailyReportInput carries report create/update fields.
type DailyReportInput struct {
	Title       string
	Description string
	Evidences   []DailyReportEvidenceInput
}

// DailyReportEvidenceInput carries one photo entry on a report.
type DailyReportEvidenceInput struct {
	Image       string
	Description string
	Latitude    *float64
	Longitude   *float64
	Address     string
	CapturedAt  *time.Time
}

// DailyReportService manages end-of-day submissions.
type DailyReportService struct {
	reports repository.DailyReportRepository
}

// NewDailyReportService wires the daily report service.
func NewDailyReportService(reports repository.DailyReportRepository) *DailyReportService {
	return &DailyReportService{reports: reports}
}

// Create stores a report with its evidence entries in one transaction.
func (s *DailyReportService) Create(ctx context.Context, author *domain.Account, input DailyReportInput) (*domain.DailyReport, error) {
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	report := &domain.DailyReport{
		Title:       input.Title,
		Description: input.Description,
		AccountID:   author.ID,
	}
	for _, ev := range input.Evidences {
		report.Evidences = append(report.Evidences, domain.DailyReportEvidence{
			Image:       ev.Image,
			Description: ev.Description,
			Latitude:    ev.Latitude,
			Longitude:   ev.Longitude,
			Address:     ev.Address,
			CapturedAt:  ev.CapturedAt,
		})
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}
	report.Account = author
	return report, nil
}

// Update rewrites a report's title and description. Only the author may edit.
func (s *DailyReportService) Update(ctx context.Context, actor *domain.Account, id int64, input DailyReportInput) (*domain.DailyReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if report.AccountID != actor.ID && !actor.HasFeature(domain.FeatureManageDailyReport) {
		return nil, apperrors.NewForbidden("not the report author")
	}
	report.Title = input.Title
	report.Description = input.Description
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes a report and its evidence entries.
func (s *DailyReportService) Delete(ctx context.Context, actor *domain.Account, id int64) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if report.AccountID != actor.ID && !actor.HasFeature(domain.FeatureManageDailyReport) {
		return apperrors.NewForbidden("not the report author")
	}
	return apperrors.MapError(s.reports.Delete(ctx, id))
}

// Get loads one report with its evidence entries.
func (s *DailyReportService) Get(ctx context.Context, id int64) (*domain.DailyReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// List returns all reports, newest first.
func (s *DailyReportService) List(ctx context.Context) ([]domain.DailyReport, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// ListByAccount returns one account's reports.
func (s *DailyReportService) ListByAccount(ctx context.Context, accountID int64) ([]domain.DailyReport, error) {
	reports, err := s.reports.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}
