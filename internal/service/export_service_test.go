package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/workdesk-service/internal/config"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
)

type fakeReportRepo struct {
	evidences []domain.DailyReportEvidence
}

func (r *fakeReportRepo) Create(context.Context, *domain.DailyReport) error { return nil }
func (r *fakeReportRepo) Update(context.Context, *domain.DailyReport) error { return nil }
func (r *fakeReportRepo) Delete(context.Context, int64) error               { return nil }
func (r *fakeReportRepo) GetByID(context.Context, int64) (*domain.DailyReport, error) {
	return nil, nil
}
func (r *fakeReportRepo) List(context.Context) ([]domain.DailyReport, error) { return nil, nil }
func (r *fakeReportRepo) ListByAccount(context.Context, int64) ([]domain.DailyReport, error) {
	return nil, nil
}
func (r *fakeReportRepo) ListEvidenceByDate(context.Context, time.Time) ([]domain.DailyReportEvidence, error) {
	return r.evidences, nil
}

type fakeEvidenceRepo struct {
	images []domain.TaskEvidenceImage
}

func (r *fakeEvidenceRepo) Create(context.Context, *domain.TaskEvidence) error { return nil }
func (r *fakeEvidenceRepo) Update(context.Context, *domain.TaskEvidence) error { return nil }
func (r *fakeEvidenceRepo) Delete(context.Context, int64) error                { return nil }
func (r *fakeEvidenceRepo) GetByID(context.Context, int64) (*domain.TaskEvidence, error) {
	return nil, nil
}
func (r *fakeEvidenceRepo) ListByTask(context.Context, int64) ([]domain.TaskEvidence, error) {
	return nil, nil
}
func (r *fakeEvidenceRepo) CreateImage(context.Context, *domain.TaskEvidenceImage) error { return nil }
func (r *fakeEvidenceRepo) UpdateImage(context.Context, *domain.TaskEvidenceImage) error { return nil }
func (r *fakeEvidenceRepo) DeleteImage(context.Context, int64) error                     { return nil }
func (r *fakeEvidenceRepo) ListImagesByProject(context.Context, int64) ([]domain.TaskEvidenceImage, error) {
	return r.images, nil
}

func exportFixture() (*ExportService, *fakeTicketRepo, *fakeReportRepo, *fakeEvidenceRepo) {
	tickets := newFakeTicketRepo()
	accounts := newFakeAccountRepo(
		&domain.Account{ID: 2, Fullname: "Bob Builder", Email: "bob@example.com", Role: &domain.Role{Name: "employee"}},
	)
	reports := &fakeReportRepo{}
	evidences := &fakeEvidenceRepo{}
	cfg := config.ExportConfig{SheetName: "Export", MaxRows: 100}
	return NewExportService(tickets, accounts, reports, evidences, cfg), tickets, reports, evidences
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file
}

func TestExportTicketsWorkbook(t *testing.T) {
	svc, tickets, _, _ := exportFixture()
	require.NoError(t, tickets.Create(context.Background(), &domain.Ticket{
		Code:        "TCK-AB12CD34",
		Title:       "vpn broken",
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityHigh,
		RequesterID: 2,
	}))

	data, filename, err := svc.ExportTickets(context.Background(), repository.TicketFilter{})
	require.NoError(t, err)
	assert.Contains(t, filename, "tickets-")

	file := openWorkbook(t, data)
	rows, err := file.GetRows("Export")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Code", "Title", "Status", "Priority", "Requester", "Handler", "Created At"}, rows[0][:7])
	assert.Equal(t, "TCK-AB12CD34", rows[1][0])
	assert.Equal(t, "Bob Builder", rows[1][4])
}

func TestExportDailyReportsWorkbook(t *testing.T) {
	svc, _, reports, _ := exportFixture()
	captured := time.Date(2026, 8, 27, 14, 30, 0, 0, time.UTC)
	lat, long := 35.7, 51.4
	reports.evidences = []domain.DailyReportEvidence{
		{DailyReportID: 9, Description: "poured foundation", Address: "site A", Latitude: &lat, Longitude: &long, CapturedAt: &captured},
	}

	data, filename, err := svc.ExportDailyReports(context.Background(), captured)
	require.NoError(t, err)
	assert.Equal(t, "daily-reports-2026-08-27.xlsx", filename)

	file := openWorkbook(t, data)
	rows, err := file.GetRows("Export")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "poured foundation", rows[1][1])
	assert.Equal(t, "site A", rows[1][2])
}

func TestExportProjectEvidenceSkipsUnflagged(t *testing.T) {
	svc, _, _, evidences := exportFixture()
	evidences.images = []domain.TaskEvidenceImage{
		{TaskEvidenceID: 1, Description: "keep", IsExport: true, Date: time.Now()},
		{TaskEvidenceID: 2, Description: "skip", IsExport: false, Date: time.Now()},
	}

	data, _, err := svc.ExportProjectEvidence(context.Background(), 5)
	require.NoError(t, err)

	file := openWorkbook(t, data)
	rows, err := file.GetRows("Export")
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the one export-flagged capture")
	assert.Equal(t, "keep", rows[1][1])
}
