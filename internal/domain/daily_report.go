package domain

import "time"

// DailyReport is an account's end-of-day submission with photo evidence.
type DailyReport struct {
	ID          int64
	Title       string
	Description string
	AccountID   int64
	Account     *Account
	Evidences   []DailyReportEvidence
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DailyReportEvidence is one geotagged photo entry on a daily report.
type DailyReportEvidence struct {
	ID            int64
	DailyReportID int64
	Image         string
	Description   string
	Latitude      *float64
	Longitude     *float64
	Address       string
	CapturedAt    *time.Time
	CreatedAt     time.Time
}
