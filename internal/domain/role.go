package domain

import "time"

// Feature is a named capability flag attached to roles.
type Feature struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Well-known feature names checked by the route guards.
const (
	FeatureManageTicket      = "Manage Ticket"
	FeatureManageAccount     = "Manage Account"
	FeatureManageProject     = "Manage Project"
	FeatureManageProgram     = "Manage Program"
	FeatureManageDailyReport = "Manage Daily Report"
)

// Role groups accounts under a set of capability features.
type Role struct {
	ID          int64
	Name        string
	Description string
	Features    []Feature
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
