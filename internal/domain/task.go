package domain

import "time"

// Task is a unit of project work measured by item and quantity.
type Task struct {
	ID          int64
	Type        string
	Item        string
	Quantity    int
	Description string
	ProjectID   int64
	Project     *Project
	Evidences   []TaskEvidence
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskEvidence is a photo record submitted against a task.
type TaskEvidence struct {
	ID          int64
	TaskID      int64
	AccountID   int64
	Image       string
	Description string
	Account     *Account
	Images      []TaskEvidenceImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskEvidenceImage is a single geotagged capture under an evidence record.
// BaseImage is the unprocessed upload; Image the annotated export copy.
type TaskEvidenceImage struct {
	ID             int64
	TaskEvidenceID int64
	AccountID      *int64
	BaseImage      string
	Image          string
	Date           time.Time
	Latitude       float64
	Longitude      float64
	Description    string
	IsExport       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
