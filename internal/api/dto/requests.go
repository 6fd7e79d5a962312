package dto

import "time"

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Fullname string `json:"fullname" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Image    string `json:"image,omitempty"`
	Phone    string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	RoleID   int64  `json:"role_id" validate:"required,gt=0"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ForgotPasswordRequest starts password recovery.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consumes a recovery token.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// AccountRequest creates or updates an account. Password is required on
// create and optional on update.
type AccountRequest struct {
	Fullname string `json:"fullname" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Image    string `json:"image,omitempty"`
	Phone    string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	RoleID   int64  `json:"role_id" validate:"required,gt=0"`
}

// RoleRequest creates or updates a role with its feature grants.
type RoleRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=80"`
	Description string  `json:"description,omitempty"`
	FeatureIDs  []int64 `json:"feature_ids" validate:"dive,gt=0"`
}

// FeatureRequest creates or updates a capability flag.
type FeatureRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description,omitempty"`
}

// ProgramRequest creates or updates a program.
type ProgramRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=160"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty" validate:"omitempty,max=40"`
	AccountIDs  []int64 `json:"account_ids" validate:"dive,gt=0"`
}

// ProjectRequest creates or updates a project.
type ProjectRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=160"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Status      string    `json:"status,omitempty" validate:"omitempty,max=40"`
	ProgramID   int64     `json:"program_id" validate:"required,gt=0"`
	AccountIDs  []int64   `json:"account_ids" validate:"dive,gt=0"`
}

// TaskRequest creates or updates a task.
type TaskRequest struct {
	Type        string `json:"type" validate:"required,max=80"`
	Item        string `json:"item" validate:"required,max=160"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Description string `json:"description,omitempty"`
	ProjectID   int64  `json:"project_id" validate:"required,gt=0"`
}

// GenerateTasksRequest bulk-creates tasks under one project.
type GenerateTasksRequest struct {
	ProjectID int64             `json:"project_id" validate:"required,gt=0"`
	Tasks     []GenerateTaskRow `json:"tasks" validate:"required,min=1,dive"`
}

// GenerateTaskRow is one row of a bulk task generation request.
type GenerateTaskRow struct {
	Type        string `json:"type" validate:"required,max=80"`
	Item        string `json:"item" validate:"required,max=160"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Description string `json:"description,omitempty"`
}

// TaskEvidenceRequest records photo evidence against a task.
type TaskEvidenceRequest struct {
	TaskID      int64  `json:"task_id" validate:"required,gt=0"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// TaskEvidenceImageRequest appends one geotagged capture.
type TaskEvidenceImageRequest struct {
	TaskEvidenceID int64     `json:"task_evidence_id" validate:"required,gt=0"`
	BaseImage      string    `json:"base_image" validate:"required"`
	Image          string    `json:"image,omitempty"`
	Date           time.Time `json:"date" validate:"required"`
	Latitude       float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64   `json:"longitude" validate:"gte=-180,lte=180"`
	Description    string    `json:"description,omitempty"`
	IsExport       bool      `json:"is_export"`
}

// DailyReportRequest submits an end-of-day report.
type DailyReportRequest struct {
	Title       string                   `json:"title" validate:"required,min=2,max=160"`
	Description string                   `json:"description,omitempty"`
	Evidences   []DailyReportEvidenceRow `json:"evidences" validate:"dive"`
}

// DailyReportEvidenceRow is one photo entry on a report.
type DailyReportEvidenceRow struct {
	Image       string     `json:"image" validate:"required"`
	Description string     `json:"description,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64   `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Address     string     `json:"address,omitempty"`
	CapturedAt  *time.Time `json:"captured_at,omitempty"`
}

// CreateTicketRequest opens a ticket.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=160"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Priority    string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// UpdateTicketRequest changes status and/or handler. Omitted fields stay
// untouched; clear_handler removes the current assignment.
type UpdateTicketRequest struct {
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=open processed completed"`
	HandlerID    *int64  `json:"handler_id,omitempty" validate:"omitempty,gt=0"`
	ClearHandler bool    `json:"clear_handler,omitempty"`
}

// SendMessageRequest posts a chat message to a ticket conversation.
type SendMessageRequest struct {
	Content string `json:"content,omitempty"`
	Image   string `json:"image,omitempty"`
}

// SendNotificationRequest pushes one announcement to a set of inboxes.
type SendNotificationRequest struct {
	AccountIDs  []int64 `json:"account_ids" validate:"required,min=1,dive,gt=0"`
	Type        string  `json:"type,omitempty" validate:"omitempty,oneof=PROJECT_ASSIGNED REPORT_APPROVED TICKET_SUBMITTED OTHER"`
	Title       string  `json:"title" validate:"required,min=2,max=160"`
	Description string  `json:"description,omitempty"`
	Link        string  `json:"link,omitempty"`
}
