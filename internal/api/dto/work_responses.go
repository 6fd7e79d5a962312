package dto

import (
	"time"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// ProgramResponse is the wire form of a program.
type ProgramResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      string            `json:"status,omitempty"`
	Accounts    []AccountResponse `json:"accounts,omitempty"`
	Projects    []ProjectResponse `json:"projects,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ProjectResponse is the wire form of a project.
type ProjectResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Status      string            `json:"status,omitempty"`
	ProgramID   int64             `json:"program_id"`
	Employees   []AccountResponse `json:"employees,omitempty"`
	Tasks       []TaskResponse    `json:"tasks,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          int64              `json:"id"`
	Type        string             `json:"type"`
	Item        string             `json:"item"`
	Quantity    int                `json:"quantity"`
	Description string             `json:"description,omitempty"`
	ProjectID   int64              `json:"project_id"`
	Evidences   []EvidenceResponse `json:"evidences,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// EvidenceResponse is the wire form of a task evidence record.
type EvidenceResponse struct {
	ID          int64                   `json:"id"`
	TaskID      int64                   `json:"task_id"`
	AccountID   int64                   `json:"account_id"`
	Image       string                  `json:"image,omitempty"`
	Description string                  `json:"description,omitempty"`
	Images      []EvidenceImageResponse `json:"images,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// EvidenceImageResponse is one geotagged capture.
type EvidenceImageResponse struct {
	ID             int64     `json:"id"`
	TaskEvidenceID int64     `json:"task_evidence_id"`
	BaseImage      string    `json:"base_image,omitempty"`
	Image          string    `json:"image,omitempty"`
	Date           time.Time `json:"date"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Description    string    `json:"description,omitempty"`
	IsExport       bool      `json:"is_export"`
}

// DailyReportResponse is the wire form of a daily report.
type DailyReportResponse struct {
	ID          int64                         `json:"id"`
	Title       string                        `json:"title"`
	Description string                        `json:"description,omitempty"`
	Account     *AccountResponse              `json:"account,omitempty"`
	Evidences   []DailyReportEvidenceResponse `json:"evidences,omitempty"`
	CreatedAt   time.Time                     `json:"created_at"`
}

// DailyReportEvidenceResponse is one photo entry on a report.
type DailyReportEvidenceResponse struct {
	ID          int64      `json:"id"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Address     string     `json:"address,omitempty"`
	CapturedAt  *time.Time `json:"captured_at,omitempty"`
}

// NotificationResponse is one inbox entry.
type NotificationResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProgramResponse maps a program with assignments and projects.
func NewProgramResponse(p *domain.Program) ProgramResponse {
	resp := ProgramResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
	for _, assignment := range p.Assignments {
		if assignment.Account != nil {
			resp.Accounts = append(resp.Accounts, *NewAccountResponse(assignment.Account))
		}
	}
	for i := range p.Projects {
		resp.Projects = append(resp.Projects, NewProjectResponse(&p.Projects[i]))
	}
	return resp
}

// NewProjectResponse maps a project with employees and tasks.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		ProgramID:   p.ProgramID,
		CreatedAt:   p.CreatedAt,
	}
	for _, employee := range p.Employees {
		if employee.Account != nil {
			resp.Employees = append(resp.Employees, *NewAccountResponse(employee.Account))
		}
	}
	for i := range p.Tasks {
		resp.Tasks = append(resp.Tasks, NewTaskResponse(&p.Tasks[i]))
	}
	return resp
}

// NewTaskResponse maps a task with its evidence records.
func NewTaskResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Type:        t.Type,
		Item:        t.Item,
		Quantity:    t.Quantity,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		CreatedAt:   t.CreatedAt,
	}
	for i := range t.Evidences {
		resp.Evidences = append(resp.Evidences, NewEvidenceResponse(&t.Evidences[i]))
	}
	return resp
}

// NewEvidenceResponse maps an evidence record with its captures.
func NewEvidenceResponse(e *domain.TaskEvidence) EvidenceResponse {
	resp := EvidenceResponse{
		ID:          e.ID,
		TaskID:      e.TaskID,
		AccountID:   e.AccountID,
		Image:       e.Image,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	for i := range e.Images {
		resp.Images = append(resp.Images, NewEvidenceImageResponse(&e.Images[i]))
	}
	return resp
}

// NewEvidenceImageResponse maps one capture.
func NewEvidenceImageResponse(i *domain.TaskEvidenceImage) EvidenceImageResponse {
	return EvidenceImageResponse{
		ID:             i.ID,
		TaskEvidenceID: i.TaskEvidenceID,
		BaseImage:      i.BaseImage,
		Image:          i.Image,
		Date:           i.Date,
		Latitude:       i.Latitude,
		Longitude:      i.Longitude,
		Description:    i.Description,
		IsExport:       i.IsExport,
	}
}

// NewDailyReportResponse maps a report with its evidence entries.
func NewDailyReportResponse(r *domain.DailyReport) DailyReportResponse {
	resp := DailyReportResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Account:     NewAccountResponse(r.Account),
		CreatedAt:   r.CreatedAt,
	}
	for _, ev := range r.Evidences {
		resp.Evidences = append(resp.Evidences, DailyReportEvidenceResponse{
			ID:          ev.ID,
			Image:       ev.Image,
			Description: ev.Description,
			Latitude:    ev.Latitude,
			Longitude:   ev.Longitude,
			Address:     ev.Address,
			CapturedAt:  ev.CapturedAt,
		})
	}
	return resp
}

// NewNotificationResponse maps one inbox entry.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Description: n.Description,
		Link:        n.Link,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
