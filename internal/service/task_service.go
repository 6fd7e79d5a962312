package service

import (
	"context"
	"time"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// TaskInput carries task create/update fields.
type TaskInput struct {
	Type        string
	Item        string
	Quantity    int
	Description string
	ProjectID   int64
}

// EvidenceInput carries task evidence fields.
type EvidenceInput struct {
	TaskID      int64
	Image       string
	Description string
}

// EvidenceImageInput carries one geotagged capture.
type EvidenceImageInput struct {
	TaskEvidenceID int64
	BaseImage      string
	Image          string
	Date           time.Time
	Latitude       float64
	Longitude      float64
	Description    string
	IsExport       bool
}

// TaskService manages tasks, evidence records and their captures.
type TaskService struct {
	tasks     repository.TaskRepository
	evidences repository.TaskEvidenceRepository
}

// NewTaskService wires the task service.
func NewTaskService(tasks repository.TaskRepository, evidences repository.TaskEvidenceRepository) *TaskService {
	return &TaskService{tasks: tasks, evidences: evidences}
}

// Create stores one task.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*domain.Task, error) {
	task := taskFromInput(input)
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// Generate bulk-inserts a set of tasks for one project in a single
// transaction. Either all rows land or none do.
func (s *TaskService) Generate(ctx context.Context, projectID int64, inputs []TaskInput) ([]domain.Task, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewValidationError("no tasks to generate", nil)
	}
	tasks := make([]*domain.Task, len(inputs))
	for i, input := range inputs {
		input.ProjectID = projectID
		tasks[i] = taskFromInput(input)
	}
	if err := s.tasks.CreateBatch(ctx, tasks); err != nil {
		return nil, apperrors.MapError(err)
	}
	result := make([]domain.Task, len(tasks))
	for i, task := range tasks {
		result[i] = *task
	}
	return result, nil
}

// Update rewrites one task.
func (s *TaskService) Update(ctx context.Context, id int64, input TaskInput) (*domain.Task, error) {
	task := taskFromInput(input)
	task.ID = id
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes one task.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return apperrors.MapError(s.tasks.Delete(ctx, id))
}

// Get loads one task with its evidence records.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	evidences, err := s.evidences.ListByTask(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	task.Evidences = evidences
	return task, nil
}

// List returns all tasks.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// ListByProject returns a project's tasks.
func (s *TaskService) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// CreateEvidence records a photo evidence entry against a task.
func (s *TaskService) CreateEvidence(ctx context.Context, actor *domain.Account, input EvidenceInput) (*domain.TaskEvidence, error) {
	if _, err := s.tasks.GetByID(ctx, input.TaskID); err != nil {
		return nil, apperrors.MapError(err)
	}
	evidence := &domain.TaskEvidence{
		TaskID:      input.TaskID,
		AccountID:   actor.ID,
		Image:       input.Image,
		Description: input.Description,
	}
	if err := s.evidences.Create(ctx, evidence); err != nil {
		return nil, apperrors.MapError(err)
	}
	return evidence, nil
}

// UpdateEvidence rewrites an evidence record.
func (s *TaskService) UpdateEvidence(ctx context.Context, id int64, input EvidenceInput) (*domain.TaskEvidence, error) {
	evidence, err := s.evidences.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	evidence.Image = input.Image
	evidence.Description = input.Description
	if err := s.evidences.Update(ctx, evidence); err != nil {
		return nil, apperrors.MapError(err)
	}
	return evidence, nil
}

// DeleteEvidence removes an evidence record and its captures.
func (s *TaskService) DeleteEvidence(ctx context.Context, id int64) error {
	return apperrors.MapError(s.evidences.Delete(ctx, id))
}

// GetEvidence loads one evidence record with its captures.
func (s *TaskService) GetEvidence(ctx context.Context, id int64) (*domain.TaskEvidence, error) {
	evidence, err := s.evidences.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return evidence, nil
}

// CreateEvidenceImage appends a geotagged capture to an evidence record.
func (s *TaskService) CreateEvidenceImage(ctx context.Context, actor *domain.Account, input EvidenceImageInput) (*domain.TaskEvidenceImage, error) {
	if _, err := s.evidences.GetByID(ctx, input.TaskEvidenceID); err != nil {
		return nil, apperrors.MapError(err)
	}
	image := &domain.TaskEvidenceImage{
		TaskEvidenceID: input.TaskEvidenceID,
		BaseImage:      input.BaseImage,
		Image:          input.Image,
		Date:           input.Date,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Description:    input.Description,
		IsExport:       input.IsExport,
	}
	if actor != nil {
		image.AccountID = &actor.ID
	}
	if err := s.evidences.CreateImage(ctx, image); err != nil {
		return nil, apperrors.MapError(err)
	}
	return image, nil
}

// UpdateEvidenceImage rewrites a capture, typically to attach the annotated
// export copy or flip the export flag.
func (s *TaskService) UpdateEvidenceImage(ctx context.Context, image *domain.TaskEvidenceImage) error {
	return apperrors.MapError(s.evidences.UpdateImage(ctx, image))
}

// DeleteEvidenceImage removes one capture.
func (s *TaskService) DeleteEvidenceImage(ctx context.Context, id int64) error {
	return apperrors.MapError(s.evidences.DeleteImage(ctx, id))
}

func taskFromInput(input TaskInput) *domain.Task {
	return &domain.Task{
		Type:        input.Type,
		Item:        input.Item,
		Quantity:    input.Quantity,
		Description: input.Description,
		ProjectID:   input.ProjectID,
	}
}
