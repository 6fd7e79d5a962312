package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/events"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// ProjectInput carries project create/update fields.
type ProjectInput struct {
	Title       string
	Description string
	Image       string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	ProgramID   int64
	AccountIDs  []int64
}

// ProjectService manages projects and employee assignments. Newly assigned
// accounts are notified through the dispatcher.
type ProjectService struct {
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProjectService wires the project service.
func NewProjectService(
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		tasks:      tasks,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create stores a project with its assignments and announces them.
func (s *ProjectService) Create(ctx context.Context, actor *domain.Account, input ProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		ProgramID:   input.ProgramID,
	}
	if err := s.projects.Create(ctx, project, input.AccountIDs); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.announceAssignments(ctx, actor, project, input.AccountIDs)
	return s.Get(ctx, project.ID)
}

// Update rewrites a project. Accounts not previously assigned are announced.
func (s *ProjectService) Update(ctx context.Context, actor *domain.Account, id int64, input ProjectInput) (*domain.Project, error) {
	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	known := make(map[int64]bool, len(existing.Employees))
	for _, employee := range existing.Employees {
		known[employee.AccountID] = true
	}

	project := &domain.Project{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		ProgramID:   input.ProgramID,
	}
	if err := s.projects.Update(ctx, project, input.AccountIDs); err != nil {
		return nil, apperrors.MapError(err)
	}

	var added []int64
	for _, aid := range input.AccountIDs {
		if !known[aid] {
			added = append(added, aid)
		}
	}
	s.announceAssignments(ctx, actor, project, added)
	return s.Get(ctx, id)
}

// Delete removes a project and, via cascade, its tasks.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return apperrors.MapError(s.projects.Delete(ctx, id))
}

// Get loads one project with employees and tasks.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	tasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	project.Tasks = tasks
	return project, nil
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// ListByAccount returns projects the account works on.
func (s *ProjectService) ListByAccount(ctx context.Context, accountID int64) ([]domain.Project, error) {
	projects, err := s.projects.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

func (s *ProjectService) announceAssignments(ctx context.Context, actor *domain.Account, project *domain.Project, accountIDs []int64) {
	if len(accountIDs) == 0 {
		return
	}
	var actorID int64
	if actor != nil {
		actorID = actor.ID
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProjectAssigned,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.ProjectAssignedPayload{
			ProjectID:    project.ID,
			ProjectTitle: project.Title,
			AccountIDs:   accountIDs,
		},
	})
	if err != nil {
		s.logger.Warn("project assigned event publish failed",
			zap.Int64("project_id", project.ID),
			zap.Error(err))
	}
}
