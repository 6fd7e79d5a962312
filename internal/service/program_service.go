package service

import (
	"context"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// ProgramInput carries program create/update fields.
type ProgramInput struct {
	Title       string
	Description string
	Status      string
	AccountIDs  []int64
}

// ProgramService manages programs and their assignments.
type ProgramService struct {
	programs repository.ProgramRepository
	projects repository.ProjectRepository
}

// NewProgramService wires the program service.
func NewProgramService(programs repository.ProgramRepository, projects repository.ProjectRepository) *ProgramService {
	return &ProgramService{programs: programs, projects: projects}
}

// Create stores a program and grants access to the listed accounts.
func (s *ProgramService) Create(ctx context.Context, input ProgramInput) (*domain.Program, error) {
	program := &domain.Program{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
	if err := s.programs.Create(ctx, program, input.AccountIDs); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, program.ID)
}

// Update rewrites a program. A nil AccountIDs slice keeps assignments as is.
func (s *ProgramService) Update(ctx context.Context, id int64, input ProgramInput) (*domain.Program, error) {
	program := &domain.Program{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
	if err := s.programs.Update(ctx, program, input.AccountIDs); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes a program and, via cascade, its projects.
func (s *ProgramService) Delete(ctx context.Context, id int64) error {
	return apperrors.MapError(s.programs.Delete(ctx, id))
}

// Get loads one program with assignments and projects.
func (s *ProgramService) Get(ctx context.Context, id int64) (*domain.Program, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	projects, err := s.projects.ListByProgram(ctx, program.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	program.Projects = projects
	return program, nil
}

// List returns all programs.
func (s *ProgramService) List(ctx context.Context) ([]domain.Program, error) {
	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return programs, nil
}

// ListByAccount returns programs the account is assigned to.
func (s *ProgramService) ListByAccount(ctx context.Context, accountID int64) ([]domain.Program, error) {
	programs, err := s.programs.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return programs, nil
}
