package service

import (
	"context"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// RoleInput carries role create/update fields.
type RoleInput struct {
	Name        string
	Description string
	FeatureIDs  []int64
}

// RoleService manages roles and features.
type RoleService struct {
	roles    repository.RoleRepository
	features repository.FeatureRepository
}

// NewRoleService wires the role service.
func NewRoleService(roles repository.RoleRepository, features repository.FeatureRepository) *RoleService {
	return &RoleService{roles: roles, features: features}
}

// CreateRole stores a role and its feature grants.
func (s *RoleService) CreateRole(ctx context.Context, input RoleInput) (*domain.Role, error) {
	role := &domain.Role{Name: input.Name, Description: input.Description}
	if err := s.roles.Create(ctx, role, input.FeatureIDs); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetRole(ctx, role.ID)
}

// UpdateRole rewrites a role and replaces its feature grants.
func (s *RoleService) UpdateRole(ctx context.Context, id int64, input RoleInput) (*domain.Role, error) {
	role := &domain.Role{ID: id, Name: input.Name, Description: input.Description}
	if err := s.roles.Update(ctx, role, input.FeatureIDs); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetRole(ctx, id)
}

// DeleteRole removes a role.
func (s *RoleService) DeleteRole(ctx context.Context, id int64) error {
	return apperrors.MapError(s.roles.Delete(ctx, id))
}

// GetRole loads one role with its features.
func (s *RoleService) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return role, nil
}

// ListRoles returns all roles.
func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}

// CreateFeature stores a capability flag.
func (s *RoleService) CreateFeature(ctx context.Context, name, description string) (*domain.Feature, error) {
	feature := &domain.Feature{Name: name, Description: description}
	if err := s.features.Create(ctx, feature); err != nil {
		return nil, apperrors.MapError(err)
	}
	return feature, nil
}

// UpdateFeature rewrites a capability flag.
func (s *RoleService) UpdateFeature(ctx context.Context, id int64, name, description string) (*domain.Feature, error) {
	feature := &domain.Feature{ID: id, Name: name, Description: description}
	if err := s.features.Update(ctx, feature); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetFeature(ctx, id)
}

// DeleteFeature removes a capability flag.
func (s *RoleService) DeleteFeature(ctx context.Context, id int64) error {
	return apperrors.MapError(s.features.Delete(ctx, id))
}

// GetFeature loads one capability flag.
func (s *RoleService) GetFeature(ctx context.Context, id int64) (*domain.Feature, error) {
	feature, err := s.features.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return feature, nil
}

// ListFeatures returns all capability flags.
func (s *RoleService) ListFeatures(ctx context.Context) ([]domain.Feature, error) {
	features, err := s.features.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return features, nil
}
