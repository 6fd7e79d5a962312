package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/service"
)

// RoleHandler serves role and feature administration.
type RoleHandler struct {
	roles *service.RoleService
}

// NewRoleHandler constructs the handler.
func NewRoleHandler(roles *service.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// ListRoles returns all roles.
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roles.ListRoles(c.UserContext())
	if err != nil {
		return err
	}
	result := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		result[i] = dto.NewRoleResponse(&roles[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// GetRole returns one role.
func (h *RoleHandler) GetRole(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	role, err := h.roles.GetRole(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewRoleResponse(role))
}

// CreateRole stores a role with its feature grants.
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	role, err := h.roles.CreateRole(c.UserContext(), service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
		FeatureIDs:  req.FeatureIDs,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewRoleResponse(role))
}

// UpdateRole rewrites a role.
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.RoleRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	role, err := h.roles.UpdateRole(c.UserContext(), id, service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
		FeatureIDs:  req.FeatureIDs,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewRoleResponse(role))
}

// DeleteRole removes a role.
func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.roles.DeleteRole(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// ListFeatures returns all capability flags.
func (h *RoleHandler) ListFeatures(c *fiber.Ctx) error {
	features, err := h.roles.ListFeatures(c.UserContext())
	if err != nil {
		return err
	}
	result := make([]dto.FeatureResponse, len(features))
	for i := range features {
		result[i] = dto.NewFeatureResponse(&features[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// CreateFeature stores a capability flag.
func (h *RoleHandler) CreateFeature(c *fiber.Ctx) error {
	var req dto.FeatureRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	feature, err := h.roles.CreateFeature(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewFeatureResponse(feature))
}

// UpdateFeature rewrites a capability flag.
func (h *RoleHandler) UpdateFeature(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.FeatureRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	feature, err := h.roles.UpdateFeature(c.UserContext(), id, req.Name, req.Description)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewFeatureResponse(feature))
}

// DeleteFeature removes a capability flag.
func (h *RoleHandler) DeleteFeature(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.roles.DeleteFeature(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
