package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/service"
)

// ProjectHandler serves project administration.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns all projects.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.UserContext())
	if err != nil {
		return err
	}
	result := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		result[i] = dto.NewProjectResponse(&projects[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// ListByAccount returns projects assigned to an account.
func (h *ProjectHandler) ListByAccount(c *fiber.Ctx) error {
	accountID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	projects, err := h.projects.ListByAccount(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	result := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		result[i] = dto.NewProjectResponse(&projects[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// Get returns one project with employees and tasks.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	project, err := h.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewProjectResponse(project))
}

// Create stores a project.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	project, err := h.projects.Create(c.UserContext(), auth.AccountFromContext(c), projectInput(req))
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewProjectResponse(project))
}

// Update rewrites a project.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProjectRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	project, err := h.projects.Update(c.UserContext(), auth.AccountFromContext(c), id, projectInput(req))
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewProjectResponse(project))
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func projectInput(req dto.ProjectRequest) service.ProjectInput {
	return service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		ProgramID:   req.ProgramID,
		AccountIDs:  req.AccountIDs,
	}
}
