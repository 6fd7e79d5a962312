package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/service"
)

// ProgramHandler serves program administration.
type ProgramHandler struct {
	programs *service.ProgramService
}

// NewProgramHandler constructs the handler.
func NewProgramHandler(programs *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

// List returns all programs.
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	programs, err := h.programs.List(c.UserContext())
	if err != nil {
		return err
	}
	result := make([]dto.ProgramResponse, len(programs))
	for i := range programs {
		result[i] = dto.NewProgramResponse(&programs[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// ListByAccount returns the caller-scoped program list.
func (h *ProgramHandler) ListByAccount(c *fiber.Ctx) error {
	accountID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	programs, err := h.programs.ListByAccount(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	result := make([]dto.ProgramResponse, len(programs))
	for i := range programs {
		result[i] = dto.NewProgramResponse(&programs[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// Get returns one program with its projects.
func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	program, err := h.programs.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewProgramResponse(program))
}

// Create stores a program.
func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	var req dto.ProgramRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	program, err := h.programs.Create(c.UserContext(), service.ProgramInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AccountIDs:  req.AccountIDs,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewProgramResponse(program))
}

// Update rewrites a program.
func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProgramRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	program, err := h.programs.Update(c.UserContext(), id, service.ProgramInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AccountIDs:  req.AccountIDs,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewProgramResponse(program))
}

// Delete removes a program.
func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.programs.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
