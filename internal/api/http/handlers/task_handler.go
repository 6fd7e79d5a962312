package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/service"
)

// TaskHandler serves tasks, evidence records and captures.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List returns all tasks, or a project's tasks when project_id is given.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	var (
		tasks []dto.TaskResponse
		err   error
	)
	if projectID := c.QueryInt("project_id"); projectID > 0 {
		tasks, err = h.listByProject(c, int64(projectID))
	} else {
		tasks, err = h.listAll(c)
	}
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, tasks)
}

func (h *TaskHandler) listAll(c *fiber.Ctx) ([]dto.TaskResponse, error) {
	tasks, err := h.tasks.List(c.UserContext())
	if err != nil {
		return nil, err
	}
	result := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = dto.NewTaskResponse(&tasks[i])
	}
	return result, nil
}

func (h *TaskHandler) listByProject(c *fiber.Ctx, projectID int64) ([]dto.TaskResponse, error) {
	tasks, err := h.tasks.ListByProject(c.UserContext(), projectID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = dto.NewTaskResponse(&tasks[i])
	}
	return result, nil
}

// Get returns one task with evidence.
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	task, err := h.tasks.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewTaskResponse(task))
}

// Create stores one task.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	task, err := h.tasks.Create(c.UserContext(), service.TaskInput{
		Type:        req.Type,
		Item:        req.Item,
		Quantity:    req.Quantity,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewTaskResponse(task))
}

// Generate bulk-creates tasks for one project.
func (h *TaskHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateTasksRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	inputs := make([]service.TaskInput, len(req.Tasks))
	for i, row := range req.Tasks {
		inputs[i] = service.TaskInput{
			Type:        row.Type,
			Item:        row.Item,
			Quantity:    row.Quantity,
			Description: row.Description,
		}
	}
	tasks, err := h.tasks.Generate(c.UserContext(), req.ProjectID, inputs)
	if err != nil {
		return err
	}
	result := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = dto.NewTaskResponse(&tasks[i])
	}
	return dataResponse(c, fiber.StatusCreated, result)
}

// Update rewrites one task.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.TaskRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	task, err := h.tasks.Update(c.UserContext(), id, service.TaskInput{
		Type:        req.Type,
		Item:        req.Item,
		Quantity:    req.Quantity,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewTaskResponse(task))
}

// Delete removes one task.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// CreateEvidence records evidence against a task.
func (h *TaskHandler) CreateEvidence(c *fiber.Ctx) error {
	var req dto.TaskEvidenceRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	evidence, err := h.tasks.CreateEvidence(c.UserContext(), auth.AccountFromContext(c), service.EvidenceInput{
		TaskID:      req.TaskID,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewEvidenceResponse(evidence))
}

// GetEvidence returns one evidence record with captures.
func (h *TaskHandler) GetEvidence(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	evidence, err := h.tasks.GetEvidence(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewEvidenceResponse(evidence))
}

// UpdateEvidence rewrites an evidence record.
func (h *TaskHandler) UpdateEvidence(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.TaskEvidenceRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	evidence, err := h.tasks.UpdateEvidence(c.UserContext(), id, service.EvidenceInput{
		TaskID:      req.TaskID,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewEvidenceResponse(evidence))
}

// DeleteEvidence removes an evidence record.
func (h *TaskHandler) DeleteEvidence(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.tasks.DeleteEvidence(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// CreateEvidenceImage appends one geotagged capture.
func (h *TaskHandler) CreateEvidenceImage(c *fiber.Ctx) error {
	var req dto.TaskEvidenceImageRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	image, err := h.tasks.CreateEvidenceImage(c.UserContext(), auth.AccountFromContext(c), service.EvidenceImageInput{
		TaskEvidenceID: req.TaskEvidenceID,
		BaseImage:      req.BaseImage,
		Image:          req.Image,
		Date:           req.Date,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Description:    req.Description,
		IsExport:       req.IsExport,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewEvidenceImageResponse(image))
}

// UpdateEvidenceImage rewrites one capture, typically to attach the annotated
// export copy or flip the export flag.
func (h *TaskHandler) UpdateEvidenceImage(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.TaskEvidenceImageRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	image := &domain.TaskEvidenceImage{
		ID:             id,
		TaskEvidenceID: req.TaskEvidenceID,
		BaseImage:      req.BaseImage,
		Image:          req.Image,
		Date:           req.Date,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Description:    req.Description,
		IsExport:       req.IsExport,
	}
	if account := auth.AccountFromContext(c); account != nil {
		image.AccountID = &account.ID
	}
	if err := h.tasks.UpdateEvidenceImage(c.UserContext(), image); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewEvidenceImageResponse(image))
}

// DeleteEvidenceImage removes one capture.
func (h *TaskHandler) DeleteEvidenceImage(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.tasks.DeleteEvidenceImage(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
