package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/service"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// NotificationHandler serves the caller's inbox.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.notifications.ListByAccount(c.UserContext(), account.ID)
	if err != nil {
		return err
	}
	result := make([]dto.NotificationResponse, len(list))
	for i := range list {
		result[i] = dto.NewNotificationResponse(&list[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// Send pushes an announcement to a set of accounts.
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req dto.SendNotificationRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	sent, err := h.notifications.Send(c.UserContext(), service.SendNotificationInput{
		AccountIDs:  req.AccountIDs,
		Type:        domain.NotificationType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return err
	}
	result := make([]dto.NotificationResponse, len(sent))
	for i := range sent {
		result[i] = dto.NewNotificationResponse(&sent[i])
	}
	return dataResponse(c, fiber.StatusCreated, result)
}

// MarkRead flags one of the caller's notifications as seen.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.UserContext(), account.ID, id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"read": true})
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.UserContext(), account.ID, id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
