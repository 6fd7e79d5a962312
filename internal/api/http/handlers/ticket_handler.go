package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/repository"
	"github.com/spec-kit/workdesk-service/internal/service"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// TicketHandler serves the ticket lifecycle and its conversation.
type TicketHandler struct {
	tickets       *service.TicketService
	conversations *service.ConversationService
}

// NewTicketHandler constructs the handler.
func NewTicketHandler(tickets *service.TicketService, conversations *service.ConversationService) *TicketHandler {
	return &TicketHandler{tickets: tickets, conversations: conversations}
}

// List returns tickets filtered by the query string.
func (h *TicketHandler) List(c *fiber.Ctx) error {
	tickets, err := h.tickets.List(c.UserContext(), ticketFilterFromQuery(c))
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewTicketResponses(tickets))
}

// ListByRequester returns tickets opened by an account.
func (h *TicketHandler) ListByRequester(c *fiber.Ctx) error {
	accountID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListByRequester(c.UserContext(), accountID, ticketFilterFromQuery(c))
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewTicketResponses(tickets))
}

// ListByHandler returns tickets assigned to an account.
func (h *TicketHandler) ListByHandler(c *fiber.Ctx) error {
	accountID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListByHandler(c.UserContext(), accountID, ticketFilterFromQuery(c))
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewTicketResponses(tickets))
}

// Get returns one ticket.
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewTicketResponse(ticket))
}

// Create opens a ticket for the caller.
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	ticket, err := h.tickets.Create(c.UserContext(), account, service.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Priority:    domain.TicketPriority(req.Priority),
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewTicketResponse(ticket))
}

// Update changes status and/or handler. Identical values are a no-op.
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	input := service.UpdateTicketInput{
		Handler:      req.HandlerID,
		ClearHandler: req.ClearHandler,
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		input.Status = &status
	}
	ticket, err := h.conversations.UpdateTicket(c.UserContext(), account, id, input)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewTicketResponse(ticket))
}

// Delete removes a ticket.
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// Conversation returns the ticket with its full transcript.
func (h *TicketHandler) Conversation(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	conv, err := h.conversations.GetConversation(c.UserContext(), id, account)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewConversationResponse(conv))
}

// SendMessage posts a chat message into the conversation.
func (h *TicketHandler) SendMessage(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.conversations.SendMessage(c.UserContext(), account, id, service.SendMessageInput{
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, fiber.Map{
		"id":         msg.ID,
		"ticket_id":  msg.TicketID,
		"account_id": msg.AccountID,
		"content":    msg.Content,
		"image":      msg.Image,
		"kind":       string(msg.Kind),
		"created_at": msg.CreatedAt,
	})
}

func ticketFilterFromQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if raw := c.Query("priority"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if raw := c.Query("search"); raw != "" {
		filter.SearchTerm = &raw
	}
	if raw := c.Query("created_from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedTo = &t
		}
	}
	return filter
}
