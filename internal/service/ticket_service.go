package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/events"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// CreateTicketInput carries ticket creation fields.
type CreateTicketInput struct {
	Title       string
	Description string
	Image       string
	Priority    domain.TicketPriority
}

// TicketService manages ticket lifecycle outside the conversation.
type TicketService struct {
	tickets    repository.TicketRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketService wires the ticket service.
func NewTicketService(
	tickets repository.TicketRepository,
	accounts repository.AccountRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		tickets:    tickets,
		accounts:   accounts,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create opens a new ticket for the requester. Tickets always start open and
// unassigned; a short unique code is generated for display.
func (s *TicketService) Create(ctx context.Context, requester *domain.Account, input CreateTicketInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	switch priority {
	case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh:
	default:
		return nil, apperrors.NewValidationError("unknown ticket priority", map[string]any{"priority": string(priority)})
	}

	ticket := &domain.Ticket{
		Code:        generateTicketCode(),
		Title:       title,
		Description: input.Description,
		Image:       input.Image,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		RequesterID: requester.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Requester = requester

	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		ActorID:   requester.ID,
		Timestamp: time.Now(),
		Payload: events.TicketCreatedPayload{
			TicketID:    ticket.ID,
			Code:        ticket.Code,
			Title:       ticket.Title,
			Priority:    ticket.Priority,
			RequesterID: requester.ID,
		},
	}); err != nil {
		s.logger.Warn("ticket created event publish failed",
			zap.Int64("ticket_id", ticket.ID),
			zap.Error(err))
	}
	return ticket, nil
}

// Get returns one ticket with requester and handler hydrated.
func (s *TicketService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.hydrate(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns tickets matching the filter.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range tickets {
		if err := s.hydrate(ctx, &tickets[i]); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

// ListByRequester returns tickets opened by the given account.
func (s *TicketService) ListByRequester(ctx context.Context, accountID int64, filter repository.TicketFilter) ([]domain.Ticket, error) {
	filter.RequesterID = &accountID
	return s.List(ctx, filter)
}

// ListByHandler returns tickets assigned to the given account.
func (s *TicketService) ListByHandler(ctx context.Context, accountID int64, filter repository.TicketFilter) ([]domain.Ticket, error) {
	filter.HandlerID = &accountID
	return s.List(ctx, filter)
}

// Delete removes a ticket and, via cascade, its conversation.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) hydrate(ctx context.Context, ticket *domain.Ticket) error {
	requester, err := s.accounts.GetByID(ctx, ticket.RequesterID)
	if err != nil {
		return apperrors.MapError(err)
	}
	ticket.Requester = requester
	if ticket.HandlerID != nil {
		handler, err := s.accounts.GetByID(ctx, *ticket.HandlerID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}
		ticket.Handler = handler
	}
	return nil
}

func generateTicketCode() string {
	return "TCK-" + strings.ToUpper(uuid.NewString()[:8])
}
