package service

import (
	"context"
	"errors"
	"fmt"
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

// UpdateTicketInput carries a conversation-side ticket mutation. Status and
// Handler are tri-state: nil leaves the field untouched, ClearHandler removes
// the current handler.
type UpdateTicketInput struct {
	Status       *domain.TicketStatus
	Handler      *int64
	ClearHandler bool
}

// SendMessageInput carries a chat message. SenderConn identifies the
// originating websocket connection, if any, so broadcast can skip it.
type SendMessageInput struct {
	Content    string
	Image      string
	SenderConn string
}

// Conversation bundles a ticket with its rendered transcript.
type Conversation struct {
	Ticket  *domain.Ticket
	Entries []TranscriptEntry
}

// ConversationService implements the per-ticket chat and the status/handler
// mutations that feed system messages into it.
type ConversationService struct {
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewConversationService wires the conversation service.
func NewConversationService(
	tickets repository.TicketRepository,
	messages repository.TicketMessageRepository,
	accounts repository.AccountRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		tickets:    tickets,
		messages:   messages,
		accounts:   accounts,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// GetConversation loads the ticket and its persisted history. The transcript
// is built from stored messages only; nothing held in memory survives a
// reload.
func (s *ConversationService) GetConversation(ctx context.Context, ticketID int64, viewer *domain.Account) (*Conversation, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.authorizeParticipant(ticket, viewer); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Messages = msgs
	if err := s.hydrateParties(ctx, ticket); err != nil {
		return nil, err
	}
	return &Conversation{
		Ticket:  ticket,
		Entries: BuildTranscript(msgs, viewer.ID),
	}, nil
}

// SendMessage persists a chat entry. An input with neither text nor image is
// rejected before any persistence call.
func (s *ConversationService) SendMessage(ctx context.Context, actor *domain.Account, ticketID int64, input SendMessageInput) (*domain.TicketMessage, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && input.Image == "" {
		return nil, apperrors.NewValidationError("message content is empty", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.authorizeParticipant(ticket, actor); err != nil {
		return nil, err
	}

	kind := domain.MessageKindText
	if input.Image != "" {
		kind = domain.MessageKindImage
	}
	msg := &domain.TicketMessage{
		TicketID:  ticket.ID,
		AccountID: actor.ID,
		Content:   content,
		Image:     input.Image,
		Kind:      kind,
		Account:   actor,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishMessage(ctx, actor.ID, msg, input.SenderConn)
	return msg, nil
}

// UpdateTicket applies a status and/or handler change. When neither field
// differs from the stored ticket nothing is persisted and no message is
// synthesized. A real change writes the ticket row and its system messages in
// one transaction: at most one assign-handler entry and at most one
// status-change entry per call.
func (s *ConversationService) UpdateTicket(ctx context.Context, actor *domain.Account, ticketID int64, input UpdateTicketInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	statusChanged := false
	var oldStatus domain.TicketStatus
	if input.Status != nil && *input.Status != ticket.Status {
		next := *input.Status
		if !domain.KnownStatus(next) {
			return nil, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": string(next)})
		}
		if !domain.ValidTransition(ticket.Status, next) {
			return nil, apperrors.NewValidationError("status transition not allowed", map[string]any{
				"from": string(ticket.Status),
				"to":   string(next),
			})
		}
		oldStatus = ticket.Status
		statusChanged = true
	}

	handlerChanged := false
	oldHandler := ticket.HandlerID
	var newHandler *int64
	switch {
	case input.ClearHandler:
		handlerChanged = ticket.HandlerID != nil
	case input.Handler != nil:
		if ticket.HandlerID == nil || *ticket.HandlerID != *input.Handler {
			handlerChanged = true
			newHandler = input.Handler
		}
	}

	if !statusChanged && !handlerChanged {
		return ticket, nil
	}

	var msgs []*domain.TicketMessage
	var handlerName string
	if handlerChanged {
		handlerName = "Unknown"
		content := "Handler Unassigned"
		if newHandler != nil {
			if handler, err := s.accounts.GetByID(ctx, *newHandler); err == nil {
				handlerName = handler.Fullname
			} else {
				s.logger.Warn("handler lookup failed",
					zap.Int64("handler_id", *newHandler),
					zap.Error(err))
			}
			content = fmt.Sprintf("%s Assigned As Handler", handlerName)
		}
		ticket.HandlerID = newHandler
		msgs = append(msgs, &domain.TicketMessage{
			TicketID:  ticket.ID,
			AccountID: actor.ID,
			Content:   content,
			Kind:      domain.MessageKindAssignHandler,
		})
	}
	if statusChanged {
		ticket.Status = *input.Status
		msgs = append(msgs, &domain.TicketMessage{
			TicketID:  ticket.ID,
			AccountID: actor.ID,
			Content:   fmt.Sprintf("Ticket Status updated from %q to %q", oldStatus, ticket.Status),
			Kind:      domain.MessageKindStatusChange,
		})
	}

	if err := s.tickets.UpdateWithSystemMessages(ctx, ticket, msgs); err != nil {
		return nil, apperrors.MapError(err)
	}

	if handlerChanged {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketHandlerChanged,
			ActorID:   actor.ID,
			Timestamp: time.Now(),
			Payload: events.TicketHandlerChangedPayload{
				TicketID:     ticket.ID,
				OldHandlerID: oldHandler,
				NewHandlerID: ticket.HandlerID,
				HandlerName:  handlerName,
			},
		})
	}
	if statusChanged {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketStatusChanged,
			ActorID:   actor.ID,
			Timestamp: time.Now(),
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	for _, msg := range msgs {
		msg.Account = actor
		s.publishMessage(ctx, actor.ID, msg, "")
	}

	if err := s.hydrateParties(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *ConversationService) publishMessage(ctx context.Context, actorID int64, msg *domain.TicketMessage, senderConn string) {
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketMessageAdded,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.TicketMessageAddedPayload{
			Message:    msg,
			SenderConn: senderConn,
		},
	})
	if err != nil {
		s.logger.Warn("message event publish failed",
			zap.Int64("ticket_id", msg.TicketID),
			zap.Error(err))
	}
}

// Authorize checks that the account may join the ticket conversation, for
// callers that hold the connection open instead of issuing single requests.
func (s *ConversationService) Authorize(ctx context.Context, ticketID int64, account *domain.Account) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return s.authorizeParticipant(ticket, account)
}

// authorizeParticipant allows the requester, the assigned handler, and any
// account holding the ticket management feature to read or post.
func (s *ConversationService) authorizeParticipant(ticket *domain.Ticket, account *domain.Account) error {
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if ticket.RequesterID == account.ID {
		return nil
	}
	if ticket.HandlerID != nil && *ticket.HandlerID == account.ID {
		return nil
	}
	if account.HasFeature(domain.FeatureManageTicket) {
		return nil
	}
	return apperrors.NewForbidden("not a participant of this ticket")
}

func (s *ConversationService) hydrateParties(ctx context.Context, ticket *domain.Ticket) error {
	requester, err := s.accounts.GetByID(ctx, ticket.RequesterID)
	if err != nil {
		return apperrors.MapError(err)
	}
	ticket.Requester = requester
	ticket.Handler = nil
	if ticket.HandlerID != nil {
		// A vanished handler account renders as unassigned instead of
		// failing the whole read.
		handler, err := s.accounts.GetByID(ctx, *ticket.HandlerID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}
		ticket.Handler = handler
	}
	return nil
}
