package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/events"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// NotificationService persists in-app notifications. It subscribes to the
// dispatcher so ticket and project events fan out into account inboxes.
type NotificationService struct {
	notifications repository.NotificationRepository
	accounts      repository.AccountRepository
	logger        *zap.Logger
}

// NewNotificationService wires the notification service.
func NewNotificationService(
	notifications repository.NotificationRepository,
	accounts repository.AccountRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		accounts:      accounts,
		logger:        logger,
	}
}

// RegisterSubscribers attaches this service to the dispatcher.
func (s *NotificationService) RegisterSubscribers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketCreated, s.onTicketCreated)
	dispatcher.Subscribe(events.EventTicketHandlerChanged, s.onHandlerChanged)
	dispatcher.Subscribe(events.EventProjectAssigned, s.onProjectAssigned)
}

// SendNotificationInput is a direct announcement pushed to a set of accounts.
type SendNotificationInput struct {
	AccountIDs  []int64
	Type        domain.NotificationType
	Title       string
	Description string
	Link        string
}

// Send persists one notification per target account.
func (s *NotificationService) Send(ctx context.Context, input SendNotificationInput) ([]domain.Notification, error) {
	if len(input.AccountIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one account is required", nil)
	}
	kind := input.Type
	if kind == "" {
		kind = domain.NotificationOther
	}
	result := make([]domain.Notification, 0, len(input.AccountIDs))
	for _, accountID := range input.AccountIDs {
		n := domain.Notification{
			AccountID:   accountID,
			Type:        kind,
			Title:       input.Title,
			Description: input.Description,
			Link:        input.Link,
		}
		if err := s.notifications.Create(ctx, &n); err != nil {
			return nil, apperrors.MapError(err)
		}
		result = append(result, n)
	}
	return result, nil
}

// ListByAccount returns one account's inbox, newest first.
func (s *NotificationService) ListByAccount(ctx context.Context, accountID int64) ([]domain.Notification, error) {
	result, err := s.notifications.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// MarkRead flags one of the account's notifications as seen. An id owned by
// a different account reads as missing.
func (s *NotificationService) MarkRead(ctx context.Context, accountID, id int64) error {
	return apperrors.MapError(s.notifications.MarkRead(ctx, id, accountID))
}

// Delete removes one of the account's notifications.
func (s *NotificationService) Delete(ctx context.Context, accountID, id int64) error {
	return apperrors.MapError(s.notifications.Delete(ctx, id, accountID))
}

// onTicketCreated notifies every account holding the ticket management
// feature, except the requester.
func (s *NotificationService) onTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		s.logger.Warn("notification fanout account listing failed", zap.Error(err))
		return err
	}
	for i := range accounts {
		account := &accounts[i]
		if account.ID == payload.RequesterID || !account.HasFeature(domain.FeatureManageTicket) {
			continue
		}
		s.store(ctx, &domain.Notification{
			AccountID:   account.ID,
			Type:        domain.NotificationTicketSubmitted,
			Title:       "New ticket submitted",
			Description: fmt.Sprintf("Ticket %s: %s", payload.Code, payload.Title),
			Link:        fmt.Sprintf("/tickets/%d", payload.TicketID),
		})
	}
	return nil
}

// onHandlerChanged notifies the newly assigned handler.
func (s *NotificationService) onHandlerChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketHandlerChangedPayload)
	if !ok || payload.NewHandlerID == nil {
		return nil
	}
	s.store(ctx, &domain.Notification{
		AccountID:   *payload.NewHandlerID,
		Type:        domain.NotificationOther,
		Title:       "Ticket assigned to you",
		Description: fmt.Sprintf("You are now the handler of ticket %d", payload.TicketID),
		Link:        fmt.Sprintf("/tickets/%d", payload.TicketID),
	})
	return nil
}

// onProjectAssigned notifies each account added to the project.
func (s *NotificationService) onProjectAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProjectAssignedPayload)
	if !ok {
		return nil
	}
	for _, accountID := range payload.AccountIDs {
		s.store(ctx, &domain.Notification{
			AccountID:   accountID,
			Type:        domain.NotificationProjectAssigned,
			Title:       "Added to project",
			Description: fmt.Sprintf("You were assigned to %s", payload.ProjectTitle),
			Link:        fmt.Sprintf("/projects/%d", payload.ProjectID),
		})
	}
	return nil
}

func (s *NotificationService) store(ctx context.Context, n *domain.Notification) {
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Warn("notification store failed",
			zap.Int64("account_id", n.AccountID),
			zap.Error(err))
	}
}
