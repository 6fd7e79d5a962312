package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/events"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

type fakeInboxRepo struct {
	stored []domain.Notification
	nextID int64
}

func (r *fakeInboxRepo) Create(_ context.Context, n *domain.Notification) error {
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now()
	r.stored = append(r.stored, *n)
	return nil
}

func (r *fakeInboxRepo) ListByAccount(_ context.Context, accountID int64) ([]domain.Notification, error) {
	var result []domain.Notification
	for _, n := range r.stored {
		if n.AccountID == accountID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeInboxRepo) MarkRead(_ context.Context, id, accountID int64) error {
	for i := range r.stored {
		if r.stored[i].ID == id && r.stored[i].AccountID == accountID {
			r.stored[i].IsRead = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeInboxRepo) Delete(_ context.Context, id, accountID int64) error {
	for i := range r.stored {
		if r.stored[i].ID == id && r.stored[i].AccountID == accountID {
			r.stored = append(r.stored[:i], r.stored[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeInboxRepo) PurgeRead(context.Context, time.Time) (int64, error) { return 0, nil }

func newNotificationFixture() (*NotificationService, *fakeInboxRepo) {
	inbox := &fakeInboxRepo{}
	accounts := newFakeAccountRepo(
		&domain.Account{ID: 1, Fullname: "Alice Admin", Role: &domain.Role{
			Features: []domain.Feature{{Name: domain.FeatureManageTicket}},
		}},
		&domain.Account{ID: 2, Fullname: "Bob Builder", Role: &domain.Role{Name: "employee"}},
	)
	return NewNotificationService(inbox, accounts, zap.NewNop()), inbox
}

func TestSendStoresOneRowPerAccount(t *testing.T) {
	svc, inbox := newNotificationFixture()

	sent, err := svc.Send(context.Background(), SendNotificationInput{
		AccountIDs: []int64{1, 2},
		Title:      "Maintenance window",
		Link:       "/announcements/7",
	})
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Len(t, inbox.stored, 2)
	for _, n := range sent {
		assert.Equal(t, domain.NotificationOther, n.Type, "type defaults when omitted")
		assert.NotZero(t, n.ID)
	}
}

func TestSendRejectsEmptyTargetList(t *testing.T) {
	svc, inbox := newNotificationFixture()

	_, err := svc.Send(context.Background(), SendNotificationInput{Title: "nobody home"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, inbox.stored)
}

func TestTicketCreatedFanoutTargetsTicketManagers(t *testing.T) {
	svc, inbox := newNotificationFixture()

	err := svc.onTicketCreated(context.Background(), events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:    9,
			Code:        "TCK-ABC12345",
			Title:       "vpn broken",
			RequesterID: 2,
		},
	})
	require.NoError(t, err)

	require.Len(t, inbox.stored, 1, "only the manage-ticket holder is notified")
	assert.Equal(t, int64(1), inbox.stored[0].AccountID)
	assert.Equal(t, domain.NotificationTicketSubmitted, inbox.stored[0].Type)
	assert.Equal(t, "/tickets/9", inbox.stored[0].Link)
}

func TestTicketCreatedFanoutSkipsRequester(t *testing.T) {
	svc, inbox := newNotificationFixture()

	err := svc.onTicketCreated(context.Background(), events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:    10,
			Code:        "TCK-DEF67890",
			Title:       "printer on fire",
			RequesterID: 1,
		},
	})
	require.NoError(t, err)
	assert.Empty(t, inbox.stored, "the requester never notifies itself")
}

func TestMarkReadScopedToOwner(t *testing.T) {
	svc, inbox := newNotificationFixture()
	require.NoError(t, inbox.Create(context.Background(), &domain.Notification{AccountID: 1, Title: "for alice"}))
	id := inbox.stored[0].ID

	err := svc.MarkRead(context.Background(), 2, id)
	require.Error(t, err, "another account's entry reads as missing")
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	assert.False(t, inbox.stored[0].IsRead)

	require.NoError(t, svc.MarkRead(context.Background(), 1, id))
	assert.True(t, inbox.stored[0].IsRead)
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc, inbox := newNotificationFixture()
	require.NoError(t, inbox.Create(context.Background(), &domain.Notification{AccountID: 1, Title: "for alice"}))
	id := inbox.stored[0].ID

	err := svc.Delete(context.Background(), 2, id)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	assert.Len(t, inbox.stored, 1)

	require.NoError(t, svc.Delete(context.Background(), 1, id))
	assert.Empty(t, inbox.stored)
}

func TestProjectAssignedFanout(t *testing.T) {
	svc, inbox := newNotificationFixture()

	err := svc.onProjectAssigned(context.Background(), events.Event{
		Type: events.EventProjectAssigned,
		Payload: events.ProjectAssignedPayload{
			ProjectID:    4,
			ProjectTitle: "North Tower",
			AccountIDs:   []int64{1, 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, inbox.stored, 2)
	assert.Equal(t, domain.NotificationProjectAssigned, inbox.stored[0].Type)
	assert.Equal(t, "/projects/4", inbox.stored[0].Link)
}
