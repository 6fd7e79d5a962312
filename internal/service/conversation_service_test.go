package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/events"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

func newConversationFixture(t *testing.T) (*ConversationService, *fakeTicketRepo, *fakeMessageRepo, *fakeAccountRepo, *recordingDispatcher) {
	t.Helper()
	tickets := newFakeTicketRepo()
	messages := newFakeMessageRepo()
	accounts := newFakeAccountRepo(
		&domain.Account{ID: 1, Fullname: "Alice Admin", Email: "alice@example.com", Role: &domain.Role{
			Name:     "admin",
			Features: []domain.Feature{{Name: domain.FeatureManageTicket}},
		}},
		&domain.Account{ID: 2, Fullname: "Bob Builder", Email: "bob@example.com", Role: &domain.Role{Name: "employee"}},
		&domain.Account{ID: 3, Fullname: "Carol Crane", Email: "carol@example.com", Role: &domain.Role{Name: "employee"}},
	)
	dispatcher := &recordingDispatcher{}
	svc := NewConversationService(tickets, messages, accounts, dispatcher, zap.NewNop())
	return svc, tickets, messages, accounts, dispatcher
}

func seedTicket(t *testing.T, tickets *fakeTicketRepo, status domain.TicketStatus, handlerID *int64) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		Code:        "TCK-TEST01",
		Title:       "printer on fire",
		Status:      status,
		Priority:    domain.TicketPriorityMedium,
		RequesterID: 2,
		HandlerID:   handlerID,
	}
	require.NoError(t, tickets.Create(context.Background(), ticket))
	return ticket
}

func TestUpdateTicketNoChangeIsNoOp(t *testing.T) {
	svc, tickets, _, _, dispatcher := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	handlerID := int64(1)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, &handlerID)

	status := domain.TicketStatusOpen
	updated, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{
		Status:  &status,
		Handler: &handlerID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, updated.Status)
	assert.Zero(t, tickets.txCalls, "identical values must not persist anything")
	assert.Empty(t, dispatcher.events, "no-op update must not publish events")
}

func TestUpdateTicketStatusChangeSynthesizesOneMessage(t *testing.T) {
	svc, tickets, _, _, dispatcher := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	status := domain.TicketStatusProcessed
	updated, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusProcessed, updated.Status)

	require.Equal(t, 1, tickets.txCalls)
	msgs := tickets.txMessages[0]
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageKindStatusChange, msgs[0].Kind)
	assert.Equal(t, `Ticket Status updated from "open" to "processed"`, msgs[0].Content)
	assert.Equal(t, admin.ID, msgs[0].AccountID)

	assert.Len(t, dispatcher.byType(events.EventTicketStatusChanged), 1)
	assert.Len(t, dispatcher.byType(events.EventTicketMessageAdded), 1)
}

func TestUpdateTicketAssignHandlerNamesHandler(t *testing.T) {
	svc, tickets, _, _, dispatcher := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	handlerID := int64(3)
	updated, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{Handler: &handlerID})
	require.NoError(t, err)
	require.NotNil(t, updated.HandlerID)
	assert.Equal(t, handlerID, *updated.HandlerID)

	require.Equal(t, 1, tickets.txCalls)
	msgs := tickets.txMessages[0]
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageKindAssignHandler, msgs[0].Kind)
	assert.Equal(t, "Carol Crane Assigned As Handler", msgs[0].Content)

	handlerEvents := dispatcher.byType(events.EventTicketHandlerChanged)
	require.Len(t, handlerEvents, 1)
	payload := handlerEvents[0].Payload.(events.TicketHandlerChangedPayload)
	assert.Equal(t, "Carol Crane", payload.HandlerName)
}

func TestUpdateTicketAssignUnknownHandlerFallsBack(t *testing.T) {
	svc, tickets, _, _, _ := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	handlerID := int64(99)
	updated, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{Handler: &handlerID})
	require.NoError(t, err)
	assert.Nil(t, updated.Handler)

	require.Equal(t, 1, tickets.txCalls)
	msgs := tickets.txMessages[0]
	require.Len(t, msgs, 1)
	assert.Equal(t, "Unknown Assigned As Handler", msgs[0].Content)
}

func TestUpdateTicketClearHandler(t *testing.T) {
	svc, tickets, _, _, _ := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	handlerID := int64(3)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, &handlerID)

	updated, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{ClearHandler: true})
	require.NoError(t, err)
	assert.Nil(t, updated.HandlerID)

	require.Equal(t, 1, tickets.txCalls)
	msgs := tickets.txMessages[0]
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageKindAssignHandler, msgs[0].Kind)
	assert.Equal(t, "Handler Unassigned", msgs[0].Content)
}

func TestUpdateTicketBothChangesSingleTransaction(t *testing.T) {
	svc, tickets, _, _, _ := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	status := domain.TicketStatusProcessed
	handlerID := int64(3)
	_, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{
		Status:  &status,
		Handler: &handlerID,
	})
	require.NoError(t, err)

	require.Equal(t, 1, tickets.txCalls, "update and system messages share one transaction")
	msgs := tickets.txMessages[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.MessageKindAssignHandler, msgs[0].Kind)
	assert.Equal(t, domain.MessageKindStatusChange, msgs[1].Kind)
}

func TestUpdateTicketRejectsUnknownStatus(t *testing.T) {
	svc, tickets, _, _, _ := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	status := domain.TicketStatus("archived")
	_, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Zero(t, tickets.txCalls)
}

func TestUpdateTicketRejectsIllegalTransition(t *testing.T) {
	svc, tickets, _, _, _ := newConversationFixture(t)
	admin := mustAccount(t, svc, 1)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	status := domain.TicketStatusCompleted
	_, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, UpdateTicketInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Zero(t, tickets.txCalls)
}

func TestSendMessageRejectsEmptyInput(t *testing.T) {
	svc, tickets, messages, _, _ := newConversationFixture(t)
	requester := mustAccount(t, svc, 2)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	_, err := svc.SendMessage(context.Background(), requester, ticket.ID, SendMessageInput{Content: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Zero(t, messages.createCalls, "empty input must not reach persistence")
}

func TestSendMessagePersistsAndPublishes(t *testing.T) {
	svc, tickets, messages, _, dispatcher := newConversationFixture(t)
	requester := mustAccount(t, svc, 2)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	msg, err := svc.SendMessage(context.Background(), requester, ticket.ID, SendMessageInput{
		Content:    "hello there",
		SenderConn: "conn-7",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageKindText, msg.Kind)
	assert.Equal(t, 1, messages.createCalls)

	added := dispatcher.byType(events.EventTicketMessageAdded)
	require.Len(t, added, 1)
	payload := added[0].Payload.(events.TicketMessageAddedPayload)
	assert.Equal(t, "conn-7", payload.SenderConn)
}

func TestSendMessageImageKind(t *testing.T) {
	svc, tickets, _, _, _ := newConversationFixture(t)
	requester := mustAccount(t, svc, 2)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	msg, err := svc.SendMessage(context.Background(), requester, ticket.ID, SendMessageInput{Image: "uploads/cat.png"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageKindImage, msg.Kind)
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	svc, tickets, messages, _, _ := newConversationFixture(t)
	outsider := mustAccount(t, svc, 3)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	_, err := svc.SendMessage(context.Background(), outsider, ticket.ID, SendMessageInput{Content: "let me in"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Zero(t, messages.createCalls)
}

func TestGetConversationReadsPersistedHistoryOnly(t *testing.T) {
	svc, tickets, messages, _, _ := newConversationFixture(t)
	requester := mustAccount(t, svc, 2)
	ticket := seedTicket(t, tickets, domain.TicketStatusOpen, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.SendMessage(context.Background(), requester, ticket.ID, SendMessageInput{
			Content: fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}

	conv, err := svc.GetConversation(context.Background(), ticket.ID, requester)
	require.NoError(t, err)
	require.Len(t, conv.Entries, 3)
	assert.Equal(t, len(messages.messages[ticket.ID]), len(conv.Entries))
	for _, entry := range conv.Entries {
		assert.True(t, entry.Own)
	}
}

func mustAccount(t *testing.T, svc *ConversationService, id int64) *domain.Account {
	t.Helper()
	account, err := svc.accounts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return account
}
