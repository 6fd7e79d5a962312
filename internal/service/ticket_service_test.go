package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/events"
	"github.com/spec-kit/workdesk-service/internal/repository"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

func newTicketFixture() (*TicketService, *fakeTicketRepo, *recordingDispatcher, *domain.Account) {
	tickets := newFakeTicketRepo()
	requester := &domain.Account{ID: 2, Fullname: "Bob Builder", Email: "bob@example.com", Role: &domain.Role{Name: "employee"}}
	accounts := newFakeAccountRepo(requester)
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(tickets, accounts, dispatcher, zap.NewNop())
	return svc, tickets, dispatcher, requester
}

func TestCreateTicketDefaults(t *testing.T) {
	svc, _, dispatcher, requester := newTicketFixture()

	ticket, err := svc.Create(context.Background(), requester, CreateTicketInput{Title: "vpn broken"})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Nil(t, ticket.HandlerID, "tickets start unassigned")
	assert.True(t, strings.HasPrefix(ticket.Code, "TCK-"))
	assert.Len(t, dispatcher.byType(events.EventTicketCreated), 1)
}

func TestCreateTicketRejectsBlankTitle(t *testing.T) {
	svc, tickets, _, requester := newTicketFixture()

	_, err := svc.Create(context.Background(), requester, CreateTicketInput{Title: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, tickets.tickets)
}

func TestCreateTicketRejectsUnknownPriority(t *testing.T) {
	svc, _, _, requester := newTicketFixture()

	_, err := svc.Create(context.Background(), requester, CreateTicketInput{
		Title:    "vpn broken",
		Priority: domain.TicketPriority("urgent"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateTicketCodesAreUnique(t *testing.T) {
	svc, _, _, requester := newTicketFixture()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ticket, err := svc.Create(context.Background(), requester, CreateTicketInput{Title: "dup check"})
		require.NoError(t, err)
		assert.False(t, seen[ticket.Code], "code %s repeated", ticket.Code)
		seen[ticket.Code] = true
	}
}

func TestListByRequesterFilters(t *testing.T) {
	svc, tickets, _, requester := newTicketFixture()

	_, err := svc.Create(context.Background(), requester, CreateTicketInput{Title: "mine"})
	require.NoError(t, err)
	other := &domain.Ticket{Code: "TCK-OTHER", Title: "theirs", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow, RequesterID: 99}
	require.NoError(t, tickets.Create(context.Background(), other))

	// the foreign requester has no account row, so query the fake directly
	listed, err := tickets.ListWithFilter(context.Background(), repository.TicketFilter{RequesterID: &requester.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "mine", listed[0].Title)
}

func TestDeleteTicketMissing(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
