package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownStatus(t *testing.T) {
	assert.True(t, KnownStatus(TicketStatusOpen))
	assert.True(t, KnownStatus(TicketStatusProcessed))
	assert.True(t, KnownStatus(TicketStatusCompleted))
	assert.False(t, KnownStatus(TicketStatus("archived")))
	assert.False(t, KnownStatus(TicketStatus("")))
}

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to TicketStatus
		ok       bool
	}{
		{TicketStatusOpen, TicketStatusProcessed, true},
		{TicketStatusOpen, TicketStatusCompleted, false},
		{TicketStatusProcessed, TicketStatusOpen, true},
		{TicketStatusProcessed, TicketStatusCompleted, true},
		{TicketStatusCompleted, TicketStatusProcessed, true},
		{TicketStatusCompleted, TicketStatusOpen, false},
		{TicketStatusOpen, TicketStatusOpen, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestMessageKindSystem(t *testing.T) {
	assert.False(t, MessageKindText.System())
	assert.False(t, MessageKindImage.System())
	assert.True(t, MessageKindStatusChange.System())
	assert.True(t, MessageKindAssignHandler.System())
}
