package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

func msgFrom(accountID int64, kind domain.MessageKind) domain.TicketMessage {
	return domain.TicketMessage{AccountID: accountID, Kind: kind}
}

func TestBuildTranscriptEmpty(t *testing.T) {
	assert.Empty(t, BuildTranscript(nil, 1))
}

func TestBuildTranscriptHeaderOnAuthorChange(t *testing.T) {
	msgs := []domain.TicketMessage{
		msgFrom(1, domain.MessageKindText),
		msgFrom(1, domain.MessageKindText),
		msgFrom(2, domain.MessageKindText),
		msgFrom(2, domain.MessageKindText),
		msgFrom(1, domain.MessageKindText),
	}
	entries := BuildTranscript(msgs, 1)

	headers := make([]bool, len(entries))
	for i, entry := range entries {
		headers[i] = entry.ShowHeader
	}
	assert.Equal(t, []bool{true, false, true, false, true}, headers)
}

func TestBuildTranscriptFirstEntryAlwaysShowsHeader(t *testing.T) {
	entries := BuildTranscript([]domain.TicketMessage{msgFrom(7, domain.MessageKindText)}, 1)
	assert.True(t, entries[0].ShowHeader)
}

func TestBuildTranscriptFlagsSystemEntries(t *testing.T) {
	msgs := []domain.TicketMessage{
		msgFrom(1, domain.MessageKindText),
		msgFrom(1, domain.MessageKindStatusChange),
		msgFrom(1, domain.MessageKindAssignHandler),
		msgFrom(1, domain.MessageKindImage),
	}
	entries := BuildTranscript(msgs, 2)

	assert.False(t, entries[0].System)
	assert.True(t, entries[1].System)
	assert.True(t, entries[2].System)
	assert.False(t, entries[3].System)
}

func TestBuildTranscriptMarksViewerMessagesAsOwn(t *testing.T) {
	msgs := []domain.TicketMessage{
		msgFrom(1, domain.MessageKindText),
		msgFrom(2, domain.MessageKindText),
	}
	entries := BuildTranscript(msgs, 2)

	assert.False(t, entries[0].Own)
	assert.True(t, entries[1].Own)
}
