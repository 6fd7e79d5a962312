package service

import "github.com/spec-kit/workdesk-service/internal/domain"

// TranscriptEntry decorates a conversation message with rendering flags.
// System entries render as centered annotations; chat entries render as
// bubbles, right-aligned for the viewer's own messages.
type TranscriptEntry struct {
	Message    domain.TicketMessage
	System     bool
	Own        bool
	ShowHeader bool
}

// BuildTranscript walks the ordered history and applies same-sender
// coalescing: an entry shows its author header exactly when the previous
// entry does not exist or was authored by a different account.
func BuildTranscript(msgs []domain.TicketMessage, viewerID int64) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(msgs))
	for i, msg := range msgs {
		showHeader := i == 0 || msgs[i-1].AccountID != msg.AccountID
		entries = append(entries, TranscriptEntry{
			Message:    msg,
			System:     msg.Kind.System(),
			Own:        msg.AccountID == viewerID,
			ShowHeader: showHeader,
		})
	}
	return entries
}
