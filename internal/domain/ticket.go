package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The set is closed:
// unknown values are rejected at the service boundary.
type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "open"
	TicketStatusProcessed TicketStatus = "processed"
	TicketStatusCompleted TicketStatus = "completed"
)

// KnownStatus reports whether the value belongs to the closed status set.
func KnownStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusProcessed, TicketStatusCompleted:
		return true
	}
	return false
}

// allowedTransitions is the explicit transition table. Completed tickets may
// be reopened to processed.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:      {TicketStatusProcessed},
	TicketStatusProcessed: {TicketStatusOpen, TicketStatusCompleted},
	TicketStatusCompleted: {TicketStatusProcessed},
}

// ValidTransition reports whether current may move to next.
func ValidTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Ticket is a tracked request owned by a requester and optionally assigned
// to a handler account.
type Ticket struct {
	ID          int64
	Code        string
	Title       string
	Description string
	Image       string
	Status      TicketStatus
	Priority    TicketPriority
	RequesterID int64
	HandlerID   *int64
	Requester   *Account
	Handler     *Account
	Messages    []TicketMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
