package events

import (
	"time"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
	EventTicketHandlerChanged EventType = "ticket_handler_changed"
	EventTicketMessageAdded   EventType = "ticket_message_added"
	EventProjectAssigned      EventType = "project_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID    int64                 `json:"ticket_id"`
	Code        string                `json:"code"`
	Title       string                `json:"title"`
	Priority    domain.TicketPriority `json:"priority"`
	RequesterID int64                 `json:"requester_id"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  int64               `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketHandlerChangedPayload payload.
type TicketHandlerChangedPayload struct {
	TicketID     int64  `json:"ticket_id"`
	OldHandlerID *int64 `json:"old_handler_id,omitempty"`
	NewHandlerID *int64 `json:"new_handler_id,omitempty"`
	HandlerName  string `json:"handler_name"`
}

// TicketMessageAddedPayload payload. SenderConn identifies the websocket
// connection that originated the send so the hub can skip echoing to it.
type TicketMessageAddedPayload struct {
	Message    *domain.TicketMessage `json:"message"`
	SenderConn string                `json:"sender_conn,omitempty"`
}

// ProjectAssignedPayload payload.
type ProjectAssignedPayload struct {
	ProjectID    int64   `json:"project_id"`
	ProjectTitle string  `json:"project_title"`
	AccountIDs   []int64 `json:"account_ids"`
}
