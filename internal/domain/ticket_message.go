package domain

import "time"

// MessageKind tags a conversation entry. Chat entries are authored by
// accounts; status-change and assign-handler entries are synthesized by the
// service when a ticket transitions.
type MessageKind string

const (
	MessageKindText          MessageKind = "message"
	MessageKindImage         MessageKind = "image"
	MessageKindStatusChange  MessageKind = "status-change"
	MessageKindAssignHandler MessageKind = "assign-handler"
)

// System reports whether the kind is synthesized rather than user-authored.
func (k MessageKind) System() bool {
	return k == MessageKindStatusChange || k == MessageKindAssignHandler
}

// TicketMessage is one entry in a ticket conversation.
type TicketMessage struct {
	ID        int64
	TicketID  int64
	AccountID int64
	Content   string
	Image     string
	Kind      MessageKind
	Account   *Account
	CreatedAt time.Time
	UpdatedAt time.Time
}
