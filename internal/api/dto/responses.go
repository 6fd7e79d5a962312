package dto

import (
	"time"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/service"
)

// FeatureResponse is the wire form of a capability flag.
type FeatureResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RoleResponse is the wire form of a role.
type RoleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Features    []FeatureResponse `json:"features,omitempty"`
}

// AccountResponse is the wire form of an account. The password hash never
// leaves the service.
type AccountResponse struct {
	ID          int64         `json:"id"`
	Fullname    string        `json:"fullname"`
	Email       string        `json:"email"`
	Image       string        `json:"image,omitempty"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	Role        *RoleResponse `json:"role,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID          int64            `json:"id"`
	Code        string           `json:"code"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Image       string           `json:"image,omitempty"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	Requester   *AccountResponse `json:"requester,omitempty"`
	Handler     *AccountResponse `json:"handler,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// MessageResponse is one transcript entry with its rendering flags.
type MessageResponse struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticket_id"`
	AccountID  int64     `json:"account_id"`
	Fullname   string    `json:"fullname,omitempty"`
	RoleName   string    `json:"role_name,omitempty"`
	Content    string    `json:"content"`
	Image      string    `json:"image,omitempty"`
	Kind       string    `json:"kind"`
	System     bool      `json:"system"`
	Own        bool      `json:"own"`
	ShowHeader bool      `json:"show_header"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationResponse bundles a ticket with its transcript.
type ConversationResponse struct {
	Ticket   TicketResponse    `json:"ticket"`
	Messages []MessageResponse `json:"messages"`
}

// NewFeatureResponse maps a feature.
func NewFeatureResponse(f *domain.Feature) FeatureResponse {
	return FeatureResponse{ID: f.ID, Name: f.Name, Description: f.Description}
}

// NewRoleResponse maps a role with its features.
func NewRoleResponse(r *domain.Role) RoleResponse {
	resp := RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
	for i := range r.Features {
		resp.Features = append(resp.Features, NewFeatureResponse(&r.Features[i]))
	}
	return resp
}

// NewAccountResponse maps an account.
func NewAccountResponse(a *domain.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	resp := &AccountResponse{
		ID:          a.ID,
		Fullname:    a.Fullname,
		Email:       a.Email,
		Image:       a.Image,
		PhoneNumber: a.PhoneNumber,
		CreatedAt:   a.CreatedAt,
	}
	if a.Role != nil {
		role := NewRoleResponse(a.Role)
		resp.Role = &role
	}
	return resp
}

// NewTicketResponse maps a ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Code:        t.Code,
		Title:       t.Title,
		Description: t.Description,
		Image:       t.Image,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Requester:   NewAccountResponse(t.Requester),
		Handler:     NewAccountResponse(t.Handler),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTicketResponses maps a ticket list.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, len(tickets))
	for i := range tickets {
		result[i] = NewTicketResponse(&tickets[i])
	}
	return result
}

// NewConversationResponse maps a conversation with transcript flags applied.
func NewConversationResponse(conv *service.Conversation) ConversationResponse {
	resp := ConversationResponse{
		Ticket:   NewTicketResponse(conv.Ticket),
		Messages: make([]MessageResponse, 0, len(conv.Entries)),
	}
	for _, entry := range conv.Entries {
		msg := MessageResponse{
			ID:         entry.Message.ID,
			TicketID:   entry.Message.TicketID,
			AccountID:  entry.Message.AccountID,
			Content:    entry.Message.Content,
			Image:      entry.Message.Image,
			Kind:       string(entry.Message.Kind),
			System:     entry.System,
			Own:        entry.Own,
			ShowHeader: entry.ShowHeader,
			CreatedAt:  entry.Message.CreatedAt,
		}
		if entry.Message.Account != nil {
			msg.Fullname = entry.Message.Account.Fullname
			if entry.Message.Account.Role != nil {
				msg.RoleName = entry.Message.Account.Role.Name
			}
		}
		resp.Messages = append(resp.Messages, msg)
	}
	return resp
}
