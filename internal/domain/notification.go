package domain

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationProjectAssigned NotificationType = "PROJECT_ASSIGNED"
	NotificationReportApproved  NotificationType = "REPORT_APPROVED"
	NotificationTicketSubmitted NotificationType = "TICKET_SUBMITTED"
	NotificationOther           NotificationType = "OTHER"
)

// Notification is an in-app inbox entry for one account.
type Notification struct {
	ID          int64
	AccountID   int64
	Type        NotificationType
	Title       string
	Description string
	Link        string
	IsRead      bool
	CreatedAt   time.Time
}
