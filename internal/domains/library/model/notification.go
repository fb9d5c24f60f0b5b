package model

import "time"

// NotificationType constants
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// Display string used for notifications created by the running process
const NotificationDateJustNow = "Just now"

// ================================================
// NOTIFICATION ENTITY
// ================================================

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	Date      string           `json:"date"` // display string ("Just now", "2h ago")
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}
