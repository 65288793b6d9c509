package model

import "time"

// Notification is addressed to exactly one of employee or client, never both.
type Notification struct {
	ID         int64     `json:"id"`
	EmployeeID *int64    `json:"employee_id,omitempty"`
	ClientID   *int64    `json:"client_id,omitempty"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sent_at"`
	IsRead     bool      `json:"is_read"`
}
