package model

import "time"

// Schedule is one duty shift: an employee assigned to a guard object on one
// calendar date, between StartTime and EndTime (time of day, "15:04").
type Schedule struct {
	ID            int64     `json:"id"`
	EmployeeID    int64     `json:"employee_id"`
	GuardObjectID int64     `json:"guard_object_id"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Notes         string    `json:"notes,omitempty"`
}
