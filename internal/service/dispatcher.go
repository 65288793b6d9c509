package service

import "context"

// ClientApprovalMessage carries fully-resolved display strings for the
// confirmation sent to a client after approval.
type ClientApprovalMessage struct {
	Email          string
	ClientName     string
	ContractNumber string
	StartDate      string
	EndDate        string
	ObjectName     string
	ObjectAddress  string
	EmployeeName   string
	ShiftWindow    string
}

// EmployeeAssignmentMessage carries fully-resolved display strings for the
// assignment confirmation sent to the chosen guard.
type EmployeeAssignmentMessage struct {
	Email          string
	EmployeeName   string
	ContractNumber string
	ClientName     string
	ObjectName     string
	ObjectAddress  string
	ShiftWindow    string
	StartDate      string
	EndDate        string
	Notes          string
}

// ConfirmationDispatcher delivers approval confirmations out-of-band.
// Delivery is best effort: errors are logged by the caller and never abort
// an approval.
type ConfirmationDispatcher interface {
	NotifyClientOfApproval(ctx context.Context, msg ClientApprovalMessage) error
	NotifyEmployeeOfAssignment(ctx context.Context, msg EmployeeAssignmentMessage) error
}
