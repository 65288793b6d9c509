package service

import (
	"fmt"
	"time"

	"github.com/krosec/sec-guard/internal/model"
)

const displayDateLayout = "02.01.2006"

// composeApprovalNotifications builds the two internal notification records
// for an approved contract: one addressed to the client, one to the assigned
// employee. Pure construction, no I/O.
func composeApprovalNotifications(
	contract *model.Contract,
	employee *model.Employee,
	shiftWindow string,
	now time.Time,
) (client model.Notification, assigned model.Notification, err error) {
	if employee == nil {
		return client, assigned, fmt.Errorf("%w: employee is required for approval notifications", ErrInvalidInput)
	}

	startDate := contract.StartDate.Format(displayDateLayout)

	clientID := contract.Client.ID
	client = model.Notification{
		ClientID: &clientID,
		Title:    "Contract approved",
		Message: fmt.Sprintf(
			"Your contract #%d for service '%s' has been approved. Protection starts on %s",
			contract.ID, contract.Service.Name, startDate,
		),
		SentAt: now,
	}

	employeeID := employee.ID
	assigned = model.Notification{
		EmployeeID: &employeeID,
		Title:      "New guard assignment",
		Message: fmt.Sprintf(
			"You have been assigned to guard duty under contract #%d. Start: %s. Shift time: %s",
			contract.ID, startDate, shiftWindow,
		),
		SentAt: now,
	}
	return client, assigned, nil
}
