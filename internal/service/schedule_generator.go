package service

import (
	"fmt"
	"time"

	"github.com/krosec/sec-guard/internal/model"
)

// initialScheduleDays caps the generated duty schedule at the first week of
// the contract. Remaining days are maintained through the regular schedule
// CRUD flow.
const initialScheduleDays = 7

// generateInitialSchedules builds one duty shift per calendar day starting
// at the contract start date, up to initialScheduleDays, never past the
// contract end date. An inverted date range yields no shifts.
func generateInitialSchedules(
	contract *model.Contract,
	object model.GuardObject,
	employee *model.Employee,
	shiftStart, shiftEnd, notes string,
) []model.Schedule {
	label := fmt.Sprintf("Guard duty for contract #%d", contract.ID)
	if notes != "" {
		label += ". " + notes
	}

	schedules := make([]model.Schedule, 0, initialScheduleDays)
	for i := 0; i < initialScheduleDays; i++ {
		date := contract.StartDate.AddDate(0, 0, i)
		if date.After(contract.EndDate) {
			break
		}
		schedules = append(schedules, model.Schedule{
			EmployeeID:    employee.ID,
			GuardObjectID: object.ID,
			Date:          date,
			StartTime:     shiftStart,
			EndTime:       shiftEnd,
			Notes:         label,
		})
	}
	return schedules
}

// parseShiftTime validates a time-of-day value in "15:04" form.
func parseShiftTime(raw string) error {
	if _, err := time.Parse("15:04", raw); err != nil {
		return fmt.Errorf("%w: shift time %q must be in HH:MM form", ErrInvalidInput, raw)
	}
	return nil
}
