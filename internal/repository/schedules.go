package repository

import (
	"context"

	"github.com/krosec/sec-guard/internal/model"
)

func (s *Store) ListSchedulesByContractID(ctx context.Context, contractID int64) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := s.db.WithContext(ctx).Raw(`
		SELECT sc.id, sc.employee_id, sc.guard_object_id, sc.date,
			to_char(sc.start_time, 'HH24:MI') AS start_time,
			to_char(sc.end_time, 'HH24:MI') AS end_time,
			COALESCE(sc.notes, '') AS notes
		FROM schedules sc
		JOIN guard_objects g ON g.id = sc.guard_object_id
		WHERE g.contract_id = ?
		ORDER BY sc.date ASC, sc.id ASC
	`, contractID).Scan(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s *Store) SaveSchedule(ctx context.Context, schedule *model.Schedule) error {
	return s.db.WithContext(ctx).Raw(`
		INSERT INTO schedules (employee_id, guard_object_id, date, start_time, end_time, notes)
		VALUES (?, ?, ?, ?::time, ?::time, ?)
		RETURNING id
	`, schedule.EmployeeID, schedule.GuardObjectID, schedule.Date,
		schedule.StartTime, schedule.EndTime, schedule.Notes,
	).Scan(&schedule.ID).Error
}
