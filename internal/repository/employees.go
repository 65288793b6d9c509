package repository

import (
	"context"

	"github.com/krosec/sec-guard/internal/model"
)

const employeeSelect = `
	SELECT id, last_name, first_name,
		COALESCE(patronymic, '') AS patronymic,
		COALESCE(phone, '') AS phone,
		COALESCE(email, '') AS email,
		login, position, password_hash, is_admin
	FROM employees
`

func (s *Store) FindEmployeeByID(ctx context.Context, id int64) (*model.Employee, error) {
	var employee model.Employee
	err := s.db.WithContext(ctx).Raw(employeeSelect+` WHERE id = ? LIMIT 1`, id).Scan(&employee).Error
	if err != nil {
		return nil, err
	}
	if employee.ID == 0 {
		return nil, nil
	}
	return &employee, nil
}

func (s *Store) FindEmployeeByLogin(ctx context.Context, login string) (*model.Employee, error) {
	var employee model.Employee
	err := s.db.WithContext(ctx).Raw(employeeSelect+` WHERE login = ? LIMIT 1`, login).Scan(&employee).Error
	if err != nil {
		return nil, err
	}
	if employee.ID == 0 {
		return nil, nil
	}
	return &employee, nil
}

func (s *Store) ListEmployeesByPosition(ctx context.Context, position string) ([]model.Employee, error) {
	var employees []model.Employee
	err := s.db.WithContext(ctx).Raw(
		employeeSelect+` WHERE position ILIKE ? ORDER BY last_name ASC, first_name ASC`,
		"%"+position+"%",
	).Scan(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}
