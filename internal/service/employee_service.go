package service

import (
	"context"
	"fmt"

	"github.com/krosec/sec-guard/internal/model"
)

// securityPositionLabel marks employees eligible for guard duty.
const securityPositionLabel = "security"

type EmployeeService struct {
	store Store
}

func NewEmployeeService(store Store) *EmployeeService {
	return &EmployeeService{store: store}
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	employee, err := s.store.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: employee %d", ErrNotFound, id)
	}
	return employee, nil
}

// ListSecurityEmployees returns staff eligible for guard assignment, by
// position label.
func (s *EmployeeService) ListSecurityEmployees(ctx context.Context) ([]model.Employee, error) {
	return s.store.ListEmployeesByPosition(ctx, securityPositionLabel)
}
