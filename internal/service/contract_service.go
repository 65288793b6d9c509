package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/krosec/sec-guard/internal/model"
)

type ContractService struct {
	store      Store
	dispatcher ConfirmationDispatcher
	log        zerolog.Logger
	now        func() time.Time
}

func NewContractService(store Store, dispatcher ConfirmationDispatcher, log zerolog.Logger) *ContractService {
	return &ContractService{
		store:      store,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
	}
}

type ContractInput struct {
	ClientID    int64
	ServiceID   int64
	StartDate   time.Time
	EndDate     time.Time
	TotalAmount float64
}

type ApprovalInput struct {
	SecurityEmployeeID int64
	ShiftStartTime     string
	ShiftEndTime       string
	Notes              string
}

func (s *ContractService) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	contract, err := s.store.FindContractByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("%w: contract %d", ErrNotFound, id)
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return s.store.ListContracts(ctx)
}

func (s *ContractService) ListContractsByClient(ctx context.Context, clientID int64) ([]model.Contract, error) {
	return s.store.ListContractsByClientID(ctx, clientID)
}

func (s *ContractService) ListContractsByStatus(ctx context.Context, raw string) ([]model.Contract, error) {
	status, err := model.ParseContractStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.store.ListContractsByStatus(ctx, status)
}

func (s *ContractService) CreateContract(ctx context.Context, input ContractInput) (*model.Contract, error) {
	if err := s.checkContractDates(input); err != nil {
		return nil, err
	}

	client, err := s.store.FindClientByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %d", ErrNotFound, input.ClientID)
	}
	svc, err := s.store.FindServiceByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: service %d", ErrNotFound, input.ServiceID)
	}

	contract := &model.Contract{
		Client:      client,
		Service:     svc,
		StartDate:   dateOnly(input.StartDate),
		EndDate:     dateOnly(input.EndDate),
		TotalAmount: input.TotalAmount,
		Status:      model.ContractStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.store.SaveContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// UpdateContract edits dates and amount. Only pending contracts accept
// administrative edits.
func (s *ContractService) UpdateContract(ctx context.Context, id int64, input ContractInput) (*model.Contract, error) {
	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != model.ContractStatusPending {
		return nil, fmt.Errorf("%w: contract %d is %s, only pending contracts can be edited", ErrConflict, id, contract.Status)
	}
	if err := s.checkContractDates(input); err != nil {
		return nil, err
	}

	contract.StartDate = dateOnly(input.StartDate)
	contract.EndDate = dateOnly(input.EndDate)
	contract.TotalAmount = input.TotalAmount
	if err := s.store.SaveContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) DeleteContract(ctx context.Context, id int64) error {
	if _, err := s.GetContract(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteContract(ctx, id)
}

func (s *ContractService) checkContractDates(input ContractInput) error {
	start := dateOnly(input.StartDate)
	end := dateOnly(input.EndDate)
	if start.Before(dateOnly(s.now())) {
		return fmt.Errorf("%w: start date must not be in the past", ErrInvalidInput)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}
	return nil
}

// AddGuardObject links a new protected site to a contract. The site always
// belongs to the contract's own client.
func (s *ContractService) AddGuardObject(ctx context.Context, contractID int64, object model.GuardObject) (*model.GuardObject, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Client == nil {
		return nil, fmt.Errorf("%w: contract %d has no client", ErrPrerequisiteMissing, contractID)
	}
	if object.ClientID != 0 && object.ClientID != contract.Client.ID {
		return nil, fmt.Errorf("%w: guard object client %d does not match contract client %d",
			ErrInvalidInput, object.ClientID, contract.Client.ID)
	}
	if object.Name == "" || object.Address == "" {
		return nil, fmt.Errorf("%w: guard object name and address are required", ErrInvalidInput)
	}

	object.ContractID = contract.ID
	object.ClientID = contract.Client.ID
	if err := s.store.SaveGuardObject(ctx, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

func (s *ContractService) ListGuardObjects(ctx context.Context, contractID int64) ([]model.GuardObject, error) {
	if _, err := s.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	return s.store.FindGuardObjectsByContractID(ctx, contractID)
}

func (s *ContractService) ListSchedules(ctx context.Context, contractID int64) ([]model.Schedule, error) {
	if _, err := s.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	return s.store.ListSchedulesByContractID(ctx, contractID)
}

// ValidateForApproval reports which approval prerequisites a contract
// satisfies. Employee selection is checked at approval time, not here, so
// readiness can be shown before an operator picks a guard.
func (s *ContractService) ValidateForApproval(ctx context.Context, contractID int64) (*model.ValidationResult, error) {
	result := &model.ValidationResult{}

	contract, err := s.store.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		result.AddCheck(false, "Contract not found")
		return result, nil
	}

	hasClient := contract.Client != nil
	result.AddCheck(hasClient, "Client is linked to the contract")

	hasService := contract.Service != nil
	result.AddCheck(hasService, "Service is linked to the contract")

	objects, err := s.store.FindGuardObjectsByContractID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	hasGuardObject := len(objects) > 0
	result.AddCheck(hasGuardObject, "Guard object is created")

	result.Valid = hasClient && hasService && hasGuardObject
	result.CanAutoCreate = result.Valid
	return result, nil
}

// Approve transitions a pending contract to active: it re-checks the
// structural prerequisites, generates the first week of duty shifts against
// the contract's first guard object, records both internal notifications and
// flips the status, all inside one storage transaction. Confirmation
// delivery runs after commit and its failure never undoes the approval.
func (s *ContractService) Approve(ctx context.Context, contractID int64, input ApprovalInput) (*model.Contract, error) {
	var (
		contract *model.Contract
		employee *model.Employee
		object   model.GuardObject
	)

	err := s.store.Atomically(ctx, func(tx Store) error {
		var err error
		contract, err = tx.FindContractByID(ctx, contractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return fmt.Errorf("%w: contract %d", ErrNotFound, contractID)
		}
		if contract.Status != model.ContractStatusPending {
			return fmt.Errorf("%w: contract %d is %s, only pending contracts can be approved",
				ErrConflict, contractID, contract.Status)
		}
		if contract.Client == nil {
			return fmt.Errorf("%w: no client is linked to the contract", ErrPrerequisiteMissing)
		}
		if contract.Service == nil {
			return fmt.Errorf("%w: no service is linked to the contract", ErrPrerequisiteMissing)
		}

		objects, err := tx.FindGuardObjectsByContractID(ctx, contractID)
		if err != nil {
			return err
		}
		if len(objects) == 0 {
			return fmt.Errorf("%w: no guard object exists for the contract, create one first", ErrPrerequisiteMissing)
		}
		// First created object is the scheduling target. Known limitation:
		// additional sites are not staffed by the approval flow.
		object = objects[0]

		if input.SecurityEmployeeID == 0 {
			return fmt.Errorf("%w: security employee is not selected", ErrInvalidInput)
		}
		employee, err = tx.FindEmployeeByID(ctx, input.SecurityEmployeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return fmt.Errorf("%w: selected employee %d", ErrNotFound, input.SecurityEmployeeID)
		}

		if input.ShiftStartTime == "" {
			return fmt.Errorf("%w: shift start time is not set", ErrInvalidInput)
		}
		if input.ShiftEndTime == "" {
			return fmt.Errorf("%w: shift end time is not set", ErrInvalidInput)
		}
		if err := parseShiftTime(input.ShiftStartTime); err != nil {
			return err
		}
		if err := parseShiftTime(input.ShiftEndTime); err != nil {
			return err
		}

		schedules := generateInitialSchedules(contract, object, employee,
			input.ShiftStartTime, input.ShiftEndTime, input.Notes)
		for i := range schedules {
			if err := tx.SaveSchedule(ctx, &schedules[i]); err != nil {
				return err
			}
		}

		shiftWindow := input.ShiftStartTime + " - " + input.ShiftEndTime
		clientNote, employeeNote, err := composeApprovalNotifications(contract, employee, shiftWindow, s.now())
		if err != nil {
			return err
		}
		if err := tx.SaveNotification(ctx, &clientNote); err != nil {
			return err
		}
		if err := tx.SaveNotification(ctx, &employeeNote); err != nil {
			return err
		}

		// Compare-and-swap at the storage layer: a concurrent approval that
		// committed first turns this into a clean conflict and rolls back
		// the schedules and notifications written above.
		if err := tx.UpdateContractStatus(ctx, contractID, model.ContractStatusPending, model.ContractStatusActive); err != nil {
			return err
		}
		contract.Status = model.ContractStatusActive
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendApprovalConfirmations(ctx, contract, employee, object, input)
	return contract, nil
}

// sendApprovalConfirmations hands both confirmation messages to the
// dispatcher. Runs outside the approval transaction; errors are logged and
// swallowed so a transport outage cannot fail an approval.
func (s *ContractService) sendApprovalConfirmations(
	ctx context.Context,
	contract *model.Contract,
	employee *model.Employee,
	object model.GuardObject,
	input ApprovalInput,
) {
	contractNumber := fmt.Sprintf("%d", contract.ID)
	startDate := contract.StartDate.Format(displayDateLayout)
	endDate := contract.EndDate.Format(displayDateLayout)
	shiftWindow := input.ShiftStartTime + " - " + input.ShiftEndTime

	err := s.dispatcher.NotifyClientOfApproval(ctx, ClientApprovalMessage{
		Email:          contract.Client.Email,
		ClientName:     contract.Client.FullName(),
		ContractNumber: contractNumber,
		StartDate:      startDate,
		EndDate:        endDate,
		ObjectName:     object.Name,
		ObjectAddress:  object.Address,
		EmployeeName:   employee.FullName(),
		ShiftWindow:    shiftWindow,
	})
	if err != nil {
		s.log.Warn().Err(err).Int64("contract_id", contract.ID).Msg("client approval confirmation failed")
	}

	notes := input.Notes
	if notes == "" {
		notes = "No additional instructions"
	}
	err = s.dispatcher.NotifyEmployeeOfAssignment(ctx, EmployeeAssignmentMessage{
		Email:          employee.Email,
		EmployeeName:   employee.FullName(),
		ContractNumber: contractNumber,
		ClientName:     contract.Client.FullName(),
		ObjectName:     object.Name,
		ObjectAddress:  object.Address,
		ShiftWindow:    shiftWindow,
		StartDate:      startDate,
		EndDate:        endDate,
		Notes:          notes,
	})
	if err != nil {
		s.log.Warn().Err(err).Int64("contract_id", contract.ID).Msg("employee assignment confirmation failed")
	}
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
