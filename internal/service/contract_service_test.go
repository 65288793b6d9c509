package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/krosec/sec-guard/internal/model"
)

// ---------------------------------------------------------------------------
// In-memory stub store with transactional semantics
// ---------------------------------------------------------------------------

type stubState struct {
	contracts     map[int64]*model.Contract
	clients       map[int64]*model.Client
	services      map[int64]*model.SecurityService
	employees     map[int64]*model.Employee
	objects       []model.GuardObject
	schedules     []model.Schedule
	notifications []model.Notification
	nextID        int64
}

func newStubState() *stubState {
	return &stubState{
		contracts: make(map[int64]*model.Contract),
		clients:   make(map[int64]*model.Client),
		services:  make(map[int64]*model.SecurityService),
		employees: make(map[int64]*model.Employee),
		nextID:    100,
	}
}

func (st *stubState) clone() *stubState {
	c := newStubState()
	c.nextID = st.nextID
	for id, contract := range st.contracts {
		copied := *contract
		c.contracts[id] = &copied
	}
	for id, client := range st.clients {
		copied := *client
		c.clients[id] = &copied
	}
	for id, svc := range st.services {
		copied := *svc
		c.services[id] = &copied
	}
	for id, employee := range st.employees {
		copied := *employee
		c.employees[id] = &copied
	}
	c.objects = append([]model.GuardObject(nil), st.objects...)
	c.schedules = append([]model.Schedule(nil), st.schedules...)
	c.notifications = append([]model.Notification(nil), st.notifications...)
	return c
}

// failures is shared between a stubStore and its transaction-scoped copies
// so injected errors fire inside Atomically.
type failures struct {
	saveScheduleErrOn     int // 1-based call index, 0 = never
	saveScheduleCalls     int
	saveNotificationErrOn int
	saveNotificationCalls int
	casConflict           bool
}

type stubStore struct {
	state *stubState
	fail  *failures
}

func newStubStore() *stubStore {
	return &stubStore{state: newStubState(), fail: &failures{}}
}

func (s *stubStore) Atomically(_ context.Context, fn func(tx Store) error) error {
	staged := &stubStore{state: s.state.clone(), fail: s.fail}
	if err := fn(staged); err != nil {
		return err
	}
	s.state = staged.state
	return nil
}

func (s *stubStore) FindContractByID(_ context.Context, id int64) (*model.Contract, error) {
	contract, ok := s.state.contracts[id]
	if !ok {
		return nil, nil
	}
	copied := *contract
	return &copied, nil
}

func (s *stubStore) ListContracts(_ context.Context) ([]model.Contract, error) {
	var out []model.Contract
	for _, contract := range s.state.contracts {
		out = append(out, *contract)
	}
	return out, nil
}

func (s *stubStore) ListContractsByClientID(_ context.Context, clientID int64) ([]model.Contract, error) {
	var out []model.Contract
	for _, contract := range s.state.contracts {
		if contract.Client != nil && contract.Client.ID == clientID {
			out = append(out, *contract)
		}
	}
	return out, nil
}

func (s *stubStore) ListContractsByStatus(_ context.Context, status model.ContractStatus) ([]model.Contract, error) {
	var out []model.Contract
	for _, contract := range s.state.contracts {
		if contract.Status == status {
			out = append(out, *contract)
		}
	}
	return out, nil
}

func (s *stubStore) ListContractsCreatedBetween(_ context.Context, from, to time.Time) ([]model.Contract, error) {
	var out []model.Contract
	for _, contract := range s.state.contracts {
		if !contract.CreatedAt.Before(from) && contract.CreatedAt.Before(to) {
			out = append(out, *contract)
		}
	}
	return out, nil
}

func (s *stubStore) SaveContract(_ context.Context, contract *model.Contract) error {
	if contract.ID == 0 {
		s.state.nextID++
		contract.ID = s.state.nextID
	}
	copied := *contract
	s.state.contracts[contract.ID] = &copied
	return nil
}

func (s *stubStore) DeleteContract(_ context.Context, id int64) error {
	delete(s.state.contracts, id)
	return nil
}

func (s *stubStore) UpdateContractStatus(_ context.Context, id int64, from, to model.ContractStatus) error {
	if s.fail.casConflict {
		return fmt.Errorf("%w: contract %d status changed concurrently", ErrConflict, id)
	}
	contract, ok := s.state.contracts[id]
	if !ok || contract.Status != from {
		return fmt.Errorf("%w: contract %d is no longer %s", ErrConflict, id, from)
	}
	contract.Status = to
	return nil
}

func (s *stubStore) FindClientByID(_ context.Context, id int64) (*model.Client, error) {
	client, ok := s.state.clients[id]
	if !ok {
		return nil, nil
	}
	copied := *client
	return &copied, nil
}

func (s *stubStore) FindServiceByID(_ context.Context, id int64) (*model.SecurityService, error) {
	svc, ok := s.state.services[id]
	if !ok {
		return nil, nil
	}
	copied := *svc
	return &copied, nil
}

func (s *stubStore) FindEmployeeByID(_ context.Context, id int64) (*model.Employee, error) {
	employee, ok := s.state.employees[id]
	if !ok {
		return nil, nil
	}
	copied := *employee
	return &copied, nil
}

func (s *stubStore) FindEmployeeByLogin(_ context.Context, login string) (*model.Employee, error) {
	for _, employee := range s.state.employees {
		if employee.Login == login {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListEmployeesByPosition(_ context.Context, position string) ([]model.Employee, error) {
	var out []model.Employee
	for _, employee := range s.state.employees {
		if strings.Contains(strings.ToLower(employee.Position), strings.ToLower(position)) {
			out = append(out, *employee)
		}
	}
	return out, nil
}

func (s *stubStore) FindGuardObjectsByContractID(_ context.Context, contractID int64) ([]model.GuardObject, error) {
	var out []model.GuardObject
	for _, object := range s.state.objects {
		if object.ContractID == contractID {
			out = append(out, object)
		}
	}
	return out, nil
}

func (s *stubStore) SaveGuardObject(_ context.Context, object *model.GuardObject) error {
	if object.ID == 0 {
		s.state.nextID++
		object.ID = s.state.nextID
	}
	s.state.objects = append(s.state.objects, *object)
	return nil
}

func (s *stubStore) ListSchedulesByContractID(_ context.Context, contractID int64) ([]model.Schedule, error) {
	objects, _ := s.FindGuardObjectsByContractID(context.Background(), contractID)
	ids := make(map[int64]bool, len(objects))
	for _, object := range objects {
		ids[object.ID] = true
	}
	var out []model.Schedule
	for _, schedule := range s.state.schedules {
		if ids[schedule.GuardObjectID] {
			out = append(out, schedule)
		}
	}
	return out, nil
}

func (s *stubStore) SaveSchedule(_ context.Context, schedule *model.Schedule) error {
	s.fail.saveScheduleCalls++
	if s.fail.saveScheduleErrOn > 0 && s.fail.saveScheduleCalls >= s.fail.saveScheduleErrOn {
		return errors.New("schedule insert failed")
	}
	s.state.nextID++
	schedule.ID = s.state.nextID
	s.state.schedules = append(s.state.schedules, *schedule)
	return nil
}

func (s *stubStore) ListNotificationsByClientID(_ context.Context, clientID int64, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range s.state.notifications {
		if n.ClientID == nil || *n.ClientID != clientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *stubStore) CountUnreadByClientID(ctx context.Context, clientID int64) (int64, error) {
	unread, err := s.ListNotificationsByClientID(ctx, clientID, true)
	return int64(len(unread)), err
}

func (s *stubStore) SaveNotification(_ context.Context, notification *model.Notification) error {
	s.fail.saveNotificationCalls++
	if s.fail.saveNotificationErrOn > 0 && s.fail.saveNotificationCalls >= s.fail.saveNotificationErrOn {
		return errors.New("notification insert failed")
	}
	s.state.nextID++
	notification.ID = s.state.nextID
	s.state.notifications = append(s.state.notifications, *notification)
	return nil
}

func (s *stubStore) MarkNotificationRead(_ context.Context, id int64) error {
	for i := range s.state.notifications {
		if s.state.notifications[i].ID == id {
			s.state.notifications[i].IsRead = true
		}
	}
	return nil
}

func (s *stubStore) MarkAllNotificationsRead(_ context.Context, clientID int64) error {
	for i := range s.state.notifications {
		n := &s.state.notifications[i]
		if n.ClientID != nil && *n.ClientID == clientID {
			n.IsRead = true
		}
	}
	return nil
}

func (s *stubStore) DeleteNotification(_ context.Context, id int64) error {
	kept := s.state.notifications[:0]
	for _, n := range s.state.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.state.notifications = kept
	return nil
}

// ---------------------------------------------------------------------------
// Stub dispatcher
// ---------------------------------------------------------------------------

type stubDispatcher struct {
	clientCalls   []ClientApprovalMessage
	employeeCalls []EmployeeAssignmentMessage
	clientErr     error
	employeeErr   error
}

func (d *stubDispatcher) NotifyClientOfApproval(_ context.Context, msg ClientApprovalMessage) error {
	d.clientCalls = append(d.clientCalls, msg)
	return d.clientErr
}

func (d *stubDispatcher) NotifyEmployeeOfAssignment(_ context.Context, msg EmployeeAssignmentMessage) error {
	d.employeeCalls = append(d.employeeCalls, msg)
	return d.employeeErr
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedContract(store *stubStore, start, end time.Time, withObject bool) *model.Contract {
	client := &model.Client{ID: 1, LastName: "Ivanov", FirstName: "Ivan", Email: "ivanov@example.com"}
	svc := &model.SecurityService{ID: 1, Name: "Stationary guard post", Price: 1500}
	store.state.clients[client.ID] = client
	store.state.services[svc.ID] = svc

	contract := &model.Contract{
		ID:          10,
		Client:      client,
		Service:     svc,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: 42000,
		Status:      model.ContractStatusPending,
		CreatedAt:   date(2024, 1, 15),
	}
	store.state.contracts[contract.ID] = contract

	store.state.employees[5] = &model.Employee{
		ID: 5, LastName: "Petrov", FirstName: "Petr",
		Email: "petrov@example.com", Position: "Security guard",
	}

	if withObject {
		store.state.objects = append(store.state.objects, model.GuardObject{
			ID: 20, ClientID: client.ID, ContractID: contract.ID,
			Name: "Warehouse 3", Address: "14 Industrial St",
		})
	}
	return contract
}

func newTestService(store *stubStore, dispatcher *stubDispatcher) *ContractService {
	svc := NewContractService(store, dispatcher, zerolog.Nop())
	svc.now = func() time.Time { return date(2024, 1, 20) }
	return svc
}

func validApproval() ApprovalInput {
	return ApprovalInput{
		SecurityEmployeeID: 5,
		ShiftStartTime:     "08:00",
		ShiftEndTime:       "20:00",
	}
}

// ---------------------------------------------------------------------------
// Readiness validation
// ---------------------------------------------------------------------------

func TestValidateForApprovalMissingContract(t *testing.T) {
	svc := newTestService(newStubStore(), &stubDispatcher{})

	result, err := svc.ValidateForApproval(context.Background(), 999)
	if err != nil {
		t.Fatalf("ValidateForApproval: %v", err)
	}
	if result.Valid || result.CanAutoCreate {
		t.Fatal("missing contract must be invalid")
	}
	if len(result.Checks) != 1 || result.Checks[0].Passed {
		t.Fatalf("expected a single failing check, got %+v", result.Checks)
	}
}

func TestValidateForApprovalNoGuardObject(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), false)
	svc := newTestService(store, &stubDispatcher{})

	result, err := svc.ValidateForApproval(context.Background(), 10)
	if err != nil {
		t.Fatalf("ValidateForApproval: %v", err)
	}
	if result.Valid || result.CanAutoCreate {
		t.Fatal("contract without guard object must be invalid")
	}
	if len(result.Checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(result.Checks))
	}
	if !result.Checks[0].Passed || !result.Checks[1].Passed {
		t.Fatalf("client/service checks should pass: %+v", result.Checks)
	}
	if result.Checks[2].Passed {
		t.Fatal("guard object check should fail")
	}
}

func TestValidateForApprovalReady(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	svc := newTestService(store, &stubDispatcher{})

	result, err := svc.ValidateForApproval(context.Background(), 10)
	if err != nil {
		t.Fatalf("ValidateForApproval: %v", err)
	}
	if !result.Valid || !result.CanAutoCreate {
		t.Fatalf("expected ready contract, got %+v", result)
	}
}

func TestValidateForApprovalIdempotent(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), false)
	svc := newTestService(store, &stubDispatcher{})

	first, err := svc.ValidateForApproval(context.Background(), 10)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.ValidateForApproval(context.Background(), 10)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("validation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// ---------------------------------------------------------------------------
// Approval
// ---------------------------------------------------------------------------

func TestApproveFiveDayContract(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	dispatcher := &stubDispatcher{}
	svc := newTestService(store, dispatcher)

	contract, err := svc.Approve(context.Background(), 10, validApproval())
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if contract.Status != model.ContractStatusActive {
		t.Fatalf("status = %s, want active", contract.Status)
	}
	if stored := store.state.contracts[10]; stored.Status != model.ContractStatusActive {
		t.Fatalf("stored status = %s, want active", stored.Status)
	}

	if len(store.state.schedules) != 5 {
		t.Fatalf("schedules = %d, want 5", len(store.state.schedules))
	}
	for i, schedule := range store.state.schedules {
		want := date(2024, 2, 1+i)
		if !schedule.Date.Equal(want) {
			t.Errorf("schedule[%d].Date = %s, want %s", i, schedule.Date, want)
		}
		if schedule.StartTime != "08:00" || schedule.EndTime != "20:00" {
			t.Errorf("schedule[%d] shift = %s-%s", i, schedule.StartTime, schedule.EndTime)
		}
		if schedule.EmployeeID != 5 || schedule.GuardObjectID != 20 {
			t.Errorf("schedule[%d] assignment = employee %d, object %d", i, schedule.EmployeeID, schedule.GuardObjectID)
		}
		if !strings.Contains(schedule.Notes, "contract #10") {
			t.Errorf("schedule[%d].Notes = %q, want contract label", i, schedule.Notes)
		}
	}

	if len(store.state.notifications) != 2 {
		t.Fatalf("notifications = %d, want 2", len(store.state.notifications))
	}
	var clientN, employeeN *model.Notification
	for i := range store.state.notifications {
		n := &store.state.notifications[i]
		switch {
		case n.ClientID != nil && n.EmployeeID == nil:
			clientN = n
		case n.EmployeeID != nil && n.ClientID == nil:
			employeeN = n
		default:
			t.Fatalf("notification addressed to both or neither: %+v", n)
		}
	}
	if clientN == nil || employeeN == nil {
		t.Fatal("expected one client and one employee notification")
	}
	if clientN.Title != "Contract approved" {
		t.Errorf("client title = %q", clientN.Title)
	}
	if !strings.Contains(clientN.Message, "Stationary guard post") || !strings.Contains(clientN.Message, "01.02.2024") {
		t.Errorf("client message = %q", clientN.Message)
	}
	if employeeN.Title != "New guard assignment" {
		t.Errorf("employee title = %q", employeeN.Title)
	}
	if !strings.Contains(employeeN.Message, "08:00 - 20:00") {
		t.Errorf("employee message = %q", employeeN.Message)
	}

	if len(dispatcher.clientCalls) != 1 || len(dispatcher.employeeCalls) != 1 {
		t.Fatalf("dispatch calls = %d/%d, want 1/1", len(dispatcher.clientCalls), len(dispatcher.employeeCalls))
	}
	if dispatcher.clientCalls[0].ObjectName != "Warehouse 3" {
		t.Errorf("client message object = %q", dispatcher.clientCalls[0].ObjectName)
	}
	if dispatcher.employeeCalls[0].Notes != "No additional instructions" {
		t.Errorf("employee message notes = %q", dispatcher.employeeCalls[0].Notes)
	}
}

func TestApproveCapsScheduleAtSevenDays(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 3, 1), date(2024, 3, 30), true)
	svc := newTestService(store, &stubDispatcher{})

	if _, err := svc.Approve(context.Background(), 10, validApproval()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if len(store.state.schedules) != 7 {
		t.Fatalf("schedules = %d, want 7", len(store.state.schedules))
	}
	for i, schedule := range store.state.schedules {
		want := date(2024, 3, 1+i)
		if !schedule.Date.Equal(want) {
			t.Errorf("schedule[%d].Date = %s, want %s", i, schedule.Date, want)
		}
	}
}

func TestApproveMissingContract(t *testing.T) {
	svc := newTestService(newStubStore(), &stubDispatcher{})

	_, err := svc.Approve(context.Background(), 999, validApproval())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApproveNoGuardObject(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), false)
	svc := newTestService(store, &stubDispatcher{})

	_, err := svc.Approve(context.Background(), 10, validApproval())
	if !errors.Is(err, ErrPrerequisiteMissing) {
		t.Fatalf("expected ErrPrerequisiteMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "guard object") {
		t.Fatalf("error should name the guard object: %v", err)
	}
	if store.state.contracts[10].Status != model.ContractStatusPending {
		t.Fatal("contract must remain pending")
	}
	if len(store.state.schedules) != 0 || len(store.state.notifications) != 0 {
		t.Fatal("no rows may be created on failed approval")
	}
}

func TestApproveEmployeeNotSelected(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	svc := newTestService(store, &stubDispatcher{})

	input := validApproval()
	input.SecurityEmployeeID = 0
	_, err := svc.Approve(context.Background(), 10, input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApproveEmployeeNotFound(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	svc := newTestService(store, &stubDispatcher{})

	input := validApproval()
	input.SecurityEmployeeID = 777
	_, err := svc.Approve(context.Background(), 10, input)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "selected employee") {
		t.Fatalf("error should name the selected employee: %v", err)
	}
}

func TestApproveMissingShiftTimes(t *testing.T) {
	cases := []struct {
		name   string
		edit   func(*ApprovalInput)
		substr string
	}{
		{"no start", func(in *ApprovalInput) { in.ShiftStartTime = "" }, "start"},
		{"no end", func(in *ApprovalInput) { in.ShiftEndTime = "" }, "end"},
		{"bad format", func(in *ApprovalInput) { in.ShiftStartTime = "8 am" }, "HH:MM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubStore()
			seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
			svc := newTestService(store, &stubDispatcher{})

			input := validApproval()
			tc.edit(&input)
			_, err := svc.Approve(context.Background(), 10, input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Fatalf("error %q should mention %q", err, tc.substr)
			}
			if len(store.state.schedules) != 0 {
				t.Fatal("no schedules may survive a failed approval")
			}
		})
	}
}

func TestApproveAlreadyActive(t *testing.T) {
	store := newStubStore()
	contract := seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	contract.Status = model.ContractStatusActive
	svc := newTestService(store, &stubDispatcher{})

	_, err := svc.Approve(context.Background(), 10, validApproval())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestApproveConcurrentStatusFlip(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	store.fail.casConflict = true
	svc := newTestService(store, &stubDispatcher{})

	_, err := svc.Approve(context.Background(), 10, validApproval())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(store.state.schedules) != 0 || len(store.state.notifications) != 0 {
		t.Fatal("losing approval must not leave schedules or notifications behind")
	}
	if store.state.contracts[10].Status != model.ContractStatusPending {
		t.Fatal("contract status must be untouched in the caller's view")
	}
}

func TestApproveRollsBackOnScheduleFailure(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	store.fail.saveScheduleErrOn = 3
	dispatcher := &stubDispatcher{}
	svc := newTestService(store, dispatcher)

	_, err := svc.Approve(context.Background(), 10, validApproval())
	if err == nil {
		t.Fatal("expected approval to fail")
	}
	if len(store.state.schedules) != 0 || len(store.state.notifications) != 0 {
		t.Fatal("partial writes must be rolled back")
	}
	if store.state.contracts[10].Status != model.ContractStatusPending {
		t.Fatal("contract must remain pending")
	}
	if len(dispatcher.clientCalls) != 0 || len(dispatcher.employeeCalls) != 0 {
		t.Fatal("no confirmations may be dispatched for failed approvals")
	}
}

func TestApproveRollsBackOnNotificationFailure(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	store.fail.saveNotificationErrOn = 2
	svc := newTestService(store, &stubDispatcher{})

	_, err := svc.Approve(context.Background(), 10, validApproval())
	if err == nil {
		t.Fatal("expected approval to fail")
	}
	if len(store.state.schedules) != 0 || len(store.state.notifications) != 0 {
		t.Fatal("partial writes must be rolled back")
	}
	if store.state.contracts[10].Status != model.ContractStatusPending {
		t.Fatal("contract must remain pending")
	}
}

func TestApproveSurvivesDispatchFailure(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	dispatcher := &stubDispatcher{
		clientErr:   errors.New("smtp down"),
		employeeErr: errors.New("smtp down"),
	}
	svc := newTestService(store, dispatcher)

	contract, err := svc.Approve(context.Background(), 10, validApproval())
	if err != nil {
		t.Fatalf("Approve must not fail on dispatch errors: %v", err)
	}
	if contract.Status != model.ContractStatusActive {
		t.Fatalf("status = %s, want active", contract.Status)
	}
	if len(store.state.schedules) != 5 || len(store.state.notifications) != 2 {
		t.Fatalf("rows = %d schedules / %d notifications, want 5/2",
			len(store.state.schedules), len(store.state.notifications))
	}
	if len(dispatcher.clientCalls) != 1 || len(dispatcher.employeeCalls) != 1 {
		t.Fatal("both confirmations must still be attempted once")
	}
}

func TestApprovePicksFirstGuardObject(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	store.state.objects = append(store.state.objects, model.GuardObject{
		ID: 21, ClientID: 1, ContractID: 10, Name: "Office", Address: "2 Main St",
	})
	svc := newTestService(store, &stubDispatcher{})

	if _, err := svc.Approve(context.Background(), 10, validApproval()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	for _, schedule := range store.state.schedules {
		if schedule.GuardObjectID != 20 {
			t.Fatalf("schedule assigned to object %d, want first object 20", schedule.GuardObjectID)
		}
	}
}

// ---------------------------------------------------------------------------
// Contract CRUD
// ---------------------------------------------------------------------------

func TestCreateContractValidatesDates(t *testing.T) {
	store := newStubStore()
	store.state.clients[1] = &model.Client{ID: 1}
	store.state.services[1] = &model.SecurityService{ID: 1}
	svc := newTestService(store, &stubDispatcher{}) // now = 2024-01-20

	_, err := svc.CreateContract(context.Background(), ContractInput{
		ClientID: 1, ServiceID: 1,
		StartDate: date(2024, 1, 10), EndDate: date(2024, 2, 1),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("past start date: expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.CreateContract(context.Background(), ContractInput{
		ClientID: 1, ServiceID: 1,
		StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 1),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("end not after start: expected ErrInvalidInput, got %v", err)
	}

	contract, err := svc.CreateContract(context.Background(), ContractInput{
		ClientID: 1, ServiceID: 1,
		StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 5),
		TotalAmount: 42000,
	})
	if err != nil {
		t.Fatalf("CreateContract: %v", err)
	}
	if contract.Status != model.ContractStatusPending {
		t.Fatalf("new contract status = %s, want pending", contract.Status)
	}
}

func TestUpdateContractOnlyWhilePending(t *testing.T) {
	store := newStubStore()
	contract := seedContract(store, date(2024, 2, 1), date(2024, 2, 5), true)
	contract.Status = model.ContractStatusActive
	svc := newTestService(store, &stubDispatcher{})

	_, err := svc.UpdateContract(context.Background(), 10, ContractInput{
		StartDate: date(2024, 2, 2), EndDate: date(2024, 2, 6),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAddGuardObjectEnforcesClientMatch(t *testing.T) {
	store := newStubStore()
	seedContract(store, date(2024, 2, 1), date(2024, 2, 5), false)
	svc := newTestService(store, &stubDispatcher{})

	_, err := svc.AddGuardObject(context.Background(), 10, model.GuardObject{
		ClientID: 99, Name: "Depot", Address: "5 Rail St",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("mismatched client: expected ErrInvalidInput, got %v", err)
	}

	object, err := svc.AddGuardObject(context.Background(), 10, model.GuardObject{
		Name: "Depot", Address: "5 Rail St",
	})
	if err != nil {
		t.Fatalf("AddGuardObject: %v", err)
	}
	if object.ClientID != 1 || object.ContractID != 10 {
		t.Fatalf("object links = client %d, contract %d", object.ClientID, object.ContractID)
	}
}
