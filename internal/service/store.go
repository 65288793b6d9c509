package service

import (
	"context"
	"time"

	"github.com/krosec/sec-guard/internal/model"
)

// Store is the entity storage the services run against. Atomically groups
// writes into one all-or-nothing unit of work; the Store passed to fn is
// transaction-scoped.
type Store interface {
	Atomically(ctx context.Context, fn func(tx Store) error) error

	FindContractByID(ctx context.Context, id int64) (*model.Contract, error)
	ListContracts(ctx context.Context) ([]model.Contract, error)
	ListContractsByClientID(ctx context.Context, clientID int64) ([]model.Contract, error)
	ListContractsByStatus(ctx context.Context, status model.ContractStatus) ([]model.Contract, error)
	ListContractsCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Contract, error)
	SaveContract(ctx context.Context, contract *model.Contract) error
	DeleteContract(ctx context.Context, id int64) error

	// UpdateContractStatus flips the status only if the stored value still
	// equals from (compare-and-swap). Returns ErrConflict otherwise.
	UpdateContractStatus(ctx context.Context, id int64, from, to model.ContractStatus) error

	FindClientByID(ctx context.Context, id int64) (*model.Client, error)
	FindServiceByID(ctx context.Context, id int64) (*model.SecurityService, error)

	FindEmployeeByID(ctx context.Context, id int64) (*model.Employee, error)
	FindEmployeeByLogin(ctx context.Context, login string) (*model.Employee, error)
	ListEmployeesByPosition(ctx context.Context, position string) ([]model.Employee, error)

	FindGuardObjectsByContractID(ctx context.Context, contractID int64) ([]model.GuardObject, error)
	SaveGuardObject(ctx context.Context, object *model.GuardObject) error

	ListSchedulesByContractID(ctx context.Context, contractID int64) ([]model.Schedule, error)
	SaveSchedule(ctx context.Context, schedule *model.Schedule) error

	ListNotificationsByClientID(ctx context.Context, clientID int64, unreadOnly bool) ([]model.Notification, error)
	CountUnreadByClientID(ctx context.Context, clientID int64) (int64, error)
	SaveNotification(ctx context.Context, notification *model.Notification) error
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context, clientID int64) error
	DeleteNotification(ctx context.Context, id int64) error
}
