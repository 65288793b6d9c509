package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/krosec/sec-guard/internal/model"
	"github.com/krosec/sec-guard/internal/service"
)

type contractRow struct {
	ID           int64
	ClientID     *int64
	ServiceID    *int64
	StartDate    time.Time
	EndDate      time.Time
	TotalAmount  float64
	Status       string
	CreatedAt    time.Time
	ClientLast   *string
	ClientFirst  *string
	ClientPatro  *string
	ClientPhone  *string
	ClientEmail  *string
	ClientAddr   *string
	ServiceName  *string
	ServiceDesc  *string
	ServicePrice *float64
}

const contractSelect = `
	SELECT
		c.id,
		c.client_id,
		c.service_id,
		c.start_date,
		c.end_date,
		c.total_amount,
		c.status,
		c.created_at,
		cl.last_name AS client_last,
		cl.first_name AS client_first,
		cl.patronymic AS client_patro,
		cl.phone AS client_phone,
		cl.email AS client_email,
		cl.address AS client_addr,
		s.name AS service_name,
		s.description AS service_desc,
		s.price AS service_price
	FROM contracts c
	LEFT JOIN clients cl ON cl.id = c.client_id
	LEFT JOIN security_services s ON s.id = c.service_id
`

func (row contractRow) toModel() (model.Contract, error) {
	status, err := model.ParseContractStatus(row.Status)
	if err != nil {
		return model.Contract{}, fmt.Errorf("contract %d: %w", row.ID, err)
	}

	contract := model.Contract{
		ID:          row.ID,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		TotalAmount: row.TotalAmount,
		Status:      status,
		CreatedAt:   row.CreatedAt,
	}
	if row.ClientID != nil {
		contract.Client = &model.Client{
			ID:         *row.ClientID,
			LastName:   deref(row.ClientLast),
			FirstName:  deref(row.ClientFirst),
			Patronymic: deref(row.ClientPatro),
			Phone:      deref(row.ClientPhone),
			Email:      deref(row.ClientEmail),
			Address:    deref(row.ClientAddr),
		}
	}
	if row.ServiceID != nil {
		contract.Service = &model.SecurityService{
			ID:          *row.ServiceID,
			Name:        deref(row.ServiceName),
			Description: deref(row.ServiceDesc),
		}
		if row.ServicePrice != nil {
			contract.Service.Price = *row.ServicePrice
		}
	}
	return contract, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Store) FindContractByID(ctx context.Context, id int64) (*model.Contract, error) {
	var row contractRow
	err := s.db.WithContext(ctx).Raw(contractSelect+` WHERE c.id = ? LIMIT 1`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	contract, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (s *Store) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return s.listContracts(ctx, contractSelect+` ORDER BY c.id ASC`)
}

func (s *Store) ListContractsByClientID(ctx context.Context, clientID int64) ([]model.Contract, error) {
	return s.listContracts(ctx, contractSelect+` WHERE c.client_id = ? ORDER BY c.id ASC`, clientID)
}

func (s *Store) ListContractsByStatus(ctx context.Context, status model.ContractStatus) ([]model.Contract, error) {
	return s.listContracts(ctx, contractSelect+` WHERE c.status = ? ORDER BY c.id ASC`, string(status))
}

func (s *Store) ListContractsCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Contract, error) {
	return s.listContracts(ctx,
		contractSelect+` WHERE c.created_at >= ? AND c.created_at < ? ORDER BY c.created_at ASC`,
		from, to)
}

func (s *Store) listContracts(ctx context.Context, query string, args ...interface{}) ([]model.Contract, error) {
	var rows []contractRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	contracts := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		contract, err := row.toModel()
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

func (s *Store) SaveContract(ctx context.Context, contract *model.Contract) error {
	var clientID, serviceID *int64
	if contract.Client != nil {
		clientID = &contract.Client.ID
	}
	if contract.Service != nil {
		serviceID = &contract.Service.ID
	}

	if contract.ID == 0 {
		return s.db.WithContext(ctx).Raw(`
			INSERT INTO contracts (client_id, service_id, start_date, end_date, total_amount, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`, clientID, serviceID, contract.StartDate, contract.EndDate,
			contract.TotalAmount, string(contract.Status), contract.CreatedAt,
		).Scan(&contract.ID).Error
	}

	return s.db.WithContext(ctx).Exec(`
		UPDATE contracts
		SET client_id = ?, service_id = ?, start_date = ?, end_date = ?, total_amount = ?
		WHERE id = ?
	`, clientID, serviceID, contract.StartDate, contract.EndDate,
		contract.TotalAmount, contract.ID,
	).Error
}

func (s *Store) DeleteContract(ctx context.Context, id int64) error {
	// guard_objects and their schedules cascade at the schema level
	return s.db.WithContext(ctx).Exec(`DELETE FROM contracts WHERE id = ?`, id).Error
}

// UpdateContractStatus is the compare-and-swap guarding the approval
// transition: the update applies only while the stored status still equals
// from, so a lost-update race surfaces as ErrConflict instead of a double
// approval.
func (s *Store) UpdateContractStatus(ctx context.Context, id int64, from, to model.ContractStatus) error {
	result := s.db.WithContext(ctx).Exec(`
		UPDATE contracts SET status = ? WHERE id = ? AND status = ?
	`, string(to), id, string(from))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: contract %d is no longer %s", service.ErrConflict, id, from)
	}
	return nil
}

func (s *Store) FindClientByID(ctx context.Context, id int64) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).Raw(`
		SELECT id, last_name, first_name, patronymic, phone, email, address
		FROM clients
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, nil
	}
	return &client, nil
}

func (s *Store) FindServiceByID(ctx context.Context, id int64) (*model.SecurityService, error) {
	var svc model.SecurityService
	err := s.db.WithContext(ctx).Raw(`
		SELECT id, name, description, price
		FROM security_services
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&svc).Error
	if err != nil {
		return nil, err
	}
	if svc.ID == 0 {
		return nil, nil
	}
	return &svc, nil
}

func (s *Store) FindGuardObjectsByContractID(ctx context.Context, contractID int64) ([]model.GuardObject, error) {
	var objects []model.GuardObject
	err := s.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contract_id, name, address,
			COALESCE(latitude, 0) AS latitude,
			COALESCE(longitude, 0) AS longitude,
			COALESCE(description, '') AS description
		FROM guard_objects
		WHERE contract_id = ?
		ORDER BY id ASC
	`, contractID).Scan(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}

func (s *Store) SaveGuardObject(ctx context.Context, object *model.GuardObject) error {
	if object.ID == 0 {
		return s.db.WithContext(ctx).Raw(`
			INSERT INTO guard_objects (client_id, contract_id, name, address, latitude, longitude, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`, object.ClientID, object.ContractID, object.Name, object.Address,
			object.Latitude, object.Longitude, object.Description,
		).Scan(&object.ID).Error
	}

	return s.db.WithContext(ctx).Exec(`
		UPDATE guard_objects
		SET name = ?, address = ?, latitude = ?, longitude = ?, description = ?
		WHERE id = ?
	`, object.Name, object.Address, object.Latitude, object.Longitude,
		object.Description, object.ID,
	).Error
}
