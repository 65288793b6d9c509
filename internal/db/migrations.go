package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('pending', 'active', 'terminated');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		last_name VARCHAR(100) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		patronymic VARCHAR(100),
		phone VARCHAR(32),
		email VARCHAR(255) NOT NULL,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS employees (
		id BIGSERIAL PRIMARY KEY,
		last_name VARCHAR(100) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		patronymic VARCHAR(100),
		phone VARCHAR(32),
		email VARCHAR(255),
		login VARCHAR(100) NOT NULL UNIQUE,
		position VARCHAR(100) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS security_services (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price NUMERIC(18,2) NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT REFERENCES clients(id),
		service_id BIGINT REFERENCES security_services(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
		status contract_status NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date > start_date)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS guard_objects (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id),
		contract_id BIGINT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		address TEXT NOT NULL,
		latitude NUMERIC(10,7),
		longitude NUMERIC(10,7),
		description TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_guard_objects_contract_id ON guard_objects (contract_id);`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		guard_object_id BIGINT NOT NULL REFERENCES guard_objects(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		notes TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_guard_object_id ON schedules (guard_object_id);`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_employee_date ON schedules (employee_id, date);`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT REFERENCES employees(id) ON DELETE CASCADE,
		client_id BIGINT REFERENCES clients(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		CHECK ((employee_id IS NULL) <> (client_id IS NULL))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_client_unread ON notifications (client_id) WHERE is_read = FALSE;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
