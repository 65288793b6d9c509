package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/krosec/sec-guard/internal/service"
)

// Store implements service.Store on Postgres. Absent rows are reported as
// nil results, not errors; the service layer owns the NotFound decision.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomically runs fn against a transaction-scoped Store. A returned error
// rolls back every write made through tx.
func (s *Store) Atomically(ctx context.Context, fn func(tx service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
