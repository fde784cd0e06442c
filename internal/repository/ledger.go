package repository

import (
	"context"

	"payments-service/internal/domain"
)

// Ledger is the keyed store of payment transactions. Implementations must
// serialize Update calls per transaction id: the closure runs as an atomic
// read-check-write, and updates on distinct ids must not contend with each
// other.
type Ledger interface {
	// Store inserts a new record. A duplicate id fails with
	// xerrors.ErrDuplicateTransaction; given the builder's id entropy that is
	// an internal invariant violation, not a user error.
	Store(ctx context.Context, tx *domain.Transaction) error

	// Get returns a copy of the record, or xerrors.ErrTransactionNotFound.
	Get(ctx context.Context, id string) (*domain.Transaction, error)

	// Update loads the record, runs fn on a private copy under per-id mutual
	// exclusion and persists the copy when fn returns nil. Any error from fn
	// aborts the write and is returned as-is. The persisted copy is returned.
	Update(ctx context.Context, id string, fn func(*domain.Transaction) error) (*domain.Transaction, error)
}
