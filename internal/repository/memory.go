package repository

import (
	"context"
	"hash/fnv"
	"sync"

	"payments-service/internal/domain"
	"payments-service/pkg/xerrors"
)

const ledgerStripes = 64

// MemoryLedger keeps transactions for the process lifetime, matching the
// store's original in-process payment store. Records are guarded by a striped
// set of per-id mutexes so confirmations of different transactions do not
// serialize behind a single lock.
type MemoryLedger struct {
	mu      sync.RWMutex
	records map[string]*domain.Transaction

	stripes [ledgerStripes]sync.Mutex
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		records: make(map[string]*domain.Transaction),
	}
}

func (l *MemoryLedger) Store(_ context.Context, tx *domain.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.records[tx.ID]; exists {
		return xerrors.ErrDuplicateTransaction
	}
	l.records[tx.ID] = tx.Clone()
	return nil
}

func (l *MemoryLedger) Get(_ context.Context, id string) (*domain.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tx, ok := l.records[id]
	if !ok {
		return nil, xerrors.ErrTransactionNotFound
	}
	return tx.Clone(), nil
}

func (l *MemoryLedger) Update(_ context.Context, id string, fn func(*domain.Transaction) error) (*domain.Transaction, error) {
	stripe := l.stripeFor(id)
	stripe.Lock()
	defer stripe.Unlock()

	l.mu.RLock()
	tx, ok := l.records[id]
	l.mu.RUnlock()
	if !ok {
		return nil, xerrors.ErrTransactionNotFound
	}

	cp := tx.Clone()
	if err := fn(cp); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.records[id] = cp
	l.mu.Unlock()

	return cp.Clone(), nil
}

func (l *MemoryLedger) stripeFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &l.stripes[h.Sum32()%ledgerStripes]
}
