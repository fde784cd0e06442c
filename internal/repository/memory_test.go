package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"payments-service/internal/domain"
	"payments-service/pkg/xerrors"
)

func newTestTransaction(id string) *domain.Transaction {
	return &domain.Transaction{
		ID:         id,
		Method:     domain.MethodPix,
		Gateway:    "pagseguro",
		Amount:     decimal.RequireFromString("19.90"),
		Currency:   "BRL",
		Status:     domain.StatusPending,
		OwnerEmail: "maria@example.com",
		Pix:        &domain.PixPayment{PixKey: "key-" + id},
	}
}

func TestMemoryLedgerStoreAndGet(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	tx := newTestTransaction("txn_1")
	if err := ledger.Store(ctx, tx); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := ledger.Get(ctx, "txn_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != tx.ID || got.OwnerEmail != tx.OwnerEmail {
		t.Errorf("got %+v, want stored transaction", got)
	}

	// Mutating the returned copy must not leak into the store.
	got.Status = domain.StatusApproved
	again, _ := ledger.Get(ctx, "txn_1")
	if again.Status != domain.StatusPending {
		t.Error("Get must return an isolated copy")
	}
}

func TestMemoryLedgerDuplicateStore(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	if err := ledger.Store(ctx, newTestTransaction("txn_1")); err != nil {
		t.Fatalf("store: %v", err)
	}
	err := ledger.Store(ctx, newTestTransaction("txn_1"))
	if !errors.Is(err, xerrors.ErrDuplicateTransaction) {
		t.Errorf("expected ErrDuplicateTransaction, got %v", err)
	}
}

func TestMemoryLedgerGetUnknown(t *testing.T) {
	ledger := NewMemoryLedger()

	_, err := ledger.Get(context.Background(), "txn_missing")
	if !errors.Is(err, xerrors.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestMemoryLedgerUpdateUnknown(t *testing.T) {
	ledger := NewMemoryLedger()

	_, err := ledger.Update(context.Background(), "txn_missing", func(*domain.Transaction) error {
		t.Fatal("fn must not run for a missing id")
		return nil
	})
	if !errors.Is(err, xerrors.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestMemoryLedgerUpdateAborted(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	if err := ledger.Store(ctx, newTestTransaction("txn_1")); err != nil {
		t.Fatalf("store: %v", err)
	}

	boom := errors.New("boom")
	_, err := ledger.Update(ctx, "txn_1", func(tx *domain.Transaction) error {
		tx.Status = domain.StatusApproved
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	got, _ := ledger.Get(ctx, "txn_1")
	if got.Status != domain.StatusPending {
		t.Error("a failed update must not persist the mutation")
	}
}

func TestMemoryLedgerUpdateSerializesPerID(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	if err := ledger.Store(ctx, newTestTransaction("txn_1")); err != nil {
		t.Fatalf("store: %v", err)
	}

	// Each goroutine performs a read-modify-write; with per-id serialization
	// every increment survives.
	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Update(ctx, "txn_1", func(tx *domain.Transaction) error {
				tx.Message = fmt.Sprintf("%d", mustAtoi(tx.Message)+1)
				return nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := ledger.Get(ctx, "txn_1")
	if mustAtoi(got.Message) != workers {
		t.Errorf("lost updates: counter = %s, want %d", got.Message, workers)
	}
}

func mustAtoi(s string) int {
	if s == "" {
		return 0
	}
	var n int
	_, _ = fmt.Sscanf(s, "%d", &n)
	return n
}
