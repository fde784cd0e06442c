package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"payments-service/internal/domain"
	"payments-service/pkg/xerrors"
)

const ledgerKeyPrefix = "payments:txn:"

// redisMaxRetries bounds the optimistic-concurrency retry loop in Update.
// A retry only happens when another writer touched the same id between the
// watched read and the queued write.
const redisMaxRetries = 8

// RedisLedger stores transactions as JSON values in Redis. Update relies on
// WATCH for the per-id read-check-write atomicity the confirmation protocol
// needs; records carry no TTL because expiry is a business rule checked at
// confirmation time, not a storage concern.
type RedisLedger struct {
	client *redis.Client
}

type redisRecord struct {
	domain.Transaction
	OwnerEmail string `json:"owner_email"`
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (l *RedisLedger) Store(ctx context.Context, tx *domain.Transaction) error {
	raw, err := json.Marshal(redisRecord{Transaction: *tx, OwnerEmail: tx.OwnerEmail})
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}

	ok, err := l.client.SetNX(ctx, ledgerKeyPrefix+tx.ID, raw, 0).Result()
	if err != nil {
		return fmt.Errorf("store transaction: %w", err)
	}
	if !ok {
		return xerrors.ErrDuplicateTransaction
	}
	return nil
}

func (l *RedisLedger) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	raw, err := l.client.Get(ctx, ledgerKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, xerrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	return decodeRecord(raw)
}

func (l *RedisLedger) Update(ctx context.Context, id string, fn func(*domain.Transaction) error) (*domain.Transaction, error) {
	key := ledgerKeyPrefix + id

	var updated *domain.Transaction
	apply := func(rtx *redis.Tx) error {
		raw, err := rtx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return xerrors.ErrTransactionNotFound
		}
		if err != nil {
			return fmt.Errorf("load transaction: %w", err)
		}

		tx, err := decodeRecord(raw)
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			return err
		}

		out, err := json.Marshal(redisRecord{Transaction: *tx, OwnerEmail: tx.OwnerEmail})
		if err != nil {
			return fmt.Errorf("marshal transaction: %w", err)
		}

		_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = tx
		return nil
	}

	for i := 0; i < redisMaxRetries; i++ {
		err := l.client.Watch(ctx, apply, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("update transaction %s: too many concurrent writers", id)
}

func decodeRecord(raw []byte) (*domain.Transaction, error) {
	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	tx := rec.Transaction
	tx.OwnerEmail = rec.OwnerEmail
	return &tx, nil
}
