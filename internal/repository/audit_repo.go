package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"payments-service/internal/domain"
	"payments-service/pkg/id"
)

// ActivityLogRepository persists the store's audit trail in Postgres.
type ActivityLogRepository interface {
	Record(ctx context.Context, entry *domain.ActivityRecord) error
	ListRecentByUser(ctx context.Context, userEmail string, limit int) ([]*domain.ActivityRecord, error)
}

type activityLogRepo struct {
	db *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Record(ctx context.Context, entry *domain.ActivityRecord) error {
	query := `
		INSERT INTO activity_log (
			id, user_email, action, entity, entity_id,
			client_ip, user_agent, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	if entry.ID == "" {
		entry.ID = id.NewActivityID()
	}

	metadataJSON, _ := json.Marshal(entry.Metadata)

	err := r.db.QueryRow(ctx, query,
		entry.ID,
		entry.UserEmail,
		entry.Action,
		entry.Entity,
		entry.EntityID,
		nullable(entry.ClientIP),
		nullable(entry.UserAgent),
		metadataJSON,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity record: %w", err)
	}
	return nil
}

func (r *activityLogRepo) ListRecentByUser(ctx context.Context, userEmail string, limit int) ([]*domain.ActivityRecord, error) {
	query := `
		SELECT id, user_email, action, entity, entity_id,
		       COALESCE(client_ip, ''), COALESCE(user_agent, ''), metadata, created_at
		FROM activity_log
		WHERE user_email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userEmail, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity records: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ActivityRecord
	for rows.Next() {
		var entry domain.ActivityRecord
		var metadataJSON []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.UserEmail,
			&entry.Action,
			&entry.Entity,
			&entry.EntityID,
			&entry.ClientIP,
			&entry.UserAgent,
			&metadataJSON,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity record: %w", err)
		}
		if len(metadataJSON) > 0 {
			_ = json.Unmarshal(metadataJSON, &entry.Metadata)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
