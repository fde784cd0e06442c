package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"payments-service/internal/domain"
)

// NotificationRepository reads and updates the role-scoped notification feeds.
type NotificationRepository interface {
	ListByRole(ctx context.Context, role string) ([]*domain.Notification, error)
	MarkAllRead(ctx context.Context, role string) (int64, error)
}

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) ListByRole(ctx context.Context, role string) ([]*domain.Notification, error) {
	query := `
		SELECT id, role, title, message, read, created_at
		FROM notifications
		WHERE role = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Role, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, role string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE role = $1 AND read = FALSE`, role)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
