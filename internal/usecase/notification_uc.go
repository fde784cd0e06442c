package usecase

import (
	"context"

	"go.uber.org/zap"

	"payments-service/internal/domain"
	"payments-service/internal/repository"
)

type NotificationUsecase struct {
	notifications repository.NotificationRepository
	auditor       Auditor
	logger        *zap.Logger
}

func NewNotificationUsecase(
	notifications repository.NotificationRepository,
	auditor Auditor,
	logger *zap.Logger,
) *NotificationUsecase {
	return &NotificationUsecase{
		notifications: notifications,
		auditor:       auditor,
		logger:        logger,
	}
}

// List returns the caller's feed, newest first. Backoffice roles share the
// admin feed.
func (uc *NotificationUsecase) List(ctx context.Context, caller domain.Caller) ([]*domain.Notification, error) {
	return uc.notifications.ListByRole(ctx, domain.NotificationAudience(caller))
}

// MarkAllRead flags every unread notification in the caller's feed and
// records the action.
func (uc *NotificationUsecase) MarkAllRead(ctx context.Context, caller domain.Caller, meta domain.RequestMeta) (int64, error) {
	audience := domain.NotificationAudience(caller)

	updated, err := uc.notifications.MarkAllRead(ctx, audience)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("notifications marked read",
		zap.String("role", audience),
		zap.Int64("count", updated),
		zap.String("user_email", caller.Email))

	recordActivity(ctx, uc.auditor, uc.logger, &domain.ActivityRecord{
		UserEmail: caller.Email,
		Action:    domain.ActionNotificationsMarkRead,
		Entity:    "notification",
		EntityID:  "all",
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Metadata: map[string]interface{}{
			"role":  audience,
			"count": updated,
		},
	})

	return updated, nil
}
