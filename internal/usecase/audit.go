package usecase

import (
	"context"

	"go.uber.org/zap"

	"payments-service/internal/domain"
)

// Auditor accepts structured activity records. The pgx-backed
// repository.ActivityLogRepository satisfies it in production.
type Auditor interface {
	Record(ctx context.Context, entry *domain.ActivityRecord) error
}

// recordActivity writes the audit entry synchronously, before the caller
// returns success. A failed write is logged and swallowed: the ledger
// mutation has already committed and the two are deliberately not
// transactional, so a crash or error between them loses the audit row.
func recordActivity(ctx context.Context, auditor Auditor, logger *zap.Logger, entry *domain.ActivityRecord) {
	if err := auditor.Record(ctx, entry); err != nil {
		logger.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
			zap.String("user_email", entry.UserEmail),
			zap.Error(err))
	}
}
