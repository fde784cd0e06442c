package handler

import (
	"net/http"

	"go.uber.org/zap"

	"payments-service/internal/middleware"
	"payments-service/internal/usecase"
	"payments-service/pkg/response"
)

type NotificationHandler struct {
	notificationUC *usecase.NotificationUsecase
	logger         *zap.Logger
}

func NewNotificationHandler(notificationUC *usecase.NotificationUsecase, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: notificationUC,
		logger:         logger,
	}
}

// ListNotifications handles GET /notifications.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	notifications, err := h.notificationUC.List(r.Context(), caller)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response.JSON(w, http.StatusOK, notifications)
}

// MarkNotificationsRead handles PATCH /notifications/read.
func (h *NotificationHandler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	count, err := h.notificationUC.MarkAllRead(r.Context(), caller, requestMeta(r))
	if err != nil {
		h.logger.Error("failed to mark notifications read", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Notificações marcadas como lidas.",
		"count":   count,
	})
}
