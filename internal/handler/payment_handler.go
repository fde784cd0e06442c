package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"payments-service/internal/domain"
	"payments-service/internal/middleware"
	"payments-service/internal/usecase"
	"payments-service/pkg/response"
	"payments-service/pkg/xerrors"
)

type PaymentHandler struct {
	paymentUC *usecase.PaymentUsecase
	logger    *zap.Logger
}

func NewPaymentHandler(paymentUC *usecase.PaymentUsecase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
		logger:    logger,
	}
}

// ListOptions serves the static payment catalogue.
func (h *PaymentHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.paymentUC.Options())
}

// CreatePayment handles POST /payments.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req domain.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode payment request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.paymentUC.Create(r.Context(), &req, caller, requestMeta(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, tx)
}

// GetPayment handles GET /payments/{transaction_id}.
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tx, err := h.paymentUC.Get(r.Context(), chi.URLParam(r, "transaction_id"), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tx)
}

// ConfirmPayment handles POST /payments/{transaction_id}/confirm.
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.paymentUC.Confirm(r.Context(), chi.URLParam(r, "transaction_id"), caller, requestMeta(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrCardDataRequired),
		errors.Is(err, xerrors.ErrInvalidMethod),
		errors.Is(err, xerrors.ErrUnknownGateway),
		errors.Is(err, xerrors.ErrInvalidAmount):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, xerrors.ErrTransactionNotFound):
		response.Error(w, http.StatusNotFound, "Transação não encontrada.")
	case errors.Is(err, xerrors.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Sem permissão para acessar este pagamento.")
	case errors.Is(err, xerrors.ErrConfirmNotSupported):
		response.Error(w, http.StatusBadRequest, "Somente pagamentos PIX podem ser confirmados por este endpoint.")
	case errors.Is(err, xerrors.ErrPixExpired):
		response.Error(w, http.StatusBadRequest, "PIX expirado.")
	default:
		h.logger.Error("payment request failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func requestMeta(r *http.Request) domain.RequestMeta {
	return domain.RequestMeta{
		ClientIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
