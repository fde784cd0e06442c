package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"payments-service/internal/domain"
	"payments-service/internal/pix"
	"payments-service/internal/repository"
	"payments-service/pkg/id"
	"payments-service/pkg/xerrors"
)

// Customer-facing status messages, kept verbatim from the store.
const (
	msgCardApproved   = "Pagamento com cartão aprovado."
	msgPixCreated     = "PIX gerado com sucesso. Aguardando confirmação do pagamento."
	msgPixConfirmed   = "Pagamento PIX confirmado com sucesso."
	msgPixAlreadyDone = "Pagamento PIX já estava confirmado."
)

// PaymentUsecase builds payment intents and drives the confirmation protocol
// over the ledger.
type PaymentUsecase struct {
	ledger  repository.Ledger
	auditor Auditor
	pix     *pix.Generator
	logger  *zap.Logger

	now func() time.Time
}

func NewPaymentUsecase(
	ledger repository.Ledger,
	auditor Auditor,
	pixGen *pix.Generator,
	logger *zap.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		ledger:  ledger,
		auditor: auditor,
		pix:     pixGen,
		logger:  logger,
		now:     time.Now,
	}
}

// Options returns the static payment catalogue.
func (uc *PaymentUsecase) Options() domain.PaymentOptions {
	return domain.DefaultPaymentOptions()
}

// Create validates the request, builds the transaction for the requested
// method and persists it. Card payments are approved immediately; PIX
// payments start pending with generated artifacts.
func (uc *PaymentUsecase) Create(ctx context.Context, req *domain.CreatePaymentRequest, caller domain.Caller, meta domain.RequestMeta) (*domain.Transaction, error) {
	if err := req.Validate(); err != nil {
		uc.logger.Warn("payment request rejected",
			zap.String("method", string(req.Method)),
			zap.String("gateway", req.Gateway),
			zap.String("user_email", caller.Email),
			zap.Error(err))
		return nil, err
	}

	tx := &domain.Transaction{
		ID:         id.NewTransactionID(),
		Method:     req.Method,
		Gateway:    req.Gateway,
		Amount:     req.Amount,
		Currency:   req.Currency,
		OwnerEmail: caller.Email,
		CreatedAt:  uc.now().UTC(),
	}

	switch req.Method {
	case domain.MethodPix:
		artifacts := uc.pix.Generate(req.Amount)
		tx.Status = domain.StatusPending
		tx.Message = msgPixCreated
		tx.Pix = &domain.PixPayment{
			PixKey:     artifacts.Key,
			QRCodeText: artifacts.Payload,
			QRCodeURL:  artifacts.ImageURL,
			ExpiresAt:  artifacts.ExpiresAt,
		}
	default:
		tx.Status = domain.StatusApproved
		tx.Message = msgCardApproved
	}

	if err := uc.ledger.Store(ctx, tx); err != nil {
		// A duplicate id means the uniqueness guarantee broke; log loudly.
		uc.logger.Error("failed to store transaction",
			zap.String("transaction_id", tx.ID),
			zap.Error(err))
		return nil, fmt.Errorf("store transaction: %w", err)
	}

	uc.logger.Info("payment created",
		zap.String("transaction_id", tx.ID),
		zap.String("method", string(tx.Method)),
		zap.String("gateway", tx.Gateway),
		zap.String("status", string(tx.Status)),
		zap.String("user_email", caller.Email))

	amount, _ := tx.Amount.Float64()
	recordActivity(ctx, uc.auditor, uc.logger, &domain.ActivityRecord{
		UserEmail: caller.Email,
		Action:    domain.ActionPaymentCreate,
		Entity:    "payment",
		EntityID:  tx.ID,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Metadata: map[string]interface{}{
			"method":  string(tx.Method),
			"amount":  amount,
			"gateway": tx.Gateway,
		},
	})

	return tx, nil
}

// Get returns a transaction to its owner or to a backoffice caller.
func (uc *PaymentUsecase) Get(ctx context.Context, transactionID string, caller domain.Caller) (*domain.Transaction, error) {
	tx, err := uc.ledger.Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !caller.CanView(tx.OwnerEmail) {
		return nil, xerrors.ErrForbidden
	}
	return tx, nil
}

// Confirm runs the PIX confirmation protocol. The checks run in a fixed
// order inside the ledger's per-id critical section: authorization, method,
// expiry, then the already-approved shortcut. Expiry is evaluated before the
// shortcut, so a transaction confirmed in time but re-confirmed after its
// window has elapsed is rejected as expired.
func (uc *PaymentUsecase) Confirm(ctx context.Context, transactionID string, caller domain.Caller, meta domain.RequestMeta) (*domain.ConfirmationResult, error) {
	var transitioned bool
	tx, err := uc.ledger.Update(ctx, transactionID, func(t *domain.Transaction) error {
		transitioned = false

		if !caller.CanConfirm(t.OwnerEmail) {
			return xerrors.ErrForbidden
		}
		if t.Method != domain.MethodPix {
			return xerrors.ErrConfirmNotSupported
		}
		if t.Pix != nil && uc.now().After(t.Pix.ExpiresAt) {
			return xerrors.ErrPixExpired
		}
		if t.Status == domain.StatusApproved {
			return nil
		}

		t.Status = domain.StatusApproved
		t.Message = msgPixConfirmed
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := msgPixAlreadyDone
	if transitioned {
		message = msgPixConfirmed

		uc.logger.Info("pix payment confirmed",
			zap.String("transaction_id", tx.ID),
			zap.String("user_email", caller.Email))

		recordActivity(ctx, uc.auditor, uc.logger, &domain.ActivityRecord{
			UserEmail: caller.Email,
			Action:    domain.ActionPaymentPixConfirm,
			Entity:    "payment",
			EntityID:  tx.ID,
			ClientIP:  meta.ClientIP,
			UserAgent: meta.UserAgent,
		})
	}

	return &domain.ConfirmationResult{
		TransactionID: tx.ID,
		Status:        tx.Status,
		Message:       message,
	}, nil
}
