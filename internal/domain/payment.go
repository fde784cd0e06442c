package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"payments-service/pkg/xerrors"
)

type PaymentMethod string
type PaymentStatus string

const (
	MethodCard PaymentMethod = "card"
	MethodPix  PaymentMethod = "pix"
)

const (
	StatusPending  PaymentStatus = "pending"
	StatusApproved PaymentStatus = "approved"
)

// Gateways and card brands the store accepts. The service never settles with
// any of them; the gateway is carried as an identifier only.
var (
	Gateways   = []string{"pagseguro", "mercadopago", "stripe", "paypal"}
	CardBrands = []string{"visa", "mastercard", "elo", "amex", "hipercard"}
)

type CardDetails struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	CVV        string `json:"cvv"`
	Brand      string `json:"brand,omitempty"`
}

type CreatePaymentRequest struct {
	Method   PaymentMethod   `json:"method"`
	Gateway  string          `json:"gateway"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Card     *CardDetails    `json:"card,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	if r.Method != MethodCard && r.Method != MethodPix {
		return xerrors.ErrInvalidMethod
	}
	if !knownGateway(r.Gateway) {
		return xerrors.ErrUnknownGateway
	}
	if !r.Amount.IsPositive() {
		return xerrors.ErrInvalidAmount
	}
	if r.Currency == "" {
		r.Currency = "BRL"
	}
	if r.Method == MethodCard && (r.Card == nil || r.Card.Number == "") {
		return xerrors.ErrCardDataRequired
	}
	return nil
}

func knownGateway(gateway string) bool {
	for _, g := range Gateways {
		if g == gateway {
			return true
		}
	}
	return false
}

// PixPayment holds the artifacts a customer needs to pay a pending PIX charge.
type PixPayment struct {
	PixKey     string    `json:"pix_key"`
	QRCodeText string    `json:"qr_code_text"`
	QRCodeURL  string    `json:"qr_code_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Transaction is the ledger's unit of record for one payment attempt.
// Everything except Status and Message is immutable after creation; Pix is
// set if and only if Method is pix.
type Transaction struct {
	ID         string          `json:"transaction_id"`
	Method     PaymentMethod   `json:"method"`
	Gateway    string          `json:"gateway"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Status     PaymentStatus   `json:"status"`
	Message    string          `json:"message"`
	Pix        *PixPayment     `json:"pix,omitempty"`
	OwnerEmail string          `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Clone returns a deep copy so ledger callers can mutate freely.
func (t *Transaction) Clone() *Transaction {
	cp := *t
	if t.Pix != nil {
		pix := *t.Pix
		cp.Pix = &pix
	}
	return &cp
}

type ConfirmationResult struct {
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	Message       string        `json:"message"`
}

type PaymentOptions struct {
	Gateways   []string        `json:"gateways"`
	CardBrands []string        `json:"card_brands"`
	Methods    []PaymentMethod `json:"methods"`
}

func DefaultPaymentOptions() PaymentOptions {
	return PaymentOptions{
		Gateways:   Gateways,
		CardBrands: CardBrands,
		Methods:    []PaymentMethod{MethodCard, MethodPix},
	}
}
