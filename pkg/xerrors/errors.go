package xerrors

import "errors"

// Request validation
var (
	ErrCardDataRequired = errors.New("card data required")
	ErrInvalidMethod    = errors.New("unsupported payment method")
	ErrUnknownGateway   = errors.New("unknown payment gateway")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
)

// Authentication / authorization
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Transaction lifecycle
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrConfirmNotSupported  = errors.New("only pix payments can be confirmed")
	ErrPixExpired           = errors.New("pix expired")
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)
