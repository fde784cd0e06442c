package pix

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const qrImageEndpoint = "https://api.qrserver.com/v1/create-qr-code/?size=280x280&data="

// Artifacts is everything a customer needs to pay a PIX charge: the key, the
// copy-and-paste BR-code payload, a rendered QR image URL and the payment
// deadline.
type Artifacts struct {
	Key       string
	Payload   string
	ImageURL  string
	ExpiresAt time.Time
}

// Generator builds PIX payment artifacts for the store. The payload layout is
// for display only; it does not carry a real BR-code CRC but is reproducible:
// the same key and amount always produce the same payload.
type Generator struct {
	merchantName string
	merchantCity string
	window       time.Duration

	now func() time.Time
}

func NewGenerator(merchantName, merchantCity string, window time.Duration) *Generator {
	return &Generator{
		merchantName: merchantName,
		merchantCity: merchantCity,
		window:       window,
		now:          time.Now,
	}
}

// Generate allocates a fresh pix key and derives the payload, image URL and
// expiry for the given amount. No network calls are made; the image URL is
// only constructed.
func (g *Generator) Generate(amount decimal.Decimal) Artifacts {
	key := uuid.NewString()
	payload := g.payload(key, amount)

	return Artifacts{
		Key:       key,
		Payload:   payload,
		ImageURL:  qrImageEndpoint + url.QueryEscape(payload),
		ExpiresAt: g.now().UTC().Add(g.window),
	}
}

// MinorUnits converts a currency-scaled amount into its minor units, e.g.
// 19.90 -> 1990. Exact for the two-decimal currencies in scope.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

func (g *Generator) payload(key string, amount decimal.Decimal) string {
	return fmt.Sprintf("00020126330014BR.GOV.BCB.PIX0114%s520400005303986540%s5802BR59%02d%s60%02d%s62070503***6304%04d",
		key,
		amount.StringFixed(2),
		len(g.merchantName), g.merchantName,
		len(g.merchantCity), g.merchantCity,
		MinorUnits(amount),
	)
}
