package pix

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testGenerator() *Generator {
	return NewGenerator("COMPIA STORE", "SAO PAULO", 30*time.Minute)
}

func TestPayloadLayout(t *testing.T) {
	g := testGenerator()
	key := "123e4567-e89b-12d3-a456-426614174000"
	payload := g.payload(key, decimal.RequireFromString("19.90"))

	if !strings.HasPrefix(payload, "00020126330014BR.GOV.BCB.PIX0114"+key) {
		t.Errorf("payload missing BR code prefix and key: %s", payload)
	}
	if !strings.Contains(payload, "54019.90") {
		t.Errorf("payload missing formatted amount: %s", payload)
	}
	if !strings.Contains(payload, "5912COMPIA STORE6009SAO PAULO") {
		t.Errorf("payload missing merchant fields: %s", payload)
	}
	if !strings.HasSuffix(payload, "63041990") {
		t.Errorf("payload must end with the minor-unit amount tail, got %s", payload)
	}
}

func TestPayloadDeterministic(t *testing.T) {
	g := testGenerator()
	key := "4ac2f163-91a3-4b85-a7cf-14c929e0a1bb"
	amount := decimal.RequireFromString("250.00")

	first := g.payload(key, amount)
	second := g.payload(key, amount)
	if first != second {
		t.Errorf("same inputs produced different payloads:\n%s\n%s", first, second)
	}
}

func TestGenerate(t *testing.T) {
	g := testGenerator()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	art := g.Generate(decimal.RequireFromString("19.90"))

	if art.Key == "" {
		t.Fatal("expected a pix key")
	}
	if !strings.Contains(art.Payload, art.Key) {
		t.Errorf("payload does not embed the pix key: %s", art.Payload)
	}
	if want := now.Add(30 * time.Minute); !art.ExpiresAt.Equal(want) {
		t.Errorf("expires_at = %v, want %v", art.ExpiresAt, want)
	}
	if !strings.HasPrefix(art.ImageURL, "https://api.qrserver.com/v1/create-qr-code/?size=280x280&data=") {
		t.Errorf("unexpected image url: %s", art.ImageURL)
	}
	if strings.Contains(art.ImageURL, " ") {
		t.Errorf("image url is not encoded: %s", art.ImageURL)
	}
}

func TestGenerateFreshKeys(t *testing.T) {
	g := testGenerator()
	amount := decimal.RequireFromString("10.00")

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		art := g.Generate(amount)
		if seen[art.Key] {
			t.Fatalf("duplicate pix key generated: %s", art.Key)
		}
		seen[art.Key] = true
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"19.90", 1990},
		{"0.01", 1},
		{"100", 10000},
		{"1234.56", 123456},
	}

	for _, tc := range cases {
		if got := MinorUnits(decimal.RequireFromString(tc.amount)); got != tc.want {
			t.Errorf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
