package id

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewTransactionID returns a "txn_" prefixed id with 72 bits of entropy,
// e.g. txn_9f1c2b3a4d5e6f7a8b.
func NewTransactionID() string {
	u := uuid.New()
	return "txn_" + hex.EncodeToString(u[:])[:18]
}

// NewActivityID returns a sortable "act_" prefixed ULID for audit entries.
func NewActivityID() string {
	entry := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return "act_" + entry.String()
}
