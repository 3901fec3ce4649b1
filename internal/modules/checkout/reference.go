package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"time"
)

const refPrefix = "LS"

const alnum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference builds a payment reference unique by construction: namespace
// prefix, a slice of the customer id, the current timestamp, and two
// independent entropy sources (16 hex chars from crypto/rand plus 7
// alphanumerics from math/rand). Uniqueness is probabilistic; the store's
// unique index on payment_ref catches the birthday case and the caller
// regenerates on conflict.
func NewReference(userID string) string {
	uidPart := userID
	if len(uidPart) > 6 {
		uidPart = uidPart[:6]
	}

	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to
		// the clock rather than return an empty component.
		for i := range b {
			b[i] = byte(time.Now().UnixNano() >> (8 * uint(i%8)))
		}
	}

	tail := make([]byte, 7)
	for i := range tail {
		tail[i] = alnum[mrand.Intn(len(alnum))]
	}

	return fmt.Sprintf("%s-%s-%d-%s%s", refPrefix, uidPart, time.Now().UnixMilli(), hex.EncodeToString(b), tail)
}
