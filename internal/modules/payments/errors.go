package payments

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSignature        = errors.New("missing webhook signature")
	ErrInvalidSignature        = errors.New("invalid webhook signature")
	ErrBadPayload              = errors.New("malformed webhook payload")
	ErrMissingReference        = errors.New("missing payment reference")
	ErrMissingMetadata         = errors.New("missing order metadata")
	ErrVerificationUnavailable = errors.New("gateway verification unavailable")
	ErrNotOrderOwner           = errors.New("order belongs to another customer")
)

// PaymentStatusError carries the gateway's literal status string for
// diagnostics when a verified transaction is not successful.
type PaymentStatusError struct {
	Status string
}

func (e *PaymentStatusError) Error() string {
	return fmt.Sprintf("payment not successful: gateway status %q", e.Status)
}

// AmountMismatchError guards against a substituted reference paying a
// different amount than the order being confirmed.
type AmountMismatchError struct {
	Expected int64
	Got      int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount mismatch: order expects %d subunits, gateway verified %d", e.Expected, e.Got)
}
