package payments

import (
	"context"
	"encoding/json"
	"time"
)

// Metadata rides along on the gateway session and is echoed back on webhook
// and verify responses. It lets a webhook be correlated without an extra
// lookup, but nothing security-sensitive may trust it over the reference
// lookup against the order store.
type Metadata struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"uid"`
}

type InitializeRequest struct {
	Email       string
	Amount      int64 // subunits
	Currency    string
	Reference   string
	CallbackURL string
	Metadata    Metadata
}

type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResponse is the gateway's authoritative view of a transaction,
// fetched by reference. Raw keeps the untouched payload for persistence.
type VerifyResponse struct {
	Status   string // success|failed|abandoned|...
	Amount   int64  // subunits
	Currency string
	PaidAt   *time.Time
	Channel  string
	Metadata Metadata
	Raw      json.RawMessage
}

const StatusSuccess = "success"

// Gateway is the outbound payment-provider port. Both calls are single
// bounded request/response cycles; the implementation imposes the timeout
// and never retries.
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (InitializeResponse, error)
	Verify(ctx context.Context, reference string) (VerifyResponse, error)
}
