package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
)

// WebhookService handles gateway-pushed payment confirmations. The pushed
// payload is never trusted: after the signature check the transaction is
// re-verified against the gateway and the order transition is driven off the
// verify response alone.
type WebhookService struct {
	secret  []byte
	gateway Gateway
	store   orders.Store
	logger  *slog.Logger
}

func NewWebhookService(secret string, gw Gateway, store orders.Store) *WebhookService {
	return &WebhookService{secret: []byte(secret), gateway: gw, store: store, logger: slog.Default()}
}

func (s *WebhookService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// eventEnvelope is the gateway event shape. Only the discriminator and the
// reference are read; everything else comes from the verify call.
type eventEnvelope struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	} `json:"data"`
}

type WebhookResult struct {
	Ignored bool
	OrderID string
	Status  orders.Status
}

// Handle runs the full webhook sequence over the raw request bytes. The
// signature must be checked against the exact bytes the gateway signed, so
// body arrives unparsed.
func (s *WebhookService) Handle(ctx context.Context, signature string, body []byte) (WebhookResult, error) {
	if signature == "" {
		return WebhookResult{}, ErrMissingSignature
	}
	if !validSignature(s.secret, body, signature) {
		return WebhookResult{}, ErrInvalidSignature
	}

	var env eventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	if env.Event != "charge.success" {
		// Acknowledge so the gateway does not retry a well-signed event we
		// simply do not act on.
		s.logger.InfoContext(ctx, "webhook event ignored", "event", env.Event)
		return WebhookResult{Ignored: true}, nil
	}

	ref := env.Data.Reference
	if ref == "" {
		return WebhookResult{}, ErrMissingReference
	}

	vr, err := s.gateway.Verify(ctx, ref)
	if err != nil {
		s.logger.ErrorContext(ctx, "webhook re-verification failed", "reference", ref, "err", err)
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}

	if vr.Metadata.OrderID == "" || vr.Metadata.UserID == "" {
		return WebhookResult{}, ErrMissingMetadata
	}

	o, err := s.store.FindByReference(ctx, ref)
	if err != nil {
		return WebhookResult{}, err
	}

	if vr.Status == StatusSuccess {
		paidAt := time.Now()
		if vr.PaidAt != nil {
			paidAt = *vr.PaidAt
		}
		if err := s.store.MarkPaid(ctx, o.ID, paidAt, vr.Raw); err != nil {
			return WebhookResult{}, err
		}
		s.logger.InfoContext(ctx, "order confirmed via webhook",
			"order_id", o.ID, "reference", ref, "amount", vr.Amount)
		return WebhookResult{OrderID: o.ID, Status: orders.StatusPacked}, nil
	}

	if err := s.store.MarkCancelled(ctx, o.ID, vr.Raw); err != nil {
		return WebhookResult{}, err
	}
	s.logger.InfoContext(ctx, "order cancelled via webhook",
		"order_id", o.ID, "reference", ref, "gateway_status", vr.Status)
	return WebhookResult{OrderID: o.ID, Status: orders.StatusCancelled}, nil
}

// validSignature compares an HMAC-SHA512 of the raw body against the header
// value in constant time.
func validSignature(secret, body []byte, header string) bool {
	mac := hmac.New(sha512.New, secret)
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(computed), []byte(header))
}
