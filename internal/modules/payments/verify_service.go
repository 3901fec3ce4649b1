package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
)

// VerifyService is the browser-driven fallback path: immediately after the
// gateway redirect the client asks whether its payment went through. The
// client's own claim is never trusted; the gateway verify call is the only
// source of truth, exactly as in the webhook path.
type VerifyService struct {
	gateway Gateway
	store   orders.Store
	logger  *slog.Logger
}

func NewVerifyService(gw Gateway, store orders.Store) *VerifyService {
	return &VerifyService{gateway: gw, store: store, logger: slog.Default()}
}

func (s *VerifyService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

type VerifyInput struct {
	Reference string
	UserID    string // optional ownership check
}

type VerifyResult struct {
	OrderID          string
	Amount           int64
	AlreadyProcessed bool
}

func (s *VerifyService) Verify(ctx context.Context, in VerifyInput) (VerifyResult, error) {
	if in.Reference == "" {
		return VerifyResult{}, ErrMissingReference
	}

	vr, err := s.gateway.Verify(ctx, in.Reference)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}

	if vr.Status != StatusSuccess {
		return VerifyResult{}, &PaymentStatusError{Status: vr.Status}
	}

	o, err := s.store.FindByReference(ctx, in.Reference)
	if err != nil {
		return VerifyResult{}, err
	}

	// Amount integrity: the verified subunit amount must reproduce the
	// stored order total exactly, or a cheaper transaction could confirm a
	// pricier order.
	expected := orders.Subunits(o.Total)
	if expected != vr.Amount {
		return VerifyResult{}, &AmountMismatchError{Expected: expected, Got: vr.Amount}
	}

	if in.UserID != "" && o.UserID != "" && o.UserID != in.UserID {
		return VerifyResult{}, ErrNotOrderOwner
	}

	// Page refreshes and duplicate return navigations land here; a settled
	// order must not be rewritten with anything.
	if o.Status == orders.StatusPacked && o.PaymentStatus == orders.PaymentPaid {
		return VerifyResult{OrderID: o.ID, Amount: vr.Amount, AlreadyProcessed: true}, nil
	}

	paidAt := time.Now()
	if vr.PaidAt != nil {
		paidAt = *vr.PaidAt
	}
	if err := s.store.MarkPaid(ctx, o.ID, paidAt, vr.Raw); err != nil {
		return VerifyResult{}, err
	}

	s.logger.InfoContext(ctx, "order confirmed via client verify",
		"order_id", o.ID, "reference", in.Reference, "amount", vr.Amount)
	return VerifyResult{OrderID: o.ID, Amount: vr.Amount}, nil
}
