package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/cart"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

type fakeStore struct {
	mu     sync.Mutex
	byID   map[string]*orders.Order
	dupN   int // next N creates fail with ErrDuplicateReference
	writes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: map[string]*orders.Order{}}
}

func (s *fakeStore) Create(_ context.Context, o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dupN > 0 {
		s.dupN--
		return orders.ErrDuplicateReference
	}
	for _, existing := range s.byID {
		if existing.PaymentRef == o.PaymentRef {
			return orders.ErrDuplicateReference
		}
	}
	cp := *o
	s.byID[o.ID] = &cp
	s.writes++
	return nil
}

func (s *fakeStore) FindByReference(_ context.Context, ref string) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.byID {
		if o.PaymentRef == ref {
			return *o, nil
		}
	}
	return orders.Order{}, orders.ErrNotFound
}

func (s *fakeStore) GetWithItems(_ context.Context, id string) (orders.Order, []orders.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return orders.Order{}, nil, orders.ErrNotFound
	}
	return *o, o.Items, nil
}

func (s *fakeStore) AbandonPendingByUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, o := range s.byID {
		if o.UserID == userID && o.Status == orders.StatusPending {
			o.Status = orders.StatusAbandoned
			n++
		}
	}
	if n > 0 {
		s.writes++
	}
	return n, nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return orders.ErrNotFound
	}
	o.Status = orders.StatusFailed
	o.PaymentStatus = orders.PaymentFailed
	o.FailureReason = &reason
	s.writes++
	return nil
}

func (s *fakeStore) MarkPaid(_ context.Context, id string, paidAt time.Time, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return orders.ErrNotFound
	}
	o.Status = orders.StatusPacked
	o.PaymentStatus = orders.PaymentPaid
	o.PaidAt = &paidAt
	o.PaymentJSON = payload
	s.writes++
	return nil
}

func (s *fakeStore) MarkCancelled(_ context.Context, id string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return orders.ErrNotFound
	}
	o.Status = orders.StatusCancelled
	o.PaymentStatus = orders.PaymentFailed
	o.PaymentJSON = payload
	s.writes++
	return nil
}

func (s *fakeStore) all() []orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]orders.Order, 0, len(s.byID))
	for _, o := range s.byID {
		out = append(out, *o)
	}
	return out
}

type fakeCarts struct {
	snap cart.Snapshot
	err  error
}

func (f *fakeCarts) Snapshot(context.Context, string) (cart.Snapshot, error) {
	return f.snap, f.err
}

type fakeGateway struct {
	initFn    func(payments.InitializeRequest) (payments.InitializeResponse, error)
	verifyFn  func(string) (payments.VerifyResponse, error)
	initCalls []payments.InitializeRequest
}

func (f *fakeGateway) Initialize(_ context.Context, req payments.InitializeRequest) (payments.InitializeResponse, error) {
	f.initCalls = append(f.initCalls, req)
	if f.initFn != nil {
		return f.initFn(req)
	}
	return payments.InitializeResponse{
		AuthorizationURL: "https://checkout.paystack.com/abc123",
		AccessCode:       "abc123",
		Reference:        req.Reference,
	}, nil
}

func (f *fakeGateway) Verify(_ context.Context, ref string) (payments.VerifyResponse, error) {
	if f.verifyFn != nil {
		return f.verifyFn(ref)
	}
	return payments.VerifyResponse{}, nil
}
