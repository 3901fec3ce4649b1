package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"sync"
	"time"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeStore struct {
	mu     sync.Mutex
	byID   map[string]*orders.Order
	writes int
}

func newFakeStore(seed ...*orders.Order) *fakeStore {
	s := &fakeStore{byID: map[string]*orders.Order{}}
	for _, o := range seed {
		cp := *o
		s.byID[o.ID] = &cp
	}
	return s
}

func (s *fakeStore) Create(_ context.Context, o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	o.FailureReason = nil
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

func (s *fakeStore) get(id string) orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.byID[id]
}

type fakeGateway struct {
	verifyFn    func(string) (VerifyResponse, error)
	verifyCalls int
}

func (f *fakeGateway) Initialize(context.Context, InitializeRequest) (InitializeResponse, error) {
	return InitializeResponse{}, nil
}

func (f *fakeGateway) Verify(_ context.Context, ref string) (VerifyResponse, error) {
	f.verifyCalls++
	if f.verifyFn != nil {
		return f.verifyFn(ref)
	}
	return VerifyResponse{}, nil
}
