package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/cart"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "sk_test_handlers"

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func doJSON(t *testing.T, r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func pendingOrder() *orders.Order {
	return &orders.Order{
		ID:            "order-1",
		UserID:        "user-1",
		PaymentRef:    "LS-user-1-1700000000000-deadbeefdeadbeefabc1234",
		Status:        orders.StatusPending,
		PaymentStatus: orders.PaymentUnpaid,
		Total:         decimal.NewFromInt(3500),
		Currency:      "NGN",
	}
}

func successVerify(ref string) payments.VerifyResponse {
	paidAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	return payments.VerifyResponse{
		Status:   payments.StatusSuccess,
		Amount:   350000,
		Currency: "NGN",
		PaidAt:   &paidAt,
		Channel:  "card",
		Metadata: payments.Metadata{OrderID: "order-1", UserID: "user-1"},
		Raw:      []byte(`{"reference":"` + ref + `","status":"success"}`),
	}
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

type fakeCarts struct {
	snap cart.Snapshot
	err  error
}

func (f *fakeCarts) Snapshot(context.Context, string) (cart.Snapshot, error) {
	return f.snap, f.err
}

type fakeGateway struct {
	initFn   func(payments.InitializeRequest) (payments.InitializeResponse, error)
	verifyFn func(string) (payments.VerifyResponse, error)
}

func (f *fakeGateway) Initialize(_ context.Context, req payments.InitializeRequest) (payments.InitializeResponse, error) {
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
