package paystack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

func TestInitialize(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/xyz789",
				"access_code": "xyz789",
				"reference": "LS-user-1-1700000000000-aa"
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_abc", WithBaseURL(srv.URL))
	resp, err := c.Initialize(context.Background(), payments.InitializeRequest{
		Email:       "ada@example.com",
		Amount:      350000,
		Currency:    "NGN",
		Reference:   "LS-user-1-1700000000000-aa",
		CallbackURL: "https://shop.example.com/payment/callback?reference=LS-user-1-1700000000000-aa",
		Metadata:    payments.Metadata{OrderID: "order-1", UserID: "user-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "/transaction/initialize", gotPath)
	assert.Equal(t, "ada@example.com", gotBody["email"])
	assert.Equal(t, float64(350000), gotBody["amount"])
	meta, ok := gotBody["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "order-1", meta["orderId"])
	assert.Equal(t, "user-1", meta["uid"])

	assert.Equal(t, "https://checkout.paystack.com/xyz789", resp.AuthorizationURL)
	assert.Equal(t, "xyz789", resp.AccessCode)
	assert.Equal(t, "LS-user-1-1700000000000-aa", resp.Reference)
}

func TestInitializeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_bad", WithBaseURL(srv.URL))
	_, err := c.Initialize(context.Background(), payments.InitializeRequest{
		Email: "a@b.com", Amount: 100, Reference: "r-1",
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	assert.Equal(t, "Invalid key", apiErr.Message)
}

func TestInitializeFalseEnvelopeOn200(t *testing.T) {
	// Paystack sometimes answers 200 with status=false; that is still an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": false, "message": "Duplicate Transaction Reference"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_abc", WithBaseURL(srv.URL))
	_, err := c.Initialize(context.Background(), payments.InitializeRequest{
		Email: "a@b.com", Amount: 100, Reference: "r-1",
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Duplicate Transaction Reference", apiErr.Message)
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/LS-user-1-1700000000000-aa", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"amount": 350000,
				"currency": "NGN",
				"paid_at": "2026-03-14T10:30:00Z",
				"channel": "card",
				"metadata": {"orderId": "order-1", "uid": "user-1"},
				"gateway_response": "Successful"
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_abc", WithBaseURL(srv.URL))
	vr, err := c.Verify(context.Background(), "LS-user-1-1700000000000-aa")
	require.NoError(t, err)

	assert.Equal(t, "success", vr.Status)
	assert.Equal(t, int64(350000), vr.Amount)
	assert.Equal(t, "NGN", vr.Currency)
	assert.Equal(t, "card", vr.Channel)
	assert.Equal(t, "order-1", vr.Metadata.OrderID)
	assert.Equal(t, "user-1", vr.Metadata.UserID)
	require.NotNil(t, vr.PaidAt)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), vr.PaidAt.UTC())
	// Raw keeps the whole data object, including fields we do not map.
	assert.Contains(t, string(vr.Raw), "gateway_response")
}

func TestVerifyUnsettledHasNoPaidAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "abandoned", "amount": 350000, "currency": "NGN", "paid_at": ""}
		}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_abc", WithBaseURL(srv.URL))
	vr, err := c.Verify(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "abandoned", vr.Status)
	assert.Nil(t, vr.PaidAt)
}

func TestVerifyNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_abc", WithBaseURL(srv.URL))
	_, err := c.Verify(context.Background(), "nope")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
}

func TestVerifyEmptyReference(t *testing.T) {
	c := NewClient("sk_test_abc")
	_, err := c.Verify(context.Background(), "")
	assert.Error(t, err)
}
