// Package paystack is the outbound HTTP client for the Paystack API. It
// implements the payments.Gateway port.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

const defaultBaseURL = "https://api.paystack.co"

// defaultTimeout bounds every gateway call; a hung provider surfaces as an
// error instead of a stuck handler.
const defaultTimeout = 10 * time.Second

type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(secretKey string, opts ...Option) *Client {
	c := &Client{
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ payments.Gateway = (*Client)(nil)

// APIError is a non-success response from Paystack itself (HTTP error or
// status=false envelope).
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paystack: %s (http %d)", e.Message, e.HTTPStatus)
}

// envelope is the outer shape of every Paystack response.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeBody struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    payments.Metadata `json:"metadata"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

func (c *Client) Initialize(ctx context.Context, req payments.InitializeRequest) (payments.InitializeResponse, error) {
	body := initializeBody{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}

	var data initializeData
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return payments.InitializeResponse{}, err
	}

	return payments.InitializeResponse{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

type verifyData struct {
	Status   string            `json:"status"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	PaidAt   string            `json:"paid_at"` // RFC3339, empty until settled
	Channel  string            `json:"channel"`
	Metadata payments.Metadata `json:"metadata"`
}

func (c *Client) Verify(ctx context.Context, reference string) (payments.VerifyResponse, error) {
	if reference == "" {
		return payments.VerifyResponse{}, fmt.Errorf("paystack: empty reference")
	}

	var raw json.RawMessage
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return payments.VerifyResponse{}, err
	}

	var data verifyData
	if err := json.Unmarshal(raw, &data); err != nil {
		return payments.VerifyResponse{}, fmt.Errorf("paystack: decode verify data: %w", err)
	}

	out := payments.VerifyResponse{
		Status:   data.Status,
		Amount:   data.Amount,
		Currency: data.Currency,
		Channel:  data.Channel,
		Metadata: data.Metadata,
		Raw:      raw,
	}
	if data.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			out.PaidAt = &t
		}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("paystack: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("paystack: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("paystack: read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{HTTPStatus: resp.StatusCode, Message: "unparseable response"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{HTTPStatus: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("paystack: decode data: %w", err)
		}
	}
	return nil
}
