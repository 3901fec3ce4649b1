package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/cart"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

// CartReader is the read-only view of the cart subsystem checkout needs.
type CartReader interface {
	Snapshot(ctx context.Context, userID string) (cart.Snapshot, error)
}

// Service converts a customer's cart into a durable pending order and opens
// a redirectable payment session at the gateway.
type Service struct {
	store    orders.Store
	carts    CartReader
	gateway  payments.Gateway
	baseURL  string
	currency string
	logger   *slog.Logger
}

func NewService(store orders.Store, carts CartReader, gw payments.Gateway, baseURL, currency string) *Service {
	return &Service{
		store:    store,
		carts:    carts,
		gateway:  gw,
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
		logger:   slog.Default(),
	}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

type InitializeInput struct {
	UserID          string
	Email           string
	CustomerName    string
	Phone           string
	ShippingAddress json.RawMessage // opaque, stored as given
}

type InitializeResult struct {
	AuthorizationURL string
	Reference        string
	OrderID          string
}

func (s *Service) Initialize(ctx context.Context, in InitializeInput) (InitializeResult, error) {
	uid := strings.TrimSpace(in.UserID)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if uid == "" || email == "" {
		return InitializeResult{}, ErrInvalidInput
	}

	// A customer restarting checkout must not accumulate in-flight orders:
	// at most one pending order per customer at any time.
	abandoned, err := s.store.AbandonPendingByUser(ctx, uid)
	if err != nil {
		return InitializeResult{}, fmt.Errorf("abandon pending orders: %w", err)
	}
	if abandoned > 0 {
		s.logger.InfoContext(ctx, "abandoned stale pending orders", "uid", uid, "count", abandoned)
	}

	snap, err := s.carts.Snapshot(ctx, uid)
	if errors.Is(err, cart.ErrNotFound) {
		return InitializeResult{}, ErrEmptyCart
	}
	if err != nil {
		return InitializeResult{}, fmt.Errorf("load cart: %w", err)
	}
	if len(snap.Items) == 0 {
		return InitializeResult{}, ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]orders.OrderItem, 0, len(snap.Items))
	now := time.Now()
	for _, line := range snap.Items {
		if line.Quantity > line.Stock {
			return InitializeResult{}, &OutOfStockError{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Requested:   line.Quantity,
				Available:   line.Stock,
			}
		}

		price := line.EffectivePrice()
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		item := orders.OrderItem{
			ID:          uuid.NewString(),
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   price,
			CreatedAt:   now,
		}
		if line.Variant != nil {
			vb, err := json.Marshal(line.Variant)
			if err != nil {
				return InitializeResult{}, fmt.Errorf("marshal variant: %w", err)
			}
			item.VariantJSON = datatypes.JSON(vb)
		}
		if line.ImageURL != "" {
			img := line.ImageURL
			item.ImageURL = &img
		}
		items = append(items, item)
	}

	o, err := s.persistOrder(ctx, uid, email, in, total, items, now)
	if err != nil {
		return InitializeResult{}, err
	}

	callback, err := url.Parse(s.baseURL + "/payment/callback")
	if err != nil {
		return InitializeResult{}, fmt.Errorf("build callback url: %w", err)
	}
	q := callback.Query()
	q.Set("reference", o.PaymentRef)
	q.Set("orderId", o.ID)
	callback.RawQuery = q.Encode()

	resp, err := s.gateway.Initialize(ctx, payments.InitializeRequest{
		Email:       email,
		Amount:      orders.Subunits(total),
		Currency:    s.currency,
		Reference:   o.PaymentRef,
		CallbackURL: callback.String(),
		Metadata:    payments.Metadata{OrderID: o.ID, UserID: uid},
	})
	if err != nil {
		// The failed order stays behind as the audit trail.
		if merr := s.store.MarkFailed(ctx, o.ID, err.Error()); merr != nil {
			s.logger.ErrorContext(ctx, "failed to record gateway failure on order",
				"order_id", o.ID, "err", merr)
		}
		s.logger.ErrorContext(ctx, "gateway initialization failed",
			"order_id", o.ID, "reference", o.PaymentRef, "err", err)
		return InitializeResult{}, &GatewayInitError{OrderID: o.ID, Err: err}
	}

	s.logger.InfoContext(ctx, "checkout initialized",
		"order_id", o.ID, "reference", o.PaymentRef, "amount", orders.Subunits(total))

	return InitializeResult{
		AuthorizationURL: resp.AuthorizationURL,
		Reference:        o.PaymentRef,
		OrderID:          o.ID,
	}, nil
}

func (s *Service) persistOrder(ctx context.Context, uid, email string, in InitializeInput, total decimal.Decimal, items []orders.OrderItem, now time.Time) (*orders.Order, error) {
	o := &orders.Order{
		ID:            uuid.NewString(),
		UserID:        uid,
		CustomerEmail: email,
		PaymentRef:    NewReference(uid),
		Status:        orders.StatusPending,
		PaymentStatus: orders.PaymentUnpaid,
		Total:         total,
		Currency:      s.currency,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         items,
	}
	if name := strings.TrimSpace(in.CustomerName); name != "" {
		o.CustomerName = &name
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		o.CustomerPhone = &phone
	}
	if len(in.ShippingAddress) > 0 {
		o.ShippingAddressJSON = datatypes.JSON(in.ShippingAddress)
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	err := s.store.Create(ctx, o)
	if errors.Is(err, orders.ErrDuplicateReference) {
		// Entropy collision. One retry with a fresh reference; a second hit
		// means something is broken, not unlucky.
		s.logger.WarnContext(ctx, "payment reference collision, regenerating", "order_id", o.ID)
		o.PaymentRef = NewReference(uid)
		err = s.store.Create(ctx, o)
	}
	if err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return o, nil
}
