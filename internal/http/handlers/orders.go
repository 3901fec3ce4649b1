package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/http/middleware"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/shared/apperr"
)

// OrderReader is what this handler needs from the order store.
type OrderReader interface {
	GetWithItems(ctx context.Context, id string) (orders.Order, []orders.OrderItem, error)
	ListByUser(ctx context.Context, in orders.ListByUserParams) (orders.ListByUserResult, error)
}

type OrdersHandler struct {
	Reader OrderReader
}

func NewOrdersHandler(reader OrderReader) *OrdersHandler {
	return &OrdersHandler{Reader: reader}
}

type orderItemView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice string          `json:"unitPrice"`
	Variant   json.RawMessage `json:"variant,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

type orderView struct {
	ID            string          `json:"id"`
	UID           string          `json:"uid"`
	Reference     string          `json:"reference"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Total         string          `json:"total"`
	Currency      string          `json:"currency"`
	Items         []orderItemView `json:"items,omitempty"`
	ItemCount     int             `json:"itemCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	o, items, err := h.Reader.GetWithItems(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// Ownership check mirrors the verifier: a supplied uid must match.
	if uid := c.Query("uid"); uid != "" && o.UserID != "" && o.UserID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}

	vm := toOrderView(o, len(items))
	for _, it := range items {
		iv := orderItemView{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		}
		if len(it.VariantJSON) > 0 {
			iv.Variant = json.RawMessage(it.VariantJSON)
		}
		if it.ImageURL != nil {
			iv.ImageURL = *it.ImageURL
		}
		vm.Items = append(vm.Items, iv)
	}

	c.JSON(http.StatusOK, vm)
}

func (h *OrdersHandler) List(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing uid"})
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))

	res, err := h.Reader.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   uid,
		Page:     page,
		PageSize: 20,
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	items := make([]orderView, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, toOrderView(it.Order, it.Count))
	}

	c.JSON(http.StatusOK, gin.H{"orders": items, "total": res.Total})
}

func toOrderView(o orders.Order, itemCount int) orderView {
	return orderView{
		ID:            o.ID,
		UID:           o.UserID,
		Reference:     o.PaymentRef,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Total:         o.Total.StringFixed(2),
		Currency:      o.Currency,
		ItemCount:     itemCount,
		CreatedAt:     o.CreatedAt,
		PaidAt:        o.PaidAt,
	}
}
