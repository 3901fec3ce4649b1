package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/http/middleware"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/http/validation"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/checkout"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/shared/apperr"
)

type CheckoutHandler struct {
	Svc     *checkout.Service
	DevMode bool
}

func NewCheckoutHandler(svc *checkout.Service, devMode bool) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc, DevMode: devMode}
}

type checkoutInput struct {
	UID             string          `json:"uid" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	ShippingAddress json.RawMessage `json:"shippingAddress"`
	CustomerInfo    *struct {
		FullName string `json:"fullName"`
		Phone    string `json:"phone"`
	} `json:"customerInfo"`
}

func (h *CheckoutHandler) Post(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		if errs.Has("uid", "email") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing uid or email"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "fields": errs})
		return
	}

	svcIn := checkout.InitializeInput{
		UserID:          in.UID,
		Email:           in.Email,
		ShippingAddress: in.ShippingAddress,
	}
	if in.CustomerInfo != nil {
		svcIn.CustomerName = in.CustomerInfo.FullName
		svcIn.Phone = in.CustomerInfo.Phone
	}

	res, err := h.Svc.Initialize(c.Request.Context(), svcIn)
	if err != nil {
		var oos *checkout.OutOfStockError
		var ge *checkout.GatewayInitError
		switch {
		case errors.Is(err, checkout.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing uid or email"})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.As(err, &oos):
			log.Printf("Checkout failed: out of stock - %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Out of stock",
				"product": oos.ProductName,
			})
		case errors.As(err, &ge):
			payload := gin.H{"error": "Paystack initialization failed"}
			if h.DevMode {
				payload["details"] = ge.Err.Error()
			}
			c.JSON(http.StatusBadGateway, payload)
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorization_url": res.AuthorizationURL,
		"reference":         res.Reference,
		"orderId":           res.OrderID,
	})
}
