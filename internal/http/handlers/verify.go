package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

type VerifyHandler struct {
	Svc     *payments.VerifyService
	DevMode bool
}

func NewVerifyHandler(svc *payments.VerifyService, devMode bool) *VerifyHandler {
	return &VerifyHandler{Svc: svc, DevMode: devMode}
}

type verifyInput struct {
	Reference string `json:"reference"`
	UID       string `json:"uid"`
}

type verifyResponse struct {
	Verified         bool   `json:"verified"`
	OrderID          string `json:"orderId,omitempty"`
	PaystackStatus   string `json:"paystackStatus,omitempty"`
	Amount           int64  `json:"amount,omitempty"`
	AlreadyProcessed bool   `json:"alreadyProcessed,omitempty"`
	Error            string `json:"error,omitempty"`
	Details          string `json:"details,omitempty"`
	Expected         int64  `json:"expected,omitempty"`
	Got              int64  `json:"got,omitempty"`
}

func (h *VerifyHandler) Post(c *gin.Context) {
	var in verifyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, verifyResponse{Verified: false, Error: "Invalid request body"})
		return
	}
	if in.Reference == "" {
		c.JSON(http.StatusBadRequest, verifyResponse{Verified: false, Error: "Missing reference"})
		return
	}

	res, err := h.Svc.Verify(c.Request.Context(), payments.VerifyInput{
		Reference: in.Reference,
		UserID:    in.UID,
	})
	if err != nil {
		var pse *payments.PaymentStatusError
		var ame *payments.AmountMismatchError
		switch {
		case errors.Is(err, payments.ErrMissingReference):
			c.JSON(http.StatusBadRequest, verifyResponse{Verified: false, Error: "Missing reference"})
		case errors.Is(err, payments.ErrVerificationUnavailable):
			out := verifyResponse{Verified: false, Error: "Paystack verification failed"}
			if h.DevMode {
				out.Details = err.Error()
			}
			c.JSON(http.StatusBadRequest, out)
		case errors.As(err, &pse):
			// surface the gateway's literal status for diagnostics
			c.JSON(http.StatusBadRequest, verifyResponse{
				Verified:       false,
				Error:          "Payment not successful",
				PaystackStatus: pse.Status,
			})
		case errors.Is(err, orders.ErrNotFound):
			c.JSON(http.StatusNotFound, verifyResponse{Verified: false, Error: "Order not found"})
		case errors.As(err, &ame):
			c.JSON(http.StatusBadRequest, verifyResponse{
				Verified: false,
				Error:    "Amount mismatch",
				Expected: ame.Expected,
				Got:      ame.Got,
			})
		case errors.Is(err, payments.ErrNotOrderOwner):
			c.JSON(http.StatusForbidden, verifyResponse{Verified: false, Error: "Not your order"})
		default:
			log.Printf("verify processing error: %v", err)
			out := verifyResponse{Verified: false, Error: "Server error"}
			if h.DevMode {
				out.Details = err.Error()
			}
			c.JSON(http.StatusInternalServerError, out)
		}
		return
	}

	c.JSON(http.StatusOK, verifyResponse{
		Verified:         true,
		OrderID:          res.OrderID,
		PaystackStatus:   payments.StatusSuccess,
		Amount:           res.Amount,
		AlreadyProcessed: res.AlreadyProcessed,
	})
}
