package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

// HeaderPaystackSignature carries the HMAC-SHA512 of the raw body, keyed
// with the account's secret key.
const HeaderPaystackSignature = "x-paystack-signature"

type WebhookHandler struct {
	Svc *payments.WebhookService
}

func NewWebhookHandler(svc *payments.WebhookService) *WebhookHandler {
	return &WebhookHandler{Svc: svc}
}

// Post responds in plain text; the gateway only cares about the status code.
// Anything but 5xx stops redelivery.
func (h *WebhookHandler) Post(c *gin.Context) {
	// Raw bytes first: the signature covers exactly what was sent, so the
	// body must not go through any JSON decoding before the check.
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "cannot read body")
		return
	}

	sig := c.GetHeader(HeaderPaystackSignature)

	res, err := h.Svc.Handle(c.Request.Context(), sig, body)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrMissingSignature):
			c.String(http.StatusUnauthorized, "missing signature")
		case errors.Is(err, payments.ErrInvalidSignature):
			c.String(http.StatusUnauthorized, "invalid signature")
		case errors.Is(err, payments.ErrBadPayload),
			errors.Is(err, payments.ErrMissingReference),
			errors.Is(err, payments.ErrMissingMetadata),
			errors.Is(err, payments.ErrVerificationUnavailable):
			c.String(http.StatusBadRequest, err.Error())
		case errors.Is(err, orders.ErrNotFound):
			c.String(http.StatusNotFound, "order not found")
		default:
			// Store unreachable and friends: the one class the gateway
			// should retry.
			log.Printf("webhook processing error: %v", err)
			c.String(http.StatusInternalServerError, "server error")
		}
		return
	}

	if !res.Ignored {
		log.Printf("webhook processed: order=%s status=%s", res.OrderID, res.Status)
	}
	c.String(http.StatusOK, "ok")
}
