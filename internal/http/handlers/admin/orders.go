package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/http/middleware"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/http/validation"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/shared/apperr"
)

type OrdersHandler struct {
	Svc *orders.AdminService
}

func NewOrdersHandler(svc *orders.AdminService) *OrdersHandler {
	return &OrdersHandler{Svc: svc}
}

type transitionInput struct {
	Action string `json:"action" binding:"required,oneof=ship deliver"`
	Actor  string `json:"actor" binding:"required"`
	Note   string `json:"note" binding:"omitempty,max=255"`
}

func (h *OrdersHandler) Transition(c *gin.Context) {
	var in transitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request body",
			"fields": validation.FromBindError(err, &in),
		})
		return
	}

	err := h.Svc.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:     c.Param("id"),
		ActorUserID: in.Actor,
		Action:      in.Action,
		Note:        in.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, orders.ErrInvalidTransition), errors.Is(err, orders.ErrNotActionable):
			c.JSON(http.StatusConflict, gin.H{"error": "Invalid transition"})
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
