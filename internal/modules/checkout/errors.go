package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("missing uid or email")
	ErrEmptyCart    = errors.New("cart is empty")
)

type OutOfStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %s (requested %d, available %d)", e.ProductName, e.Requested, e.Available)
}

// GatewayInitError means session creation at the payment provider failed.
// By the time it surfaces a failed order already exists as the audit trail.
type GatewayInitError struct {
	OrderID string
	Err     error
}

func (e *GatewayInitError) Error() string {
	return fmt.Sprintf("gateway initialization failed for order %s: %v", e.OrderID, e.Err)
}

func (e *GatewayInitError) Unwrap() error { return e.Err }
