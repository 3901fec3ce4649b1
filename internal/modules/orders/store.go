package orders

import (
	"context"
	"time"
)

// Store is the order record store as the payment core sees it. The GORM Repo
// is the production implementation; tests swap in an in-memory fake.
//
// MarkPaid and MarkCancelled are unconditional overwrites of the settlement
// fields, so applying either twice for the same order is a no-op in effect.
// The webhook receiver and the client verifier both rely on that.
type Store interface {
	Create(ctx context.Context, o *Order) error
	FindByReference(ctx context.Context, ref string) (Order, error)
	GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error)

	// AbandonPendingByUser transitions every pending order of the user to
	// abandoned in a single batch write and reports how many it touched.
	AbandonPendingByUser(ctx context.Context, userID string) (int64, error)

	MarkFailed(ctx context.Context, id string, reason string) error
	MarkPaid(ctx context.Context, id string, paidAt time.Time, payload []byte) error
	MarkCancelled(ctx context.Context, id string, payload []byte) error
}
