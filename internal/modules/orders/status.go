package orders

import "errors"

type Status string

// remember to add new statuses to the validStatuses map
const (
	// StatusPending is the sole initial state.
	StatusPending Status = "pending"
	// StatusPacked means payment confirmed, ready for fulfillment.
	StatusPacked Status = "packed"
	// StatusCancelled means the gateway reported a failed payment.
	StatusCancelled Status = "cancelled"
	// StatusFailed means gateway session creation failed at checkout.
	StatusFailed Status = "failed"
	// StatusAbandoned means the customer started a newer checkout.
	StatusAbandoned Status = "abandoned"

	// Fulfillment states past the payment core.
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

var validStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusPacked:    {},
	StatusCancelled: {},
	StatusFailed:    {},
	StatusAbandoned: {},
	StatusShipped:   {},
	StatusDelivered: {},
}

func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; ok {
		return status, nil
	}
	return "", errors.New("invalid order status")
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)
