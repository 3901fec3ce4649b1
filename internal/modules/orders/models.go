package orders

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order is the single source of truth for a checkout attempt. It is created
// pending by the checkout initializer and finalized by whichever of the
// webhook receiver or client verifier observes gateway confirmation first.
type Order struct {
	ID     string `gorm:"type:char(36);primaryKey"`
	UserID string `gorm:"type:varchar(64);not null;index:ix_orders_user_status,priority:1"`

	CustomerName  *string `gorm:"type:varchar(255)"`
	CustomerEmail string  `gorm:"type:varchar(255);not null"`
	CustomerPhone *string `gorm:"type:varchar(32)"`

	// PaymentRef is the only key correlating this order with gateway-side
	// state. Immutable once written; unique index backs collision retry.
	PaymentRef string `gorm:"type:varchar(80);not null;uniqueIndex:ux_orders_payment_ref"`

	Status        Status        `gorm:"type:varchar(16);not null;index:ix_orders_user_status,priority:2"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null"`

	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency string          `gorm:"type:char(3);not null"`

	ShippingAddressJSON datatypes.JSON `gorm:"type:json"`
	// PaymentJSON carries the gateway verify payload once settled.
	PaymentJSON   datatypes.JSON `gorm:"type:json"`
	FailureReason *string        `gorm:"type:varchar(255)"`

	CreatedAt time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time  `gorm:"type:datetime(3);not null"`
	PaidAt    *time.Time `gorm:"type:datetime(3)"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a denormalized snapshot of a cart line at checkout time.
type OrderItem struct {
	ID          string          `gorm:"type:char(36);primaryKey"`
	OrderID     string          `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	ProductID   string          `gorm:"type:varchar(64);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VariantJSON datatypes.JSON  `gorm:"type:json"`
	ImageURL    *string         `gorm:"type:varchar(512)"`
	CreatedAt   time.Time       `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderEvent is the audit trail for manual fulfillment transitions.
type OrderEvent struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_events_order_id"`
	ActorUserID string    `gorm:"type:varchar(64);not null"`
	Action      string    `gorm:"type:varchar(32);not null"`
	FromStatus  Status    `gorm:"type:varchar(16);not null"`
	ToStatus    Status    `gorm:"type:varchar(16);not null"`
	Note        *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderEvent) TableName() string { return "order_events" }
