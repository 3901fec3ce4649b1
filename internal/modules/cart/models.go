package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Cart is the per-customer snapshot the storefront maintains. The checkout
// core only ever reads it; clearing after a completed checkout is owned by
// the cart subsystem.
type Cart struct {
	UserID    string    `gorm:"type:varchar(64);primaryKey"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`

	Items []CartItem `gorm:"foreignKey:CartUserID"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID         string `gorm:"type:char(36);primaryKey"`
	CartUserID string `gorm:"type:varchar(64);not null;index:ix_cart_items_cart"`

	ProductID   string          `gorm:"type:varchar(64);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// VariantJSON holds the selected variant, if any: {id, name, price}.
	VariantJSON datatypes.JSON `gorm:"type:json"`
	Stock       int            `gorm:"not null"`
	ImageURL    *string        `gorm:"type:varchar(512)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (CartItem) TableName() string { return "cart_items" }

// Snapshot is the read model handed to checkout: denormalized enough to
// compute a total without touching the catalog.
type Snapshot struct {
	UserID string
	Items  []Line
}

type Line struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Variant   *Variant
	Stock     int
	ImageURL  string
}

type Variant struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// EffectivePrice is the variant price when a variant is selected, else the
// base price.
func (l Line) EffectivePrice() decimal.Decimal {
	if l.Variant != nil {
		return l.Variant.Price
	}
	return l.UnitPrice
}
