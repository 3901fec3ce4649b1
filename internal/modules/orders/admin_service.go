package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotActionable     = errors.New("order not actionable")
)

// AdminService moves confirmed orders through fulfillment. Payment-side
// transitions (packed, cancelled, failed, abandoned) belong to the checkout
// and payment services, never to this one.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService { return &AdminService{db: db} }

type TransitionInput struct {
	OrderID     string
	ActorUserID string // admin user id
	Action      string // ship|deliver
	Note        string
}

func (s *AdminService) Transition(ctx context.Context, in TransitionInput) error {
	if in.OrderID == "" || in.ActorUserID == "" || in.Action == "" {
		return ErrNotActionable
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order

		// row lock
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		from := o.Status
		to, err := nextStatus(from, in.Action)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.WithContext(ctx).
			Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, from). // optimistic guard
			Updates(map[string]any{
				"status":     to,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}

		ev := OrderEvent{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ActorUserID: in.ActorUserID,
			Action:      in.Action,
			FromStatus:  from,
			ToStatus:    to,
			Note:        notePtr,
			CreatedAt:   now,
		}
		return tx.WithContext(ctx).Create(&ev).Error
	})
}

func nextStatus(from Status, action string) (Status, error) {
	switch action {
	case "ship":
		if from == StatusPacked {
			return StatusShipped, nil
		}
		return "", ErrInvalidTransition
	case "deliver":
		if from == StatusShipped {
			return StatusDelivered, nil
		}
		return "", ErrInvalidTransition
	default:
		return "", ErrInvalidTransition
	}
}
