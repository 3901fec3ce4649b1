package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("cart not found")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	if userID == "" {
		return Snapshot{}, errors.New("missing userID")
	}

	var c Cart
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}

	var rows []CartItem
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows, "cart_user_id = ?", userID).Error; err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{UserID: userID, Items: make([]Line, 0, len(rows))}
	for _, it := range rows {
		line := Line{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Stock:     it.Stock,
		}
		if it.ImageURL != nil {
			line.ImageURL = *it.ImageURL
		}
		if len(it.VariantJSON) > 0 {
			var v Variant
			if err := json.Unmarshal(it.VariantJSON, &v); err != nil {
				log.Printf("Snapshot: bad variant json on cart item %s: %v", it.ID, err)
			} else if v.ID != "" {
				line.Variant = &v
			}
		}
		snap.Items = append(snap.Items, line)
	}

	return snap, nil
}
