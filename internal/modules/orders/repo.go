package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

var _ Store = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, o *Order) error {
	err := r.db.WithContext(ctx).Create(o).Error
	if isDup(err) {
		return ErrDuplicateReference
	}
	return err
}

func (r *Repo) FindByReference(ctx context.Context, ref string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "payment_ref = ?", ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Order{}, nil, ErrNotFound
		}
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (r *Repo) AbandonPendingByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Order{}).
		Where("user_id = ? AND status = ?", userID, StatusPending).
		Updates(map[string]any{
			"status":     StatusAbandoned,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *Repo) MarkFailed(ctx context.Context, id string, reason string) error {
	msg := truncate(reason, 250)
	return r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         StatusFailed,
			"payment_status": PaymentFailed,
			"failure_reason": msg,
			"updated_at":     time.Now(),
		}).Error
}

// MarkPaid overwrites the settlement fields with values derived from the
// gateway verify response. Racing writers converge on identical values, so
// no lock is taken here.
func (r *Repo) MarkPaid(ctx context.Context, id string, paidAt time.Time, payload []byte) error {
	return r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         StatusPacked,
			"payment_status": PaymentPaid,
			"paid_at":        &paidAt,
			"payment_json":   datatypes.JSON(payload),
			"failure_reason": nil,
			"updated_at":     time.Now(),
		}).Error
}

func (r *Repo) MarkCancelled(ctx context.Context, id string, payload []byte) error {
	return r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         StatusCancelled,
			"payment_status": PaymentFailed,
			"payment_json":   datatypes.JSON(payload),
			"updated_at":     time.Now(),
		}).Error
}

type ListByUserParams struct {
	UserID   string
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListByUserResult struct {
	Items []ListByUserItem
	Total int64
}

type ListByUserItem struct {
	Order Order
	Count int
}

func (r *Repo) ListByUser(ctx context.Context, in ListByUserParams) (ListByUserResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", in.UserID)
	if status := strings.TrimSpace(in.Status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByUserResult{}, err
	}

	var found []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&found).Error; err != nil {
		return ListByUserResult{}, err
	}

	items := make([]ListByUserItem, len(found))
	for i, o := range found {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderItem{}).Where("order_id = ?", o.ID).Count(&count).Error; err != nil {
			count = 0
		}
		items[i] = ListByUserItem{Order: o, Count: int(count)}
	}

	return ListByUserResult{Items: items, Total: total}, nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
