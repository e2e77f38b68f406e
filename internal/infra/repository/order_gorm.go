package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if err != nil {
		return model.Order{}, translateErr(err)
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	if !f.IncludeDeleted {
		q = q.Where("deleted = ?", false)
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	//期間絞り込み
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	//同時刻は登録順
	var items []model.Order
	if err := q.Order("created_at desc").Order("seq asc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, translateErr(err)
	}
	return order, nil
}

func (r *OrderGormRepository) update(ctx context.Context, orderID string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(fields)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status string, at time.Time) error {
	return r.update(ctx, orderID, map[string]interface{}{"status": status, "updated_at": at})
}

func (r *OrderGormRepository) UpdateAmountPaid(ctx context.Context, orderID string, amount decimal.Decimal, at time.Time) error {
	return r.update(ctx, orderID, map[string]interface{}{"amount_paid": amount, "updated_at": at})
}

func (r *OrderGormRepository) MarkDeleted(ctx context.Context, orderID string, at time.Time) error {
	return r.update(ctx, orderID, map[string]interface{}{"deleted": true, "updated_at": at})
}
