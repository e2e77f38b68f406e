package repository

import (
	"context"
	"errors"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type OrderStatusGormRepository struct {
	db *gorm.DB
}

func NewOrderStatusGormRepository(db *gorm.DB) *OrderStatusGormRepository {
	return &OrderStatusGormRepository{db: db}
}

// 登録順
func (r *OrderStatusGormRepository) List(ctx context.Context) ([]model.OrderStatus, error) {
	var statuses []model.OrderStatus
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&statuses).Error; err != nil {
		return []model.OrderStatus{}, err
	}
	return statuses, nil
}

func (r *OrderStatusGormRepository) FindByID(ctx context.Context, id string) (model.OrderStatus, error) {
	var s model.OrderStatus
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return model.OrderStatus{}, translateErr(err)
	}
	return s, nil
}

func (r *OrderStatusGormRepository) FindByName(ctx context.Context, name string) (model.OrderStatus, bool, error) {
	var s model.OrderStatus
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderStatus{}, false, nil
	}
	if err != nil {
		return model.OrderStatus{}, false, err
	}
	return s, true, nil
}

func (r *OrderStatusGormRepository) Create(ctx context.Context, s model.OrderStatus) (model.OrderStatus, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.OrderStatus{}, translateErr(err)
	}
	return s, nil
}

func (r *OrderStatusGormRepository) Update(ctx context.Context, s model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.OrderStatus{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":       s.Name,
		"color":      s.Color,
		"updated_at": s.UpdatedAt,
	})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 注文側のラベルには波及させない
func (r *OrderStatusGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderStatus{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
