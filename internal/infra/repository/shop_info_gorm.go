package repository

import (
	"context"

	"backoffice/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopInfoGormRepository struct {
	db *gorm.DB
}

func NewShopInfoGormRepository(db *gorm.DB) *ShopInfoGormRepository {
	return &ShopInfoGormRepository{db: db}
}

func (r *ShopInfoGormRepository) Get(ctx context.Context) (model.ShopInfo, error) {
	var s model.ShopInfo
	if err := r.db.WithContext(ctx).Where("id = ?", model.ShopInfoID).First(&s).Error; err != nil {
		return model.ShopInfo{}, translateErr(err)
	}
	return s, nil
}

// 1行だけを upsert する
func (r *ShopInfoGormRepository) Save(ctx context.Context, info model.ShopInfo) error {
	info.ID = model.ShopInfoID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "phone", "invoice_footer", "updated_at"}),
	}).Create(&info).Error
}
