package repository

import (
	"context"

	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	db *gorm.DB
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return NewOrderGormRepository(r.db) }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return NewOrderItemGormRepository(r.db) }
func (r *txReposGorm) OrderStatuses() repo.OrderStatusRepository {
	return NewOrderStatusGormRepository(r.db)
}
func (r *txReposGorm) Products() repo.ProductRepository    { return NewProductGormRepository(r.db) }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return NewInventoryGormRepository(r.db) }
func (r *txReposGorm) Users() repo.UserRepository          { return NewUserGormRepository(r.db) }
func (r *txReposGorm) ShopInfo() repo.ShopInfoRepository   { return NewShopInfoGormRepository(r.db) }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository  { return NewAuditLogGormRepository(r.db) }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(&txReposGorm{db: tx})
	})
}

var _ repo.TransactionManager = (*TxManagerGorm)(nil)
