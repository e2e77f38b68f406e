// Package memory は全リポジトリのインメモリ実装。
// テストとデモ起動（DB_DRIVER=memory）で使う。
package memory

import (
	"context"
	"slices"
	"sync"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

type state struct {
	products    []model.Product
	statuses    []model.OrderStatus
	orders      []model.Order
	items       []model.OrderItem
	users       []model.User
	adjustments []model.InventoryAdjustment
	audits      []model.AuditLog
	shop        *model.ShopInfo
	seq         int64
}

func (s *state) clone() *state {
	c := *s
	c.products = slices.Clone(s.products)
	c.statuses = slices.Clone(s.statuses)
	c.orders = slices.Clone(s.orders)
	c.items = slices.Clone(s.items)
	c.users = slices.Clone(s.users)
	c.adjustments = slices.Clone(s.adjustments)
	c.audits = slices.Clone(s.audits)
	if s.shop != nil {
		shop := *s.shop
		c.shop = &shop
	}
	return &c
}

func (s *state) nextSeq() int64 {
	s.seq++
	return s.seq
}

// Store は TransactionManager を満たす。
// WithinTx は作業コピーに対して fn を実行し、成功したときだけ差し替える。
type Store struct {
	mu   sync.Mutex
	data *state
}

func NewStore() *Store {
	return &Store{data: &state{}}
}

func (s *Store) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&txRepos{st: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

type txRepos struct {
	st *state
}

func (r *txRepos) Orders() repo.OrderRepository              { return &orderRepo{st: r.st} }
func (r *txRepos) OrderItems() repo.OrderItemRepository      { return &orderItemRepo{st: r.st} }
func (r *txRepos) OrderStatuses() repo.OrderStatusRepository { return &statusRepo{st: r.st} }
func (r *txRepos) Products() repo.ProductRepository          { return &productRepo{st: r.st} }
func (r *txRepos) Inventory() repo.InventoryRepository       { return &inventoryRepo{st: r.st} }
func (r *txRepos) Users() repo.UserRepository                { return &userRepo{st: r.st} }
func (r *txRepos) ShopInfo() repo.ShopInfoRepository         { return &shopInfoRepo{st: r.st} }
func (r *txRepos) AuditLogs() repo.AuditLogRepository        { return &auditLogRepo{st: r.st} }

var _ repo.TransactionManager = (*Store)(nil)
