package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/validator"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// 商品カタログと在庫。
type ProductUsecase struct {
	tx       repo.TransactionManager
	clock    Clock
	ids      IDGenerator
	notifier *LedgerNotifier
}

// DI
func NewProductUsecase(tx repo.TransactionManager, clock Clock, ids IDGenerator, notifier *LedgerNotifier) *ProductUsecase {
	return &ProductUsecase{tx: tx, clock: clock, ids: ids, notifier: notifier}
}

type ProductOutput struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Money     `json:"price"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       NewMoney(p.Price),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductOutputs(ps []model.Product) []ProductOutput {
	return lo.Map(ps, func(p model.Product, _ int) ProductOutput { return toProductOutput(p) })
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
}

func (in ProductInput) validate() error {
	if err := validator.Required("name", in.Name); err != nil {
		return fromValidator(err)
	}
	if err := validator.Money("price", in.Price); err != nil {
		return fromValidator(err)
	}
	if in.Stock < 0 {
		return validationError("stock must be >= 0")
	}
	return nil
}

type stockAdjustedPayload struct {
	ProductID string `json:"product_id"`
	Before    int64  `json:"before"`
	After     int64  `json:"after"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"`
}

func (u *ProductUsecase) List(ctx context.Context) ([]ProductOutput, error) {
	var out []ProductOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ps, err := r.Products().List(ctx)
		if err != nil {
			return err
		}
		out = toProductOutputs(ps)
		return nil
	})
	if err != nil {
		return []ProductOutput{}, dbError(err)
	}
	return out, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (ProductOutput, error) {
	var out ProductOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("product")
		}
		if err != nil {
			return dbError(err)
		}
		out = toProductOutput(p)
		return nil
	})
	if err != nil {
		return ProductOutput{}, passOrDBError(err)
	}
	return out, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (ProductOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()
		p, err := r.Products().Create(ctx, model.Product{
			ID:          u.ids.NewID(),
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return dbError(err)
		}
		if err := writeAudit(ctx, r, now, model.AuditActionCreateProduct, model.AuditResourceProduct, p.ID, nil, toProductOutput(p)); err != nil {
			return dbError(err)
		}
		out = toProductOutput(p)
		return nil
	})
	if err != nil {
		return ProductOutput{}, passOrDBError(err)
	}
	u.notifier.InvalidateReports(ctx)
	return out, nil
}

// Update は価格も書き換えるが、作成済み注文の単価スナップショットは変わらない。
func (u *ProductUsecase) Update(ctx context.Context, id string, in ProductInput) (ProductOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.Products().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("product")
		}
		if err != nil {
			return dbError(err)
		}

		next := cur
		next.Name = in.Name
		next.Description = in.Description
		next.Price = in.Price
		next.Stock = in.Stock
		next.UpdatedAt = u.clock.Now()

		if err := r.Products().Update(ctx, next); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("product")
			}
			return dbError(err)
		}
		if err := writeAudit(ctx, r, next.UpdatedAt, model.AuditActionUpdateProduct, model.AuditResourceProduct, id, toProductOutput(cur), toProductOutput(next)); err != nil {
			return dbError(err)
		}
		out = toProductOutput(next)
		return nil
	})
	if err != nil {
		return ProductOutput{}, passOrDBError(err)
	}
	u.notifier.InvalidateReports(ctx)
	return out, nil
}

// Delete は論理削除。既存注文の明細からは引き続き参照できる。
func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.Products().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("product")
		}
		if err != nil {
			return dbError(err)
		}
		now := u.clock.Now()
		if err := r.Products().SoftDelete(ctx, id, now); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("product")
			}
			return dbError(err)
		}
		if err := writeAudit(ctx, r, now, model.AuditActionDeleteProduct, model.AuditResourceProduct, id, toProductOutput(cur), nil); err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return passOrDBError(err)
	}
	u.notifier.InvalidateReports(ctx)
	return nil
}

// UpdateInventory は在庫を newStock に設定し、差分を履歴に残す。
func (u *ProductUsecase) UpdateInventory(ctx context.Context, productID string, newStock int64, reason string) error {
	if newStock < 0 {
		return validationError("stock must be >= 0")
	}
	reason = strings.TrimSpace(reason)
	if err := validator.Required("reason", reason); err != nil {
		return fromValidator(err)
	}

	var payload stockAdjustedPayload
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//変更前の在庫（before）
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("product")
		}
		if err != nil {
			return dbError(err)
		}

		//在庫の現在値を更新
		if err := r.Inventory().SetStock(ctx, productID, newStock); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("product")
			}
			return dbError(err)
		}

		//履歴を作成（差分）
		now := u.clock.Now()
		actor, _ := ActorFromContext(ctx)
		adj := model.InventoryAdjustment{
			ProductID:   productID,
			ActorUserID: actor,
			Delta:       newStock - p.Stock,
			Reason:      reason,
			CreatedAt:   now,
		}
		if err := r.Inventory().CreateAdjustment(ctx, adj); err != nil {
			return dbError(err)
		}

		if err := writeAudit(ctx, r, now, model.AuditActionUpdateStock, model.AuditResourceProduct, productID,
			map[string]int64{"stock": p.Stock}, map[string]int64{"stock": newStock}); err != nil {
			return dbError(err)
		}

		payload = stockAdjustedPayload{
			ProductID: productID,
			Before:    p.Stock,
			After:     newStock,
			Delta:     adj.Delta,
			Reason:    reason,
		}
		return nil
	})
	if err != nil {
		return passOrDBError(err)
	}

	u.notifier.Notify(ctx, model.EventStockAdjusted, productID, payload)
	return nil
}

func (u *ProductUsecase) ListAdjustments(ctx context.Context, productID string) ([]model.InventoryAdjustment, error) {
	var out []model.InventoryAdjustment
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("product")
			}
			return dbError(err)
		}
		var err error
		out, err = r.Inventory().ListAdjustments(ctx, productID)
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return []model.InventoryAdjustment{}, passOrDBError(err)
	}
	return out, nil
}
