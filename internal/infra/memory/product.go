package memory

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type productRepo struct {
	st *state
}

func (r *productRepo) index(id string) int {
	_, i, ok := lo.FindIndexOf(r.st.products, func(p model.Product) bool {
		return p.ID == id && !p.IsDeleted()
	})
	if !ok {
		return -1
	}
	return i
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	return lo.Filter(r.st.products, func(p model.Product, _ int) bool {
		return !p.IsDeleted()
	}), nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	i := r.index(id)
	if i < 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.st.products[i], nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	return lo.Filter(r.st.products, func(p model.Product, _ int) bool {
		return lo.Contains(ids, p.ID)
	}), nil
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	return lo.Filter(r.st.products, func(p model.Product, _ int) bool {
		return !p.IsDeleted() && p.Stock < threshold
	}), nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	return int64(lo.CountBy(r.st.products, func(p model.Product) bool {
		return !p.IsDeleted()
	})), nil
}

func (r *productRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if lo.ContainsBy(r.st.products, func(x model.Product) bool { return x.ID == p.ID }) {
		return model.Product{}, repo.ErrDuplicate
	}
	r.st.products = append(r.st.products, p)
	return p, nil
}

func (r *productRepo) Update(ctx context.Context, p model.Product) error {
	i := r.index(p.ID)
	if i < 0 {
		return repo.ErrNotFound
	}
	cur := r.st.products[i]
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.Stock = p.Stock
	cur.UpdatedAt = p.UpdatedAt
	r.st.products[i] = cur
	return nil
}

func (r *productRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	i := r.index(id)
	if i < 0 {
		return repo.ErrNotFound
	}
	r.st.products[i].DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
	return nil
}

type inventoryRepo struct {
	st *state
}

func (r *inventoryRepo) SetStock(ctx context.Context, productID string, newStock int64) error {
	i := (&productRepo{st: r.st}).index(productID)
	if i < 0 {
		return repo.ErrNotFound
	}
	r.st.products[i].Stock = newStock
	return nil
}

func (r *inventoryRepo) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	adj.ID = r.st.nextSeq()
	r.st.adjustments = append(r.st.adjustments, adj)
	return nil
}

func (r *inventoryRepo) ListAdjustments(ctx context.Context, productID string) ([]model.InventoryAdjustment, error) {
	out := lo.Filter(r.st.adjustments, func(a model.InventoryAdjustment, _ int) bool {
		return a.ProductID == productID
	})
	return lo.Reverse(out), nil
}
