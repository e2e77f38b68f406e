package memory

import (
	"context"
	"slices"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type orderRepo struct {
	st *state
}

func (r *orderRepo) index(id string) int {
	_, i, ok := lo.FindIndexOf(r.st.orders, func(o model.Order) bool { return o.ID == id })
	if !ok {
		return -1
	}
	return i
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	i := r.index(orderID)
	if i < 0 {
		return model.Order{}, repo.ErrNotFound
	}
	return r.st.orders[i], nil
}

func (r *orderRepo) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	out := lo.Filter(r.st.orders, func(o model.Order, _ int) bool {
		if o.Deleted && !f.IncludeDeleted {
			return false
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			return false
		}
		if f.Status != "" && o.Status != f.Status {
			return false
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			return false
		}
		if f.To != nil && o.CreatedAt.After(*f.To) {
			return false
		}
		return true
	})

	// 登録順のまま安定ソートするので、同時刻は Seq 昇順
	slices.SortStableFunc(out, func(a, b model.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *orderRepo) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if r.index(order.ID) >= 0 {
		return model.Order{}, repo.ErrDuplicate
	}
	order.Seq = r.st.nextSeq()
	r.st.orders = append(r.st.orders, order)
	return order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID string, status string, at time.Time) error {
	i := r.index(orderID)
	if i < 0 {
		return repo.ErrNotFound
	}
	r.st.orders[i].Status = status
	r.st.orders[i].UpdatedAt = at
	return nil
}

func (r *orderRepo) UpdateAmountPaid(ctx context.Context, orderID string, amount decimal.Decimal, at time.Time) error {
	i := r.index(orderID)
	if i < 0 {
		return repo.ErrNotFound
	}
	r.st.orders[i].AmountPaid = amount
	r.st.orders[i].UpdatedAt = at
	return nil
}

func (r *orderRepo) MarkDeleted(ctx context.Context, orderID string, at time.Time) error {
	i := r.index(orderID)
	if i < 0 {
		return repo.ErrNotFound
	}
	r.st.orders[i].Deleted = true
	r.st.orders[i].UpdatedAt = at
	return nil
}

type orderItemRepo struct {
	st *state
}

func (r *orderItemRepo) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	for _, it := range items {
		it.ID = r.st.nextSeq()
		it.OrderID = orderID
		r.st.items = append(r.st.items, it)
	}
	return nil
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	return r.ListByOrderIDs(ctx, []string{orderID})
}

func (r *orderItemRepo) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItem, error) {
	out := lo.Filter(r.st.items, func(it model.OrderItem, _ int) bool {
		return lo.Contains(orderIDs, it.OrderID)
	})
	slices.SortStableFunc(out, func(a, b model.OrderItem) int {
		return a.Position - b.Position
	})
	return out, nil
}
