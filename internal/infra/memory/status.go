package memory

import (
	"context"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
)

type statusRepo struct {
	st *state
}

func (r *statusRepo) index(id string) int {
	_, i, ok := lo.FindIndexOf(r.st.statuses, func(s model.OrderStatus) bool { return s.ID == id })
	if !ok {
		return -1
	}
	return i
}

func (r *statusRepo) List(ctx context.Context) ([]model.OrderStatus, error) {
	return append([]model.OrderStatus{}, r.st.statuses...), nil
}

func (r *statusRepo) FindByID(ctx context.Context, id string) (model.OrderStatus, error) {
	i := r.index(id)
	if i < 0 {
		return model.OrderStatus{}, repo.ErrNotFound
	}
	return r.st.statuses[i], nil
}

func (r *statusRepo) FindByName(ctx context.Context, name string) (model.OrderStatus, bool, error) {
	s, ok := lo.Find(r.st.statuses, func(s model.OrderStatus) bool { return s.Name == name })
	return s, ok, nil
}

func (r *statusRepo) Create(ctx context.Context, s model.OrderStatus) (model.OrderStatus, error) {
	if lo.ContainsBy(r.st.statuses, func(x model.OrderStatus) bool { return x.Name == s.Name || x.ID == s.ID }) {
		return model.OrderStatus{}, repo.ErrDuplicate
	}
	s.Seq = r.st.nextSeq()
	r.st.statuses = append(r.st.statuses, s)
	return s, nil
}

func (r *statusRepo) Update(ctx context.Context, s model.OrderStatus) error {
	i := r.index(s.ID)
	if i < 0 {
		return repo.ErrNotFound
	}
	if lo.ContainsBy(r.st.statuses, func(x model.OrderStatus) bool { return x.Name == s.Name && x.ID != s.ID }) {
		return repo.ErrDuplicate
	}
	cur := r.st.statuses[i]
	cur.Name = s.Name
	cur.Color = s.Color
	cur.UpdatedAt = s.UpdatedAt
	r.st.statuses[i] = cur
	return nil
}

func (r *statusRepo) Delete(ctx context.Context, id string) error {
	i := r.index(id)
	if i < 0 {
		return repo.ErrNotFound
	}
	r.st.statuses = append(r.st.statuses[:i:i], r.st.statuses[i+1:]...)
	return nil
}
