package usecase

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/validator"
)

// 注文ステータスのレジストリ。注文側のラベルとは疎結合で、削除しても注文は変わらない。
type StatusUsecase struct {
	tx    repo.TransactionManager
	clock Clock
	ids   IDGenerator
}

func NewStatusUsecase(tx repo.TransactionManager, clock Clock, ids IDGenerator) *StatusUsecase {
	return &StatusUsecase{tx: tx, clock: clock, ids: ids}
}

type StatusUpdateInput struct {
	Name  *string
	Color *model.StatusColor
}

func (u *StatusUsecase) List(ctx context.Context) ([]model.OrderStatus, error) {
	var out []model.OrderStatus
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		out, err = r.OrderStatuses().List(ctx)
		return err
	})
	if err != nil {
		return []model.OrderStatus{}, dbError(err)
	}
	return out, nil
}

func (u *StatusUsecase) Create(ctx context.Context, name string, color model.StatusColor) (model.OrderStatus, error) {
	name = strings.TrimSpace(name)
	if err := validator.Required("name", name); err != nil {
		return model.OrderStatus{}, fromValidator(err)
	}
	if err := validator.Color(color); err != nil {
		return model.OrderStatus{}, fromValidator(err)
	}

	var out model.OrderStatus
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, found, err := r.OrderStatuses().FindByName(ctx, name); err != nil {
			return dbError(err)
		} else if found {
			return validationError("status %q already exists", name)
		}

		now := u.clock.Now()
		created, err := r.OrderStatuses().Create(ctx, model.OrderStatus{
			ID:        u.ids.NewID(),
			Name:      name,
			Color:     color,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return validationError("status %q already exists", name)
		}
		if err != nil {
			return dbError(err)
		}
		out = created

		if err := writeAudit(ctx, r, now, model.AuditActionCreateStatus, model.AuditResourceStatus, created.ID, nil, created); err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return model.OrderStatus{}, passOrDBError(err)
	}
	return out, nil
}

func (u *StatusUsecase) Update(ctx context.Context, id string, in StatusUpdateInput) (model.OrderStatus, error) {
	if strings.TrimSpace(id) == "" {
		return model.OrderStatus{}, validationError("invalid id")
	}

	var out model.OrderStatus
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.OrderStatuses().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("status")
		}
		if err != nil {
			return dbError(err)
		}

		next := cur
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if err := validator.Required("name", name); err != nil {
				return fromValidator(err)
			}
			other, found, err := r.OrderStatuses().FindByName(ctx, name)
			if err != nil {
				return dbError(err)
			}
			if found && other.ID != cur.ID {
				return validationError("status %q already exists", name)
			}
			next.Name = name
		}
		if in.Color != nil {
			if err := validator.Color(*in.Color); err != nil {
				return fromValidator(err)
			}
			next.Color = *in.Color
		}
		next.UpdatedAt = u.clock.Now()

		err = r.OrderStatuses().Update(ctx, next)
		if errors.Is(err, repo.ErrDuplicate) {
			return validationError("status %q already exists", next.Name)
		}
		if err != nil {
			return dbError(err)
		}
		out = next

		if err := writeAudit(ctx, r, next.UpdatedAt, model.AuditActionUpdateStatus, model.AuditResourceStatus, id, cur, next); err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return model.OrderStatus{}, passOrDBError(err)
	}
	return out, nil
}

func (u *StatusUsecase) Delete(ctx context.Context, id string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.OrderStatuses().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("status")
		}
		if err != nil {
			return dbError(err)
		}
		if err := r.OrderStatuses().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("status")
			}
			return dbError(err)
		}
		if err := writeAudit(ctx, r, u.clock.Now(), model.AuditActionDeleteStatus, model.AuditResourceStatus, id, cur, nil); err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return passOrDBError(err)
	}
	return nil
}

// SeedDefaults はレジストリが空のときだけ既定のステータスを登録する。
func (u *StatusUsecase) SeedDefaults(ctx context.Context) (bool, error) {
	seeded := false
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, err := r.OrderStatuses().List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		now := u.clock.Now()
		for _, s := range model.DefaultStatuses {
			s.ID = u.ids.NewID()
			s.CreatedAt = now
			s.UpdatedAt = now
			if _, err := r.OrderStatuses().Create(ctx, s); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, dbError(err)
	}
	return seeded, nil
}
