package usecase

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/validator"
)

// ユーザー管理（顧客・スタッフ）。
type UserUsecase struct {
	tx       repo.TransactionManager
	clock    Clock
	ids      IDGenerator
	hasher   PasswordHasher
	notifier *LedgerNotifier
}

func NewUserUsecase(tx repo.TransactionManager, clock Clock, ids IDGenerator, hasher PasswordHasher, notifier *LedgerNotifier) *UserUsecase {
	return &UserUsecase{tx: tx, clock: clock, ids: ids, hasher: hasher, notifier: notifier}
}

type UserInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Role    model.Role
	// 空なら（更新時は）既存のハッシュを保持
	Password string
}

// 入力を正規化してチェックする。email は空なら nil。
func (in *UserInput) normalize() (*string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if err := validator.Required("name", in.Name); err != nil {
		return nil, fromValidator(err)
	}
	if in.Role == "" {
		in.Role = model.RoleCustomer
	}
	if err := validator.Role(in.Role); err != nil {
		return nil, fromValidator(err)
	}
	if in.Password != "" {
		if err := validator.Password(in.Password); err != nil {
			return nil, fromValidator(err)
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, nil
	}
	if err := validator.Email(email); err != nil {
		return nil, fromValidator(err)
	}
	return &email, nil
}

func (u *UserUsecase) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	if role != nil {
		if err := validator.Role(*role); err != nil {
			return []model.User{}, fromValidator(err)
		}
	}
	var out []model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		out, err = r.Users().List(ctx, repo.UserListFilter{Role: role})
		return err
	})
	if err != nil {
		return []model.User{}, dbError(err)
	}
	return out, nil
}

func (u *UserUsecase) Get(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("user")
		}
		if err != nil {
			return dbError(err)
		}
		out = user
		return nil
	})
	if err != nil {
		return model.User{}, passOrDBError(err)
	}
	return out, nil
}

func (u *UserUsecase) Create(ctx context.Context, in UserInput) (model.User, error) {
	email, err := in.normalize()
	if err != nil {
		return model.User{}, err
	}
	hash := ""
	if in.Password != "" {
		if hash, err = u.hasher.Hash(in.Password); err != nil {
			return model.User{}, dbError(err)
		}
	}

	var out model.User
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()
		created, err := r.Users().Create(ctx, model.User{
			ID:           u.ids.NewID(),
			Name:         in.Name,
			Email:        email,
			Phone:        in.Phone,
			Address:      in.Address,
			Role:         in.Role,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return conflictError("email already exists")
		}
		if err != nil {
			return dbError(err)
		}
		if err := writeAudit(ctx, r, now, model.AuditActionCreateUser, model.AuditResourceUser, created.ID, nil, created); err != nil {
			return dbError(err)
		}
		out = created
		return nil
	})
	if err != nil {
		return model.User{}, passOrDBError(err)
	}
	u.notifier.InvalidateReports(ctx)
	return out, nil
}

func (u *UserUsecase) Update(ctx context.Context, id string, in UserInput) (model.User, error) {
	email, err := in.normalize()
	if err != nil {
		return model.User{}, err
	}
	hash := ""
	if in.Password != "" {
		if hash, err = u.hasher.Hash(in.Password); err != nil {
			return model.User{}, dbError(err)
		}
	}

	var out model.User
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.Users().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("user")
		}
		if err != nil {
			return dbError(err)
		}

		next := cur
		next.Name = in.Name
		next.Email = email
		next.Phone = in.Phone
		next.Address = in.Address
		next.Role = in.Role
		if hash != "" {
			next.PasswordHash = hash
		}
		next.UpdatedAt = u.clock.Now()

		err = r.Users().Update(ctx, next)
		if errors.Is(err, repo.ErrDuplicate) {
			return conflictError("email already exists")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("user")
		}
		if err != nil {
			return dbError(err)
		}
		if err := writeAudit(ctx, r, next.UpdatedAt, model.AuditActionUpdateUser, model.AuditResourceUser, id, cur, next); err != nil {
			return dbError(err)
		}
		out = next
		return nil
	})
	if err != nil {
		return model.User{}, passOrDBError(err)
	}
	u.notifier.InvalidateReports(ctx)
	return out, nil
}

// Delete は論理削除。注文の顧客名は引き続き表示される。
func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	if actor, ok := ActorFromContext(ctx); ok && actor == id {
		return validationError("cannot delete yourself")
	}
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.Users().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("user")
		}
		if err != nil {
			return dbError(err)
		}
		now := u.clock.Now()
		if err := r.Users().SoftDelete(ctx, id, now); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("user")
			}
			return dbError(err)
		}
		if err := writeAudit(ctx, r, now, model.AuditActionDeleteUser, model.AuditResourceUser, id, cur, nil); err != nil {
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

// IsActive は JWT の sub が有効なユーザーかを返す（削除済み・不在は false）。
func (u *UserUsecase) IsActive(ctx context.Context, userID string) (bool, error) {
	active := false
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		_, err := r.Users().FindByID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		active = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

// EnsureAdmin は起動時に管理者ユーザーを1件用意する。既にあれば何もしない。
func (u *UserUsecase) EnsureAdmin(ctx context.Context, id, name, email string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, validationError("admin id required")
	}
	in := UserInput{Name: name, Email: email, Role: model.RoleAdmin}
	mail, err := in.normalize()
	if err != nil {
		return false, err
	}

	created := false
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, id); err == nil {
			return nil
		} else if !errors.Is(err, repo.ErrNotFound) {
			return dbError(err)
		}
		now := u.clock.Now()
		user, err := r.Users().Create(ctx, model.User{
			ID:        id,
			Name:      in.Name,
			Email:     mail,
			Role:      model.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return conflictError("email already exists")
		}
		if err != nil {
			return dbError(err)
		}
		if err := writeAudit(ctx, r, now, model.AuditActionCreateUser, model.AuditResourceUser, user.ID, nil, user); err != nil {
			return dbError(err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, passOrDBError(err)
	}
	return created, nil
}
