package memory

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type userRepo struct {
	st *state
}

func (r *userRepo) index(id string) int {
	_, i, ok := lo.FindIndexOf(r.st.users, func(u model.User) bool {
		return u.ID == id && !u.IsDeleted()
	})
	if !ok {
		return -1
	}
	return i
}

func (r *userRepo) match(f repo.UserListFilter) func(u model.User, _ int) bool {
	return func(u model.User, _ int) bool {
		if u.IsDeleted() {
			return false
		}
		return f.Role == nil || u.Role == *f.Role
	}
}

func (r *userRepo) List(ctx context.Context, f repo.UserListFilter) ([]model.User, error) {
	return lo.Filter(r.st.users, r.match(f)), nil
}

func (r *userRepo) FindByID(ctx context.Context, userID string) (model.User, error) {
	i := r.index(userID)
	if i < 0 {
		return model.User{}, repo.ErrNotFound
	}
	return r.st.users[i], nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	return lo.Filter(r.st.users, func(u model.User, _ int) bool {
		return lo.Contains(ids, u.ID)
	}), nil
}

func (r *userRepo) Count(ctx context.Context, f repo.UserListFilter) (int64, error) {
	return int64(len(lo.Filter(r.st.users, r.match(f)))), nil
}

// 論理削除済みの行も一意制約の対象（DB と同じ）
func (r *userRepo) emailTaken(email *string, exceptID string) bool {
	if email == nil {
		return false
	}
	return lo.ContainsBy(r.st.users, func(u model.User) bool {
		return u.ID != exceptID && u.Email != nil && *u.Email == *email
	})
}

func (r *userRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	if r.emailTaken(user.Email, user.ID) {
		return model.User{}, repo.ErrDuplicate
	}
	r.st.users = append(r.st.users, user)
	return user, nil
}

func (r *userRepo) Update(ctx context.Context, user model.User) error {
	i := r.index(user.ID)
	if i < 0 {
		return repo.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return repo.ErrDuplicate
	}
	cur := r.st.users[i]
	user.CreatedAt = cur.CreatedAt
	r.st.users[i] = user
	return nil
}

func (r *userRepo) SoftDelete(ctx context.Context, userID string, at time.Time) error {
	i := r.index(userID)
	if i < 0 {
		return repo.ErrNotFound
	}
	r.st.users[i].DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
	return nil
}
