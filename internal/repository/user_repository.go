package repository

import (
	"context"

	"github.com/iliyamo/localrot/internal/database"
	"github.com/iliyamo/localrot/internal/model"
)

// UserRepo is the JSON snapshot implementation of UserStore.
type UserRepo struct{ col *database.Collection[model.User] }

func NewUserRepo(col *database.Collection[model.User]) *UserRepo { return &UserRepo{col: col} }

var _ UserStore = (*UserRepo)(nil)

// Create appends u unless its username is already present.
func (r *UserRepo) Create(_ context.Context, u model.User) error {
	return r.col.Update(func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if existing.Username == u.Username {
				return nil, ErrUsernameExists
			}
		}
		return append(users, u), nil
	})
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (model.User, error) {
	users, err := r.col.Read()
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	users, err := r.col.Read()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
