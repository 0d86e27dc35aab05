package repository

import (
	"context"
	"errors"
	"time"

	"aura/internal/model"
	"aura/internal/storage"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type userRepository struct {
	store *storage.Collection[model.User]
}

// NewUserRepository builds a repository over the users collection.
func NewUserRepository(store *storage.Collection[model.User]) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.store.Update(func(users []model.User) ([]model.User, error) {
		return append(users, *user), nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.store.Update(func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].ID == id {
				users[i].LastLogin = at
				return users, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *userRepository) find(match func(*model.User) bool) (*model.User, error) {
	users, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(&users[i]) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}
