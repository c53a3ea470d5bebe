package jsonfile

import (
	"context"
	"strings"

	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/repository"
)

const usersCollection = "users"

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *userRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	var users []domain.User
	r.store.Read(usersCollection, &users)
	users = append(users, *user)
	return r.store.Write(usersCollection, users)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var users []domain.User
	r.store.Read(usersCollection, &users)
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	r.store.Read(usersCollection, &users)
	return users, nil
}
