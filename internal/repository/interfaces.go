package repository

import (
	"context"
	"errors"

	"github.com/certiverify/api/internal/domain"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns the first user whose email matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
}

type CertificateRepository interface {
	Create(ctx context.Context, cert *domain.Certificate) error
	// List returns all certificates in storage order.
	List(ctx context.Context) ([]domain.Certificate, error)
	// ReplaceAll persists the full collection, overwriting whatever is stored.
	ReplaceAll(ctx context.Context, certs []domain.Certificate) error
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Certificate CertificateRepository
}
