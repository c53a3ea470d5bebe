package jsonfile

import (
	"context"

	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/repository"
)

const sessionsCollection = "sessions"

type sessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *sessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	var sessions []domain.Session
	r.store.Read(sessionsCollection, &sessions)
	sessions = append(sessions, *session)
	return r.store.Write(sessionsCollection, sessions)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var sessions []domain.Session
	r.store.Read(sessionsCollection, &sessions)
	for i := range sessions {
		if sessions[i].Token == token {
			return &sessions[i], nil
		}
	}
	return nil, repository.ErrNotFound
}
