package jsonfile

import "github.com/certiverify/api/internal/repository"

func NewRepositories(store *Store) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(store),
		Session:     NewSessionRepository(store),
		Certificate: NewCertificateRepository(store),
	}
}
