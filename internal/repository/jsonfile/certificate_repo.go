package jsonfile

import (
	"context"

	"github.com/certiverify/api/internal/domain"
)

const certificatesCollection = "certificates"

type certificateRepository struct {
	store *Store
}

func NewCertificateRepository(store *Store) *certificateRepository {
	return &certificateRepository{store: store}
}

func (r *certificateRepository) Create(ctx context.Context, cert *domain.Certificate) error {
	var certs []domain.Certificate
	r.store.Read(certificatesCollection, &certs)
	certs = append(certs, *cert)
	return r.store.Write(certificatesCollection, certs)
}

func (r *certificateRepository) List(ctx context.Context) ([]domain.Certificate, error) {
	var certs []domain.Certificate
	r.store.Read(certificatesCollection, &certs)
	return certs, nil
}

func (r *certificateRepository) ReplaceAll(ctx context.Context, certs []domain.Certificate) error {
	return r.store.Write(certificatesCollection, certs)
}
