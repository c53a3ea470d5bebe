package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusNotFound is the sentinel verification status for unknown hashes.
// Verifying an unknown certificate is an expected outcome, not an error.
const StatusNotFound = "Not Found"

type CertificateService struct {
	certRepo repository.CertificateRepository
	logger   *zap.Logger
}

func NewCertificateService(certRepo repository.CertificateRepository, logger *zap.Logger) *CertificateService {
	return &CertificateService{
		certRepo: certRepo,
		logger:   logger.With(zap.String("service", "certificate")),
	}
}

type IssueInput struct {
	StudentName string
	StudentID   string
	Program     string
	IssueDate   string
}

type VerifyResult struct {
	Status string              `json:"status"`
	Record *domain.Certificate `json:"record,omitempty"`
}

// List returns all certificates for admins, and only the caller's own
// records for everyone else.
func (s *CertificateService) List(ctx context.Context, identity *domain.Session) ([]domain.Certificate, error) {
	all, err := s.certRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if identity.IsAdmin() {
		if all == nil {
			all = []domain.Certificate{}
		}
		return all, nil
	}

	owned := make([]domain.Certificate, 0, len(all))
	for _, cert := range all {
		if cert.IssuerEmail == identity.Email {
			owned = append(owned, cert)
		}
	}
	return owned, nil
}

// Issue creates a certificate for the caller. The hash is the SHA-256 of the
// uploaded file when present, otherwise of the pipe-joined text fields.
// Duplicate hashes are allowed; a re-issue is indistinguishable from a new
// certificate.
func (s *CertificateService) Issue(ctx context.Context, identity *domain.Session, input IssueInput, fileBytes []byte) (*domain.Certificate, error) {
	var digest [sha256.Size]byte
	if len(fileBytes) > 0 {
		digest = sha256.Sum256(fileBytes)
	} else {
		text := strings.TrimSpace(input.StudentName + "|" + input.StudentID + "|" + input.Program + "|" + input.IssueDate)
		digest = sha256.Sum256([]byte(text))
	}

	issueDate := input.IssueDate
	if issueDate == "" {
		issueDate = time.Now().Format("2006-01-02")
	}

	cert := &domain.Certificate{
		ID:          uuid.New().String(),
		StudentName: input.StudentName,
		StudentID:   input.StudentID,
		Program:     input.Program,
		IssueDate:   issueDate,
		Hash:        hex.EncodeToString(digest[:]),
		Tx:          uuid.New().String(),
		Status:      domain.StatusValid,
		IssuerEmail: identity.Email,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("certificate issued",
		zap.String("id", cert.ID),
		zap.String("hash", cert.Hash),
		zap.String("issuer", cert.IssuerEmail),
	)
	return cert, nil
}

// Verify is a public lookup of a certificate's status by content hash. The
// first record in storage order wins; an unknown hash yields StatusNotFound
// with no record. Verify never mutates storage.
func (s *CertificateService) Verify(ctx context.Context, hash string, fileBytes []byte) (*VerifyResult, error) {
	if len(fileBytes) > 0 {
		digest := sha256.Sum256(fileBytes)
		hash = hex.EncodeToString(digest[:])
	} else {
		hash = strings.ToLower(strings.TrimSpace(hash))
	}
	if hash == "" {
		return nil, domain.ErrHashRequired
	}

	all, err := s.certRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.ToLower(all[i].Hash) == hash {
			return &VerifyResult{Status: all[i].Status, Record: &all[i]}, nil
		}
	}
	return &VerifyResult{Status: StatusNotFound}, nil
}

// Revoke flips every matching record the caller is authorized for to
// Revoked. Because hashes are not unique, one call can revoke several
// records sharing a hash; that fan-out is intentional. The collection is
// persisted only when at least one record changed.
func (s *CertificateService) Revoke(ctx context.Context, identity *domain.Session, hash string) error {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if hash == "" {
		return domain.ErrHashRequired
	}

	all, err := s.certRepo.List(ctx)
	if err != nil {
		return err
	}

	updated := 0
	for i := range all {
		if strings.ToLower(all[i].Hash) != hash {
			continue
		}
		if !identity.IsAdmin() && all[i].IssuerEmail != identity.Email {
			continue
		}
		all[i].Status = domain.StatusRevoked
		updated++
	}

	if updated == 0 {
		return domain.ErrCertificateNotFound
	}
	if err := s.certRepo.ReplaceAll(ctx, all); err != nil {
		return err
	}

	s.logger.Info("certificates revoked",
		zap.String("hash", hash),
		zap.Int("count", updated),
		zap.String("caller", identity.Email),
	)
	return nil
}

// Stats counts certificates in a single pass. Statuses other than Valid and
// Revoked count toward the total but neither bucket.
func (s *CertificateService) Stats(ctx context.Context) (*domain.Stats, error) {
	all, err := s.certRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{Total: len(all)}
	for _, cert := range all {
		switch cert.Status {
		case domain.StatusValid:
			stats.Valid++
		case domain.StatusRevoked:
			stats.Revoked++
		}
	}
	return stats, nil
}
