package service

import (
	"github.com/certiverify/api/internal/config"
	"github.com/certiverify/api/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth        *AuthService
	Certificate *CertificateService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, cfg, logger),
		Certificate: NewCertificateService(repos.Certificate, logger),
	}
}
