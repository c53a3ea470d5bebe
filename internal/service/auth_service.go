package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/certiverify/api/internal/config"
	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bearerPrefix = "Bearer "

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger.With(zap.String("service", "auth")),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

// Register creates a durable user record. Email uniqueness is
// case-insensitive and checked here only; no session is created.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return domain.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleIssuer
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered",
		zap.String("email", user.Email),
		zap.String("role", user.Role),
	)
	return nil
}

// Login scans users for a case-insensitive email match whose stored hash
// verifies against the supplied password, then creates a fresh session.
// Unknown email and wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.Session, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		user := &users[i]
		if !strings.EqualFold(user.Email, input.Email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
			continue
		}

		token, err := newToken()
		if err != nil {
			return nil, err
		}
		session := &domain.Session{
			Token:     token,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}

		s.logger.Info("user logged in", zap.String("email", user.Email))
		return session, nil
	}

	return nil, domain.ErrInvalidCredentials
}

// ResolveToken maps an Authorization header value to a session. It accepts
// either a bare token or a "Bearer <token>" value with a case-insensitive
// prefix, and returns nil when nothing matches. Tokens never expire.
func (s *AuthService) ResolveToken(ctx context.Context, headerValue string) *domain.Session {
	if headerValue == "" {
		return nil
	}

	token := headerValue
	if len(headerValue) >= len(bearerPrefix) && strings.EqualFold(headerValue[:len(bearerPrefix)], bearerPrefix) {
		token = headerValue[len(bearerPrefix):]
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil
	}
	return session
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
