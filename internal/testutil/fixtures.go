package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	role     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("test_%s@example.com", suffix),
		password: "testpassword123",
		role:     domain.RoleIssuer,
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.role = role
	return b
}

// Build persists the user and returns it with the raw password.
func (b *UserBuilder) Build(t *testing.T, users repository.UserRepository) (*domain.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashed),
		Role:         b.role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// CertificateBuilder creates test certificates with a builder pattern
type CertificateBuilder struct {
	studentName string
	studentID   string
	program     string
	issueDate   string
	hash        string
	status      string
	issuerEmail string
}

// NewCertificateBuilder creates a new CertificateBuilder with default values
func NewCertificateBuilder() *CertificateBuilder {
	suffix := uuid.New().String()[:8]
	return &CertificateBuilder{
		studentName: fmt.Sprintf("student_%s", suffix),
		studentID:   fmt.Sprintf("S%s", suffix),
		program:     "CS",
		issueDate:   "2024-01-01",
		hash:        uuid.New().String(),
		status:      domain.StatusValid,
		issuerEmail: "issuer@example.com",
	}
}

func (b *CertificateBuilder) WithHash(hash string) *CertificateBuilder {
	b.hash = hash
	return b
}

func (b *CertificateBuilder) WithStatus(status string) *CertificateBuilder {
	b.status = status
	return b
}

func (b *CertificateBuilder) WithIssuer(email string) *CertificateBuilder {
	b.issuerEmail = email
	return b
}

func (b *CertificateBuilder) WithStudentName(name string) *CertificateBuilder {
	b.studentName = name
	return b
}

// Build persists the certificate and returns it.
func (b *CertificateBuilder) Build(t *testing.T, certs repository.CertificateRepository) *domain.Certificate {
	t.Helper()

	cert := &domain.Certificate{
		ID:          uuid.New().String(),
		StudentName: b.studentName,
		StudentID:   b.studentID,
		Program:     b.program,
		IssueDate:   b.issueDate,
		Hash:        b.hash,
		Tx:          uuid.New().String(),
		Status:      b.status,
		IssuerEmail: b.issuerEmail,
		CreatedAt:   time.Now().UTC(),
	}
	if err := certs.Create(context.Background(), cert); err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	return cert
}
