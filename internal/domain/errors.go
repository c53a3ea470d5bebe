package domain

import "errors"

// Auth errors
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Certificate errors
var (
	ErrHashRequired = errors.New("hash required")
	// ErrCertificateNotFound covers both "no such hash" and "hash exists but
	// the caller does not own it"; the two cases are deliberately not
	// distinguished.
	ErrCertificateNotFound = errors.New("certificate not found or not owned by issuer")
)
