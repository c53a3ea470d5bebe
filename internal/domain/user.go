package domain

import "time"

const (
	RoleIssuer = "issuer"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is an opaque bearer credential created on login. Sessions never
// expire and a user may hold several at once. A resolved session doubles as
// the caller identity on authenticated requests.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
