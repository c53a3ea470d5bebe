package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/certiverify/api/internal/api/middleware"
	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type MeResponse struct {
	OK   bool            `json:"ok"`
	User *domain.Session `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	// Malformed bodies fall through to field validation, same as an empty one.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "name, email, password required")
		return
	}

	err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			writeError(w, http.StatusConflict, "Email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, okResponse{OK: true})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	session, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		OK:    true,
		Token: session.Token,
		Email: session.Email,
		Role:  session.Role,
	})
}

// Me returns the resolved session record as the caller identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{OK: true, User: identity})
}
