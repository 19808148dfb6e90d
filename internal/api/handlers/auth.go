package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"omniroute-console/internal/adapters/repositories"
	"omniroute-console/internal/api/dto"
	"omniroute-console/internal/platform/token"
)

// UserRepository is the account storage the auth handlers depend on.
type UserRepository interface {
	Create(ctx context.Context, u repositories.UserRecord) (*repositories.UserRecord, error)
	FindByEmail(ctx context.Context, email string) (*repositories.UserRecord, error)
}

type AuthHandler struct {
	Users  UserRepository
	Tokens *token.Issuer
}

// Register creates an account and signs the caller in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, r, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, r, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register failed: hash: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.Users.Create(r.Context(), repositories.UserRecord{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
	})
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		writeError(w, r, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		log.Printf("register failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login verifies the credential and returns a fresh bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.Users.FindByEmail(r.Context(), email)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, http.StatusUnauthorized, "incorrect email or password")
		return
	}
	if err != nil {
		log.Printf("login failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, r, http.StatusUnauthorized, "incorrect email or password")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *repositories.UserRecord) {
	signed, err := h.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("issue token failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, r, status, dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   h.Tokens.TTLSeconds(),
		FullName:    user.FullName,
		Email:       user.Email,
	})
}
