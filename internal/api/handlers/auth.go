package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bariskara/product-api/internal/api/httpx"
	"github.com/bariskara/product-api/internal/metrics"
	"github.com/bariskara/product-api/internal/middleware"
	"github.com/bariskara/product-api/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body := middleware.Body(r.Context())
	username, _ := body["username"].(string)
	password, _ := body["password"].(string)

	res, err := h.svc.Login(r.Context(), username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		metrics.AuthFailures.WithLabelValues("invalid_credentials").Inc()
		httpx.Unauthorized(w, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("login", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "An error occurred. Please try again", nil)
		return
	}

	httpx.Success(w, http.StatusOK, "Login successful", map[string]any{
		"user":  res.User,
		"token": res.Token,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body := middleware.Body(r.Context())
	username, _ := body["username"].(string)
	password, _ := body["password"].(string)

	res, err := h.svc.Register(r.Context(), username, password)
	if errors.Is(err, services.ErrUsernameTaken) {
		metrics.AuthFailures.WithLabelValues("username_taken").Inc()
		httpx.Error(w, http.StatusConflict, "Username already exists", nil)
		return
	}
	if err != nil {
		slog.Error("register", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "An error occurred. Please try again", nil)
		return
	}

	httpx.Success(w, http.StatusCreated, "User registered successfully", map[string]any{
		"user":        res.User,
		"accessToken": res.Token,
	})
}
