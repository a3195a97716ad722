package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gigmatch/internal/domain/auth"
	"gigmatch/internal/transport/http/api"
	"gigmatch/internal/transport/http/middleware"
	"gigmatch/internal/transport/http/shared"
)

type Handler struct {
	Service   *auth.Service
	JWTSecret string
	TokenTTL  time.Duration
}

func NewHandler(service *auth.Service, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{Service: service, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.Reject(w, requestID, payload) {
		return
	}

	user, err := h.Service.FindActiveUserByEmail(r.Context(), payload.Email)
	if errors.Is(err, auth.ErrUserNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", requestID)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:    user.ID,
		Role:      user.Role,
		SubjectID: user.SubjectID,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", requestID)
		return
	}

	_ = h.Service.UpdateLastLogin(r.Context(), user.ID)

	api.Success(w, map[string]any{
		"token":     token,
		"role":      user.Role,
		"subjectId": user.SubjectID,
	}, requestID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout is client-side discard.
	api.Success(w, map[string]string{"message": "logged out"}, middleware.GetRequestID(r.Context()))
}
