package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"sangamsetu/internal/accounts/models"
	"sangamsetu/internal/accounts/service"
	"sangamsetu/internal/platform/middleware"
	dErrors "sangamsetu/pkg/domain-errors"
	"sangamsetu/pkg/platform/httputil"
	"sangamsetu/pkg/requestcontext"
)

// Handler exposes the accounts endpoints. Register and login are public;
// profile and logout sit behind the auth middleware.
type Handler struct {
	logger            *slog.Logger
	accounts          *service.Service
	validator         middleware.TokenValidator
	revocationChecker middleware.TokenRevocationChecker
}

func New(accounts *service.Service, validator middleware.TokenValidator, revocationChecker middleware.TokenRevocationChecker, logger *slog.Logger) *Handler {
	return &Handler{
		logger:            logger,
		accounts:          accounts,
		validator:         validator,
		revocationChecker: revocationChecker,
	}
}

// Register registers the accounts routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.revocationChecker, h.logger))
		r.Get("/auth/profile", h.handleProfile)
		r.Post("/auth/logout", h.handleLogout)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid register request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.accounts.Register(ctx, req)
	if err != nil {
		h.logServiceError(ctx, "register failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.accounts.Login(ctx, req)
	if err != nil {
		h.logServiceError(ctx, "login failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	user, err := h.accounts.Profile(ctx, actor)
	if err != nil {
		h.logServiceError(ctx, "profile lookup failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"groups":   user.Groups,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawToken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthenticated, "missing bearer token"))
		return
	}

	if err := h.accounts.Logout(ctx, rawToken); err != nil {
		h.logServiceError(ctx, "logout failed", err)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logServiceError(ctx context.Context, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
