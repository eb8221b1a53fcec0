// Package handler exposes the case endpoints. Every route sits behind the
// auth middleware; finer-grained gates (volunteer, police/admin, creator)
// run in the service layer against the actor from the request context.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sangamsetu/internal/cases/models"
	"sangamsetu/internal/cases/service"
	"sangamsetu/internal/platform/middleware"
	"sangamsetu/pkg/domain"
	dErrors "sangamsetu/pkg/domain-errors"
	"sangamsetu/pkg/platform/httputil"
	"sangamsetu/pkg/requestcontext"
)

type Handler struct {
	logger            *slog.Logger
	cases             *service.Service
	validator         middleware.TokenValidator
	revocationChecker middleware.TokenRevocationChecker
}

func New(cases *service.Service, validator middleware.TokenValidator, revocationChecker middleware.TokenRevocationChecker, logger *slog.Logger) *Handler {
	return &Handler{
		logger:            logger,
		cases:             cases,
		validator:         validator,
		revocationChecker: revocationChecker,
	}
}

// Register registers the case routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.revocationChecker, h.logger))

		r.Post("/cases/missing", h.handleReportMissing)
		r.Post("/cases/missing/{id}/resolve", h.handleResolveMissing)
		r.Post("/cases/found", h.handleReportFound)
		r.Get("/cases/matches", h.handleListMatches)
		r.Post("/cases/matches/{id}/confirm", h.handleConfirmMatch)
		r.Get("/cases/dashboard", h.handleDashboard)
	})
}

func (h *Handler) handleReportMissing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	var req models.ReportMissingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	record, err := h.cases.ReportMissing(ctx, actor, req)
	if err != nil {
		h.logServiceError(ctx, "report missing failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleResolveMissing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	id, err := domain.ParseMissingPersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid missing-person id"))
		return
	}

	record, err := h.cases.ResolveMissing(ctx, actor, id)
	if err != nil {
		h.logServiceError(ctx, "resolve missing failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleReportFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	var req models.ReportFoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	found, suggestions, err := h.cases.ReportFound(ctx, actor, req)
	if err != nil {
		h.logServiceError(ctx, "report found failed", err)
		httputil.WriteError(w, err)
		return
	}

	// Suggestions marshal as an empty array, not null, when the scan found
	// nothing.
	if suggestions == nil {
		suggestions = []*models.MatchSuggestion{}
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"found_person": found,
		"suggestions":  suggestions,
	})
}

func (h *Handler) handleListMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	filter, err := parseSuggestionFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	suggestions, err := h.cases.ListMatches(ctx, actor, filter)
	if err != nil {
		h.logServiceError(ctx, "list matches failed", err)
		httputil.WriteError(w, err)
		return
	}

	if suggestions == nil {
		suggestions = []*models.MatchSuggestion{}
	}
	httputil.WriteJSON(w, http.StatusOK, suggestions)
}

func (h *Handler) handleConfirmMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	id, err := domain.ParseSuggestionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid suggestion id"))
		return
	}

	suggestion, err := h.cases.ConfirmMatch(ctx, actor, id)
	if err != nil {
		h.logServiceError(ctx, "confirm match failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, suggestion)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	stats, err := h.cases.Stats(ctx, actor)
	if err != nil {
		h.logServiceError(ctx, "dashboard stats failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// parseSuggestionFilter reads the min_confidence and confirmed query
// parameters. Malformed values are rejected rather than ignored.
func parseSuggestionFilter(r *http.Request) (models.SuggestionFilter, error) {
	var filter models.SuggestionFilter

	if raw := r.URL.Query().Get("min_confidence"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.SuggestionFilter{}, dErrors.New(dErrors.CodeBadRequest, "min_confidence must be a number")
		}
		filter.MinConfidence = &v
	}

	if raw := r.URL.Query().Get("confirmed"); raw != "" {
		confirmed := strings.EqualFold(raw, "true")
		filter.Confirmed = &confirmed
	}

	return filter, nil
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
