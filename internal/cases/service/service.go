// Package service orchestrates the case workflows: report intake, the
// matching scan, confirmation, and filtered suggestion retrieval. All policy
// gates run here, before any storage access, with the actor passed in
// explicitly.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sangamsetu/internal/cases/matching"
	casemetrics "sangamsetu/internal/cases/metrics"
	"sangamsetu/internal/cases/models"
	"sangamsetu/internal/cases/policy"
	"sangamsetu/internal/platform/device"
	"sangamsetu/pkg/domain"
	dErrors "sangamsetu/pkg/domain-errors"
	"sangamsetu/pkg/platform/sentinel"
	"sangamsetu/pkg/requestcontext"
)

// Store is the case repository contract. Implementations are pure I/O; the
// resolved/confirmed state rules are enforced via their compare-and-set
// operations so concurrent writers serialize in storage.
type Store interface {
	CreateMissing(ctx context.Context, record *models.MissingPerson) error
	FindMissingByID(ctx context.Context, id domain.MissingPersonID) (*models.MissingPerson, error)
	ListOpenMissing(ctx context.Context) ([]*models.MissingPerson, error)
	ResolveMissing(ctx context.Context, id domain.MissingPersonID) (*models.MissingPerson, error)

	CreateFound(ctx context.Context, record *models.FoundPerson) error

	CreateSuggestion(ctx context.Context, suggestion *models.MatchSuggestion) error
	FindSuggestionByID(ctx context.Context, id domain.SuggestionID) (*models.MatchSuggestion, error)
	ListSuggestions(ctx context.Context, filter models.SuggestionFilter) ([]*models.MatchSuggestion, error)
	ConfirmSuggestion(ctx context.Context, id domain.SuggestionID) (*models.MatchSuggestion, error)

	CountMissing(ctx context.Context) (int, error)
	CountFound(ctx context.Context) (int, error)
	CountSuggestions(ctx context.Context) (int, error)
}

// StoreTx runs fn against a transactional view of the store. The found-report
// path uses it so the found record and its suggestions become visible
// together or not at all.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

// passthroughTx satisfies StoreTx for stores without transactions (the
// in-memory implementation): fn runs directly against the base store.
type passthroughTx struct {
	store Store
}

func (t passthroughTx) RunInTx(_ context.Context, fn func(store Store) error) error {
	return fn(t.store)
}

type serviceConfig struct {
	tx      StoreTx
	metrics *casemetrics.Metrics
	logger  *slog.Logger
}

type Option func(*serviceConfig)

// WithTx supplies a transactional runner (PostgreSQL deployments).
func WithTx(tx StoreTx) Option {
	return func(cfg *serviceConfig) { cfg.tx = tx }
}

// WithMetrics attaches the cases metrics.
func WithMetrics(m *casemetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithLogger attaches a logger for audit lines.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = l }
}

// Service owns the case workflows.
type Service struct {
	store   Store
	tx      StoreTx
	metrics *casemetrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewService(store Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = passthroughTx{store: store}
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		tx:      tx,
		metrics: cfg.metrics,
		logger:  logger,
		tracer:  otel.Tracer("sangamsetu/cases"),
	}
}

// ReportMissing files a missing-person report for any authenticated actor.
func (s *Service) ReportMissing(ctx context.Context, actor domain.Actor, req models.ReportMissingRequest) (*models.MissingPerson, error) {
	if !actor.Authenticated {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}

	reporterID := actor.ID
	record := &models.MissingPerson{
		ID:               domain.MissingPersonID(uuid.New()),
		Name:             strings.TrimSpace(req.Name),
		ApproxAge:        req.ApproxAge,
		Gender:           req.Gender,
		LastSeenLocation: req.LastSeenLocation,
		LastSeenDate:     req.LastSeenDate,
		Description:      req.Description,
		ReportedBy:       &reporterID,
		CreatedAt:        requestcontext.Now(ctx),
	}
	if err := s.store.CreateMissing(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create missing-person report")
	}

	s.metrics.IncrementMissingReported()
	return record, nil
}

// ReportFound files a found-person report and runs the matching scan: every
// open missing report is scored against the new record, and every pair at or
// above the acceptance threshold becomes an unconfirmed suggestion. The found
// record and its suggestions are persisted in one transaction.
func (s *Service) ReportFound(ctx context.Context, actor domain.Actor, req models.ReportFoundRequest) (*models.FoundPerson, []*models.MatchSuggestion, error) {
	if !actor.Authenticated {
		return nil, nil, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}
	if !policy.IsVolunteerOrPolice(actor) {
		return nil, nil, dErrors.New(dErrors.CodeForbidden, "volunteer membership required to report found persons")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if strings.TrimSpace(req.FoundLocation) == "" {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "found_location is required")
	}

	ctx, span := s.tracer.Start(ctx, "cases.ReportFound")
	defer span.End()

	now := requestcontext.Now(ctx)
	found := &models.FoundPerson{
		ID:              domain.FoundPersonID(uuid.New()),
		Name:            strings.TrimSpace(req.Name),
		ApproxAge:       req.ApproxAge,
		Gender:          req.Gender,
		FoundLocation:   req.FoundLocation,
		CurrentLocation: req.CurrentLocation,
		FinderContact:   req.FinderContact,
		Description:     req.Description,
		CreatedBy:       actor.ID,
		CreatedAt:       now,
	}

	scanStart := time.Now()
	var suggestions []*models.MatchSuggestion
	err := s.tx.RunInTx(ctx, func(store Store) error {
		if err := store.CreateFound(ctx, found); err != nil {
			return err
		}

		open, err := store.ListOpenMissing(ctx)
		if err != nil {
			return err
		}

		for _, missing := range open {
			confidence := matching.Score(missing, found)
			if confidence < matching.Threshold {
				continue
			}
			suggestion := &models.MatchSuggestion{
				ID:         domain.SuggestionID(uuid.New()),
				MissingID:  missing.ID,
				FoundID:    found.ID,
				Confidence: confidence,
				Confirmed:  false,
				CreatedAt:  now,
			}
			if err := store.CreateSuggestion(ctx, suggestion); err != nil {
				return err
			}
			suggestions = append(suggestions, suggestion)
		}
		return nil
	})
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create found-person report")
	}

	s.metrics.ObserveMatchScan(scanStart)
	s.metrics.IncrementFoundReported()
	s.metrics.AddSuggestionsCreated(len(suggestions))
	span.SetAttributes(attribute.Int("cases.suggestions_created", len(suggestions)))

	return found, suggestions, nil
}

// ConfirmMatch marks a suggestion as verified by a human reviewer. The
// transition is one-way; confirming twice is refused with a conflict, and
// concurrent confirmations serialize in the store so only one succeeds.
func (s *Service) ConfirmMatch(ctx context.Context, actor domain.Actor, id domain.SuggestionID) (*models.MatchSuggestion, error) {
	if !actor.Authenticated {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}
	if !policy.IsPoliceOrAdmin(actor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "police or admin group required to confirm matches")
	}

	ctx, span := s.tracer.Start(ctx, "cases.ConfirmMatch")
	defer span.End()

	suggestion, err := s.store.ConfirmSuggestion(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "match suggestion not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "match already confirmed")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to confirm match")
		}
	}

	s.metrics.IncrementMatchesConfirmed()
	s.logger.InfoContext(ctx, "match confirmed",
		"suggestion_id", suggestion.ID.String(),
		"confirmed_by", actor.Username,
		"client_ip", requestcontext.ClientIP(ctx),
		"device", device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		"request_id", requestcontext.RequestID(ctx),
	)
	return suggestion, nil
}

// ListMatches returns suggestions filtered by minimum confidence and/or
// confirmation flag, in creation order. Admin role only.
func (s *Service) ListMatches(ctx context.Context, actor domain.Actor, filter models.SuggestionFilter) ([]*models.MatchSuggestion, error) {
	if !actor.Authenticated {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}
	if !policy.IsAdminRole(actor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "admin role required to list match suggestions")
	}

	suggestions, err := s.store.ListSuggestions(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list match suggestions")
	}
	return suggestions, nil
}

// ResolveMissing closes a missing-person report so the matcher stops
// considering it. Only the original reporter or a superuser may resolve.
func (s *Service) ResolveMissing(ctx context.Context, actor domain.Actor, id domain.MissingPersonID) (*models.MissingPerson, error) {
	if !actor.Authenticated {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}

	record, err := s.store.FindMissingByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "missing-person report not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load missing-person report")
	}
	if !policy.IsCreatorOrAdmin(actor, record.ReportedBy) {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the original reporter or a superuser may resolve this report")
	}

	resolved, err := s.store.ResolveMissing(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "missing-person report not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "report is already resolved")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve missing-person report")
		}
	}
	return resolved, nil
}

// Stats returns the dashboard counters. The three counts run concurrently;
// any failure cancels the rest.
func (s *Service) Stats(ctx context.Context, actor domain.Actor) (models.Stats, error) {
	if !actor.Authenticated {
		return models.Stats{}, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}

	var stats models.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountMissing(ctx)
		stats.MissingCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountFound(ctx)
		stats.FoundCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountSuggestions(ctx)
		stats.MatchCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute dashboard stats")
	}
	return stats, nil
}
