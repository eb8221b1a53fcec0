package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sangamsetu/internal/cases/models"
	"sangamsetu/pkg/domain"
	"sangamsetu/pkg/platform/sentinel"
)

// queryer abstracts *sql.DB and *sql.Tx so the same store code serves both
// plain calls and the transactional found-report path.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres persists case records in PostgreSQL.
type Postgres struct {
	q queryer
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{q: db}
}

// NewPostgresTx binds the store to an open transaction; used by the service
// transaction runner so a found report and its suggestions commit together.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{q: tx}
}

func (s *Postgres) CreateMissing(ctx context.Context, record *models.MissingPerson) error {
	query := `
		INSERT INTO missing_persons (id, name, approx_age, gender, last_seen_location, last_seen_date, description, reported_by, created_at, resolved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	var reportedBy any
	if record.ReportedBy != nil {
		reportedBy = uuid.UUID(*record.ReportedBy)
	}
	_, err := s.q.ExecContext(ctx, query,
		uuid.UUID(record.ID),
		record.Name,
		record.ApproxAge,
		record.Gender,
		record.LastSeenLocation,
		record.LastSeenDate,
		record.Description,
		reportedBy,
		record.CreatedAt,
		record.Resolved,
	)
	if err != nil {
		return fmt.Errorf("create missing person: %w", err)
	}
	return nil
}

func (s *Postgres) FindMissingByID(ctx context.Context, id domain.MissingPersonID) (*models.MissingPerson, error) {
	query := `
		SELECT id, name, approx_age, gender, last_seen_location, last_seen_date, description, reported_by, created_at, resolved
		FROM missing_persons
		WHERE id = $1
	`
	record, err := scanMissing(s.q.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find missing person: %w", err)
	}
	return record, nil
}

func (s *Postgres) ListOpenMissing(ctx context.Context) ([]*models.MissingPerson, error) {
	query := `
		SELECT id, name, approx_age, gender, last_seen_location, last_seen_date, description, reported_by, created_at, resolved
		FROM missing_persons
		WHERE resolved = FALSE
		ORDER BY created_at ASC
	`
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open missing persons: %w", err)
	}
	defer rows.Close()

	var out []*models.MissingPerson
	for rows.Next() {
		record, err := scanMissing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan missing person: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missing persons: %w", err)
	}
	return out, nil
}

// ResolveMissing atomically flips the resolved flag. The conditional UPDATE
// ensures concurrent resolvers cannot both succeed.
func (s *Postgres) ResolveMissing(ctx context.Context, id domain.MissingPersonID) (*models.MissingPerson, error) {
	query := `
		UPDATE missing_persons
		SET resolved = TRUE
		WHERE id = $1 AND resolved = FALSE
		RETURNING id, name, approx_age, gender, last_seen_location, last_seen_date, description, reported_by, created_at, resolved
	`
	record, err := scanMissing(s.q.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resolve missing person: %w", err)
	}
	// No row updated: either absent or already resolved.
	if _, findErr := s.FindMissingByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, sentinel.ErrConflict
}

func (s *Postgres) CreateFound(ctx context.Context, record *models.FoundPerson) error {
	query := `
		INSERT INTO found_persons (id, name, approx_age, gender, found_location, current_location, finder_contact, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.q.ExecContext(ctx, query,
		uuid.UUID(record.ID),
		record.Name,
		record.ApproxAge,
		record.Gender,
		record.FoundLocation,
		record.CurrentLocation,
		record.FinderContact,
		record.Description,
		uuid.UUID(record.CreatedBy),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create found person: %w", err)
	}
	return nil
}

func (s *Postgres) CreateSuggestion(ctx context.Context, suggestion *models.MatchSuggestion) error {
	query := `
		INSERT INTO match_suggestions (id, missing_person_id, found_person_id, confidence, is_confirmed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.q.ExecContext(ctx, query,
		uuid.UUID(suggestion.ID),
		uuid.UUID(suggestion.MissingID),
		uuid.UUID(suggestion.FoundID),
		suggestion.Confidence,
		suggestion.Confirmed,
		suggestion.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create match suggestion: %w", err)
	}
	return nil
}

func (s *Postgres) FindSuggestionByID(ctx context.Context, id domain.SuggestionID) (*models.MatchSuggestion, error) {
	query := `
		SELECT id, missing_person_id, found_person_id, confidence, is_confirmed, created_at
		FROM match_suggestions
		WHERE id = $1
	`
	suggestion, err := scanSuggestion(s.q.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find match suggestion: %w", err)
	}
	return suggestion, nil
}

func (s *Postgres) ListSuggestions(ctx context.Context, filter models.SuggestionFilter) ([]*models.MatchSuggestion, error) {
	query := `
		SELECT id, missing_person_id, found_person_id, confidence, is_confirmed, created_at
		FROM match_suggestions
		WHERE ($1::float8 IS NULL OR confidence >= $1::float8)
		  AND ($2::boolean IS NULL OR is_confirmed = $2::boolean)
		ORDER BY created_at ASC
	`
	rows, err := s.q.QueryContext(ctx, query, filter.MinConfidence, filter.Confirmed)
	if err != nil {
		return nil, fmt.Errorf("list match suggestions: %w", err)
	}
	defer rows.Close()

	var out []*models.MatchSuggestion
	for rows.Next() {
		suggestion, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match suggestion: %w", err)
		}
		out = append(out, suggestion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match suggestions: %w", err)
	}
	return out, nil
}

// ConfirmSuggestion atomically sets the confirmed flag. The conditional
// UPDATE serializes concurrent confirmations: at most one caller gets the
// updated row back, the rest observe ErrConflict.
func (s *Postgres) ConfirmSuggestion(ctx context.Context, id domain.SuggestionID) (*models.MatchSuggestion, error) {
	query := `
		UPDATE match_suggestions
		SET is_confirmed = TRUE
		WHERE id = $1 AND is_confirmed = FALSE
		RETURNING id, missing_person_id, found_person_id, confidence, is_confirmed, created_at
	`
	suggestion, err := scanSuggestion(s.q.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err == nil {
		return suggestion, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("confirm match suggestion: %w", err)
	}
	if _, findErr := s.FindSuggestionByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, sentinel.ErrConflict
}

func (s *Postgres) CountMissing(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM missing_persons`)
}

func (s *Postgres) CountFound(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM found_persons`)
}

func (s *Postgres) CountSuggestions(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM match_suggestions`)
}

func (s *Postgres) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMissing(row scanner) (*models.MissingPerson, error) {
	var record models.MissingPerson
	var id uuid.UUID
	var reportedBy uuid.NullUUID
	if err := row.Scan(
		&id,
		&record.Name,
		&record.ApproxAge,
		&record.Gender,
		&record.LastSeenLocation,
		&record.LastSeenDate,
		&record.Description,
		&reportedBy,
		&record.CreatedAt,
		&record.Resolved,
	); err != nil {
		return nil, err
	}
	record.ID = domain.MissingPersonID(id)
	if reportedBy.Valid {
		userID := domain.UserID(reportedBy.UUID)
		record.ReportedBy = &userID
	}
	return &record, nil
}

func scanSuggestion(row scanner) (*models.MatchSuggestion, error) {
	var suggestion models.MatchSuggestion
	var id, missingID, foundID uuid.UUID
	if err := row.Scan(
		&id,
		&missingID,
		&foundID,
		&suggestion.Confidence,
		&suggestion.Confirmed,
		&suggestion.CreatedAt,
	); err != nil {
		return nil, err
	}
	suggestion.ID = domain.SuggestionID(id)
	suggestion.MissingID = domain.MissingPersonID(missingID)
	suggestion.FoundID = domain.FoundPersonID(foundID)
	return &suggestion, nil
}
