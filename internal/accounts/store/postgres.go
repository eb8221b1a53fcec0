package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sangamsetu/internal/accounts/models"
	"sangamsetu/pkg/domain"
	"sangamsetu/pkg/platform/sentinel"
)

// Postgres persists users in PostgreSQL.
// This store is pure I/O—credential checks and role rules belong in the service.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, groups, superuser, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(user.ID),
		user.Username,
		user.PasswordHash,
		user.Role,
		pq.Array(user.Groups),
		user.Superuser,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		// 23505 = unique_violation (username taken)
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.UserID) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, groups, superuser, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(s.db.QueryRowContext(ctx, query, uuid.UUID(id)))
}

func (s *Postgres) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, groups, superuser, created_at
		FROM users
		WHERE lower(username) = lower($1)
	`
	return scanUser(s.db.QueryRowContext(ctx, query, username))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var id uuid.UUID
	if err := row.Scan(&id, &user.Username, &user.PasswordHash, &user.Role, pq.Array(&user.Groups), &user.Superuser, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.ID = domain.UserID(id)
	return &user, nil
}
