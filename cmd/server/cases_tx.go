package main

import (
	"context"
	"database/sql"
	"time"

	casesservice "sangamsetu/internal/cases/service"
	casesstore "sangamsetu/internal/cases/store"
	dErrors "sangamsetu/pkg/domain-errors"
)

const defaultCasesTxTimeout = 5 * time.Second

// casesPostgresTx runs case-store closures inside a database transaction so
// a found report and the suggestions it generates commit atomically.
type casesPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newCasesPostgresTx(db *sql.DB) *casesPostgresTx {
	return &casesPostgresTx{db: db}
}

func (t *casesPostgresTx) RunInTx(ctx context.Context, fn func(store casesservice.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultCasesTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(casesstore.NewPostgresTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
