// Package repository provides database operations for the video catalog.
package repository

import (
	"context"
	"errors"

	"github.com/ad-tracker/video-catalog-go/internal/db"
	"github.com/ad-tracker/video-catalog-go/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier is the part of the pgx API shared by pooled connections and
// transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store hands out request-scoped catalog handles. No handle outlives the
// callback it was passed to.
type Store struct {
	pool        *pgxpool.Pool
	maxAttempts int
}

// NewStore creates a Store. maxAttempts bounds how often a transaction is
// replayed after a serialization failure; values below 1 mean a single attempt.
func NewStore(pool *pgxpool.Pool, maxAttempts int) *Store {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Store{pool: pool, maxAttempts: maxAttempts}
}

// Read runs fn on a single pooled connection outside any explicit transaction.
func (s *Store) Read(ctx context.Context, fn func(Catalog) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return db.WrapError(err, "acquire connection")
	}
	defer conn.Release()

	return fn(&Queries{db: conn})
}

// InTx runs fn inside a SERIALIZABLE transaction. Validation reads and the
// write they gate therefore commit atomically or not at all. Conflicts with
// concurrent transactions are replayed up to maxAttempts times; fn must be
// safe to run more than once.
func (s *Store) InTx(ctx context.Context, fn func(Catalog) error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		logger.L().Debug("Retrying serializable transaction",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return err
}

func (s *Store) runTx(ctx context.Context, fn func(Catalog) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return db.WrapError(err, "begin transaction")
	}
	// No-op after a successful commit; covers error returns and panics.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&Queries{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return db.WrapError(err, "commit transaction")
	}
	return nil
}

// Ping checks the database connection health.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func isRetryable(err error) bool {
	if db.IsSerialization(err) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}
