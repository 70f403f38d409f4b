// Package db owns the PostgreSQL connection pool, the schema migrations and
// the mapping of driver errors onto catalog sentinels.
package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrSerialization marks a transaction that lost to a concurrent one
	// (40001 or 40P01). The whole transaction may be replayed.
	ErrSerialization = errors.New("serialization failure")
)

// WrapError prefixes err with operation and maps the SQLSTATEs the catalog
// reacts to onto sentinels. Anything else keeps the original error in the
// chain.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	switch pgErr.Code {
	case "23505":
		return fmt.Errorf("%s: %w (constraint: %s)", operation, ErrDuplicateKey, pgErr.ConstraintName)
	case "40001", "40P01":
		return fmt.Errorf("%s: %w [%s]", operation, ErrSerialization, pgErr.Code)
	}
	return fmt.Errorf("%s: database error [%s]: %w", operation, pgErr.Code, err)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsDuplicateKey(err error) bool { return errors.Is(err, ErrDuplicateKey) }

// IsSerialization reports a retryable transaction conflict.
func IsSerialization(err error) bool { return errors.Is(err, ErrSerialization) }
