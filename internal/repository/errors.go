package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound means an exact-match lookup matched zero rows.
	ErrNotFound = errors.New("row not found")

	// ErrEmptyCatalog means a selection ran over a catalog with no episodes.
	ErrEmptyCatalog = errors.New("episode catalog is empty")

	// ErrAbandoned means the request context ended before the query returned.
	ErrAbandoned = errors.New("query abandoned before completion")
)

// StorageError is any failure of the storage engine other than a missing row:
// lost connections, failed statements, bad scans.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func classify(ctx context.Context, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return errors.Wrap(ErrNotFound, op)
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errors.Wrap(ErrAbandoned, op)
	default:
		return &StorageError{Op: op, Err: err}
	}
}

// latestErr turns a zero-row "latest" scan into ErrEmptyCatalog.
func latestErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return errors.Wrap(ErrEmptyCatalog, "latest episode number")
	}
	return err
}
