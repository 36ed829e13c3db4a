package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, classify(ctx, "op", nil))
	assert.True(t, errors.Is(classify(ctx, "op", pgx.ErrNoRows), ErrNotFound))
	assert.True(t, errors.Is(classify(ctx, "op", sql.ErrNoRows), ErrNotFound))
	assert.True(t, errors.Is(classify(ctx, "op", context.DeadlineExceeded), ErrAbandoned))

	err := classify(ctx, "get episode 1", errors.New("connection reset by peer"))
	var storageErr *StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "get episode 1: connection reset by peer", err.Error())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.True(t, errors.Is(classify(cancelled, "op", errors.New("driver gave up")), ErrAbandoned))
}

func TestLatestErr(t *testing.T) {
	err := latestErr(errors.Wrap(ErrNotFound, "latest episode number"))
	assert.True(t, errors.Is(err, ErrEmptyCatalog))

	other := &StorageError{Op: "x", Err: errors.New("boom")}
	assert.Equal(t, error(other), latestErr(other))
}
