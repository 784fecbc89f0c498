package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
)

func configForSQLite() config.DB {
	return config.DB{Driver: "sqlite3", DSN: ":memory:"}
}

func TestNewConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{Driver: "oracle", DSN: "x"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewConnect_SQLiteMigrates(t *testing.T) {
	db, err := NewConnect(context.Background(), configForSQLite(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM build_plans`).Scan(&count))
	assert.Zero(t, count)
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain", err: errors.New("x"), want: NonRetryable},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: Retryable},
		{name: "serialization", err: &pgconn.PgError{Code: "40001"}, want: Retryable},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: Retryable},
		{name: "cannot connect now", err: &pgconn.PgError{Code: "57P03"}, want: Retryable},
		{name: "wrapped connection exception", err: fmt.Errorf("save: %w", &pgconn.PgError{Code: "08000"}), want: Retryable},
		{name: "query canceled", err: &pgconn.PgError{Code: "57014"}, want: NonRetryable},
		{name: "transaction integrity", err: &pgconn.PgError{Code: "40002"}, want: NonRetryable},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: NonRetryable},
		{name: "undefined table", err: &pgconn.PgError{Code: "42P01"}, want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}

	assert.True(t, c.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, c.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("x")))

	assert.True(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.False(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
}
