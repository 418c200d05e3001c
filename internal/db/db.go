// Package db opens the Postgres connection pool backing the account store
// and applies its schema migrations.
package db

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/sbilibin2017/gw-account-auth/internal/db/migrations"
)

// Options controls how the pool is opened.
type Options struct {
	DSN           string
	SkipTLSVerify bool // encrypt without verifying the server certificate
	MaxOpenConns  int
	MaxIdleConns  int
}

// Open parses the DSN with pgx, registers the resulting config with the pgx
// database/sql driver and returns a lazily connecting pool.
// No connection is made; call PingContext to check reachability.
func Open(opts Options) (*sqlx.DB, error) {
	connConfig, err := pgx.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if opts.SkipTLSVerify {
		relaxTLS(connConfig)
	}

	db := sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx")
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// relaxTLS keeps TLS on every connection attempt but disables certificate verification.
func relaxTLS(cfg *pgx.ConnConfig) {
	insecure := &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in for constrained deployments
	cfg.TLSConfig = insecure
	for _, fb := range cfg.Fallbacks {
		fb.TLSConfig = insecure
	}
}

// Migrate applies every pending migration embedded in the migrations package.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
