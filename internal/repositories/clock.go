package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-account-auth/internal/logger"
)

// StoreClockRepository reads the current time from the store.
// It doubles as a connectivity check.
type StoreClockRepository struct {
	db *sqlx.DB
}

// NewStoreClockRepository creates a clock repository. A nil db yields ErrStoreNotConfigured.
func NewStoreClockRepository(db *sqlx.DB) *StoreClockRepository {
	return &StoreClockRepository{db: db}
}

// Now returns the store's current time.
func (r *StoreClockRepository) Now(ctx context.Context) (time.Time, error) {
	if r.db == nil {
		return time.Time{}, ErrStoreNotConfigured
	}

	const query = `SELECT NOW()`

	var now time.Time
	err := r.db.GetContext(ctx, &now, query)

	logger.Log.Debugw(
		"query", query,
		"result", now,
		"error", err,
	)

	return now, err
}

// Ping checks that a connection to the store can be established.
func (r *StoreClockRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return ErrStoreNotConfigured
	}
	return r.db.PingContext(ctx)
}
