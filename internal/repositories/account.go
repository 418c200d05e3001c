package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-account-auth/internal/logger"
	"github.com/sbilibin2017/gw-account-auth/internal/models"
)

// AccountReadRepository reads accounts from the store.
type AccountReadRepository struct {
	db *sqlx.DB
}

// NewAccountReadRepository creates a read repository. A nil db yields ErrStoreNotConfigured on every call.
func NewAccountReadRepository(db *sqlx.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

// GetByName returns the account with the given name, or nil if there is none.
// Only id, name, password and banned are loaded.
func (r *AccountReadRepository) GetByName(ctx context.Context, name string) (*models.AccountDB, error) {
	if r.db == nil {
		return nil, ErrStoreNotConfigured
	}

	const query = `
		SELECT id, name, password, banned
		FROM accounts
		WHERE name = $1
	`

	var account models.AccountDB
	err := r.db.GetContext(ctx, &account, query, name)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name},
		"result", account.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// AccountWriteRepository inserts accounts into the store.
type AccountWriteRepository struct {
	db *sqlx.DB
}

// NewAccountWriteRepository creates a write repository. A nil db yields ErrStoreNotConfigured on every call.
func NewAccountWriteRepository(db *sqlx.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Create inserts a new account with the fixed defaults and returns its id.
// A name that is already taken yields ErrDuplicateName.
func (r *AccountWriteRepository) Create(ctx context.Context, account models.NewAccount) (int64, error) {
	if r.db == nil {
		return 0, ErrStoreNotConfigured
	}

	const query = `
		INSERT INTO accounts (name, password, email, birthday, gender, creation, banned, loggedin, tos)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	email := sql.NullString{String: account.Email, Valid: account.Email != ""}

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		account.Name, account.PasswordHash, email, models.DefaultBirthday, models.DefaultGender,
		account.Creation, 0, 0, models.DefaultTOS,
	).Scan(&id)

	// Args exclude the password hash.
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{account.Name, email.String, account.Creation},
		"result", id,
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return 0, ErrDuplicateName
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}
