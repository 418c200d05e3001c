package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-account-auth/internal/logger"
	"github.com/sbilibin2017/gw-account-auth/internal/models"
	"github.com/sbilibin2017/gw-account-auth/internal/repositories"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// AccountReader defines read-only operations for accounts.
type AccountReader interface {
	GetByName(ctx context.Context, name string) (*models.AccountDB, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	Create(ctx context.Context, account models.NewAccount) (int64, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hash, password string) (bool, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader AccountReader
	writer AccountWriter
	hasher PasswordHasher
	now    func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader AccountReader, writer AccountWriter, hasher PasswordHasher) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register creates a new account and returns its id.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) (int64, error) {
	if err := validateRegister(username, password); err != nil {
		logger.Log.Infow("registration rejected", "username", username, "reason", err)
		return 0, err
	}

	existing, err := svc.reader.GetByName(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check account exists", "username", username, "err", err)
		return 0, storeError("check account", err)
	}
	if existing != nil {
		logger.Log.Infow("account already exists", "username", username)
		return 0, ErrUserAlreadyExists
	}

	hash, err := svc.hasher.Hash(ctx, password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := svc.writer.Create(ctx, models.NewAccount{
		Name:         username,
		PasswordHash: hash,
		Email:        email,
		Creation:     svc.now(),
	})
	if errors.Is(err, repositories.ErrDuplicateName) {
		// Lost a race with a concurrent registration of the same name.
		logger.Log.Infow("account already exists", "username", username)
		return 0, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save account", "username", username, "err", err)
		return 0, storeError("save account", err)
	}

	logger.Log.Infow("account created", "username", username, "account_id", id)
	return id, nil
}

// Login verifies the credentials and returns the account id.
// The checks run in a fixed order: presence, existence, ban flag, password.
func (svc *AuthService) Login(ctx context.Context, username, password string) (int64, error) {
	if err := validateLogin(username, password); err != nil {
		logger.Log.Infow("login rejected", "username", username, "reason", err)
		return 0, err
	}

	account, err := svc.reader.GetByName(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get account", "username", username, "err", err)
		return 0, storeError("get account", err)
	}
	if account == nil {
		logger.Log.Infow("account does not exist", "username", username)
		return 0, ErrInvalidCredentials
	}

	if account.IsBanned() {
		logger.Log.Infow("banned account login attempt", "username", username, "account_id", account.ID)
		return 0, ErrAccountBanned
	}

	ok, err := svc.hasher.Compare(ctx, account.PasswordHash, password)
	if err != nil {
		logger.Log.Errorw("failed to verify password", "account_id", account.ID, "err", err)
		return 0, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		logger.Log.Infow("invalid credentials", "username", username)
		return 0, ErrInvalidCredentials
	}

	return account.ID, nil
}
