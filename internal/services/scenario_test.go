package services_test

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-account-auth/internal/hasher"
	"github.com/sbilibin2017/gw-account-auth/internal/models"
	"github.com/sbilibin2017/gw-account-auth/internal/repositories"
	"github.com/sbilibin2017/gw-account-auth/internal/services"
)

// memoryStore is an in-memory account store with a unique name constraint.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[string]models.AccountDB
}

func newMemoryStore() *memoryStore {
	return &memoryStore{accounts: make(map[string]models.AccountDB)}
}

func (s *memoryStore) GetByName(_ context.Context, name string) (*models.AccountDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[name]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (s *memoryStore) Create(_ context.Context, account models.NewAccount) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Name]; ok {
		return 0, repositories.ErrDuplicateName
	}
	s.nextID++
	s.accounts[account.Name] = models.AccountDB{
		ID:           s.nextID,
		Name:         account.Name,
		PasswordHash: account.PasswordHash,
		Creation:     account.Creation,
		TOS:          models.DefaultTOS,
	}
	return s.nextID, nil
}

func (s *memoryStore) ban(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[name]
	acc.Banned = sql.NullInt64{Int64: 1, Valid: true}
	s.accounts[name] = acc
}

func (s *memoryStore) snapshot(name string) models.AccountDB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[name]
}

func newScenarioService(t *testing.T) (*services.AuthService, *memoryStore) {
	t.Helper()
	h, err := hasher.New(bcrypt.MinCost, 4)
	require.NoError(t, err)
	store := newMemoryStore()
	return services.NewAuthService(store, store, h), store
}

func TestAuthService_Scenario(t *testing.T) {
	svc, store := newScenarioService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "Sora", "secret1", "")
	require.NoError(t, err)
	assert.Positive(t, id)

	loginID, err := svc.Login(ctx, "Sora", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, loginID)

	_, err = svc.Login(ctx, "Sora", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	before := store.snapshot("Sora")
	_, err = svc.Register(ctx, "Sora", "other12", "")
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
	assert.Equal(t, before, store.snapshot("Sora"), "conflicting registration must not alter the account")

	_, err = svc.Register(ctx, "ab", "secret1", "")
	assert.ErrorIs(t, err, services.ErrUsernameLength)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestAuthService_LongMultibytePassword(t *testing.T) {
	svc, _ := newScenarioService(t)
	ctx := context.Background()

	// 30 characters is within the limit but 90 bytes is past bcrypt's 72
	password := strings.Repeat("ひ", 30)

	id, err := svc.Register(ctx, "Sora", password, "")
	require.NoError(t, err)

	loginID, err := svc.Login(ctx, "Sora", password)
	require.NoError(t, err)
	assert.Equal(t, id, loginID)

	_, err = svc.Login(ctx, "Sora", strings.Repeat("ひ", 20))
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_HashesAreSalted(t *testing.T) {
	svc, store := newScenarioService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Sora", "secret1", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Riku", "secret1", "")
	require.NoError(t, err)

	sora, riku := store.snapshot("Sora"), store.snapshot("Riku")
	assert.NotEqual(t, "secret1", sora.PasswordHash)
	assert.NotEqual(t, sora.PasswordHash, riku.PasswordHash)
}

func TestAuthService_BannedWithCorrectPassword(t *testing.T) {
	svc, store := newScenarioService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Riku", "secret1", "")
	require.NoError(t, err)
	store.ban("Riku")

	_, err = svc.Login(ctx, "Riku", "secret1")
	assert.ErrorIs(t, err, services.ErrAccountBanned)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_FailedLoginsDoNotMutate(t *testing.T) {
	svc, store := newScenarioService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Sora", "secret1", "")
	require.NoError(t, err)
	before := store.snapshot("Sora")

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, "Sora", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	}

	assert.Equal(t, before, store.snapshot("Sora"))
}

func TestAuthService_ConcurrentRegistrationOfOneName(t *testing.T) {
	svc, _ := newScenarioService(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), "Kairi", "secret1", "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, services.ErrUserAlreadyExists) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 9, conflicts)
}
