package hasher

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		workers int
		wantErr bool
	}{
		{name: "default cost", cost: DefaultCost, workers: 2},
		{name: "min cost", cost: bcrypt.MinCost, workers: 1},
		{name: "workers default to cpu count", cost: bcrypt.MinCost, workers: 0},
		{name: "cost too low", cost: bcrypt.MinCost - 1, workers: 1, wantErr: true},
		{name: "cost too high", cost: bcrypt.MaxCost + 1, workers: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := New(tt.cost, tt.workers)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCost)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cost, h.Cost())
		})
	}
}

func TestBcrypt_HashAndCompare(t *testing.T) {
	h, err := New(bcrypt.MinCost, 2)
	require.NoError(t, err)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	ok, err := h.Compare(ctx, hash, "secret1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(ctx, hash, "wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_SamePasswordDifferentHashes(t *testing.T) {
	h, err := New(bcrypt.MinCost, 2)
	require.NoError(t, err)

	first, err := h.Hash(context.Background(), "secret1")
	require.NoError(t, err)
	second, err := h.Hash(context.Background(), "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcrypt_LongMultibytePassword(t *testing.T) {
	h, err := New(bcrypt.MinCost, 2)
	require.NoError(t, err)
	ctx := context.Background()

	// 30 runes, 90 bytes
	password := strings.Repeat("ひ", 30)
	require.Greater(t, len(password), maxPasswordBytes)

	hash, err := h.Hash(ctx, password)
	require.NoError(t, err)

	ok, err := h.Compare(ctx, hash, password)
	assert.NoError(t, err)
	assert.True(t, ok)

	// only the first 72 bytes count, as with hashes made elsewhere
	legacy, err := bcrypt.GenerateFromPassword([]byte(password)[:maxPasswordBytes], bcrypt.MinCost)
	require.NoError(t, err)
	ok, err = h.Compare(ctx, string(legacy), password)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(ctx, hash, strings.Repeat("ひ", 23))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_CompareMalformedHash(t *testing.T) {
	h, err := New(bcrypt.MinCost, 1)
	require.NoError(t, err)

	ok, err := h.Compare(context.Background(), "not-a-bcrypt-hash", "secret1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcrypt_WaitsForFreeWorker(t *testing.T) {
	h, err := New(bcrypt.MinCost, 1)
	require.NoError(t, err)

	// Occupy the only slot.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = h.Hash(ctx, "secret1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = h.Compare(ctx, "$2a$04$invalid", "secret1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	h.sem.Release(1)

	_, err = h.Hash(context.Background(), "secret1")
	assert.NoError(t, err)
}

func TestBcrypt_ConcurrentUse(t *testing.T) {
	h, err := New(bcrypt.MinCost, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(context.Background(), "secret1")
			assert.NoError(t, err)
			ok, err := h.Compare(context.Background(), hash, "secret1")
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}
