package hasher

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 12

// maxPasswordBytes is the longest input bcrypt uses. Longer passwords are
// truncated on both hash and compare, matching hashes made by other bcrypt libraries.
const maxPasswordBytes = 72

// ErrInvalidCost is returned by New for a cost outside bcrypt's supported range.
var ErrInvalidCost = errors.New("bcrypt cost out of range")

// Bcrypt hashes and verifies passwords with bcrypt.
// At most `workers` operations run at the same time; callers beyond that wait
// for a free slot or for their context to be cancelled.
type Bcrypt struct {
	cost int
	sem  *semaphore.Weighted
}

// New creates a Bcrypt hasher. A non-positive workers value means runtime.NumCPU().
func New(cost, workers int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Bcrypt{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(workers)),
	}, nil
}

// Cost returns the configured bcrypt cost.
func (b *Bcrypt) Cost() int {
	return b.cost
}

// Hash returns a salted bcrypt hash of password.
func (b *Bcrypt) Hash(ctx context.Context, password string) (string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer b.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword(truncate(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether password matches hash.
// A mismatch is (false, nil); a malformed hash is an error.
func (b *Bcrypt) Compare(ctx context.Context, hash, password string) (bool, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer b.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}

func truncate(password string) []byte {
	p := []byte(password)
	if len(p) > maxPasswordBytes {
		p = p[:maxPasswordBytes]
	}
	return p
}
