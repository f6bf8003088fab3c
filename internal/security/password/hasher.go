// Package password hashes and verifies user passwords.
//
// New hashes use the configured algorithm. Verify detects the algorithm from
// the stored string, so bcrypt and argon2id hashes can live in the same table.
package password

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

var (
	ErrEmptyPassword        = errors.New("password: empty password")
	ErrPasswordTooLong      = errors.New("password: longer than 72 bytes")
	ErrUnsupportedAlgorithm = errors.New("password: unsupported algorithm")
)

// Config selects the algorithm and bounds concurrent hash computations.
type Config struct {
	Algorithm  string
	BcryptCost int
	Argon2     Argon2Params
	// Workers caps concurrent Hash/Verify calls. Zero means runtime.NumCPU().
	Workers int
}

// Hasher is safe for concurrent use.
type Hasher struct {
	algorithm string
	cost      int
	argon2    Argon2Params
	sem       *semaphore.Weighted
}

// New validates cfg and returns a Hasher.
func New(cfg Config) (*Hasher, error) {
	algo := strings.ToLower(strings.TrimSpace(cfg.Algorithm))
	if algo == "" {
		algo = AlgorithmBcrypt
	}
	if algo != AlgorithmBcrypt && algo != AlgorithmArgon2id {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("password: bcrypt cost %d out of range", cost)
	}
	params := cfg.Argon2
	if params == (Argon2Params{}) {
		params = DefaultArgon2
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Hasher{
		algorithm: algo,
		cost:      cost,
		argon2:    params,
		sem:       semaphore.NewWeighted(int64(workers)),
	}, nil
}

// Algorithm reports the algorithm used for new hashes.
func (h *Hasher) Algorithm() string { return h.algorithm }

// Hash returns a salted one-way hash of plain. Two calls never return the same string.
func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	if h.algorithm == AlgorithmArgon2id {
		return hashArgon2id(h.argon2, plain)
	}
	return hashBcrypt(h.cost, plain)
}

// Verify reports whether plain matches stored. Malformed or unknown hashes
// return false. The error is only non-nil when ctx ends while waiting for a
// worker slot.
func (h *Hasher) Verify(ctx context.Context, plain, stored string) (bool, error) {
	if plain == "" || stored == "" {
		return false, nil
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	switch {
	case strings.HasPrefix(stored, argon2Prefix):
		return verifyArgon2id(plain, stored), nil
	case isBcrypt(stored):
		return verifyBcrypt(plain, stored), nil
	default:
		return false, nil
	}
}
