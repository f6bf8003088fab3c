package password

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheap parameters keep the suite fast
func newTestHasher(t *testing.T, algo string) *Hasher {
	t.Helper()
	h, err := New(Config{
		Algorithm:  algo,
		BcryptCost: bcrypt.MinCost,
		Argon2:     Argon2Params{Memory: 1024, Time: 1, Parallelism: 1, KeyLen: 32},
		Workers:    2,
	})
	require.NoError(t, err)
	return h
}

func TestHasher_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, algo := range []string{AlgorithmBcrypt, AlgorithmArgon2id} {
		t.Run(algo, func(t *testing.T) {
			h := newTestHasher(t, algo)

			a, err := h.Hash(ctx, "pw123456")
			require.NoError(t, err)
			b, err := h.Hash(ctx, "pw123456")
			require.NoError(t, err)
			require.NotEqual(t, a, b, "hashes must be salted")
			require.NotContains(t, a, "pw123456")

			ok, err := h.Verify(ctx, "pw123456", a)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = h.Verify(ctx, "pw1234567", a)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt)
	_, err := h.Hash(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHasher_BcryptTooLong(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt)
	_, err := h.Hash(context.Background(), strings.Repeat("x", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHasher_VerifyAcrossAlgorithms(t *testing.T) {
	ctx := context.Background()
	legacy := newTestHasher(t, AlgorithmBcrypt)
	stored, err := legacy.Hash(ctx, "secret-pass")
	require.NoError(t, err)

	current := newTestHasher(t, AlgorithmArgon2id)
	ok, err := current.Verify(ctx, "secret-pass", stored)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHasher_MalformedFailsClosed(t *testing.T) {
	h := newTestHasher(t, AlgorithmArgon2id)
	ctx := context.Background()

	for _, stored := range []string{
		"plaintext",
		"$argon2id$",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$!!!",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=99999999,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$2b$04$tooshort",
	} {
		ok, err := h.Verify(ctx, "anything", stored)
		require.NoError(t, err, stored)
		require.False(t, ok, stored)
	}
}

func TestNew_RejectsUnknownAlgorithm(t *testing.T) {
	_, err := New(Config{Algorithm: "md5"})
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestHasher_WorkerLimitHonorsContext(t *testing.T) {
	h, err := New(Config{Algorithm: AlgorithmBcrypt, BcryptCost: bcrypt.MinCost, Workers: 1})
	require.NoError(t, err)

	// hold the only slot
	require.NoError(t, h.sem.Acquire(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = h.Hash(ctx, "pw")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	h.sem.Release(1)
	_, err = h.Hash(context.Background(), "pw")
	require.NoError(t, err)
}

func TestHasher_ConcurrentUse(t *testing.T) {
	h := newTestHasher(t, AlgorithmArgon2id)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := h.Hash(ctx, "pw")
			if err != nil {
				errs <- err
				return
			}
			if ok, _ := h.Verify(ctx, "pw", s); !ok {
				errs <- ErrEmptyPassword
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent hash: %v", err)
	}
}
