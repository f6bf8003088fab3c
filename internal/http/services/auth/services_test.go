package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	dto "github.com/dropDatabas3/studyhub/internal/http/dto/auth"
	"github.com/dropDatabas3/studyhub/internal/jwt"
	"github.com/dropDatabas3/studyhub/internal/metrics"
	"github.com/dropDatabas3/studyhub/internal/security/password"
	"github.com/dropDatabas3/studyhub/internal/store/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     Service
	users   repository.UserRepository
	tokens  *jwt.Issuer
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, users repository.UserRepository) fixture {
	t.Helper()
	if users == nil {
		users = memory.New().Users()
	}
	hasher, err := password.New(password.Config{BcryptCost: 4, Workers: 4})
	require.NoError(t, err)
	tokens, err := jwt.NewIssuer(jwt.Config{Secret: []byte("test-secret")})
	require.NoError(t, err)
	m, err := metrics.New()
	require.NoError(t, err)
	return fixture{
		svc:     NewService(Deps{Users: users, Hasher: hasher, Tokens: tokens, Metrics: m}),
		users:   users,
		tokens:  tokens,
		metrics: m,
	}
}

func TestRegister_Success(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.Register(ctx, dto.RegisterRequest{Name: " Ann ", Email: " ann@example.com ", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, res.User.ID)
	require.Equal(t, "Ann", res.User.Name)
	require.Equal(t, "ann@example.com", res.User.Email)
	require.WithinDuration(t, time.Now().Add(jwt.DefaultTTL), res.ExpiresAt, time.Minute)

	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, claims.UserID)
	require.Equal(t, "ann@example.com", claims.Email)
	require.Equal(t, "Ann", claims.Name)

	stored, err := f.users.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", stored.PasswordHash)
	require.NotContains(t, stored.PasswordHash, "s3cret")

	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuthOps.WithLabelValues("register", "ok")))
}

func TestRegister_MissingFields(t *testing.T) {
	f := newFixture(t, nil)
	for _, in := range []dto.RegisterRequest{
		{Email: "a@b.c", Password: "p"},
		{Name: "A", Password: "p"},
		{Name: "A", Email: "a@b.c"},
		{Name: "   ", Email: "a@b.c", Password: "p"},
		{Name: "A", Email: "  ", Password: "p"},
	} {
		_, err := f.svc.Register(context.Background(), in)
		require.ErrorIs(t, err, ErrMissingFields, "%+v", in)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "dup@example.com", Password: "p1"})
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, dto.RegisterRequest{Name: "B", Email: "dup@example.com", Password: "p2"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	f := newFixture(t, nil)
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: string(long)})
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestRegister_Concurrent(t *testing.T) {
	f := newFixture(t, nil)
	const n = 10

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ok    int
		taken int
	)
	start := make(chan struct{})
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
				Name: fmt.Sprintf("racer %d", i), Email: "race@example.com", Password: "p",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrEmailTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	require.Equal(t, 1, ok)
	require.Equal(t, n-1, taken)
}

// conflictingUsers never sees the email on lookup but loses the insert, as a
// concurrent registration would.
type conflictingUsers struct{ repository.UserRepository }

func (conflictingUsers) GetByEmail(context.Context, string) (*repository.User, error) {
	return nil, repository.ErrNotFound
}

func (conflictingUsers) Create(context.Context, repository.CreateUserInput) (*repository.User, error) {
	return nil, repository.ErrConflict
}

func TestRegister_ConstraintDecides(t *testing.T) {
	f := newFixture(t, conflictingUsers{})
	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

type brokenUsers struct{ repository.UserRepository }

var errDown = errors.New("pg: connection refused")

func (brokenUsers) GetByEmail(context.Context, string) (*repository.User, error) { return nil, errDown }
func (brokenUsers) GetByID(context.Context, string) (*repository.User, error)    { return nil, errDown }

func TestStorageFailure(t *testing.T) {
	f := newFixture(t, brokenUsers{})
	ctx := context.Background()

	_, err := f.svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p"})
	require.ErrorIs(t, err, ErrStorage)

	_, err = f.svc.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "p"})
	require.ErrorIs(t, err, ErrStorage)

	_, err = f.svc.Me(ctx, "u1")
	require.ErrorIs(t, err, ErrStorage)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	reg, err := f.svc.Register(ctx, dto.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "right"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		res, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ann@example.com", Password: "right"})
		require.NoError(t, err)
		require.Equal(t, reg.User, res.User)
		claims, err := f.tokens.Verify(res.Token)
		require.NoError(t, err)
		require.Equal(t, reg.User.ID, claims.UserID)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "right"})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ann@example.com", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run("email is case sensitive", func(t *testing.T) {
		_, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ANN@example.com", Password: "right"})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
	t.Run("missing fields", func(t *testing.T) {
		_, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ann@example.com"})
		require.ErrorIs(t, err, ErrMissingFields)
		_, err = f.svc.Login(ctx, dto.LoginRequest{Password: "right"})
		require.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestVerifyToken(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	tok, _, err := f.tokens.Issue("u1", "ann@example.com", "Ann")
	require.NoError(t, err)
	v, err := f.svc.VerifyToken(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, dto.UserView{ID: "u1", Name: "Ann", Email: "ann@example.com"}, *v)

	_, err = f.svc.VerifyToken(ctx, "")
	require.ErrorIs(t, err, jwt.ErrTokenMissing)

	_, err = f.svc.VerifyToken(ctx, tok+"x")
	require.ErrorIs(t, err, jwt.ErrTokenInvalid)

	old, err := jwt.NewIssuer(jwt.Config{
		Secret: []byte("test-secret"),
		Now:    func() time.Time { return time.Now().Add(-jwt.DefaultTTL - time.Hour) },
	})
	require.NoError(t, err)
	expired, _, err := old.Issue("u1", "ann@example.com", "Ann")
	require.NoError(t, err)
	_, err = f.svc.VerifyToken(ctx, expired)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuthOps.WithLabelValues("verify_token", "token_expired")))
}

func TestMe(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	reg, err := f.svc.Register(ctx, dto.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "p"})
	require.NoError(t, err)

	v, err := f.svc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	require.Equal(t, reg.User, *v)

	_, err = f.svc.Me(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}
