// Package cached decorates a UserRepository with a read-through cache for
// lookups by id. Users are immutable once created, so entries never need
// invalidation and only expire by TTL.
package cached

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dropDatabas3/studyhub/internal/cache"
	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "user:id:"

type Users struct {
	next  repository.UserRepository
	cache cache.Client
	ttl   time.Duration
	sf    singleflight.Group
}

// NewUsers wraps next. A nil cache returns next unchanged.
func NewUsers(next repository.UserRepository, c cache.Client, ttl time.Duration) repository.UserRepository {
	if c == nil {
		return next
	}
	return &Users{next: next, cache: c, ttl: ttl}
}

func (u *Users) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	return u.next.Create(ctx, in)
}

func (u *Users) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return u.next.GetByEmail(ctx, email)
}

// GetByID serves from cache and collapses concurrent misses for the same id
// into a single repository call. Cache failures fall through to the repository.
func (u *Users) GetByID(ctx context.Context, id string) (*repository.User, error) {
	key := keyPrefix + id
	if raw, err := u.cache.Get(ctx, key); err == nil {
		var usr repository.User
		if jerr := json.Unmarshal([]byte(raw), &usr); jerr == nil {
			return &usr, nil
		}
		_ = u.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrNotFound) {
		logger.From(ctx).Warn("user cache read failed",
			logger.Component("cached_users"), logger.Err(err))
	}

	v, err, _ := u.sf.Do(key, func() (any, error) {
		usr, err := u.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b, jerr := json.Marshal(usr); jerr == nil {
			if serr := u.cache.Set(ctx, key, string(b), u.ttl); serr != nil {
				logger.From(ctx).Warn("user cache write failed",
					logger.Component("cached_users"), logger.Err(serr))
			}
		}
		return usr, nil
	})
	if err != nil {
		return nil, err
	}
	cp := *v.(*repository.User)
	return &cp, nil
}
