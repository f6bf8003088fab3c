// Package cache is a small key/value cache with in-process and Redis backends.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client is implemented by every backend. Values are opaque strings.
type Client interface {
	// Get returns ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value; a zero ttl uses the backend default.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	// memory | redis
	Kind       string
	DefaultTTL time.Duration
	Cleanup    time.Duration
	Prefix     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var ErrNotFound = errors.New("cache: key not found")

// New builds the backend named by cfg.Kind.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Kind {
	case "memory", "":
		return NewMemory(cfg.Prefix, cfg.DefaultTTL, cfg.Cleanup), nil
	case "redis":
		return NewRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("cache: unknown kind %q", cfg.Kind)
	}
}

func prefixed(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + ":" + k
}
