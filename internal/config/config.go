package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DevJWTSecret is the signing secret used when none is configured outside prod.
const DevJWTSecret = "your-secret-key-change-this-in-production"

type Config struct {
	App struct {
		// dev | staging | prod
		Env  string `yaml:"env"`
		Name string `yaml:"name"`
	} `yaml:"app"`

	Server struct {
		Addr            string `yaml:"addr"`
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		// memory | sqlite | postgres
		Driver      string `yaml:"driver"`
		DSN         string `yaml:"dsn"`
		AutoMigrate bool   `yaml:"auto_migrate"`
		Postgres    struct {
			MaxConns int `yaml:"max_conns"`
			MinConns int `yaml:"min_conns"`
		} `yaml:"postgres"`
		SQLite struct {
			Path string `yaml:"path"`
		} `yaml:"sqlite"`
	} `yaml:"storage"`

	Cache struct {
		// none | memory | redis
		Kind  string `yaml:"kind"`
		TTL   string `yaml:"ttl"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			CleanupInterval string `yaml:"cleanup_interval"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		Secret string `yaml:"secret"`
		Issuer string `yaml:"issuer"`
		TTL    string `yaml:"ttl"`
	} `yaml:"jwt"`

	Security struct {
		Password struct {
			// bcrypt | argon2id
			Algorithm  string `yaml:"algorithm"`
			BcryptCost int    `yaml:"bcrypt_cost"`
			Workers    int    `yaml:"workers"`
		} `yaml:"password"`
	} `yaml:"security"`
}

// Load reads the YAML file at path (skipped when path is empty), fills
// defaults, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	var c Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.Name == "" {
		c.App.Name = "studyhub"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "15s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Postgres.MaxConns == 0 {
		c.Storage.Postgres.MaxConns = 10
	}
	if c.Storage.Postgres.MinConns == 0 {
		c.Storage.Postgres.MinConns = 2
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = "./data/studyhub.db"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "5m"
	}
	if c.Cache.Memory.CleanupInterval == "" {
		c.Cache.Memory.CleanupInterval = "1m"
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = "localhost:6379"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "studyhub"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "720h" // 30d
	}
	// The dev fallback never applies in prod; Validate rejects an empty secret there.
	if c.JWT.Secret == "" && !c.IsProd() {
		c.JWT.Secret = DevJWTSecret
	}
	if c.Security.Password.Algorithm == "" {
		c.Security.Password.Algorithm = "bcrypt"
	}
	if c.Security.Password.BcryptCost == 0 {
		c.Security.Password.BcryptCost = 12
	}
	if c.Security.Password.Workers == 0 {
		c.Security.Password.Workers = runtime.NumCPU()
	}
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(strings.TrimSpace(v))
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvBool("STORAGE_AUTO_MIGRATE"); ok {
		c.Storage.AutoMigrate = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_CONNS"); ok {
		c.Storage.Postgres.MaxConns = v
	}
	if v, ok := getEnvStr("SQLITE_PATH"); ok {
		c.Storage.SQLite.Path = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("CACHE_TTL"); ok {
		c.Cache.TTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_SECRET_KEY"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_TTL"); ok {
		c.JWT.TTL = v
	}

	// SECURITY
	if v, ok := getEnvStr("PASSWORD_ALGORITHM"); ok {
		c.Security.Password.Algorithm = strings.ToLower(v)
	}
	if v, ok := getEnvInt("PASSWORD_BCRYPT_COST"); ok {
		c.Security.Password.BcryptCost = v
	}
	if v, ok := getEnvInt("PASSWORD_WORKERS"); ok {
		c.Security.Password.Workers = v
	}
}

// IsProd reports whether the deployment is production.
func (c *Config) IsProd() bool {
	return strings.EqualFold(strings.TrimSpace(c.App.Env), "prod")
}

// UsesDevSecret reports whether tokens are signed with the built-in dev secret.
func (c *Config) UsesDevSecret() bool {
	return c.JWT.Secret == DevJWTSecret
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	for name, v := range map[string]string{
		"server.read_timeout":           c.Server.ReadTimeout,
		"server.write_timeout":          c.Server.WriteTimeout,
		"server.shutdown_timeout":       c.Server.ShutdownTimeout,
		"cache.ttl":                     c.Cache.TTL,
		"cache.memory.cleanup_interval": c.Cache.Memory.CleanupInterval,
		"jwt.ttl":                       c.JWT.TTL,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if d, err := time.ParseDuration(c.JWT.TTL); err == nil && d <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}

	switch c.Storage.Driver {
	case "memory", "sqlite":
	case "postgres":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			errs = append(errs, errors.New("storage.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q not supported", c.Storage.Driver))
	}

	switch c.Cache.Kind {
	case "none", "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("cache.kind %q not supported", c.Cache.Kind))
	}

	switch c.Security.Password.Algorithm {
	case "bcrypt", "argon2id":
	default:
		errs = append(errs, fmt.Errorf("security.password.algorithm %q not supported", c.Security.Password.Algorithm))
	}
	if cost := c.Security.Password.BcryptCost; cost < 4 || cost > 31 {
		errs = append(errs, fmt.Errorf("security.password.bcrypt_cost %d out of range [4,31]", cost))
	}
	if c.Security.Password.Workers < 0 {
		errs = append(errs, errors.New("security.password.workers must not be negative"))
	}

	if c.IsProd() {
		switch {
		case strings.TrimSpace(c.JWT.Secret) == "":
			errs = append(errs, errors.New("JWT_SECRET_KEY is required in prod"))
		case c.UsesDevSecret():
			errs = append(errs, errors.New("JWT_SECRET_KEY must not be the development default in prod"))
		case len(c.JWT.Secret) < 32:
			errs = append(errs, errors.New("JWT_SECRET_KEY must be at least 32 bytes in prod"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Duration parses one of the duration strings, which Validate has already checked.
func Duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
