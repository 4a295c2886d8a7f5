package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"objectcache/internal/cache"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Lookups  CachePolicy    `yaml:"lookups"`
	Caches   []CachePreset  `yaml:"caches"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	Secret            string        `yaml:"secret"`
	Issuer            string        `yaml:"issuer"`
	Audience          string        `yaml:"audience"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
	AdminUser         string        `yaml:"admin_user"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	// AllowDevSecret lets the server start with DevSecret, for local use only.
	AllowDevSecret    bool          `yaml:"allow_dev_secret"`
}

// CachePolicy is a timeout and its unit. A zero unit keeps the cacher default.
type CachePolicy struct {
	Timeout int64          `yaml:"timeout"`
	Unit    cache.TimeUnit `yaml:"unit"`
}

// Options converts the policy into registry options.
func (p CachePolicy) Options() []cache.Option {
	return []cache.Option{cache.WithTimeout(p.Timeout), cache.WithTimeoutType(p.Unit)}
}

// CachePreset configures a named cacher before anything asks for it.
type CachePreset struct {
	ID          string `yaml:"id"`
	CachePolicy `yaml:",inline"`
}

// DevSecret is the signing secret of the defaults. It is public, so Validate
// rejects it unless auth.allow_dev_secret is set.
const DevSecret = "development-insecure-secret-change-me"

func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8008"},
		Log:      LogConfig{Level: "info"},
		Database: DatabaseConfig{Path: "objectcache.db"},
		Auth: AuthConfig{
			Secret:    DevSecret,
			Issuer:    "objectcache",
			Audience:  "objectcache-admins",
			TokenTTL:  24 * time.Hour,
			AdminUser: "admin",
		},
		Lookups: CachePolicy{Timeout: 10, Unit: cache.Minutes},
	}
}

// Load reads path over the defaults, then applies environment overrides. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		log.Debugf("using config file: %s", path)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("OBJECTCACHE_ADDR", c.Server.Addr)
	c.Log.Level = getEnv("OBJECTCACHE_LOG", c.Log.Level)
	c.Database.Path = getEnv("OBJECTCACHE_DB", c.Database.Path)
	c.Auth.Secret = getEnv("JWT_SECRET", c.Auth.Secret)
	c.Auth.Issuer = getEnv("JWT_ISSUER", c.Auth.Issuer)
	c.Auth.Audience = getEnv("JWT_AUDIENCE", c.Auth.Audience)
	c.Auth.AdminUser = getEnv("OBJECTCACHE_ADMIN_USER", c.Auth.AdminUser)
	c.Auth.AdminPasswordHash = getEnv("OBJECTCACHE_ADMIN_PASSWORD_HASH", c.Auth.AdminPasswordHash)
	if v := os.Getenv("OBJECTCACHE_ALLOW_DEV_SECRET"); v != "" {
		c.Auth.AllowDevSecret = v == "1" || strings.EqualFold(v, "true")
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("auth.secret must not be empty"))
	}
	if c.Auth.Secret == DevSecret && !c.Auth.AllowDevSecret {
		errs = append(errs, errors.New("auth.secret is the built-in development secret; set JWT_SECRET or auth.allow_dev_secret"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Lookups.Timeout < 0 {
		errs = append(errs, errors.New("lookups.timeout must not be negative"))
	}
	seen := make(map[string]bool, len(c.Caches))
	for i, p := range c.Caches {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("caches[%d].id must not be empty", i))
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("caches[%d].id %q is duplicated", i, p.ID))
		}
		seen[p.ID] = true
		if p.Timeout < 0 {
			errs = append(errs, fmt.Errorf("caches[%d].timeout must not be negative", i))
		}
	}
	return errors.Join(errs...)
}

// ApplyPresets registers every configured cache preset with m.
func (c Config) ApplyPresets(m *cache.Manager) {
	for _, p := range c.Caches {
		m.Preset(p.ID, p.Options()...)
		log.WithFields(log.Fields{
			"cacher":  p.ID,
			"timeout": p.Timeout,
			"unit":    p.Unit,
		}).Debug("cache preset registered")
	}
}
