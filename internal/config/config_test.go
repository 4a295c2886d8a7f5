package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objectcache/internal/cache"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OBJECTCACHE_ADDR", "OBJECTCACHE_LOG", "OBJECTCACHE_DB",
		"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE",
		"OBJECTCACHE_ADMIN_USER", "OBJECTCACHE_ADMIN_PASSWORD_HASH",
		"OBJECTCACHE_ALLOW_DEV_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Config)
	}{
		{
			name:    "defaults keep the development secret",
			wantErr: true,
		},
		{
			name:     "full file",
			testFile: "full.yaml",
			checkFunc: func(t *testing.T, cfg Config) {
				assert.Equal(t, ":9090", cfg.Server.Addr)
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, "/tmp/lookups.db", cfg.Database.Path)
				assert.Equal(t, "s3cret", cfg.Auth.Secret)
				assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
				assert.Equal(t, "root", cfg.Auth.AdminUser)
				assert.Equal(t, CachePolicy{Timeout: 2, Unit: cache.Hours}, cfg.Lookups)
				assert.Equal(t, []CachePreset{
					{ID: "sessions", CachePolicy: CachePolicy{Timeout: 30, Unit: cache.Minutes}},
					{ID: "metadata", CachePolicy: CachePolicy{Timeout: 1, Unit: cache.Days}},
				}, cfg.Caches)
			},
		},
		{
			name:     "validation errors",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
		{
			name:     "unknown unit",
			testFile: "badunit.yaml",
			wantErr:  true,
		},
		{
			name:     "missing file",
			testFile: "nope.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := ""
			if tt.testFile != "" {
				path = filepath.Join("testdata", tt.testFile)
			}
			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OBJECTCACHE_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("OBJECTCACHE_DB", ":memory:")

	cfg, err := Load(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "test-issuer", cfg.Auth.Issuer)
}

func TestLoad_DevSecret(t *testing.T) {
	clearEnv(t)
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development secret")

	t.Setenv("OBJECTCACHE_ALLOW_DEV_SECRET", "true")
	cfg, err := Load("")
	require.NoError(t, err)
	want := Default()
	want.Auth.AllowDevSecret = true
	assert.Equal(t, want, cfg)

	clearEnv(t)
	t.Setenv("JWT_SECRET", "from-env")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Auth.Secret = ""
	cfg.Lookups.Timeout = -1
	cfg.Caches = []CachePreset{{ID: "a"}, {ID: "a"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.secret")
	assert.Contains(t, err.Error(), "lookups.timeout")
	assert.Contains(t, err.Error(), "duplicated")
}

func TestApplyPresets(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)

	m := cache.NewManager()
	cfg.ApplyPresets(m)

	c, err := cache.GetCacher[string](m, "sessions")
	require.NoError(t, err)
	assert.Equal(t, int64(30), c.Timeout())
	assert.Equal(t, cache.Minutes, c.TimeoutType())
}
