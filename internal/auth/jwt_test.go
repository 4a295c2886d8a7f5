package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"objectcache/internal/config"
)

func testAuthConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Default().Auth
	cfg.AdminPasswordHash = string(hash)
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	issuer := NewIssuer(testAuthConfig(t))

	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, "admin", claims.Subject)
}

func TestValidateToken_Invalid(t *testing.T) {
	issuer := NewIssuer(testAuthConfig(t))
	_, err := issuer.ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_WrongAudienceOrSecret(t *testing.T) {
	cfg := testAuthConfig(t)
	issuer := NewIssuer(cfg)

	other := cfg
	other.Audience = "someone-else"
	token, err := NewIssuer(other).GenerateToken("admin")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(token)
	require.Error(t, err)

	other = cfg
	other.Secret = "different"
	token, err = NewIssuer(other).GenerateToken("admin")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testAuthConfig(t)
	cfg.TokenTTL = -time.Minute
	issuer := NewIssuer(cfg)

	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(token)
	require.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	issuer := NewIssuer(testAuthConfig(t))

	require.NoError(t, issuer.Authenticate("admin", "hunter2"))
	require.ErrorIs(t, issuer.Authenticate("admin", "wrong"), ErrInvalidCredentials)
	require.ErrorIs(t, issuer.Authenticate("root", "hunter2"), ErrInvalidCredentials)

	noHash := config.Default().Auth
	require.ErrorIs(t, NewIssuer(noHash).Authenticate("admin", ""), ErrInvalidCredentials)
}

func TestValidateToken_NoAdminConfigured(t *testing.T) {
	issuer := NewIssuer(config.Default().Auth)

	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(token)
	require.ErrorIs(t, err, ErrAuthDisabled)
}
