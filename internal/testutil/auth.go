package testutil

import (
	"golang.org/x/crypto/bcrypt"

	"objectcache/internal/config"
)

// AdminPassword is the admin password accepted by NewAuthConfig.
const AdminPassword = "hunter2"

// NewAuthConfig returns the default auth settings with an admin password hash
// set, so tokens are accepted.
func NewAuthConfig() (config.AuthConfig, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	if err != nil {
		return config.AuthConfig{}, err
	}
	cfg := config.Default().Auth
	cfg.AdminPasswordHash = string(hash)
	return cfg, nil
}
