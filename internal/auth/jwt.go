package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"objectcache/internal/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAuthDisabled is returned for every token when no admin password hash
	// is configured.
	ErrAuthDisabled       = errors.New("admin authentication is not configured")
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs and validates admin tokens and checks admin credentials.
type Issuer struct {
	secret    []byte
	issuer    string
	audience  string
	ttl       time.Duration
	adminUser string
	adminHash []byte
}

func NewIssuer(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		ttl:       cfg.TokenTTL,
		adminUser: cfg.AdminUser,
		adminHash: []byte(cfg.AdminPasswordHash),
	}
}

// Authenticate checks username and password against the configured admin.
// With no password hash configured every attempt fails.
func (i *Issuer) Authenticate(username, password string) error {
	if len(i.adminHash) == 0 || username != i.adminUser {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(i.adminHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken generates a JWT token for the given user
func (i *Issuer) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (i *Issuer) ValidateToken(tokenString string) (*Claims, error) {
	if len(i.adminHash) == 0 {
		return nil, ErrAuthDisabled
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
