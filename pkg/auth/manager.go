package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinickart/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the only error callers get for a token that failed
// verification. The wrapped cause is meant for logs.
var ErrInvalidToken = errors.New("invalid token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims carried by both token kinds. Refresh tokens have no role.
type Claims struct {
	Role string `json:"role,omitempty"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager provides logic for JWT access & refresh tokens generation and parsing.
type TokenManager interface {
	NewAccessToken(subject string, role string) (string, time.Duration, error)
	NewRefreshToken(subject string) (string, time.Duration, error)
	ParseAccessToken(token string) (*Claims, error)
	ParseRefreshToken(token string) (*Claims, error)
}

type Manager struct {
	accessKey       []byte
	refreshKey      []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	issuer          string
	audience        string
	now             func() time.Time
}

type Option func(*Manager)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(cfg config.JWTConfig, opts ...Option) (*Manager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.AccessTokenTTL == 0 {
		return nil, errors.New("empty access token ttl")
	}

	if cfg.RefreshTokenTTL == 0 {
		return nil, errors.New("empty refresh token ttl")
	}

	m := &Manager{
		accessKey:       []byte(cfg.AccessSecret),
		refreshKey:      []byte(cfg.RefreshSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		issuer:          cfg.Issuer,
		audience:        cfg.Audience,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func (m *Manager) NewAccessToken(subject string, role string) (string, time.Duration, error) {
	token, err := m.sign(m.accessKey, subject, role, tokenTypeAccess, m.accessTokenTTL)
	if err != nil {
		return "", 0, err
	}

	return token, m.accessTokenTTL, nil
}

func (m *Manager) NewRefreshToken(subject string) (string, time.Duration, error) {
	token, err := m.sign(m.refreshKey, subject, "", tokenTypeRefresh, m.refreshTokenTTL)
	if err != nil {
		return "", 0, err
	}

	return token, m.refreshTokenTTL, nil
}

func (m *Manager) ParseAccessToken(token string) (*Claims, error) {
	return m.parse(m.accessKey, token, tokenTypeAccess)
}

func (m *Manager) ParseRefreshToken(token string) (*Claims, error) {
	return m.parse(m.refreshKey, token, tokenTypeRefresh)
}

func (m *Manager) sign(key []byte, subject string, role string, typ string, ttl time.Duration) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate token id failed: %w", err)
	}

	now := m.now()
	claims := Claims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", errors.New("sign jwt failed")
	}

	return signed, nil
}

func (m *Manager) parse(key []byte, token string, typ string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Type != typ {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.Type)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return &claims, nil
}
