// Package service implements the registry core: subdomain namespaces, alias
// allocation, the link registry, redirect resolution, click classification,
// analytics and the bearer token checks the transports rely on.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// AuthIface defines the token operations used by the HTTP middleware and the
// gRPC interceptors.
type AuthIface interface {
	BuildJWTString(id Identity) (string, error)
	ParseRawJWT(tokenString string) (*Claims, error)
	Authenticate(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the claims that are included in the JWT token.
// It embeds the RegisteredClaims from the JWT package and carries the
// identity issued by the external sign-in.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
}

// Identity is who a token is issued for.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Admin  bool
}

// TokenExp defines the expiration time of issued tokens (1 day).
const TokenExp = 24 * time.Hour

// Auth signs and verifies HS256 bearer tokens. A verified token also
// registers its user on first sight.
type Auth struct {
	secret []byte
	users  UserStore
	logger *zap.Logger
	now    Clock
}

// NewAuth creates a new Auth signing with secret. users may be nil when only
// issuing tokens.
func NewAuth(secret string, users UserStore, logger *zap.Logger, opts ...Option) *Auth {
	o := applyOptions(opts)
	return &Auth{
		secret: []byte(secret),
		users:  users,
		logger: logger,
		now:    o.clock,
	}
}

// BuildJWTString issues a token for id valid for TokenExp.
func (a *Auth) BuildJWTString(id Identity) (string, error) {
	if id.UserID == "" {
		return "", errors.New("user id is required")
	}

	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExp)),
		},
		UserID: id.UserID,
		Name:   id.Name,
		Email:  id.Email,
		Admin:  id.Admin,
	})

	return token.SignedString(a.secret)
}

// ParseRawJWT verifies the signature and expiry of tokenString.
func (a *Auth) ParseRawJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token or claims")
	}

	return claims, nil
}

// Authenticate verifies the token and makes sure its user exists. Any failure
// is reported as ErrUnauthorized.
func (a *Auth) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := a.ParseRawJWT(tokenString)
	if err != nil {
		a.logger.Debug("token rejected", zap.Error(err))
		return nil, ErrUnauthorized
	}

	if a.users != nil {
		_, err := a.users.EnsureUser(ctx, storage.User{
			ID:        claims.UserID,
			Name:      claims.Name,
			Email:     claims.Email,
			IsAdmin:   claims.Admin,
			CreatedAt: a.now().UTC(),
		})
		if errors.Is(err, storage.ErrConflict) {
			a.logger.Warn("token email belongs to another user", zap.String("user_id", claims.UserID))
			return nil, ErrUnauthorized
		}
		if err != nil {
			return nil, fmt.Errorf("register user: %w", err)
		}
	}

	return claims, nil
}

type claimsKey struct{}

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}
