// Package auth authenticates the site administrator and verifies the bearer
// tokens that guard write operations.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/pkg/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Credentials configure the single admin account. PasswordHash (bcrypt) takes
// precedence over Password.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Token is an issued bearer token.
type Token struct {
	Value     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Denylist records revoked token ids until they would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Gate issues and checks admin tokens.
type Gate struct {
	creds    Credentials
	signer   *jwt.Signer
	denylist Denylist
	log      *zap.Logger
}

// NewGate builds a Gate. denylist may be nil, in which case logout only
// discards the token client-side.
func NewGate(creds Credentials, signer *jwt.Signer, denylist Denylist, log *zap.Logger) (*Gate, error) {
	if creds.Username == "" || (creds.Password == "" && creds.PasswordHash == "") {
		return nil, errors.New("admin credentials are not configured")
	}
	if creds.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(creds.PasswordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{creds: creds, signer: signer, denylist: denylist, log: log.Named("auth")}, nil
}

func (g *Gate) passwordMatches(password string) bool {
	if g.creds.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.creds.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.creds.Password), []byte(password)) == 1
}

// Authenticate exchanges admin credentials for a token.
func (g *Gate) Authenticate(ctx context.Context, username, password string) (Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(g.creds.Username), []byte(username)) == 1
	passOK := g.passwordMatches(password)
	if !userOK || !passOK {
		return Token{}, fmt.Errorf("%w: invalid credentials", apperr.ErrAuth)
	}
	value, claims, err := g.signer.Sign(username, jwt.RoleAdmin)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: value, Username: username, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks signature, expiry, role and revocation of a token.
func (g *Gate) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", apperr.ErrAuth)
	}
	claims, err := g.signer.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrAuth, err)
	}
	if claims.Role != jwt.RoleAdmin {
		return nil, fmt.Errorf("%w: insufficient role", apperr.ErrAuth)
	}
	if g.denylist != nil && claims.ID != "" {
		revoked, err := g.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			g.log.Warn("revocation lookup failed, accepting signed token", zap.Error(err))
		} else if revoked {
			return nil, fmt.Errorf("%w: token revoked", apperr.ErrAuth)
		}
	}
	return claims, nil
}

// Revoke invalidates token for the rest of its lifetime.
func (g *Gate) Revoke(ctx context.Context, token string) error {
	claims, err := g.Verify(ctx, token)
	if err != nil {
		return err
	}
	if g.denylist == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := g.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperr.Dependency("redis", err)
	}
	return nil
}
