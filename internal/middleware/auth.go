package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/pkg/jwt"
	"github.com/jkco/site-core/internal/pkg/response"
)

const ContextKeyClaims = "auth_claims"

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*jwt.Claims, error)
}

// Auth rejects requests without a valid admin bearer token.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := v.Verify(c.Request.Context(), BearerToken(c))
		if err != nil {
			response.Unauthorized(c, "Not authorized, token failed")
			return
		}
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// CurrentClaims returns the verified claims stored by Auth.
func CurrentClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// BearerToken reads the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
