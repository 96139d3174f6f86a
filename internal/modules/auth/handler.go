package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/middleware"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/pkg/metrics"
	"github.com/jkco/site-core/internal/pkg/response"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Handler serves /auth.
type Handler struct {
	gate *Gate
}

func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

// RegisterRoutes mounts auth routes. limiter guards the login endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiter gin.HandlerFunc) {
	g := rg.Group("/auth")
	if limiter != nil {
		g.POST("/login", limiter, h.login)
	} else {
		g.POST("/login", h.login)
	}
	g.GET("/verify", h.verify)
	g.POST("/logout", h.logout)
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		response.BadRequest(c, "Please provide username and password")
		return
	}

	token, err := h.gate.Authenticate(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrAuth) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		response.InternalError(c, "Login failed", err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	response.OKMsg(c, "Login successful", token)
}

// verify GET /auth/verify
func (h *Handler) verify(c *gin.Context) {
	raw := middleware.BearerToken(c)
	if raw == "" {
		response.Unauthorized(c, "No token provided")
		return
	}
	claims, err := h.gate.Verify(c.Request.Context(), raw)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token")
		return
	}
	response.OKMsg(c, "Token valid", gin.H{
		"username":  claims.Subject,
		"expiresAt": claims.ExpiresAt.Time,
	})
}

// logout POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	raw := middleware.BearerToken(c)
	if raw == "" {
		response.Unauthorized(c, "No token provided")
		return
	}
	if err := h.gate.Revoke(c.Request.Context(), raw); err != nil {
		response.Error(c, "Logout failed", err)
		return
	}
	msg := "Logout successful"
	if h.gate.denylist == nil {
		msg = "Logout successful. Please remove token from client."
	}
	response.OKMsg(c, msg, nil)
}
