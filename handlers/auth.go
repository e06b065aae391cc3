package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsalud/famsalud/backend/api/internal/auth"
	"github.com/famsalud/famsalud/backend/api/internal/models"
	"github.com/famsalud/famsalud/backend/api/internal/tokens"
	"github.com/famsalud/famsalud/backend/api/pkg/middleware"
)

// RefreshCookie is the name of the cookie carrying the refresh token.
const RefreshCookie = "refreshToken"

// AuthService is the session lifecycle the handlers expose.
type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.UserSummary, error)
	Login(ctx context.Context, in auth.LoginInput) (*tokens.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.AccessToken, error)
	Logout(ctx context.Context, userID string) error
}

// CookieOptions scope the refresh cookie.
type CookieOptions struct {
	Path   string
	MaxAge int // seconds
	Secure bool
}

// AuthHandler holds dependencies
type AuthHandler struct {
	svc         AuthService
	requireAuth gin.HandlerFunc
	cookie      CookieOptions
}

func NewAuthHandler(svc AuthService, requireAuth gin.HandlerFunc, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{svc: svc, requireAuth: requireAuth, cookie: cookie}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.SignUp)
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.requireAuth, h.Logout)
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login returns the access token in the body and the refresh token as an HTTP-only cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var in auth.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	pair, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.setRefreshCookie(c, pair.RefreshToken, h.cookie.MaxAge)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

// Refresh exchanges the refresh cookie for a new access token. A missing cookie
// answers 200 with a 401 payload; existing clients depend on that shape.
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(RefreshCookie)
	if err != nil || raw == "" {
		c.JSON(http.StatusOK, gin.H{"statusCode": http.StatusUnauthorized, "message": "No refresh token provided"})
		return
	}
	out, err := h.svc.Refresh(c.Request.Context(), raw)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.svc.Logout(c.Request.Context(), u.ID); err != nil {
		_ = c.Error(err)
		return
	}
	h.setRefreshCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookie, value, maxAge, h.cookie.Path, "", h.cookie.Secure, true)
}
