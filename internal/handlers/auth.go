package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/identity"
	"yasmin-alsham-backend/internal/middleware"
	"yasmin-alsham-backend/internal/models"
)

// Authenticator signs users in and out.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.AuthSession, error)
	SignOut(ctx context.Context, accessToken string, user *models.Identity) error
}

type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler builds the handler. auth may be nil when no auth provider
// is configured; sign-in then answers 503.
func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignIn godoc
// @Summary     Sign in
// @Description Returns a session whose access token authorizes the cart,
// @Description favorites and dashboard routes.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignInRequest true "Credentials"
// @Success     200 {object} models.AuthSession
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	if h.auth == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "auth not configured"})
		return
	}
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid credentials", err)
		return
	}
	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "sign in failed", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SignOut revokes the bearer token's session. It runs behind AuthMiddleware.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if h.auth == nil {
		c.Status(http.StatusNoContent)
		return
	}
	ctx := c.Request.Context()
	if err := h.auth.SignOut(ctx, c.GetString(middleware.TokenKey), identity.FromContext(ctx)); err != nil {
		respondError(c, "sign out failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the bearer token's user. It runs behind AuthMiddleware.
func (h *AuthHandler) Me(c *gin.Context) {
	user := identity.FromContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "not signed in"})
		return
	}
	c.JSON(http.StatusOK, user)
}
