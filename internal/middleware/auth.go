package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"yasmin-alsham-backend/internal/config"
	"yasmin-alsham-backend/internal/identity"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/supabase"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
	EmailKey  = "email"
	TokenKey  = "access_token"
)

// AuthMiddleware validates a Supabase access token (HS256, signed with the
// project's JWT secret) and stores the user id, email, role and raw token in
// the gin context. The user is also attached to the request context, where
// the stores resolve it.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing authorization header", "")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "invalid authorization header format", "")
			return
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "empty token", "")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid token", tokenError(err))
			return
		}
		if !token.Valid {
			abort(c, http.StatusUnauthorized, "invalid token", "")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			abort(c, http.StatusUnauthorized, "missing user id in token", "")
			return
		}
		email, _ := claims["email"].(string)
		role := roleFromClaims(claims)

		c.Set(UserIDKey, sub)
		c.Set(EmailKey, email)
		c.Set(RoleKey, role)
		c.Set(TokenKey, tokenString)
		user := &models.Identity{ID: sub, Email: email, Role: role}
		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RequireRole rejects requests whose token role is not one of roles. It must
// run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if !slices.Contains(roles, role) {
			abort(c, http.StatusForbidden, "insufficient role", "requires one of: "+strings.Join(roles, ", "))
			return
		}
		c.Next()
	}
}

// roleFromClaims reads the storefront role from the token's metadata. The
// top-level "role" claim is the Postgres role ("authenticated") and is not
// used.
func roleFromClaims(claims jwt.MapClaims) string {
	app, _ := claims["app_metadata"].(map[string]interface{})
	user, _ := claims["user_metadata"].(map[string]interface{})
	return supabase.RoleFromMetadata(app, user)
}

func tokenError(err error) string {
	switch {
	case strings.Contains(err.Error(), "signature is invalid"):
		return "token signature is invalid - check JWT secret"
	case strings.Contains(err.Error(), "token is expired"):
		return "token has expired"
	case strings.Contains(err.Error(), "token is malformed"):
		return "token is malformed - ensure you're using a valid Supabase JWT token"
	default:
		return err.Error()
	}
}

func abort(c *gin.Context, status int, msg, detail string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: msg, Message: detail})
}
