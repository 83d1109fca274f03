package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zkpolls/zkpolls-backend/internal/entity"
	"github.com/zkpolls/zkpolls-backend/internal/lib/jwt"
	"github.com/zkpolls/zkpolls-backend/internal/storage"
)

const (
	// CtxUserID and CtxWalletAddress are the gin context keys set for an
	// authenticated request.
	CtxUserID        = "userID"
	CtxWalletAddress = "walletAddress"

	cookieName = "token"
)

type TokenValidator interface {
	Authorize(ctx context.Context, token string) (entity.User, error)
}

type Auth struct {
	validator TokenValidator
}

func NewAuth(validator TokenValidator) *Auth {
	return &Auth{validator: validator}
}

// Middleware rejects requests without a valid credential. The token is read
// from the session cookie first, then from a Bearer header.
func (m *Auth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"errorCode": "UNAUTHENTICATED",
				"message":   "Access token required",
			})
			return
		}

		user, err := m.validator.Authorize(c.Request.Context(), token)
		if err != nil {
			// a bad credential is the caller's fault; a store failure is not
			if errors.Is(err, jwt.ErrInvalidToken) || errors.Is(err, storage.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success":   false,
					"errorCode": "UNAUTHENTICATED",
					"message":   "Invalid token",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success":   false,
				"errorCode": "INTERNAL",
				"message":   "Failed to perform task",
			})
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxWalletAddress, user.WalletAddress)
		c.Next()
	}
}

// OptionalMiddleware sets the caller's identity when a valid credential is
// present and lets the request through either way. Used by reads that only
// annotate their response for authenticated callers.
func (m *Auth) OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := m.validator.Authorize(c.Request.Context(), token)
		if err == nil {
			c.Set(CtxUserID, user.ID)
			c.Set(CtxWalletAddress, user.WalletAddress)
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
