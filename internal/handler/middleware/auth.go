package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxAdminSubjectKey = "admin_subject"
	ctxAdminRoleKey    = "admin_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAdmin guards the host console; guests never authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		subject, err := m.tokenValidator.ValidateAdminToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			if errs.Is(err, usecase.ErrNotAdmin) {
				c.JSON(http.StatusForbidden, gin.H{
					"error": gin.H{"message": "Insufficient permissions"},
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{"message": "Invalid or expired token"},
				})
			}
			c.Abort()
			return
		}

		c.Set(ctxAdminSubjectKey, subject)
		c.Set(ctxAdminRoleKey, jwt.RoleAdmin)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetAdminSubject(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxAdminSubjectKey)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
