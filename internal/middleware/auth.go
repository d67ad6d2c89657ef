package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const adminTokenQueryParam = "admin_token"

// AdminGate lets a request through only when it presents the shared admin secret,
// either as a Bearer token or as the admin_token query parameter.
func AdminGate(secret string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			log.Error("Middleware: ADMIN_TOKEN is not configured, refusing admin request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, domain.ErrorBody{
				Error: "Admin access is not configured on the server",
				Code:  domain.CodeAdminNotConfigured,
			})
			return
		}

		token := extractToken(c)
		if token == "" {
			log.Warnf("Middleware: Admin token missing for %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.ErrorBody{
				Error: "Admin token required",
				Code:  domain.CodeUnauthorized,
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			log.Warnf("Middleware: Invalid admin token for %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.ErrorBody{
				Error: "Invalid admin token",
				Code:  domain.CodeUnauthorized,
			})
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	return c.Query(adminTokenQueryParam)
}
