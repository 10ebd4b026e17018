package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/errors"
)

const AdminKeyHeader = "X-Admin-Key"

type AdminMiddleware struct {
	apiKey string
}

func NewAdminMiddleware(apiKey string) *AdminMiddleware {
	return &AdminMiddleware{apiKey: apiKey}
}

// RequireAdmin rejects requests whose X-Admin-Key does not match the
// configured key. With no key configured every admin request is rejected.
func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		if m.apiKey == "" {
			log.Warn("Admin API key is not configured", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Forbidden(c, "Admin access is disabled")
			c.Abort()
			return
		}

		key := c.GetHeader(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			log.Warn("Invalid admin key", map[string]interface{}{
				"path":    c.Request.URL.Path,
				"has_key": key != "",
			})
			errors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
