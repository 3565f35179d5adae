// internal/interfaces/http/middleware/maintenance.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docesdalu/storefront-backend/internal/config"
)

// Maintenance short-circuits all API traffic while the shop is closed
// for maintenance
func Maintenance(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.App.Maintenance {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "A loja está em manutenção. Volte em breve!",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
