// internal/interfaces/http/middleware/inflight.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SingleInFlight gates an operation to one in-flight request per
// session. A second submit while busy is rejected, not queued; the
// guard is released when the request finishes or the TTL expires.
func SingleInFlight(redisClient *redis.Client, operation string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := GetSessionID(c)
		if sessionID == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("busy:%s:%s", operation, sessionID)

		acquired, err := redisClient.SetNX(c.Request.Context(), key, "1", ttl).Result()
		if err != nil {
			// If Redis is down, allow the request
			c.Next()
			return
		}

		if !acquired {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Aguarde, sua solicitação anterior ainda está em andamento.",
			})
			c.Abort()
			return
		}

		defer func() {
			// Release on a fresh context: the request context may
			// already be canceled by the time the handler returns
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			redisClient.Del(ctx, key)
		}()
		c.Next()
	}
}
