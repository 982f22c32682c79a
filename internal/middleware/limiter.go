package middleware

import (
	"github.com/planhub/collab-event-service/pkg/app"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles requests with the provided token buckets.
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			count := bucket.TakeAvailable(1)
			if count == 0 {
				response := app.NewResponse(c)
				response.ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
