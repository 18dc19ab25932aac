package transport

import (
	"net/http"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// DeviceFingerprintHeader carries the client's opaque device id. The
// limiter keys on it so a device cannot dodge the cap by rotating IPs;
// clients without one fall back to their IP.
const DeviceFingerprintHeader = "X-Device-Fingerprint"

// RateLimitMiddleware enforces a fixed window per device: at most
// maxRequests hits per window, counted in an expiring in-process cache.
func RateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	hits := cache.New(window, 2*window)

	return func(c *gin.Context) {
		key := c.GetHeader(DeviceFingerprintHeader)
		if key == "" {
			key = c.ClientIP()
		}

		if err := hits.Add(key, 1, cache.DefaultExpiration); err == nil {
			c.Next()
			return
		}

		count, err := hits.IncrementInt(key, 1)
		if err != nil {
			// Entry expired between Add and Increment; start a new window.
			hits.Set(key, 1, cache.DefaultExpiration)
			c.Next()
			return
		}
		if count > maxRequests {
			logging.Log.Warnf("RATELIMIT: blocked %s after %d attempts", key, count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts from this device, please try again later.",
			})
			return
		}
		c.Next()
	}
}
