package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func setupLimitedRouter(maxRequests int, window time.Duration) *gin.Engine {
	logging.Log = logrus.New()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ping", RateLimitMiddleware(maxRequests, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func hit(r *gin.Engine, fingerprint string) int {
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	if fingerprint != "" {
		req.Header.Set(DeviceFingerprintHeader, fingerprint)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Happy path - requests under the cap pass", func(t *testing.T) {
		router := setupLimitedRouter(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, hit(router, "dev-1"), "request %d", i+1)
		}
	})

	t.Run("Unhappy path - requests over the cap are rejected", func(t *testing.T) {
		router := setupLimitedRouter(3, time.Minute)
		for i := 0; i < 3; i++ {
			hit(router, "dev-1")
		}
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "dev-1"))
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "dev-1"))
	})

	t.Run("Happy path - devices are counted independently", func(t *testing.T) {
		router := setupLimitedRouter(1, time.Minute)
		assert.Equal(t, http.StatusOK, hit(router, "dev-1"))
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "dev-1"))
		assert.Equal(t, http.StatusOK, hit(router, "dev-2"))
	})

	t.Run("Happy path - window expiry resets the counter", func(t *testing.T) {
		router := setupLimitedRouter(1, 50*time.Millisecond)
		assert.Equal(t, http.StatusOK, hit(router, "dev-1"))
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "dev-1"))

		time.Sleep(80 * time.Millisecond)
		assert.Equal(t, http.StatusOK, hit(router, "dev-1"))
	})
}
