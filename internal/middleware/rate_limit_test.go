// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/eshopx/eshop-backend/internal/config"
)

func limitedRouter(limiter *IPRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func pingFrom(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterRejectsAfterBurst(t *testing.T) {
	// Refill is an hour away, only the burst tokens matter.
	r := limitedRouter(NewIPRateLimiter(rate.Every(time.Hour), 2))

	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1:5000").Code)

	w := pingFrom(r, "10.0.0.1:5000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	r := limitedRouter(NewIPRateLimiter(rate.Every(time.Hour), 1))

	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.0.0.1:5000").Code)

	// A different client still has its own bucket.
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.2:5000").Code)
}

func TestNewRateLimitsBuildsAllTiers(t *testing.T) {
	limits := NewRateLimits(config.RateLimitConfig{
		GeneralRPS:      20,
		GeneralBurst:    20,
		AuthPerMinute:   5,
		UploadPerMinute: 10,
	})

	require.NotNil(t, limits.General)
	require.NotNil(t, limits.Auth)
	require.NotNil(t, limits.Upload)
	assert.Equal(t, rate.Limit(20), limits.General.limit)
	assert.Equal(t, 5, limits.Auth.burst)
	assert.Equal(t, 10, limits.Upload.burst)
}

func TestPerMinuteGuardsZero(t *testing.T) {
	assert.Equal(t, rate.Every(time.Minute), perMinute(0))
	assert.Equal(t, rate.Every(time.Minute/5), perMinute(5))
}
