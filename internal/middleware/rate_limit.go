// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/eshopx/eshop-backend/internal/config"
	"github.com/eshopx/eshop-backend/internal/utils"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Buckets unseen
// for staleAfter are purged by a background sweep.
type IPRateLimiter struct {
	mtx        sync.Mutex
	clients    map[string]*client
	limit      rate.Limit
	burst      int
	staleAfter time.Duration
}

func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	l := &IPRateLimiter{
		clients:    make(map[string]*client),
		limit:      limit,
		burst:      burst,
		staleAfter: 3 * time.Minute,
	}

	go l.purgeStale()

	return l
}

func (l *IPRateLimiter) purgeStale() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		l.mtx.Lock()
		for ip, cl := range l.clients {
			if time.Since(cl.lastSeen) > l.staleAfter {
				delete(l.clients, ip)
			}
		}
		l.mtx.Unlock()
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	cl, ok := l.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.allow(ip) {
			requestID, _ := c.Get("request_id")
			logrus.WithFields(logrus.Fields{
				"request_id": requestID,
				"ip":         ip,
				"path":       c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			utils.ErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimits bundles the three tiers the routes use: a general cap on
// everything, a tight one on login/register, and one on image uploads.
type RateLimits struct {
	General *IPRateLimiter
	Auth    *IPRateLimiter
	Upload  *IPRateLimiter
}

func NewRateLimits(cfg config.RateLimitConfig) *RateLimits {
	return &RateLimits{
		General: NewIPRateLimiter(rate.Limit(cfg.GeneralRPS), cfg.GeneralBurst),
		Auth:    NewIPRateLimiter(perMinute(cfg.AuthPerMinute), cfg.AuthPerMinute),
		Upload:  NewIPRateLimiter(perMinute(cfg.UploadPerMinute), cfg.UploadPerMinute),
	}
}

func perMinute(n int) rate.Limit {
	if n <= 0 {
		n = 1
	}
	return rate.Every(time.Minute / time.Duration(n))
}
