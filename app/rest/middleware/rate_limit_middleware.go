package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	visitors map[string]*Visitor
	mutex    sync.RWMutex
}

type Visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*Visitor),
	}

	go rl.cleanupVisitors()
	return rl
}

// RateLimit limits requests per client IP. Shell opens are the expensive
// path (they start session and profile fetches) and get the tightest
// budget; location reports and route reads are chatty and stay loose.
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			var limit rate.Limit
			var burst int

			path := c.Request().URL.Path
			method := c.Request().Method
			switch {
			case method == http.MethodPost && strings.HasSuffix(path, "/shells"):
				limit = rate.Every(time.Second)
				burst = 10
			case strings.Contains(path, "/profiles"):
				limit = rate.Every(time.Second)
				burst = 10
			default:
				limit = rate.Every(100 * time.Millisecond)
				burst = 50
			}

			if !rl.allow(ip, limit, burst) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"code":        "RATE_LIMIT_EXCEEDED",
					"retry_after": rl.getRetryAfter(ip),
				})
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip string, limit rate.Limit, burst int) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	visitor, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &Visitor{
			limiter:  rate.NewLimiter(limit, burst),
			lastSeen: time.Now(),
		}
		return true
	}

	visitor.lastSeen = time.Now()
	return visitor.limiter.Allow()
}

func (rl *RateLimiter) getRetryAfter(ip string) int {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	visitor, exists := rl.visitors[ip]
	if !exists {
		return 0
	}

	reservation := visitor.limiter.Reserve()
	if !reservation.OK() {
		return 60
	}

	delay := reservation.Delay()
	reservation.Cancel()

	return int(delay.Seconds())
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mutex.Lock()
		for ip, visitor := range rl.visitors {
			if time.Since(visitor.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mutex.Unlock()
	}
}
