package limiter

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter hands out one token bucket per client IP and forgets the ones
// that have been idle for longer than ttl.
type IPLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

func NewIPLimiter(rps int, burst int, ttl time.Duration) *IPLimiter {
	return &IPLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Cleanup drops visitors idle for longer than ttl.
func (l *IPLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

func (l *IPLimiter) cleanupLoop() {
	interval := l.ttl
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		l.Cleanup()
	}
}

// RejectFunc writes the response for a request over the limit. retryAfter
// is in whole seconds.
type RejectFunc func(c *gin.Context, retryAfter int)

func defaultReject(c *gin.Context, _ int) {
	c.AbortWithStatus(http.StatusTooManyRequests)
}

// Middleware rejects requests over the per IP rate with 429. The
// Retry-After header is always set, reject writes the body.
func (l *IPLimiter) Middleware(reject RejectFunc) gin.HandlerFunc {
	if reject == nil {
		reject = defaultReject
	}

	retryAfter := 1
	if l.rps > 0 && l.rps < 1 {
		retryAfter = int(1 / float64(l.rps))
	}
	header := strconv.Itoa(retryAfter)

	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", header)
			reject(c, retryAfter)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Limit builds a process wide limiter and starts its cleanup loop.
func Limit(rps int, burst int, ttl time.Duration, reject RejectFunc) gin.HandlerFunc {
	l := NewIPLimiter(rps, burst, ttl)
	go l.cleanupLoop()

	return l.Middleware(reject)
}
