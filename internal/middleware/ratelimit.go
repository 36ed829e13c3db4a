package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"pka-index-backend/internal/apierror"
)

// Counter counts hits per key inside a fixed window.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

type visitor struct {
	count       int64
	windowStart time.Time
}

// MemoryCounter keeps per-process counts. Use RedisCounter when several
// instances serve the same clients.
type MemoryCounter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryCounter(window time.Duration) *MemoryCounter {
	return &MemoryCounter{
		visitors: make(map[string]*visitor),
		window:   window,
		now:      time.Now,
	}
}

// Incr counts a hit in the key's current window. A window opens on the first
// hit and lasts window regardless of later traffic.
func (c *MemoryCounter) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	v, exists := c.visitors[key]
	if !exists || now.Sub(v.windowStart) >= c.window {
		c.visitors[key] = &visitor{count: 1, windowStart: now}
		return 1, nil
	}

	v.count++
	return v.count, nil
}

// sweep drops expired windows, at most once per window. Caller holds mu.
func (c *MemoryCounter) sweep(now time.Time) {
	if now.Sub(c.lastSweep) < c.window {
		return
	}
	c.lastSweep = now
	for key, v := range c.visitors {
		if now.Sub(v.windowStart) >= c.window {
			delete(c.visitors, key)
		}
	}
}

type RedisCounter struct {
	client *redis.Client
	window time.Duration
}

func NewRedisCounter(client *redis.Client, window time.Duration) *RedisCounter {
	return &RedisCounter{client: client, window: window}
}

func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	bucket := time.Now().UnixNano() / int64(c.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

type RateLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
}

func NewRateLimiter(counter Counter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, limit: int64(limit), window: window}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := rl.counter.Incr(r.Context(), clientIP(r))
		if err != nil {
			// A broken counter store must not take the catalog down with it.
			log.WithError(err).Warn("rate limit counter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			apierror.Write(w, r, apierror.TooManyRequests())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
