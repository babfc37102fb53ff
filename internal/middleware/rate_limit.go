package middleware

import (
	"context"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/router"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimiter is a token bucket per client. Authenticated clients are keyed
// by user id, the others by address.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *xsync.MapOf[string, *clientLimiter]
	now      func() time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		limiters: xsync.NewMapOf[*clientLimiter](),
		now:      time.Now,
	}
}

func (l *RateLimiter) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		limiter := l.get(clientKey(ctx))

		now := l.now()
		limiter.lastSeen.Store(now.UnixNano())
		if !limiter.limiter.AllowN(now, 1) {
			return nil, errorx.New(errorx.TooManyRequests, "Too many requests, please slow down")
		}

		return nil, nil
	}
}

// get returns the limiter of key. LoadOrCompute is avoided because it builds
// the value twice on insertion and returns the copy which is not stored.
func (l *RateLimiter) get(key string) *clientLimiter {
	if limiter, ok := l.limiters.Load(key); ok {
		return limiter
	}

	limiter, _ := l.limiters.LoadOrStore(key, &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)})
	return limiter
}

// Evict drops the limiters idle for longer than maxIdle.
func (l *RateLimiter) Evict(maxIdle time.Duration) int {
	cutoff := l.now().Add(-maxIdle).UnixNano()
	evicted := 0
	l.limiters.Range(func(key string, value *clientLimiter) bool {
		if value.lastSeen.Load() < cutoff {
			l.limiters.Delete(key)
			evicted++
		}
		return true
	})

	return evicted
}

// RunEviction calls Evict every interval until ctx is done.
func (l *RateLimiter) RunEviction(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Evict(maxIdle); n > 0 {
				xcontext.Logger(ctx).Debugf("Evicted %d idle rate limiters", n)
			}
		}
	}
}

func clientKey(ctx context.Context) string {
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		return "user:" + userID
	}

	req := xcontext.HTTPRequest(ctx)
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip, _, _ := strings.Cut(forwarded, ",")
		return "ip:" + strings.TrimSpace(ip)
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "ip:" + req.RemoteAddr
	}

	return "ip:" + host
}
