package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/logger"
	"littlelemon/internal/metrics"
	"littlelemon/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Tier names a request budget.
type Tier string

const (
	// Registration (Strict)
	TierLow Tier = "low"
	// Login
	TierMedium Tier = "medium"
	// Everything under /api
	TierHigh Tier = "high"
)

const visitorTTL = 3 * time.Minute

type tierPolicy struct {
	limit rate.Limit
	burst int
}

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per identity and tier.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	tiers    map[Tier]tierPolicy
	now      func() time.Time
}

// NewLimiter builds the tiers from per-minute request budgets.
func NewLimiter(cfg *config.Config) *Limiter {
	return &Limiter{
		visitors: make(map[string]*visitor),
		tiers: map[Tier]tierPolicy{
			TierLow:    perMinute(cfg.RateLimitLow, config.DefaultRateLimitLow),
			TierMedium: perMinute(cfg.RateLimitMedium, config.DefaultRateLimitMedium),
			TierHigh:   perMinute(cfg.RateLimitHigh, config.DefaultRateLimitHigh),
		},
		now: time.Now,
	}
}

func perMinute(n, fallback int) tierPolicy {
	if n <= 0 {
		n = fallback
	}
	return tierPolicy{limit: rate.Every(time.Minute / time.Duration(n)), burst: n}
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, p tierPolicy) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(p.limit, p.burst)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup removes visitors idle for longer than the TTL. It returns the
// number of entries evicted.
func (l *Limiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
			evicted++
		}
	}
	return evicted
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Middleware applies the budget of tier to every request it wraps.
func (l *Limiter) Middleware(tier Tier) func(http.Handler) http.Handler {
	policy, ok := l.tiers[tier]
	if !ok {
		policy = l.tiers[TierHigh]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Combine for final bucket key (e.g., "user:1:high")
			key := fmt.Sprintf("%s:%s", identity(r), tier)

			if !l.getVisitor(key, policy).Allow() {
				metrics.RateLimited.Inc()
				logger.FromCtx(r.Context()).Warn("rate limited",
					zap.String("key", key),
					zap.String("path", r.URL.Path),
				)
				utils.WriteJSONError(w, "Request was throttled.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// identity prefers the authenticated user and falls back to the client IP.
func identity(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return fmt.Sprintf("user:%d", userID)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
