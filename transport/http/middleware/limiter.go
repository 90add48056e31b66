package middleware

import (
	"net/http"
	"staybook/shared"
	"staybook/shared/constant"
	"staybook/transport/http/response"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"

	// maxLocalLimiters bounds the fallback table; it is reset when full.
	maxLocalLimiters = 10000
)

// RateLimit keeps a fixed window counter per client in Redis. When Redis is
// unreachable the request is checked against an in-process token bucket.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.config.App.RateLimiter.Enable {
			next.ServeHTTP(w, r)

			return
		}

		maxReqs := a.config.App.RateLimiter.MaxRequests
		windowSecs := a.config.App.RateLimiter.WindowSeconds

		cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

		count, err := a.cache.Incr(r.Context(), cacheKey, windowSecs)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter cache unavailable, using local limiter")
			a.allowLocal(w, r, next, cacheKey)

			return
		}

		if count > int64(maxReqs) {
			response.WithRequestLimitExceeded(w)

			return
		}

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(maxReqs-int(count)))
		w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

		next.ServeHTTP(w, r)
	})
}

func (a *appMiddleware) allowLocal(w http.ResponseWriter, r *http.Request, next http.Handler, key string) {
	if !a.fallback.Allow(key) {
		response.WithRequestLimitExceeded(w)

		return
	}

	next.ServeHTTP(w, r)
}

type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLocalLimiter(maxRequests, windowSeconds int) *localLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}

	if windowSeconds <= 0 {
		windowSeconds = 1
	}

	return &localLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Duration(windowSeconds) * time.Second / time.Duration(maxRequests)),
		burst:    maxRequests,
	}
}

func (l *localLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxLocalLimiters {
			clear(l.limiters)
		}

		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}

	return limiter.Allow()
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For may hold a chain; the first entry is the client.
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
