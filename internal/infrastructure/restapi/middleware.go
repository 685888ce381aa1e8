package restapi

import (
	"net/http"
	"sync"
	"time"

	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ZapLoggerMiddleware логирует каждый запрос через zap.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("clientIP", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Request completed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request completed", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
	}
}

// RateLimiter keeps one token bucket per client IP.
// Limiters of idle clients expire from the cache after the TTL.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
	metrics  *metrics.ProxyMetrics
}

// NewRateLimiter returns nil when rps <= 0; a nil limiter lets everything through.
func NewRateLimiter(rps float64, burst int, ttl time.Duration, m *metrics.ProxyMetrics) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RateLimiter{
		limiters: cache.New(ttl, 2*ttl),
		limit:    rate.Limit(rps),
		burst:    burst,
		metrics:  m,
	}
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.limiters.Get(key); ok {
		lim := v.(*rate.Limiter)
		// продлеваем TTL активного клиента
		l.limiters.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters.SetDefault(key, lim)
	return lim
}

// Allow reports whether a request from key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	return l.limiterFor(key).Allow()
}

// Middleware rejects requests over the limit with a 429 envelope.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		l.metrics.IncRateLimited()
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			entity.NewErrorEnvelope(http.StatusTooManyRequests, "Rate limit exceeded, retry later"))
	}
}
