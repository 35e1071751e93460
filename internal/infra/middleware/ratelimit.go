package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/infra/metrics"
	"github.com/diillson/ponto-eletronico-go/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter decide se uma requisição cabe no limite configurado
type Limiter interface {
	Allow(ctx context.Context, config ratelimit.LimitConfig) (bool, int, int, time.Duration, error)
}

// RateLimitMiddleware limita as escritas por IP de origem
type RateLimitMiddleware struct {
	limiter Limiter
	limit   int
	period  time.Duration
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting
func NewRateLimitMiddleware(limiter Limiter, limit int, period time.Duration, metrics *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		limit:   limit,
		period:  period,
		logger:  logger,
		metrics: metrics,
	}
}

// IPRateLimit limita requisições por IP
func (m *RateLimitMiddleware) IPRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		config := ratelimit.LimitConfig{
			Key:         "ip:" + clientIP,
			Limit:       m.limit,
			Period:      m.period,
			BurstFactor: 1.0,
		}

		allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			m.logger.Error("erro ao verificar rate limit", zap.String("ip", clientIP), zap.Error(err))
			c.Next() // Em caso de erro, permite a requisição
			return
		}

		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

		if !allowed {
			if m.metrics != nil {
				m.metrics.RateLimitExceeded(c.FullPath(), c.Request.Method)
			}
			m.logger.Warn("limite de requisições excedido",
				zap.String("ip", clientIP),
				zap.String("path", c.FullPath()))

			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Limite de requisições excedido. Tente novamente mais tarde.",
				"retry_after": int(resetAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}
