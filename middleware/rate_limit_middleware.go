package middleware

import (
	"sync"
	"time"

	apimodels "employee-management-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimit ограничение частоты запросов с одного IP (token bucket), используется на входе в систему
func RateLimit(perSec float64, burst int) fiber.Handler {
	limiters := newIPLimiters(rate.Limit(perSec), burst)
	return func(c *fiber.Ctx) error {
		if !limiters.get(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(apimodels.NewError("слишком много попыток, повторите позже"))
		}
		return c.Next()
	}
}

type ipLimiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries *cache.Cache
}

func newIPLimiters(limit rate.Limit, burst int) *ipLimiters {
	return &ipLimiters{
		limit:   limit,
		burst:   burst,
		entries: cache.New(limiterIdleTTL, limiterIdleTTL),
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if value, ok := l.entries.Get(ip); ok {
		l.entries.SetDefault(ip, value)
		return value.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.entries.SetDefault(ip, limiter)
	return limiter
}
