package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Ventana fija: el primer hit crea la clave con TTL y los siguientes solo incrementan.
const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

const (
	contactRateKeyPrefix = "contact:rl:"
	redisLimiterTimeout  = 500 * time.Millisecond
)

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisRateLimiter struct {
	logger *zap.Logger
	client redisEvaler
	window time.Duration
	max    int
}

func NewRedisRateLimiter(logger *zap.Logger, client *redis.Client, window time.Duration, max int) RateLimiter {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if window < time.Second {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisRateLimiter{
		logger: logger,
		client: client,
		window: window,
		max:    max,
	}
}

// Allow deja pasar si Redis no responde: un Redis caído no debe tumbar el formulario.
func (l *redisRateLimiter) Allow(ctx context.Context, clientIP string) bool {
	if l == nil || l.client == nil {
		return true
	}
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, redisLimiterTimeout)
	defer cancel()

	count, err := l.client.Eval(ctx, redisAllowScript, []string{contactRateKeyPrefix + clientIP}, int(l.window.Seconds())).Int()
	if err != nil {
		l.logger.Warn("contact rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	return count <= l.max
}
