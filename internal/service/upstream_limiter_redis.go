package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"profilemax/internal/metrics"
)

// El contador se crea con TTL en milisegundos para respetar ventanas de menos de un segundo.
const redisUpstreamAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

const redisLimiterTimeout = 500 * time.Millisecond

type redisUpstreamLimiter struct {
	client  redisEvaler
	window  time.Duration
	max     int
	prefix  string
	metrics *metrics.Recorder
	logger  *zap.Logger
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisUpstreamLimiter comparte el límite entre réplicas del servicio.
// Si Redis falla deja pasar la llamada, la registra y la cuenta en recorder.
func NewRedisUpstreamLimiter(client *redis.Client, window time.Duration, max int, recorder *metrics.Recorder, logger *zap.Logger) UpstreamLimiter {
	if client == nil {
		return nil
	}
	return newRedisUpstreamLimiter(client, window, max, recorder, logger)
}

func newRedisUpstreamLimiter(client redisEvaler, window time.Duration, max int, recorder *metrics.Recorder, logger *zap.Logger) *redisUpstreamLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisUpstreamLimiter{
		client:  client,
		window:  window,
		max:     max,
		prefix:  "profilemax:upstream:",
		metrics: recorder,
		logger:  logger,
	}
}

func (l *redisUpstreamLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, redisLimiterTimeout)
	defer cancel()

	redisKey := l.prefix + normalizedKey
	count, err := l.client.Eval(ctx, redisUpstreamAllowScript, []string{redisKey}, l.window.Milliseconds()).Int()
	if err != nil {
		l.logger.Warn("upstream limiter unavailable, allowing call",
			zap.String("key", redisKey),
			zap.Error(err),
		)
		l.metrics.ObserveLimiterError("redis")
		return true
	}
	return count <= l.max
}
