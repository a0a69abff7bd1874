package service

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// UpstreamLimiter limita cuántas llamadas al LLM se hacen por clave y ventana.
// Cuando Allow devuelve false el proxy sirve el mock.
type UpstreamLimiter interface {
	Allow(ctx context.Context, key string) bool
}

type memoryUpstreamLimiter struct {
	counters *cache.Cache
	window   time.Duration
	max      int
}

// NewMemoryUpstreamLimiter crea un limiter de ventana fija en memoria, para cuando no hay Redis.
func NewMemoryUpstreamLimiter(window time.Duration, max int) UpstreamLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryUpstreamLimiter{
		counters: cache.New(window, 2*window),
		window:   window,
		max:      max,
	}
}

func (l *memoryUpstreamLimiter) Allow(_ context.Context, key string) bool {
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	// Add solo crea el contador si no existe; la expiración marca el fin de la ventana.
	if err := l.counters.Add(normalizedKey, 1, l.window); err == nil {
		return 1 <= l.max
	}
	count, err := l.counters.IncrementInt(normalizedKey, 1)
	if err != nil {
		// El contador expiró entre Add e Increment: ventana nueva.
		return true
	}
	return count <= l.max
}
