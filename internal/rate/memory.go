package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter: mismo algoritmo fixed-window que RedisLimiter, pero
// in-process. Para dev y deployments de una sola instancia.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu   sync.Mutex
	hits map[string]int64
	win  int64 // inicio de la ventana actual (unix)
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: window,
		hits:   make(map[string]int64),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(l.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Ventana nueva: descartar los contadores viejos de una
	if ws := winStart.Unix(); ws != l.win {
		l.win = ws
		l.hits = make(map[string]int64)
	}

	l.hits[key]++
	hits := l.hits[key]

	res := Result{
		Allowed:   hits <= l.Max,
		Remaining: max64(l.Max-hits, 0),
	}
	if !res.Allowed {
		res.RetryAfter = winStart.Add(l.Window).Sub(now)
	}
	return res, nil
}
