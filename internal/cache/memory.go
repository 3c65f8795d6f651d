package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memClient implementa Client in-process sobre go-cache.
type memClient struct {
	c      *gocache.Cache
	prefix string
}

// NewMemory crea un cache en memoria con limpieza periódica.
func NewMemory(cfg Config) Client {
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &memClient{
		c:      gocache.New(ttl, time.Minute),
		prefix: cfg.Prefix,
	}
}

func (m *memClient) key(k string) string {
	if m.prefix == "" {
		return k
	}
	return m.prefix + ":" + k
}

func (m *memClient) Get(_ context.Context, key string) (string, error) {
	v, ok := m.c.Get(m.key(key))
	if !ok {
		return "", ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

func (m *memClient) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(m.key(key), value, ttl)
	return nil
}

func (m *memClient) Delete(_ context.Context, key string) error {
	m.c.Delete(m.key(key))
	return nil
}

func (m *memClient) Ping(context.Context) error { return nil }
func (m *memClient) Close() error               { return nil }
