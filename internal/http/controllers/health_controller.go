package controllers

import (
	"context"
	"net/http"
	"time"
)

// HealthController expone liveness/readiness.
type HealthController struct {
	Pinger interface {
		Ping(ctx context.Context) error
	}
}

func NewHealthController(p interface{ Ping(ctx context.Context) error }) *HealthController {
	return &HealthController{Pinger: p}
}

// Root responde el string de liveness histórico en GET /.
func (c *HealthController) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Fluency server is running"))
}

// Healthz liveness simple.
func (c *HealthController) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz readiness: ping al record store con timeout corto.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.Pinger.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
