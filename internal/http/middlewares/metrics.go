package middlewares

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsOnce sync.Once
	metricsErr  error

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec

	authDeniedTotal *prometheus.CounterVec
)

// MetricsConfig agrupa dependencias para exponer /metrics.
type MetricsConfig struct {
	Registry prometheus.Registerer
	Pool     func() *pgxpool.Pool
}

// RegisterMetrics inicializa las métricas HTTP y, si hay pool de postgres,
// registra un collector de conexiones. Devuelve el handler para /metrics.
func RegisterMetrics(cfg MetricsConfig) (http.Handler, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo por método y ruta",
		}, []string{"method", "path"})

		authDeniedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_denied_total",
			Help: "Requests rechazadas por autenticación o autorización",
		}, []string{"status"}) // status: 401|403

		for _, c := range []prometheus.Collector{
			httpRequestsTotal, httpRequestDuration, httpInflight, authDeniedTotal,
		} {
			if err := registerCollector(registry, c); err != nil {
				metricsErr = err
				return
			}
		}
	})
	if metricsErr != nil {
		return nil, metricsErr
	}

	if cfg.Pool != nil {
		if err := registerCollector(registry, newDBPoolCollector(cfg.Pool)); err != nil {
			return nil, err
		}
	}

	// Si el registry también implementa Gatherer (el *prometheus.Registry
	// default lo hace), scrapeamos el mismo registry donde registramos.
	if g, ok := registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{}), nil
	}
	return promhttp.Handler(), nil
}

// WithMetrics instrumenta requests con contadores, latencia e inflight.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpRequestsTotal == nil || httpRequestDuration == nil || httpInflight == nil {
				next.ServeHTTP(w, r)
				return
			}

			method := strings.ToUpper(r.Method)
			pathLabel := normalizePath(r.URL.Path)

			httpInflight.WithLabelValues(method, pathLabel).Inc()
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				httpInflight.WithLabelValues(method, pathLabel).Dec()
				httpRequestDuration.WithLabelValues(method, pathLabel).Observe(time.Since(start).Seconds())

				status := rec.status
				httpRequestsTotal.WithLabelValues(method, pathLabel, strconv.Itoa(status)).Inc()
				if status == http.StatusUnauthorized || status == http.StatusForbidden {
					if authDeniedTotal != nil {
						authDeniedTotal.WithLabelValues(strconv.Itoa(status)).Inc()
					}
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

// registerCollector registra ignorando duplicados (tests re-registran).
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// dbPoolCollector expone gauges del pool de postgres.
type dbPoolCollector struct {
	pool func() *pgxpool.Pool

	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
}

func newDBPoolCollector(pool func() *pgxpool.Pool) *dbPoolCollector {
	return &dbPoolCollector{
		pool:         pool,
		acquiredDesc: prometheus.NewDesc("pg_pool_acquired", "Conexiones adquiridas", nil, nil),
		idleDesc:     prometheus.NewDesc("pg_pool_idle", "Conexiones inactivas", nil, nil),
		totalDesc:    prometheus.NewDesc("pg_pool_total", "Conexiones totales", nil, nil),
	}
}

func (c *dbPoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
}

func (c *dbPoolCollector) Collect(ch chan<- prometheus.Metric) {
	if c.pool == nil {
		return
	}
	pool := c.pool()
	if pool == nil {
		return
	}
	stat := pool.Stat()
	if stat == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(stat.TotalConns()))
}

var (
	uuidSegmentRE = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F-]{4}-[0-9a-fA-F-]{4,}$`)
	hexSegmentRE  = regexp.MustCompile(`^[0-9a-fA-F]{16,}$`)
)

// normalizePath colapsa segmentos dinámicos (ids, emails) para mantener
// acotada la cardinalidad de labels.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	clean := strings.SplitN(p, "?", 2)[0]
	if clean == "" {
		return "/"
	}
	if !strings.HasPrefix(clean, "/") {
		clean = "/" + clean
	}

	segments := strings.Split(clean, "/")
	var out []string
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if isDynamicSegment(seg) {
			out = append(out, ":param")
		} else {
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}

func isDynamicSegment(seg string) bool {
	if len(seg) > 48 {
		return true
	}
	if strings.Contains(seg, "@") || strings.Contains(seg, "%40") {
		return true
	}
	if uuidSegmentRE.MatchString(seg) {
		return true
	}
	if hexSegmentRE.MatchString(seg) {
		return true
	}
	if _, err := strconv.Atoi(seg); err == nil {
		return true
	}
	return false
}
