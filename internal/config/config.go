// Package config carga la configuración del servicio desde YAML + env.
// Las variables de entorno pisan el archivo; JWT_SECRET SOLO vive en env
// (precondición de arranque, nunca en el yaml).
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"env"`
		// debug | info | warn | error
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		Driver   string `yaml:"driver"` // "postgres" | "memory"
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MinIdleConns    int    `yaml:"min_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // "memory" | "redis"
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
		RoleTTL string `yaml:"role_ttl"`
	} `yaml:"cache"`

	JWT struct {
		// Secret llega SOLO por env (JWT_SECRET); acá queda el TTL.
		Secret    string `yaml:"-"`
		AccessTTL string `yaml:"access_ttl"`
	} `yaml:"jwt"`

	RateLimit struct {
		// Limita POST /jwt por IP. Off por default.
		Enabled bool   `yaml:"enabled"`
		Max     int    `yaml:"max"`
		Window  string `yaml:"window"`
	} `yaml:"ratelimit"`
}

// ErrMissingSecret indica que JWT_SECRET no está seteado.
// El server no puede arrancar sin secreto de firma.
var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

// Load lee el yaml (opcional: path vacío o inexistente usa defaults),
// aplica overrides de env y valida precondiciones.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Cache.RoleTTL == "" {
		c.Cache.RoleTTL = "1m"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "24h"
	}
	if c.RateLimit.Max <= 0 {
		c.RateLimit.Max = 30
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}

	c.applyEnvOverrides()

	return &c, nil
}

// ValidateSecret chequea la precondición de arranque del server: sin
// JWT_SECRET no hay firma posible. Los binarios que no emiten ni
// verifican tokens (migraciones) no la necesitan.
func (c *Config) ValidateSecret() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingSecret
	}
	return nil
}

// AccessTTL parsea el TTL de tokens; default 24h.
func (c *Config) AccessTTL() time.Duration {
	if d, err := time.ParseDuration(c.JWT.AccessTTL); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}

// ShutdownTimeout parsea el timeout de graceful shutdown; default 10s.
func (c *Config) ShutdownTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

// RoleTTL parsea el TTL del cache de roles; default 1m.
func (c *Config) RoleTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.RoleTTL); err == nil && d > 0 {
		return d
	}
	return time.Minute
}

// RateWindow parsea la ventana del rate limiter; default 1m.
func (c *Config) RateWindow() time.Duration {
	if d, err := time.ParseDuration(c.RateLimit.Window); err == nil && d > 0 {
		return d
	}
	return time.Minute
}

// MemoryCacheTTL parsea el TTL por defecto del cache memory; default 2m.
func (c *Config) MemoryCacheTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.Memory.DefaultTTL); err == nil && d > 0 {
		return d
	}
	return 2 * time.Minute
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}

	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("PORT"); ok {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}

	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("CACHE_REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}

	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ACCESS_TTL"); ok {
		c.JWT.AccessTTL = v
	}

	if v, ok := getEnvStr("RATELIMIT_ENABLED"); ok {
		c.RateLimit.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v, ok := getEnvInt("RATELIMIT_MAX"); ok {
		c.RateLimit.Max = v
	}
	if v, ok := getEnvStr("RATELIMIT_WINDOW"); ok {
		c.RateLimit.Window = v
	}
}
