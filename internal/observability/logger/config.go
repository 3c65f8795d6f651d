package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configura el logger.
type Config struct {
	// Env: "dev" (consola con colores) o "prod" (JSON). Default: "dev".
	Env string

	// Level es el nivel mínimo: "debug", "info", "warn", "error".
	// Default: "info".
	Level string

	// ServiceName se agrega como campo "service" a cada entrada. Opcional.
	ServiceName string
}

func build(cfg Config) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if strings.EqualFold(cfg.Env, "prod") {
		l, err = buildProd(cfg)
	} else {
		l, err = buildDev(cfg)
	}
	if err != nil {
		// Nunca arrancar sin logger: fallback al default de producción.
		l, _ = zap.NewProduction()
	}
	return l
}

// buildDev: consola con colores, timestamps cortos, sin stacktraces.
func buildDev(cfg Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.DisableStacktrace = true

	l, err := zcfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return withService(l, cfg), nil
}

// buildProd: JSON estructurado, ISO8601, stacktrace desde error.
func buildProd(cfg Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	l, err := zcfg.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}
	return withService(l, cfg), nil
}

func withService(l *zap.Logger, cfg Config) *zap.Logger {
	if cfg.ServiceName == "" {
		return l
	}
	return l.With(zap.String("service", cfg.ServiceName))
}

// parseLevel acepta los niveles que este servicio usa; cualquier otro
// valor (incluido vacío) cae a info.
func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
