// Package pg implementa el Repository sobre PostgreSQL (pgx/v5).
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/fluency/internal/observability/logger"
)

type Store struct{ pool *pgxpool.Pool }

// Config tuning opcional del pool.
type Config struct {
	MaxOpenConns    int
	MinIdleConns    int
	ConnMaxLifetime string
}

func New(ctx context.Context, dsn string, cfg Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MinIdleConns > 0 {
		pcfg.MinConns = int32(cfg.MinIdleConns)
	}
	if cfg.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
			pcfg.MaxConnIdleTime = d
		}
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	// Arranque non-blocking: ping best-effort, el server puede levantar
	// aunque la DB esté momentáneamente caída.
	if err := pool.Ping(ctx); err != nil {
		logger.L().Warn("pg pool startup ping failed", logger.Err(err))
	} else {
		logger.L().Info("pg pool ready", logger.Any("max_conns", pcfg.MaxConns))
	}

	return &Store{pool: pool}, nil
}

// Pool expone el pool interno (métricas/migraciones).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// isUniqueViolation detecta violación de unique constraint (23505).
// El probe-then-insert no es atómico: la carrera perdida aparece acá
// y el service la trata como "already exists".
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
