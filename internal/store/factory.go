// Package store selecciona la implementación del Repository según driver.
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/fluency/internal/store/core"
	"github.com/dropDatabas3/fluency/internal/store/memory"
	"github.com/dropDatabas3/fluency/internal/store/pg"
)

// Options parámetros de construcción del store.
type Options struct {
	Driver string // "postgres" | "memory"
	DSN    string
	PG     pg.Config
}

// New construye el Repository. Driver vacío defaultea a memory (dev).
func New(ctx context.Context, opts Options) (core.Repository, error) {
	switch opts.Driver {
	case "postgres", "pg":
		return pg.New(ctx, opts.DSN, opts.PG)
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", opts.Driver)
	}
}
