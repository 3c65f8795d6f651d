// Aplica las migraciones de postgres embebidas en el binario.
//
// Uso:
//
//	migrate -config config.yaml [up|down|version] [steps]
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	gomigrate "github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/dropDatabas3/fluency/internal/config"
	"github.com/dropDatabas3/fluency/migrations"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "Path to YAML config")
	flag.Parse()

	// Positional args: [action] [steps]
	action := "up"
	steps := 0
	args := flag.Args()
	if len(args) >= 1 && args[0] != "" {
		action = strings.ToLower(args[0])
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			steps = n
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	// El secreto de firma no hace falta para migrar.
	dsn := cfg.Storage.DSN
	if dsn == "" {
		log.Fatal("storage.dsn is required to run migrations")
	}

	m, err := newMigrator(dsn)
	if err != nil {
		log.Fatalf("migrate init: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	switch action {
	case "up":
		err = m.Up()
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Steps(-1)
		}
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, gomigrate.ErrNilVersion) {
			log.Fatalf("version: %v", verr)
		}
		fmt.Printf("version=%d dirty=%v\n", v, dirty)
		return
	default:
		log.Fatalf("unknown action %q (want up|down|version)", action)
	}

	if err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
		log.Fatalf("migrate %s: %v", action, err)
	}
	log.Printf("migrate %s: done", action)
}

func newMigrator(dsn string) (*gomigrate.Migrate, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(migrations.FS, "postgres")
	if err != nil {
		return nil, err
	}
	return gomigrate.NewWithInstance("iofs", src, "pgx", driver)
}
