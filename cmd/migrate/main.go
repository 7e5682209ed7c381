package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hhernandez/money-review/internal/config"
	"github.com/hhernandez/money-review/internal/logger"
)

// Migration is a single versioned SQL file, NNNN_name.sql.
type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

var migrationFileRe = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	migrationsDir := flag.String("migrations", "migrations/postgres", "path to migrations directory")
	appliedBy := flag.String("applied-by", "migrate-cli", "name recorded against applied migrations")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer pool.Close()

	if err := ensureMigrationsTable(ctx, pool, cfg.DBSchema); err != nil {
		log.Fatal().Err(err).Msg("ensuring schema_migrations table")
	}

	migrations, err := readMigrations(*migrationsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("reading migrations")
	}
	log.Info().Int("count", len(migrations)).Msg("migration files found")

	applied, err := appliedVersions(ctx, pool, cfg.DBSchema)
	if err != nil {
		log.Fatal().Err(err).Msg("reading applied migrations")
	}

	appliedCount := 0
	for _, m := range migrations {
		if applied[m.Version] {
			log.Info().Int("version", m.Version).Str("name", m.Name).Msg("skip (already applied)")
			continue
		}
		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("applying")

		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Fatal().Err(err).Int("version", m.Version).Msg("migration failed")
		}
		if _, err := pool.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s.schema_migrations (version, name, applied_at, checksum, applied_by)
			VALUES ($1, $2, now(), $3, $4)`, cfg.DBSchema),
			m.Version, m.Name, m.Checksum, *appliedBy,
		); err != nil {
			log.Fatal().Err(err).Int("version", m.Version).Msg("recording migration")
		}
		appliedCount++
	}

	log.Info().Int("applied", appliedCount).Msg("migrations complete")
}

func ensureMigrationsTable(ctx context.Context, pool *pgxpool.Pool, schema string) error {
	_, err := pool.Exec(ctx, fmt.Sprintf(`
		CREATE SCHEMA IF NOT EXISTS %s;
		CREATE TABLE IF NOT EXISTS %s.schema_migrations (
			version    integer PRIMARY KEY,
			name       text NOT NULL,
			applied_at timestamptz NOT NULL,
			checksum   text NOT NULL,
			applied_by text NOT NULL
		)`, schema, schema))
	return err
}

func readMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var migrations []Migration
	for _, entry := range entries {
		m := migrationFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		version, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("bad version in %s: %w", entry.Name(), err)
		}
		sql, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version:  version,
			Name:     m[2],
			SQL:      string(sql),
			Checksum: fmt.Sprintf("%x", sha256.Sum256(sql)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func appliedVersions(ctx context.Context, pool *pgxpool.Pool, schema string) (map[int]bool, error) {
	rows, err := pool.Query(ctx, fmt.Sprintf(
		`SELECT version FROM %s.schema_migrations`, schema,
	))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}
