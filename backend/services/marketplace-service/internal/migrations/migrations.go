// Package migrations applies the embedded SQL schema. Files are named
// <version>_<name>.sql and run in version order, each in its own
// transaction, with applied versions recorded in schema_migrations.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

//go:embed sql/*.sql
var files embed.FS

type Migration struct {
	Version string
	Name    string
	SQL     string
}

// Beginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const createVersionTable = `
    CREATE TABLE IF NOT EXISTS schema_migrations (
        version    TEXT PRIMARY KEY,
        name       TEXT        NOT NULL,
        applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`

// Load returns the embedded migrations sorted by version.
func Load() ([]Migration, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version, name, ok := strings.Cut(strings.TrimSuffix(e.Name(), ".sql"), "_")
		if !ok || version == "" || name == "" {
			return nil, fmt.Errorf("invalid migration filename %q", e.Name())
		}
		body, err := fs.ReadFile(files, path.Join("sql", e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Apply runs every pending migration and returns how many were applied.
func Apply(ctx context.Context, db Beginner) (int, error) {
	all, err := Load()
	if err != nil {
		return 0, err
	}
	if _, err := db.Exec(ctx, createVersionTable); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		if err := applyOne(ctx, db, m); err != nil {
			return count, err
		}
		utils.Logger.Infof("Applied migration %s_%s", m.Version, m.Name)
		count++
	}
	return count, nil
}

func appliedVersions(ctx context.Context, db Beginner) (map[string]bool, error) {
	rows, err := db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func applyOne(ctx context.Context, db Beginner, m Migration) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("migration %s_%s: %w", m.Version, m.Name, err)
	}
	if _, err = tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration %s: %w", m.Version, err)
	}
	return tx.Commit(ctx)
}
