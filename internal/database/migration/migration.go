// Package migration applies the record store schema. Applied steps are recorded in schema_migrations,
// so a restart only runs the steps added since the last deploy.
package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

const createLedger = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

var steps = []migrationStep{
	{
		Name: "0001_create_table_inquiries",
		SQL: `CREATE TABLE IF NOT EXISTS inquiries (
  id           UUID        PRIMARY KEY,
  logical_name TEXT        NOT NULL DEFAULT 'sa_inquiry',
  response     TEXT        NOT NULL DEFAULT '',
  external_id  TEXT        NULL,
  modified_by  TEXT        NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "0002_create_index_inquiries_external_id",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_inquiries_external_id ON inquiries (external_id) WHERE external_id IS NOT NULL;`,
	},
	{
		Name: "0003_create_index_inquiries_modified_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_inquiries_modified_at ON inquiries (modified_at);`,
	},
}

// EnsureMigrated applies every step not yet recorded in schema_migrations, each in its own transaction.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()
	emit := func(event string, fields map[string]any) {
		fields["component"] = "database"
		fields["event"] = event
		fields["db_host"] = dbHost
		logJSON(loc, fields)
	}
	fail := func(err error, fields map[string]any) error {
		fields["status"] = "error"
		fields["error_message"] = err.Error()
		fields["duration_ms"] = time.Since(start).Milliseconds()
		emit("db_migration_failed", fields)
		return err
	}

	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		return fail(fmt.Errorf("create migration ledger: %w", err), map[string]any{})
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		return fail(err, map[string]any{})
	}

	pending := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		pending++

		stepStart := time.Now()
		if err := apply(ctx, db, step); err != nil {
			return fail(fmt.Errorf("migration step %s failed: %w", step.Name, err), map[string]any{
				"migration_step":   step.Name,
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
		}
		emit("db_migration_step", map[string]any{
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	emit("db_migration_done", map[string]any{
		"status":        "success",
		"steps_applied": pending,
		"duration_ms":   time.Since(start).Milliseconds(),
	})
	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("read migration ledger: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan migration ledger: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, step migrationStep) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", step.Name); err != nil {
		return err
	}
	return tx.Commit()
}

func logJSON(loc *time.Location, data map[string]any) {
	if loc == nil {
		loc = time.UTC
	}
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	data["level"] = "info"
	if data["status"] == "error" {
		data["level"] = "error"
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
