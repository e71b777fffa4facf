// Package history persists detection-run snapshots in a sqlite database
// under .atlas/index, so prior classifications of a workspace can be
// compared over time.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver for database/sql

	"github.com/koksalmehmet/atlas/internal/detect"
	"github.com/koksalmehmet/atlas/schemas"
)

// Run is one recorded detection snapshot.
type Run struct {
	ID            string
	Root          string
	Structure     string
	WorkspaceType string
	ProjectCount  int
	CreatedAt     time.Time
	Result        detect.Result
}

// DBPath returns the history database location for a workspace root.
func DBPath(root string) string {
	return filepath.Join(root, ".atlas", "index", "atlas.db")
}

// Open opens the sqlite database at the given path and applies pragmas.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(context.Background(), p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %s: %w", p, err)
		}
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// migrations are applied in order, starting from version 0. Never modify
// existing migrations, only add new ones.
var migrations = []func(*sql.Tx) error{
	migrateV0,
}

func migrateV0(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS detection_runs (
        id TEXT PRIMARY KEY,
        root TEXT NOT NULL,
        structure TEXT NOT NULL,
        workspace_type TEXT DEFAULT '',
        project_count INTEGER NOT NULL,
        created_at TEXT NOT NULL,
        payload TEXT NOT NULL
    );`)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_root
        ON detection_runs(root, created_at);`)
	return err
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionTable); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}
	var current int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), -1) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for v := current + 1; v < len(migrations); v++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if err := migrations[v](tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", v, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version(version, applied_at) VALUES(?, ?)`,
			v, time.Now().UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun records a detection result snapshot and returns the stored run.
// The snapshot is validated against the detection schema before it is
// persisted, so the database never holds a malformed payload.
func SaveRun(db *sql.DB, root string, result detect.Result) (Run, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return Run{}, fmt.Errorf("marshal result: %w", err)
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Run{}, fmt.Errorf("decode result: %w", err)
	}
	if err := schemas.Validate(schemas.Detection, doc); err != nil {
		return Run{}, err
	}
	run := Run{
		ID:            uuid.NewString(),
		Root:          root,
		Structure:     string(result.Structure),
		WorkspaceType: string(result.WorkspaceType),
		ProjectCount:  len(result.Projects),
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		Result:        result,
	}
	_, err = db.ExecContext(context.Background(),
		`INSERT INTO detection_runs(id, root, structure, workspace_type, project_count, created_at, payload)
         VALUES(?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Structure, run.WorkspaceType, run.ProjectCount,
		run.CreatedAt.Format(time.RFC3339), string(payload))
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs for a root, newest first.
func ListRuns(db *sql.DB, root string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(context.Background(),
		`SELECT id, root, structure, workspace_type, project_count, created_at, payload
         FROM detection_runs WHERE root = ?
         ORDER BY created_at DESC, id LIMIT ?`, root, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt, payload string
		if err := rows.Scan(&run.ID, &run.Root, &run.Structure, &run.WorkspaceType,
			&run.ProjectCount, &createdAt, &payload); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		if err := json.Unmarshal([]byte(payload), &run.Result); err != nil {
			return nil, fmt.Errorf("decode run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
