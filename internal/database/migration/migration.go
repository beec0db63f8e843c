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

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename       TEXT        NOT NULL,
  storage_path   TEXT        NOT NULL UNIQUE,
  size           BIGINT      NOT NULL CHECK (size >= 0),
  content_type   TEXT        NOT NULL,
  page_count     INTEGER     NOT NULL DEFAULT 0 CHECK (page_count >= 0),
  due_date       TIMESTAMPTZ,
  message        TEXT,
  expiry_days    INTEGER     NOT NULL DEFAULT 0,
  notify_signers BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_document_pages",
		SQL: `CREATE TABLE IF NOT EXISTS document_pages (
  document_id UUID             NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  page_number INTEGER          NOT NULL CHECK (page_number >= 1),
  width       DOUBLE PRECISION NOT NULL CHECK (width > 0),
  height      DOUBLE PRECISION NOT NULL CHECK (height > 0),
  PRIMARY KEY (document_id, page_number)
);`,
	},
	{
		Name: "create_table_signers",
		SQL: `CREATE TABLE IF NOT EXISTS signers (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  email       TEXT        NOT NULL,
  name        TEXT,
  role        TEXT,
  sign_order  INTEGER     NOT NULL DEFAULT 1,
  status      TEXT        NOT NULL DEFAULT 'PENDING',
  color       TEXT,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_fields",
		SQL: `CREATE TABLE IF NOT EXISTS fields (
  id                UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id       UUID             NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  signer_id         UUID             REFERENCES signers (id) ON DELETE SET NULL,
  type              TEXT             NOT NULL,
  label             TEXT,
  required          BOOLEAN          NOT NULL DEFAULT FALSE,
  placeholder       TEXT,
  x                 DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (x >= 0),
  y                 DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (y >= 0),
  width             DOUBLE PRECISION NOT NULL DEFAULT 0,
  height            DOUBLE PRECISION NOT NULL DEFAULT 0,
  page_number       INTEGER          NOT NULL DEFAULT 1 CHECK (page_number >= 1),
  value             TEXT,
  color             TEXT,
  font_family       TEXT,
  font_size         INTEGER          NOT NULL DEFAULT 0,
  validation_rule   TEXT,
  conditional_logic TEXT,
  options           TEXT,
  background_color  TEXT,
  border_color      TEXT,
  text_color        TEXT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_fields_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_fields_document_id ON fields (document_id);`,
	},
	{
		Name: "create_index_fields_document_page",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_fields_document_page ON fields (document_id, page_number);`,
	},
	{
		Name: "create_index_signers_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_signers_document_id ON signers (document_id);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
